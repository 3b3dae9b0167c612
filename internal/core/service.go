package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	blobcore "rostercore/internal/blob/core"
	"rostercore/internal/reporting"
	"rostercore/pkg/domain"
)

// Service exposes the ledger's typed commands. All mutation goes through the
// store's transaction boundary; callers never hold mutable shared state.
type Service struct {
	store PersistentStore
	opts  serviceOptions
}

// NewService wraps an already-opened store.
func NewService(store PersistentStore, options ...Option) *Service {
	opts := defaultServiceOptions()
	for _, apply := range options {
		apply(&opts)
	}
	return &Service{store: store, opts: opts}
}

// NewInMemoryService builds a service over a fresh in-memory store, mainly
// for tests.
func NewInMemoryService(engine *RulesEngine, options ...Option) *Service {
	return NewService(NewMemoryStore(engine), options...)
}

// Store exposes the underlying persistent store.
func (s *Service) Store() PersistentStore {
	return s.store
}

// auditOperations maps operation names to the entity and action recorded in
// audit entries. Operations outside this table produce no audit entry.
var auditOperations = map[string]struct {
	entity domain.EntityType
	action domain.Action
}{
	"create_group":      {domain.EntityGroup, domain.ActionCreate},
	"update_group":      {domain.EntityGroup, domain.ActionUpdate},
	"delete_group":      {domain.EntityGroup, domain.ActionDelete},
	"create_person":     {domain.EntityPerson, domain.ActionCreate},
	"update_person":     {domain.EntityPerson, domain.ActionUpdate},
	"delete_person":     {domain.EntityPerson, domain.ActionDelete},
	"record_attendance": {domain.EntitySession, domain.ActionUpdate},
}

func (s *Service) recordAudit(ctx context.Context, operation, entityID string, status AuditStatus, duration time.Duration) {
	meta, ok := auditOperations[operation]
	if !ok {
		return
	}
	s.opts.audit.Record(ctx, AuditEntry{
		Operation: operation,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    status,
		Duration:  duration,
		Timestamp: s.opts.clock.Now(),
	})
}

func (s *Service) recordAuditSuccess(ctx context.Context, operation, entityID string, duration time.Duration) {
	s.recordAudit(ctx, operation, entityID, AuditStatusSuccess, duration)
}

func (s *Service) recordAuditError(ctx context.Context, operation, entityID string, duration time.Duration) {
	s.recordAudit(ctx, operation, entityID, AuditStatusError, duration)
}

// finish closes out one instrumented operation: span, metrics, warning log,
// audit entry.
func (s *Service) finish(ctx context.Context, operation, entityID string, result Result, err error, start time.Time, span TraceSpan) {
	duration := time.Since(start)
	span.End(err)
	s.opts.metrics.Observe(ctx, operation, err == nil, duration)
	for _, warning := range result.Warnings() {
		s.opts.logger.Warn("rule warning",
			"operation", operation,
			"rule", warning.Rule,
			"entity", string(warning.Entity),
			"entity_id", warning.EntityID,
			"message", warning.Message,
		)
	}
	if err != nil {
		s.opts.logger.Error("operation failed", "operation", operation, "error", err)
		s.recordAuditError(ctx, operation, entityID, duration)
		return
	}
	s.opts.logger.Debug("operation completed", "operation", operation, "entity_id", entityID, "duration", duration)
	s.recordAuditSuccess(ctx, operation, entityID, duration)
}

// CreateGroup adds a training group.
func (s *Service) CreateGroup(ctx context.Context, group Group) (Group, Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "create_group")
	var created Group
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateGroup(group)
		return err
	})
	s.finish(ctx, "create_group", created.ID, res, err, start, span)
	return created, res, err
}

// UpdateGroup mutates a group through the supplied function.
func (s *Service) UpdateGroup(ctx context.Context, id string, mutator func(*Group) error) (Group, Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "update_group")
	var updated Group
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateGroup(id, mutator)
		return err
	})
	s.finish(ctx, "update_group", id, res, err, start, span)
	return updated, res, err
}

// DeleteGroup removes a group and cascades to its people, sessions, and
// records in one transaction.
func (s *Service) DeleteGroup(ctx context.Context, id string) (Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "delete_group")
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteGroup(id)
	})
	s.finish(ctx, "delete_group", id, res, err, start, span)
	return res, err
}

// CreatePerson adds a roster member to an existing group.
func (s *Service) CreatePerson(ctx context.Context, person Person) (Person, Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "create_person")
	var created Person
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePerson(person)
		return err
	})
	s.finish(ctx, "create_person", created.ID, res, err, start, span)
	return created, res, err
}

// UpdatePerson mutates a person, including group reassignment.
func (s *Service) UpdatePerson(ctx context.Context, id string, mutator func(*Person) error) (Person, Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "update_person")
	var updated Person
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdatePerson(id, mutator)
		return err
	})
	s.finish(ctx, "update_person", id, res, err, start, span)
	return updated, res, err
}

// DeletePerson removes a person and their attendance records.
func (s *Service) DeletePerson(ctx context.Context, id string) (Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "delete_person")
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeletePerson(id)
	})
	s.finish(ctx, "delete_person", id, res, err, start, span)
	return res, err
}

// AttendanceSheet is the typed save command for one session's attendance. The
// whole sheet replaces the session's record set; there is no partial merge.
type AttendanceSheet struct {
	GroupID string
	Date    string
	Type    domain.SessionType
	Topic   *string
	// Statuses maps person IDs to their attendance. An empty map is legal
	// and yields a session with no records.
	Statuses map[string]domain.AttendanceStatus
}

// RecordAttendance reconciles one attendance sheet: the session for (group,
// date) is found or created, its type and topic updated, and its record set
// replaced by the sheet. Saving the same sheet twice is a no-op apart from
// fresh record identities. People outside the group are refused and the
// whole sheet rolls back.
func (s *Service) RecordAttendance(ctx context.Context, sheet AttendanceSheet) (Session, Result, error) {
	start := time.Now()
	ctx, span := s.opts.tracer.Start(ctx, "record_attendance")
	var session Session
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		group, ok := tx.FindGroup(sheet.GroupID)
		if !ok {
			return fmt.Errorf("group %q not found", sheet.GroupID)
		}
		if !domain.ValidDate(sheet.Date) {
			return fmt.Errorf("invalid session date %q", sheet.Date)
		}
		if !sheet.Type.Valid() {
			return fmt.Errorf("invalid session type %q", sheet.Type)
		}

		existing, found := tx.FindSessionByDate(group.ID, sheet.Date)
		var err error
		if found {
			session, err = tx.UpdateSession(existing.ID, func(sess *Session) error {
				sess.Type = sheet.Type
				sess.Topic = sheet.Topic
				return nil
			})
		} else {
			session, err = tx.CreateSession(Session{
				GroupID: group.ID,
				Date:    sheet.Date,
				Type:    sheet.Type,
				Topic:   sheet.Topic,
			})
		}
		if err != nil {
			return err
		}

		personIDs := make([]string, 0, len(sheet.Statuses))
		for personID := range sheet.Statuses {
			personIDs = append(personIDs, personID)
		}
		sort.Strings(personIDs)
		for _, personID := range personIDs {
			person, ok := tx.FindPerson(personID)
			if !ok {
				return fmt.Errorf("person %q not found", personID)
			}
			if person.GroupID != group.ID {
				return fmt.Errorf("person %q does not belong to group %q", personID, group.ID)
			}
		}

		tx.DeleteSessionRecords(session.ID)
		for _, personID := range personIDs {
			if _, err := tx.CreateRecord(AttendanceRecord{
				SessionID: session.ID,
				PersonID:  personID,
				Status:    sheet.Statuses[personID],
			}); err != nil {
				return err
			}
		}
		return nil
	})
	s.finish(ctx, "record_attendance", session.ID, res, err, start, span)
	return session, res, err
}

// Ledger returns a deterministic snapshot of the whole store: groups by
// name, people by last name, sessions by date, records by session then
// person.
func (s *Service) Ledger(ctx context.Context) (Ledger, error) {
	var ledger Ledger
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		ledger.Groups = view.ListGroups()
		ledger.People = view.ListPeople()
		ledger.Sessions = view.ListSessions()
		ledger.Records = view.ListRecords()
		return nil
	})
	if err != nil {
		return Ledger{}, err
	}
	ledger.Pro = s.store.Pro()

	sort.Slice(ledger.Groups, func(i, j int) bool {
		if ledger.Groups[i].Name != ledger.Groups[j].Name {
			return ledger.Groups[i].Name < ledger.Groups[j].Name
		}
		return ledger.Groups[i].ID < ledger.Groups[j].ID
	})
	sort.Slice(ledger.People, func(i, j int) bool {
		if ledger.People[i].LastName != ledger.People[j].LastName {
			return ledger.People[i].LastName < ledger.People[j].LastName
		}
		return ledger.People[i].ID < ledger.People[j].ID
	})
	sort.Slice(ledger.Sessions, func(i, j int) bool {
		if ledger.Sessions[i].Date != ledger.Sessions[j].Date {
			return ledger.Sessions[i].Date < ledger.Sessions[j].Date
		}
		return ledger.Sessions[i].ID < ledger.Sessions[j].ID
	})
	sort.Slice(ledger.Records, func(i, j int) bool {
		if ledger.Records[i].SessionID != ledger.Records[j].SessionID {
			return ledger.Records[i].SessionID < ledger.Records[j].SessionID
		}
		return ledger.Records[i].PersonID < ledger.Records[j].PersonID
	})
	return ledger, nil
}

// AttendanceReport builds the attendance matrix for a group over an
// inclusive date range.
func (s *Service) AttendanceReport(ctx context.Context, groupID, startDate, endDate string) (reporting.Report, error) {
	if !domain.ValidDate(startDate) || !domain.ValidDate(endDate) {
		return reporting.Report{}, fmt.Errorf("invalid report range %q..%q", startDate, endDate)
	}
	if endDate < startDate {
		return reporting.Report{}, errors.New("report range end precedes start")
	}
	var report reporting.Report
	err := s.store.View(ctx, func(view domain.TransactionView) error {
		report = reporting.Build(view, groupID, startDate, endDate)
		return nil
	})
	if err != nil {
		return reporting.Report{}, err
	}
	return report, nil
}

// ExportAttendanceCSV builds the report and stores it as a CSV artifact in
// the blob store, returning the stored object's metadata.
func (s *Service) ExportAttendanceCSV(ctx context.Context, blobs blobcore.Store, groupID, startDate, endDate string) (blobcore.Info, error) {
	report, err := s.AttendanceReport(ctx, groupID, startDate, endDate)
	if err != nil {
		return blobcore.Info{}, err
	}
	info, err := reporting.NewExporter(blobs).ExportCSV(ctx, report)
	if err != nil {
		return blobcore.Info{}, err
	}
	s.opts.logger.Info("report exported",
		"group_id", groupID,
		"start", startDate,
		"end", endDate,
		"key", info.Key,
		"size", info.Size,
	)
	return info, nil
}
