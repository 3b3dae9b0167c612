package core

import (
	"context"
	"fmt"

	"rostercore/pkg/domain"
)

// NewDefaultRulesEngine registers the ledger's standing rules: session date
// uniqueness (blocking) and record membership consistency (warning).
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(sessionDateUniqueRule{})
	engine.Register(recordMembershipRule{})
	return engine
}

// sessionDateUniqueRule blocks any state where a (group, date) pair holds
// more than one session. The transaction layer enforces the same slot on
// writes; the rule catches drift from imported snapshots or future code
// paths.
type sessionDateUniqueRule struct{}

func (sessionDateUniqueRule) Name() string { return "session_date_unique" }

func (sessionDateUniqueRule) Evaluate(_ context.Context, view domain.TransactionView, _ []domain.Change) (domain.Result, error) {
	var result domain.Result
	seen := make(map[string]string)
	for _, session := range view.ListSessions() {
		slot := session.GroupID + "|" + session.Date
		if firstID, ok := seen[slot]; ok {
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "session_date_unique",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("sessions %s and %s both cover group %s on %s", firstID, session.ID, session.GroupID, session.Date),
				Entity:   domain.EntitySession,
				EntityID: session.ID,
			})
			continue
		}
		seen[slot] = session.ID
	}
	return result, nil
}

// recordMembershipRule warns when a stored record's person no longer belongs
// to the session's group, which happens when a person is reassigned after
// attendance was taken. Historical records stay; reporting scopes by the
// person's current group.
type recordMembershipRule struct{}

func (recordMembershipRule) Name() string { return "record_person_membership" }

func (recordMembershipRule) Evaluate(_ context.Context, view domain.TransactionView, _ []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, record := range view.ListRecords() {
		session, ok := view.FindSession(record.SessionID)
		if !ok {
			continue
		}
		person, ok := view.FindPerson(record.PersonID)
		if !ok {
			continue
		}
		if person.GroupID == session.GroupID {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "record_person_membership",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("record %s: person %s moved out of group %s", record.ID, person.ID, session.GroupID),
			Entity:   domain.EntityRecord,
			EntityID: record.ID,
		})
	}
	return result, nil
}
