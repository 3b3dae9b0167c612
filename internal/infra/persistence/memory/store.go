// Package memory provides an in-memory implementation of the ledger
// persistence store used for tests and ephemeral environments.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rostercore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Group aliases domain.Group for in-memory persistence operations.
	Group = domain.Group
	// Person aliases domain.Person.
	Person = domain.Person
	// Session aliases domain.Session.
	Session = domain.Session
	// AttendanceRecord aliases domain.AttendanceRecord.
	AttendanceRecord = domain.AttendanceRecord
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore abstraction.
	PersistentStore = domain.PersistentStore
)

type memoryState struct {
	groups   map[string]Group
	people   map[string]Person
	sessions map[string]Session
	records  map[string]AttendanceRecord
	pro      bool
}

// Snapshot captures a point-in-time clone of the store state. It is the unit
// of durable persistence: backends serialize the whole snapshot as one JSON
// document after every committed transaction.
type Snapshot struct {
	Groups   map[string]Group            `json:"groups"`
	People   map[string]Person           `json:"people"`
	Sessions map[string]Session          `json:"sessions"`
	Records  map[string]AttendanceRecord `json:"records"`
	Pro      bool                        `json:"is_pro"`
}

func newMemoryState() memoryState {
	return memoryState{
		groups:   make(map[string]Group),
		people:   make(map[string]Person),
		sessions: make(map[string]Session),
		records:  make(map[string]AttendanceRecord),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Groups:   make(map[string]Group, len(state.groups)),
		People:   make(map[string]Person, len(state.people)),
		Sessions: make(map[string]Session, len(state.sessions)),
		Records:  make(map[string]AttendanceRecord, len(state.records)),
		Pro:      state.pro,
	}
	for k, v := range state.groups {
		s.Groups[k] = cloneGroup(v)
	}
	for k, v := range state.people {
		s.People[k] = clonePerson(v)
	}
	for k, v := range state.sessions {
		s.Sessions[k] = cloneSession(v)
	}
	for k, v := range state.records {
		s.Records[k] = cloneRecord(v)
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	state.pro = s.Pro
	for k, v := range s.Groups {
		state.groups[k] = cloneGroup(v)
	}
	for k, v := range s.People {
		state.people[k] = clonePerson(v)
	}
	for k, v := range s.Sessions {
		state.sessions[k] = cloneSession(v)
	}
	for k, v := range s.Records {
		state.records[k] = cloneRecord(v)
	}
	return state
}

// migrateSnapshot normalizes a snapshot loaded from durable storage: nil
// collections become empty, the pro flag is forced on, and hard orphans left
// behind by older snapshots (people or sessions of a missing group, records
// of a missing session or person) are pruned. Records whose person has since
// moved to another group are kept; the rules engine surfaces them as
// warnings instead.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Groups == nil {
		snapshot.Groups = map[string]Group{}
	}
	if snapshot.People == nil {
		snapshot.People = map[string]Person{}
	}
	if snapshot.Sessions == nil {
		snapshot.Sessions = map[string]Session{}
	}
	if snapshot.Records == nil {
		snapshot.Records = map[string]AttendanceRecord{}
	}
	snapshot.Pro = true

	groupExists := func(id string) bool {
		_, ok := snapshot.Groups[id]
		return ok
	}
	for id, person := range snapshot.People {
		if person.GroupID == "" || !groupExists(person.GroupID) {
			delete(snapshot.People, id)
		}
	}
	for id, session := range snapshot.Sessions {
		if session.GroupID == "" || !groupExists(session.GroupID) {
			delete(snapshot.Sessions, id)
		}
	}
	for id, record := range snapshot.Records {
		if _, ok := snapshot.Sessions[record.SessionID]; !ok {
			delete(snapshot.Records, id)
			continue
		}
		if _, ok := snapshot.People[record.PersonID]; !ok {
			delete(snapshot.Records, id)
		}
	}
	return snapshot
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	cloned.pro = s.pro
	for k, v := range s.groups {
		cloned.groups[k] = cloneGroup(v)
	}
	for k, v := range s.people {
		cloned.people[k] = clonePerson(v)
	}
	for k, v := range s.sessions {
		cloned.sessions[k] = cloneSession(v)
	}
	for k, v := range s.records {
		cloned.records[k] = cloneRecord(v)
	}
	return cloned
}

func cloneGroup(g Group) Group {
	cp := g
	if g.Description != nil {
		d := *g.Description
		cp.Description = &d
	}
	return cp
}

func clonePerson(p Person) Person {
	cp := p
	if p.BirthYear != nil {
		y := *p.BirthYear
		cp.BirthYear = &y
	}
	return cp
}

func cloneSession(s Session) Session {
	cp := s
	if s.Topic != nil {
		t := *s.Topic
		cp.Topic = &t
	}
	return cp
}

func cloneRecord(r AttendanceRecord) AttendanceRecord { return r }

// Store provides an in-memory transactional store for the attendance ledger.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	state := newMemoryState()
	state.pro = true
	return &Store{
		state:  state,
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	return uuid.NewString()
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot after
// normalization.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// Empty reports whether the store holds no entities at all. Openers use it to
// decide whether the seed snapshot should be installed.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.groups) == 0 && len(s.state.people) == 0 &&
		len(s.state.sessions) == 0 && len(s.state.records) == 0
}

// Pro reports the entitlement stub flag. Always true after any import.
func (s *Store) Pro() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.pro
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// SetNowFunc overrides the time provider. Intended for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

// transaction represents a mutation set applied to the store state.
type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

// transactionView exposes a read-only snapshot of the transactional state to
// rules and reporting.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListGroups returns all groups within the snapshot.
func (v transactionView) ListGroups() []Group {
	out := make([]Group, 0, len(v.state.groups))
	for _, g := range v.state.groups {
		out = append(out, cloneGroup(g))
	}
	return out
}

// ListPeople returns all people within the snapshot.
func (v transactionView) ListPeople() []Person {
	out := make([]Person, 0, len(v.state.people))
	for _, p := range v.state.people {
		out = append(out, clonePerson(p))
	}
	return out
}

// ListSessions returns all sessions within the snapshot.
func (v transactionView) ListSessions() []Session {
	out := make([]Session, 0, len(v.state.sessions))
	for _, s := range v.state.sessions {
		out = append(out, cloneSession(s))
	}
	return out
}

// ListRecords returns all attendance records within the snapshot.
func (v transactionView) ListRecords() []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(v.state.records))
	for _, r := range v.state.records {
		out = append(out, cloneRecord(r))
	}
	return out
}

// FindGroup retrieves a group by ID from the snapshot.
func (v transactionView) FindGroup(id string) (Group, bool) {
	g, ok := v.state.groups[id]
	if !ok {
		return Group{}, false
	}
	return cloneGroup(g), true
}

// FindPerson retrieves a person by ID from the snapshot.
func (v transactionView) FindPerson(id string) (Person, bool) {
	p, ok := v.state.people[id]
	if !ok {
		return Person{}, false
	}
	return clonePerson(p), true
}

// FindSession retrieves a session by ID from the snapshot.
func (v transactionView) FindSession(id string) (Session, bool) {
	s, ok := v.state.sessions[id]
	if !ok {
		return Session{}, false
	}
	return cloneSession(s), true
}

// FindSessionByDate retrieves the session for a (group, date) pair, if any.
func (v transactionView) FindSessionByDate(groupID, date string) (Session, bool) {
	return findSessionByDate(v.state, groupID, date)
}

func findSessionByDate(state *memoryState, groupID, date string) (Session, bool) {
	for _, s := range state.sessions {
		if s.GroupID == groupID && s.Date == date {
			return cloneSession(s), true
		}
	}
	return Session{}, false
}

// RunInTransaction executes fn within a transactional copy of the store
// state. The copy replaces the committed state only when fn succeeds and no
// blocking rule violation is reported; readers never observe a partial
// cascade.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

// helper to record and append change entries.
func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindGroup exposes group lookup within the transaction scope.
func (tx *transaction) FindGroup(id string) (Group, bool) {
	g, ok := tx.state.groups[id]
	if !ok {
		return Group{}, false
	}
	return cloneGroup(g), true
}

// FindPerson exposes person lookup within the transaction scope.
func (tx *transaction) FindPerson(id string) (Person, bool) {
	p, ok := tx.state.people[id]
	if !ok {
		return Person{}, false
	}
	return clonePerson(p), true
}

// FindSessionByDate exposes the (group, date) composite lookup the
// reconciler relies on for find-or-create semantics.
func (tx *transaction) FindSessionByDate(groupID, date string) (Session, bool) {
	return findSessionByDate(&tx.state, groupID, date)
}

// CreateGroup stores a new group within the transaction.
func (tx *transaction) CreateGroup(g Group) (Group, error) {
	if g.ID == "" {
		g.ID = tx.store.newID()
	}
	if _, exists := tx.state.groups[g.ID]; exists {
		return Group{}, fmt.Errorf("group %q already exists", g.ID)
	}
	if g.Name == "" {
		return Group{}, errors.New("group name must not be empty")
	}
	g.CreatedAt = tx.now
	g.UpdatedAt = tx.now
	tx.state.groups[g.ID] = cloneGroup(g)
	tx.recordChange(Change{Entity: domain.EntityGroup, Action: domain.ActionCreate, After: cloneGroup(g)})
	return cloneGroup(g), nil
}

// UpdateGroup mutates an existing group.
func (tx *transaction) UpdateGroup(id string, mutator func(*Group) error) (Group, error) {
	current, ok := tx.state.groups[id]
	if !ok {
		return Group{}, fmt.Errorf("group %q not found", id)
	}
	before := cloneGroup(current)
	if err := mutator(&current); err != nil {
		return Group{}, err
	}
	if current.Name == "" {
		return Group{}, errors.New("group name must not be empty")
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.groups[id] = cloneGroup(current)
	tx.recordChange(Change{Entity: domain.EntityGroup, Action: domain.ActionUpdate, Before: before, After: cloneGroup(current)})
	return cloneGroup(current), nil
}

// DeleteGroup removes a group together with its people, its sessions, and
// every record referencing either. The cascade is a set difference over the
// transactional state; readers only ever see the complete result.
func (tx *transaction) DeleteGroup(id string) error {
	current, ok := tx.state.groups[id]
	if !ok {
		return fmt.Errorf("group %q not found", id)
	}
	removedSessions := make(map[string]struct{})
	for sid, session := range tx.state.sessions {
		if session.GroupID != id {
			continue
		}
		removedSessions[sid] = struct{}{}
		delete(tx.state.sessions, sid)
		tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionDelete, Before: cloneSession(session)})
	}
	removedPeople := make(map[string]struct{})
	for pid, person := range tx.state.people {
		if person.GroupID != id {
			continue
		}
		removedPeople[pid] = struct{}{}
		delete(tx.state.people, pid)
		tx.recordChange(Change{Entity: domain.EntityPerson, Action: domain.ActionDelete, Before: clonePerson(person)})
	}
	for rid, record := range tx.state.records {
		_, sessionGone := removedSessions[record.SessionID]
		_, personGone := removedPeople[record.PersonID]
		if !sessionGone && !personGone {
			continue
		}
		delete(tx.state.records, rid)
		tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionDelete, Before: cloneRecord(record)})
	}
	delete(tx.state.groups, id)
	tx.recordChange(Change{Entity: domain.EntityGroup, Action: domain.ActionDelete, Before: cloneGroup(current)})
	return nil
}

// CreatePerson stores a new person. The referenced group must exist.
func (tx *transaction) CreatePerson(p Person) (Person, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.people[p.ID]; exists {
		return Person{}, fmt.Errorf("person %q already exists", p.ID)
	}
	if p.GroupID == "" {
		return Person{}, errors.New("person requires group id")
	}
	if _, ok := tx.state.groups[p.GroupID]; !ok {
		return Person{}, fmt.Errorf("group %q not found", p.GroupID)
	}
	if p.FirstName == "" || p.LastName == "" {
		return Person{}, errors.New("person requires first and last name")
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.people[p.ID] = clonePerson(p)
	tx.recordChange(Change{Entity: domain.EntityPerson, Action: domain.ActionCreate, After: clonePerson(p)})
	return clonePerson(p), nil
}

// UpdatePerson mutates an existing person, re-validating the group reference
// so reassignment cannot point at a dead group.
func (tx *transaction) UpdatePerson(id string, mutator func(*Person) error) (Person, error) {
	current, ok := tx.state.people[id]
	if !ok {
		return Person{}, fmt.Errorf("person %q not found", id)
	}
	before := clonePerson(current)
	if err := mutator(&current); err != nil {
		return Person{}, err
	}
	if current.GroupID == "" {
		return Person{}, errors.New("person requires group id")
	}
	if _, ok := tx.state.groups[current.GroupID]; !ok {
		return Person{}, fmt.Errorf("group %q not found", current.GroupID)
	}
	if current.FirstName == "" || current.LastName == "" {
		return Person{}, errors.New("person requires first and last name")
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.people[id] = clonePerson(current)
	tx.recordChange(Change{Entity: domain.EntityPerson, Action: domain.ActionUpdate, Before: before, After: clonePerson(current)})
	return clonePerson(current), nil
}

// DeletePerson removes a person and every attendance record referencing them.
// Sessions and other people's records are untouched.
func (tx *transaction) DeletePerson(id string) error {
	current, ok := tx.state.people[id]
	if !ok {
		return fmt.Errorf("person %q not found", id)
	}
	for rid, record := range tx.state.records {
		if record.PersonID != id {
			continue
		}
		delete(tx.state.records, rid)
		tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionDelete, Before: cloneRecord(record)})
	}
	delete(tx.state.people, id)
	tx.recordChange(Change{Entity: domain.EntityPerson, Action: domain.ActionDelete, Before: clonePerson(current)})
	return nil
}

// CreateSession stores a new session. The (group, date) slot must be free.
func (tx *transaction) CreateSession(s Session) (Session, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.sessions[s.ID]; exists {
		return Session{}, fmt.Errorf("session %q already exists", s.ID)
	}
	if s.GroupID == "" {
		return Session{}, errors.New("session requires group id")
	}
	if _, ok := tx.state.groups[s.GroupID]; !ok {
		return Session{}, fmt.Errorf("group %q not found", s.GroupID)
	}
	if !domain.ValidDate(s.Date) {
		return Session{}, fmt.Errorf("invalid session date %q", s.Date)
	}
	if !s.Type.Valid() {
		return Session{}, fmt.Errorf("invalid session type %q", s.Type)
	}
	if existing, ok := findSessionByDate(&tx.state, s.GroupID, s.Date); ok {
		return Session{}, fmt.Errorf("session %q already covers group %q on %s", existing.ID, s.GroupID, s.Date)
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.sessions[s.ID] = cloneSession(s)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionCreate, After: cloneSession(s)})
	return cloneSession(s), nil
}

// UpdateSession mutates an existing session, keeping the (group, date) slot
// unique.
func (tx *transaction) UpdateSession(id string, mutator func(*Session) error) (Session, error) {
	current, ok := tx.state.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %q not found", id)
	}
	before := cloneSession(current)
	if err := mutator(&current); err != nil {
		return Session{}, err
	}
	if current.GroupID == "" {
		return Session{}, errors.New("session requires group id")
	}
	if _, ok := tx.state.groups[current.GroupID]; !ok {
		return Session{}, fmt.Errorf("group %q not found", current.GroupID)
	}
	if !domain.ValidDate(current.Date) {
		return Session{}, fmt.Errorf("invalid session date %q", current.Date)
	}
	if !current.Type.Valid() {
		return Session{}, fmt.Errorf("invalid session type %q", current.Type)
	}
	if existing, ok := findSessionByDate(&tx.state, current.GroupID, current.Date); ok && existing.ID != id {
		return Session{}, fmt.Errorf("session %q already covers group %q on %s", existing.ID, current.GroupID, current.Date)
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.sessions[id] = cloneSession(current)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionUpdate, Before: before, After: cloneSession(current)})
	return cloneSession(current), nil
}

// DeleteSession removes a session and every record referencing it.
func (tx *transaction) DeleteSession(id string) error {
	current, ok := tx.state.sessions[id]
	if !ok {
		return fmt.Errorf("session %q not found", id)
	}
	for rid, record := range tx.state.records {
		if record.SessionID != id {
			continue
		}
		delete(tx.state.records, rid)
		tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionDelete, Before: cloneRecord(record)})
	}
	delete(tx.state.sessions, id)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionDelete, Before: cloneSession(current)})
	return nil
}

// CreateRecord stores a new attendance record. Session and person must be
// live and the (session, person) slot free.
func (tx *transaction) CreateRecord(r AttendanceRecord) (AttendanceRecord, error) {
	if r.ID == "" {
		r.ID = tx.store.newID()
	}
	if _, exists := tx.state.records[r.ID]; exists {
		return AttendanceRecord{}, fmt.Errorf("attendance record %q already exists", r.ID)
	}
	if _, ok := tx.state.sessions[r.SessionID]; !ok {
		return AttendanceRecord{}, fmt.Errorf("session %q not found", r.SessionID)
	}
	if _, ok := tx.state.people[r.PersonID]; !ok {
		return AttendanceRecord{}, fmt.Errorf("person %q not found", r.PersonID)
	}
	if !r.Status.Valid() {
		return AttendanceRecord{}, fmt.Errorf("invalid attendance status %q", r.Status)
	}
	for _, existing := range tx.state.records {
		if existing.SessionID == r.SessionID && existing.PersonID == r.PersonID {
			return AttendanceRecord{}, fmt.Errorf("record %q already covers person %q in session %q", existing.ID, r.PersonID, r.SessionID)
		}
	}
	r.CreatedAt = tx.now
	r.UpdatedAt = tx.now
	tx.state.records[r.ID] = cloneRecord(r)
	tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionCreate, After: cloneRecord(r)})
	return cloneRecord(r), nil
}

// DeleteRecord removes a single attendance record.
func (tx *transaction) DeleteRecord(id string) error {
	current, ok := tx.state.records[id]
	if !ok {
		return fmt.Errorf("attendance record %q not found", id)
	}
	delete(tx.state.records, id)
	tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionDelete, Before: cloneRecord(current)})
	return nil
}

// DeleteSessionRecords drops every record referencing the session,
// returning the number removed.
func (tx *transaction) DeleteSessionRecords(sessionID string) int {
	removed := 0
	for rid, record := range tx.state.records {
		if record.SessionID != sessionID {
			continue
		}
		delete(tx.state.records, rid)
		tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionDelete, Before: cloneRecord(record)})
		removed++
	}
	return removed
}

// Read helpers ---------------------------------------------------------------

// GetGroup retrieves a group by ID from committed state.
func (s *Store) GetGroup(id string) (Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.state.groups[id]
	if !ok {
		return Group{}, false
	}
	return cloneGroup(g), true
}

// ListGroups returns all groups from committed state.
func (s *Store) ListGroups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Group, 0, len(s.state.groups))
	for _, g := range s.state.groups {
		out = append(out, cloneGroup(g))
	}
	return out
}

// GetPerson retrieves a person by ID from committed state.
func (s *Store) GetPerson(id string) (Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.people[id]
	if !ok {
		return Person{}, false
	}
	return clonePerson(p), true
}

// ListPeople returns all people from committed state.
func (s *Store) ListPeople() []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Person, 0, len(s.state.people))
	for _, p := range s.state.people {
		out = append(out, clonePerson(p))
	}
	return out
}

// ListSessions returns all sessions from committed state.
func (s *Store) ListSessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.state.sessions))
	for _, sess := range s.state.sessions {
		out = append(out, cloneSession(sess))
	}
	return out
}

// ListRecords returns all attendance records from committed state.
func (s *Store) ListRecords() []AttendanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AttendanceRecord, 0, len(s.state.records))
	for _, r := range s.state.records {
		out = append(out, cloneRecord(r))
	}
	return out
}
