package domain

import "context"

// Transaction exposes the ledger operations that a persistence implementation
// must support within an atomic scope. Deletes cascade: removing a group
// removes its people, sessions, and their records; removing a person removes
// that person's records.
type Transaction interface {
	Snapshot() TransactionView
	CreateGroup(Group) (Group, error)
	UpdateGroup(id string, mutator func(*Group) error) (Group, error)
	DeleteGroup(id string) error
	CreatePerson(Person) (Person, error)
	UpdatePerson(id string, mutator func(*Person) error) (Person, error)
	DeletePerson(id string) error
	CreateSession(Session) (Session, error)
	UpdateSession(id string, mutator func(*Session) error) (Session, error)
	DeleteSession(id string) error
	CreateRecord(AttendanceRecord) (AttendanceRecord, error)
	DeleteRecord(id string) error
	// DeleteSessionRecords removes every record referencing the session and
	// returns how many were dropped. The reconciler uses it to make every
	// save a full replace rather than a merge.
	DeleteSessionRecords(sessionID string) int
	FindGroup(id string) (Group, bool)
	FindPerson(id string) (Person, bool)
	FindSessionByDate(groupID, date string) (Session, bool)
}

// TransactionView provides read-only access to snapshot data for rules and
// reporting.
type TransactionView interface {
	ListGroups() []Group
	ListPeople() []Person
	ListSessions() []Session
	ListRecords() []AttendanceRecord
	FindGroup(id string) (Group, bool)
	FindPerson(id string) (Person, bool)
	FindSession(id string) (Session, bool)
	FindSessionByDate(groupID, date string) (Session, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetGroup(id string) (Group, bool)
	ListGroups() []Group
	GetPerson(id string) (Person, bool)
	ListPeople() []Person
	ListSessions() []Session
	ListRecords() []AttendanceRecord
	Pro() bool
}
