// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives of the attendance ledger.
package domain

import "time"

// EntityType identifies the type of record stored in the ledger.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityGroup identifies a training group record.
	EntityGroup EntityType = "group"
	// EntityPerson identifies a roster member record.
	EntityPerson EntityType = "person"
	// EntitySession identifies a dated, group-scoped session record.
	EntitySession EntityType = "session"
	// EntityRecord identifies a per-person attendance record.
	EntityRecord EntityType = "attendance_record"
)

// SessionType distinguishes regular training sessions from competitions.
type SessionType string

// Canonical session types recognised by the reconciler.
const (
	SessionClass       SessionType = "CLASS"
	SessionCompetition SessionType = "COMPETITION"
)

// Valid reports whether the session type is one of the canonical values.
func (t SessionType) Valid() bool {
	return t == SessionClass || t == SessionCompetition
}

// AttendanceStatus captures a person's presence at a session.
type AttendanceStatus string

// Canonical attendance statuses stored on records.
const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid reports whether the status is one of the canonical values.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// DateLayout is the calendar date format used throughout the ledger. Dates
// carry no time component and compare lexically because the format is
// zero-padded.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed zero-padded ISO calendar date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all ledger records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Group represents a training group owned by a coach.
type Group struct {
	Base
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Person represents one roster member. A person belongs to exactly one group
// at any time; reassignment happens by editing GroupID.
type Person struct {
	Base
	GroupID   string  `json:"group_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthYear *string `json:"birth_year,omitempty"`
}

// Session represents one dated training or competition event for a group.
// At most one session exists per (GroupID, Date) pair.
type Session struct {
	Base
	GroupID string      `json:"group_id"`
	Date    string      `json:"date"`
	Type    SessionType `json:"type"`
	Topic   *string     `json:"topic,omitempty"`
}

// AttendanceRecord stores one person's presence at one session. At most one
// record exists per (SessionID, PersonID) pair; the reconciler replaces the
// full record set of a session on every save.
type AttendanceRecord struct {
	Base
	SessionID string           `json:"session_id"`
	PersonID  string           `json:"person_id"`
	Status    AttendanceStatus `json:"status"`
}

// Ledger is the read-side aggregate snapshot handed to collaborators. It is a
// value: mutating it has no effect on stored state, which changes only
// through typed service commands.
type Ledger struct {
	Groups   []Group            `json:"groups"`
	People   []Person           `json:"people"`
	Sessions []Session          `json:"sessions"`
	Records  []AttendanceRecord `json:"records"`
	Pro      bool               `json:"is_pro"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// Warnings returns the non-blocking violations for logging surfaces.
func (r Result) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityWarn {
			out = append(out, v)
		}
	}
	return out
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
