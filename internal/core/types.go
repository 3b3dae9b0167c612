// Package core exposes the attendance ledger service: typed commands over a
// persistent store, rules, seed data, reporting, and observability hooks.
package core

import (
	"rostercore/internal/infra/persistence/memory"
	"rostercore/pkg/domain"
)

type (
	// Group aliases domain.Group for service consumers.
	Group = domain.Group
	// Person aliases domain.Person.
	Person = domain.Person
	// Session aliases domain.Session.
	Session = domain.Session
	// AttendanceRecord aliases domain.AttendanceRecord.
	AttendanceRecord = domain.AttendanceRecord
	// Ledger aliases the read-side aggregate snapshot.
	Ledger = domain.Ledger
	// Result aliases domain.Result returned by every command.
	Result = domain.Result
	// Rule aliases domain.Rule.
	Rule = domain.Rule
	// RulesEngine aliases domain.RulesEngine.
	RulesEngine = domain.RulesEngine
	// PersistentStore aliases the storage abstraction the service runs on.
	PersistentStore = domain.PersistentStore
)

// NewRulesEngine constructs an empty rules engine.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

// NewMemoryStore constructs the in-memory store implementation.
func NewMemoryStore(engine *RulesEngine) *memory.Store {
	return memory.NewStore(engine)
}
