package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidDate(t *testing.T) {
	valid := []string{"2025-03-10", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		if !ValidDate(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	invalid := []string{"", "2025-3-10", "2025-03-1", "10-03-2025", "2025-13-01", "2025-02-30", "2025-03-10T00:00:00Z"}
	for _, s := range invalid {
		if ValidDate(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if !SessionClass.Valid() || !SessionCompetition.Valid() {
		t.Fatal("canonical session types must be valid")
	}
	if SessionType("TRAINING").Valid() || SessionType("").Valid() {
		t.Fatal("unknown session types must be invalid")
	}
	if !StatusPresent.Valid() || !StatusAbsent.Valid() {
		t.Fatal("canonical statuses must be valid")
	}
	if AttendanceStatus("LATE").Valid() {
		t.Fatal("unknown statuses must be invalid")
	}
}

func TestPersonJSONOmitsEmptyOptionalFields(t *testing.T) {
	person := Person{
		Base:      Base{ID: "p1", CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		GroupID:   "g1",
		FirstName: "Jan",
		LastName:  "Kowalski",
	}
	data, err := json.Marshal(person)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "birth_year") {
		t.Fatalf("nil birth year must be omitted: %s", data)
	}
	if !strings.Contains(string(data), `"group_id":"g1"`) {
		t.Fatalf("snake_case keys expected: %s", data)
	}

	var decoded Person
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.LastName != "Kowalski" || decoded.BirthYear != nil {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestLedgerJSONUsesIsProKey(t *testing.T) {
	data, err := json.Marshal(Ledger{Pro: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"is_pro":true`) {
		t.Fatalf("expected is_pro key: %s", data)
	}
}

func TestResultMergeAndSeverityHelpers(t *testing.T) {
	var combined Result
	combined.Merge(Result{})
	if len(combined.Violations) != 0 {
		t.Fatal("merging an empty result must not allocate")
	}

	combined.Merge(Result{Violations: []Violation{
		{Rule: "a", Severity: SeverityWarn},
		{Rule: "b", Severity: SeverityLog},
	}})
	combined.Merge(Result{Violations: []Violation{
		{Rule: "c", Severity: SeverityBlock},
	}})

	if len(combined.Violations) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(combined.Violations))
	}
	if !combined.HasBlocking() {
		t.Fatal("expected blocking violation")
	}
	warnings := combined.Warnings()
	if len(warnings) != 1 || warnings[0].Rule != "a" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	err := RuleViolationError{Result: combined}
	if err.Error() == "" {
		t.Fatal("error string must not be empty")
	}
}
