package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunRequiresFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "required") {
		t.Fatalf("expected usage message, got %q", errOut.String())
	}
}

func TestRunPrintsCSVFromSeededMemoryStore(t *testing.T) {
	t.Setenv("ROSTERCORE_STORAGE_DRIVER", "memory")

	var out, errOut bytes.Buffer
	code := run([]string{"-group", "seed-group-2012", "-from", "2025-01-01", "-to", "2025-12-31"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut.String())
	}
	got := out.String()
	if !strings.Contains(got, "Nazwisko;Imię;Rocznik") {
		t.Fatalf("missing header: %q", got)
	}
	// Seed roster members of the 2012 group show up even with no sessions.
	for _, name := range []string{"Kowalski", "Nowak", "Wiśniewski"} {
		if !strings.Contains(got, name) {
			t.Fatalf("missing %s in output: %q", name, got)
		}
	}
	if strings.Contains(got, "Lewandowski") {
		t.Fatal("other group's member leaked into the report")
	}
}

func TestRunUploadsToMemoryBlobStore(t *testing.T) {
	t.Setenv("ROSTERCORE_STORAGE_DRIVER", "memory")
	t.Setenv("ROSTERCORE_BLOB_DRIVER", "memory")

	var out, errOut bytes.Buffer
	code := run([]string{"-group", "seed-group-2012", "-from", "2025-01-01", "-to", "2025-12-31", "-upload"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "reports/seed-group-2012/2025-01-01_2025-12-31.csv") {
		t.Fatalf("missing artifact key in output: %q", out.String())
	}
}
