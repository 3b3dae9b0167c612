package reporting

import (
	"bytes"
	"strings"
	"testing"

	"rostercore/pkg/domain"
)

func sampleReport() Report {
	year := "2012"
	return Report{
		GroupID:   "g1",
		GroupName: "Rocznik 2012",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Sessions: []SessionColumn{
			{Session: domain.Session{Base: domain.Base{ID: "s1"}, Date: "2025-03-10"}},
			{Session: domain.Session{Base: domain.Base{ID: "s2"}, Date: "2025-03-12"}},
		},
		Rows: []Row{
			{
				Person:       domain.Person{Base: domain.Base{ID: "p1"}, FirstName: "Jan", LastName: "Kowalski", BirthYear: &year},
				Present:      []bool{true, false},
				PresentCount: 1,
				Percentage:   50,
			},
			{
				Person:       domain.Person{Base: domain.Base{ID: "p2"}, FirstName: "Anna", LastName: "Nowak"},
				Present:      []bool{false, true},
				PresentCount: 1,
				Percentage:   50,
			},
		},
	}
}

func TestWriteCSVFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.Bytes()

	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("output must start with UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Nazwisko;Imię;Rocznik;2025-03-10;2025-03-12" {
		t.Fatalf("header mismatch: %q", lines[0])
	}
	if lines[1] != "Kowalski;Jan;2012;X;" {
		t.Fatalf("first row mismatch: %q", lines[1])
	}
	if lines[2] != "Nowak;Anna;;;X" {
		t.Fatalf("second row mismatch: %q", lines[2])
	}
}

func TestWriteCSVEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	report := Report{GroupID: "g1", GroupName: "-", StartDate: "2025-03-01", EndDate: "2025-03-31"}
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	got := strings.TrimRight(strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF"), "\n")
	if got != "Nazwisko;Imię;Rocznik" {
		t.Fatalf("expected bare header, got %q", got)
	}
}
