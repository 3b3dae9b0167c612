package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV renders the report in the spreadsheet-import format: UTF-8 with a
// BOM so Excel detects the encoding, semicolon separated, one column per
// session date, "X" marking presence.
func WriteCSV(w io.Writer, report Report) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write byte order mark: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{"Nazwisko", "Imię", "Rocznik"}
	for _, col := range report.Sessions {
		header = append(header, col.Session.Date)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range report.Rows {
		birthYear := ""
		if row.Person.BirthYear != nil {
			birthYear = *row.Person.BirthYear
		}
		record := []string{row.Person.LastName, row.Person.FirstName, birthYear}
		for _, present := range row.Present {
			if present {
				record = append(record, "X")
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s %s: %w", row.Person.LastName, row.Person.FirstName, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
