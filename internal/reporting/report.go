// Package reporting aggregates attendance data into date-range matrices and
// renders them as CSV artifacts.
package reporting

import (
	"math"
	"sort"

	"rostercore/pkg/domain"
)

// SessionColumn is one column of the attendance matrix.
type SessionColumn struct {
	Session domain.Session
	Holiday bool
}

// Row is one person's attendance across the report's session columns.
// Present is index-aligned with Report.Sessions; a missing record counts as
// not present.
type Row struct {
	Person       domain.Person
	Present      []bool
	PresentCount int
	// Percentage is round(PresentCount / len(Sessions) * 100), 0 when the
	// range holds no sessions.
	Percentage int
}

// Report is the attendance matrix for one group over an inclusive date range.
type Report struct {
	GroupID   string
	GroupName string
	StartDate string
	EndDate   string
	Sessions  []SessionColumn
	Rows      []Row
}

// Build assembles the report from a ledger view. An unknown group degrades to
// a placeholder name rather than an error so exports keep working after a
// group was deleted mid-flight.
func Build(view domain.TransactionView, groupID, startDate, endDate string) Report {
	report := Report{
		GroupID:   groupID,
		GroupName: "-",
		StartDate: startDate,
		EndDate:   endDate,
	}
	if group, ok := view.FindGroup(groupID); ok {
		report.GroupName = group.Name
	}

	var sessions []domain.Session
	for _, s := range view.ListSessions() {
		if s.GroupID != groupID {
			continue
		}
		// Dates are zero-padded ISO so lexical comparison is date order.
		if s.Date < startDate || s.Date > endDate {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].ID < sessions[j].ID
	})
	report.Sessions = make([]SessionColumn, 0, len(sessions))
	sessionIndex := make(map[string]int, len(sessions))
	for i, s := range sessions {
		report.Sessions = append(report.Sessions, SessionColumn{Session: s, Holiday: IsPolishHoliday(s.Date)})
		sessionIndex[s.ID] = i
	}

	var people []domain.Person
	for _, p := range view.ListPeople() {
		if p.GroupID == groupID {
			people = append(people, p)
		}
	}
	sort.Slice(people, func(i, j int) bool {
		if people[i].LastName != people[j].LastName {
			return people[i].LastName < people[j].LastName
		}
		if !people[i].CreatedAt.Equal(people[j].CreatedAt) {
			return people[i].CreatedAt.Before(people[j].CreatedAt)
		}
		return people[i].ID < people[j].ID
	})

	presence := make(map[string]map[string]bool, len(people))
	for _, r := range view.ListRecords() {
		if _, ok := sessionIndex[r.SessionID]; !ok {
			continue
		}
		byPerson, ok := presence[r.PersonID]
		if !ok {
			byPerson = make(map[string]bool)
			presence[r.PersonID] = byPerson
		}
		byPerson[r.SessionID] = r.Status == domain.StatusPresent
	}

	report.Rows = make([]Row, 0, len(people))
	for _, person := range people {
		row := Row{
			Person:  person,
			Present: make([]bool, len(sessions)),
		}
		for sessionID, present := range presence[person.ID] {
			if !present {
				continue
			}
			row.Present[sessionIndex[sessionID]] = true
			row.PresentCount++
		}
		if len(sessions) > 0 {
			row.Percentage = int(math.Round(float64(row.PresentCount) / float64(len(sessions)) * 100))
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}
