package core

import (
	"time"

	"rostercore/internal/infra/persistence/memory"
	"rostercore/pkg/domain"
)

// SeedSnapshot is the starter roster installed into an empty store: two
// groups and four people, no sessions or records.
func SeedSnapshot() memory.Snapshot {
	now := time.Now().UTC()
	base := func(id string) domain.Base {
		return domain.Base{ID: id, CreatedAt: now, UpdatedAt: now}
	}
	str := func(s string) *string { return &s }

	return memory.Snapshot{
		Groups: map[string]domain.Group{
			"seed-group-2012": {
				Base:        base("seed-group-2012"),
				Name:        "Rocznik 2012",
				Description: str("Trening piłkarski"),
			},
			"seed-group-seniors": {
				Base:        base("seed-group-seniors"),
				Name:        "Seniorzy",
				Description: str("Pierwszy skład"),
			},
		},
		People: map[string]domain.Person{
			"seed-person-1": {
				Base:      base("seed-person-1"),
				GroupID:   "seed-group-2012",
				FirstName: "Jan",
				LastName:  "Kowalski",
				BirthYear: str("2012"),
			},
			"seed-person-2": {
				Base:      base("seed-person-2"),
				GroupID:   "seed-group-2012",
				FirstName: "Anna",
				LastName:  "Nowak",
				BirthYear: str("2012"),
			},
			"seed-person-3": {
				Base:      base("seed-person-3"),
				GroupID:   "seed-group-2012",
				FirstName: "Piotr",
				LastName:  "Wiśniewski",
				BirthYear: str("2013"),
			},
			"seed-person-4": {
				Base:      base("seed-person-4"),
				GroupID:   "seed-group-seniors",
				FirstName: "Adam",
				LastName:  "Lewandowski",
				BirthYear: str("1995"),
			},
		},
		Sessions: map[string]domain.Session{},
		Records:  map[string]domain.AttendanceRecord{},
		Pro:      true,
	}
}
