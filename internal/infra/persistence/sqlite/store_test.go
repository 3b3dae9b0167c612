package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"rostercore/internal/infra/persistence/memory"
	"rostercore/pkg/domain"
)

func TestPersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if store.LoadErr() != nil {
		t.Fatalf("fresh database reported load error: %v", store.LoadErr())
	}

	var group domain.Group
	var person domain.Person
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		g, err := tx.CreateGroup(domain.Group{Name: "Rocznik 2012"})
		if err != nil {
			return err
		}
		group = g
		p, err := tx.CreatePerson(domain.Person{GroupID: g.ID, FirstName: "Jan", LastName: "Kowalski"})
		if err != nil {
			return err
		}
		person = p
		s, err := tx.CreateSession(domain.Session{GroupID: g.ID, Date: "2025-03-10", Type: domain.SessionClass})
		if err != nil {
			return err
		}
		_, err = tx.CreateRecord(domain.AttendanceRecord{SessionID: s.ID, PersonID: p.ID, Status: domain.StatusPresent})
		return err
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	if reopened.LoadErr() != nil {
		t.Fatalf("reload reported error: %v", reopened.LoadErr())
	}
	got, ok := reopened.GetGroup(group.ID)
	if !ok || got.Name != "Rocznik 2012" {
		t.Fatalf("group did not survive reload: %+v ok=%v", got, ok)
	}
	if _, ok := reopened.GetPerson(person.ID); !ok {
		t.Fatal("person did not survive reload")
	}
	if len(reopened.ListSessions()) != 1 || len(reopened.ListRecords()) != 1 {
		t.Fatal("sessions or records did not survive reload")
	}
	if !reopened.Pro() {
		t.Fatal("pro flag must be on after reload")
	}
}

func TestCorruptSnapshotFallsBackEmptyAndReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.DB().Exec(`INSERT INTO state (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, storageKey, []byte("{not json")); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	if reopened.LoadErr() == nil {
		t.Fatal("expected decode failure to be reported")
	}
	if !reopened.Empty() {
		t.Fatal("expected empty fallback state")
	}
}

func TestImportStatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	snapshot := memory.Snapshot{
		Groups: map[string]domain.Group{
			"g1": {Base: domain.Base{ID: "g1"}, Name: "Seniorzy"},
		},
	}
	if err := store.ImportState(snapshot); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	if _, ok := reopened.GetGroup("g1"); !ok {
		t.Fatal("imported snapshot did not persist")
	}
}

func TestRollbackDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	wantErr := context.Canceled
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateGroup(domain.Group{Name: "Rocznik 2012"}); err != nil {
			return err
		}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	if !reopened.Empty() {
		t.Fatal("rolled back transaction must not reach disk")
	}
}
