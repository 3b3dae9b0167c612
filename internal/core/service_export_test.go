package core

import (
	"bytes"
	"context"
	"io"
	"testing"

	blobmemory "rostercore/internal/infra/blob/memory"
	"rostercore/pkg/domain"
)

func TestExportAttendanceCSVEndToEnd(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	group := seedGroup(t, svc, "Rocznik 2012")
	kowal := seedPerson(t, svc, group.ID, "Jan", "Kowalski")
	nowak := seedPerson(t, svc, group.ID, "Anna", "Nowak")

	if _, _, err := svc.RecordAttendance(ctx, AttendanceSheet{
		GroupID: group.ID,
		Date:    "2025-03-10",
		Type:    domain.SessionClass,
		Statuses: map[string]domain.AttendanceStatus{
			kowal.ID: domain.StatusPresent,
			nowak.ID: domain.StatusAbsent,
		},
	}); err != nil {
		t.Fatalf("record attendance: %v", err)
	}

	blobs := blobmemory.NewStore()
	info, err := svc.ExportAttendanceCSV(ctx, blobs, group.ID, "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	wantKey := "reports/" + group.ID + "/2025-03-01_2025-03-31.csv"
	if info.Key != wantKey {
		t.Fatalf("artifact key: %q", info.Key)
	}

	rc, _, err := blobs.Get(ctx, wantKey)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Contains(data, []byte("Nazwisko;Imię;Rocznik;2025-03-10")) {
		t.Fatalf("missing header: %s", data)
	}
	if !bytes.Contains(data, []byte("Kowalski;Jan;;X")) {
		t.Fatalf("missing presence row: %s", data)
	}
	if !bytes.Contains(data, []byte("Nowak;Anna;;")) {
		t.Fatalf("missing absence row: %s", data)
	}
}

func TestExportAttendanceCSVRejectsBadRange(t *testing.T) {
	svc := newTestService(t)
	blobs := blobmemory.NewStore()
	if _, err := svc.ExportAttendanceCSV(context.Background(), blobs, "g", "2025-03-31", "2025-03-01"); err == nil {
		t.Fatal("expected range validation error")
	}
	infos, _ := blobs.List(context.Background(), "")
	if len(infos) != 0 {
		t.Fatal("failed export must not store artifacts")
	}
}
