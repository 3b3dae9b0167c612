package reporting

import (
	"bytes"
	"context"
	"io"
	"testing"

	blobmemory "rostercore/internal/infra/blob/memory"
)

func TestExportCSVStoresArtifact(t *testing.T) {
	blobs := blobmemory.NewStore()
	exporter := NewExporter(blobs)

	info, err := exporter.ExportCSV(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	wantKey := "reports/g1/2025-03-01_2025-03-31.csv"
	if info.Key != wantKey {
		t.Fatalf("artifact key: got %q want %q", info.Key, wantKey)
	}
	if info.ContentType != CSVContentType {
		t.Fatalf("content type: %q", info.ContentType)
	}

	rc, _, err := blobs.Get(context.Background(), wantKey)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("stored artifact must carry BOM")
	}
	if !bytes.Contains(data, []byte("Nazwisko;Imię;Rocznik")) {
		t.Fatal("stored artifact missing header")
	}
}

func TestExportCSVReplacesPreviousArtifact(t *testing.T) {
	blobs := blobmemory.NewStore()
	exporter := NewExporter(blobs)
	report := sampleReport()

	if _, err := exporter.ExportCSV(context.Background(), report); err != nil {
		t.Fatalf("first export: %v", err)
	}
	report.Rows = report.Rows[:1]
	if _, err := exporter.ExportCSV(context.Background(), report); err != nil {
		t.Fatalf("second export: %v", err)
	}

	infos, err := blobs.List(context.Background(), "reports/g1/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected a single artifact, got %d", len(infos))
	}

	rc, _, err := blobs.Get(context.Background(), infos[0].Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if bytes.Contains(data, []byte("Nowak")) {
		t.Fatal("replaced artifact still holds old rows")
	}
}
