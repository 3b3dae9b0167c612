package reporting

import (
	"bytes"
	"context"
	"fmt"

	blobcore "rostercore/internal/blob/core"
)

// CSVContentType is set on exported report artifacts.
const CSVContentType = "text/csv; charset=utf-8"

// ArtifactKey returns the blob key a report export is stored under.
// Re-exporting the same group and range replaces the artifact.
func ArtifactKey(groupID, startDate, endDate string) string {
	return fmt.Sprintf("reports/%s/%s_%s.csv", groupID, startDate, endDate)
}

// Exporter renders reports to CSV and stores them as blob artifacts.
type Exporter struct {
	blobs blobcore.Store
}

// NewExporter binds the exporter to a blob store.
func NewExporter(blobs blobcore.Store) *Exporter {
	return &Exporter{blobs: blobs}
}

// ExportCSV renders the report and uploads it, returning the stored object's
// metadata. Any previous artifact for the same group and range is replaced.
func (e *Exporter) ExportCSV(ctx context.Context, report Report) (blobcore.Info, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		return blobcore.Info{}, fmt.Errorf("render report csv: %w", err)
	}
	key := ArtifactKey(report.GroupID, report.StartDate, report.EndDate)
	if err := e.blobs.Delete(ctx, key); err != nil {
		return blobcore.Info{}, fmt.Errorf("replace report artifact: %w", err)
	}
	info, err := e.blobs.Put(ctx, key, &buf, blobcore.PutOptions{ContentType: CSVContentType})
	if err != nil {
		return blobcore.Info{}, fmt.Errorf("store report artifact: %w", err)
	}
	return info, nil
}
