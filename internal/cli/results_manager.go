package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dyike/indexstats/internal/export"
)

// ExportSummary describes one file in the export directory.
type ExportSummary struct {
	Name       string
	Format     string
	ModifiedAt time.Time
	FilePath   string
	FileSize   int64
}

// ResultsManager looks after the files written by the exporters.
type ResultsManager struct {
	exportDir string
}

func NewResultsManager(exportDir string) *ResultsManager {
	return &ResultsManager{exportDir: exportDir}
}

// ListExports returns the known export files, newest first. A missing export
// directory yields an empty list.
func (rm *ResultsManager) ListExports() ([]ExportSummary, error) {
	var results []ExportSummary
	for _, name := range []string{export.CSVFileName, export.PDFFileName} {
		path := filepath.Join(rm.exportDir, name)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		results = append(results, ExportSummary{
			Name:       name,
			Format:     strings.TrimPrefix(filepath.Ext(name), "."),
			ModifiedAt: info.ModTime(),
			FilePath:   path,
			FileSize:   info.Size(),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ModifiedAt.After(results[j].ModifiedAt)
	})
	return results, nil
}

// PrintExports writes one line per export file.
func (rm *ResultsManager) PrintExports(w io.Writer) error {
	results, err := rm.ListExports()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(w, "📭 No exports in %s\n", rm.exportDir)
		return nil
	}

	fmt.Fprintf(w, "📂 Exports in %s\n", rm.exportDir)
	for _, r := range results {
		fmt.Fprintf(w, "  %-4s %-22s %10s  %s\n",
			strings.ToUpper(r.Format),
			r.Name,
			humanize.Bytes(uint64(r.FileSize)),
			humanize.Time(r.ModifiedAt),
		)
	}
	return nil
}

// describeExport is the confirmation line printed after an export.
func describeExport(r *export.Result) string {
	return fmt.Sprintf("Exported %d rows to %s (%s)", r.Rows, r.Path, humanize.Bytes(uint64(r.Bytes)))
}
