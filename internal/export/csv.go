package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes the header line and one line per row, with "%" removed
// from every cell. Cells are joined with bare commas and never quoted, so a
// cell that itself contains a comma shifts the columns of its line.
func WriteCSV(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Headers, ",") + "\n"); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range rows {
		if _, err := bw.WriteString(strings.Join(stripPercent(row), ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return bw.Flush()
}
