// Package csvutil writes spreadsheet-safe CSV downloads.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// BOM makes Excel detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// SanitizeField neutralises cells that a spreadsheet would evaluate as a
// formula by prefixing a single quote.
func SanitizeField(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}

// SetDownloadHeaders marks the response as a CSV attachment named filename.
func SetDownloadHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
}

// Write emits the BOM, header and rows to w with CRLF line endings.
func Write(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
