package csvutil

import (
	"bytes"
	"encoding/csv"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSanitizeField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Jane Doe", "Jane Doe"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-x", "'-x"},
		{"@cmd", "'@cmd"},
	}
	for _, tt := range tests {
		if got := SanitizeField(tt.in); got != tt.want {
			t.Errorf("SanitizeField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"a", "b"}, [][]string{{"1", "two, three"}, {"x", `say "hi"`}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), BOM) {
		t.Fatal("expected UTF-8 BOM")
	}
	body := buf.String()[len(BOM):]
	if !strings.Contains(body, "\r\n") {
		t.Error("expected CRLF line endings")
	}

	recs, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 3 || recs[1][1] != "two, three" || recs[2][1] != `say "hi"` {
		t.Errorf("unexpected records: %q", recs)
	}
}

func TestSetDownloadHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SetDownloadHeaders(rec, "attendance-2024-01-02.csv")
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="attendance-2024-01-02.csv"` {
		t.Errorf("Content-Disposition: got %q", got)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("Content-Type: got %q", rec.Header().Get("Content-Type"))
	}
}
