// internal/app/features/attendance/export.go
package attendance

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/csvutil"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportHeader is the column order of both export formats.
var ExportHeader = []string{"Employee ID", "Employee Name", "Check In", "Check Out", "Hours", "Status"}

const xlsxSheet = "Attendance"

// ExportRows renders records the way the table shows them. The employee name
// is neutralised against spreadsheet formula injection; the employee code is
// API-assigned and written as is so it reads back unchanged.
func ExportRows(recs []models.AttendanceRecord, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.EmployeeID,
			csvutil.SanitizeField(rec.EmployeeName),
			timezones.FormatTime(rec.CheckInTime, loc),
			checkOutCell(rec, loc),
			WorkingHours(rec.CheckInTime, rec.CheckOutTime),
			rec.EffectiveStatus().Label(),
		})
	}
	return rows
}

// exportRecords loads the records for the request's selection. It reports
// false when the response has already been written.
func (h *Handler) exportRecords(w http.ResponseWriter, r *http.Request) (dayFilter, []models.AttendanceRecord, bool) {
	f, err := parseDayFilter(r.URL.Query(), h.Loc, h.now())
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad export filter", err, "Invalid date.", "/attendance")
		return f, nil, false
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export attendance")
	defer cancel()

	recs, err := h.Attendance.List(ctx, sess, f.APIFilter(h.Loc))
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, "export attendance failed", err, "Failed to load attendance data", listURL(f.Date, f.Employee))
		return f, nil, false
	}
	return f, recs, true
}

// ServeExportCSV downloads the selected day as attendance-<date>.csv.
func (h *Handler) ServeExportCSV(w http.ResponseWriter, r *http.Request) {
	f, recs, ok := h.exportRecords(w, r)
	if !ok {
		return
	}

	csvutil.SetDownloadHeaders(w, fmt.Sprintf("attendance-%s.csv", f.Date))
	if err := csvutil.Write(w, ExportHeader, ExportRows(recs, h.Loc)); err != nil {
		h.Log.Error("csv write error", zap.Error(err))
		return
	}
	h.Log.Info("attendance exported", zap.String("format", "csv"), zap.String("date", f.Date), zap.Int("rows", len(recs)))
}

// ServeExportXLSX downloads the selected day as attendance-<date>.xlsx.
func (h *Handler) ServeExportXLSX(w http.ResponseWriter, r *http.Request) {
	f, recs, ok := h.exportRecords(w, r)
	if !ok {
		return
	}

	book, err := BuildWorkbook(ExportRows(recs, h.Loc))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build workbook failed", err, "Could not build the spreadsheet.", listURL(f.Date, f.Employee))
		return
	}
	defer func() {
		if err := book.Close(); err != nil {
			h.Log.Warn("close workbook", zap.Error(err))
		}
	}()

	filename := fmt.Sprintf("attendance-%s.xlsx", f.Date)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	if err := book.Write(w); err != nil {
		h.Log.Error("xlsx write error", zap.Error(err))
		return
	}
	h.Log.Info("attendance exported", zap.String("format", "xlsx"), zap.String("date", f.Date), zap.Int("rows", len(recs)))
}

// BuildWorkbook lays rows out under a bold header on a single sheet.
func BuildWorkbook(rows [][]string) (*excelize.File, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName(book.GetSheetName(book.GetActiveSheetIndex()), xlsxSheet); err != nil {
		book.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		book.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	write := func(rowNum int, vals []string) error {
		for i, v := range vals {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}
			if err := book.SetCellStr(xlsxSheet, cell, v); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
		return nil
	}

	if err := write(1, ExportHeader); err != nil {
		book.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(ExportHeader), 1)
	if err := book.SetCellStyle(xlsxSheet, "A1", last, bold); err != nil {
		book.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}
	for i, row := range rows {
		if err := write(i+2, row); err != nil {
			book.Close()
			return nil, err
		}
	}
	if err := book.SetColWidth(xlsxSheet, "A", "F", 16); err != nil {
		book.Close()
		return nil, fmt.Errorf("column width: %w", err)
	}
	return book, nil
}
