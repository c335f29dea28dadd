// internal/app/features/employees/list.go
package employees

import (
	"net/http"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders the employee table, filtered by ?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	data, ok := h.loadList(w, r)
	if !ok {
		return
	}
	data.BaseVM = viewdata.NewBaseVM(w, r, "Employees", "/dashboard")
	templates.Render(w, r, "employee_list", data)
}

func (h *Handler) loadList(w http.ResponseWriter, r *http.Request) (listData, bool) {
	sess, _ := auth.CurrentSession(r)
	data := listData{SearchQuery: query.Get(r, "q")}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list employees")
	defer cancel()

	emps, err := h.Employees.List(ctx, sess)
	if err != nil {
		if h.ErrLog.HandleUnauthorized(w, r, err) {
			return data, false
		}
		h.Log.Warn("list employees failed", zap.Error(err))
		data.Error = uierrors.UserMessage(err, "Failed to load employees")
		return data, true
	}

	shown := employeestore.Filter(emps, data.SearchQuery)
	data.Total = len(emps)
	data.Shown = len(shown)
	data.Rows = make([]employeeRow, 0, len(shown))
	for _, e := range shown {
		data.Rows = append(data.Rows, toRow(e))
	}
	return data, true
}
