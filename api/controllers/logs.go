package controllers

import (
	"net/http"

	"github.com/oakzazasd/Clothes-Inventory/api/responses"
	"github.com/oakzazasd/Clothes-Inventory/api/validators"
	"github.com/oakzazasd/Clothes-Inventory/internal/auditlog"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
)

// ListLogs returns the stock movement history, newest first, with totals
// for the current filter.
func ListLogs(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action, err := validators.ParseLogActionFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListLogs(r.Context(), auditlog.ListLogsInput{
			Action: action,
			Query:  validators.ParseQueryString(r, "q", 100),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
