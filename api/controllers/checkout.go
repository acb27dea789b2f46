package controllers

import (
	"net/http"

	"github.com/oakzazasd/Clothes-Inventory/api/middleware"
	"github.com/oakzazasd/Clothes-Inventory/api/responses"
	checkoutsvc "github.com/oakzazasd/Clothes-Inventory/internal/checkout"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
)

// ConfirmCheckout withdraws the entire cart in one transaction. Either
// every line is deducted and logged, or stock is left untouched.
func ConfirmCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.AccessIDFromContext(r.Context())
		username := middleware.UsernameFromContext(r.Context())
		if sessionID == "" || username == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		receipt, err := svc.Confirm(r.Context(), username, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, receipt)
	}
}
