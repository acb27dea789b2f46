package controllers

import (
	"net/http"

	"github.com/oakzazasd/Clothes-Inventory/api/middleware"
	"github.com/oakzazasd/Clothes-Inventory/api/responses"
	"github.com/oakzazasd/Clothes-Inventory/api/validators"
	cartsvc "github.com/oakzazasd/Clothes-Inventory/internal/cart"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
)

func cartSessionID(r *http.Request) (string, error) {
	accessID := middleware.AccessIDFromContext(r.Context())
	if accessID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	return accessID, nil
}

// GetCart returns the caller's cart with priced lines and totals.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetView(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type addCartLineRequest struct {
	ItemID uint `json:"item_id" validate:"required,min=1"`
	Qty    int  `json:"qty" validate:"min=0"`
}

// AddCartItem appends a line to the cart, or tops up an existing one.
func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), sessionID, payload.ItemID, payload.Qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type setCartRequest struct {
	Lines []setCartLine `json:"lines" validate:"required,dive"`
}

type setCartLine struct {
	ItemID uint `json:"item_id" validate:"required,min=1"`
	Qty    int  `json:"qty" validate:"min=0"`
}

// SetCart replaces the whole cart in one request, keeping the submitted
// line order. A zero quantity drops the line.
func SetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]cartsvc.Line, 0, len(payload.Lines))
		for _, line := range payload.Lines {
			lines = append(lines, cartsvc.Line{ItemID: line.ItemID, Qty: line.Qty})
		}

		view, err := svc.SetLines(r.Context(), sessionID, lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// RemoveCartItem drops a single line from the cart.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), sessionID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// ClearCart empties the caller's cart.
func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearCart(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
