package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakzazasd/Clothes-Inventory/api/responses"
	"github.com/oakzazasd/Clothes-Inventory/internal/photos"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
)

// ServePhoto streams a stored item photo. Photos carry opaque random
// names, so the route stays public the way the item images always were.
func ServePhoto(store *photos.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		f, err := store.Open(name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}
