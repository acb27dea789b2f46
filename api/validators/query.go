package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

func ParseQueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}

// ParsePagination reads page/per_page with the given page-size default.
func ParsePagination(r *http.Request, defaultPerPage int) (pagination.Params, error) {
	if defaultPerPage <= 0 {
		defaultPerPage = pagination.DefaultPerPage
	}
	page, err := ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	perPage, err := ParseQueryInt(r, "per_page", defaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PerPage: perPage}, nil
}

// ParseLogActionFilter reads an optional ?action= filter. An empty value
// means no filter.
func ParseLogActionFilter(r *http.Request) (enums.LogAction, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("action"))
	if raw == "" {
		return "", nil
	}
	action, err := enums.ParseLogAction(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown log action").WithDetails(map[string]any{"field": "action"})
	}
	return action, nil
}
