package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
)

// Multipart item forms carry every field as text. These helpers return nil
// when the field is absent so callers can tell "not sent" from "zero".

func FormString(r *http.Request, key string) *string {
	if !formHas(r, key) {
		return nil
	}
	value := SanitizeString(r.FormValue(key), 0)
	return &value
}

func FormInt(r *http.Request, key string) (*int, error) {
	if !formHas(r, key) {
		return nil, nil
	}
	raw := strings.TrimSpace(r.FormValue(key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func FormUint(r *http.Request, key string) (*uint, error) {
	value, err := FormInt(r, key)
	if err != nil || value == nil {
		return nil, err
	}
	if *value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must not be negative").WithDetails(map[string]any{"field": key})
	}
	converted := uint(*value)
	return &converted, nil
}

// FormBool treats "1", "true", "on" and "yes" as true, anything else as
// false. Absent fields are false, matching unchecked checkboxes.
func FormBool(r *http.Request, key string) bool {
	if !formHas(r, key) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(r.FormValue(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func FormDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	if !formHas(r, key) {
		return nil, nil
	}
	raw := strings.TrimSpace(r.FormValue(key))
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a decimal number").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func formHas(r *http.Request, key string) bool {
	if r.Form == nil {
		r.ParseMultipartForm(32 << 20)
	}
	if _, ok := r.Form[key]; ok {
		return true
	}
	if r.MultipartForm != nil {
		if _, ok := r.MultipartForm.Value[key]; ok {
			return true
		}
	}
	return false
}
