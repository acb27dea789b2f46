package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/oakzazasd/Clothes-Inventory/api/middleware"
	"github.com/oakzazasd/Clothes-Inventory/api/responses"
	"github.com/oakzazasd/Clothes-Inventory/api/validators"
	"github.com/oakzazasd/Clothes-Inventory/internal/items"
	"github.com/oakzazasd/Clothes-Inventory/pkg/config"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
)

// photoStore is the slice of the photo store the item handlers need.
type photoStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
}

// ListItems returns one page of the catalog, optionally filtered by ?q=.
func ListItems(svc items.Service, cfg config.ListingConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r, cfg.DefaultPerPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListItems(r.Context(), items.ListItemsInput{
			Query:      validators.ParseQueryString(r, "q", 100),
			Pagination: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetItem returns a single item by id.
func GetItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

type createItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Size     string          `json:"size" validate:"required"`
}

// CreateItem accepts either a JSON body or a multipart form with an
// optional photo part.
func CreateItem(svc items.Service, phStore photoStore, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())

		var input items.CreateItemInput
		if isMultipart(r) {
			parsed, err := parseItemForm(r, phStore, maxUploadBytes)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input, err = parsed.toCreateInput()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else {
			var payload createItemRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			size, err := enums.ParseItemSize(payload.Size)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size"))
				return
			}
			input = items.CreateItemInput{
				Name:     payload.Name,
				Price:    payload.Price,
				Quantity: payload.Quantity,
				Size:     size,
			}
		}

		item, err := svc.CreateItem(r.Context(), username, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

type updateItemRequest struct {
	NewID       *uint            `json:"new_id"`
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Size        *string          `json:"size"`
	RemovePhoto bool             `json:"remove_photo"`
}

// UpdateItem applies a partial update; absent fields keep their value.
func UpdateItem(svc items.Service, phStore photoStore, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input items.UpdateItemInput
		if isMultipart(r) {
			parsed, err := parseItemForm(r, phStore, maxUploadBytes)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input, err = parsed.toUpdateInput()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else {
			var payload updateItemRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = items.UpdateItemInput{
				NewID:       payload.NewID,
				Name:        payload.Name,
				Price:       payload.Price,
				Quantity:    payload.Quantity,
				RemovePhoto: payload.RemovePhoto,
			}
			if payload.Size != nil {
				size, err := enums.ParseItemSize(*payload.Size)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size"))
					return
				}
				input.Size = &size
			}
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// DuplicateItem clones an existing item, photo reference included.
func DuplicateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		username := middleware.UsernameFromContext(r.Context())
		item, err := svc.DuplicateItem(r.Context(), username, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// DeleteItem removes an item from the catalog.
func DeleteItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}

func parseItemID(r *http.Request) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "itemID"))
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id").WithDetails(map[string]any{"item_id": raw})
	}
	return uint(value), nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

// itemForm is the parsed multipart payload shared by create and update.
type itemForm struct {
	name        *string
	price       *decimal.Decimal
	quantity    *int
	newID       *uint
	size        *enums.ItemSize
	photo       *string
	removePhoto bool
}

func parseItemForm(r *http.Request, phStore photoStore, maxUploadBytes int64) (*itemForm, error) {
	if maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes+(1<<20))
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	form := &itemForm{
		name:        validators.FormString(r, "name"),
		removePhoto: validators.FormBool(r, "remove_photo"),
	}

	var err error
	if form.price, err = validators.FormDecimal(r, "price"); err != nil {
		return nil, err
	}
	if form.quantity, err = validators.FormInt(r, "quantity"); err != nil {
		return nil, err
	}
	if form.newID, err = validators.FormUint(r, "new_id"); err != nil {
		return nil, err
	}

	if raw := validators.FormString(r, "size"); raw != nil {
		size, err := enums.ParseItemSize(*raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size")
		}
		form.size = &size
	}

	file, _, err := r.FormFile("photo")
	switch {
	case err == http.ErrMissingFile:
		// no photo part, nothing to store
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid photo upload")
	default:
		defer file.Close()
		if phStore == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "photo storage unavailable")
		}
		filename, err := phStore.Save(r.Context(), file)
		if err != nil {
			return nil, err
		}
		form.photo = &filename
	}

	return form, nil
}

func (f *itemForm) toCreateInput() (items.CreateItemInput, error) {
	input := items.CreateItemInput{Photo: f.photo}
	if f.name == nil || *f.name == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	input.Name = *f.name
	if f.price == nil {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	input.Price = *f.price
	if f.size == nil {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	input.Size = *f.size
	if f.quantity != nil {
		input.Quantity = *f.quantity
	}
	return input, nil
}

func (f *itemForm) toUpdateInput() (items.UpdateItemInput, error) {
	return items.UpdateItemInput{
		NewID:       f.newID,
		Name:        f.name,
		Price:       f.price,
		Quantity:    f.quantity,
		Size:        f.size,
		Photo:       f.photo,
		RemovePhoto: f.removePhoto,
	}, nil
}
