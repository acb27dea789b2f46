package items

import (
	"context"
	"testing"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txLogWriter struct{}

func (txLogWriter) AppendStockLog(ctx context.Context, tx *gorm.DB, entry *models.StockLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}

type removedPhotos struct {
	names []string
}

func (r *removedPhotos) Remove(_ context.Context, filename string) {
	r.names = append(r.names, filename)
}

func newTestService(t *testing.T) (Service, *gorm.DB, *removedPhotos) {
	t.Helper()
	conn := newTestDB(t)
	removed := &removedPhotos{}
	svc, err := NewService(NewRepository(conn), newTestClient(t, conn), txLogWriter{}, removed)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn, removed
}

func TestCreateItemWritesAddLog(t *testing.T) {
	t.Parallel()

	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name:     "Denim Jacket",
		Price:    decimal.RequireFromString("59.90"),
		Quantity: 6,
		Size:     enums.ItemSizeM,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ID == 0 {
		t.Fatal("expected generated id")
	}

	var logs []models.StockLog
	if err := conn.Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log row, got %d", len(logs))
	}
	entry := logs[0]
	if entry.Action != enums.LogActionAdd || entry.User != "admin" {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
	if entry.ItemID == nil || *entry.ItemID != dto.ID {
		t.Fatalf("expected item reference %d, got %v", dto.ID, entry.ItemID)
	}
	if !entry.Subtotal.Equal(decimal.RequireFromString("359.40")) {
		t.Fatalf("expected subtotal 359.40, got %s", entry.Subtotal)
	}
}

func TestCreateItemValidation(t *testing.T) {
	t.Parallel()

	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateItemInput
	}{
		{"empty name", CreateItemInput{Name: "  ", Price: decimal.New(1, 0), Quantity: 1, Size: enums.ItemSizeS}},
		{"negative price", CreateItemInput{Name: "Sock", Price: decimal.New(-1, 0), Quantity: 1, Size: enums.ItemSizeS}},
		{"negative quantity", CreateItemInput{Name: "Sock", Price: decimal.New(1, 0), Quantity: -1, Size: enums.ItemSizeS}},
		{"bad size", CreateItemInput{Name: "Sock", Price: decimal.New(1, 0), Quantity: 1, Size: enums.ItemSize("XXL")}},
	}

	for _, tc := range cases {
		if _, err := svc.CreateItem(ctx, "admin", tc.input); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}

	var count int64
	if err := conn.Model(&models.StockLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no log rows, got %d", count)
	}
}

func TestUpdateItemReassignsID(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Skirt", Price: decimal.New(2000, -2), Quantity: 2, Size: enums.ItemSizeS,
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Belt", Price: decimal.New(900, -2), Quantity: 4, Size: enums.ItemSizeM,
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	// moving to a free id works
	target := second.ID + 50
	updated, err := svc.UpdateItem(ctx, first.ID, UpdateItemInput{NewID: &target})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if updated.ID != target {
		t.Fatalf("expected id %d, got %d", target, updated.ID)
	}
	if _, err := svc.GetItem(ctx, first.ID); err == nil {
		t.Fatal("expected old id to be gone")
	}

	// moving onto a taken id is rejected
	if _, err := svc.UpdateItem(ctx, target, UpdateItemInput{NewID: &second.ID}); err == nil {
		t.Fatal("expected conflict")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateItemFields(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Coat", Price: decimal.New(8000, -2), Quantity: 1, Size: enums.ItemSizeL,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Winter Coat"
	qty := 7
	size := enums.ItemSizeXL
	updated, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{
		Name:     &name,
		Quantity: &qty,
		Size:     &size,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || updated.Quantity != qty || updated.Size != size {
		t.Fatalf("unexpected state: %+v", updated)
	}
	if !updated.Price.Equal(decimal.New(8000, -2)) {
		t.Fatalf("price should be untouched, got %s", updated.Price)
	}

	bad := -1
	if _, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{Quantity: &bad}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestUpdateItemPhotoReplaceAndRemove(t *testing.T) {
	t.Parallel()

	svc, _, removed := newTestService(t)
	ctx := context.Background()

	oldPhoto := "old.jpg"
	created, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Parka", Price: decimal.New(12000, -2), Quantity: 2, Size: enums.ItemSizeL, Photo: &oldPhoto,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPhoto := "new.jpg"
	updated, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{Photo: &newPhoto})
	if err != nil {
		t.Fatalf("replace photo: %v", err)
	}
	if updated.Photo == nil || *updated.Photo != newPhoto {
		t.Fatalf("expected new photo reference, got %v", updated.Photo)
	}
	if len(removed.names) != 1 || removed.names[0] != oldPhoto {
		t.Fatalf("expected replaced file removed, got %v", removed.names)
	}

	cleared, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{RemovePhoto: true})
	if err != nil {
		t.Fatalf("remove photo: %v", err)
	}
	if cleared.Photo != nil {
		t.Fatalf("expected photo cleared, got %v", cleared.Photo)
	}
	if len(removed.names) != 2 || removed.names[1] != newPhoto {
		t.Fatalf("expected cleared file removed, got %v", removed.names)
	}

	reloaded, err := svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Photo != nil {
		t.Fatalf("cleared photo must persist, got %v", reloaded.Photo)
	}
}

func TestUpdateItemKeepsSharedPhotoFile(t *testing.T) {
	t.Parallel()

	svc, _, removed := newTestService(t)
	ctx := context.Background()

	photo := "shared.jpg"
	first, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Cap", Price: decimal.New(900, -2), Quantity: 4, Size: enums.ItemSizeS, Photo: &photo,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.DuplicateItem(ctx, "admin", first.ID); err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	if _, err := svc.UpdateItem(ctx, first.ID, UpdateItemInput{RemovePhoto: true}); err != nil {
		t.Fatalf("remove photo: %v", err)
	}
	if len(removed.names) != 0 {
		t.Fatalf("shared file must survive, got %v", removed.names)
	}
}

func TestDuplicateItemClonesAndLogs(t *testing.T) {
	t.Parallel()

	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	photo := "abc123.jpg"
	source, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Scarf", Price: decimal.New(1500, -2), Quantity: 3, Size: enums.ItemSizeM, Photo: &photo,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clone, err := svc.DuplicateItem(ctx, "clerk", source.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if clone.ID == source.ID {
		t.Fatal("expected a fresh id")
	}
	if clone.Name != source.Name || clone.Quantity != source.Quantity || clone.Size != source.Size {
		t.Fatalf("clone differs from source: %+v vs %+v", clone, source)
	}
	if clone.Photo == nil || *clone.Photo != photo {
		t.Fatal("expected photo reference to carry over")
	}

	var count int64
	if err := conn.Model(&models.StockLog{}).Where("username = ? AND action = ?", "clerk", enums.LogActionAdd).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 duplicate log row, got %d", count)
	}

	if _, err := svc.DuplicateItem(ctx, "clerk", 9999); err == nil {
		t.Fatal("expected not found")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteItemRemovesOrphanPhoto(t *testing.T) {
	t.Parallel()

	svc, _, removed := newTestService(t)
	ctx := context.Background()

	photo := "shared.jpg"
	first, err := svc.CreateItem(ctx, "admin", CreateItemInput{
		Name: "Vest", Price: decimal.New(3000, -2), Quantity: 2, Size: enums.ItemSizeM, Photo: &photo,
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.DuplicateItem(ctx, "admin", first.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	// the duplicate still references the file, so it must survive
	if err := svc.DeleteItem(ctx, first.ID); err != nil {
		t.Fatalf("delete first: %v", err)
	}
	if len(removed.names) != 0 {
		t.Fatalf("photo removed too early: %v", removed.names)
	}

	if err := svc.DeleteItem(ctx, second.ID); err != nil {
		t.Fatalf("delete second: %v", err)
	}
	if len(removed.names) != 1 || removed.names[0] != photo {
		t.Fatalf("expected orphan photo removal, got %v", removed.names)
	}
}

func TestListItemsPaging(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := svc.CreateItem(ctx, "admin", CreateItemInput{
			Name: "Shirt", Price: decimal.New(1000, -2), Quantity: 1, Size: enums.ItemSizeS,
		}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	result, err := svc.ListItems(ctx, ListItemsInput{Pagination: pagination.Params{Page: 1, PerPage: 5}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 5 {
		t.Fatalf("expected 5 items on page 1, got %d", len(result.Items))
	}
	if result.Meta.Total != 7 || result.Meta.TotalPages != 2 {
		t.Fatalf("unexpected meta: %+v", result.Meta)
	}

	result, err = svc.ListItems(ctx, ListItemsInput{Pagination: pagination.Params{Page: 2, PerPage: 5}})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items on page 2, got %d", len(result.Items))
	}
}
