package auditlog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:auditlog_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.StockLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedLogs(t *testing.T, conn *gorm.DB) {
	t.Helper()
	itemA := uint(1)
	itemB := uint(2)
	entries := []models.StockLog{
		{User: "admin", Action: enums.LogActionAdd, ItemID: &itemA, Name: "Blue Shirt", Size: enums.ItemSizeM, Price: decimal.New(1999, -2), Quantity: 10, Subtotal: decimal.New(19990, -2)},
		{User: "admin", Action: enums.LogActionAdd, ItemID: &itemB, Name: "Red Dress", Size: enums.ItemSizeS, Price: decimal.New(4500, -2), Quantity: 3, Subtotal: decimal.New(13500, -2)},
		{User: "clerk", Action: enums.LogActionWithdraw, ItemID: &itemA, Name: "Blue Shirt", Size: enums.ItemSizeM, Price: decimal.New(1999, -2), Quantity: 4, Subtotal: decimal.New(7996, -2)},
	}
	for i := range entries {
		if err := conn.Create(&entries[i]).Error; err != nil {
			t.Fatalf("seed log %d: %v", i, err)
		}
	}
}

func TestListLogsReturnsNewestFirstWithTotals(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	seedLogs(t, conn)
	svc, err := NewService(NewRepository(conn), 500)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.ListLogs(context.Background(), ListLogsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Action != enums.LogActionWithdraw {
		t.Fatalf("expected newest entry first, got %+v", result.Entries[0])
	}

	if result.Totals.AddedQuantity != 13 {
		t.Fatalf("expected added quantity 13, got %d", result.Totals.AddedQuantity)
	}
	if !result.Totals.AddedValue.Equal(decimal.New(33490, -2)) {
		t.Fatalf("expected added value 334.90, got %s", result.Totals.AddedValue)
	}
	if result.Totals.WithdrawnQuantity != 4 {
		t.Fatalf("expected withdrawn quantity 4, got %d", result.Totals.WithdrawnQuantity)
	}
	if !result.Totals.WithdrawnValue.Equal(decimal.New(7996, -2)) {
		t.Fatalf("expected withdrawn value 79.96, got %s", result.Totals.WithdrawnValue)
	}
}

func TestListLogsFilters(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	seedLogs(t, conn)
	svc, err := NewService(NewRepository(conn), 500)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	byAction, err := svc.ListLogs(ctx, ListLogsInput{Action: enums.LogActionWithdraw})
	if err != nil {
		t.Fatalf("list withdraw: %v", err)
	}
	if len(byAction.Entries) != 1 || byAction.Entries[0].User != "clerk" {
		t.Fatalf("unexpected withdraw entries: %+v", byAction.Entries)
	}
	if byAction.Totals.AddedQuantity != 0 {
		t.Fatalf("totals must follow the filter, got %+v", byAction.Totals)
	}

	byName, err := svc.ListLogs(ctx, ListLogsInput{Query: "dress"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if len(byName.Entries) != 1 || byName.Entries[0].Name != "Red Dress" {
		t.Fatalf("unexpected name entries: %+v", byName.Entries)
	}

	byUser, err := svc.ListLogs(ctx, ListLogsInput{Query: "clerk"})
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(byUser.Entries) != 1 || byUser.Entries[0].User != "clerk" {
		t.Fatalf("unexpected user entries: %+v", byUser.Entries)
	}

	itemC := uint(3)
	coat := models.StockLog{User: "admin", Action: enums.LogActionWithdraw, ItemID: &itemC, Name: "Long Coat", Size: enums.ItemSizeXL, Price: decimal.New(8900, -2), Quantity: 1, Subtotal: decimal.New(8900, -2)}
	if err := conn.Create(&coat).Error; err != nil {
		t.Fatalf("seed coat: %v", err)
	}

	bySize, err := svc.ListLogs(ctx, ListLogsInput{Query: "XL"})
	if err != nil {
		t.Fatalf("list by size: %v", err)
	}
	if len(bySize.Entries) != 1 || bySize.Entries[0].Size != enums.ItemSizeXL {
		t.Fatalf("size snapshot must be searchable, got %+v", bySize.Entries)
	}

	if _, err := svc.ListLogs(ctx, ListLogsInput{Action: enums.LogAction("DROP")}); err == nil {
		t.Fatal("expected validation error")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListLogsLimit(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	for i := 0; i < 6; i++ {
		entry := models.StockLog{
			User: "admin", Action: enums.LogActionAdd,
			Name: "Tee", Size: enums.ItemSizeS,
			Price: decimal.New(1000, -2), Quantity: 1, Subtotal: decimal.New(1000, -2),
		}
		if err := conn.Create(&entry).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	svc, err := NewService(NewRepository(conn), 4)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.ListLogs(context.Background(), ListLogsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Entries) != 4 {
		t.Fatalf("expected capped listing of 4, got %d", len(result.Entries))
	}
	// totals cover the capped view, not the whole table
	if result.Totals.AddedQuantity != 4 {
		t.Fatalf("expected totals over the listed rows, got %+v", result.Totals)
	}
	if !result.Totals.AddedValue.Equal(decimal.New(4000, -2)) {
		t.Fatalf("expected listed value 40.00, got %s", result.Totals.AddedValue)
	}
}
