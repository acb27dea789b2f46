package items

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:items_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Item{}, &models.StockLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestClient(t *testing.T, conn *gorm.DB) *db.Client {
	t.Helper()
	return db.NewClientFromGorm(conn)
}
