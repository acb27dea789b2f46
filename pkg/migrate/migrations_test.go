package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oakzazasd/Clothes-Inventory/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS items",
		"CHECK (quantity >= 0)",
		"CHECK (price >= 0)",
		"CHECK (size IN ('S', 'M', 'L', 'XL'))",
		"DROP TABLE IF EXISTS items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStockLogsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_stock_logs.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS stock_logs",
		"CHECK (action IN ('ADD', 'WITHDRAW'))",
		"idx_stock_logs_created_at",
		"DROP TABLE IF EXISTS stock_logs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStaffUsersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_staff_users.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS staff_users",
		"username TEXT NOT NULL UNIQUE",
		"DROP TABLE IF EXISTS staff_users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
