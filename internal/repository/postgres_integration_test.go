//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/libris-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.PurchaseItem{},
		&models.Purchase{},
		&models.LikedBook{},
		&models.Book{},
		&models.Author{},
		&models.Genre{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Author{},
		&models.Genre{},
		&models.Book{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.LikedBook{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresBookTitleSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	repo := NewBookRepository(db)
	book := &models.Book{
		Title:           "The Dispossessed",
		PublicationYear: 1974,
		Quantity:        4,
		Price:           models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
	}
	if err := repo.Create(book); err != nil {
		t.Fatalf("create book failed: %v", err)
	}

	// ILIKE 路径：大小写不一致也应命中
	rows, total, _, err := repo.List(BookListFilter{
		Page:     1,
		PageSize: 10,
		Query:    "DISPOSS",
	})
	if err != nil {
		t.Fatalf("book list search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("book list search want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, _, err = repo.List(BookListFilter{
		Page:     1,
		PageSize: 10,
		Query:    "no-such-book",
	})
	if err != nil {
		t.Fatalf("book list search failed: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("book list search want 0 got total=%d len=%d", total, len(rows))
	}
}
