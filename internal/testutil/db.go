package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atelier-vn/shop-api/internal/database"
	"github.com/atelier-vn/shop-api/internal/domain"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// The pool is capped at one connection so every query sees the same memory
// database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// CreateTestCustomer inserts a customer for tests that need one
func CreateTestCustomer(t *testing.T, db *gorm.DB, name string) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{
		Name:  name,
		Phone: "0901234567",
		Email: "customer@example.com",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// CreateTestProduct inserts a product owned by the given customer
func CreateTestProduct(t *testing.T, db *gorm.DB, customer *domain.Customer, name string) *domain.Product {
	t.Helper()

	product := &domain.Product{
		CustomerID: customer.ID,
		Name:       name,
		Status:     domain.ProductStatusInProgress,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
