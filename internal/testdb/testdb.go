// Package testdb opens throwaway, fully migrated SQLite databases for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/config"
	_ "github.com/shashiranjanraj/kashvi-shop/database/migrations"
	"github.com/shashiranjanraj/kashvi-shop/pkg/database"
	"github.com/shashiranjanraj/kashvi-shop/pkg/migration"
)

// Open returns a migrated file-backed database that is removed when t ends.
// A file (not :memory:) is used so concurrent connections share one database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "shop.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err)
	return db
}

// User inserts a buyer.
func User(t testing.TB, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Product inserts a product with the given price and stock.
func Product(t testing.TB, db *gorm.DB, name, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Stock reads the current stock of a product straight from the table.
func Stock(t testing.TB, db *gorm.DB, productID uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.Stock
}
