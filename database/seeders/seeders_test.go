package seeders_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/database/seeders"
	"github.com/shashiranjanraj/kashvi-shop/internal/testdb"
	"github.com/shashiranjanraj/kashvi-shop/pkg/auth"
)

func TestRunAllIsIdempotent(t *testing.T) {
	prev := auth.Cost
	auth.Cost = bcrypt.MinCost
	t.Cleanup(func() { auth.Cost = prev })

	db := testdb.Open(t)
	require.NoError(t, seeders.RunAll(db, nil))

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(db, &out))
	assert.Contains(t, out.String(), "skip: alice exists")

	var users, products, categories int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.Category{}).Count(&categories)
	assert.Equal(t, int64(10), users)
	assert.Equal(t, int64(7), products)
	assert.Equal(t, int64(3), categories)

	var jack models.User
	require.NoError(t, db.Where("username = ?", "jack").First(&jack).Error)
	assert.Equal(t, "Bình Dương", jack.Address)
	assert.True(t, auth.CheckPassword(jack.PasswordHash, "jack123"))
}
