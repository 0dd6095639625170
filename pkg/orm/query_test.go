package orm_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/kashvi-shop/pkg/cache"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
)

type note struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orm.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))
	for i := 1; i <= 5; i++ {
		require.NoError(t, db.Create(&note{Text: string(rune('a' + i - 1))}).Error)
	}
	return db
}

func TestNewWindow(t *testing.T) {
	assert.Equal(t, orm.Window{Skip: 0, Limit: 50}, orm.NewWindow(-4, 0))
	assert.Equal(t, orm.Window{Skip: 3, Limit: 200}, orm.NewWindow(3, 1000))
	assert.Equal(t, orm.Window{Skip: 1, Limit: 2}, orm.NewWindow(1, 2))
}

func TestWindowedGet(t *testing.T) {
	db := openDB(t)

	var page []note
	require.NoError(t, orm.Use(db, nil).Model(&note{}).Order("id").Window(orm.NewWindow(1, 2)).Get(&page))
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Text)
	assert.Equal(t, "c", page[1].Text)
}

func TestRememberServesStaleUntilForgotten(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	store := cache.NewMemoryStore()

	var first note
	require.NoError(t, orm.Use(db, store).Where("id = ?", 1).Remember(ctx, "notes:1", time.Minute, &first))
	assert.Equal(t, "a", first.Text)

	require.NoError(t, db.Model(&note{}).Where("id = ?", 1).Update("text", "changed").Error)

	var cached note
	require.NoError(t, orm.Use(db, store).Where("id = ?", 1).Remember(ctx, "notes:1", time.Minute, &cached))
	assert.Equal(t, "a", cached.Text)

	require.NoError(t, store.Del(ctx, "notes:1"))
	var fresh note
	require.NoError(t, orm.Use(db, store).Where("id = ?", 1).Remember(ctx, "notes:1", time.Minute, &fresh))
	assert.Equal(t, "changed", fresh.Text)
}

func TestIsNotFound(t *testing.T) {
	db := openDB(t)
	var n note
	err := orm.Use(db, nil).Where("id = ?", 99).First(&n)
	assert.True(t, orm.IsNotFound(err))
}
