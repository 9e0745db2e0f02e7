package shop

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/techshop/internal/database"
	"github.com/mrlokans/techshop/internal/entities"
)

func setupTestStore(t *testing.T) (*database.Store, func()) {
	t.Helper()
	store := database.New(database.Options{
		Path:   filepath.Join(t.TempDir(), "shop_test.db3"),
		Logger: logger.Default.LogMode(logger.Silent),
	})
	return store, func() { store.Close() }
}

func seedProducts(t *testing.T, catalog *Catalog) []entities.Product {
	t.Helper()
	products := []entities.Product{
		{Name: "UltraBook 14", Description: "Thin and light laptop", Category: entities.CategoryLaptops, PriceCents: 129900, InStock: true},
		{Name: "Pixel Phone", Description: "Android phone", Category: entities.CategoryPhones, PriceCents: 79900, InStock: true},
		{Name: "Studio Headphones", Description: "Over-ear audio", Category: entities.CategoryAudio, PriceCents: 24900, InStock: false},
		{Name: "USB-C Cable", Description: "Braided cable for laptops and phones", Category: entities.CategoryAccessories, PriceCents: 1500, InStock: true},
	}
	for i := range products {
		require.NoError(t, catalog.Save(context.Background(), &products[i]))
	}
	return products
}
