package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"foodorder/cmd"
	"foodorder/internal/adapters/out/memory"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `{
  "restaurants": [
    {"id": "6f1c1d2e-7a0b-4c55-9a51-0b1f3f7c2a10", "name": "Luigi's", "address": "Pasta Street 1",
     "lat": 52.52, "lon": 13.405, "deliveryFee": "3.00"}
  ],
  "menuItems": [
    {"id": "0d8e4c2a-93b1-4f0e-8d6a-5f1e2c3b4a59", "restaurantId": "6f1c1d2e-7a0b-4c55-9a51-0b1f3f7c2a10",
     "name": "Margherita", "price": "10.00", "available": true}
  ]
}`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCatalogSeed_ApplyToMemoryCatalog(t *testing.T) {
	seed, err := cmd.LoadCatalogSeed(writeSeed(t, seedJSON))
	require.NoError(t, err)

	catalog := memory.NewCatalog()
	require.NoError(t, seed.Apply(t.Context(), cmd.MemoryCatalogWriter{Catalog: catalog}))

	restaurantID, err := kernel.UUIDFromString("6f1c1d2e-7a0b-4c55-9a51-0b1f3f7c2a10")
	require.NoError(t, err)
	restaurant, err := catalog.GetRestaurant(t.Context(), restaurantID)
	require.NoError(t, err)
	assert.Equal(t, "Luigi's", restaurant.Name)
	assert.Equal(t, "3.00", restaurant.DeliveryFee.String())
	assert.InDelta(t, 52.52, restaurant.Location.Lat(), 1e-9)

	itemID, err := kernel.UUIDFromString("0d8e4c2a-93b1-4f0e-8d6a-5f1e2c3b4a59")
	require.NoError(t, err)
	item, err := catalog.GetMenuItem(t.Context(), itemID)
	require.NoError(t, err)
	assert.True(t, item.RestaurantID.IsEqual(restaurantID))
	assert.Equal(t, "10.00", item.Price.String())
	assert.True(t, item.Available)
}

func TestCatalogSeed_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative price": `{"menuItems": [{"id": "0d8e4c2a-93b1-4f0e-8d6a-5f1e2c3b4a59", "price": "-1.00"}]}`,
		"malformed id":   `{"restaurants": [{"id": "luigi", "name": "Luigi's"}]}`,
		"not json":       `restaurants: []`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := cmd.LoadCatalogSeed(writeSeed(t, body))
			require.Error(t, err)
		})
	}

	t.Run("latitude out of range", func(t *testing.T) {
		seed, err := cmd.LoadCatalogSeed(writeSeed(t,
			`{"restaurants": [{"id": "6f1c1d2e-7a0b-4c55-9a51-0b1f3f7c2a10", "name": "Nowhere", "lat": 91, "lon": 0, "deliveryFee": "0"}]}`))
		require.NoError(t, err)

		err = seed.Apply(t.Context(), cmd.MemoryCatalogWriter{Catalog: memory.NewCatalog()})
		require.Error(t, err)
	})

	t.Run("menu item without restaurant", func(t *testing.T) {
		seed, err := cmd.LoadCatalogSeed(writeSeed(t,
			`{"menuItems": [{"id": "0d8e4c2a-93b1-4f0e-8d6a-5f1e2c3b4a59", "name": "Orphan", "price": "1.00"}]}`))
		require.NoError(t, err)

		err = seed.Apply(t.Context(), cmd.MemoryCatalogWriter{Catalog: memory.NewCatalog()})
		require.Error(t, err)
	})
}
