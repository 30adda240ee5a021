package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"foodorder/internal/adapters/out/memory"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

// CatalogSeed is the CATALOG_FILE format:
//
//	{
//	  "restaurants": [{"id": "...", "name": "Luigi's", "address": "...", "lat": 52.52, "lon": 13.40, "deliveryFee": "3.00"}],
//	  "menuItems":   [{"id": "...", "restaurantId": "...", "name": "Margherita", "price": "10.00", "available": true}]
//	}
type CatalogSeed struct {
	Restaurants []RestaurantSeed `json:"restaurants"`
	MenuItems   []MenuItemSeed   `json:"menuItems"`
}

type RestaurantSeed struct {
	ID          kernel.UUID  `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	DeliveryFee kernel.Money `json:"deliveryFee"`
}

type MenuItemSeed struct {
	ID           kernel.UUID  `json:"id"`
	RestaurantID kernel.UUID  `json:"restaurantId"`
	Name         string       `json:"name"`
	Price        kernel.Money `json:"price"`
	Available    bool         `json:"available"`
}

// CatalogWriter stores catalog entries. catalogrepo.GormCatalog implements it.
type CatalogWriter interface {
	PutRestaurant(ctx context.Context, r ports.Restaurant) error
	PutMenuItem(ctx context.Context, item ports.MenuItem) error
}

// MemoryCatalogWriter adapts memory.Catalog to CatalogWriter.
type MemoryCatalogWriter struct {
	Catalog *memory.Catalog
}

func (w MemoryCatalogWriter) PutRestaurant(_ context.Context, r ports.Restaurant) error {
	w.Catalog.PutRestaurant(r)
	return nil
}

func (w MemoryCatalogWriter) PutMenuItem(_ context.Context, item ports.MenuItem) error {
	w.Catalog.PutMenuItem(item)
	return nil
}

func LoadCatalogSeed(path string) (CatalogSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CatalogSeed{}, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed CatalogSeed
	if err = json.Unmarshal(raw, &seed); err != nil {
		return CatalogSeed{}, fmt.Errorf("decode catalog seed %s: %w", path, err)
	}
	return seed, nil
}

// Apply writes every restaurant before any menu item so foreign keys hold.
func (s CatalogSeed) Apply(ctx context.Context, w CatalogWriter) error {
	for _, r := range s.Restaurants {
		location, err := kernel.NewGeo(r.Lat, r.Lon)
		if err != nil {
			return fmt.Errorf("restaurant %s: %w", r.ID, err)
		}
		if r.ID.Validate() != nil || r.Name == "" {
			return fmt.Errorf("restaurant %q: id and name are required", r.Name)
		}
		restaurant := ports.Restaurant{
			ID:          r.ID,
			Name:        r.Name,
			Address:     r.Address,
			Location:    location,
			DeliveryFee: r.DeliveryFee,
		}
		if err = w.PutRestaurant(ctx, restaurant); err != nil {
			return fmt.Errorf("store restaurant %s: %w", r.ID, err)
		}
	}

	var errs []error
	for _, m := range s.MenuItems {
		if errors.Join(m.ID.Validate(), m.RestaurantID.Validate()) != nil || m.Name == "" {
			errs = append(errs, fmt.Errorf("menu item %q: id, restaurantId and name are required", m.Name))
			continue
		}
		item := ports.MenuItem{
			ID:           m.ID,
			RestaurantID: m.RestaurantID,
			Name:         m.Name,
			Price:        m.Price,
			Available:    m.Available,
		}
		if err := w.PutMenuItem(ctx, item); err != nil {
			errs = append(errs, fmt.Errorf("store menu item %s: %w", m.ID, err))
		}
	}
	return errors.Join(errs...)
}
