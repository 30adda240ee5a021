package memory

import (
	"context"
	"sync"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// Catalog is a ports.Catalog filled through PutRestaurant and PutMenuItem.
type Catalog struct {
	mu          sync.RWMutex
	restaurants map[kernel.UUID]ports.Restaurant
	menuItems   map[kernel.UUID]ports.MenuItem
}

func NewCatalog() *Catalog {
	return &Catalog{
		restaurants: make(map[kernel.UUID]ports.Restaurant),
		menuItems:   make(map[kernel.UUID]ports.MenuItem),
	}
}

func (c *Catalog) PutRestaurant(r ports.Restaurant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restaurants[r.ID] = r
}

func (c *Catalog) PutMenuItem(item ports.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menuItems[item.ID] = item
}

func (c *Catalog) GetMenuItem(_ context.Context, id kernel.UUID) (ports.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.menuItems[id]
	if !ok {
		return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItemID", id)
	}
	return item, nil
}

func (c *Catalog) GetRestaurant(_ context.Context, id kernel.UUID) (ports.Restaurant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.restaurants[id]
	if !ok {
		return ports.Restaurant{}, errs.NewObjectNotFoundError("restaurantID", id)
	}
	return r, nil
}
