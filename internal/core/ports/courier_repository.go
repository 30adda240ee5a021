// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, the catalog collaborator and the live
// event publisher.
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for delivery partners.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate. The row is only
	// written while it still holds the courier's PersistedVersion; otherwise
	// ErrConcurrentUpdate is returned, so two orders never both take one courier.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllFree retrieves couriers that are on shift and carry no order.
	//
	// Example:
	//   freeCouriers, err := repo.GetAllFree(ctx)
	//   if err != nil {
	//       return fmt.Errorf("failed to get available couriers: %w", err)
	//   }
	GetAllFree(ctx context.Context) ([]*courier.Courier, error)
}
