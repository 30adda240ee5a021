// Package queries contains read-only operations of the CQRS architecture. Handlers
// read aggregates through repositories without opening a transaction and return
// plain response structs shaped for the request surface.
package queries

import (
	"foodorder/internal/core/ports"
)

type (
	// OrderReader provides the order repository outside a transaction.
	OrderReader interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderReaderFactory creates order readers.
	OrderReaderFactory interface {
		Create() OrderReader
	}

	// CartReader provides the cart repository outside a transaction.
	CartReader interface {
		CartRepository() ports.CartRepository
	}

	// CartReaderFactory creates cart readers.
	CartReaderFactory interface {
		Create() CartReader
	}

	// CourierReader provides the courier repository outside a transaction.
	CourierReader interface {
		CourierRepository() ports.CourierRepository
	}

	// CourierReaderFactory creates courier readers.
	CourierReaderFactory interface {
		Create() CourierReader
	}
)
