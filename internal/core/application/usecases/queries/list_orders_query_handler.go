package queries

import (
	"context"

	"foodorder/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	readers OrderReaderFactory
}

func NewListOrdersQueryHandler(readers OrderReaderFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{readers: readers}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.OrderFilterFor(query.Actor())
	filter.Limit = query.Limit()

	orders, err := h.readers.Create().OrderRepository().GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderSummary(o))
	}
	return out, nil
}
