package queries

import (
	"context"
)

// ListFreeCouriersQueryHandler reads the assignment candidates, ordered as the
// repository returns them.
type ListFreeCouriersQueryHandler struct {
	readers CourierReaderFactory
}

func NewListFreeCouriersQueryHandler(readers CourierReaderFactory) ListFreeCouriersQueryHandler {
	return ListFreeCouriersQueryHandler{readers: readers}
}

func (h ListFreeCouriersQueryHandler) Handle(ctx context.Context, query ListFreeCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers, err := h.readers.Create().CourierRepository().GetAllFree(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CourierView, 0, len(couriers))
	for _, c := range couriers {
		out = append(out, CourierView{
			ID:            c.ID(),
			Name:          c.Name(),
			Lat:           c.Location().Lat(),
			Lon:           c.Location().Lon(),
			Available:     c.Available(),
			ActiveOrderID: c.ActiveOrderID(),
		})
	}
	return out, nil
}
