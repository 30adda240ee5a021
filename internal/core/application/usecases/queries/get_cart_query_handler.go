package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/pkg/errs"
)

// GetCartQueryHandler returns an empty view for customers without a cart.
type GetCartQueryHandler struct {
	readers CartReaderFactory
}

func NewGetCartQueryHandler(readers CartReaderFactory) GetCartQueryHandler {
	return GetCartQueryHandler{readers: readers}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartView, error) {
	if err := query.Validate(); err != nil {
		return CartView{}, err
	}

	c, err := h.readers.Create().CartRepository().Get(ctx, query.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		c, err = cart.NewCart(query.CustomerID())
	}
	if err != nil {
		return CartView{}, err
	}

	return NewCartView(c), nil
}
