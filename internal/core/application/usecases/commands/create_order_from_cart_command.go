package commands

import (
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrCreateOrderFromCartCommandIsNotConstructed = errors.New(
		"CreateOrderFromCartCommand must be created via NewCreateOrderFromCartCommand constructor",
	)
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
)

// CreateOrderFromCartCommand checks out the customer's cart into a new order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderFromCartCommand(orderID, customerID, "123 Main Street", "", kernel.ZeroMoney())
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed and waiting for the restaurant", orderID)
type CreateOrderFromCartCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerID          kernel.UUID
	deliveryAddress     string
	specialInstructions string
	discount            kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderFromCartCommand validates the identifiers and that a delivery
// address is given.
func NewCreateOrderFromCartCommand(
	orderID, customerID kernel.UUID,
	deliveryAddress, specialInstructions string,
	discount kernel.Money,
) (CreateOrderFromCartCommand, error) {
	cmd := CreateOrderFromCartCommand{
		specialInstructions: strings.TrimSpace(specialInstructions),
		discount:            discount,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderFromCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderFromCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderFromCartCommandIsNotConstructed)
}

func (c CreateOrderFromCartCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderFromCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderFromCartCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CreateOrderFromCartCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c CreateOrderFromCartCommand) Discount() kernel.Money {
	return c.discount
}

func (c *CreateOrderFromCartCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderFromCartCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderFromCartCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = address
	return nil
}
