package commands

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrAssignPendingOrdersCommandIsNotConstructed = errors.New(
	"AssignPendingOrdersCommand must be created via NewAssignPendingOrdersCommand constructor",
)

// AssignPendingOrdersCommand retries assignment for every order that is ready for
// pickup without a delivery partner. The assignment job sends it on a schedule.
type AssignPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingOrdersCommand is a parameterless command.
func NewAssignPendingOrdersCommand() AssignPendingOrdersCommand {
	return AssignPendingOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c AssignPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingOrdersCommandIsNotConstructed)
}
