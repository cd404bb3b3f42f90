package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrCalculateDeliveryCostsCommandIsNotConstructed = errors.New(
	"CalculateDeliveryCostsCommand must be created via NewCalculateDeliveryCostsCommand constructor",
)

// CalculateDeliveryCostsCommand triggers one pricing sweep over every unpriced parcel.
// Issued by the scheduler and by the operator CLI.
type CalculateDeliveryCostsCommand struct {
	guard guard.ConstructorGuard
}

func NewCalculateDeliveryCostsCommand() CalculateDeliveryCostsCommand {
	return CalculateDeliveryCostsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c CalculateDeliveryCostsCommand) Validate() error {
	return c.guard.Validate(ErrCalculateDeliveryCostsCommandIsNotConstructed)
}
