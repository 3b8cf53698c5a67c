package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrExpireTariffsCommandIsNotConstructed = errors.New(
	"ExpireTariffsCommand must be created via NewExpireTariffsCommand constructor",
)

// ExpireTariffsCommand triggers the deactivation of tariffs whose validity
// window has closed. Expired tariffs stay queryable but stop participating in
// quotes.
//
// Example:
//
//	cmd := NewExpireTariffsCommand()
//	handler := NewExpireTariffsCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
type ExpireTariffsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireTariffsCommand creates a new command to trigger the expiry sweep.
// This is a parameterless command; the sweep covers every tenant.
func NewExpireTariffsCommand() ExpireTariffsCommand {
	return ExpireTariffsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireTariffsCommandIsNotConstructed if validation fails.
func (c ExpireTariffsCommand) Validate() error {
	return c.guard.Validate(
		ErrExpireTariffsCommandIsNotConstructed,
	)
}
