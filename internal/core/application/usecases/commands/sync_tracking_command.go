package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSyncTrackingCommandIsNotConstructed = errors.New(
	"SyncTrackingCommand must be created via NewSyncTrackingCommand constructor",
)

// SyncTrackingCommand triggers one pass over the carrier tracking feeds: new
// scans are applied to moving shipments, and label-sent returns whose parcel
// started moving are advanced to InTransit.
//
// Example:
//
//	cmd := NewSyncTrackingCommand()
//	handler := NewSyncTrackingCommandHandler(uowFactory, gateway, publisher)
//	err := handler.Handle(ctx, cmd)
type SyncTrackingCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncTrackingCommand creates a new command to trigger the tracking sweep.
// This is a parameterless command; the sweep covers every tenant.
func NewSyncTrackingCommand() SyncTrackingCommand {
	return SyncTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncTrackingCommandIsNotConstructed if validation fails.
func (c SyncTrackingCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncTrackingCommandIsNotConstructed,
	)
}
