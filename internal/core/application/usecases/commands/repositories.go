// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface that covers the aggregates
// it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ZoneRepoFactory provides access to the zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// CarrierRepoFactory provides access to the carrier repository within a transaction.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// TariffRepoFactory provides access to the tariff repository within a transaction.
	TariffRepoFactory interface {
		TariffRepository() ports.TariffRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ReturnRepoFactory provides access to the return repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// ZoneUoW manages transactions for zone-only operations.
	ZoneUoW interface {
		TxManager
		ZoneRepoFactory
	}

	// ZoneUoWFactory creates new zone unit of work instances.
	ZoneUoWFactory interface {
		Create() ZoneUoW
	}

	// ZoneTariffUoW manages transactions spanning zones and the tariff
	// referential guard.
	ZoneTariffUoW interface {
		TxManager
		ZoneRepoFactory
		TariffRepoFactory
	}

	// ZoneTariffUoWFactory creates new ZoneTariffUoW instances.
	ZoneTariffUoWFactory interface {
		Create() ZoneTariffUoW
	}

	// CarrierUoW manages transactions for carrier-only operations.
	CarrierUoW interface {
		TxManager
		CarrierRepoFactory
	}

	// CarrierUoWFactory creates new carrier unit of work instances.
	CarrierUoWFactory interface {
		Create() CarrierUoW
	}

	// CarrierGuardUoW manages transactions spanning carriers and their
	// referential guards against tariffs and shipments.
	CarrierGuardUoW interface {
		TxManager
		CarrierRepoFactory
		TariffRepoFactory
		ShipmentRepoFactory
	}

	// CarrierGuardUoWFactory creates new CarrierGuardUoW instances.
	CarrierGuardUoWFactory interface {
		Create() CarrierGuardUoW
	}

	// TariffUoW manages transactions for tariff operations, including the
	// carrier and zone existence checks at creation.
	TariffUoW interface {
		TxManager
		TariffRepoFactory
		CarrierRepoFactory
		ZoneRepoFactory
	}

	// TariffUoWFactory creates new tariff unit of work instances.
	TariffUoWFactory interface {
		Create() TariffUoW
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// ShipmentCarrierUoW manages transactions for shipment operations that
	// also consult the carrier (label issuance, shipment creation).
	ShipmentCarrierUoW interface {
		TxManager
		ShipmentRepoFactory
		CarrierRepoFactory
		TariffRepoFactory
	}

	// ShipmentCarrierUoWFactory creates new ShipmentCarrierUoW instances.
	ShipmentCarrierUoWFactory interface {
		Create() ShipmentCarrierUoW
	}

	// ReturnUoW manages transactions for return-only operations.
	ReturnUoW interface {
		TxManager
		ReturnRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// ReturnShipmentUoW manages transactions for return creation, which
	// consults the referenced shipment.
	ReturnShipmentUoW interface {
		TxManager
		ReturnRepoFactory
		ShipmentRepoFactory
	}

	// ReturnShipmentUoWFactory creates new ReturnShipmentUoW instances.
	ReturnShipmentUoWFactory interface {
		Create() ReturnShipmentUoW
	}

	// TariffSweepUoW manages transactions for the tariff expiry sweep.
	TariffSweepUoW interface {
		TxManager
		TariffRepoFactory
	}

	// TariffSweepUoWFactory creates new TariffSweepUoW instances.
	TariffSweepUoWFactory interface {
		Create() TariffSweepUoW
	}

	// TrackingSweepUoW manages transactions for the tracking sweep, which
	// walks moving shipments and label-sent returns against carrier feeds.
	TrackingSweepUoW interface {
		TxManager
		ShipmentRepoFactory
		CarrierRepoFactory
		ReturnRepoFactory
	}

	// TrackingSweepUoWFactory creates new TrackingSweepUoW instances.
	TrackingSweepUoWFactory interface {
		Create() TrackingSweepUoW
	}
)
