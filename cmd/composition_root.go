package cmd

import (
	"strconv"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrierapi"
	"fulfillment/internal/adapters/out/messaging"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB            *gorm.DB
	uowFactory        postgres.GormUnitOfWorkFactory
	gateway           ports.CarrierGateway
	publisher         ports.EventPublisher
	volumetricDivisor float64
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	divisor, err := strconv.ParseFloat(config.VolumetricDivisor, 64)
	if err != nil {
		divisor = 0 // handlers fall back to the default divisor
	}

	root := CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:           carrierapi.NewStubCarrierGateway(config.LabelBaseURL),
		volumetricDivisor: divisor,
	}

	if config.AmqpURL != "" {
		root.publisher = messaging.NewRabbitMQPublisher(config.AmqpURL, config.AmqpExchange)
	}

	return root
}

func (c *CompositionRoot) CreateCreateZoneCommandHandler() commands.CreateZoneCommandHandler {
	var f commands.ZoneUoWFactory = FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateZoneCommandHandler() commands.UpdateZoneCommandHandler {
	var f commands.ZoneUoWFactory = FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveZoneCommandHandler() commands.RemoveZoneCommandHandler {
	var f commands.ZoneTariffUoWFactory = FuncZoneTariffUoWFactory(func() commands.ZoneTariffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCarrierCommandHandler() commands.CreateCarrierCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCarrierCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCarrierCommandHandler() commands.UpdateCarrierCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCarrierCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveCarrierCommandHandler() commands.RemoveCarrierCommandHandler {
	var f commands.CarrierGuardUoWFactory = FuncCarrierGuardUoWFactory(func() commands.CarrierGuardUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveCarrierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateTariffCommandHandler() commands.CreateTariffCommandHandler {
	var f commands.TariffUoWFactory = FuncTariffUoWFactory(func() commands.TariffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTariffCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateTariffCommandHandler() commands.UpdateTariffCommandHandler {
	var f commands.TariffUoWFactory = FuncTariffUoWFactory(func() commands.TariffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTariffCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveTariffCommandHandler() commands.RemoveTariffCommandHandler {
	var f commands.TariffUoWFactory = FuncTariffUoWFactory(func() commands.TariffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveTariffCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentCarrierUoWFactory = FuncShipmentCarrierUoWFactory(func() commands.ShipmentCarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.volumetricDivisor)
}

func (c *CompositionRoot) CreateGenerateLabelCommandHandler() commands.GenerateLabelCommandHandler {
	var f commands.ShipmentCarrierUoWFactory = FuncShipmentCarrierUoWFactory(func() commands.ShipmentCarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateLabelCommandHandler(f, c.gateway)
}

func (c *CompositionRoot) CreatePostTrackingEventCommandHandler() commands.PostTrackingEventCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPostTrackingEventCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateReturnCommandHandler() commands.CreateReturnCommandHandler {
	var f commands.ReturnShipmentUoWFactory = FuncReturnShipmentUoWFactory(func() commands.ReturnShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReturnCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewReturnCommandHandler() commands.ReviewReturnCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewReturnCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSendReturnLabelCommandHandler() commands.SendReturnLabelCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendReturnLabelCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkReturnInTransitCommandHandler() commands.MarkReturnInTransitCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReturnInTransitCommandHandler(f)
}

func (c *CompositionRoot) CreateReceiveReturnCommandHandler() commands.ReceiveReturnCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveReturnCommandHandler(f)
}

func (c *CompositionRoot) CreateInspectReturnCommandHandler() commands.InspectReturnCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInspectReturnCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessRefundCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateExpireTariffsCommandHandler() commands.ExpireTariffsCommandHandler {
	var f commands.TariffSweepUoWFactory = FuncTariffSweepUoWFactory(func() commands.TariffSweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireTariffsCommandHandler(f)
}

func (c *CompositionRoot) CreateSyncTrackingCommandHandler() commands.SyncTrackingCommandHandler {
	var f commands.TrackingSweepUoWFactory = FuncTrackingSweepUoWFactory(func() commands.TrackingSweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncTrackingCommandHandler(f, c.gateway, c.publisher)
}

func (c *CompositionRoot) CreateQuoteShippingQueryHandler() queries.QuoteShippingQueryHandler {
	// Quoting reads the catalog outside any transaction.
	uow := c.uowFactory.Create()
	return queries.NewQuoteShippingQueryHandler(
		uow.ZoneRepository(), uow.TariffRepository(), uow.CarrierRepository(),
		c.volumetricDivisor)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllShipmentsQueryHandler() queries.GetAllShipmentsQueryHandler {
	return queries.NewGetAllShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReturnQueryHandler() queries.GetReturnQueryHandler {
	return queries.NewGetReturnQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllReturnsQueryHandler() queries.GetAllReturnsQueryHandler {
	return queries.NewGetAllReturnsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetZoneQueryHandler() queries.GetZoneQueryHandler {
	return queries.NewGetZoneQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllZonesQueryHandler() queries.GetAllZonesQueryHandler {
	return queries.NewGetAllZonesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCarrierQueryHandler() queries.GetCarrierQueryHandler {
	return queries.NewGetCarrierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCarriersQueryHandler() queries.GetAllCarriersQueryHandler {
	return queries.NewGetAllCarriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTariffQueryHandler() queries.GetTariffQueryHandler {
	return queries.NewGetTariffQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllTariffsQueryHandler() queries.GetAllTariffsQueryHandler {
	return queries.NewGetAllTariffsQueryHandler(c.gormDB)
}

// CreateHTTPHandlers bundles every use case handler for the HTTP server.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateZone:    c.CreateCreateZoneCommandHandler(),
		UpdateZone:    c.CreateUpdateZoneCommandHandler(),
		RemoveZone:    c.CreateRemoveZoneCommandHandler(),
		CreateCarrier: c.CreateCreateCarrierCommandHandler(),
		UpdateCarrier: c.CreateUpdateCarrierCommandHandler(),
		RemoveCarrier: c.CreateRemoveCarrierCommandHandler(),
		CreateTariff:  c.CreateCreateTariffCommandHandler(),
		UpdateTariff:  c.CreateUpdateTariffCommandHandler(),
		RemoveTariff:  c.CreateRemoveTariffCommandHandler(),

		CreateShipment:    c.CreateCreateShipmentCommandHandler(),
		GenerateLabel:     c.CreateGenerateLabelCommandHandler(),
		PostTrackingEvent: c.CreatePostTrackingEventCommandHandler(),
		CancelShipment:    c.CreateCancelShipmentCommandHandler(),

		CreateReturn:    c.CreateCreateReturnCommandHandler(),
		ReviewReturn:    c.CreateReviewReturnCommandHandler(),
		SendReturnLabel: c.CreateSendReturnLabelCommandHandler(),
		ReceiveReturn:   c.CreateReceiveReturnCommandHandler(),
		InspectReturn:   c.CreateInspectReturnCommandHandler(),
		ProcessRefund:   c.CreateProcessRefundCommandHandler(),

		QuoteShipping:   c.CreateQuoteShippingQueryHandler(),
		GetShipment:     c.CreateGetShipmentQueryHandler(),
		GetAllShipments: c.CreateGetAllShipmentsQueryHandler(),
		GetReturn:       c.CreateGetReturnQueryHandler(),
		GetAllReturns:   c.CreateGetAllReturnsQueryHandler(),
		GetZone:         c.CreateGetZoneQueryHandler(),
		GetAllZones:     c.CreateGetAllZonesQueryHandler(),
		GetCarrier:      c.CreateGetCarrierQueryHandler(),
		GetAllCarriers:  c.CreateGetAllCarriersQueryHandler(),
		GetTariff:       c.CreateGetTariffQueryHandler(),
		GetAllTariffs:   c.CreateGetAllTariffsQueryHandler(),
	}
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}

type FuncZoneTariffUoWFactory func() commands.ZoneTariffUoW

func (f FuncZoneTariffUoWFactory) Create() commands.ZoneTariffUoW {
	return f()
}

type FuncCarrierUoWFactory func() commands.CarrierUoW

func (f FuncCarrierUoWFactory) Create() commands.CarrierUoW {
	return f()
}

type FuncCarrierGuardUoWFactory func() commands.CarrierGuardUoW

func (f FuncCarrierGuardUoWFactory) Create() commands.CarrierGuardUoW {
	return f()
}

type FuncTariffUoWFactory func() commands.TariffUoW

func (f FuncTariffUoWFactory) Create() commands.TariffUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncShipmentCarrierUoWFactory func() commands.ShipmentCarrierUoW

func (f FuncShipmentCarrierUoWFactory) Create() commands.ShipmentCarrierUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncReturnShipmentUoWFactory func() commands.ReturnShipmentUoW

func (f FuncReturnShipmentUoWFactory) Create() commands.ReturnShipmentUoW {
	return f()
}

type FuncTariffSweepUoWFactory func() commands.TariffSweepUoW

func (f FuncTariffSweepUoWFactory) Create() commands.TariffSweepUoW {
	return f()
}

type FuncTrackingSweepUoWFactory func() commands.TrackingSweepUoW

func (f FuncTrackingSweepUoWFactory) Create() commands.TrackingSweepUoW {
	return f()
}
