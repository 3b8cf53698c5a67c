// Package http exposes the application over REST. Handlers translate between
// JSON contracts and use case commands/queries; every route is tenant-scoped
// through TenantMiddleware.
package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/tariff"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	CreateZone    commands.CreateZoneCommandHandler
	UpdateZone    commands.UpdateZoneCommandHandler
	RemoveZone    commands.RemoveZoneCommandHandler
	CreateCarrier commands.CreateCarrierCommandHandler
	UpdateCarrier commands.UpdateCarrierCommandHandler
	RemoveCarrier commands.RemoveCarrierCommandHandler
	CreateTariff  commands.CreateTariffCommandHandler
	UpdateTariff  commands.UpdateTariffCommandHandler
	RemoveTariff  commands.RemoveTariffCommandHandler

	CreateShipment    commands.CreateShipmentCommandHandler
	GenerateLabel     commands.GenerateLabelCommandHandler
	PostTrackingEvent commands.PostTrackingEventCommandHandler
	CancelShipment    commands.CancelShipmentCommandHandler

	CreateReturn    commands.CreateReturnCommandHandler
	ReviewReturn    commands.ReviewReturnCommandHandler
	SendReturnLabel commands.SendReturnLabelCommandHandler
	ReceiveReturn   commands.ReceiveReturnCommandHandler
	InspectReturn   commands.InspectReturnCommandHandler
	ProcessRefund   commands.ProcessRefundCommandHandler

	QuoteShipping   queries.QuoteShippingQueryHandler
	GetShipment     queries.GetShipmentQueryHandler
	GetAllShipments queries.GetAllShipmentsQueryHandler
	GetReturn       queries.GetReturnQueryHandler
	GetAllReturns   queries.GetAllReturnsQueryHandler
	GetZone         queries.GetZoneQueryHandler
	GetAllZones     queries.GetAllZonesQueryHandler
	GetCarrier      queries.GetCarrierQueryHandler
	GetAllCarriers  queries.GetAllCarriersQueryHandler
	GetTariff       queries.GetTariffQueryHandler
	GetAllTariffs   queries.GetAllTariffsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts every API route under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", TenantMiddleware())

	api.POST("/zones", s.CreateZone)
	api.PUT("/zones/:id", s.UpdateZone)
	api.DELETE("/zones/:id", s.RemoveZone)
	api.GET("/zones", s.GetZones)
	api.GET("/zones/:id", s.GetZone)

	api.POST("/carriers", s.CreateCarrier)
	api.PUT("/carriers/:id", s.UpdateCarrier)
	api.DELETE("/carriers/:id", s.RemoveCarrier)
	api.GET("/carriers", s.GetCarriers)
	api.GET("/carriers/:id", s.GetCarrier)

	api.POST("/tariffs", s.CreateTariff)
	api.PUT("/tariffs/:id", s.UpdateTariff)
	api.DELETE("/tariffs/:id", s.RemoveTariff)
	api.GET("/tariffs", s.GetTariffs)
	api.GET("/tariffs/:id", s.GetTariff)

	api.POST("/quotes", s.QuoteShipping)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.GET("/shipments/number/:number", s.GetShipmentByNumber)
	api.GET("/shipments/tracking/:tracking", s.GetShipmentByTracking)
	api.POST("/shipments/:id/label", s.GenerateLabel)
	api.POST("/shipments/:id/events", s.PostTrackingEvent)
	api.POST("/shipments/:id/cancel", s.CancelShipment)

	api.POST("/returns", s.CreateReturn)
	api.GET("/returns", s.GetReturns)
	api.GET("/returns/:id", s.GetReturn)
	api.GET("/returns/number/:number", s.GetReturnByNumber)
	api.POST("/returns/:id/review", s.ReviewReturn)
	api.POST("/returns/:id/label", s.SendReturnLabel)
	api.POST("/returns/:id/receive", s.ReceiveReturn)
	api.POST("/returns/:id/inspect", s.InspectReturn)
	api.POST("/returns/:id/refund", s.ProcessRefund)
}

// --- zones ---

// CreateZone handles POST /api/v1/zones.
func (s *Server) CreateZone(c echo.Context) error {
	tenantID, req, ok := bindTenant[CreateZoneRequest](c)
	if !ok {
		return nil
	}

	zoneID := kernel.NewUUID()
	cmd, err := commands.NewCreateZoneCommand(zoneID, tenantID,
		req.Code, req.Name, req.Countries, req.Allow, req.Deny, req.Priority)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.CreateZone.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return s.respondZone(c, http.StatusCreated, tenantID, zoneID)
}

// UpdateZone handles PUT /api/v1/zones/:id.
func (s *Server) UpdateZone(c echo.Context) error {
	tenantID, req, ok := bindTenant[UpdateZoneRequest](c)
	if !ok {
		return nil
	}
	zoneID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateZoneCommand(zoneID, tenantID, req.Version,
		req.Name, req.Countries, req.Allow, req.Deny, req.Priority, req.Active)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.UpdateZone.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return s.respondZone(c, http.StatusOK, tenantID, zoneID)
}

// GetZone handles GET /api/v1/zones/:id.
func (s *Server) GetZone(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	zoneID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return s.respondZone(c, http.StatusOK, tenantID, zoneID)
}

// GetZones handles GET /api/v1/zones. The active query parameter narrows the
// list to active zones.
func (s *Server) GetZones(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	query, err := queries.NewGetAllZonesQuery(tenantID, c.QueryParam("active") == "true")
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.handlers.GetAllZones.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]ZoneResponse, len(rows))
	for i, row := range rows {
		response[i] = zoneResponseFromModel(row)
	}

	return c.JSON(http.StatusOK, response)
}

// respondZone serves mutation responses too: create and update answer with the
// stored entity so the client sees the assigned id and current version.
func (s *Server) respondZone(c echo.Context, status int, tenantID kernel.TenantID, zoneID kernel.UUID) error {
	query, err := queries.NewGetZoneQuery(tenantID, zoneID)
	if err != nil {
		return respondError(c, err)
	}

	row, err := s.handlers.GetZone.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status, zoneResponseFromModel(row))
}

func zoneResponseFromModel(row queries.GetZoneQueryResponse) ZoneResponse {
	return ZoneResponse{
		ID:        row.ID.String(),
		Code:      row.Code,
		Name:      row.Name,
		Countries: row.Countries,
		Allow:     row.AllowPatterns,
		Deny:      row.DenyPatterns,
		Priority:  row.Priority,
		Active:    row.Active,
		Version:   row.Version,
	}
}

// RemoveZone handles DELETE /api/v1/zones/:id. Zones are deactivated, never
// hard-deleted; a zone still referenced by tariffs is rejected.
func (s *Server) RemoveZone(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	zoneID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewRemoveZoneCommand(zoneID, tenantID)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.RemoveZone.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// --- carriers ---

// CreateCarrier handles POST /api/v1/carriers.
func (s *Server) CreateCarrier(c echo.Context) error {
	tenantID, req, ok := bindTenant[CreateCarrierRequest](c)
	if !ok {
		return nil
	}

	carrierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCarrierCommand(carrierID, tenantID,
		req.Code, req.Name,
		capabilitiesFromContract(req.Capabilities),
		limitsFromContract(req.Limits),
		deliveryDaysFromContract(req.DeliveryDays))
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.CreateCarrier.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return s.respondCarrier(c, http.StatusCreated, tenantID, carrierID)
}

// UpdateCarrier handles PUT /api/v1/carriers/:id.
func (s *Server) UpdateCarrier(c echo.Context) error {
	tenantID, req, ok := bindTenant[UpdateCarrierRequest](c)
	if !ok {
		return nil
	}
	carrierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateCarrierCommand(carrierID, tenantID, req.Version,
		req.Name,
		capabilitiesFromContract(req.Capabilities),
		limitsFromContract(req.Limits),
		deliveryDaysFromContract(req.DeliveryDays),
		req.Active)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.UpdateCarrier.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return s.respondCarrier(c, http.StatusOK, tenantID, carrierID)
}

// GetCarrier handles GET /api/v1/carriers/:id.
func (s *Server) GetCarrier(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	carrierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return s.respondCarrier(c, http.StatusOK, tenantID, carrierID)
}

// GetCarriers handles GET /api/v1/carriers. The active query parameter narrows
// the list to active carriers.
func (s *Server) GetCarriers(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	query, err := queries.NewGetAllCarriersQuery(tenantID, c.QueryParam("active") == "true")
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.handlers.GetAllCarriers.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]CarrierResponse, len(rows))
	for i, row := range rows {
		response[i] = carrierResponseFromModel(row)
	}

	return c.JSON(http.StatusOK, response)
}

func (s *Server) respondCarrier(c echo.Context, status int, tenantID kernel.TenantID, carrierID kernel.UUID) error {
	query, err := queries.NewGetCarrierQuery(tenantID, carrierID)
	if err != nil {
		return respondError(c, err)
	}

	row, err := s.handlers.GetCarrier.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status, carrierResponseFromModel(row))
}

func carrierResponseFromModel(row queries.GetCarrierQueryResponse) CarrierResponse {
	return CarrierResponse{
		ID:   row.ID.String(),
		Code: row.Code,
		Name: row.Name,
		Capabilities: CapabilitiesContract{
			Tracking:     row.Capabilities.Tracking,
			Labels:       row.Capabilities.Labels,
			Returns:      row.Capabilities.Returns,
			PickupPoints: row.Capabilities.PickupPoints,
			Insurance:    row.Capabilities.Insurance,
		},
		Limits: ServiceLimitsContract{
			MaxWeightKg: row.Limits.MaxWeightKg,
			MaxLengthCm: row.Limits.MaxLengthCm,
			MaxGirthCm:  row.Limits.MaxGirthCm,
		},
		DeliveryDays: DeliveryDaysContract{Min: row.DeliveryDays.Min, Max: row.DeliveryDays.Max},
		Active:       row.Active,
		Version:      row.Version,
	}
}

// RemoveCarrier handles DELETE /api/v1/carriers/:id. Rejected while tariffs
// or shipments still reference the carrier.
func (s *Server) RemoveCarrier(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	carrierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewRemoveCarrierCommand(carrierID, tenantID)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.RemoveCarrier.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// --- tariffs ---

// CreateTariff handles POST /api/v1/tariffs.
func (s *Server) CreateTariff(c echo.Context) error {
	tenantID, req, ok := bindTenant[CreateTariffRequest](c)
	if !ok {
		return nil
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return respondError(c, err)
	}
	var zoneID *kernel.UUID
	if req.ZoneID != nil {
		id, zErr := kernel.UUIDFromString(*req.ZoneID)
		if zErr != nil {
			return respondError(c, zErr)
		}
		zoneID = &id
	}
	method, err := tariff.MethodFromString(req.Method)
	if err != nil {
		return respondError(c, err)
	}
	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return respondError(c, err)
	}

	rates, err := ratesFromContract(currency, req.BaseRate, req.PerKgRate, req.PerItemRate,
		req.Tiers, req.Brackets, req.Surcharges, req.FreeOver)
	if err != nil {
		return respondError(c, err)
	}

	tariffID := kernel.NewUUID()
	cmd, err := commands.NewCreateTariffCommand(tariffID, tenantID,
		req.Code, req.Name, carrierID, zoneID, method, currency,
		rates.base, rates.perKg, rates.perItem, rates.tiers, rates.brackets,
		rates.surcharges, rates.threshold,
		tariff.ValidityWindow{From: req.ValidFrom, Until: req.ValidUntil})
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.CreateTariff.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return s.respondTariff(c, http.StatusCreated, tenantID, tariffID)
}

// UpdateTariff handles PUT /api/v1/tariffs/:id.
func (s *Server) UpdateTariff(c echo.Context) error {
	tenantID, req, ok := bindTenant[UpdateTariffRequest](c)
	if !ok {
		return nil
	}
	tariffID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	// The tariff currency is immutable; rate amounts in the request carry the
	// tariff's currency and the aggregate rejects a mismatch.
	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return respondError(c, err)
	}

	rates, err := ratesFromContract(currency, req.BaseRate, req.PerKgRate, req.PerItemRate,
		req.Tiers, req.Brackets, req.Surcharges, req.FreeOver)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateTariffCommand(tariffID, tenantID, req.Version,
		req.Name, rates.base, rates.perKg, rates.perItem, rates.tiers,
		rates.brackets, rates.surcharges, rates.threshold,
		tariff.ValidityWindow{From: req.ValidFrom, Until: req.ValidUntil},
		req.Active)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.UpdateTariff.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return s.respondTariff(c, http.StatusOK, tenantID, tariffID)
}

// GetTariff handles GET /api/v1/tariffs/:id. Unlike the listing, the detail
// view carries the full rate table with tiers and brackets.
func (s *Server) GetTariff(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	tariffID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return s.respondTariff(c, http.StatusOK, tenantID, tariffID)
}

func (s *Server) respondTariff(c echo.Context, status int, tenantID kernel.TenantID, tariffID kernel.UUID) error {
	query, err := queries.NewGetTariffQuery(tenantID, tariffID)
	if err != nil {
		return respondError(c, err)
	}

	row, err := s.handlers.GetTariff.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status, tariffResponseFromModel(row))
}

func tariffResponseFromModel(row queries.GetTariffQueryResponse) TariffResponse {
	var zoneID *string
	if row.ZoneID != nil {
		id := row.ZoneID.String()
		zoneID = &id
	}

	tiers := make([]WeightTierContract, len(row.Tiers))
	for i, tier := range row.Tiers {
		tiers[i] = WeightTierContract{MaxWeightKg: tier.MaxWeightKg, Rate: tier.Rate}
	}
	brackets := make([]PriceBracketContract, len(row.Brackets))
	for i, bracket := range row.Brackets {
		brackets[i] = PriceBracketContract{Min: bracket.Min, Max: bracket.Max, Rate: bracket.Rate}
	}

	return TariffResponse{
		ID:          row.ID.String(),
		Code:        row.Code,
		Name:        row.Name,
		CarrierID:   row.CarrierID.String(),
		ZoneID:      zoneID,
		Method:      row.Method.String(),
		Currency:    row.Currency,
		BaseRate:    row.BaseRate,
		PerKgRate:   row.PerKgRate,
		PerItemRate: row.PerItemRate,
		Tiers:       tiers,
		Brackets:    brackets,
		Surcharges: SurchargesContract{
			FuelPercent:           row.FuelPercent,
			ResidentialAmount:     row.ResidentialAmount,
			OversizeAmount:        row.OversizeAmount,
			OversizeOverLongestCm: row.OversizeOverLongestCm,
		},
		FreeOver:   row.FreeOver,
		ValidFrom:  row.ValidFrom,
		ValidUntil: row.ValidUntil,
		Active:     row.Active,
		Version:    row.Version,
	}
}

// RemoveTariff handles DELETE /api/v1/tariffs/:id.
func (s *Server) RemoveTariff(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	tariffID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewRemoveTariffCommand(tariffID, tenantID)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.RemoveTariff.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetTariffs handles GET /api/v1/tariffs. The active query parameter narrows
// the list to currently active tariffs.
func (s *Server) GetTariffs(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	query, err := queries.NewGetAllTariffsQuery(tenantID, c.QueryParam("active") == "true")
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.handlers.GetAllTariffs.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]TariffSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = TariffSummaryResponse{
			ID:          row.ID.String(),
			Code:        row.Code,
			Name:        row.Name,
			CarrierCode: row.CarrierCode,
			CarrierName: row.CarrierName,
			ZoneCode:    row.ZoneCode,
			Method:      row.Method.String(),
			Currency:    row.Currency,
			BaseRate:    row.BaseRate,
			FreeOver:    row.FreeOver,
			ValidFrom:   row.ValidFrom,
			ValidUntil:  row.ValidUntil,
			Active:      row.Active,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// --- quotes ---

// QuoteShipping handles POST /api/v1/quotes.
func (s *Server) QuoteShipping(c echo.Context) error {
	tenantID, req, ok := bindTenant[QuoteRequest](c)
	if !ok {
		return nil
	}

	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return respondError(c, err)
	}
	orderTotal, err := kernel.NewMoney(req.OrderTotal, currency)
	if err != nil {
		return respondError(c, err)
	}

	packages := make([]queries.QuotePackage, len(req.Packages))
	for i, p := range req.Packages {
		packages[i] = queries.QuotePackage{
			LengthCm: p.LengthCm,
			WidthCm:  p.WidthCm,
			HeightCm: p.HeightCm,
			WeightKg: p.WeightKg,
		}
	}

	query, err := queries.NewQuoteShippingQuery(tenantID, req.CountryCode,
		req.PostalCode, packages, orderTotal, req.ItemCount, req.Residential)
	if err != nil {
		return respondError(c, err)
	}

	quote, err := s.handlers.QuoteShipping.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	options := make([]QuoteOptionResponse, len(quote.Options))
	for i, option := range quote.Options {
		options[i] = QuoteOptionResponse{
			TariffID:      option.TariffID.String(),
			TariffCode:    option.TariffCode,
			TariffName:    option.TariffName,
			CarrierID:     option.CarrierID.String(),
			CarrierCode:   option.CarrierCode,
			CarrierName:   option.CarrierName,
			Method:        option.Method.String(),
			Currency:      option.Cost.Currency().Code(),
			Cost:          option.Cost.Amount(),
			BaseCost:      option.BaseCost.Amount(),
			SurchargeCost: option.SurchargeCost.Amount(),
			Free:          option.Free,
			DeliveryDays:  DeliveryDaysContract{Min: option.DeliveryDays.Min, Max: option.DeliveryDays.Max},
		}
	}

	return c.JSON(http.StatusOK, QuoteResponse{
		ZoneID:   quote.ZoneID.String(),
		ZoneCode: quote.ZoneCode,
		ZoneName: quote.ZoneName,
		Options:  options,
	})
}

// --- shipments ---

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	tenantID, req, ok := bindTenant[CreateShipmentRequest](c)
	if !ok {
		return nil
	}

	tariffID, err := kernel.UUIDFromString(req.TariffID)
	if err != nil {
		return respondError(c, err)
	}
	var orderID *kernel.UUID
	if req.OrderID != nil {
		id, oErr := kernel.UUIDFromString(*req.OrderID)
		if oErr != nil {
			return respondError(c, oErr)
		}
		orderID = &id
	}
	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return respondError(c, err)
	}
	orderTotal, err := kernel.NewMoney(req.OrderTotal, currency)
	if err != nil {
		return respondError(c, err)
	}

	packages := make([]commands.PackageData, len(req.Packages))
	for i, p := range req.Packages {
		declared, dErr := kernel.NewMoney(p.DeclaredValue, currency)
		if dErr != nil {
			return respondError(c, dErr)
		}
		packages[i] = commands.PackageData{
			LengthCm:      p.LengthCm,
			WidthCm:       p.WidthCm,
			HeightCm:      p.HeightCm,
			WeightKg:      p.WeightKg,
			DeclaredValue: declared,
			Contents:      p.Contents,
		}
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, tenantID, tariffID,
		orderID, addressDataFromContract(req.Origin), addressDataFromContract(req.Destination),
		req.PickupPoint, packages, orderTotal, req.Insured)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, IDResponse{ID: shipmentID.String()})
}

// GetShipments handles GET /api/v1/shipments with an optional status filter.
func (s *Server) GetShipments(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	var statusFilter *shipment.Status
	if raw := c.QueryParam("status"); raw != "" {
		status, err := shipment.StatusFromString(raw)
		if err != nil {
			return respondError(c, err)
		}
		statusFilter = &status
	}

	query, err := queries.NewGetAllShipmentsQuery(tenantID, statusFilter)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.handlers.GetAllShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]ShipmentSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = ShipmentSummaryResponse{
			ID:                row.ID.String(),
			Number:            row.Number,
			Status:            row.Status.String(),
			DestinationCity:   row.DestinationCity,
			CountryCode:       row.CountryCode,
			Currency:          row.Currency,
			TotalCost:         row.TotalCost,
			MasterTracking:    row.MasterTracking,
			EstimatedDelivery: row.EstimatedDelivery,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetShipmentQuery(tenantID, shipmentID)
	if err != nil {
		return respondError(c, err)
	}

	return s.respondShipment(c, query)
}

// GetShipmentByNumber handles GET /api/v1/shipments/number/:number.
func (s *Server) GetShipmentByNumber(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	query, err := queries.NewGetShipmentByNumberQuery(tenantID, c.Param("number"))
	if err != nil {
		return respondError(c, err)
	}

	return s.respondShipment(c, query)
}

// GetShipmentByTracking handles GET /api/v1/shipments/tracking/:tracking.
func (s *Server) GetShipmentByTracking(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	query, err := queries.NewGetShipmentByTrackingNumberQuery(tenantID, c.Param("tracking"))
	if err != nil {
		return respondError(c, err)
	}

	return s.respondShipment(c, query)
}

func (s *Server) respondShipment(c echo.Context, query queries.GetShipmentQuery) error {
	row, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	packages := make([]ShipmentPackageResponse, len(row.Packages))
	for i, p := range row.Packages {
		packages[i] = ShipmentPackageResponse{
			ID:             p.ID.String(),
			LengthCm:       p.LengthCm,
			WidthCm:        p.WidthCm,
			HeightCm:       p.HeightCm,
			WeightKg:       p.WeightKg,
			DeclaredValue:  p.DeclaredValue,
			Contents:       p.Contents,
			TrackingNumber: p.TrackingNumber,
		}
	}
	events := make([]TrackingEventResponse, len(row.Events))
	for i, e := range row.Events {
		events[i] = TrackingEventResponse{
			Status:      e.Status.String(),
			Description: e.Description,
			Location:    e.Location,
			OccurredAt:  e.OccurredAt,
		}
	}

	var orderID *string
	if row.OrderID != nil {
		v := row.OrderID.String()
		orderID = &v
	}

	return c.JSON(http.StatusOK, ShipmentResponse{
		ID:                row.ID.String(),
		Number:            row.Number,
		Status:            row.Status.String(),
		CarrierID:         row.CarrierID.String(),
		TariffID:          row.TariffID.String(),
		OrderID:           orderID,
		Origin:            addressContractFromResponse(row.Origin),
		Destination:       addressContractFromResponse(row.Destination),
		PickupPoint:       row.PickupPoint,
		Currency:          row.Currency,
		BaseCost:          row.BaseCost,
		InsuranceCost:     row.InsuranceCost,
		SurchargeCost:     row.SurchargeCost,
		TotalCost:         row.TotalCost,
		MasterTracking:    row.MasterTracking,
		LabelURL:          row.LabelURL,
		EstimatedDelivery: row.EstimatedDelivery,
		DeliveredAt:       row.DeliveredAt,
		CancelReason:      row.CancelReason,
		Packages:          packages,
		Events:            events,
		Version:           row.Version,
	})
}

// GenerateLabel handles POST /api/v1/shipments/:id/label.
func (s *Server) GenerateLabel(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewGenerateLabelCommand(shipmentID, tenantID)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.GenerateLabel.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PostTrackingEvent handles POST /api/v1/shipments/:id/events.
func (s *Server) PostTrackingEvent(c echo.Context) error {
	tenantID, req, ok := bindTenant[PostTrackingEventRequest](c)
	if !ok {
		return nil
	}
	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	status, err := shipment.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	cmd, err := commands.NewPostTrackingEventCommand(shipmentID, tenantID,
		status, req.Description, req.Location, occurredAt)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.PostTrackingEvent.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelShipment(c echo.Context) error {
	tenantID, req, ok := bindTenant[CancelShipmentRequest](c)
	if !ok {
		return nil
	}
	shipmentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, tenantID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.CancelShipment.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// --- returns ---

// CreateReturn handles POST /api/v1/returns.
func (s *Server) CreateReturn(c echo.Context) error {
	tenantID, req, ok := bindTenant[CreateReturnRequest](c)
	if !ok {
		return nil
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]commands.ReturnItemData, len(req.Items))
	for i, item := range req.Items {
		items[i] = commands.ReturnItemData{
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			Reason:      item.Reason,
		}
	}

	returnID := kernel.NewUUID()
	cmd, err := commands.NewCreateReturnCommand(returnID, tenantID, shipmentID, items)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.CreateReturn.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, IDResponse{ID: returnID.String()})
}

// GetReturns handles GET /api/v1/returns with an optional status filter.
func (s *Server) GetReturns(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	var statusFilter *rma.Status
	if raw := c.QueryParam("status"); raw != "" {
		status, err := rma.StatusFromString(raw)
		if err != nil {
			return respondError(c, err)
		}
		statusFilter = &status
	}

	query, err := queries.NewGetAllReturnsQuery(tenantID, statusFilter)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.handlers.GetAllReturns.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]ReturnSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = ReturnSummaryResponse{
			ID:             row.ID.String(),
			Number:         row.Number,
			ShipmentID:     row.ShipmentID.String(),
			Status:         row.Status.String(),
			TrackingNumber: row.TrackingNumber,
			ItemCount:      row.ItemCount,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetReturn handles GET /api/v1/returns/:id.
func (s *Server) GetReturn(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}
	returnID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetReturnQuery(tenantID, returnID)
	if err != nil {
		return respondError(c, err)
	}

	return s.respondReturn(c, query)
}

// GetReturnByNumber handles GET /api/v1/returns/number/:number.
func (s *Server) GetReturnByNumber(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return respondNoTenant(c)
	}

	query, err := queries.NewGetReturnByNumberQuery(tenantID, c.Param("number"))
	if err != nil {
		return respondError(c, err)
	}

	return s.respondReturn(c, query)
}

func (s *Server) respondReturn(c echo.Context, query queries.GetReturnQuery) error {
	row, err := s.handlers.GetReturn.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]ReturnItemContract, len(row.Items))
	for i, item := range row.Items {
		items[i] = ReturnItemContract{
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			Reason:      item.Reason,
		}
	}

	var refund *RefundResponse
	if row.Refund != nil {
		refund = &RefundResponse{
			Amount:        row.Refund.Amount,
			Currency:      row.Refund.Currency,
			Method:        row.Refund.Method.String(),
			RestockingFee: row.Refund.RestockingFee,
			ProcessedAt:   row.Refund.ProcessedAt,
		}
	}

	var orderID *string
	if row.OrderID != nil {
		v := row.OrderID.String()
		orderID = &v
	}

	return c.JSON(http.StatusOK, ReturnResponse{
		ID:                row.ID.String(),
		Number:            row.Number,
		ShipmentID:        row.ShipmentID.String(),
		OrderID:           orderID,
		Status:            row.Status.String(),
		ReviewNotes:       row.ReviewNotes,
		TrackingNumber:    row.TrackingNumber,
		LabelURL:          row.LabelURL,
		ReceivedCondition: row.ReceivedCondition,
		ReceivedNotes:     row.ReceivedNotes,
		ReceivedAt:        row.ReceivedAt,
		InspectionOutcome: row.InspectionOutcome,
		InspectionNotes:   row.InspectionNotes,
		InspectedAt:       row.InspectedAt,
		Items:             items,
		Refund:            refund,
		Version:           row.Version,
	})
}

// ReviewReturn handles POST /api/v1/returns/:id/review.
func (s *Server) ReviewReturn(c echo.Context) error {
	tenantID, req, ok := bindTenant[ReviewReturnRequest](c)
	if !ok {
		return nil
	}
	returnID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewReviewReturnCommand(returnID, tenantID, req.Approve, req.Notes)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.ReviewReturn.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SendReturnLabel handles POST /api/v1/returns/:id/label.
func (s *Server) SendReturnLabel(c echo.Context) error {
	tenantID, req, ok := bindTenant[SendReturnLabelRequest](c)
	if !ok {
		return nil
	}
	returnID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewSendReturnLabelCommand(returnID, tenantID,
		req.TrackingNumber, req.LabelURL)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.SendReturnLabel.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReceiveReturn handles POST /api/v1/returns/:id/receive.
func (s *Server) ReceiveReturn(c echo.Context) error {
	tenantID, req, ok := bindTenant[ReceiveReturnRequest](c)
	if !ok {
		return nil
	}
	returnID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	receivedAt := time.Now().UTC()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	cmd, err := commands.NewReceiveReturnCommand(returnID, tenantID,
		req.Condition, req.Notes, receivedAt)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.ReceiveReturn.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// InspectReturn handles POST /api/v1/returns/:id/inspect.
func (s *Server) InspectReturn(c echo.Context) error {
	tenantID, req, ok := bindTenant[InspectReturnRequest](c)
	if !ok {
		return nil
	}
	returnID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	inspectedAt := time.Now().UTC()
	if req.InspectedAt != nil {
		inspectedAt = *req.InspectedAt
	}

	cmd, err := commands.NewInspectReturnCommand(returnID, tenantID,
		req.Outcome, req.Notes, inspectedAt)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.InspectReturn.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ProcessRefund handles POST /api/v1/returns/:id/refund.
func (s *Server) ProcessRefund(c echo.Context) error {
	tenantID, req, ok := bindTenant[ProcessRefundRequest](c)
	if !ok {
		return nil
	}
	returnID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return respondError(c, err)
	}
	amount, err := kernel.NewMoney(req.Amount, currency)
	if err != nil {
		return respondError(c, err)
	}
	restockingFee, err := kernel.NewMoney(req.RestockingFee, currency)
	if err != nil {
		return respondError(c, err)
	}
	method, err := rma.RefundMethodFromString(req.Method)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewProcessRefundCommand(returnID, tenantID, amount, method, restockingFee)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.handlers.ProcessRefund.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// --- binding helpers ---

// bindTenant binds the JSON body and resolves the tenant in one step. On
// failure it writes the error response itself and reports ok=false.
func bindTenant[T any](c echo.Context) (kernel.TenantID, T, bool) {
	var req T
	tenantID, ok := tenantFrom(c)
	if !ok {
		_ = respondNoTenant(c)
		return kernel.TenantID{}, req, false
	}
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
		return kernel.TenantID{}, req, false
	}
	return tenantID, req, true
}

func respondNoTenant(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "Missing tenant",
	})
}

func addressDataFromContract(a AddressContract) commands.AddressData {
	return commands.AddressData{
		Name:        a.Name,
		Street:      a.Street,
		City:        a.City,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		Residential: a.Residential,
	}
}

func addressContractFromResponse(a queries.ShipmentAddressResponse) AddressContract {
	return AddressContract{
		Name:        a.Name,
		Street:      a.Street,
		City:        a.City,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		Residential: a.Residential,
	}
}

func capabilitiesFromContract(c CapabilitiesContract) carrier.Capabilities {
	return carrier.Capabilities{
		Tracking:     c.Tracking,
		Labels:       c.Labels,
		Returns:      c.Returns,
		PickupPoints: c.PickupPoints,
		Insurance:    c.Insurance,
	}
}

func limitsFromContract(l ServiceLimitsContract) carrier.ServiceLimits {
	return carrier.ServiceLimits{
		MaxWeightKg: l.MaxWeightKg,
		MaxLengthCm: l.MaxLengthCm,
		MaxGirthCm:  l.MaxGirthCm,
	}
}

func deliveryDaysFromContract(d DeliveryDaysContract) carrier.DeliveryDays {
	return carrier.DeliveryDays{Min: d.Min, Max: d.Max}
}

type tariffRates struct {
	base       kernel.Money
	perKg      kernel.Money
	perItem    kernel.Money
	tiers      []tariff.WeightTier
	brackets   []tariff.PriceBracket
	surcharges tariff.Surcharges
	threshold  *kernel.Money
}

// ratesFromContract converts the flat rate fields of a tariff request into
// domain values, all denominated in the given currency.
func ratesFromContract(
	currency kernel.Currency,
	baseRate, perKgRate, perItemRate decimal.Decimal,
	tierContracts []WeightTierContract,
	bracketContracts []PriceBracketContract,
	surchargeContract SurchargesContract,
	freeOver *decimal.Decimal,
) (tariffRates, error) {
	var rates tariffRates
	var err error

	if rates.base, err = kernel.NewMoney(baseRate, currency); err != nil {
		return tariffRates{}, err
	}
	if rates.perKg, err = kernel.NewMoney(perKgRate, currency); err != nil {
		return tariffRates{}, err
	}
	if rates.perItem, err = kernel.NewMoney(perItemRate, currency); err != nil {
		return tariffRates{}, err
	}

	if len(tierContracts) > 0 {
		rates.tiers = make([]tariff.WeightTier, len(tierContracts))
		for i, tier := range tierContracts {
			rate, tErr := kernel.NewMoney(tier.Rate, currency)
			if tErr != nil {
				return tariffRates{}, tErr
			}
			rates.tiers[i] = tariff.WeightTier{MaxWeightKg: tier.MaxWeightKg, Rate: rate}
		}
	}

	if len(bracketContracts) > 0 {
		rates.brackets = make([]tariff.PriceBracket, len(bracketContracts))
		for i, bracket := range bracketContracts {
			min, bErr := kernel.NewMoney(bracket.Min, currency)
			if bErr != nil {
				return tariffRates{}, bErr
			}
			rate, bErr := kernel.NewMoney(bracket.Rate, currency)
			if bErr != nil {
				return tariffRates{}, bErr
			}
			var max *kernel.Money
			if bracket.Max != nil {
				m, mErr := kernel.NewMoney(*bracket.Max, currency)
				if mErr != nil {
					return tariffRates{}, mErr
				}
				max = &m
			}
			rates.brackets[i] = tariff.PriceBracket{Min: min, Max: max, Rate: rate}
		}
	}

	residential, err := kernel.NewMoney(surchargeContract.ResidentialAmount, currency)
	if err != nil {
		return tariffRates{}, err
	}
	oversize, err := kernel.NewMoney(surchargeContract.OversizeAmount, currency)
	if err != nil {
		return tariffRates{}, err
	}
	rates.surcharges = tariff.Surcharges{
		FuelPercent:           surchargeContract.FuelPercent,
		ResidentialAmount:     residential,
		OversizeAmount:        oversize,
		OversizeOverLongestCm: surchargeContract.OversizeOverLongestCm,
	}

	if freeOver != nil {
		threshold, fErr := kernel.NewMoney(*freeOver, currency)
		if fErr != nil {
			return tariffRates{}, fErr
		}
		rates.threshold = &threshold
	}

	return rates, nil
}
