package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IDResponse acknowledges a creation with the server-assigned identifier.
type IDResponse struct {
	ID string `json:"id"`
}

// --- zones ---

type CreateZoneRequest struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Countries []string `json:"countries"`
	Allow     []string `json:"allow,omitempty"`
	Deny      []string `json:"deny,omitempty"`
	Priority  int      `json:"priority"`
}

type ZoneResponse struct {
	ID        string   `json:"id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Countries []string `json:"countries"`
	Allow     []string `json:"allow,omitempty"`
	Deny      []string `json:"deny,omitempty"`
	Priority  int      `json:"priority"`
	Active    bool     `json:"active"`
	Version   int64    `json:"version"`
}

type UpdateZoneRequest struct {
	Version   int64    `json:"version"`
	Name      string   `json:"name"`
	Countries []string `json:"countries"`
	Allow     []string `json:"allow,omitempty"`
	Deny      []string `json:"deny,omitempty"`
	Priority  int      `json:"priority"`
	Active    bool     `json:"active"`
}

// --- carriers ---

type CapabilitiesContract struct {
	Tracking     bool `json:"tracking"`
	Labels       bool `json:"labels"`
	Returns      bool `json:"returns"`
	PickupPoints bool `json:"pickupPoints"`
	Insurance    bool `json:"insurance"`
}

type ServiceLimitsContract struct {
	MaxWeightKg float64 `json:"maxWeightKg,omitempty"`
	MaxLengthCm float64 `json:"maxLengthCm,omitempty"`
	MaxGirthCm  float64 `json:"maxGirthCm,omitempty"`
}

type DeliveryDaysContract struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type CreateCarrierRequest struct {
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	Capabilities CapabilitiesContract  `json:"capabilities"`
	Limits       ServiceLimitsContract `json:"limits"`
	DeliveryDays DeliveryDaysContract  `json:"deliveryDays"`
}

type CarrierResponse struct {
	ID           string                `json:"id"`
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	Capabilities CapabilitiesContract  `json:"capabilities"`
	Limits       ServiceLimitsContract `json:"limits"`
	DeliveryDays DeliveryDaysContract  `json:"deliveryDays"`
	Active       bool                  `json:"active"`
	Version      int64                 `json:"version"`
}

type UpdateCarrierRequest struct {
	Version      int64                 `json:"version"`
	Name         string                `json:"name"`
	Capabilities CapabilitiesContract  `json:"capabilities"`
	Limits       ServiceLimitsContract `json:"limits"`
	DeliveryDays DeliveryDaysContract  `json:"deliveryDays"`
	Active       bool                  `json:"active"`
}

// --- tariffs ---

type WeightTierContract struct {
	MaxWeightKg float64         `json:"maxWeightKg"`
	Rate        decimal.Decimal `json:"rate"`
}

type PriceBracketContract struct {
	Min  decimal.Decimal  `json:"min"`
	Max  *decimal.Decimal `json:"max,omitempty"`
	Rate decimal.Decimal  `json:"rate"`
}

type SurchargesContract struct {
	FuelPercent           decimal.Decimal `json:"fuelPercent"`
	ResidentialAmount     decimal.Decimal `json:"residentialAmount"`
	OversizeAmount        decimal.Decimal `json:"oversizeAmount"`
	OversizeOverLongestCm float64         `json:"oversizeOverLongestCm,omitempty"`
}

type CreateTariffRequest struct {
	Code        string                 `json:"code"`
	Name        string                 `json:"name"`
	CarrierID   string                 `json:"carrierId"`
	ZoneID      *string                `json:"zoneId,omitempty"`
	Method      string                 `json:"method"`
	Currency    string                 `json:"currency"`
	BaseRate    decimal.Decimal        `json:"baseRate"`
	PerKgRate   decimal.Decimal        `json:"perKgRate"`
	PerItemRate decimal.Decimal        `json:"perItemRate"`
	Tiers       []WeightTierContract   `json:"tiers,omitempty"`
	Brackets    []PriceBracketContract `json:"brackets,omitempty"`
	Surcharges  SurchargesContract     `json:"surcharges"`
	FreeOver    *decimal.Decimal       `json:"freeOver,omitempty"`
	ValidFrom   *time.Time             `json:"validFrom,omitempty"`
	ValidUntil  *time.Time             `json:"validUntil,omitempty"`
}

type UpdateTariffRequest struct {
	Version     int64                  `json:"version"`
	Name        string                 `json:"name"`
	Currency    string                 `json:"currency"`
	BaseRate    decimal.Decimal        `json:"baseRate"`
	PerKgRate   decimal.Decimal        `json:"perKgRate"`
	PerItemRate decimal.Decimal        `json:"perItemRate"`
	Tiers       []WeightTierContract   `json:"tiers,omitempty"`
	Brackets    []PriceBracketContract `json:"brackets,omitempty"`
	Surcharges  SurchargesContract     `json:"surcharges"`
	FreeOver    *decimal.Decimal       `json:"freeOver,omitempty"`
	ValidFrom   *time.Time             `json:"validFrom,omitempty"`
	ValidUntil  *time.Time             `json:"validUntil,omitempty"`
	Active      bool                   `json:"active"`
}

type TariffResponse struct {
	ID          string                 `json:"id"`
	Code        string                 `json:"code"`
	Name        string                 `json:"name"`
	CarrierID   string                 `json:"carrierId"`
	ZoneID      *string                `json:"zoneId,omitempty"`
	Method      string                 `json:"method"`
	Currency    string                 `json:"currency"`
	BaseRate    decimal.Decimal        `json:"baseRate"`
	PerKgRate   decimal.Decimal        `json:"perKgRate"`
	PerItemRate decimal.Decimal        `json:"perItemRate"`
	Tiers       []WeightTierContract   `json:"tiers,omitempty"`
	Brackets    []PriceBracketContract `json:"brackets,omitempty"`
	Surcharges  SurchargesContract     `json:"surcharges"`
	FreeOver    *decimal.Decimal       `json:"freeOver,omitempty"`
	ValidFrom   *time.Time             `json:"validFrom,omitempty"`
	ValidUntil  *time.Time             `json:"validUntil,omitempty"`
	Active      bool                   `json:"active"`
	Version     int64                  `json:"version"`
}

type TariffSummaryResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	CarrierCode string           `json:"carrierCode"`
	CarrierName string           `json:"carrierName"`
	ZoneCode    string           `json:"zoneCode,omitempty"`
	Method      string           `json:"method"`
	Currency    string           `json:"currency"`
	BaseRate    decimal.Decimal  `json:"baseRate"`
	FreeOver    *decimal.Decimal `json:"freeOver,omitempty"`
	ValidFrom   *time.Time       `json:"validFrom,omitempty"`
	ValidUntil  *time.Time       `json:"validUntil,omitempty"`
	Active      bool             `json:"active"`
}

// --- quotes ---

type QuotePackageContract struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
}

type QuoteRequest struct {
	CountryCode string                 `json:"countryCode"`
	PostalCode  string                 `json:"postalCode"`
	Residential bool                   `json:"residential"`
	Currency    string                 `json:"currency"`
	OrderTotal  decimal.Decimal        `json:"orderTotal"`
	ItemCount   int                    `json:"itemCount,omitempty"`
	Packages    []QuotePackageContract `json:"packages"`
}

type QuoteOptionResponse struct {
	TariffID      string               `json:"tariffId"`
	TariffCode    string               `json:"tariffCode"`
	TariffName    string               `json:"tariffName"`
	CarrierID     string               `json:"carrierId"`
	CarrierCode   string               `json:"carrierCode"`
	CarrierName   string               `json:"carrierName"`
	Method        string               `json:"method"`
	Currency      string               `json:"currency"`
	Cost          decimal.Decimal      `json:"cost"`
	BaseCost      decimal.Decimal      `json:"baseCost"`
	SurchargeCost decimal.Decimal      `json:"surchargeCost"`
	Free          bool                 `json:"free"`
	DeliveryDays  DeliveryDaysContract `json:"deliveryDays"`
}

type QuoteResponse struct {
	ZoneID   string                `json:"zoneId"`
	ZoneCode string                `json:"zoneCode"`
	ZoneName string                `json:"zoneName"`
	Options  []QuoteOptionResponse `json:"options"`
}

// --- shipments ---

type AddressContract struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	Residential bool   `json:"residential"`
}

type PackageContract struct {
	LengthCm      float64         `json:"lengthCm"`
	WidthCm       float64         `json:"widthCm"`
	HeightCm      float64         `json:"heightCm"`
	WeightKg      float64         `json:"weightKg"`
	DeclaredValue decimal.Decimal `json:"declaredValue"`
	Contents      string          `json:"contents,omitempty"`
}

type CreateShipmentRequest struct {
	TariffID    string            `json:"tariffId"`
	OrderID     *string           `json:"orderId,omitempty"`
	Origin      AddressContract   `json:"origin"`
	Destination AddressContract   `json:"destination"`
	PickupPoint string            `json:"pickupPoint,omitempty"`
	Packages    []PackageContract `json:"packages"`
	Currency    string            `json:"currency"`
	OrderTotal  decimal.Decimal   `json:"orderTotal"`
	Insured     bool              `json:"insured"`
}

type PostTrackingEventRequest struct {
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Location    string     `json:"location,omitempty"`
	OccurredAt  *time.Time `json:"occurredAt,omitempty"`
}

type CancelShipmentRequest struct {
	Reason string `json:"reason"`
}

type ShipmentPackageResponse struct {
	ID             string          `json:"id"`
	LengthCm       float64         `json:"lengthCm"`
	WidthCm        float64         `json:"widthCm"`
	HeightCm       float64         `json:"heightCm"`
	WeightKg       float64         `json:"weightKg"`
	DeclaredValue  decimal.Decimal `json:"declaredValue"`
	Contents       string          `json:"contents,omitempty"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
}

type TrackingEventResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type ShipmentResponse struct {
	ID                string                    `json:"id"`
	Number            string                    `json:"number"`
	Status            string                    `json:"status"`
	CarrierID         string                    `json:"carrierId"`
	TariffID          string                    `json:"tariffId"`
	OrderID           *string                   `json:"orderId,omitempty"`
	Origin            AddressContract           `json:"origin"`
	Destination       AddressContract           `json:"destination"`
	PickupPoint       string                    `json:"pickupPoint,omitempty"`
	Currency          string                    `json:"currency"`
	BaseCost          decimal.Decimal           `json:"baseCost"`
	InsuranceCost     decimal.Decimal           `json:"insuranceCost"`
	SurchargeCost     decimal.Decimal           `json:"surchargeCost"`
	TotalCost         decimal.Decimal           `json:"totalCost"`
	MasterTracking    string                    `json:"masterTracking,omitempty"`
	LabelURL          string                    `json:"labelUrl,omitempty"`
	EstimatedDelivery *time.Time                `json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time                `json:"deliveredAt,omitempty"`
	CancelReason      string                    `json:"cancelReason,omitempty"`
	Packages          []ShipmentPackageResponse `json:"packages"`
	Events            []TrackingEventResponse   `json:"events"`
	Version           int64                     `json:"version"`
}

type ShipmentSummaryResponse struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	Status            string          `json:"status"`
	DestinationCity   string          `json:"destinationCity"`
	CountryCode       string          `json:"countryCode"`
	Currency          string          `json:"currency"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	MasterTracking    string          `json:"masterTracking,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
}

// --- returns ---

type ReturnItemContract struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}

type CreateReturnRequest struct {
	ShipmentID string               `json:"shipmentId"`
	Items      []ReturnItemContract `json:"items"`
}

type ReviewReturnRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}

type SendReturnLabelRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	LabelURL       string `json:"labelUrl,omitempty"`
}

type ReceiveReturnRequest struct {
	Condition  string     `json:"condition"`
	Notes      string     `json:"notes,omitempty"`
	ReceivedAt *time.Time `json:"receivedAt,omitempty"`
}

type InspectReturnRequest struct {
	Outcome     string     `json:"outcome"`
	Notes       string     `json:"notes,omitempty"`
	InspectedAt *time.Time `json:"inspectedAt,omitempty"`
}

type ProcessRefundRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"method"`
	RestockingFee decimal.Decimal `json:"restockingFee"`
}

type RefundResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"method"`
	RestockingFee decimal.Decimal `json:"restockingFee"`
	ProcessedAt   time.Time       `json:"processedAt"`
}

type ReturnResponse struct {
	ID                string               `json:"id"`
	Number            string               `json:"number"`
	ShipmentID        string               `json:"shipmentId"`
	OrderID           *string              `json:"orderId,omitempty"`
	Status            string               `json:"status"`
	ReviewNotes       string               `json:"reviewNotes,omitempty"`
	TrackingNumber    string               `json:"trackingNumber,omitempty"`
	LabelURL          string               `json:"labelUrl,omitempty"`
	ReceivedCondition string               `json:"receivedCondition,omitempty"`
	ReceivedNotes     string               `json:"receivedNotes,omitempty"`
	ReceivedAt        *time.Time           `json:"receivedAt,omitempty"`
	InspectionOutcome string               `json:"inspectionOutcome,omitempty"`
	InspectionNotes   string               `json:"inspectionNotes,omitempty"`
	InspectedAt       *time.Time           `json:"inspectedAt,omitempty"`
	Items             []ReturnItemContract `json:"items"`
	Refund            *RefundResponse      `json:"refund,omitempty"`
	Version           int64                `json:"version"`
}

type ReturnSummaryResponse struct {
	ID             string `json:"id"`
	Number         string `json:"number"`
	ShipmentID     string `json:"shipmentId"`
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	ItemCount      int    `json:"itemCount"`
}
