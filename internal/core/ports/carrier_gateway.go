package ports

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/shipment"
)

// CarrierIntegrationError wraps a failure of an external carrier API call.
// Calls are synchronous and never retried here; retrying is the caller's
// decision.
type CarrierIntegrationError struct {
	CarrierCode string
	Operation   string
	Cause       error
}

func (e *CarrierIntegrationError) Error() string {
	return fmt.Sprintf("carrier %s: %s failed: %v", e.CarrierCode, e.Operation, e.Cause)
}

func (e *CarrierIntegrationError) Unwrap() error {
	return e.Cause
}

// NewCarrierIntegrationError creates a CarrierIntegrationError.
func NewCarrierIntegrationError(carrierCode, operation string, cause error) *CarrierIntegrationError {
	return &CarrierIntegrationError{CarrierCode: carrierCode, Operation: operation, Cause: cause}
}

// LabelResult is what a carrier hands back for an issued label.
type LabelResult struct {
	MasterTracking  string
	PackageTracking []string
	LabelURL        string
}

// TrackingUpdate is one scan record from a carrier's tracking feed.
type TrackingUpdate struct {
	Status      shipment.Status
	Description string
	Location    string
	OccurredAt  time.Time
}

// CarrierGateway defines the contract to external carrier APIs: label
// issuance and tracking feeds.
type CarrierGateway interface {
	// IssueLabel requests a shipping label for the shipment from the carrier.
	IssueLabel(ctx context.Context, c *carrier.Carrier, s *shipment.Shipment) (LabelResult, error)

	// FetchTrackingUpdates retrieves scan events recorded by the carrier for
	// a master tracking number, oldest first.
	FetchTrackingUpdates(ctx context.Context, c *carrier.Carrier, masterTracking string) ([]TrackingUpdate, error)
}
