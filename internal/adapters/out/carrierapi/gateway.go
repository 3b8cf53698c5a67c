// Package carrierapi provides a stub CarrierGateway for environments without
// live carrier integrations. Labels are issued locally and the tracking feed
// simulates a delivery run on a fixed timetable, which makes the lifecycle
// machinery exercisable end to end in development and demos.
package carrierapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// leg is one scheduled scan of the simulated delivery run.
type leg struct {
	status      shipment.Status
	description string
	location    string
	after       time.Duration
}

func deliveryRun() []leg {
	return []leg{
		{shipment.PickedUp, "Picked up by carrier", "Origin depot", 1 * time.Minute},
		{shipment.InTransit, "Departed origin depot", "Origin depot", 5 * time.Minute},
		{shipment.InTransit, "Arrived at sorting hub", "Regional hub", 15 * time.Minute},
		{shipment.OutForDelivery, "Out for delivery", "Destination depot", 30 * time.Minute},
		{shipment.Delivered, "Delivered", "Destination", 45 * time.Minute},
	}
}

// StubCarrierGateway implements ports.CarrierGateway without calling any
// external API. Issued labels are remembered in memory so the tracking feed
// can replay the run relative to issuance time; state does not survive a
// restart, which is acceptable for a stub.
type StubCarrierGateway struct {
	labelBaseURL string
	now          func() time.Time

	mu     sync.Mutex
	issued map[string]issuedLabel
}

type issuedLabel struct {
	carrierCode string
	issuedAt    time.Time
}

// NewStubCarrierGateway creates a stub gateway. Label URLs are composed from
// labelBaseURL and the master tracking number.
func NewStubCarrierGateway(labelBaseURL string) *StubCarrierGateway {
	return &StubCarrierGateway{
		labelBaseURL: labelBaseURL,
		now:          time.Now,
		issued:       make(map[string]issuedLabel),
	}
}

// IssueLabel assigns a master tracking number, one tracking number per
// package and a label URL.
func (g *StubCarrierGateway) IssueLabel(_ context.Context, c *carrier.Carrier, s *shipment.Shipment) (ports.LabelResult, error) {
	if err := c.Validate(); err != nil {
		return ports.LabelResult{}, ports.NewCarrierIntegrationError("", "IssueLabel", err)
	}
	if err := s.Validate(); err != nil {
		return ports.LabelResult{}, ports.NewCarrierIntegrationError(c.Code(), "IssueLabel", err)
	}

	suffix, err := randomHex(5)
	if err != nil {
		return ports.LabelResult{}, ports.NewCarrierIntegrationError(c.Code(), "IssueLabel", err)
	}

	master := fmt.Sprintf("%s-%s", c.Code(), suffix)
	packageTracking := make([]string, 0, len(s.Packages()))
	for i := range s.Packages() {
		packageTracking = append(packageTracking, fmt.Sprintf("%s-P%d", master, i+1))
	}

	g.mu.Lock()
	g.issued[master] = issuedLabel{carrierCode: c.Code(), issuedAt: g.now()}
	g.mu.Unlock()

	return ports.LabelResult{
		MasterTracking:  master,
		PackageTracking: packageTracking,
		LabelURL:        fmt.Sprintf("%s/%s.pdf", g.labelBaseURL, master),
	}, nil
}

// FetchTrackingUpdates replays the simulated run up to the current moment,
// oldest scan first. A tracking number this gateway never issued yields an
// integration error, the same way a live carrier rejects a foreign number.
func (g *StubCarrierGateway) FetchTrackingUpdates(_ context.Context, c *carrier.Carrier, masterTracking string) ([]ports.TrackingUpdate, error) {
	g.mu.Lock()
	record, ok := g.issued[masterTracking]
	g.mu.Unlock()

	if !ok {
		return nil, ports.NewCarrierIntegrationError(c.Code(), "FetchTrackingUpdates",
			fmt.Errorf("unknown tracking number %q", masterTracking))
	}

	now := g.now()
	updates := make([]ports.TrackingUpdate, 0)
	for _, l := range deliveryRun() {
		scanAt := record.issuedAt.Add(l.after)
		if scanAt.After(now) {
			break
		}
		updates = append(updates, ports.TrackingUpdate{
			Status:      l.status,
			Description: l.description,
			Location:    l.location,
			OccurredAt:  scanAt,
		})
	}

	return updates, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
