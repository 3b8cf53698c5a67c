// Package messaging publishes lifecycle notifications to RabbitMQ. Messages
// are fire-and-forget from the command handlers' point of view: they go out
// after the owning transaction commits, and a broker failure is surfaced to
// the caller for logging, never for rollback.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/streadway/amqp"
)

// shipmentStatusChanged is the wire envelope for a shipment lifecycle change.
// The latest tracking event rides along so consumers do not need a follow-up
// query for the common case.
type shipmentStatusChanged struct {
	ShipmentID     string             `json:"shipmentId"`
	TenantID       string             `json:"tenantId"`
	Number         string             `json:"number"`
	Status         string             `json:"status"`
	MasterTracking string             `json:"masterTracking,omitempty"`
	LatestEvent    *trackingEventBody `json:"latestEvent,omitempty"`
}

type trackingEventBody struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// returnStatusChanged is the wire envelope for a return lifecycle change.
type returnStatusChanged struct {
	ReturnID   string `json:"returnId"`
	TenantID   string `json:"tenantId"`
	Number     string `json:"number"`
	ShipmentID string `json:"shipmentId"`
	Status     string `json:"status"`
}

// RabbitMQPublisher implements ports.EventPublisher over one AMQP connection.
// The connection is dialed lazily on first publish and re-dialed after a
// broker drop; both paths run under the mutex so publishes never race a
// reconnect.
type RabbitMQPublisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitMQPublisher creates a publisher bound to the given broker URL and
// topic exchange. No connection is made until the first publish.
func NewRabbitMQPublisher(url, exchange string) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		url:      url,
		exchange: exchange,
	}
}

// PublishShipmentStatusChanged announces the shipment's latest status and
// tracking event under the routing key fulfillment.shipment.<status>.
func (p *RabbitMQPublisher) PublishShipmentStatusChanged(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	envelope := shipmentStatusChanged{
		ShipmentID:     aggregate.ID().String(),
		TenantID:       aggregate.TenantID().String(),
		Number:         aggregate.Number(),
		Status:         aggregate.Status().String(),
		MasterTracking: aggregate.MasterTracking(),
	}
	if events := aggregate.Events(); len(events) > 0 {
		latest := events[len(events)-1]
		envelope.LatestEvent = &trackingEventBody{
			Status:      latest.Status().String(),
			Description: latest.Description(),
			Location:    latest.Location(),
			OccurredAt:  latest.OccurredAt(),
		}
	}

	routingKey := "fulfillment.shipment." + strings.ToLower(aggregate.Status().String())
	return p.publish(ctx, routingKey, aggregate.ID().String(), envelope)
}

// PublishReturnStatusChanged announces the return's latest status under the
// routing key fulfillment.return.<status>.
func (p *RabbitMQPublisher) PublishReturnStatusChanged(ctx context.Context, aggregate *rma.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	envelope := returnStatusChanged{
		ReturnID:   aggregate.ID().String(),
		TenantID:   aggregate.TenantID().String(),
		Number:     aggregate.Number(),
		ShipmentID: aggregate.ShipmentID().String(),
		Status:     aggregate.Status().String(),
	}

	routingKey := "fulfillment.return." + strings.ToLower(aggregate.Status().String())
	return p.publish(ctx, routingKey, aggregate.ID().String(), envelope)
}

func (p *RabbitMQPublisher) publish(_ context.Context, routingKey, messageID string, envelope any) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	channel, err := p.ensureChannel()
	if err != nil {
		return err
	}

	err = channel.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		// Drop the channel so the next publish re-dials.
		p.teardown()
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	return nil
}

// ensureChannel dials the broker and declares the exchange if needed. Caller
// holds the mutex.
func (p *RabbitMQPublisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && p.conn != nil && !p.conn.IsClosed() {
		return p.channel, nil
	}

	p.teardown()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	p.conn = conn
	p.channel = channel
	return p.channel, nil
}

// teardown closes whatever is open. Caller holds the mutex.
func (p *RabbitMQPublisher) teardown() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close shuts the broker connection down.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardown()
	return nil
}
