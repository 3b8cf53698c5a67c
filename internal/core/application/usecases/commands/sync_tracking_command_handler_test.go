package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCarrierRepository struct {
	mock.Mock
}

func (m *MockCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCarrierRepository) Update(ctx context.Context, aggregate *carrier.Carrier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCarrierRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*carrier.Carrier, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(*carrier.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*carrier.Carrier, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Get(0).(*carrier.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*carrier.Carrier, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*carrier.Carrier), args.Error(1)
}

type MockCarrierGateway struct {
	mock.Mock
}

func (m *MockCarrierGateway) IssueLabel(ctx context.Context, c *carrier.Carrier, s *shipment.Shipment) (ports.LabelResult, error) {
	args := m.Called(ctx, c, s)
	return args.Get(0).(ports.LabelResult), args.Error(1)
}

func (m *MockCarrierGateway) FetchTrackingUpdates(ctx context.Context, c *carrier.Carrier, masterTracking string) ([]ports.TrackingUpdate, error) {
	args := m.Called(ctx, c, masterTracking)
	return args.Get(0).([]ports.TrackingUpdate), args.Error(1)
}

type MockTrackingSweepUoW struct {
	mock.Mock
}

func (m *MockTrackingSweepUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingSweepUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingSweepUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingSweepUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockTrackingSweepUoW) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}

func (m *MockTrackingSweepUoW) ReturnRepository() ports.ReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRepository)
}

type MockTrackingSweepUoWFactory struct {
	mock.Mock
}

func (m *MockTrackingSweepUoWFactory) Create() commands.TrackingSweepUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingSweepUoW)
}

func sweepTestCarrier(t *testing.T, tenantID kernel.TenantID) *carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier(
		kernel.NewUUID(), tenantID, "ACME", "Acme Express",
		carrier.Capabilities{Tracking: true, Labels: true, Returns: true},
		carrier.ServiceLimits{MaxWeightKg: 30},
		carrier.DeliveryDays{Min: 1, Max: 3},
	)
	require.NoError(t, err)
	return c
}

func movingStatuses(ctx context.Context) []any {
	return []any{ctx,
		shipment.LabelCreated, shipment.PickedUp, shipment.InTransit,
		shipment.OutForDelivery, shipment.FailedAttempt, shipment.Exception}
}

func TestSyncTrackingCommandHandler_Handle_AppliesNewScans(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)
	require.NoError(t, aggregate.GenerateLabel("ACME-1", []string{"ACME-1-P1"}, "https://labels.test/1.pdf"))
	feedCarrier := sweepTestCarrier(t, tenantID)

	updates := []ports.TrackingUpdate{
		{Status: shipment.PickedUp, Description: "Picked up", Location: "Lille", OccurredAt: time.Now().UTC().Add(time.Hour)},
		{Status: shipment.InTransit, Description: "Departed hub", Location: "Arras", OccurredAt: time.Now().UTC().Add(2 * time.Hour)},
	}

	mockShipmentRepo := new(MockShipmentRepository)
	mockCarrierRepo := new(MockCarrierRepository)
	mockReturnRepo := new(MockReturnRepository)
	mockGateway := new(MockCarrierGateway)
	mockUoW := new(MockTrackingSweepUoW)
	mockFactory := new(MockTrackingSweepUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CarrierRepository").Return(mockCarrierRepo).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockShipmentRepo.On("GetAllInStatus", movingStatuses(ctx)...).
			Return([]*shipment.Shipment{aggregate}, nil).Once(),
		mockCarrierRepo.On("Get", ctx, tenantID, aggregate.CarrierID()).Return(feedCarrier, nil).Once(),
		mockGateway.On("FetchTrackingUpdates", ctx, feedCarrier, "ACME-1").Return(updates, nil).Once(),
		mockShipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("ReturnRepository").Return(mockReturnRepo).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockReturnRepo.On("GetAllInStatus", ctx, rma.LabelSent).Return([]*rma.Return{}, nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockPublisher.On("PublishShipmentStatusChanged", ctx, aggregate).Return(nil).Once()

	handler := commands.NewSyncTrackingCommandHandler(mockFactory, mockGateway, mockPublisher)

	// Act
	err := handler.Handle(ctx, commands.NewSyncTrackingCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shipment.InTransit, aggregate.Status())
	assert.Len(t, aggregate.Events(), 3, "label event plus two applied scans")
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockShipmentRepo.AssertExpectations(t)
	mockCarrierRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestSyncTrackingCommandHandler_Handle_AdvancesLabelSentReturn(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	origin := testShipment(t, tenantID)
	feedCarrier := sweepTestCarrier(t, tenantID)

	item, err := rma.NewItem("SKU-100", "Wool sweater", 1, "wrong size")
	require.NoError(t, err)
	returnID := kernel.NewUUID()
	waiting, err := rma.RestoreReturn(returnID, tenantID, rma.NumberFor(returnID),
		origin.ID(), nil, []rma.Item{item}, rma.LabelSent,
		"approved", "ACME-RET1", "https://labels.test/ret1.pdf", "", "", nil, "", "", nil, nil, 2)
	require.NoError(t, err)

	updates := []ports.TrackingUpdate{
		{Status: shipment.InTransit, Description: "Accepted at drop-off", Location: "Paris", OccurredAt: time.Now().UTC()},
	}

	mockShipmentRepo := new(MockShipmentRepository)
	mockCarrierRepo := new(MockCarrierRepository)
	mockReturnRepo := new(MockReturnRepository)
	mockGateway := new(MockCarrierGateway)
	mockUoW := new(MockTrackingSweepUoW)
	mockFactory := new(MockTrackingSweepUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CarrierRepository").Return(mockCarrierRepo).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockShipmentRepo.On("GetAllInStatus", movingStatuses(ctx)...).
			Return([]*shipment.Shipment{}, nil).Once(),
		mockUoW.On("ReturnRepository").Return(mockReturnRepo).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockReturnRepo.On("GetAllInStatus", ctx, rma.LabelSent).Return([]*rma.Return{waiting}, nil).Once(),
		mockShipmentRepo.On("Get", ctx, tenantID, origin.ID()).Return(origin, nil).Once(),
		mockCarrierRepo.On("Get", ctx, tenantID, origin.CarrierID()).Return(feedCarrier, nil).Once(),
		mockGateway.On("FetchTrackingUpdates", ctx, feedCarrier, "ACME-RET1").Return(updates, nil).Once(),
		mockReturnRepo.On("Update", ctx, waiting).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockPublisher.On("PublishReturnStatusChanged", ctx, waiting).Return(nil).Once()

	handler := commands.NewSyncTrackingCommandHandler(mockFactory, mockGateway, mockPublisher)

	// Act
	err = handler.Handle(ctx, commands.NewSyncTrackingCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, rma.InTransit, waiting.Status())
	mockUoW.AssertExpectations(t)
	mockReturnRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestSyncTrackingCommandHandler_Handle_FeedFailureSkipsShipment(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)
	require.NoError(t, aggregate.GenerateLabel("ACME-2", []string{"ACME-2-P1"}, "https://labels.test/2.pdf"))
	feedCarrier := sweepTestCarrier(t, tenantID)

	mockShipmentRepo := new(MockShipmentRepository)
	mockCarrierRepo := new(MockCarrierRepository)
	mockReturnRepo := new(MockReturnRepository)
	mockGateway := new(MockCarrierGateway)
	mockUoW := new(MockTrackingSweepUoW)
	mockFactory := new(MockTrackingSweepUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CarrierRepository").Return(mockCarrierRepo).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockShipmentRepo.On("GetAllInStatus", movingStatuses(ctx)...).
			Return([]*shipment.Shipment{aggregate}, nil).Once(),
		mockCarrierRepo.On("Get", ctx, tenantID, aggregate.CarrierID()).Return(feedCarrier, nil).Once(),
		mockGateway.On("FetchTrackingUpdates", ctx, feedCarrier, "ACME-2").
			Return([]ports.TrackingUpdate(nil), errors.New("feed timeout")).Once(),
		mockUoW.On("ReturnRepository").Return(mockReturnRepo).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockReturnRepo.On("GetAllInStatus", ctx, rma.LabelSent).Return([]*rma.Return{}, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewSyncTrackingCommandHandler(mockFactory, mockGateway, nil)

	// Act
	err := handler.Handle(ctx, commands.NewSyncTrackingCommand())

	// Assert
	require.NoError(t, err, "a failing feed is skipped, not fatal")
	assert.Equal(t, shipment.LabelCreated, aggregate.Status())
	mockUoW.AssertNotCalled(t, "Commit", ctx)
	mockShipmentRepo.AssertNotCalled(t, "Update", ctx, aggregate)
	mockUoW.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
}
