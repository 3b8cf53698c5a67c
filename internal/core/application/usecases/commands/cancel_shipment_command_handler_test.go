package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared fixtures for the shipment and return handler tests.
func eur(t *testing.T, amount string) kernel.Money {
	t.Helper()
	cur, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), cur)
	require.NoError(t, err)
	return m
}

func testShipment(t *testing.T, tenantID kernel.TenantID) *shipment.Shipment {
	t.Helper()

	origin, err := shipment.NewAddress("Warehouse", "1 rue du Dépôt", "Lille", "59000", "FR", false)
	require.NoError(t, err)
	destination, err := shipment.NewAddress("Jean Martin", "12 rue de la Paix", "Paris", "75002", "FR", true)
	require.NoError(t, err)

	dims, err := kernel.NewDimensions(20, 15, 10)
	require.NoError(t, err)
	w, err := kernel.NewWeight(1.5)
	require.NoError(t, err)
	pkg, err := shipment.NewPackage(kernel.NewUUID(), dims, w, eur(t, "80"), "books", kernel.DefaultVolumetricDivisor)
	require.NoError(t, err)

	costs := shipment.CostBreakdown{
		Base:      eur(t, "6.95"),
		Insurance: eur(t, "0.80"),
		Surcharge: eur(t, "0.35"),
		Total:     eur(t, "8.10"),
	}

	s, err := shipment.NewShipment(kernel.NewUUID(), tenantID,
		kernel.NewUUID(), kernel.NewUUID(), nil,
		origin, destination, "", []*shipment.Package{pkg}, costs, nil)
	require.NoError(t, err)
	return s
}

type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByNumber(ctx context.Context, tenantID kernel.TenantID, number string) (*shipment.Shipment, error) {
	args := m.Called(ctx, tenantID, number)
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(ctx context.Context, tenantID kernel.TenantID, trackingNumber string) (*shipment.Shipment, error) {
	args := m.Called(ctx, tenantID, trackingNumber)
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllInStatus(ctx context.Context, statuses ...shipment.Status) ([]*shipment.Shipment, error) {
	callArgs := []any{ctx}
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) CountByCarrier(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, carrierID)
	return args.Get(0).(int64), args.Error(1)
}

type MockShipmentUoW struct {
	mock.Mock
}

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct {
	mock.Mock
}

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishShipmentStatusChanged(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishReturnStatusChanged(ctx context.Context, aggregate *rma.Return) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func TestCancelShipmentCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)

	cmd, err := commands.NewCancelShipmentCommand(aggregate.ID(), tenantID, "customer changed their mind")
	require.NoError(t, err)

	mockRepo := new(MockShipmentRepository)
	mockUoW := new(MockShipmentUoW)
	mockFactory := new(MockShipmentUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, tenantID, aggregate.ID()).Return(aggregate, nil).Once(),
		mockRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockPublisher.On("PublishShipmentStatusChanged", ctx, aggregate).Return(nil).Once()

	handler := commands.NewCancelShipmentCommandHandler(mockFactory, mockPublisher)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shipment.Cancelled, aggregate.Status())
	assert.Equal(t, "customer changed their mind", aggregate.CancelReason())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_AfterPickup(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)

	require.NoError(t, aggregate.GenerateLabel("TRK-1", []string{"TRK-1-P1"}, "https://labels.test/1.pdf"))
	require.NoError(t, aggregate.PostTrackingEvent(shipment.PickedUp, "Picked up", "Lille", aggregate.Events()[0].OccurredAt()))

	cmd, err := commands.NewCancelShipmentCommand(aggregate.ID(), tenantID, "too late")
	require.NoError(t, err)

	mockRepo := new(MockShipmentRepository)
	mockUoW := new(MockShipmentUoW)
	mockFactory := new(MockShipmentUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, tenantID, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelShipmentCommandHandler(mockFactory, nil)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, shipment.ErrShipmentCannotBeCancelled)
	assert.Equal(t, shipment.PickedUp, aggregate.Status())
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_PublisherFailureDoesNotFailCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)

	cmd, err := commands.NewCancelShipmentCommand(aggregate.ID(), tenantID, "duplicate order")
	require.NoError(t, err)

	mockRepo := new(MockShipmentRepository)
	mockUoW := new(MockShipmentUoW)
	mockFactory := new(MockShipmentUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, tenantID, aggregate.ID()).Return(aggregate, nil).Once(),
		mockRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockPublisher.On("PublishShipmentStatusChanged", ctx, aggregate).
		Return(errors.New("broker down")).Once()

	handler := commands.NewCancelShipmentCommandHandler(mockFactory, mockPublisher)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err, "publishing is best effort after commit")
	mockPublisher.AssertExpectations(t)
}
