package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentCarrierUoW struct {
	mock.Mock
}

func (m *MockShipmentCarrierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentCarrierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentCarrierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentCarrierUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockShipmentCarrierUoW) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}

func (m *MockShipmentCarrierUoW) TariffRepository() ports.TariffRepository {
	args := m.Called()
	return args.Get(0).(ports.TariffRepository)
}

type MockShipmentCarrierUoWFactory struct {
	mock.Mock
}

func (m *MockShipmentCarrierUoWFactory) Create() commands.ShipmentCarrierUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentCarrierUoW)
}

func TestGenerateLabelCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)
	labelCarrier := sweepTestCarrier(t, tenantID)

	cmd, err := commands.NewGenerateLabelCommand(aggregate.ID(), tenantID)
	require.NoError(t, err)

	mockShipmentRepo := new(MockShipmentRepository)
	mockCarrierRepo := new(MockCarrierRepository)
	mockGateway := new(MockCarrierGateway)
	mockUoW := new(MockShipmentCarrierUoW)
	mockFactory := new(MockShipmentCarrierUoWFactory)

	result := ports.LabelResult{
		MasterTracking:  "ACME-0000000001",
		PackageTracking: []string{"ACME-0000000001-P1"},
		LabelURL:        "https://labels.test/1.pdf",
	}

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockShipmentRepo.On("Get", ctx, tenantID, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("CarrierRepository").Return(mockCarrierRepo).Once(),
		mockCarrierRepo.On("Get", ctx, tenantID, aggregate.CarrierID()).Return(labelCarrier, nil).Once(),
		mockGateway.On("IssueLabel", ctx, labelCarrier, aggregate).Return(result, nil).Once(),
		mockShipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewGenerateLabelCommandHandler(mockFactory, mockGateway)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shipment.LabelCreated, aggregate.Status())
	assert.Equal(t, "ACME-0000000001", aggregate.MasterTracking())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockShipmentRepo.AssertExpectations(t)
	mockCarrierRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
}

func TestGenerateLabelCommandHandler_Handle_RepeatCallNeverReachesGateway(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)
	require.NoError(t, aggregate.GenerateLabel("ACME-7", []string{"ACME-7-P1"}, "https://labels.test/7.pdf"))

	cmd, err := commands.NewGenerateLabelCommand(aggregate.ID(), tenantID)
	require.NoError(t, err)

	mockShipmentRepo := new(MockShipmentRepository)
	mockGateway := new(MockCarrierGateway)
	mockUoW := new(MockShipmentCarrierUoW)
	mockFactory := new(MockShipmentCarrierUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockShipmentRepo.On("Get", ctx, tenantID, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewGenerateLabelCommandHandler(mockFactory, mockGateway)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, shipment.ErrLabelAlreadyGenerated)
	assert.Equal(t, "ACME-7", aggregate.MasterTracking())
	mockGateway.AssertNotCalled(t, "IssueLabel", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
	mockUoW.AssertExpectations(t)
	mockShipmentRepo.AssertExpectations(t)
}

func TestGenerateLabelCommandHandler_Handle_CancelledShipmentNeverReachesGateway(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := testShipment(t, tenantID)
	require.NoError(t, aggregate.Cancel("duplicate order"))

	cmd, err := commands.NewGenerateLabelCommand(aggregate.ID(), tenantID)
	require.NoError(t, err)

	mockShipmentRepo := new(MockShipmentRepository)
	mockGateway := new(MockCarrierGateway)
	mockUoW := new(MockShipmentCarrierUoW)
	mockFactory := new(MockShipmentCarrierUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipmentRepo).Once(),
		mockShipmentRepo.On("Get", ctx, tenantID, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewGenerateLabelCommandHandler(mockFactory, mockGateway)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	mockGateway.AssertNotCalled(t, "IssueLabel", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
	mockUoW.AssertExpectations(t)
}
