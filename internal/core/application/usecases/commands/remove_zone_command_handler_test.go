package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTariffRepository struct {
	mock.Mock
}

func (m *MockTariffRepository) Add(ctx context.Context, aggregate *tariff.Tariff) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTariffRepository) Update(ctx context.Context, aggregate *tariff.Tariff) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTariffRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*tariff.Tariff, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(*tariff.Tariff), args.Error(1)
}

func (m *MockTariffRepository) GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*tariff.Tariff, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Get(0).(*tariff.Tariff), args.Error(1)
}

func (m *MockTariffRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*tariff.Tariff, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*tariff.Tariff), args.Error(1)
}

func (m *MockTariffRepository) GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*tariff.Tariff, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*tariff.Tariff), args.Error(1)
}

func (m *MockTariffRepository) GetAllExpired(ctx context.Context, asOf time.Time) ([]*tariff.Tariff, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]*tariff.Tariff), args.Error(1)
}

func (m *MockTariffRepository) CountByZone(ctx context.Context, tenantID kernel.TenantID, zoneID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, zoneID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTariffRepository) CountByCarrier(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, carrierID)
	return args.Get(0).(int64), args.Error(1)
}

type MockZoneTariffUoW struct {
	mock.Mock
}

func (m *MockZoneTariffUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneTariffUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneTariffUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneTariffUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

func (m *MockZoneTariffUoW) TariffRepository() ports.TariffRepository {
	args := m.Called()
	return args.Get(0).(ports.TariffRepository)
}

type MockZoneTariffUoWFactory struct {
	mock.Mock
}

func (m *MockZoneTariffUoWFactory) Create() commands.ZoneTariffUoW {
	args := m.Called()
	return args.Get(0).(commands.ZoneTariffUoW)
}

func TestRemoveZoneCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	zoneID := kernel.NewUUID()
	tenantID := kernel.NewTenantID()

	aggregate, err := zone.NewZone(zoneID, tenantID,
		"fr-corse", "Corse", []string{"FR"}, []string{"20*"}, nil, 5)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveZoneCommand(zoneID, tenantID)
	require.NoError(t, err)

	mockZoneRepo := new(MockZoneRepository)
	mockTariffRepo := new(MockTariffRepository)
	mockUoW := new(MockZoneTariffUoW)
	mockFactory := new(MockZoneTariffUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ZoneRepository").Return(mockZoneRepo).Once(),
		mockUoW.On("TariffRepository").Return(mockTariffRepo).Once(),
		mockZoneRepo.On("Get", ctx, tenantID, zoneID).Return(aggregate, nil).Once(),
		mockTariffRepo.On("CountByZone", ctx, tenantID, zoneID).Return(int64(0), nil).Once(),
		mockZoneRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewRemoveZoneCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.False(t, aggregate.IsActive(), "zone should be deactivated, not deleted")
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockZoneRepo.AssertExpectations(t)
	mockTariffRepo.AssertExpectations(t)
}

func TestRemoveZoneCommandHandler_Handle_ZoneInUse(t *testing.T) {
	// Arrange
	ctx := t.Context()
	zoneID := kernel.NewUUID()
	tenantID := kernel.NewTenantID()

	aggregate, err := zone.NewZone(zoneID, tenantID,
		"fr-corse", "Corse", []string{"FR"}, []string{"20*"}, nil, 5)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveZoneCommand(zoneID, tenantID)
	require.NoError(t, err)

	mockZoneRepo := new(MockZoneRepository)
	mockTariffRepo := new(MockTariffRepository)
	mockUoW := new(MockZoneTariffUoW)
	mockFactory := new(MockZoneTariffUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ZoneRepository").Return(mockZoneRepo).Once(),
		mockUoW.On("TariffRepository").Return(mockTariffRepo).Once(),
		mockZoneRepo.On("Get", ctx, tenantID, zoneID).Return(aggregate, nil).Once(),
		mockTariffRepo.On("CountByZone", ctx, tenantID, zoneID).Return(int64(3), nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewRemoveZoneCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectInUse)
	assert.True(t, aggregate.IsActive(), "zone should stay active when removal is refused")
	mockUoW.AssertExpectations(t)
	mockZoneRepo.AssertExpectations(t)
	mockTariffRepo.AssertExpectations(t)
}
