package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) Add(ctx context.Context, aggregate *zone.Zone) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockZoneRepository) Update(ctx context.Context, aggregate *zone.Zone) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockZoneRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*zone.Zone, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(*zone.Zone), args.Error(1)
}

func (m *MockZoneRepository) GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*zone.Zone, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Get(0).(*zone.Zone), args.Error(1)
}

func (m *MockZoneRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*zone.Zone, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*zone.Zone), args.Error(1)
}

func (m *MockZoneRepository) GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*zone.Zone, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*zone.Zone), args.Error(1)
}

type MockZoneUoW struct {
	mock.Mock
}

func (m *MockZoneUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockZoneUoWFactory struct {
	mock.Mock
}

func (m *MockZoneUoWFactory) Create() commands.ZoneUoW {
	args := m.Called()
	return args.Get(0).(commands.ZoneUoW)
}

func TestNewCreateZoneCommandHandler(t *testing.T) {
	// Arrange
	mockFactory := new(MockZoneUoWFactory)

	// Act
	handler := commands.NewCreateZoneCommandHandler(mockFactory)

	// Assert
	assert.NotNil(t, handler)
}

func TestCreateZoneCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	zoneID := kernel.NewUUID()
	tenantID := kernel.NewTenantID()

	cmd, err := commands.NewCreateZoneCommand(zoneID, tenantID,
		"fr-metro", "France métropolitaine",
		[]string{"FR"}, nil, []string{"97*", "98*"}, 10)
	require.NoError(t, err)

	mockRepo := new(MockZoneRepository)
	mockUoW := new(MockZoneUoW)
	mockFactory := new(MockZoneUoWFactory)

	// Set up expectations in order
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ZoneRepository").Return(mockRepo).Once(),
		mockRepo.On("GetByCode", ctx, tenantID, "fr-metro").
			Return((*zone.Zone)(nil), errs.NewObjectNotFoundError("code", "fr-metro")).Once(),
		mockRepo.On("Add", ctx, mock.AnythingOfType("*zone.Zone")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateZoneCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateZoneCommandHandler_Handle_DuplicateCode(t *testing.T) {
	// Arrange
	ctx := t.Context()
	tenantID := kernel.NewTenantID()

	existing, err := zone.NewZone(kernel.NewUUID(), tenantID,
		"fr-metro", "France métropolitaine", []string{"FR"}, nil, nil, 10)
	require.NoError(t, err)

	cmd, err := commands.NewCreateZoneCommand(kernel.NewUUID(), tenantID,
		"fr-metro", "Duplicate", []string{"FR"}, nil, nil, 20)
	require.NoError(t, err)

	mockRepo := new(MockZoneRepository)
	mockUoW := new(MockZoneUoW)
	mockFactory := new(MockZoneUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ZoneRepository").Return(mockRepo).Once(),
		mockRepo.On("GetByCode", ctx, tenantID, "fr-metro").Return(existing, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateZoneCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateZoneCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.CreateZoneCommand // zero value command

	mockFactory := new(MockZoneUoWFactory)
	handler := commands.NewCreateZoneCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateZoneCommandIsNotConstructed)
	mockFactory.AssertExpectations(t) // No calls should be made to factory
}

func TestCreateZoneCommandHandler_Handle_BeginTransactionError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateZoneCommand(kernel.NewUUID(), kernel.NewTenantID(),
		"eu-west", "Western Europe", []string{"FR", "BE"}, nil, nil, 10)
	require.NoError(t, err)

	expectedError := errors.New("begin transaction failed")
	mockUoW := new(MockZoneUoW)
	mockFactory := new(MockZoneUoWFactory)

	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(expectedError).Once(),
	)

	handler := commands.NewCreateZoneCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, expectedError)
	mockUoW.AssertExpectations(t)
}
