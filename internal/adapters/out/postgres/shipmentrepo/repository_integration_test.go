package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite provides integration tests for
// ShipmentRepository using PostgreSQL containers to verify persistence of the
// aggregate, its packages and the append-only tracking event log.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container          *postgres.PostgresContainer
	db                 *gorm.DB
	shipmentRepository *shipmentrepo.GormShipmentRepository
	tracker            *MockAggregateTracker
	tenantID           kernel.TenantID
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.PackageDTO{},
		&shipmentrepo.TrackingEventDTO{},
	))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tracking_events, packages, shipments").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.shipmentRepository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
	suite.tenantID = kernel.NewTenantID()
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_ValidShipment_Success() {
	ctx := context.Background()

	// Create valid shipment with two packages
	testShipment := suite.createTestShipment()

	// Set expectations on mock
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()

	// Add shipment to repository
	err := suite.shipmentRepository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	// Verify shipment, packages and the creation event were persisted
	suite.assertShipmentCount(1)
	suite.assertPackageCount(len(testShipment.Packages()))
	suite.assertEventCount(len(testShipment.Events()))

	// Assert that all expectations were met
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_ExistingShipment_ReturnsShipmentWithPackagesAndEvents() {
	ctx := context.Background()

	// Create and add shipment
	original := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	err := suite.shipmentRepository.Add(ctx, original)
	suite.Require().NoError(err)

	// Retrieve shipment
	retrieved, err := suite.shipmentRepository.Get(ctx, suite.tenantID, original.ID())
	suite.Require().NoError(err)

	// Verify shipment details
	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Number(), retrieved.Number())
	suite.Equal(original.CarrierID(), retrieved.CarrierID())
	suite.Equal(original.Status(), retrieved.Status())
	suite.Equal(original.Destination().City(), retrieved.Destination().City())
	suite.True(original.Costs().Total.IsEqual(retrieved.Costs().Total))

	// Verify packages were loaded with derived weights recomputed
	suite.Require().Len(retrieved.Packages(), len(original.Packages()))
	for i, originalPkg := range original.Packages() {
		retrievedPkg := retrieved.Packages()[i]
		suite.Equal(originalPkg.ID(), retrievedPkg.ID())
		suite.InDelta(originalPkg.ActualWeight().Kg(), retrievedPkg.ActualWeight().Kg(), 0.001)
		suite.InDelta(originalPkg.BillableWeight().Kg(), retrievedPkg.BillableWeight().Kg(), 0.001)
	}

	// Verify the creation event was loaded
	suite.Require().Len(retrieved.Events(), 1)
	suite.Equal(shipment.Pending, retrieved.Events()[0].Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	// Try to get non-existent shipment
	retrieved, err := suite.shipmentRepository.Get(ctx, suite.tenantID, kernel.NewUUID())

	// Verify error and result
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_DifferentTenant_ReturnsNotFoundError() {
	ctx := context.Background()

	// Create and add shipment under the suite tenant
	testShipment := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()
	err := suite.shipmentRepository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	// Another tenant must not see it
	retrieved, err := suite.shipmentRepository.Get(ctx, kernel.NewTenantID(), testShipment.ID())
	suite.Nil(retrieved)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_LabelGeneration_PersistsTrackingAndAppendsEvent() {
	ctx := context.Background()

	// Create and add shipment. Update tracks the reloaded instance, so the
	// aggregate argument is matched loosely.
	testShipment := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", testShipment.ID(), mock.Anything).Twice()
	err := suite.shipmentRepository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	// Reload so the version counter matches the persisted row
	loaded, err := suite.shipmentRepository.Get(ctx, suite.tenantID, testShipment.ID())
	suite.Require().NoError(err)

	// Generate label
	packageTracking := make([]string, 0, len(loaded.Packages()))
	for i := range loaded.Packages() {
		packageTracking = append(packageTracking, "UPX-1234567890-P"+string(rune('1'+i)))
	}
	err = loaded.GenerateLabel("UPX-1234567890", packageTracking, "https://labels.example.com/upx.pdf")
	suite.Require().NoError(err)

	err = suite.shipmentRepository.Update(ctx, loaded)
	suite.Require().NoError(err)

	// Retrieve and verify
	retrieved, err := suite.shipmentRepository.Get(ctx, suite.tenantID, loaded.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.LabelCreated, retrieved.Status())
	suite.Equal("UPX-1234567890", retrieved.MasterTracking())
	suite.Equal("https://labels.example.com/upx.pdf", retrieved.LabelURL())
	for i, p := range retrieved.Packages() {
		suite.Equal(packageTracking[i], p.TrackingNumber())
	}

	// The label event was appended, the creation event untouched
	suite.Require().Len(retrieved.Events(), 2)
	suite.Equal(shipment.Pending, retrieved.Events()[0].Status())
	suite.Equal(shipment.LabelCreated, retrieved.Events()[1].Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionConflict() {
	ctx := context.Background()

	// Create and add shipment
	testShipment := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", testShipment.ID(), mock.Anything).Twice()
	err := suite.shipmentRepository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	// Two readers load the same row
	first, err := suite.shipmentRepository.Get(ctx, suite.tenantID, testShipment.ID())
	suite.Require().NoError(err)
	second, err := suite.shipmentRepository.Get(ctx, suite.tenantID, testShipment.ID())
	suite.Require().NoError(err)

	// First writer wins
	suite.Require().NoError(first.Cancel("ordered twice"))
	suite.Require().NoError(suite.shipmentRepository.Update(ctx, first))

	// Second writer is stale
	suite.Require().NoError(second.Cancel("customer request"))
	err = suite.shipmentRepository.Update(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.VersionConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByNumber_And_ByTrackingNumber() {
	ctx := context.Background()

	// Create, add and label a shipment so it carries a master tracking number
	testShipment := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", testShipment.ID(), mock.Anything).Times(2)
	err := suite.shipmentRepository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	loaded, err := suite.shipmentRepository.Get(ctx, suite.tenantID, testShipment.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.GenerateLabel("UPX-0000000001",
		[]string{"UPX-0000000001-P1", "UPX-0000000001-P2"}, "https://labels.example.com/1.pdf"))
	suite.Require().NoError(suite.shipmentRepository.Update(ctx, loaded))

	// By number
	byNumber, err := suite.shipmentRepository.GetByNumber(ctx, suite.tenantID, testShipment.Number())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), byNumber.ID())

	// By master tracking
	byTracking, err := suite.shipmentRepository.GetByTrackingNumber(ctx, suite.tenantID, "UPX-0000000001")
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), byTracking.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersByStatusSet() {
	ctx := context.Background()

	// One pending, one labelled shipment
	pending := suite.createTestShipment()
	labelled := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.shipmentRepository.Add(ctx, pending))
	suite.Require().NoError(suite.shipmentRepository.Add(ctx, labelled))

	loaded, err := suite.shipmentRepository.Get(ctx, suite.tenantID, labelled.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.GenerateLabel("UPX-0000000002",
		[]string{"UPX-0000000002-P1", "UPX-0000000002-P2"}, "https://labels.example.com/2.pdf"))
	suite.Require().NoError(suite.shipmentRepository.Update(ctx, loaded))

	// Only the labelled one is in the moving set
	moving, err := suite.shipmentRepository.GetAllInStatus(ctx,
		shipment.LabelCreated, shipment.PickedUp, shipment.InTransit)
	suite.Require().NoError(err)
	suite.Require().Len(moving, 1)
	suite.Equal(labelled.ID(), moving[0].ID())

	// Both show up when Pending is included
	all, err := suite.shipmentRepository.GetAllInStatus(ctx,
		shipment.Pending, shipment.LabelCreated)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestCountByCarrier() {
	ctx := context.Background()

	testShipment := suite.createTestShipment()
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()
	suite.Require().NoError(suite.shipmentRepository.Add(ctx, testShipment))

	count, err := suite.shipmentRepository.CountByCarrier(ctx, suite.tenantID, testShipment.CarrierID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	none, err := suite.shipmentRepository.CountByCarrier(ctx, suite.tenantID, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(none)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestShipment builds a pending two-package shipment for the suite
// tenant with a frozen EUR cost breakdown.
func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipment() *shipment.Shipment {
	origin, err := shipment.NewAddress("Warehouse Nord", "12 Rue de la Gare",
		"Lille", "59000", "FR", false)
	suite.Require().NoError(err)
	destination, err := shipment.NewAddress("Claire Fontaine", "8 Avenue Victor Hugo",
		"Paris", "75016", "FR", true)
	suite.Require().NoError(err)

	packages := []*shipment.Package{
		suite.createTestPackage(20, 15, 10, 1.5, "25.00", "books"),
		suite.createTestPackage(30, 20, 12, 2.2, "60.00", "ceramics"),
	}

	costs := shipment.CostBreakdown{
		Base:      suite.eur("6.95"),
		Insurance: suite.eur("0.80"),
		Surcharge: suite.eur("0.35"),
		Total:     suite.eur("8.10"),
	}

	estimate := time.Now().UTC().AddDate(0, 0, 3)
	s, err := shipment.NewShipment(kernel.NewUUID(), suite.tenantID,
		kernel.NewUUID(), kernel.NewUUID(), nil, origin, destination, "",
		packages, costs, &estimate)
	suite.Require().NoError(err)

	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createTestPackage(
	length, width, height, weightKg float64, declared, contents string,
) *shipment.Package {
	dims, err := kernel.NewDimensions(length, width, height)
	suite.Require().NoError(err)
	weight, err := kernel.NewWeight(weightKg)
	suite.Require().NoError(err)

	pkg, err := shipment.NewPackage(kernel.NewUUID(), dims, weight,
		suite.eur(declared), contents, kernel.DefaultVolumetricDivisor)
	suite.Require().NoError(err)

	return pkg
}

func (suite *ShipmentRepositoryIntegrationTestSuite) eur(amount string) kernel.Money {
	currency, err := kernel.NewCurrency("EUR")
	suite.Require().NoError(err)
	money, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	suite.Require().NoError(err)
	return money
}

// assertShipmentCount verifies the number of shipments in the database.
func (suite *ShipmentRepositoryIntegrationTestSuite) assertShipmentCount(expected int) {
	var count int64
	err := suite.db.Model(&shipmentrepo.ShipmentDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertPackageCount verifies the number of packages in the database.
func (suite *ShipmentRepositoryIntegrationTestSuite) assertPackageCount(expected int) {
	var count int64
	err := suite.db.Model(&shipmentrepo.PackageDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertEventCount verifies the number of tracking events in the database.
func (suite *ShipmentRepositoryIntegrationTestSuite) assertEventCount(expected int) {
	var count int64
	err := suite.db.Model(&shipmentrepo.TrackingEventDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
