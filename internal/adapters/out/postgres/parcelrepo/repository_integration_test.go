package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/postgres/parcelrepo"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"

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

// ParcelRepositoryIntegrationTestSuite provides integration tests for
// ParcelRepository using PostgreSQL containers to verify persistence behavior.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container         *postgres.PostgresContainer
	db                *gorm.DB
	parcelRepository  *parcelrepo.GormParcelRepository
	historyRepository *parcelrepo.GormStatusHistoryRepository
	tracker           *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusHistoryDTO{},
	))
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_histories").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.parcelRepository = parcelrepo.NewGormParcelRepository(suite.db, suite.tracker)
	suite.historyRepository = parcelrepo.NewGormStatusHistoryRepository(suite.db)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_ValidParcel_Success() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.parcelRepository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.parcelRepository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(loaded))
	suite.Equal(aggregate.TrackingCode(), loaded.TrackingCode())
	suite.Equal(parcel.StatusBooked, loaded.Status())
	suite.Equal(aggregate.CODAmount(), loaded.CODAmount())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingCode_Fails() {
	ctx := context.Background()
	first := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.parcelRepository.Add(ctx, first))

	second, err := parcel.NewParcel(
		kernel.NewUUID(), first.TrackingCode(), kernel.NewUUID(),
		suite.bookingDetails(), time.Now().UTC(),
	)
	suite.Require().NoError(err)

	suite.Require().Error(suite.parcelRepository.Add(ctx, second))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	_, err := suite.parcelRepository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingCode() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.parcelRepository.Add(ctx, aggregate))

	loaded, err := suite.parcelRepository.GetByTrackingCode(ctx, aggregate.TrackingCode())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(loaded))

	unknown, err := parcel.TrackingCodeFromString("PKL-FFFFFFFF")
	suite.Require().NoError(err)

	_, err = suite.parcelRepository.GetByTrackingCode(ctx, unknown)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.parcelRepository.Add(ctx, aggregate))

	agentID := kernel.NewUUID()
	suite.Require().NoError(aggregate.AssignAgent(agentID, time.Now().UTC()))
	suite.Require().NoError(suite.parcelRepository.Update(ctx, aggregate))

	loaded, err := suite.parcelRepository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusAssigned, loaded.Status())
	suite.Require().NotNil(loaded.AssignedAgentID())
	suite.True(agentID.IsEqual(*loaded.AssignedAgentID()))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateIfStatus_MatchingStatus_Succeeds() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.parcelRepository.Add(ctx, aggregate))

	previous := aggregate.Status()
	suite.Require().NoError(aggregate.AssignAgent(kernel.NewUUID(), time.Now().UTC()))

	err := suite.parcelRepository.UpdateIfStatus(ctx, aggregate, previous)
	suite.Require().NoError(err)

	loaded, err := suite.parcelRepository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusAssigned, loaded.Status())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateIfStatus_StaleStatus_Conflicts() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.parcelRepository.Add(ctx, aggregate))

	// First writer wins the transition out of BOOKED.
	winner, err := suite.parcelRepository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.AssignAgent(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.parcelRepository.UpdateIfStatus(ctx, winner, parcel.StatusBooked))

	// Second writer still thinks the parcel is BOOKED.
	suite.Require().NoError(aggregate.TransitionTo(parcel.StatusCancelled, "changed my mind", time.Now().UTC()))

	err = suite.parcelRepository.UpdateIfStatus(ctx, aggregate, parcel.StatusBooked)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrStatusConflict)

	// Stored state still reflects the winner.
	loaded, err := suite.parcelRepository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusAssigned, loaded.Status())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestSoftDeletedParcelIsInvisible() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.parcelRepository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.MarkDeleted(time.Now().UTC()))
	suite.Require().NoError(suite.parcelRepository.Update(ctx, aggregate))

	_, err := suite.parcelRepository.Get(ctx, aggregate.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.parcelRepository.GetByTrackingCode(ctx, aggregate.TrackingCode())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestStatusHistoryAppend() {
	ctx := context.Background()
	aggregate := suite.createTestParcel()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.parcelRepository.Add(ctx, aggregate))

	record, err := parcel.NewStatusHistoryRecord(
		kernel.NewUUID(), aggregate.ID(), parcel.StatusBooked, "",
		aggregate.CustomerID(), time.Now().UTC(),
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.historyRepository.Add(ctx, record))

	var count int64
	suite.Require().NoError(suite.db.Model(&parcelrepo.StatusHistoryDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *ParcelRepositoryIntegrationTestSuite) bookingDetails() parcel.BookingDetails {
	return parcel.BookingDetails{
		PickupAddress:   "12 Lake View Road, Dhanmondi, Dhaka",
		DeliveryAddress: "7 Station Road, Agrabad, Chattogram",
		ParcelType:      "DOCUMENT",
		ParcelSize:      "SMALL",
		Weight:          0.8,
		PaymentType:     parcel.PaymentCOD,
		CODAmount:       350,
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) createTestParcel() *parcel.Parcel {
	code, err := parcel.NewTrackingCode()
	suite.Require().NoError(err)

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(), code, kernel.NewUUID(),
		suite.bookingDetails(), time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return aggregate
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
