package orderrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/stretchr/testify/suite"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders RESTART IDENTITY").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIDs() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-100")

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Positive(testOrder.ID())
	for _, item := range testOrder.Items() {
		suite.Positive(item.ID())
	}
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_Fails() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-100")))

	err := suite.repository.Add(ctx, suite.createTestOrder("ORD-100"))
	suite.Require().Error(err)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAggregate() {
	ctx := context.Background()

	original := suite.createTestOrder("ORD-200")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("ORD-200", retrieved.Number())
	suite.Equal(order.StatusNew, retrieved.Status())
	suite.Equal("Anna Miller", retrieved.CustomerName())
	suite.Equal("12 Main St", retrieved.Address())
	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal(int64(7), retrieved.Items()[0].ProductID())
	suite.True(original.Total().Equal(retrieved.Total()))
	suite.Equal(order.DeliveryUnknown, retrieved.DeliveryStatus())
	suite.Nil(retrieved.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	retrieved, err := suite.repository.Get(context.Background(), 12345)

	suite.Nil(retrieved)
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrObjectNotFound))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndCourier() {
	ctx := context.Background()

	aggregate := suite.createTestOrder("ORD-300")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	courierID := kernel.NewUUID()
	suite.Require().NoError(aggregate.TransitionTo(order.StatusConfirmed))
	changed, err := aggregate.AssignCourier(courierID)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.Equal(courierID, *retrieved.Courier())
	suite.Equal(order.DeliveryAssigned, retrieved.DeliveryStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesItems() {
	ctx := context.Background()

	aggregate := suite.createTestOrder("ORD-400")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	item, err := order.NewItem(99, 1, decimal.NewFromInt(500), decimal.Zero, nil, false)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.UpdateDetails(
		aggregate.CustomerName(),
		aggregate.CustomerPhone(),
		"35 New Rd",
		aggregate.DeliveryDate(),
		aggregate.DeliverySlot(),
		aggregate.DeliveryCost(),
		aggregate.PaymentMethod(),
		[]order.Item{item},
	))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal("35 New Rd", retrieved.Address())
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(int64(99), retrieved.Items()[0].ProductID())

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(1), itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	aggregate := suite.createTestOrder("ORD-500")
	aggregate.SetID(99999)

	err := suite.repository.Update(context.Background(), aggregate)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrObjectNotFound))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndItems() {
	ctx := context.Background()

	aggregate := suite.createTestOrder("ORD-600")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Delete(ctx, aggregate.ID()))

	suite.assertOrderCount(0)
	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Zero(itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_NonExistent_ReturnsNotFound() {
	err := suite.repository.Delete(context.Background(), 4242)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrObjectNotFound))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_DeliveredOrderKeepsProof() {
	ctx := context.Background()

	aggregate := suite.createTestOrder("ORD-700")
	courierID := kernel.NewUUID()
	suite.Require().NoError(aggregate.TransitionTo(order.StatusConfirmed))
	_, err := aggregate.AssignCourier(courierID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	point, err := kernel.NewGeoPoint(55.75, 37.61)
	suite.Require().NoError(err)
	now := time.Now().UTC()
	suite.Require().NoError(aggregate.AdvanceDelivery(courierID, order.DeliveryEnRoute, nil, now))
	suite.Require().NoError(aggregate.AdvanceDelivery(courierID, order.DeliveryDelivered, &order.DeliveryProof{
		RecipientName: "Anna Miller",
		PhotoURL:      "https://proof.example/700.jpg",
		Location:      &point,
	}, now))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.DeliveryDelivered, retrieved.DeliveryStatus())
	suite.Equal("Anna Miller", retrieved.RecipientName())
	suite.Equal("https://proof.example/700.jpg", retrieved.ProofPhotoURL())
	suite.NotNil(retrieved.DeliveredAt())
	suite.Require().NotNil(retrieved.DeliveredLocation())
	suite.InDelta(55.75, retrieved.DeliveredLocation().Lat(), 1e-9)
	suite.InDelta(37.61, retrieved.DeliveredLocation().Lng(), 1e-9)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	serial := "SN-" + number
	item1, err := order.NewItem(7, 1, decimal.NewFromInt(1000), decimal.Zero, &serial, false)
	suite.Require().NoError(err)
	item2, err := order.NewItem(8, 2, decimal.NewFromInt(150), decimal.NewFromInt(20), nil, true)
	suite.Require().NoError(err)

	deliveryDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	slot := "10:00-14:00"

	aggregate, err := order.NewOrder(
		number,
		"Anna Miller",
		"+15550100",
		"12 Main St",
		&deliveryDate,
		&slot,
		decimal.NewFromInt(10),
		"card",
		[]order.Item{item1, item2},
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
