package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderQueriesIntegrationTestSuite verifies the raw-SQL read side, including
// the courier visibility rules, against a real PostgreSQL instance.
type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	writer    *orderrepo.GormOrderRepository
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
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

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders RESTART IDENTITY").Error)
	suite.writer = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_ManagerSeesAll() {
	suite.seedOrder("ORD-001", order.StatusNew, nil, nil)
	suite.seedOrder("ORD-002", order.StatusConfirmed, nil, timePtr(today()))

	handler := queries.NewGetOrdersQueryHandler(suite.db)
	query, err := queries.NewGetOrdersQuery(suite.manager())
	suite.Require().NoError(err)

	responses, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal("ORD-001", responses[0].Number)
	suite.Equal("ORD-002", responses[1].Number)
	suite.Equal("new", responses[0].Status)
	suite.Require().Len(responses[0].Items, 1)
	suite.Equal(int64(7), responses[0].Items[0].ProductID)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_CourierSeesOnlyAssignedTodayOrTomorrow() {
	courierID := kernel.NewUUID()
	otherCourier := kernel.NewUUID()

	visible := suite.seedOrder("ORD-100", order.StatusConfirmed, &courierID, timePtr(today()))
	suite.seedOrder("ORD-101", order.StatusConfirmed, &otherCourier, timePtr(today()))
	suite.seedOrder("ORD-102", order.StatusConfirmed, &courierID, timePtr(today().AddDate(0, 0, 3)))
	suite.seedOrder("ORD-103", order.StatusNew, nil, timePtr(today()))

	handler := queries.NewGetOrdersQueryHandler(suite.db)
	query, err := queries.NewGetOrdersQuery(suite.courier(courierID))
	suite.Require().NoError(err)

	responses, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 1)
	suite.Equal(visible.ID(), responses[0].ID)
	suite.Equal("ORD-100", responses[0].Number)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_ReturnsFullProjection() {
	seeded := suite.seedOrder("ORD-200", order.StatusConfirmed, nil, timePtr(today()))

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(seeded.ID(), suite.manager())
	suite.Require().NoError(err)

	response, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(seeded.ID(), response.ID)
	suite.Equal("ORD-200", response.Number)
	suite.Equal("confirmed", response.Status)
	suite.Equal("Anna Miller", response.CustomerName)
	suite.Require().NotNil(response.DeliveryDate)
	suite.Equal(today().Format("2006-01-02"), *response.DeliveryDate)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_InvisibleToCourier_ReadsAsMissing() {
	courierID := kernel.NewUUID()
	seeded := suite.seedOrder("ORD-300", order.StatusConfirmed, nil, timePtr(today()))

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(seeded.ID(), suite.courier(courierID))
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrObjectNotFound))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_Unknown_ReturnsNotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(9999, suite.manager())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrObjectNotFound))
}

func (suite *OrderQueriesIntegrationTestSuite) manager() kernel.Actor {
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager)
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesIntegrationTestSuite) courier(id kernel.UUID) kernel.Actor {
	actor, err := kernel.NewActor(id, kernel.RoleCourier)
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesIntegrationTestSuite) seedOrder(
	number string, status order.Status, courierID *kernel.UUID, deliveryDate *time.Time,
) *order.Order {
	item, err := order.NewItem(7, 1, decimal.NewFromInt(1000), decimal.Zero, nil, false)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		number, "Anna Miller", "+15550100", "12 Main St",
		deliveryDate, nil, decimal.NewFromInt(10), "card", []order.Item{item})
	suite.Require().NoError(err)

	if status != order.StatusNew {
		suite.Require().NoError(aggregate.TransitionTo(status))
	}
	if courierID != nil {
		_, err = aggregate.AssignCourier(*courierID)
		suite.Require().NoError(err)
	}

	suite.Require().NoError(suite.writer.Add(context.Background(), aggregate))
	return aggregate
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
