package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/offline"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, unit *stock.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockStockRepository) Get(ctx context.Context, id int64) (*stock.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Unit), args.Error(1)
}

func (m *MockStockRepository) GetBySerial(ctx context.Context, productID int64, serial string) (*stock.Unit, error) {
	args := m.Called(ctx, productID, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Unit), args.Error(1)
}

func (m *MockStockRepository) TryReserve(ctx context.Context, productID int64, serial string, orderID int64) (bool, error) {
	args := m.Called(ctx, productID, serial, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepository) TryRelease(ctx context.Context, productID int64, serial string, orderID int64) (bool, error) {
	args := m.Called(ctx, productID, serial, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepository) TryWriteOff(ctx context.Context, productID int64, serial string) (bool, error) {
	args := m.Called(ctx, productID, serial)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMovementRepository struct{ mock.Mock }

func (m *MockMovementRepository) Append(ctx context.Context, movement *stock.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavor the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

func (m *MockUoW) MovementRepository() ports.MovementRepository {
	args := m.Called()
	return args.Get(0).(ports.MovementRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockActionQueue struct{ mock.Mock }

func (m *MockActionQueue) Enqueue(ctx context.Context, action offline.PendingAction) (uint64, error) {
	args := m.Called(ctx, action)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockActionQueue) ListPending(ctx context.Context) ([]offline.PendingAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offline.PendingAction), args.Error(1)
}

func (m *MockActionQueue) MarkSynced(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeliveryConfirmer struct{ mock.Mock }

func (m *MockDeliveryConfirmer) Handle(ctx context.Context, cmd commands.ConfirmDeliveryCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func managerActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager)
	require.NoError(t, err)
	return actor
}

func courierActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCourier)
	require.NoError(t, err)
	return actor
}

func validDetails(serial *string) commands.OrderDetails {
	return commands.OrderDetails{
		Number:        "ORD-001",
		CustomerName:  "Anna Keller",
		CustomerPhone: "+15550100",
		Address:       "12 Pine St",
		DeliveryCost:  decimal.NewFromInt(10),
		PaymentMethod: "card",
		Items: []commands.ItemInput{
			{ProductID: 7, Quantity: 1, Price: decimal.NewFromInt(1000), Discount: decimal.Zero, Serial: serial},
		},
	}
}

// storedOrder builds a persisted order fixture in the given status.
func storedOrder(t *testing.T, id int64, status order.Status, courierID *kernel.UUID, serial *string) *order.Order {
	t.Helper()

	item, err := order.NewItem(7, 1, decimal.NewFromInt(1000), decimal.Zero, serial, false)
	require.NoError(t, err)

	deliveryStatus := order.DeliveryUnknown
	if courierID != nil {
		deliveryStatus = order.DeliveryAssigned
	}

	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		id, "ORD-001", status,
		"Anna Keller", "+15550100", "12 Pine St",
		nil, nil, decimal.NewFromInt(10),
		courierID, "card", false,
		deliveryStatus, "", "", nil, nil,
		[]order.Item{item}, now, now,
	)
	require.NoError(t, err)
	return o
}

func strPtr(s string) *string { return &s }
