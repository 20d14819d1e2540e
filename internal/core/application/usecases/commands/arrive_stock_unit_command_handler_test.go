package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/pkg/errs"
)

func testUnitAttrs() stock.UnitAttrs {
	return stock.UnitAttrs{
		Condition:      "new",
		Supplier:       "Acme Distribution",
		PurchasePrice:  decimal.NewFromInt(800),
		WarrantyMonths: 12,
	}
}

type stockHandlerMocks struct {
	factory      *MockStockUoWFactory
	uow          *MockUoW
	stockRepo    *MockStockRepository
	movementRepo *MockMovementRepository
	auditRepo    *MockAuditRepository
}

func newStockHandlerMocks(t *testing.T) stockHandlerMocks {
	t.Helper()
	m := stockHandlerMocks{
		factory:      new(MockStockUoWFactory),
		uow:          new(MockUoW),
		stockRepo:    new(MockStockRepository),
		movementRepo: new(MockMovementRepository),
		auditRepo:    new(MockAuditRepository),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", mock.Anything).Return(nil).Once()
	m.uow.On("Rollback", mock.Anything).Return(nil).Once()
	m.uow.On("StockRepository").Return(m.stockRepo).Maybe()
	m.uow.On("MovementRepository").Return(m.movementRepo).Maybe()
	m.uow.On("AuditRepository").Return(m.auditRepo).Maybe()
	return m
}

func (m stockHandlerMocks) assertAll(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.stockRepo.AssertExpectations(t)
	m.movementRepo.AssertExpectations(t)
	m.auditRepo.AssertExpectations(t)
}

func Test_ArriveStockUnitCommandHandler_RegistersUnit(t *testing.T) {
	m := newStockHandlerMocks(t)
	actor := managerActor(t)

	m.stockRepo.On("GetBySerial", mock.Anything, int64(7), "SN-001").
		Return(nil, errs.NewObjectNotFoundError("stock unit", "SN-001")).Once()
	m.stockRepo.On("Add", mock.Anything, mock.MatchedBy(func(u *stock.Unit) bool {
		return u.ProductID() == 7 && u.Serial() == "SN-001"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*stock.Unit).SetID(11)
	}).Return(nil).Once()
	m.movementRepo.On("Append", mock.Anything, mock.MatchedBy(func(mv *stock.Movement) bool {
		return mv.Kind() == stock.MovementArrival && mv.Serial() == "SN-001"
	})).Return(nil).Once()
	m.auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Entity() == "stock_unit" && e.Action() == audit.ActionCreate && e.EntityID() == "11"
	})).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewArriveStockUnitCommand(7, "SN-001", testUnitAttrs(), actor)
	require.NoError(t, err)

	handler := commands.NewArriveStockUnitCommandHandler(m.factory)
	unit, err := handler.Handle(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(11), unit.ID())
	assert.Equal(t, stock.UnitAvailable, unit.Status())
	m.assertAll(t)
}

func Test_ArriveStockUnitCommandHandler_DuplicateSerial(t *testing.T) {
	m := newStockHandlerMocks(t)
	actor := managerActor(t)

	existing, err := stock.NewUnit(7, "SN-001", testUnitAttrs())
	require.NoError(t, err)
	m.stockRepo.On("GetBySerial", mock.Anything, int64(7), "SN-001").Return(existing, nil).Once()

	cmd, err := commands.NewArriveStockUnitCommand(7, "SN-001", testUnitAttrs(), actor)
	require.NoError(t, err)

	handler := commands.NewArriveStockUnitCommandHandler(m.factory)
	_, err = handler.Handle(context.Background(), cmd)

	assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.assertAll(t)
}

func Test_ArriveStockUnitCommandHandler_CourierIsRejected(t *testing.T) {
	factory := new(MockStockUoWFactory)

	cmd, err := commands.NewArriveStockUnitCommand(7, "SN-001", testUnitAttrs(), courierActor(t))
	require.NoError(t, err)

	handler := commands.NewArriveStockUnitCommandHandler(factory)
	_, err = handler.Handle(context.Background(), cmd)

	assert.True(t, errors.Is(err, errs.ErrUnauthorized))
	factory.AssertNotCalled(t, "Create")
}

func Test_NewArriveStockUnitCommand_Validation(t *testing.T) {
	actor := managerActor(t)

	t.Run("requires serial", func(t *testing.T) {
		_, err := commands.NewArriveStockUnitCommand(7, "", testUnitAttrs(), actor)
		assert.Error(t, err)
	})

	t.Run("requires product id", func(t *testing.T) {
		_, err := commands.NewArriveStockUnitCommand(0, "SN-001", testUnitAttrs(), actor)
		assert.Error(t, err)
	})
}
