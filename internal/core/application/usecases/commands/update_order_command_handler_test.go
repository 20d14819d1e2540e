package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

func TestUpdateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := managerActor(t)
	stored := storedOrder(t, 42, order.StatusInProgress, nil, nil)

	orderRepo := new(MockOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AuditRepository").Return(auditRepo).Once()
	orderRepo.On("Get", mock.Anything, int64(42)).Return(stored, nil).Once()
	orderRepo.On("Update", mock.Anything, stored).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionUpdate
	})).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	details := validDetails(nil)
	details.Address = "99 Elm St"
	details.Items = []commands.ItemInput{
		{ProductID: 7, Quantity: 2, Price: decimal.NewFromInt(450), Discount: decimal.NewFromInt(50)},
	}

	cmd, err := commands.NewUpdateOrderCommand(42, details, actor)
	require.NoError(t, err)

	h := commands.NewUpdateOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "99 Elm St", updated.Address())
	// 2*450 - 50 + 10 delivery
	assert.True(t, updated.Total().Equal(decimal.NewFromInt(860)))
	orderRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_TerminalOrderConflicts(t *testing.T) {
	ctx := t.Context()
	actor := managerActor(t)
	stored := storedOrder(t, 42, order.StatusCompleted, nil, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(stored, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewUpdateOrderCommand(42, validDetails(nil), actor)
	require.NoError(t, err)

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
