package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certify/internal/core/application/usecases/commands"
	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

func TestMarkOrderPaidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	pending := newPendingOrder(t, id)
	cmd, err := commands.NewMarkOrderPaidCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(pending, nil).Once(),
		repo.On("Update", mock.Anything, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	uow.On("TrackedOrders").Return([]*order.Order{pending}).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("Publish", mock.MatchedBy(func(s ports.OrderSnapshot) bool {
		return s.Status == "Paid" && s.PaymentStatus == "Paid"
	})).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkOrderPaidCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusPaid, pending.Status())
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMarkOrderPaidCommandHandler_Handle_AlreadyPaid(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	paid := newPaidOrder(t, id)
	cmd, err := commands.NewMarkOrderPaidCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(paid, nil)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewMarkOrderPaidCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkOrderPaidCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewMarkOrderPaidCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("orderID", id))

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewMarkOrderPaidCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
