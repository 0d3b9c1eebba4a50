package commands_test

import (
	"errors"
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

func TestTriggerReconstructionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	paid := newPaidOrder(t, id)
	cmd, err := commands.NewTriggerReconstructionCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(paid, nil)
	repo.On("Update", mock.Anything, paid).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("TrackedOrders").Return([]*order.Order{paid})

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	engine := new(MockReconstructionEngine)
	engine.On("Start", mock.Anything, mock.MatchedBy(func(req ports.ReconstructionRequest) bool {
		return req.OrderID == id.String() && req.SourceLanguage == "de" && req.TargetLanguage == "en"
	})).Return(nil).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("Publish", mock.MatchedBy(func(s ports.OrderSnapshot) bool {
		return s.ProcessingStatus == "Processing" && s.Status == "Processing"
	})).Once()

	h := commands.NewTriggerReconstructionCommandHandler(factory, engine, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.ProcessingInProgress, paid.ProcessingStatus())
	engine.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTriggerReconstructionCommandHandler_Handle_AlreadyInProgress(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	processing := newProcessingOrder(t, id)
	cmd, err := commands.NewTriggerReconstructionCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(processing, nil)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	engine := new(MockReconstructionEngine)

	h := commands.NewTriggerReconstructionCommandHandler(factory, engine, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	engine.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestTriggerReconstructionCommandHandler_Handle_EngineRejection(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	paid := newPaidOrder(t, id)
	cmd, err := commands.NewTriggerReconstructionCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(paid, nil)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	engine := new(MockReconstructionEngine)
	engine.On("Start", mock.Anything, mock.Anything).
		Return(errs.NewTransportFailureError("engine start", errors.New("503"))).Once()

	h := commands.NewTriggerReconstructionCommandHandler(factory, engine, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransportFailure)

	// Rejected handshake leaves the order triggerable.
	assert.True(t, paid.CanTrigger())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTriggerReconstructionCommandHandler_Handle_RetriggerAfterFailure(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	failed := newProcessingOrder(t, id)
	require.NoError(t, failed.MarkProcessingFailed("engine crashed"))
	cmd, err := commands.NewTriggerReconstructionCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(failed, nil)
	repo.On("Update", mock.Anything, failed).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("TrackedOrders").Return([]*order.Order{failed})

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	engine := new(MockReconstructionEngine)
	engine.On("Start", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewTriggerReconstructionCommandHandler(factory, engine, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.ProcessingInProgress, failed.ProcessingStatus())
}
