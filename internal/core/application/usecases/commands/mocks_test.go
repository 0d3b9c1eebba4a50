package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certify/internal/core/application/usecases/commands"
	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
	"certify/internal/core/domain/services"
	"certify/internal/core/ports"
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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) TrackedOrders() []*order.Order {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*order.Order)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderNotifier struct{ mock.Mock }

func (m *MockOrderNotifier) Publish(snapshot ports.OrderSnapshot) {
	m.Called(snapshot)
}

type MockReconstructionEngine struct{ mock.Mock }

func (m *MockReconstructionEngine) Start(ctx context.Context, req ports.ReconstructionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockPageFetcher struct{ mock.Mock }

func (m *MockPageFetcher) Fetch(ctx context.Context, url string) (ports.PageImage, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(ports.PageImage), args.Error(1)
}

type MockDocumentAssembler struct{ mock.Mock }

func (m *MockDocumentAssembler) Assemble(
	ctx context.Context,
	plan services.AssemblyPlan,
	images []ports.PageImage,
) ([]byte, error) {
	args := m.Called(ctx, plan, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) Send(ctx context.Context, msg ports.OutgoingMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Aggregate builders shared by the handler tests.

func newPendingOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, "de", "en", "s3://inbox/scan.pdf", "Geburtsurkunde")
	require.NoError(t, err)
	return o
}

func newPaidOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, id)
	require.NoError(t, o.MarkPaid())
	return o
}

func newProcessingOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o := newPaidOrder(t, id)
	require.NoError(t, o.StartProcessing())
	return o
}

func newReadyOrder(t *testing.T, id kernel.UUID, urls ...string) *order.Order {
	t.Helper()
	o := newProcessingOrder(t, id)
	if len(urls) == 0 {
		urls = []string{"https://pages.test/p1.png"}
	}
	added, err := o.MergePageResults(urls)
	require.NoError(t, err)
	require.Equal(t, len(urls), added)
	return o
}

func newCompletedOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o := newReadyOrder(t, id)
	require.NoError(t, o.MarkDispatched())
	return o
}
