package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certify/internal/adapters/out/notify"
	"certify/internal/core/ports"
)

func TestBroker_PublishReachesSubscriber(t *testing.T) {
	broker := notify.NewBroker()
	ch, cancel := broker.Subscribe("order-1")
	defer cancel()

	broker.Publish(ports.OrderSnapshot{OrderID: "order-1", Status: "Paid"})

	snapshot := <-ch
	assert.Equal(t, "Paid", snapshot.Status)
}

func TestBroker_PublishIsScopedToOrder(t *testing.T) {
	broker := notify.NewBroker()
	ch, cancel := broker.Subscribe("order-1")
	defer cancel()

	broker.Publish(ports.OrderSnapshot{OrderID: "order-2", Status: "Paid"})

	select {
	case snapshot := <-ch:
		t.Fatalf("unexpected snapshot for %s", snapshot.OrderID)
	default:
	}
}

func TestBroker_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	broker := notify.NewBroker()
	_, cancel := broker.Subscribe("order-1")
	defer cancel()

	// More publishes than the channel buffers; none of them may block.
	for i := 0; i < 100; i++ {
		broker.Publish(ports.OrderSnapshot{OrderID: "order-1", PageCount: i})
	}
}

func TestBroker_CancelClosesChannel(t *testing.T) {
	broker := notify.NewBroker()
	ch, cancel := broker.Subscribe("order-1")

	cancel()
	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic on consult of the closed channel.
	broker.Publish(ports.OrderSnapshot{OrderID: "order-1"})

	// Cancel is idempotent.
	cancel()
}

func TestBroker_MultipleSubscribersEachReceive(t *testing.T) {
	broker := notify.NewBroker()
	ch1, cancel1 := broker.Subscribe("order-1")
	defer cancel1()
	ch2, cancel2 := broker.Subscribe("order-1")
	defer cancel2()

	broker.Publish(ports.OrderSnapshot{OrderID: "order-1", Status: "Completed"})

	assert.Equal(t, "Completed", (<-ch1).Status)
	assert.Equal(t, "Completed", (<-ch2).Status)
}
