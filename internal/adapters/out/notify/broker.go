// Package notify implements the in-process pub/sub channel that feeds live
// order-status streams.
package notify

import (
	"sync"

	"certify/internal/core/ports"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls further behind loses intermediate snapshots; the latest state is what
// matters for a status stream.
const subscriberBuffer = 8

// Broker is an in-memory snapshot broker keyed by order id. It implements
// both ports.OrderNotifier (write side) and ports.OrderSubscriber (read
// side). Publishing never blocks.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan ports.OrderSnapshot]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan ports.OrderSnapshot]struct{}),
	}
}

// Publish delivers a snapshot to all subscribers of the order. Slow
// subscribers are skipped, not waited for.
func (b *Broker) Publish(snapshot ports.OrderSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[snapshot.OrderID] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Subscribe registers a listener for one order id. The returned cancel
// function must be called to release the subscription; it closes the channel.
func (b *Broker) Subscribe(orderID string) (<-chan ports.OrderSnapshot, func()) {
	ch := make(chan ports.OrderSnapshot, subscriberBuffer)

	b.mu.Lock()
	if b.subs[orderID] == nil {
		b.subs[orderID] = make(map[chan ports.OrderSnapshot]struct{})
	}
	b.subs[orderID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[orderID], ch)
			if len(b.subs[orderID]) == 0 {
				delete(b.subs, orderID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}
