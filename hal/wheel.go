package hal

import "sync"

// WheelBus fans wheel events out to subscribers.
//
// Dispatch runs handlers synchronously on the caller's goroutine, in
// subscription order. Handlers may unsubscribe themselves while being called.
type WheelBus struct {
	mu   sync.Mutex
	next uint64
	subs []wheelSub
}

type wheelSub struct {
	id uint64
	fn func(WheelEvent)
}

// NewWheelBus returns an empty bus.
func NewWheelBus() *WheelBus {
	return &WheelBus{}
}

// Subscribe registers fn. A nil fn returns a no-op subscription.
func (b *WheelBus) Subscribe(fn func(WheelEvent)) Subscription {
	if fn == nil {
		return noopSubscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.subs = append(b.subs, wheelSub{id: b.next, fn: fn})
	return &wheelSubscription{bus: b, id: b.next}
}

// Inject delivers ev to all current subscribers.
func (b *WheelBus) Inject(ev WheelEvent) {
	b.mu.Lock()
	subs := make([]wheelSub, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		if !b.active(s.id) {
			continue
		}
		s.fn(ev)
	}
}

// Len returns the number of live subscriptions.
func (b *WheelBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *WheelBus) active(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *WheelBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

type wheelSubscription struct {
	once sync.Once
	bus  *WheelBus
	id   uint64
}

func (s *wheelSubscription) Unsubscribe() {
	s.once.Do(func() { s.bus.remove(s.id) })
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
