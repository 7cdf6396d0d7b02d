package selection

import (
	"sync"

	"github.com/agentstation/refselect/pkg/references"
)

// ValueSlot is the read/write slot the host owns for a node's value.
// The reconciler reads it, writes it, and watches it for changes.
type ValueSlot interface {
	Get() references.Value
	Set(references.Value)
	Subscribe(fn func(references.Value)) (unsubscribe func())
}

// Compile-time check that Observable can serve as a value slot.
var _ ValueSlot = (*Observable[references.Value])(nil)

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Observable holds a value and notifies subscribers when it is set.
type Observable[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
	subs    []subscriber[T]
	nextID  int
}

// NewObservable creates an observable holding initial.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set stores v and calls every subscriber in registration order.
// Subscribers run on the caller's goroutine after the lock is released,
// so they may read or set the observable themselves. When a subscriber
// sets a newer value, the remaining subscribers of the older value are
// skipped; the nested Set already delivered the newer one to everybody.
func (o *Observable[T]) Set(v T) {
	o.mu.Lock()
	o.value = v
	o.version++
	version := o.version
	subs := make([]subscriber[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		if o.stale(version) {
			return
		}
		s.fn(v)
	}
}

func (o *Observable[T]) stale(version uint64) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.version != version
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i], o.subs[i+1:]...)
				return
			}
		}
	}
}
