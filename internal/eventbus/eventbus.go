// Package eventbus is a small in-process dispatcher for typed notification
// events. Publishing with no subscribers is free, so instrumented code paths
// never pay for observability that is switched off.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

type entry struct {
	id int64
	fn func(context.Context, any)
}

// Bus dispatches events to subscribers of the event's dynamic type.
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[reflect.Type][]entry
}

// New creates an empty Bus.
func New() *Bus { return &Bus{subs: make(map[reflect.Type][]entry)} }

func (b *Bus) add(t reflect.Type, fn func(context.Context, any)) (remove func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], entry{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		es := b.subs[t]
		for i := range es {
			if es[i].id == id {
				b.subs[t] = append(es[:i:i], es[i+1:]...)
				break
			}
		}
		if len(b.subs[t]) == 0 {
			delete(b.subs, t)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, e any) {
	t := reflect.TypeOf(e)
	b.mu.RLock()
	es := append([]entry(nil), b.subs[t]...)
	b.mu.RUnlock()
	for _, en := range es {
		en.fn(ctx, e)
	}
}

var global atomic.Pointer[Bus]

// Use installs b as the process-global bus. Passing nil disables publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h for events of type T on the global bus and returns
// a function that removes the subscription.
func Subscribe[T any](h func(context.Context, T)) (unsubscribe func()) {
	b := global.Load()
	if b == nil {
		return func() {}
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	return b.add(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Publish sends e to the global bus's subscribers of type T.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		b.dispatch(ctx, e)
	}
}
