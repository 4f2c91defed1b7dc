// Package lock implementa sales.SaleLocker: candados por clave en memoria para un solo
// proceso y candados distribuidos sobre Redis para varias réplicas.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/yieldfood-api/internal/application/sales"
	"github.com/jhoicas/yieldfood-api/internal/domain"
)

var _ sales.SaleLocker = (*LocalLocker)(nil)

type keyedSlot struct {
	ch   chan struct{}
	refs int
}

// LocalLocker candado por clave dentro del proceso. Las entradas se eliminan cuando
// nadie las retiene ni espera.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*keyedSlot
	wait  time.Duration
}

// NewLocalLocker wait acota la espera por el candado; 0 = hasta que ctx expire.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{slots: make(map[string]*keyedSlot), wait: wait}
}

// Lock bloquea hasta obtener el candado de key. Si la espera vence devuelve domain.ErrSaleLocked.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	slot := l.acquireSlot(key)
	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(key, slot)
		return nil, fmt.Errorf("%w: %v", domain.ErrSaleLocked, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.releaseSlot(key, slot)
		})
	}, nil
}

func (l *LocalLocker) acquireSlot(key string) *keyedSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &keyedSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) releaseSlot(key string, s *keyedSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// size cantidad de claves vivas (tests).
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
