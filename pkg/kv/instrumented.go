package kv

import (
	"context"
	"time"

	"github.com/angelmondragon/jewelcatalog/pkg/metrics"
)

// Instrumented records duration and failures of every call on the wrapped store.
type Instrumented struct {
	next    Store
	backend string
	metrics *metrics.StoreMetrics
}

func NewInstrumented(next Store, backend string, m *metrics.StoreMetrics) *Instrumented {
	return &Instrumented{next: next, backend: backend, metrics: m}
}

func (i *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(ctx, key)
	i.observe("get", start, err)
	return v, ok, err
}

func (i *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

func (i *Instrumented) Ping(ctx context.Context) error {
	return Ping(ctx, i.next)
}

// Unwrap returns the wrapped store.
func (i *Instrumented) Unwrap() Store {
	return i.next
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	i.metrics.ObserveDuration(i.backend, op, time.Since(start))
	if err != nil {
		i.metrics.IncFailure(i.backend, op)
	}
}
