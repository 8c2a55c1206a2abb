package testutil

import (
	"context"
	"sync"

	"github.com/educamais/educamais/core"
)

// CountingGateway wraps a gateway and counts the calls made through it.
type CountingGateway struct {
	core.Gateway

	mu    sync.Mutex
	calls map[string]int
}

func NewCountingGateway(gw core.Gateway) *CountingGateway {
	return &CountingGateway{Gateway: gw, calls: make(map[string]int)}
}

func (gw *CountingGateway) inc(op string) {
	gw.mu.Lock()
	gw.calls[op]++
	gw.mu.Unlock()
}

// Calls returns the number of calls to op, or to every operation when op is empty.
func (gw *CountingGateway) Calls(op string) int {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if op != "" {
		return gw.calls[op]
	}
	var n int
	for _, c := range gw.calls {
		n += c
	}
	return n
}

func (gw *CountingGateway) Reset() {
	gw.mu.Lock()
	gw.calls = make(map[string]int)
	gw.mu.Unlock()
}

func (gw *CountingGateway) Select(ctx context.Context, q core.Query, dest interface{}) error {
	gw.inc("select")
	return gw.Gateway.Select(ctx, q, dest)
}

func (gw *CountingGateway) Insert(ctx context.Context, resource string, row core.Row, dest interface{}) error {
	gw.inc("insert")
	return gw.Gateway.Insert(ctx, resource, row, dest)
}

func (gw *CountingGateway) Update(ctx context.Context, resource string, id int, fields core.Row) error {
	gw.inc("update")
	return gw.Gateway.Update(ctx, resource, id, fields)
}

func (gw *CountingGateway) Delete(ctx context.Context, resource string, id int) error {
	gw.inc("delete")
	return gw.Gateway.Delete(ctx, resource, id)
}

func (gw *CountingGateway) Count(ctx context.Context, resource string, filters ...core.Filter) (int, error) {
	gw.inc("count")
	return gw.Gateway.Count(ctx, resource, filters...)
}
