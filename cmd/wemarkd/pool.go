package main

import (
	"runtime"

	wemark "github.com/alekzhu/wemark"
	"github.com/alekzhu/wemark/internal/server"
)

// RendererPool manages a fixed set of renderer instances so many renders
// can be in flight concurrently without sharing per-render state.
type RendererPool struct {
	size int
	sem  chan server.Renderer
}

// NewRendererPool creates a pool of n renderers built with the given
// options.
func NewRendererPool(n int, opts ...wemark.Option) (*RendererPool, error) {
	if n < 1 {
		n = 1
	}

	p := &RendererPool{
		size: n,
		sem:  make(chan server.Renderer, n),
	}
	for i := 0; i < n; i++ {
		r, err := wemark.New(opts...)
		if err != nil {
			return nil, err
		}
		p.sem <- r
	}
	return p, nil
}

// Compile-time check that RendererPool implements server.Pool.
var _ server.Pool = (*RendererPool)(nil)

// Acquire takes a renderer from the pool, blocking if all are in use.
func (p *RendererPool) Acquire() server.Renderer {
	return <-p.sem
}

// Release returns a renderer to the pool.
func (p *RendererPool) Release(r server.Renderer) {
	p.sem <- r
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// resolvePoolSize determines the pool size.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}
