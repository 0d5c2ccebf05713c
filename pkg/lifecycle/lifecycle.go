// Package lifecycle coordinates startup and shutdown hooks and tracks
// whether the process is ready to receive webhook deliveries.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks for the application lifecycle
// and aggregates the readiness of registered subsystems.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      atomic.Bool

	mu     sync.RWMutex
	checks []namedCheck
}

type namedCheck struct {
	name  string
	check ReadinessChecker
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// AddCheck registers a subsystem whose readiness gates Ready, such as an
// upstream client that stops accepting calls while its circuit is open.
func (c *Coordinator) AddCheck(name string, check ReadinessChecker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks = append(c.checks, namedCheck{name: name, check: check})
}

// Ready returns true after all startup hooks have completed, until shutdown
// begins, and only while every registered check reports ready.
func (c *Coordinator) Ready() bool {
	return c.ready.Load() && len(c.NotReady()) == 0
}

// NotReady lists the registered checks that currently report not ready.
func (c *Coordinator) NotReady() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for _, nc := range c.checks {
		if !nc.check.Ready() {
			names = append(names, nc.name)
		}
	}
	return names
}

// WaitForStartup blocks until all startup hooks have completed and sets the ready flag.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.ready.Store(true)
}

// Shutdown clears readiness, cancels the context, and waits for shutdown
// hooks to complete within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
