package reporting

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"lumiere-storefront/internal/domain"
	"lumiere-storefront/pkg/logger"

	"golang.org/x/time/rate"
)

type report struct {
	eventName string
	data      map[string]interface{}
}

// Dispatcher forwards events to a Reporter from a background worker.
// Forward never blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	reporter domain.Reporter
	queue    chan report
	limiter  *rate.Limiter

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
	failed  atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher starts a dispatcher with one worker.
// queueSize: events buffered before new ones are dropped
// ratePerSec: max reports per second, 0 for unlimited
func NewDispatcher(reporter domain.Reporter, queueSize int, ratePerSec float64) (*Dispatcher, error) {
	if reporter == nil {
		return nil, fmt.Errorf("reporting dispatcher: reporter is nil: %w", domain.ErrNotInitialized)
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		reporter: reporter,
		queue:    make(chan report, queueSize),
	}
	if ratePerSec > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())

	d.wg.Add(1)
	go d.run()
	return d, nil
}

// Forward implements domain.EventForwarder.
func (d *Dispatcher) Forward(eventName string, data map[string]interface{}) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- report{eventName: eventName, data: data}:
	default:
		d.dropped.Add(1)
		logger.Debug().Str("event", eventName).Msg("Report queue full, event dropped")
	}
}

// Dropped is the number of events discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Failed is the number of events the reporter rejected.
func (d *Dispatcher) Failed() int64 {
	return d.failed.Load()
}

// Shutdown stops accepting events and waits for queued ones to be sent.
// When ctx expires first, pending events are abandoned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for r := range d.queue {
		if d.ctx.Err() != nil {
			continue
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(d.ctx); err != nil {
				continue
			}
		}
		d.send(r)
	}
}

func (d *Dispatcher) send(r report) {
	defer func() {
		if p := recover(); p != nil {
			d.failed.Add(1)
			logger.Warn().Interface("panic", p).Str("event", r.eventName).Msg("Reporter panicked")
		}
	}()

	if err := d.reporter.Report(r.eventName, r.data); err != nil {
		d.failed.Add(1)
		logger.Debug().Err(err).Str("event", r.eventName).Msg("Failed to report event")
	}
}
