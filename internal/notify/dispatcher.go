package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"backoffice/internal/log"
)

// DeliverFunc sends one event. Mailer.Deliver is the usual implementation.
type DeliverFunc func(ctx context.Context, e Event) error

// Dispatcher is a Notifier backed by a bounded queue and a pool of workers.
// A full queue drops the event.
type Dispatcher struct {
	deliver DeliverFunc
	workers int
	queue   chan Event

	mu      sync.RWMutex
	running bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewDispatcher(deliver DeliverFunc, workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{deliver: deliver, workers: workers, queue: make(chan Event, queueSize)}
}

func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return errors.New("dispatcher is already running")
	}
	if d.ctx != nil {
		return errors.New("dispatcher cannot be restarted")
	}
	d.running = true
	d.ctx, d.cancel = context.WithCancel(context.WithoutCancel(ctx))

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(fmt.Sprintf("notify-%d", i+1))
	}
	log.Info(nil, "notify.started", map[string]any{"workers": d.workers, "queue": cap(d.queue)})
	return nil
}

// Notify enqueues e. It never blocks.
func (d *Dispatcher) Notify(e Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		log.Security(nil, "notify.dropped", map[string]any{"order_id": e.OrderID, "reason": "stopped"})
		return
	}
	select {
	case d.queue <- e:
	default:
		log.Security(nil, "notify.dropped", map[string]any{"order_id": e.OrderID, "reason": "queue full"})
	}
}

// Stop refuses new events and waits for queued ones to be delivered. If ctx
// ends first, in-flight deliveries are cancelled.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.cancel()
		log.Info(nil, "notify.stopped", nil)
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) run(worker string) {
	defer d.wg.Done()
	for e := range d.queue {
		if d.ctx.Err() != nil {
			continue
		}
		if err := d.deliver(d.ctx, e); err != nil {
			log.Error(nil, "notify.failed", err, map[string]any{"worker": worker, "order_id": e.OrderID, "to": e.To})
			continue
		}
		log.Info(nil, "notify.sent", map[string]any{"worker": worker, "order_id": e.OrderID})
	}
}
