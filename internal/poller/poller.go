// Package poller runs one cancellable polling task per resource. A tick
// waits for its own fetch to finish before the next one is scheduled, so
// fetches of the same resource never overlap.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// FetchFunc performs one poll. seq increases with every call.
type FetchFunc func(ctx context.Context, seq uint64) error

// Poller drives a FetchFunc on an interval
type Poller struct {
	name     string
	interval time.Duration
	fetch    FetchFunc
	log      logrus.FieldLogger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	trigger chan struct{}
	seq     atomic.Uint64
}

// New creates a stopped poller
func New(name string, interval time.Duration, fetch FetchFunc) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		fetch:    fetch,
		log:      logrus.WithField("poller", name),
	}
}

// Start launches the polling goroutine. The first fetch runs immediately.
// Starting a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.trigger = make(chan struct{}, 1)

	go p.run(ctx, p.done, p.trigger)
}

// Stop cancels the task and waits for an in-flight fetch to return
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done, p.trigger = nil, nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the task is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Trigger requests an immediate poll. Requests made while a fetch is in
// flight collapse into a single follow-up fetch.
func (p *Poller) Trigger() {
	p.mu.Lock()
	trigger := p.trigger
	p.mu.Unlock()

	if trigger == nil {
		return
	}
	select {
	case trigger <- struct{}{}:
	default:
	}
}

func (p *Poller) run(ctx context.Context, done chan struct{}, trigger chan struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-trigger:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		seq := p.seq.Add(1)
		if err := p.fetch(ctx, seq); err != nil && ctx.Err() == nil {
			p.log.WithError(err).WithField("seq", seq).Warn("poll failed")
		}
		if ctx.Err() != nil {
			return
		}
		timer.Reset(p.interval)
	}
}

// Latest tracks the newest applied sequence number per resource so that a
// late response can never overwrite a newer one.
type Latest struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

// Accept reports whether seq is newer than anything applied for key, and
// records it when it is.
func (l *Latest) Accept(key string, seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seqs == nil {
		l.seqs = make(map[string]uint64)
	}
	if seq <= l.seqs[key] {
		return false
	}
	l.seqs[key] = seq
	return true
}

// Reset forgets the sequence for key
func (l *Latest) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seqs, key)
}
