package guestauth

import (
	"context"
	"sync"
	"time"

	"github.com/planloop/guestauth/revocation"
)

// purgeLoop periodically sweeps expired revocation entries. Redis deployments
// expire entries via key TTLs, so the loop mainly serves the memory store and
// the Redis owner-set bookkeeping.
type purgeLoop struct {
	store    revocation.Store
	interval time.Duration
	timeout  time.Duration
	metrics  *Metrics
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func startPurgeLoop(store revocation.Store, interval, timeout time.Duration, metrics *Metrics) *purgeLoop {
	if interval <= 0 {
		return nil
	}

	p := &purgeLoop{
		store:    store,
		interval: interval,
		timeout:  timeout,
		metrics:  metrics,
		done:     make(chan struct{}),
	}

	p.wg.Add(1)
	go p.run()

	return p
}

func (p *purgeLoop) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sweep()
		case <-p.done:
			return
		}
	}
}

func (p *purgeLoop) sweep() {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Sweep errors are transient; the next tick retries.
	purged, err := p.store.PurgeExpired(ctx, time.Now())
	if err != nil {
		return
	}
	if purged > 0 && p.metrics != nil {
		p.metrics.Add(MetricRevocationPurged, uint64(purged))
	}
}

func (p *purgeLoop) stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
