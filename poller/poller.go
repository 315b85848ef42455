// Package poller keeps a results view eventually consistent with the
// contribution store by refetching the full listing on a fixed interval.
// Responses from overlapping in-flight requests are resolved last-write-wins
// by request sequence: a response is applied only if no response from a later
// request has been applied already.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

// DefaultInterval matches the results view refresh cadence.
const DefaultInterval = 5 * time.Second

// FetchFunc retrieves the current full contribution listing.
type FetchFunc func(ctx context.Context) ([]models.ContributionWithProduct, error)

type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	onUpdate func([]models.ContributionWithProduct)
	onError  func(error)

	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	cancel  context.CancelFunc
}

// New builds a poller that calls onUpdate with each fresh listing. onError
// receives fetch failures (may be nil); a failed fetch never clears the last
// applied state. interval <= 0 falls back to DefaultInterval.
func New(fetch FetchFunc, interval time.Duration, onUpdate func([]models.ContributionWithProduct), onError func(error)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		onUpdate: onUpdate,
		onError:  onError,
	}
}

// Start begins polling: one immediate fetch, then one per interval. Each
// fetch runs in its own goroutine so a slow response never delays the next
// request.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
}

// Stop cancels the polling loop. Outstanding requests are abandoned, not
// awaited; their responses are discarded through the cancelled context.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.launch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.launch(ctx)
		}
	}
}

func (p *Poller) launch(ctx context.Context) {
	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	p.mu.Unlock()

	go func() {
		contributions, err := p.fetch(ctx)
		if err != nil {
			if p.onError != nil && ctx.Err() == nil {
				p.onError(err)
			}
			return
		}
		p.apply(ctx, seq, contributions)
	}()
}

// apply replaces state with the response for seq unless a newer response has
// landed first. Holding the lock across onUpdate keeps delivered updates in
// applied order.
func (p *Poller) apply(ctx context.Context, seq uint64, contributions []models.ContributionWithProduct) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx.Err() != nil || seq <= p.applied {
		return
	}
	p.applied = seq
	p.onUpdate(contributions)
}
