package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/ports"
	"github.com/soukly/marketplace-client/internal/metrics"
)

const defaultBadgeInterval = 5 * time.Second

// BadgePoller re-fetches the cart line count at a fixed interval to feed the
// bottom-navigation badge. A failed poll keeps the previous value and simply
// waits for the next tick; there is no backoff. Fetches run one at a time, so
// a slow response can never overlap a newer one.
type BadgePoller struct {
	gw       ports.CartGateway
	sessions *SessionManager
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	count   int
	updates chan int
}

func NewBadgePoller(gw ports.CartGateway, sessions *SessionManager, interval time.Duration, log zerolog.Logger) *BadgePoller {
	if interval <= 0 {
		interval = defaultBadgeInterval
	}
	return &BadgePoller{
		gw:       gw,
		sessions: sessions,
		interval: interval,
		log:      log.With().Str("component", "badge").Logger(),
		updates:  make(chan int, 8),
	}
}

// Run polls until ctx is cancelled. Call from its own goroutine.
func (p *BadgePoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Count returns the last successfully fetched badge value.
func (p *BadgePoller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Updates delivers each new badge value. Values are dropped, not blocked on,
// when the consumer lags.
func (p *BadgePoller) Updates() <-chan int {
	return p.updates
}

func (p *BadgePoller) poll(ctx context.Context) {
	state, session := p.sessions.Current()
	if state != StateAuthenticated {
		return
	}

	snap, err := p.gw.FetchCart(ctx, session.UserID)
	if err != nil {
		metrics.BadgePollsTotal.WithLabelValues("error").Inc()
		p.log.Debug().Err(err).Msg("badge poll failed, keeping previous count")
		return
	}
	metrics.BadgePollsTotal.WithLabelValues("ok").Inc()

	p.mu.Lock()
	changed := snap.LineCount() != p.count
	p.count = snap.LineCount()
	p.mu.Unlock()

	if changed {
		select {
		case p.updates <- snap.LineCount():
		default:
		}
	}
}
