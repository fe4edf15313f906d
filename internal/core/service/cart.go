package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
	"github.com/soukly/marketplace-client/internal/metrics"
)

// CartService keeps the on-screen cart consistent with the server. Local
// mutations are applied optimistically and pushed as the complete line list;
// the server's response is always authoritative. Every fetch carries a
// generation number so a slow response can never overwrite the result of a
// newer one.
type CartService struct {
	gw       ports.CartGateway
	sessions *SessionManager
	store    ports.SessionStore
	log      zerolog.Logger

	mu         sync.Mutex
	snap       domain.CartSnapshot
	loaded     bool
	issuedGen  uint64
	appliedGen uint64
}

func NewCartService(gw ports.CartGateway, sessions *SessionManager, store ports.SessionStore, log zerolog.Logger) *CartService {
	return &CartService{
		gw:       gw,
		sessions: sessions,
		store:    store,
		log:      log.With().Str("component", "cart").Logger(),
	}
}

// Load fetches the server-side cart and replaces the local snapshot. On
// failure the previous snapshot is left untouched. A response that lost the
// race against a fresher one is discarded.
func (s *CartService) Load(ctx context.Context) error {
	state, session := s.sessions.Current()
	if state != StateAuthenticated {
		return domain.ErrNotAuthenticated
	}

	gen := s.nextGen()
	snap, err := s.gw.FetchCart(ctx, session.UserID)
	if err != nil {
		metrics.CartSyncsTotal.WithLabelValues("load", "error").Inc()
		return fmt.Errorf("load cart: %w", err)
	}

	s.adopt(snap, gen)
	metrics.CartSyncsTotal.WithLabelValues("load", "ok").Inc()
	return nil
}

// SetQuantity clamps the requested quantity to a minimum of 1, mutates the
// local snapshot for immediate feedback, and pushes the complete line list.
// On success the server's cart replaces the snapshot; on failure the snapshot
// is reverted by a full refetch and the error is returned.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	update, gen, err := s.stageMutation(productID, func(lines []domain.CartLine, idx int) []domain.CartLine {
		lines[idx].Quantity = domain.ClampQuantity(quantity)
		return lines
	})
	if err != nil {
		return err
	}
	return s.push(ctx, "set_quantity", update, gen)
}

// Remove drops a line locally and pushes the shortened line list so the
// removal survives the next load.
func (s *CartService) Remove(ctx context.Context, productID string) error {
	update, gen, err := s.stageMutation(productID, func(lines []domain.CartLine, idx int) []domain.CartLine {
		return append(lines[:idx], lines[idx+1:]...)
	})
	if err != nil {
		return err
	}
	return s.push(ctx, "remove", update, gen)
}

// Clear deletes the cart by id. Without a known cart id there is nothing to
// delete and the call succeeds, which makes a repeated Clear idempotent. On
// failure the snapshot stays intact.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	cartID := s.snap.CartID
	clientID := s.snap.ClientID
	s.mu.Unlock()

	if cartID == "" {
		return nil
	}

	if err := s.gw.DeleteCart(ctx, cartID); err != nil {
		metrics.CartSyncsTotal.WithLabelValues("clear", "error").Inc()
		return fmt.Errorf("clear cart: %w", err)
	}

	s.mu.Lock()
	s.issuedGen++
	s.appliedGen = s.issuedGen
	s.snap = domain.CartSnapshot{ClientID: clientID}
	s.loaded = true
	s.mu.Unlock()

	if err := s.store.ClearCartID(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored cart id")
	}
	metrics.CartSyncsTotal.WithLabelValues("clear", "ok").Inc()
	s.log.Info().Str("cart_id", cartID).Msg("cart cleared")
	return nil
}

// Snapshot returns a copy of the current cart for rendering and whether a
// load has completed yet.
func (s *CartService) Snapshot() (domain.CartSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone(), s.loaded
}

// LineCount reports the number of lines in the current snapshot.
func (s *CartService) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.LineCount()
}

// stageMutation applies an optimistic edit to the line at productID and
// returns the full-list update payload to push.
func (s *CartService) stageMutation(productID string, edit func(lines []domain.CartLine, idx int) []domain.CartLine) (ports.CartUpdate, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded || s.snap.CartID == "" {
		return ports.CartUpdate{}, 0, domain.ErrNoCart
	}
	idx := -1
	for i, l := range s.snap.Lines {
		if l.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ports.CartUpdate{}, 0, domain.ErrLineNotFound
	}

	s.snap.Lines = edit(s.snap.Lines, idx)

	lines := make([]domain.CartLine, len(s.snap.Lines))
	copy(lines, s.snap.Lines)
	s.issuedGen++
	return ports.CartUpdate{
		CartID:   s.snap.CartID,
		ClientID: s.snap.ClientID,
		Lines:    lines,
	}, s.issuedGen, nil
}

// push sends the staged update. On failure the optimistic state is reverted
// by a full refetch rather than a local rollback.
func (s *CartService) push(ctx context.Context, op string, update ports.CartUpdate, gen uint64) error {
	fresh, err := s.gw.UpdateCart(ctx, update)
	if err != nil {
		metrics.CartSyncsTotal.WithLabelValues(op, "error").Inc()
		if lerr := s.Load(ctx); lerr != nil {
			s.log.Warn().Err(lerr).Msg("revert refetch failed, optimistic state kept")
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.adopt(fresh, gen)
	metrics.CartSyncsTotal.WithLabelValues(op, "ok").Inc()
	return nil
}

func (s *CartService) nextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuedGen++
	return s.issuedGen
}

// adopt installs a server response unless a fresher response has already been
// applied, in which case the stale one is dropped.
func (s *CartService) adopt(snap domain.CartSnapshot, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.appliedGen {
		metrics.StaleResponsesDiscardedTotal.Inc()
		s.log.Debug().Uint64("gen", gen).Uint64("applied", s.appliedGen).Msg("stale cart response discarded")
		return
	}
	s.appliedGen = gen
	s.snap = snap
	s.loaded = true

	if snap.CartID != "" {
		if err := s.store.SaveCartID(snap.CartID); err != nil {
			s.log.Warn().Err(err).Msg("failed to persist cart id")
		}
	}
}
