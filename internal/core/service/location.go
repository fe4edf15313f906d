package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

// LocationService acquires the device position once and holds it read-only
// for the rest of the process lifetime. When acquisition fails the error
// state is kept and consumers omit coordinates instead of sending a
// placeholder.
type LocationService struct {
	locator ports.Locator
	log     zerolog.Logger

	mu       sync.Mutex
	acquired bool
	fix      domain.LocationFix
	err      error
}

func NewLocationService(locator ports.Locator, log zerolog.Logger) *LocationService {
	return &LocationService{
		locator: locator,
		log:     log.With().Str("component", "location").Logger(),
	}
}

// Acquire requests the device position. Only the first call does any work.
func (s *LocationService) Acquire(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acquired {
		return
	}
	s.acquired = true

	fix, err := s.locator.CurrentLocation(ctx)
	if err != nil {
		s.err = err
		s.log.Warn().Err(err).Msg("location unavailable, coordinates will be omitted")
		return
	}
	s.fix = fix
	s.log.Info().Float64("lat", fix.Latitude).Float64("lng", fix.Longitude).Msg("location acquired")
}

// Fix returns the acquired position, or ok=false when none exists.
func (s *LocationService) Fix() (domain.LocationFix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.acquired || s.err != nil {
		return domain.LocationFix{}, false
	}
	return s.fix, true
}
