package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
	"github.com/soukly/marketplace-client/internal/metrics"
)

// SessionState is the session context's lifecycle state.
type SessionState int

const (
	// StateUnknown holds until the store has been read once.
	StateUnknown SessionState = iota
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// SessionManager is the single owner of the device session. Screens depend on
// it exclusively; nothing else reads the underlying store, which keeps the
// one-session invariant structural rather than conventional.
type SessionManager struct {
	store ports.SessionStore
	auth  ports.AuthGateway
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.Mutex
	state    SessionState
	session  domain.Session
	restored bool
	subs     []chan SessionState
}

func NewSessionManager(store ports.SessionStore, auth ports.AuthGateway, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store: store,
		auth:  auth,
		log:   log.With().Str("component", "session").Logger(),
		now:   time.Now,
		state: StateUnknown,
	}
}

// Restore performs the one-time Unknown transition by reading the store.
// Sessions whose bearer token already expired are dropped instead of being
// handed to screens that would only collect 401s. Subsequent calls are no-ops
// returning the current state.
func (m *SessionManager) Restore(ctx context.Context) SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.restored {
		return m.state
	}
	m.restored = true

	session, found, err := m.store.Read()
	if err != nil {
		m.log.Error().Err(err).Msg("session store read failed")
		m.setStateLocked(StateAnonymous)
		return m.state
	}
	if !found {
		m.setStateLocked(StateAnonymous)
		return m.state
	}
	if m.tokenExpired(session.Token) {
		m.log.Info().Str("user_id", session.UserID).Msg("stored session expired, discarding")
		if err := m.store.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear expired session")
		}
		m.setStateLocked(StateAnonymous)
		return m.state
	}

	m.session = session
	m.setStateLocked(StateAuthenticated)
	m.log.Info().Str("user_id", session.UserID).Str("role", string(session.Role)).Msg("session restored")
	return m.state
}

// Login exchanges credentials for a session, persists it, and moves to
// Authenticated. On any failure the current state is left untouched and the
// caller decides how to display the error.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	session, err := m.auth.Login(ctx, email, password)
	if err != nil {
		metrics.SessionEventsTotal.WithLabelValues("login", "error").Inc()
		return fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(session); err != nil {
		// The backend accepted the credentials but the device could not
		// persist them; treat as failure so state and store never diverge.
		metrics.SessionEventsTotal.WithLabelValues("login", "error").Inc()
		return fmt.Errorf("login: persist session: %w", err)
	}

	m.session = session
	m.restored = true
	m.setStateLocked(StateAuthenticated)
	metrics.SessionEventsTotal.WithLabelValues("login", "ok").Inc()
	m.log.Info().Str("user_id", session.UserID).Str("role", string(session.Role)).Msg("login succeeded")
	return nil
}

// Logout clears the stored session and moves to Anonymous. The backend is not
// called: no revocation endpoint exists, so the token simply ages out
// server-side.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session store")
	}
	if err := m.store.ClearCartID(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored cart id")
	}
	m.session = domain.Session{}
	m.restored = true
	m.setStateLocked(StateAnonymous)
	metrics.SessionEventsTotal.WithLabelValues("logout", "ok").Inc()
	m.log.Info().Msg("logged out")
}

// Current returns the state and, when authenticated, the session.
func (m *SessionManager) Current() (SessionState, domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.session
}

// Token returns the bearer token of the authenticated session. It satisfies
// the backend gateway's TokenSource.
func (m *SessionManager) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return "", domain.ErrNotAuthenticated
	}
	return m.session.Token, nil
}

// Subscribe returns a channel that receives every state change. The channel
// is buffered; a slow subscriber drops notifications rather than blocking
// the session owner.
func (m *SessionManager) Subscribe() <-chan SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan SessionState, 4)
	m.subs = append(m.subs, ch)
	return ch
}

func (m *SessionManager) setStateLocked(next SessionState) {
	if m.state == next {
		return
	}
	m.state = next
	for _, ch := range m.subs {
		select {
		case ch <- next:
		default:
		}
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the client does not hold the signing secret. Tokens that do not
// parse as JWTs are treated as opaque and kept.
func (m *SessionManager) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(m.now())
}
