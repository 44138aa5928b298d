package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	"github.com/collabhub/collabhub-api/internal/ports"
)

// SessionState is a snapshot of the current user. It is replaced as a whole
// on every transition, never partially mutated, so Profile non-nil always
// implies Identity non-nil.
type SessionState struct {
	Identity *domainauth.Identity
	Session  *domainauth.Session
	Profile  *domainprofile.Profile
	Loading  bool
}

// Authenticated reports whether a user is signed in.
func (s SessionState) Authenticated() bool {
	return s.Session != nil
}

type sessionEvent struct {
	Event   domainauth.Event
	Session *domainauth.Session
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Sessions ports.SessionStore
	Profiles ports.ProfileRepository
	Provider ports.AuthProvider
}

// SessionManager owns the current-user state. Auth events flow through an
// ordered channel drained by a single goroutine; each handler runs to
// completion, including its profile fetch, before the next event is
// consumed. Subscribers receive state snapshots.
type SessionManager struct {
	sessions ports.SessionStore
	profiles ports.ProfileRepository
	provider ports.AuthProvider
	logger   *slog.Logger

	mu    sync.Mutex
	state SessionState

	events chan sessionEvent

	subMu   sync.Mutex
	nextSub int
	subs    map[int]chan SessionState
}

// NewSessionManager constructs a new SessionManager. The initial state is
// Loading until Bootstrap completes.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	return &SessionManager{
		sessions: opts.Sessions,
		profiles: opts.Profiles,
		provider: opts.Provider,
		logger:   slog.Default().With("component", "session-manager"),
		state:    SessionState{Loading: true},
		events:   make(chan sessionEvent, 16),
		subs:     make(map[int]chan SessionState),
	}
}

// State returns the current state snapshot.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *SessionManager) setState(next SessionState) {
	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
	m.notify(next)
}

// Subscribe registers an observer of state snapshots. The returned cancel
// func removes the subscription and must be called on teardown.
func (m *SessionManager) Subscribe() (<-chan SessionState, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan SessionState, 8)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// notify fans the snapshot out to subscribers. A slow subscriber drops
// snapshots rather than blocking the event loop; the latest state is always
// available from State().
func (m *SessionManager) notify(s SessionState) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Bootstrap restores state from a persisted session handle. Backend errors
// are logged and treated as "no session"; they never propagate. Loading is
// cleared exactly once regardless of outcome.
func (m *SessionManager) Bootstrap(ctx context.Context, sessionID string) {
	identity, session := m.loadSession(ctx, sessionID)
	if session == nil {
		m.setState(SessionState{})
		return
	}

	profile := m.fetchProfile(ctx, session.UserID)
	m.setState(SessionState{
		Identity: identity,
		Session:  session,
		Profile:  profile,
	})
}

func (m *SessionManager) loadSession(ctx context.Context, sessionID string) (*domainauth.Identity, *domainauth.Session) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			m.logger.WarnContext(ctx, "session restore failed, continuing unauthenticated", "err", err)
		}
		return nil, nil
	}
	identity := session.Identity()
	return &identity, &session
}

// fetchProfile loads the profile for a user id. Absence and backend errors
// both yield nil; only real failures are logged.
func (m *SessionManager) fetchProfile(ctx context.Context, userID string) *domainprofile.Profile {
	profile, err := m.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			m.logger.WarnContext(ctx, "profile fetch failed", "user_id", userID, "err", err)
		}
		return nil
	}
	return profile
}

// Dispatch enqueues an auth event for ordered processing. It blocks only if
// the event buffer is full.
func (m *SessionManager) Dispatch(event domainauth.Event, session *domainauth.Session) {
	m.events <- sessionEvent{Event: event, Session: session}
}

// Run drains the event channel until ctx is cancelled. Exactly one Run per
// manager; event ordering depends on it.
func (m *SessionManager) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-m.events:
			m.handleChange(ctx, ev)
		}
	}
}

func (m *SessionManager) handleChange(ctx context.Context, ev sessionEvent) {
	switch ev.Event {
	case domainauth.EventSignedIn:
		if ev.Session == nil {
			return
		}
		identity := ev.Session.Identity()
		// Identity and session land first so the profile fetch below can
		// never produce a profile without an identity.
		m.setState(SessionState{Identity: &identity, Session: ev.Session})
		profile := m.fetchProfile(ctx, ev.Session.UserID)
		if profile != nil {
			m.setState(SessionState{Identity: &identity, Session: ev.Session, Profile: profile})
		}
	case domainauth.EventSignedOut:
		m.setState(SessionState{})
	case domainauth.EventTokenRefreshed:
		if ev.Session == nil {
			return
		}
		identity := ev.Session.Identity()
		m.mu.Lock()
		profile := m.state.Profile
		m.mu.Unlock()
		m.setState(SessionState{Identity: &identity, Session: ev.Session, Profile: profile})
	default:
		m.logger.WarnContext(ctx, "unknown auth event", "event", string(ev.Event))
	}
}

// SignInWithProvider starts a provider login and returns the auth URL for
// the caller to redirect to. Local state is untouched until the callback
// lands as a SIGNED_IN event.
func (m *SessionManager) SignInWithProvider(ctx context.Context, redirectURL string) (string, error) {
	authURL, _, _, err := m.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return "", fmt.Errorf("begin provider sign-in: %w", err)
	}
	return authURL, nil
}

// SignOut invalidates the backend session first. On failure the error is
// returned and local state stays untouched; on success identity, session,
// and profile clear together.
func (m *SessionManager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	session := m.state.Session
	m.mu.Unlock()

	if session != nil {
		if err := m.sessions.Delete(ctx, session.ID); err != nil {
			return fmt.Errorf("invalidate session: %w", err)
		}
	}
	m.setState(SessionState{})
	return nil
}

// RefreshProfile re-fetches the profile for the signed-in user. Without an
// identity it is a no-op.
func (m *SessionManager) RefreshProfile(ctx context.Context) {
	m.mu.Lock()
	identity := m.state.Identity
	session := m.state.Session
	m.mu.Unlock()

	if identity == nil {
		return
	}

	profile := m.fetchProfile(ctx, identity.UserID)
	m.setState(SessionState{Identity: identity, Session: session, Profile: profile})
}
