package session

import (
	"context"
	"strings"
	"sync"

	"github.com/Skotchmaster/skinstore/internal/authclient"
	"github.com/Skotchmaster/skinstore/internal/logging"
	"github.com/Skotchmaster/skinstore/internal/models"
)

// Manager is the single owner of the live session. Components that need
// auth state hold a *Manager instead of reading globals, and observers
// subscribe to be told when the user changes.
//
// Every auth action is tagged with a generation number. A response that
// settles after a newer action has already bumped the generation is
// discarded, so a slow verify can never clobber a fresh login and a login
// that lands after logout is ignored.
type Manager struct {
	mu      sync.Mutex
	client  *authclient.Client
	store   *Store
	current *models.Session
	gen     uint64
	subs    []func(*models.User)
}

func NewManager(client *authclient.Client, store *Store) *Manager {
	return &Manager{client: client, store: store}
}

// Subscribe registers fn to be called with the new user after every session
// change, nil meaning logged out.
func (m *Manager) Subscribe(fn func(*models.User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Current returns the live session, or nil when not authenticated.
func (m *Manager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.Valid() {
		return nil
	}
	s := *m.current
	return &s
}

// User returns the authenticated user, or nil.
func (m *Manager) User() *models.User {
	if s := m.Current(); s != nil {
		return s.User
	}
	return nil
}

// Bootstrap re-establishes the session from the store on process start. A
// stored token+user pair is verified remotely and the server's view of the
// user (its balance in particular) supersedes the cached one; anything less
// than a full verified pair clears the store and leaves the session absent.
// Until Bootstrap returns, no balance shown anywhere is authoritative.
func (m *Manager) Bootstrap(ctx context.Context) error {
	l := logging.FromContext(ctx).With("component", "session")

	token, user, err := m.store.Load()
	if err != nil {
		return err
	}
	if token == "" || user == nil {
		// A token without a user (or the reverse) is a half-session
		// left behind by a corrupt slot; drop it.
		if token != "" || user != nil {
			l.Warn("inconsistent_session_cleared")
			return m.store.Clear()
		}
		return nil
	}

	gen := m.begin()
	res := m.client.Verify(ctx, token)

	m.mu.Lock()
	stale := gen != m.gen
	m.mu.Unlock()
	if stale {
		l.Info("stale_auth_response_discarded", "action", "verify")
		return nil
	}

	if !res.Success || res.User == nil {
		l.Info("session_verify_failed", "error", res.Error)
		return m.store.Clear()
	}

	m.adopt(ctx, gen, token, res.User, false)
	return nil
}

// Login authenticates against the remote endpoint and, on success, adopts
// and persists the session. The returned result is the endpoint's answer
// either way.
func (m *Manager) Login(ctx context.Context, username, password string) authclient.Result {
	if username == "" || password == "" {
		return authclient.Result{Error: "Missing username or password"}
	}

	gen := m.begin()
	res := m.client.Login(ctx, username, password)
	if res.Success && res.User != nil && res.SessionToken != "" {
		m.adopt(ctx, gen, res.SessionToken, res.User, true)
	}
	return res
}

// Register creates an account and logs it in. Presence and the password
// confirmation are checked here to avoid a wasted round trip; everything
// else (length minimum, uniqueness) stays the server's call.
func (m *Manager) Register(ctx context.Context, username, email, password, confirm string) authclient.Result {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return authclient.Result{Error: "Missing required fields"}
	}
	if password != confirm {
		return authclient.Result{Error: "Passwords do not match"}
	}

	gen := m.begin()
	res := m.client.Register(ctx, username, email, password)
	if res.Success && res.User != nil && res.SessionToken != "" {
		m.adopt(ctx, gen, res.SessionToken, res.User, true)
	}
	return res
}

// Logout drops the in-memory session, clears the store and invalidates any
// auth call still in flight.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.gen++
	m.current = nil
	m.mu.Unlock()

	err := m.store.Clear()
	m.notify(nil)
	return err
}

func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

// adopt installs the session if gen is still current. Persistence is best
// effort: a failed save means the session will not survive a restart, not a
// failed login.
func (m *Manager) adopt(ctx context.Context, gen uint64, token string, user *models.User, persist bool) {
	l := logging.FromContext(ctx).With("component", "session")

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		l.Info("stale_auth_response_discarded")
		return
	}
	m.current = &models.Session{Token: token, User: user}
	m.mu.Unlock()

	if persist {
		if err := m.store.Save(token, user); err != nil {
			l.Warn("session_save_failed", "error", err)
		}
	}
	m.notify(user)
}

func (m *Manager) notify(user *models.User) {
	m.mu.Lock()
	subs := make([]func(*models.User), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}
