// Package session tracks the signed-in principal and their profile
// document. The session object is created at startup and injected into
// whatever needs it; there is no ambient global.
//
// Lifecycle: initializing → unauthenticated, or initializing →
// authenticated with/without a profile once the first profile snapshot
// arrives. Sign-out cancels the profile subscription exactly once and
// returns to unauthenticated.
package session

import (
	"strings"
	"sync"

	"github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/store"
)

// State is the session's position in its lifecycle.
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticatedNoProfile
	StateAuthenticatedReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedNoProfile:
		return "authenticated (no profile)"
	case StateAuthenticatedReady:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the explicitly scoped auth/profile state for one signed-in
// principal.
type Session struct {
	mu          sync.Mutex
	state       State
	principal   *models.Principal
	profile     *models.Profile
	cancelWatch store.CancelFunc
	watchGen    uint64
	resolved    chan struct{}
	resolveOnce sync.Once

	st        *store.Store
	adminList []string
}

// New creates a session in the initializing state.
func New(st *store.Store, adminEmails []string) *Session {
	return &Session{
		state:     StateInitializing,
		resolved:  make(chan struct{}),
		st:        st,
		adminList: adminEmails,
	}
}

// Restore rebuilds the session from the persisted config: with a stored
// principal it begins the profile subscription, otherwise it resolves
// straight to unauthenticated.
func Restore(cfg *config.Config, st *store.Store) *Session {
	s := New(st, cfg.Admin.Emails)
	if cfg.Auth.UID == "" {
		s.resolveUnauthenticated()
		return s
	}
	s.Begin(models.Principal{
		UID:         cfg.Auth.UID,
		Email:       cfg.Auth.Email,
		DisplayName: cfg.Auth.DisplayName,
	})
	return s
}

// Begin marks the principal signed in and starts the live profile
// subscription. The session stays loading until the first snapshot
// (present or absent) arrives.
func (s *Session) Begin(p models.Principal) {
	s.mu.Lock()
	if s.cancelWatch != nil {
		// Principal change: drop the previous subscription first so no
		// stale snapshot can bleed across sign-ins.
		s.cancelWatch()
	}
	s.principal = &p
	s.profile = nil
	s.watchGen++
	gen := s.watchGen

	ch, cancel := s.st.WatchProfile(p.UID)
	s.cancelWatch = cancel
	s.mu.Unlock()

	go func() {
		for prof := range ch {
			s.apply(gen, prof)
		}
	}()
}

// End cancels the profile subscription and returns to unauthenticated.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}
	s.principal = nil
	s.profile = nil
	s.state = StateUnauthenticated
	s.markResolved()
}

func (s *Session) apply(gen uint64, prof *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A cancelled subscription can still hold one buffered snapshot. The
	// generation check drops it, so a previous principal's profile can
	// never land on the current one.
	if gen != s.watchGen || s.principal == nil {
		return
	}
	s.profile = prof
	if prof != nil {
		s.state = StateAuthenticatedReady
	} else {
		s.state = StateAuthenticatedNoProfile
	}
	s.markResolved()
}

func (s *Session) resolveUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.markResolved()
}

// markResolved exits the loading state. Callers must hold s.mu.
func (s *Session) markResolved() {
	s.resolveOnce.Do(func() { close(s.resolved) })
}

// Resolved returns a channel closed once the session has left the
// initializing state.
func (s *Session) Resolved() <-chan struct{} {
	return s.resolved
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Principal returns the signed-in identity, or nil.
func (s *Session) Principal() *models.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal
}

// Profile returns the latest profile snapshot, or nil when absent.
func (s *Session) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Elevated reports whether the principal's email is on the admin
// allow-list. This bypasses feature gating in the UI only; the gateway
// makes its own authorization decisions.
func (s *Session) Elevated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.principal == nil {
		return false
	}
	for _, email := range s.adminList {
		if strings.EqualFold(email, s.principal.Email) {
			return true
		}
	}
	return false
}
