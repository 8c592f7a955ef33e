// Package session holds the per-client interaction state: which team
// the client plays for, its last location fix, and the single dialog
// mode it is in. Modes form a tagged union, so two confirmation
// dialogs can never be open at once. Sessions are transient: they
// live in memory, expire when idle, and are never shared between
// devices; the game itself lives in the store.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/huntbase/zonehunt/internal/game"
)

// Mode is the client's current dialog state. Exactly one Mode is
// active per session; setting a new one discards the previous.
type Mode interface {
	// Name is the wire label for the mode.
	Name() string
}

type Idle struct{}

// ConfirmingDeposit awaits confirmation of a point deposit into the
// zone nearest the client's location fix at request time.
type ConfirmingDeposit struct {
	Amount int
	Zone   int
}

// ConfirmingChallenge awaits confirmation that the team completed the
// challenge.
type ConfirmingChallenge struct {
	ChallengeID string
}

// ConfirmingCardUse awaits confirmation before a hand card is played.
type ConfirmingCardUse struct {
	InstanceID string
}

// AwaitingCurseInput awaits the measurement value a curse_with_input
// card is parameterized by. Cancelling leaves the card in the hand.
type AwaitingCurseInput struct {
	InstanceID string
}

// TriviaActive means the wager has been debited and the answer is
// outstanding.
type TriviaActive struct {
	InstanceID string
	Wager      int
}

// ConfirmingClear awaits confirmation that an acknowledged curse has
// been satisfied and may be removed.
type ConfirmingClear struct {
	CurseID string
}

func (Idle) Name() string                { return "idle" }
func (ConfirmingDeposit) Name() string   { return "confirming_deposit" }
func (ConfirmingChallenge) Name() string { return "confirming_challenge" }
func (ConfirmingCardUse) Name() string   { return "confirming_card_use" }
func (AwaitingCurseInput) Name() string  { return "awaiting_curse_input" }
func (TriviaActive) Name() string        { return "trivia_active" }
func (ConfirmingClear) Name() string     { return "confirming_clear" }

// Session is one client's transient state. All access goes through
// the accessors; the zero Mode is Idle.
type Session struct {
	Token  string
	GameID string
	Team   game.Team

	mu       sync.Mutex
	mode     Mode
	lat, lng float64
	hasFix   bool
	lastSeen time.Time
}

// Mode returns the active dialog mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == nil {
		return Idle{}
	}
	return s.mode
}

// SetMode replaces the active mode, discarding whatever was open.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// Reset returns the session to Idle.
func (s *Session) Reset() { s.SetMode(Idle{}) }

// SetLocation records the latest location fix.
func (s *Session) SetLocation(lat, lng float64) {
	s.mu.Lock()
	s.lat, s.lng, s.hasFix = lat, lng, true
	s.mu.Unlock()
}

// Location returns the last fix; ok is false until one arrives.
func (s *Session) Location() (lat, lng float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lat, s.lng, s.hasFix
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// Registry is the in-memory session table, keyed by bearer token.
type Registry struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create starts a fresh Idle session for a team in a game.
func (r *Registry) Create(gameID string, team game.Team) *Session {
	s := &Session{
		Token:    newToken(),
		GameID:   gameID,
		Team:     team,
		mode:     Idle{},
		lastSeen: time.Now(),
	}
	r.mu.Lock()
	r.sessions[s.Token] = s
	r.mu.Unlock()
	return s
}

// Get returns the live session for a token and refreshes its idle
// timer.
func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(r.ttl, time.Now()) {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return nil, false
	}
	s.touch(time.Now())
	return s, true
}

// Sweep drops sessions idle longer than the TTL and reports how many
// were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for token, s := range r.sessions {
		if s.expired(r.ttl, now) {
			delete(r.sessions, token)
			n++
		}
	}
	return n
}

// Run sweeps periodically until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) error {
	t := time.NewTicker(r.ttl / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			r.Sweep(now)
		}
	}
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
