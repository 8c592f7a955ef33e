// Package game defines the core domain types and rules of the hunt:
// team state, zone scoring, the challenge and card catalogs, and the
// commit logic for deposits, draws, curses, and trivia wagers.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// Team is one of the two fixed team colors.
type Team string

const (
	TeamOrange Team = "orange"
	TeamPink   Team = "pink"
)

var ErrUnknownTeam = errors.New("unknown team")

func ParseTeam(s string) (Team, error) {
	switch Team(s) {
	case TeamOrange, TeamPink:
		return Team(s), nil
	}
	return "", ErrUnknownTeam
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamOrange {
		return TeamPink
	}
	return TeamOrange
}

const (
	// NumZones is the number of claimable zones on the map.
	NumZones = 9

	// DrawCost is the balance debited for every card draw.
	DrawCost = 100

	// TriviaPayout is the multiple of the wager credited on a correct
	// trivia answer. The wager itself was debited up front, so the net
	// win is (TriviaPayout-1) times the wager.
	TriviaPayout = 4
)

// CardInstance is a card held in a team's hand. The same catalog card
// drawn by both teams yields two distinct instances.
type CardInstance struct {
	InstanceID string `json:"instanceId"`
	CardID     string `json:"cardId"`
}

// Curse is an active affliction on a team, placed there by the other
// team playing a curse card. Once acknowledged it is immutable except
// for removal.
type Curse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Acknowledged bool   `json:"acknowledged"`
	Link         string `json:"link,omitempty"`
	Value        int    `json:"value,omitempty"`
	AutoClear    bool   `json:"autoClear,omitempty"`
}

// TeamState is one team's document in the game store. Two of these,
// keyed "orange" and "pink", make up a game.
type TeamState struct {
	Balance             int            `json:"balance"`
	Zones               [NumZones]int  `json:"zones"` // Zones[i] = points banked in zone i+1
	CompletedChallenges []string       `json:"completedChallenges"`
	Hand                []CardInstance `json:"hand"`
	DrawnCards          []string       `json:"drawnCards"`
	ActiveCurses        []Curse        `json:"activeCurses"`
	GoldRushActive      bool           `json:"goldRushActive"`
	Notifications       []string       `json:"notifications"`
}

// NewTeamState returns a zeroed document with empty (not nil) arrays,
// the shape seeded for both teams when a game is first created.
func NewTeamState() TeamState {
	return TeamState{
		CompletedChallenges: []string{},
		Hand:                []CardInstance{},
		DrawnCards:          []string{},
		ActiveCurses:        []Curse{},
		Notifications:       []string{},
	}
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount out of range")
	ErrInvalidZone         = errors.New("zone out of range")
)

// Debit subtracts n from the balance, refusing to drive it negative.
func (t *TeamState) Debit(n int) error {
	if n < 0 {
		return ErrInvalidAmount
	}
	if t.Balance < n {
		return ErrInsufficientBalance
	}
	t.Balance -= n
	return nil
}

// Credit adds n to the balance.
func (t *TeamState) Credit(n int) {
	t.Balance += n
}

// Deposit moves amount from the balance into the given 1-indexed zone.
// Both fields change or neither does.
func (t *TeamState) Deposit(zone, amount int) error {
	if zone < 1 || zone > NumZones {
		return ErrInvalidZone
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := t.Debit(amount); err != nil {
		return err
	}
	t.Zones[zone-1] += amount
	return nil
}

// Completed reports whether the team already completed the challenge.
func (t *TeamState) Completed(title string) bool {
	for _, c := range t.CompletedChallenges {
		if c == title {
			return true
		}
	}
	return false
}

// AddCompleted adds a challenge title to the completed set. It returns
// false if the title was already present.
func (t *TeamState) AddCompleted(title string) bool {
	if t.Completed(title) {
		return false
	}
	t.CompletedChallenges = append(t.CompletedChallenges, title)
	return true
}

// HasDrawn reports whether the team has ever drawn the catalog card.
func (t *TeamState) HasDrawn(cardID string) bool {
	for _, id := range t.DrawnCards {
		if id == cardID {
			return true
		}
	}
	return false
}

// CardInHand returns the held instance with the given ID.
func (t *TeamState) CardInHand(instanceID string) (CardInstance, bool) {
	for _, c := range t.Hand {
		if c.InstanceID == instanceID {
			return c, true
		}
	}
	return CardInstance{}, false
}

// PullCard removes the held instance with the given ID, returning
// false if it was not in the hand.
func (t *TeamState) PullCard(instanceID string) bool {
	for i, c := range t.Hand {
		if c.InstanceID == instanceID {
			t.Hand = append(t.Hand[:i], t.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// CurseByID returns a pointer into ActiveCurses, valid until the slice
// is next modified.
func (t *TeamState) CurseByID(id string) (*Curse, bool) {
	for i := range t.ActiveCurses {
		if t.ActiveCurses[i].ID == id {
			return &t.ActiveCurses[i], true
		}
	}
	return nil, false
}

// RemoveCurse deletes the curse with the given ID.
func (t *TeamState) RemoveCurse(id string) bool {
	for i := range t.ActiveCurses {
		if t.ActiveCurses[i].ID == id {
			t.ActiveCurses = append(t.ActiveCurses[:i], t.ActiveCurses[i+1:]...)
			return true
		}
	}
	return false
}

// FirstPending returns the first unacknowledged curse in scan order,
// or nil. Only this curse is surfaced for acknowledgment at a time.
func (t *TeamState) FirstPending() *Curse {
	for i := range t.ActiveCurses {
		if !t.ActiveCurses[i].Acknowledged {
			return &t.ActiveCurses[i]
		}
	}
	return nil
}

// Cursed reports whether any acknowledged curse is in force. A cursed
// team may browse but not deposit, draw, play cards, or complete
// challenges until it clears its curses.
func (t *TeamState) Cursed() bool {
	for _, c := range t.ActiveCurses {
		if c.Acknowledged {
			return true
		}
	}
	return false
}

// Notify appends an informational message for this team to read on its
// next state fetch. Best-effort: there is no delivery guarantee.
func (t *TeamState) Notify(msg string) {
	t.Notifications = append(t.Notifications, msg)
}

// DrainNotifications returns and clears the pending messages.
func (t *TeamState) DrainNotifications() []string {
	msgs := t.Notifications
	t.Notifications = []string{}
	return msgs
}

// Winner is the outcome of the zone scoring rule.
type Winner string

const (
	WinnerOrange Winner = "orange"
	WinnerPink   Winner = "pink"
	WinnerTie    Winner = "tie"
)

// ZoneWinner applies the scoring rule for a 1-indexed zone: the team
// with strictly more banked points wins it, equal values tie.
func ZoneWinner(orange, pink *TeamState, zone int) Winner {
	o, p := orange.Zones[zone-1], pink.Zones[zone-1]
	switch {
	case o > p:
		return WinnerOrange
	case p > o:
		return WinnerPink
	}
	return WinnerTie
}

// NewID returns a random 128-bit hex identifier.
func NewID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (t Team) DisplayName() string {
	switch t {
	case TeamOrange:
		return "Orange"
	case TeamPink:
		return "Pink"
	}
	return string(t)
}

func (t Team) String() string { return string(t) }
