package server

import (
	"net/http"

	"github.com/huntbase/zonehunt/internal/game"
	"github.com/huntbase/zonehunt/internal/geo"
	"github.com/huntbase/zonehunt/internal/session"
)

type ZoneScore struct {
	Zone   int    `json:"zone"`
	Orange int    `json:"orange"`
	Pink   int    `json:"pink"`
	Winner string `json:"winner"`
}

type ChallengeView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Zone        int     `json:"zone"`
	Points      int     `json:"points"`
	Description string  `json:"description"`
	Link        string  `json:"link,omitempty"`
}

// CardView is a hand card as shown to its holder. Trivia answers stay
// server-side.
type CardView struct {
	InstanceID  string          `json:"instanceId"`
	CardID      string          `json:"cardId"`
	Title       string          `json:"title"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Link        string          `json:"link,omitempty"`
	Question    string          `json:"question,omitempty"`
	Options     []string        `json:"options,omitempty"`
	Input       *game.InputSpec `json:"input,omitempty"`
	Playable    bool            `json:"playable"`
}

// ModeView is the wire form of the session's dialog state.
type ModeView struct {
	Name        string `json:"name"`
	Amount      int    `json:"amount,omitempty"`
	Zone        int    `json:"zone,omitempty"`
	ChallengeID string `json:"challengeId,omitempty"`
	InstanceID  string `json:"instanceId,omitempty"`
	Wager       int    `json:"wager,omitempty"`
	CurseID     string `json:"curseId,omitempty"`
}

type StateResponse struct {
	Team           string          `json:"team"`
	Balance        int             `json:"balance"`
	GoldRushActive bool            `json:"goldRushActive"`
	Zones          []ZoneScore     `json:"zones"`
	Challenges     []ChallengeView `json:"challenges"`
	Hand           []CardView      `json:"hand"`
	DrawnCount     int             `json:"drawnCount"`
	DeckRemaining  int             `json:"deckRemaining"`
	Curses         []game.Curse    `json:"curses"`
	PendingCurse   *game.Curse     `json:"pendingCurse,omitempty"`
	Notifications  []string        `json:"notifications"`
	NearestZone    *int            `json:"nearestZone,omitempty"`
	Mode           ModeView        `json:"mode"`
}

func challengeView(c game.Challenge) ChallengeView {
	return ChallengeView{
		ID:          c.ID,
		Title:       c.Title,
		Location:    c.Location,
		Lat:         c.Lat,
		Lng:         c.Lng,
		Zone:        c.Zone,
		Points:      c.Points,
		Description: c.Description,
		Link:        c.Link,
	}
}

func cardView(inst game.CardInstance) CardView {
	v := CardView{
		InstanceID: inst.InstanceID,
		CardID:     inst.CardID,
	}
	card, ok := game.CardByID(inst.CardID)
	if !ok {
		return v
	}
	v.Title = card.Title
	v.Kind = string(card.Kind)
	v.Description = card.Description
	v.Link = card.Link
	v.Question = card.Question
	v.Options = card.Options
	v.Input = card.Input
	v.Playable = card.Kind != game.KindAdvantage
	return v
}

func modeView(m session.Mode) ModeView {
	v := ModeView{Name: m.Name()}
	switch m := m.(type) {
	case session.ConfirmingDeposit:
		v.Amount, v.Zone = m.Amount, m.Zone
	case session.ConfirmingChallenge:
		v.ChallengeID = m.ChallengeID
	case session.ConfirmingCardUse:
		v.InstanceID = m.InstanceID
	case session.AwaitingCurseInput:
		v.InstanceID = m.InstanceID
	case session.TriviaActive:
		v.InstanceID, v.Wager = m.InstanceID, m.Wager
	case session.ConfirmingClear:
		v.CurseID = m.CurseID
	}
	return v
}

// handleState returns the full view a map client renders: both teams'
// zone scores, the caller's balance, hand, curses, and open dialog.
// Pending notifications from the other team are drained by this read.
func handleState(store Store, sessions *session.Registry, locator *geo.Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		orange, pink, err := store.GameView(r.Context(), sess.GameID)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		own := &orange
		if sess.Team == game.TeamPink {
			own = &pink
		}

		// Drain notifications in their own commit, only when some exist.
		notifications := []string{}
		if len(own.Notifications) > 0 {
			err := store.UpdateTeam(r.Context(), sess.GameID, sess.Team, func(t *game.TeamState) error {
				notifications = t.DrainNotifications()
				return nil
			})
			if err != nil {
				writeStoreError(w, err)
				return
			}
			own.Notifications = []string{}
		}

		zones := make([]ZoneScore, game.NumZones)
		for i := range zones {
			zones[i] = ZoneScore{
				Zone:   i + 1,
				Orange: orange.Zones[i],
				Pink:   pink.Zones[i],
				Winner: string(game.ZoneWinner(&orange, &pink, i+1)),
			}
		}

		challenges := []ChallengeView{}
		for _, c := range game.VisibleChallenges(own) {
			challenges = append(challenges, challengeView(c))
		}

		hand := []CardView{}
		for _, inst := range own.Hand {
			hand = append(hand, cardView(inst))
		}

		var nearest *int
		if lat, lng, ok := sess.Location(); ok {
			if zone, ok := locator.Nearest(geo.Point(lat, lng)); ok {
				nearest = &zone
			}
		}

		resp := StateResponse{
			Team:           string(sess.Team),
			Balance:        own.Balance,
			GoldRushActive: own.GoldRushActive,
			Zones:          zones,
			Challenges:     challenges,
			Hand:           hand,
			DrawnCount:     len(own.DrawnCards),
			DeckRemaining:  len(game.Deck) - len(own.DrawnCards),
			Curses:         own.ActiveCurses,
			PendingCurse:   own.FirstPending(),
			Notifications:  notifications,
			NearestZone:    nearest,
			Mode:           modeView(sess.Mode()),
		}
		if resp.Curses == nil {
			resp.Curses = []game.Curse{}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationResponse struct {
	NearestZone int `json:"nearestZone"`
}

// handleLocation records the client's latest location fix and echoes
// the nearest zone.
func handleLocation(sessions *session.Registry, locator *geo.Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req LocationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
			writeError(w, http.StatusBadRequest, "coordinates out of range")
			return
		}

		sess.SetLocation(req.Lat, req.Lng)

		zone, ok := locator.Nearest(geo.Point(req.Lat, req.Lng))
		if !ok {
			writeError(w, http.StatusInternalServerError, "no zones configured")
			return
		}
		writeJSON(w, http.StatusOK, LocationResponse{NearestZone: zone})
	}
}

// handleCancel abandons whatever confirmation dialog is open.
func handleCancel(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		sess.Reset()
		writeJSON(w, http.StatusOK, map[string]string{"mode": session.Idle{}.Name()})
	}
}
