package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/huntbase/zonehunt/internal/game"
	"github.com/huntbase/zonehunt/internal/session"
)

type ChallengeRequest struct {
	// Text is the clicked map popup's content; it is matched against
	// challenge titles by substring containment.
	Text string `json:"text"`
}

type ChallengePreview struct {
	Mode      ModeView      `json:"mode"`
	Challenge ChallengeView `json:"challenge"`
	Reward    int           `json:"reward"`
	GoldRush  bool          `json:"goldRush"`
}

type ChallengeResponse struct {
	Title    string `json:"title"`
	Reward   int    `json:"reward"`
	Balance  int    `json:"balance"`
	GoldRush bool   `json:"goldRushConsumed"`
}

// handleChallenge resolves a clicked challenge marker and opens the
// completion confirmation dialog.
func handleChallenge(store Store, sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req ChallengeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		t, err := store.TeamState(r.Context(), sess.GameID, sess.Team)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := guardActive(&t); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}

		ch, ok := game.MatchChallenge(req.Text, &t)
		if !ok {
			writeError(w, http.StatusNotFound, "no open challenge matches")
			return
		}

		reward := ch.Points
		if t.GoldRushActive {
			reward = ch.Points * 3 / 2
		}

		mode := session.ConfirmingChallenge{ChallengeID: ch.ID}
		sess.SetMode(mode)

		writeJSON(w, http.StatusOK, ChallengePreview{
			Mode:      modeView(mode),
			Challenge: challengeView(ch),
			Reward:    reward,
			GoldRush:  t.GoldRushActive,
		})
	}
}

// handleChallengeConfirm commits the completion: the reward credit,
// the completed-set entry, and any gold rush consumption land in one
// commit.
func handleChallengeConfirm(store Store, sessions *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		mode, ok := sess.Mode().(session.ConfirmingChallenge)
		if !ok {
			writeError(w, http.StatusConflict, "no challenge awaiting confirmation")
			return
		}
		ch, ok := game.ChallengeByID(mode.ChallengeID)
		if !ok {
			sess.Reset()
			writeError(w, http.StatusNotFound, "unknown challenge")
			return
		}

		var (
			reward   int
			balance  int
			goldRush bool
		)
		err = store.UpdateTeam(r.Context(), sess.GameID, sess.Team, func(t *game.TeamState) error {
			if err := guardActive(t); err != nil {
				return err
			}
			goldRush = t.GoldRushActive
			var err error
			reward, err = game.CompleteChallenge(t, ch)
			if err != nil {
				return err
			}
			balance = t.Balance
			return nil
		})
		switch {
		case errors.Is(err, errPendingCurse), errors.Is(err, errTeamCursed),
			errors.Is(err, game.ErrAlreadyCompleted):
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			writeStoreError(w, err)
			return
		}

		sess.Reset()
		broker.Publish(sess.GameID, sess.Team, Event{
			Type:    "challenge_completed",
			Amount:  reward,
			Message: ch.Title,
		})

		writeJSON(w, http.StatusOK, ChallengeResponse{
			Title:    ch.Title,
			Reward:   reward,
			Balance:  balance,
			GoldRush: goldRush,
		})
	}
}
