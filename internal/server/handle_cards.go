package server

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/huntbase/zonehunt/internal/game"
	"github.com/huntbase/zonehunt/internal/session"
)

type DrawResponse struct {
	Card    CardView `json:"card"`
	Balance int      `json:"balance"`
}

// handleCardDraw commits a card draw: the debit, the new hand entry,
// and the drawn-card record land in one commit.
func handleCardDraw(store Store, sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var (
			inst    game.CardInstance
			balance int
		)
		err = store.UpdateTeam(r.Context(), sess.GameID, sess.Team, func(t *game.TeamState) error {
			if err := guardActive(t); err != nil {
				return err
			}
			var err error
			inst, _, err = game.Draw(t, rand.IntN)
			if err != nil {
				return err
			}
			balance = t.Balance
			return nil
		})
		switch {
		case errors.Is(err, errPendingCurse), errors.Is(err, errTeamCursed),
			errors.Is(err, game.ErrGoldRushPending),
			errors.Is(err, game.ErrDeckExhausted),
			errors.Is(err, game.ErrInsufficientBalance):
			writeError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			writeStoreError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, DrawResponse{
			Card:    cardView(inst),
			Balance: balance,
		})
	}
}

type CardUseRequest struct {
	InstanceID string `json:"instanceId"`
}

type CardUsePreview struct {
	Mode ModeView `json:"mode"`
	Card CardView `json:"card"`
}

// handleCardUse opens the play-confirmation dialog for a hand card.
// Advantage cards are never played from the hand; they act on draw.
func handleCardUse(store Store, sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req CardUseRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
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

		inst, ok := t.CardInHand(req.InstanceID)
		if !ok {
			writeError(w, http.StatusNotFound, game.ErrNotInHand.Error())
			return
		}
		card, ok := game.CardByID(inst.CardID)
		if !ok || card.Kind == game.KindAdvantage {
			writeError(w, http.StatusConflict, game.ErrCardNotPlayable.Error())
			return
		}

		mode := session.ConfirmingCardUse{InstanceID: inst.InstanceID}
		sess.SetMode(mode)

		writeJSON(w, http.StatusOK, CardUsePreview{
			Mode: modeView(mode),
			Card: cardView(inst),
		})
	}
}

type CardConfirmRequest struct {
	// Wager is required for trivia cards and ignored otherwise.
	Wager int `json:"wager,omitempty"`
}

type CursePlayedResponse struct {
	Curse game.Curse `json:"curse"`
}

// handleCardConfirm advances the card-use dialog. Plain curses commit
// immediately, input curses move to the value prompt, trivia cards
// debit the wager and move to the answer prompt.
func handleCardConfirm(store Store, sessions *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		mode, ok := sess.Mode().(session.ConfirmingCardUse)
		if !ok {
			writeError(w, http.StatusConflict, "no card awaiting confirmation")
			return
		}

		var req CardConfirmRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		t, err := store.TeamState(r.Context(), sess.GameID, sess.Team)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		inst, ok := t.CardInHand(mode.InstanceID)
		if !ok {
			sess.Reset()
			writeError(w, http.StatusConflict, game.ErrNotInHand.Error())
			return
		}
		card, _ := game.CardByID(inst.CardID)

		switch card.Kind {
		case game.KindCurse:
			var curse game.Curse
			err = store.UpdateTeams(r.Context(), sess.GameID, func(orange, pink *game.TeamState) error {
				player, victim := orange, pink
				if sess.Team == game.TeamPink {
					player, victim = pink, orange
				}
				if err := guardActive(player); err != nil {
					return err
				}
				var err error
				curse, err = game.PlayCurse(player, victim, mode.InstanceID, 0)
				return err
			})
			if errors.Is(err, errPendingCurse) || errors.Is(err, errTeamCursed) ||
				errors.Is(err, game.ErrNotInHand) || errors.Is(err, game.ErrCardNotPlayable) {
				sess.Reset()
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			if err != nil {
				writeStoreError(w, err)
				return
			}
			sess.Reset()
			broker.Publish(sess.GameID, sess.Team.Opponent(), Event{
				Type:    "cursed",
				Message: curse.Title,
			})
			writeJSON(w, http.StatusOK, CursePlayedResponse{Curse: curse})

		case game.KindCurseWithInput:
			next := session.AwaitingCurseInput{InstanceID: mode.InstanceID}
			sess.SetMode(next)
			writeJSON(w, http.StatusOK, CardUsePreview{
				Mode: modeView(next),
				Card: cardView(inst),
			})

		case game.KindRiskyTrivia, game.KindRiskyTriviaMC:
			wager := req.Wager
			err = store.UpdateTeam(r.Context(), sess.GameID, sess.Team, func(t *game.TeamState) error {
				if err := guardActive(t); err != nil {
					return err
				}
				return game.PlaceWager(t, wager)
			})
			if errors.Is(err, errPendingCurse) || errors.Is(err, errTeamCursed) {
				sess.Reset()
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			if errors.Is(err, game.ErrInvalidWager) || errors.Is(err, game.ErrInsufficientBalance) {
				writeError(w, http.StatusBadRequest, game.ErrInvalidWager.Error())
				return
			}
			if err != nil {
				writeStoreError(w, err)
				return
			}
			next := session.TriviaActive{InstanceID: mode.InstanceID, Wager: wager}
			sess.SetMode(next)
			writeJSON(w, http.StatusOK, CardUsePreview{
				Mode: modeView(next),
				Card: cardView(inst),
			})

		default:
			sess.Reset()
			writeError(w, http.StatusConflict, game.ErrCardNotPlayable.Error())
		}
	}
}

type CardInputRequest struct {
	Value int `json:"value"`
}

// handleCardInput commits an input-parameterized curse with the
// supplied measurement value.
func handleCardInput(store Store, sessions *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		mode, ok := sess.Mode().(session.AwaitingCurseInput)
		if !ok {
			writeError(w, http.StatusConflict, "no curse awaiting a value")
			return
		}

		var req CardInputRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var curse game.Curse
		err = store.UpdateTeams(r.Context(), sess.GameID, func(orange, pink *game.TeamState) error {
			player, victim := orange, pink
			if sess.Team == game.TeamPink {
				player, victim = pink, orange
			}
			if err := guardActive(player); err != nil {
				return err
			}
			var err error
			curse, err = game.PlayCurse(player, victim, mode.InstanceID, req.Value)
			return err
		})
		switch {
		case errors.Is(err, errPendingCurse), errors.Is(err, errTeamCursed):
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		case errors.Is(err, game.ErrValueOutOfRange):
			// Keep the prompt open so the client can retry.
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, game.ErrNotInHand), errors.Is(err, game.ErrCardNotPlayable):
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			writeStoreError(w, err)
			return
		}

		sess.Reset()
		broker.Publish(sess.GameID, sess.Team.Opponent(), Event{
			Type:    "cursed",
			Message: curse.Title,
		})
		writeJSON(w, http.StatusOK, CursePlayedResponse{Curse: curse})
	}
}

type CardAnswerRequest struct {
	Answer string `json:"answer"`
}

type CardAnswerResponse struct {
	Correct bool   `json:"correct"`
	Payout  int    `json:"payout"`
	Balance int    `json:"balance"`
	Answer  string `json:"answer,omitempty"`
}

// handleCardAnswer resolves an active trivia card. The wager was
// debited at confirmation time; a correct answer pays it back
// quadrupled. The card leaves the hand either way, and the correct
// answer is revealed on a miss.
func handleCardAnswer(store Store, sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		mode, ok := sess.Mode().(session.TriviaActive)
		if !ok {
			writeError(w, http.StatusConflict, "no trivia awaiting an answer")
			return
		}

		var req CardAnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var (
			correct bool
			payout  int
			balance int
			cardID  string
		)
		err = store.UpdateTeam(r.Context(), sess.GameID, sess.Team, func(t *game.TeamState) error {
			if err := guardPending(t); err != nil {
				return err
			}
			inst, ok := t.CardInHand(mode.InstanceID)
			if !ok {
				return game.ErrNotInHand
			}
			cardID = inst.CardID
			var err error
			correct, payout, err = game.ResolveTrivia(t, mode.InstanceID, mode.Wager, req.Answer)
			if err != nil {
				return err
			}
			balance = t.Balance
			return nil
		})
		if errors.Is(err, errPendingCurse) {
			// The trivia stays open; the team can answer after acking.
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, game.ErrNotInHand) {
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeStoreError(w, err)
			return
		}

		sess.Reset()

		resp := CardAnswerResponse{
			Correct: correct,
			Payout:  payout,
			Balance: balance,
		}
		if !correct {
			if card, ok := game.CardByID(cardID); ok {
				resp.Answer = card.RevealAnswer()
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
