package server

import (
	"errors"
	"net/http"

	"github.com/huntbase/zonehunt/internal/game"
	"github.com/huntbase/zonehunt/internal/geo"
	"github.com/huntbase/zonehunt/internal/session"
)

type DepositRequest struct {
	Amount int `json:"amount"`
}

type DepositPreview struct {
	Mode         ModeView `json:"mode"`
	Zone         int      `json:"zone"`
	Amount       int      `json:"amount"`
	Balance      int      `json:"balance"`
	BalanceAfter int      `json:"balanceAfter"`
}

type DepositResponse struct {
	Zone    int `json:"zone"`
	Amount  int `json:"amount"`
	Balance int `json:"balance"`
}

// handleDeposit opens the deposit confirmation dialog for the zone
// nearest the client's current fix. Nothing is committed yet.
func handleDeposit(store Store, sessions *session.Registry, locator *geo.Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req DepositRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		lat, lng, ok := sess.Location()
		if !ok {
			writeError(w, http.StatusConflict, "no location fix; enable location services")
			return
		}
		zone, ok := locator.Nearest(geo.Point(lat, lng))
		if !ok {
			writeError(w, http.StatusInternalServerError, "no zones configured")
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
		if req.Amount <= 0 || req.Amount > t.Balance {
			writeError(w, http.StatusBadRequest, "deposit amount must be between 1 and the current balance")
			return
		}

		mode := session.ConfirmingDeposit{Amount: req.Amount, Zone: zone}
		sess.SetMode(mode)

		writeJSON(w, http.StatusOK, DepositPreview{
			Mode:         modeView(mode),
			Zone:         zone,
			Amount:       req.Amount,
			Balance:      t.Balance,
			BalanceAfter: t.Balance - req.Amount,
		})
	}
}

// handleDepositConfirm commits the pending deposit: the balance debit
// and the zone credit land in one commit or not at all.
func handleDepositConfirm(store Store, sessions *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		mode, ok := sess.Mode().(session.ConfirmingDeposit)
		if !ok {
			writeError(w, http.StatusConflict, "no deposit awaiting confirmation")
			return
		}

		var balance int
		err = store.UpdateTeam(r.Context(), sess.GameID, sess.Team, func(t *game.TeamState) error {
			if err := guardActive(t); err != nil {
				return err
			}
			if err := t.Deposit(mode.Zone, mode.Amount); err != nil {
				return err
			}
			balance = t.Balance
			return nil
		})
		switch {
		case errors.Is(err, errPendingCurse), errors.Is(err, errTeamCursed),
			errors.Is(err, game.ErrInsufficientBalance):
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		case errors.Is(err, game.ErrInvalidAmount), errors.Is(err, game.ErrInvalidZone):
			sess.Reset()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			writeStoreError(w, err)
			return
		}

		sess.Reset()
		event := Event{Type: "zone_update", Zone: mode.Zone, Amount: mode.Amount}
		broker.Publish(sess.GameID, sess.Team, event)
		broker.Publish(sess.GameID, sess.Team.Opponent(), event)

		writeJSON(w, http.StatusOK, DepositResponse{
			Zone:    mode.Zone,
			Amount:  mode.Amount,
			Balance: balance,
		})
	}
}
