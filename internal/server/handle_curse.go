package server

import (
	"errors"
	"net/http"

	"github.com/huntbase/zonehunt/internal/game"
	"github.com/huntbase/zonehunt/internal/session"
)

type CurseAckResponse struct {
	Curse   game.Curse `json:"curse"`
	Cleared bool       `json:"cleared"`
}

// handleCurseAck acknowledges the first pending curse. Auto-clear
// curses are removed in the same commit and the other team is told.
func handleCurseAck(store Store, sessions *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var (
			curse   game.Curse
			cleared bool
		)
		err = store.UpdateTeams(r.Context(), sess.GameID, func(orange, pink *game.TeamState) error {
			cursed, other := orange, pink
			if sess.Team == game.TeamPink {
				cursed, other = pink, orange
			}
			var err error
			curse, cleared, err = game.AcknowledgeCurse(cursed, other)
			return err
		})
		if errors.Is(err, game.ErrNoPendingCurse) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeStoreError(w, err)
			return
		}

		if cleared {
			broker.Publish(sess.GameID, sess.Team.Opponent(), Event{
				Type:    "curse_cleared",
				Message: curse.Title,
			})
		}
		writeJSON(w, http.StatusOK, CurseAckResponse{Curse: curse, Cleared: cleared})
	}
}

type CurseClearRequest struct {
	CurseID string `json:"curseId"`
}

type CurseClearPreview struct {
	Mode  ModeView   `json:"mode"`
	Curse game.Curse `json:"curse"`
}

// handleCurseClear opens the clear-confirmation dialog for an
// acknowledged curse.
func handleCurseClear(store Store, sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req CurseClearRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		t, err := store.TeamState(r.Context(), sess.GameID, sess.Team)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := guardPending(&t); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		c, ok := t.CurseByID(req.CurseID)
		if !ok {
			writeError(w, http.StatusNotFound, game.ErrCurseNotFound.Error())
			return
		}
		if !c.Acknowledged {
			writeError(w, http.StatusConflict, game.ErrCurseNotAcked.Error())
			return
		}

		mode := session.ConfirmingClear{CurseID: c.ID}
		sess.SetMode(mode)

		writeJSON(w, http.StatusOK, CurseClearPreview{
			Mode:  modeView(mode),
			Curse: *c,
		})
	}
}

type CurseClearResponse struct {
	Curse game.Curse `json:"curse"`
}

// handleCurseClearConfirm commits the clear: the curse is removed and
// the team that placed it is notified, in one commit.
func handleCurseClearConfirm(store Store, sessions *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		mode, ok := sess.Mode().(session.ConfirmingClear)
		if !ok {
			writeError(w, http.StatusConflict, "no curse awaiting clear confirmation")
			return
		}

		var curse game.Curse
		err = store.UpdateTeams(r.Context(), sess.GameID, func(orange, pink *game.TeamState) error {
			cursed, other := orange, pink
			if sess.Team == game.TeamPink {
				cursed, other = pink, orange
			}
			if err := guardPending(cursed); err != nil {
				return err
			}
			var err error
			curse, err = game.ClearCurse(cursed, other, mode.CurseID)
			return err
		})
		switch {
		case errors.Is(err, errPendingCurse):
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		case errors.Is(err, game.ErrCurseNotFound):
			sess.Reset()
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, game.ErrCurseNotAcked):
			sess.Reset()
			writeError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			writeStoreError(w, err)
			return
		}

		sess.Reset()
		broker.Publish(sess.GameID, sess.Team.Opponent(), Event{
			Type:    "curse_cleared",
			Message: curse.Title,
		})
		writeJSON(w, http.StatusOK, CurseClearResponse{Curse: curse})
	}
}
