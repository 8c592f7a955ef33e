package server

import (
	"net/http"
	"strings"

	"github.com/huntbase/zonehunt/internal/game"
	"github.com/huntbase/zonehunt/internal/session"
)

type JoinRequest struct {
	GameID string `json:"gameId"`
	Team   string `json:"team"`
}

type JoinResponse struct {
	Token   string `json:"token"`
	Team    string `json:"team"`
	Balance int    `json:"balance"`
}

// handleJoin admits a client into a game: the game ID is the only
// credential. The first join of a new game ID seeds both team
// documents.
func handleJoin(store Store, sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.GameID = strings.TrimSpace(req.GameID)
		if req.GameID == "" {
			writeError(w, http.StatusBadRequest, "gameId is required")
			return
		}
		team, err := game.ParseTeam(strings.ToLower(strings.TrimSpace(req.Team)))
		if err != nil {
			writeError(w, http.StatusBadRequest, "team must be orange or pink")
			return
		}

		if err := store.EnsureGame(r.Context(), req.GameID); err != nil {
			writeStoreError(w, err)
			return
		}

		t, err := store.TeamState(r.Context(), req.GameID, team)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		sess := sessions.Create(req.GameID, team)

		writeJSON(w, http.StatusOK, JoinResponse{
			Token:   sess.Token,
			Team:    string(team),
			Balance: t.Balance,
		})
	}
}
