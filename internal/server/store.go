package server

import (
	"context"
	"errors"

	"github.com/huntbase/zonehunt/internal/game"
)

var ErrNotFound = errors.New("not found")

// GameSummary is the admin view of one game.
type GameSummary struct {
	GameID        string `json:"gameId"`
	OrangeBalance int    `json:"orangeBalance"`
	PinkBalance   int    `json:"pinkBalance"`
	OrangeBanked  int    `json:"orangeBanked"`
	PinkBanked    int    `json:"pinkBanked"`
}

// Store is the shared game document store. Each game holds exactly
// two team documents, keyed by team color. Every Update* call is a
// single atomic commit: the closure sees the current document(s) and
// either all its changes land or none do.
type Store interface {
	// EnsureGame seeds both team documents for a new game ID and is a
	// no-op for an existing one.
	EnsureGame(ctx context.Context, gameID string) error

	// TeamState finds one team document.
	TeamState(ctx context.Context, gameID string, team game.Team) (game.TeamState, error)

	// GameView finds both team documents.
	GameView(ctx context.Context, gameID string) (orange, pink game.TeamState, err error)

	// UpdateTeam commits a read-modify-write of one team document. A
	// closure error aborts the commit and is returned unchanged.
	UpdateTeam(ctx context.Context, gameID string, team game.Team, fn func(*game.TeamState) error) error

	// UpdateTeams commits a read-modify-write spanning both documents,
	// for cross-team effects such as placing or clearing a curse.
	UpdateTeams(ctx context.Context, gameID string, fn func(orange, pink *game.TeamState) error) error

	// Admin surface.
	ListGames(ctx context.Context) ([]GameSummary, error)
	DeleteGame(ctx context.Context, gameID string) error
	PutAdminSession(ctx context.Context, id string) error
	HasAdminSession(ctx context.Context, id string) (bool, error)
	DeleteAdminSession(ctx context.Context, id string) error
}
