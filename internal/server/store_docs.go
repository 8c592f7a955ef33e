package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/huntbase/zonehunt/internal/game"
)

// DocStore implements Store with team documents held as JSONB rows,
// one row per (game, team). All multi-field commits run inside a
// transaction so a deposit can never debit the balance without
// crediting the zone.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(ctx context.Context, db *sql.DB) (*DocStore, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS teams (
			game_id TEXT NOT NULL,
			team    TEXT NOT NULL,
			data    JSONB NOT NULL,
			PRIMARY KEY (game_id, team)
		)`,
		`CREATE TABLE IF NOT EXISTS admin_sessions (
			id         TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}
	return &DocStore{db: db}, nil
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func (s *DocStore) EnsureGame(ctx context.Context, gameID string) error {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE game_id = ?`, gameID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, team := range []game.Team{game.TeamOrange, game.TeamPink} {
		data, err := json.Marshal(game.NewTeamState())
		if err != nil {
			return err
		}
		// OR IGNORE tolerates two devices bootstrapping the same game
		// at once; the first writer wins.
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO teams (game_id, team, data) VALUES (?, ?, jsonb(?))`,
			gameID, string(team), string(data),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *DocStore) TeamState(ctx context.Context, gameID string, team game.Team) (game.TeamState, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM teams WHERE game_id = ? AND team = ?`,
		gameID, string(team),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return game.TeamState{}, ErrNotFound
	}
	if err != nil {
		return game.TeamState{}, err
	}
	var t game.TeamState
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return game.TeamState{}, err
	}
	return t, nil
}

func (s *DocStore) GameView(ctx context.Context, gameID string) (game.TeamState, game.TeamState, error) {
	orange, err := s.TeamState(ctx, gameID, game.TeamOrange)
	if err != nil {
		return game.TeamState{}, game.TeamState{}, err
	}
	pink, err := s.TeamState(ctx, gameID, game.TeamPink)
	if err != nil {
		return game.TeamState{}, game.TeamState{}, err
	}
	return orange, pink, nil
}

func (s *DocStore) UpdateTeam(ctx context.Context, gameID string, team game.Team, fn func(*game.TeamState) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t, err := loadTeam(ctx, tx, gameID, team)
	if err != nil {
		return err
	}
	if err := fn(&t); err != nil {
		return err
	}
	if err := saveTeam(ctx, tx, gameID, team, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *DocStore) UpdateTeams(ctx context.Context, gameID string, fn func(orange, pink *game.TeamState) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orange, err := loadTeam(ctx, tx, gameID, game.TeamOrange)
	if err != nil {
		return err
	}
	pink, err := loadTeam(ctx, tx, gameID, game.TeamPink)
	if err != nil {
		return err
	}
	if err := fn(&orange, &pink); err != nil {
		return err
	}
	if err := saveTeam(ctx, tx, gameID, game.TeamOrange, orange); err != nil {
		return err
	}
	if err := saveTeam(ctx, tx, gameID, game.TeamPink, pink); err != nil {
		return err
	}
	return tx.Commit()
}

func loadTeam(ctx context.Context, tx *sql.Tx, gameID string, team game.Team) (game.TeamState, error) {
	var data string
	err := tx.QueryRowContext(ctx,
		`SELECT json(data) FROM teams WHERE game_id = ? AND team = ?`,
		gameID, string(team),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return game.TeamState{}, ErrNotFound
	}
	if err != nil {
		return game.TeamState{}, err
	}
	var t game.TeamState
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return game.TeamState{}, err
	}
	return t, nil
}

func saveTeam(ctx context.Context, tx *sql.Tx, gameID string, team game.Team, t game.TeamState) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE teams SET data = jsonb(?) WHERE game_id = ? AND team = ?`,
		string(data), gameID, string(team),
	)
	return err
}

func (s *DocStore) ListGames(ctx context.Context) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, team, json(data) FROM teams ORDER BY game_id, team`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byGame := map[string]*GameSummary{}
	for rows.Next() {
		var gameID, team, data string
		if err := rows.Scan(&gameID, &team, &data); err != nil {
			return nil, err
		}
		var t game.TeamState
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, err
		}
		g := byGame[gameID]
		if g == nil {
			g = &GameSummary{GameID: gameID}
			byGame[gameID] = g
		}
		banked := 0
		for _, z := range t.Zones {
			banked += z
		}
		switch game.Team(team) {
		case game.TeamOrange:
			g.OrangeBalance, g.OrangeBanked = t.Balance, banked
		case game.TeamPink:
			g.PinkBalance, g.PinkBanked = t.Balance, banked
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	games := make([]GameSummary, 0, len(byGame))
	for _, g := range byGame {
		games = append(games, *g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameID < games[j].GameID })
	return games, nil
}

func (s *DocStore) DeleteGame(ctx context.Context, gameID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM teams WHERE game_id = ?`, gameID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocStore) PutAdminSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO admin_sessions (id, created_at) VALUES (?, ?)`,
		id, nowUTC(),
	)
	return err
}

func (s *DocStore) HasAdminSession(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM admin_sessions WHERE id = ?`, id,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *DocStore) DeleteAdminSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id)
	return err
}

// Ensure DocStore implements Store at compile time.
var _ Store = (*DocStore)(nil)
