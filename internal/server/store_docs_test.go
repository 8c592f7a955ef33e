package server

import (
	"context"
	"errors"
	"testing"

	"github.com/huntbase/zonehunt/internal/database"
	"github.com/huntbase/zonehunt/internal/game"
)

func setupStore(t *testing.T) *DocStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewDocStore(ctx, db)
	if err != nil {
		t.Fatalf("init doc store: %v", err)
	}
	return store
}

func TestEnsureGameSeedsBothTeams(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.EnsureGame(ctx, "g1"); err != nil {
		t.Fatalf("ensure game: %v", err)
	}

	orange, pink, err := store.GameView(ctx, "g1")
	if err != nil {
		t.Fatalf("game view: %v", err)
	}
	if orange.Balance != 0 || pink.Balance != 0 {
		t.Errorf("expected zero balances, got %d/%d", orange.Balance, pink.Balance)
	}
	if orange.Hand == nil || orange.CompletedChallenges == nil {
		t.Error("seeded document should have empty, not nil, arrays")
	}
}

func TestEnsureGameIsIdempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.EnsureGame(ctx, "g1"); err != nil {
		t.Fatalf("ensure game: %v", err)
	}
	err := store.UpdateTeam(ctx, "g1", game.TeamOrange, func(ts *game.TeamState) error {
		ts.Credit(500)
		return nil
	})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}

	// A second join must not reset the game.
	if err := store.EnsureGame(ctx, "g1"); err != nil {
		t.Fatalf("ensure game again: %v", err)
	}
	ts, err := store.TeamState(ctx, "g1", game.TeamOrange)
	if err != nil {
		t.Fatalf("team state: %v", err)
	}
	if ts.Balance != 500 {
		t.Errorf("expected balance 500 after re-ensure, got %d", ts.Balance)
	}
}

func TestTeamStateNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.TeamState(context.Background(), "nope", game.TeamOrange)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTeamClosureErrorAbortsCommit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.EnsureGame(ctx, "g1")

	boom := errors.New("boom")
	err := store.UpdateTeam(ctx, "g1", game.TeamPink, func(ts *game.TeamState) error {
		ts.Credit(999)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected closure error back, got %v", err)
	}

	ts, _ := store.TeamState(ctx, "g1", game.TeamPink)
	if ts.Balance != 0 {
		t.Errorf("aborted commit must not persist, balance = %d", ts.Balance)
	}
}

func TestUpdateTeamsSpansBothDocuments(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.EnsureGame(ctx, "g1")

	err := store.UpdateTeams(ctx, "g1", func(orange, pink *game.TeamState) error {
		pink.ActiveCurses = append(pink.ActiveCurses, game.Curse{ID: "c1", Title: "t"})
		orange.Notify("placed")
		return nil
	})
	if err != nil {
		t.Fatalf("update teams: %v", err)
	}

	orange, pink, _ := store.GameView(ctx, "g1")
	if len(pink.ActiveCurses) != 1 {
		t.Errorf("expected 1 curse on pink, got %d", len(pink.ActiveCurses))
	}
	if len(orange.Notifications) != 1 {
		t.Errorf("expected 1 notification on orange, got %d", len(orange.Notifications))
	}
}

func TestUpdateTeamsAbortLeavesBothUntouched(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.EnsureGame(ctx, "g1")

	boom := errors.New("boom")
	store.UpdateTeams(ctx, "g1", func(orange, pink *game.TeamState) error {
		orange.Credit(100)
		pink.Credit(100)
		return boom
	})

	orange, pink, _ := store.GameView(ctx, "g1")
	if orange.Balance != 0 || pink.Balance != 0 {
		t.Errorf("aborted cross-team commit persisted: %d/%d", orange.Balance, pink.Balance)
	}
}

func TestListAndDeleteGames(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.EnsureGame(ctx, "b-game")
	store.EnsureGame(ctx, "a-game")

	store.UpdateTeam(ctx, "a-game", game.TeamOrange, func(ts *game.TeamState) error {
		ts.Credit(300)
		return ts.Deposit(3, 100)
	})

	games, err := store.ListGames(ctx)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].GameID != "a-game" || games[1].GameID != "b-game" {
		t.Errorf("games not sorted by ID: %v", games)
	}
	if games[0].OrangeBalance != 200 || games[0].OrangeBanked != 100 {
		t.Errorf("unexpected summary: %+v", games[0])
	}

	if err := store.DeleteGame(ctx, "a-game"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if err := store.DeleteGame(ctx, "a-game"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestAdminSessions(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ok, err := store.HasAdminSession(ctx, "s1")
	if err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}

	if err := store.PutAdminSession(ctx, "s1"); err != nil {
		t.Fatalf("put session: %v", err)
	}
	ok, err = store.HasAdminSession(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("expected session, got ok=%v err=%v", ok, err)
	}

	if err := store.DeleteAdminSession(ctx, "s1"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	ok, _ = store.HasAdminSession(ctx, "s1")
	if ok {
		t.Error("session should be gone after delete")
	}
}
