package server

import (
	"errors"

	"github.com/huntbase/zonehunt/internal/game"
)

var (
	errPendingCurse = errors.New("a curse is awaiting acknowledgment")
	errTeamCursed   = errors.New("your team is cursed; clear your curses first")
)

// guardActive rejects normal actions while a curse demands attention:
// an unacknowledged curse blocks everything until acknowledged, and an
// acknowledged one suspends deposits, draws, card plays, and challenge
// completions until cleared. Reading the map is always allowed.
func guardActive(t *game.TeamState) error {
	if err := guardPending(t); err != nil {
		return err
	}
	if t.Cursed() {
		return errTeamCursed
	}
	return nil
}

// guardPending rejects only the unacknowledged-curse case. Answering
// an already-active trivia and clearing an acknowledged curse remain
// possible while cursed, but not while a new curse awaits its ack.
func guardPending(t *game.TeamState) error {
	if t.FirstPending() != nil {
		return errPendingCurse
	}
	return nil
}
