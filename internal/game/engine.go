package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrGoldRushPending  = errors.New("a gold rush bonus is pending; complete a challenge first")
	ErrDeckExhausted    = errors.New("no undrawn cards remain")
	ErrNotInHand        = errors.New("card is not in hand")
	ErrCardNotPlayable  = errors.New("card cannot be played from the hand")
	ErrAlreadyCompleted = errors.New("challenge already completed")
	ErrNoPendingCurse   = errors.New("no curse awaiting acknowledgment")
	ErrCurseNotFound    = errors.New("no such active curse")
	ErrCurseNotAcked    = errors.New("curse has not been acknowledged")
	ErrValueOutOfRange  = errors.New("value outside the card's allowed range")
	ErrInvalidWager     = errors.New("wager must be between 1 and the current balance")
)

// UndrawnCards returns the catalog entries the team has never drawn,
// in catalog order.
func UndrawnCards(t *TeamState) []Card {
	var out []Card
	for _, c := range Deck {
		if !t.HasDrawn(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Draw commits a card draw against t: debit DrawCost, push a fresh
// instance of a randomly chosen undrawn card, record its ID so it can
// never be drawn again by this team. Advantage cards activate the gold
// rush immediately instead of waiting in the hand. intn supplies the
// random pick so tests can pin it.
func Draw(t *TeamState, intn func(int) int) (CardInstance, Card, error) {
	if t.GoldRushActive {
		return CardInstance{}, Card{}, ErrGoldRushPending
	}
	undrawn := UndrawnCards(t)
	if len(undrawn) == 0 {
		return CardInstance{}, Card{}, ErrDeckExhausted
	}
	if err := t.Debit(DrawCost); err != nil {
		return CardInstance{}, Card{}, err
	}

	card := undrawn[intn(len(undrawn))]
	inst := CardInstance{InstanceID: NewID(), CardID: card.ID}
	t.Hand = append(t.Hand, inst)
	t.DrawnCards = append(t.DrawnCards, card.ID)
	if card.Kind == KindAdvantage {
		t.GoldRushActive = true
	}
	return inst, card, nil
}

// CompleteChallenge commits a challenge completion: credit the reward,
// add the title to the completed set, and consume a pending gold rush.
// The reward is floor(points × 1.5) while a gold rush is active.
// Duplicate completions are rejected rather than paid twice.
func CompleteChallenge(t *TeamState, ch Challenge) (int, error) {
	if t.Completed(ch.Title) {
		return 0, ErrAlreadyCompleted
	}
	reward := ch.Points
	if t.GoldRushActive {
		reward = ch.Points * 3 / 2
	}
	t.Credit(reward)
	t.AddCompleted(ch.Title)
	if t.GoldRushActive {
		t.GoldRushActive = false
		for _, inst := range t.Hand {
			if c, ok := CardByID(inst.CardID); ok && c.Kind == KindAdvantage {
				t.PullCard(inst.InstanceID)
				break
			}
		}
	}
	return reward, nil
}

// PlayCurse commits a curse card: push a pending curse instance onto
// the victim and pull the card from the player's hand. For
// curse_with_input kinds, value must lie within the card's input bounds
// and is baked into the curse description as well as carried on the
// Value field. Both documents change in the same commit.
func PlayCurse(player, victim *TeamState, instanceID string, value int) (Curse, error) {
	inst, ok := player.CardInHand(instanceID)
	if !ok {
		return Curse{}, ErrNotInHand
	}
	card, ok := CardByID(inst.CardID)
	if !ok {
		return Curse{}, ErrNotInHand
	}

	curse := Curse{
		ID:          NewID(),
		Title:       card.Title,
		Description: card.Description,
		Link:        card.Link,
		AutoClear:   card.AutoClear,
	}

	switch card.Kind {
	case KindCurse:
	case KindCurseWithInput:
		if value < card.Input.Min || value > card.Input.Max {
			return Curse{}, ErrValueOutOfRange
		}
		curse.Value = value
		curse.Description = fmt.Sprintf("%s Target to beat: %d %s.", card.Description, value, card.Input.Unit)
	default:
		return Curse{}, ErrCardNotPlayable
	}

	victim.ActiveCurses = append(victim.ActiveCurses, curse)
	player.PullCard(inst.InstanceID)
	return curse, nil
}

// PlaceWager commits the stake for a trivia card: the wager is debited
// immediately and only comes back, quadrupled, on a correct answer.
func PlaceWager(t *TeamState, wager int) error {
	if wager < 1 || wager > t.Balance {
		return ErrInvalidWager
	}
	return t.Debit(wager)
}

// CorrectAnswer reports whether answer satisfies the card's question:
// within tolerance for numeric trivia, exact option match for multiple
// choice.
func CorrectAnswer(card Card, answer string) bool {
	switch card.Kind {
	case KindRiskyTrivia:
		v, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			return false
		}
		diff := v - card.Numeric
		if diff < 0 {
			diff = -diff
		}
		return diff <= card.Tolerance
	case KindRiskyTriviaMC:
		return answer == card.Answer
	}
	return false
}

// ResolveTrivia commits the outcome of an active trivia card: a
// correct answer credits wager × TriviaPayout, an incorrect one
// credits nothing (the wager is already gone). Either way the card
// leaves the hand.
func ResolveTrivia(t *TeamState, instanceID string, wager int, answer string) (correct bool, payout int, err error) {
	inst, ok := t.CardInHand(instanceID)
	if !ok {
		return false, 0, ErrNotInHand
	}
	card, ok := CardByID(inst.CardID)
	if !ok {
		return false, 0, ErrNotInHand
	}

	correct = CorrectAnswer(card, answer)
	if correct {
		payout = wager * TriviaPayout
		t.Credit(payout)
	}
	t.PullCard(inst.InstanceID)
	return correct, payout, nil
}

// AcknowledgeCurse commits acknowledgment of the cursed team's first
// pending curse. Auto-clear curses are removed in the same commit and
// the cursing team is notified; otherwise the curse stays in force
// until explicitly cleared. Returns the curse and whether it cleared.
func AcknowledgeCurse(cursed, other *TeamState) (Curse, bool, error) {
	c := cursed.FirstPending()
	if c == nil {
		return Curse{}, false, ErrNoPendingCurse
	}
	c.Acknowledged = true
	ack := *c
	if ack.AutoClear {
		cursed.RemoveCurse(ack.ID)
		other.Notify(fmt.Sprintf("%q has been completed by the other team.", ack.Title))
		return ack, true, nil
	}
	return ack, false, nil
}

// ClearCurse commits removal of an acknowledged curse and notifies the
// team that placed it.
func ClearCurse(cursed, other *TeamState, curseID string) (Curse, error) {
	c, ok := cursed.CurseByID(curseID)
	if !ok {
		return Curse{}, ErrCurseNotFound
	}
	if !c.Acknowledged {
		return Curse{}, ErrCurseNotAcked
	}
	cleared := *c
	cursed.RemoveCurse(cleared.ID)
	other.Notify(fmt.Sprintf("%q has been cleared by the other team.", cleared.Title))
	return cleared, nil
}
