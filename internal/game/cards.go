package game

import "strconv"

// CardKind selects the rules a card plays by.
type CardKind string

const (
	// KindCurse afflicts the other team until they clear it.
	KindCurse CardKind = "curse"
	// KindCurseWithInput is a curse parameterized by a measurement the
	// playing team supplies (dollars, rocks, seconds).
	KindCurseWithInput CardKind = "curse_with_input"
	// KindAdvantage boosts the drawing team's next challenge reward. It
	// activates at draw time and is never played from the hand.
	KindAdvantage CardKind = "advantage"
	// KindRiskyTrivia is a wagered numeric-answer question.
	KindRiskyTrivia CardKind = "risky_trivia"
	// KindRiskyTriviaMC is a wagered multiple-choice question.
	KindRiskyTriviaMC CardKind = "risky_trivia_mc"
)

// InputSpec bounds the measurement a curse_with_input card accepts.
type InputSpec struct {
	Unit string `json:"unit"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// Card is a catalog entry. ID is the stable identity used for draw
// bookkeeping; Title is display text and must also be unique across
// the catalog.
type Card struct {
	ID          string
	Title       string
	Kind        CardKind
	Description string
	Link        string
	AutoClear   bool

	// curse_with_input only.
	Input *InputSpec

	// trivia kinds only.
	Question  string
	Answer    string   // exact option for multiple choice
	Numeric   float64  // expected value for numeric trivia
	Tolerance float64  // accepted absolute error for numeric trivia
	Options   []string // multiple choice only
}

// Deck is the full card catalog. Each team may draw each entry at most
// once per game.
var Deck = []Card{
	{
		ID:          "curse-frozen-feet",
		Title:       "Curse of the Frozen Feet",
		Kind:        KindCurse,
		Description: "Your opponents must keep one team member's shoes off while outdoors until they clear this curse.",
	},
	{
		ID:          "curse-tourist-trap",
		Title:       "Curse of the Tourist Trap",
		Kind:        KindCurse,
		Description: "Your opponents must take a posed group photo with a stranger at their next challenge location before doing anything else.",
	},
	{
		ID:          "curse-town-crier",
		Title:       "Curse of the Town Crier",
		Kind:        KindCurse,
		Description: "Your opponents must loudly proclaim their team name and current zone to passersby, right now. Clears once announced.",
		AutoClear:   true,
	},
	{
		ID:          "curse-single-file",
		Title:       "Curse of the Single File",
		Kind:        KindCurse,
		Description: "Your opponents must walk in single file, tallest first, until they clear this curse.",
	},
	{
		ID:          "curse-busker",
		Title:       "Curse of the Busker",
		Kind:        KindCurseWithInput,
		Description: "Name a dollar amount. Your opponents must busk until strangers have given them more than that amount.",
		Input:       &InputSpec{Unit: "dollars", Min: 1, Max: 20},
	},
	{
		ID:          "curse-rock-hound",
		Title:       "Curse of the Rock Hound",
		Kind:        KindCurseWithInput,
		Description: "Name a number of rocks. Your opponents must collect more distinct rocks than that before moving on.",
		Input:       &InputSpec{Unit: "rocks", Min: 5, Max: 50},
	},
	{
		ID:          "curse-living-statue",
		Title:       "Curse of the Living Statue",
		Kind:        KindCurseWithInput,
		Description: "Name a duration in seconds. Your opponents must all hold a statue pose in a public place for longer than that.",
		Input:       &InputSpec{Unit: "seconds", Min: 30, Max: 300},
	},
	{
		ID:          "advantage-gold-rush",
		Title:       "Gold Rush",
		Kind:        KindAdvantage,
		Description: "Your next completed challenge pays out one and a half times its points.",
	},
	{
		ID:          "trivia-peace-tower",
		Title:       "Tall Order",
		Kind:        KindRiskyTrivia,
		Description: "Wager any part of your balance on a question about the city's most famous clock.",
		Question:    "How tall is the Peace Tower, in metres?",
		Numeric:     92,
		Tolerance:   5,
		Link:        "https://en.wikipedia.org/wiki/Peace_Tower",
	},
	{
		ID:          "trivia-canal-length",
		Title:       "Long Way Down",
		Kind:        KindRiskyTrivia,
		Description: "Wager any part of your balance on a question about the Rideau Canal.",
		Question:    "How long is the Rideau Canal, in kilometres?",
		Numeric:     202,
		Tolerance:   10,
		Link:        "https://en.wikipedia.org/wiki/Rideau_Canal",
	},
	{
		ID:          "trivia-capital-year",
		Title:       "Royal Decree",
		Kind:        KindRiskyTriviaMC,
		Description: "Wager any part of your balance on a question of history.",
		Question:    "In what year did Queen Victoria choose Ottawa as the capital?",
		Answer:      "1857",
		Options:     []string{"1841", "1857", "1867", "1901"},
	},
	{
		ID:          "trivia-flame-fountain",
		Title:       "Eternal Flame",
		Kind:        KindRiskyTriviaMC,
		Description: "Wager any part of your balance on a question about Parliament Hill.",
		Question:    "What anniversary of Confederation was the Centennial Flame lit for?",
		Answer:      "100th",
		Options:     []string{"50th", "75th", "100th", "125th"},
	},
}

// RevealAnswer returns the displayable correct answer for a trivia
// card, empty for other kinds.
func (c Card) RevealAnswer() string {
	switch c.Kind {
	case KindRiskyTrivia:
		return strconv.FormatFloat(c.Numeric, 'f', -1, 64)
	case KindRiskyTriviaMC:
		return c.Answer
	}
	return ""
}

// CardByID looks a card up in the catalog.
func CardByID(id string) (Card, bool) {
	for _, c := range Deck {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
