package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckIsWellFormed(t *testing.T) {
	ids := map[string]bool{}
	titles := map[string]bool{}

	for _, c := range Deck {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Description)
		assert.False(t, ids[c.ID], "duplicate card ID %s", c.ID)
		assert.False(t, titles[c.Title], "duplicate card title %s", c.Title)
		ids[c.ID] = true
		titles[c.Title] = true

		switch c.Kind {
		case KindCurse, KindAdvantage:
			assert.Nil(t, c.Input)
		case KindCurseWithInput:
			require.NotNil(t, c.Input, "%s needs an input range", c.ID)
			assert.NotEmpty(t, c.Input.Unit)
			assert.Less(t, c.Input.Min, c.Input.Max)
			assert.Positive(t, c.Input.Min)
		case KindRiskyTrivia:
			assert.NotEmpty(t, c.Question)
			assert.Positive(t, c.Numeric)
			assert.Positive(t, c.Tolerance)
		case KindRiskyTriviaMC:
			assert.NotEmpty(t, c.Question)
			assert.NotEmpty(t, c.Answer)
			assert.Contains(t, c.Options, c.Answer)
		default:
			t.Errorf("card %s has unknown kind %q", c.ID, c.Kind)
		}
	}
}

func TestCardByID(t *testing.T) {
	c, ok := CardByID("advantage-gold-rush")
	require.True(t, ok)
	assert.Equal(t, KindAdvantage, c.Kind)

	_, ok = CardByID("no-such-card")
	assert.False(t, ok)
}

func TestRevealAnswer(t *testing.T) {
	numeric, _ := CardByID("trivia-peace-tower")
	assert.Equal(t, "92", numeric.RevealAnswer())

	mc, _ := CardByID("trivia-capital-year")
	assert.Equal(t, "1857", mc.RevealAnswer())

	curse, _ := CardByID("curse-frozen-feet")
	assert.Empty(t, curse.RevealAnswer())
}
