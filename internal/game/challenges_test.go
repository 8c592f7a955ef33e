package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeCatalogIsWellFormed(t *testing.T) {
	ids := map[string]bool{}
	titles := map[string]bool{}

	for _, c := range Challenges {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Title)
		assert.False(t, ids[c.ID], "duplicate challenge ID %s", c.ID)
		assert.False(t, titles[c.Title], "duplicate challenge title %s", c.Title)
		ids[c.ID] = true
		titles[c.Title] = true

		assert.Positive(t, c.Points)
		assert.GreaterOrEqual(t, c.Zone, 1)
		assert.LessOrEqual(t, c.Zone, NumZones)
		assert.InDelta(t, 45.4, c.Lat, 0.1)
		assert.InDelta(t, -75.7, c.Lng, 0.1)
	}
}

func TestVisibleChallengesHidesCompleted(t *testing.T) {
	ts := NewTeamState()
	all := VisibleChallenges(&ts)
	require.Len(t, all, len(Challenges))

	ts.AddCompleted(all[0].Title)
	remaining := VisibleChallenges(&ts)
	assert.Len(t, remaining, len(Challenges)-1)
	for _, c := range remaining {
		assert.NotEqual(t, all[0].Title, c.Title)
	}
}

func TestMatchChallenge(t *testing.T) {
	ts := NewTeamState()

	ch, ok := MatchChallenge("<b>Fancy Washroom</b><br>300 points", &ts)
	require.True(t, ok)
	assert.Equal(t, "fancy-washroom", ch.ID)

	_, ok = MatchChallenge("nothing here", &ts)
	assert.False(t, ok)

	// Completed challenges stop matching.
	ts.AddCompleted("Fancy Washroom")
	_, ok = MatchChallenge("<b>Fancy Washroom</b>", &ts)
	assert.False(t, ok)
}
