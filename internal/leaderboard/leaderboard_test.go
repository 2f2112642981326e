package leaderboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/typemaster/internal/model"
)

func TestStandingsSortedByWPM(t *testing.T) {
	entries := Standings(nil)
	require.Len(t, entries, 5)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].WPM, entries[i].WPM)
	}
	assert.Equal(t, "SpeedTyper99", entries[0].Username)
}

func TestStandingsIncludeProfile(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.BestWPM = 80
	p.Stats.BestAccuracy = 99

	entries := Standings(p)
	require.Len(t, entries, 6)
	assert.Equal(t, "ann", entries[2].Username, "ranked between 82 and 78 WPM")
}

func TestStandingsExcludeGuest(t *testing.T) {
	guest := model.NewProfile("Guest")
	guest.Guest = true
	assert.Len(t, Standings(guest), 5)
}

func TestRenderHighlightsUser(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.BestWPM = 90
	p.Stats.BestAccuracy = 99

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Standings(p), "ann"))
	out := buf.String()

	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "ann *")
	assert.Contains(t, out, "SpeedTyper99")
}
