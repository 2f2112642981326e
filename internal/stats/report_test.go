package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/typemaster/internal/model"
)

func TestTopWeakCharsOrdersByErrors(t *testing.T) {
	top := TopWeakChars(map[string]int{"a": 2, "q": 5, "z": 2}, 2)
	require.Len(t, top, 2)
	assert.Equal(t, WeakChar{Char: "q", Errors: 5}, top[0])
	assert.Equal(t, WeakChar{Char: "a", Errors: 2}, top[1], "ties break by character")
}

func TestTopWeakCharsEmpty(t *testing.T) {
	assert.Nil(t, TopWeakChars(nil, 10))
	assert.Nil(t, TopWeakChars(map[string]int{"a": 1}, 0))
}

func TestMovingAverageWindow(t *testing.T) {
	out := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, out)
}

func TestSparklineFlatSeries(t *testing.T) {
	line := Sparkline([]float64{5, 5, 5})
	assert.Len(t, line, 3)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1:05", FormatDuration(65.4))
	assert.Equal(t, "0:00", FormatDuration(0))
}

func TestRenderDashboard(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.BestWPM = 48
	p.Stats.BestAccuracy = 97
	p.Stats.TotalSessions = 2
	p.Stats.TotalTime = 135
	p.Stats.Streak = 2
	p.Stats.LastPracticeDate = "2025-06-10"
	p.Stats.WeakChars = map[string]int{"q": 4, " ": 2}
	p.Achievements = []string{"first_lesson"}
	p.Sessions = []model.SessionRecord{
		{StartedAt: time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC), WPM: 40, Accuracy: 95, Duration: 70, Difficulty: 2},
		{StartedAt: time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC), WPM: 48, Accuracy: 97, Duration: 65, Difficulty: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, p))
	out := buf.String()

	for _, want := range []string{
		"Profile ann", "Best WPM", "48", "Recent Sessions", "2025-06-10",
		"Weak Characters", "q", "<space>", "WPM Curve",
		"[x] 🎯 Getting Started", "[ ] 🏆 Race Winner",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDashboardEmptyProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, model.NewProfile("new")))
	out := buf.String()
	assert.Contains(t, out, "No sessions yet.")
	assert.Contains(t, out, "No data yet.")
	assert.Contains(t, out, "never")
}

func TestFormatTableAlignment(t *testing.T) {
	lines := FormatTable(
		[]string{"Name", "N"},
		[][]string{{"ab", "1"}, {"c", "25"}},
		map[int]bool{1: true},
	)
	require.Len(t, lines, 3)
	assert.Equal(t, "Name  N", lines[0])
	assert.Equal(t, "ab    1", lines[1])
	assert.Equal(t, "c    25", lines[2])
}
