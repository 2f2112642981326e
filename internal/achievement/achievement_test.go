package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/typemaster/internal/model"
)

func TestEvaluateFirstLesson(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.TotalSessions = 1

	unlocked := Evaluate(p, model.SessionRecord{WPM: 20, Accuracy: 80})

	assert.Equal(t, []string{IDFirstLesson}, unlocked)
	assert.True(t, p.HasAchievement(IDFirstLesson))
}

func TestEvaluateMultipleInTableOrder(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.TotalSessions = 1
	p.Stats.Streak = 7

	unlocked := Evaluate(p, model.SessionRecord{WPM: 65, Accuracy: 96})

	assert.Equal(t, []string{
		IDFirstLesson, IDSpeedDemon, IDAccuracyMaster, IDConsistentPractice,
	}, unlocked, "evaluation order is table order")
}

func TestEvaluateNeverReNotifies(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.TotalSessions = 1
	p.Achievements = []string{IDFirstLesson, IDSpeedDemon}

	unlocked := Evaluate(p, model.SessionRecord{WPM: 70, Accuracy: 50})

	assert.Empty(t, unlocked)
	assert.Len(t, p.Achievements, 2)
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name     string
		rec      model.SessionRecord
		stats    model.Stats
		unlocked []string
	}{
		{
			name:     "speed demon below threshold",
			rec:      model.SessionRecord{WPM: 59, Accuracy: 50},
			unlocked: nil,
		},
		{
			name:     "speed demon at threshold",
			rec:      model.SessionRecord{WPM: 60, Accuracy: 50},
			unlocked: []string{IDSpeedDemon},
		},
		{
			name:     "accuracy master at threshold",
			rec:      model.SessionRecord{WPM: 10, Accuracy: 95},
			unlocked: []string{IDAccuracyMaster},
		},
		{
			name:     "streak below threshold",
			stats:    model.Stats{Streak: 6},
			rec:      model.SessionRecord{WPM: 10, Accuracy: 50},
			unlocked: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewProfile("ann")
			p.Stats = tt.stats
			assert.Equal(t, tt.unlocked, Evaluate(p, tt.rec))
		})
	}
}

func TestRaceWinnerNeverUnlocksThroughPractice(t *testing.T) {
	p := model.NewProfile("ann")
	p.Stats.TotalSessions = 100
	p.Stats.Streak = 100

	unlocked := Evaluate(p, model.SessionRecord{WPM: 200, Accuracy: 100})

	assert.NotContains(t, unlocked, IDRaceWinner)
}

func TestAwardRaceWin(t *testing.T) {
	p := model.NewProfile("ann")

	require.True(t, AwardRaceWin(p))
	assert.True(t, p.HasAchievement(IDRaceWinner))

	require.False(t, AwardRaceWin(p), "already unlocked, not granted again")
	assert.Len(t, p.Achievements, 1)
}

func TestByID(t *testing.T) {
	a, ok := ByID(IDSpeedDemon)
	require.True(t, ok)
	assert.Equal(t, "Speed Demon", a.Name)

	_, ok = ByID("nope")
	assert.False(t, ok)
}
