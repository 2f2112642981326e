package tui

import (
	"context"
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/typemaster/internal/achievement"
	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"
	statsPkg "github.com/kmatveev/typemaster/internal/stats"
	"github.com/kmatveev/typemaster/internal/store"
	"github.com/kmatveev/typemaster/internal/textgen"
)

func newTestModel(t *testing.T, profile *model.Profile) (*Model, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	selector := textgen.NewWithRand(rand.New(rand.NewSource(1)))
	m := NewModel(profile, mem, selector, statsPkg.NewAggregator(), logger.Nop(), 0)
	return m, mem
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		var msg tea.KeyMsg
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		_, _ = m.Update(msg)
	}
}

func TestModelCompletesSessionAndPersists(t *testing.T) {
	profile := model.NewProfile("alice")
	m, mem := newTestModel(t, profile)

	typeText(t, m, m.engine.Target())

	require.True(t, m.showResults)
	require.Equal(t, 1, profile.Stats.TotalSessions)
	require.True(t, profile.HasAchievement(achievement.IDFirstLesson))

	saved, err := mem.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, 1, saved.Stats.TotalSessions)
}

func TestModelEnterAdvancesAfterResults(t *testing.T) {
	profile := model.NewProfile("alice")
	m, _ := newTestModel(t, profile)

	typeText(t, m, m.engine.Target())
	require.True(t, m.showResults)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.False(t, m.showResults)
	require.Empty(t, m.inputRunes)
	require.NotEmpty(t, m.engine.Target())
}

func TestModelTabSwapsText(t *testing.T) {
	profile := model.NewProfile("alice")
	m, _ := newTestModel(t, profile)

	typeText(t, m, m.engine.Target()[:3])
	require.Len(t, m.inputRunes, 3)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	require.Empty(t, m.inputRunes)
	require.Equal(t, 0, profile.Stats.TotalSessions)
}

func TestModelCtrlRRestartsSameText(t *testing.T) {
	profile := model.NewProfile("alice")
	m, _ := newTestModel(t, profile)
	target := m.engine.Target()

	typeText(t, m, target[:3])
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Empty(t, m.inputRunes)
	require.Equal(t, target, m.engine.Target())
}

func TestModelBackspaceClearsError(t *testing.T) {
	profile := model.NewProfile("alice")
	m, _ := newTestModel(t, profile)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'~'}})
	require.Equal(t, 1, m.metrics.Errors)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, 0, m.metrics.Errors)
}

func TestModelGuestSessionNotPersisted(t *testing.T) {
	profile := model.NewProfile("Guest")
	profile.Guest = true
	m, mem := newTestModel(t, profile)

	typeText(t, m, m.engine.Target())

	require.True(t, m.showResults)
	_, err := mem.GetProfile(context.Background(), "Guest")
	require.ErrorIs(t, err, store.ErrNotFound)
}
