package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmatveev/typemaster/internal/achievement"
	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"
	"github.com/kmatveev/typemaster/internal/session"
	statsPkg "github.com/kmatveev/typemaster/internal/stats"
	"github.com/kmatveev/typemaster/internal/store"
	"github.com/kmatveev/typemaster/internal/textgen"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	unlockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DCB6A"))
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	engine   *session.Engine
	selector *textgen.Selector
	agg      *statsPkg.Aggregator
	store    store.ProfileStore
	log      *logger.Logger
	profile  *model.Profile

	// fixedLevel pins the difficulty; 0 follows the profile level.
	fixedLevel int
	level      int

	width  int
	height int

	inputRunes []rune
	metrics    model.LiveMetrics

	showResults bool
	lastRecord  model.SessionRecord
	unlockedIDs []string
	leveledUp   bool
}

// NewModel constructs a practice model for the given profile.
func NewModel(profile *model.Profile, st store.ProfileStore, selector *textgen.Selector, agg *statsPkg.Aggregator, log *logger.Logger, fixedLevel int) *Model {
	m := &Model{
		selector:   selector,
		agg:        agg,
		store:      st,
		log:        log,
		profile:    profile,
		fixedLevel: fixedLevel,
	}
	m.resetSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.showResults {
			switch msg.Type {
			case tea.KeyCtrlC:
				return m, tea.Quit
			case tea.KeyEnter:
				m.resetSession()
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			m.resetSession()
			return m, nil
		case tea.KeyCtrlR:
			m.restartSession()
			return m, nil
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showResults {
		return m.place(m.renderResults())
	}
	target := []rune(m.engine.Target())
	if len(target) == 0 {
		return ""
	}
	cursorIndex := -1
	if len(m.inputRunes) < len(target) {
		cursorIndex = len(m.inputRunes)
	}
	styledRunes := buildStyledRunes(target, m.metrics.Classification, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		return
	}
	m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
	if m.engine.Started() {
		m.metrics = m.engine.OnInput(string(m.inputRunes))
	}
}

func (m *Model) handleRunes(runes []rune) {
	target := []rune(m.engine.Target())
	for _, r := range runes {
		if len(m.inputRunes) >= len(target) {
			return
		}
		m.inputRunes = append(m.inputRunes, r)
		m.metrics = m.engine.OnInput(string(m.inputRunes))
		if m.metrics.Complete {
			m.finishSession()
			return
		}
	}
}

func (m *Model) finishSession() {
	rec := m.engine.Complete(m.level)
	statsPkg.MergeWeak(m.profile, m.engine.WeakTally())
	prevLevel := m.profile.Stats.CurrentLevel
	m.agg.Apply(m.profile, rec)
	m.unlockedIDs = achievement.Evaluate(m.profile, rec)
	m.leveledUp = m.profile.Stats.CurrentLevel > prevLevel
	if err := m.store.SaveProfile(context.Background(), m.profile); err != nil {
		m.log.Error().Err(err).Msg("failed to save profile")
	}
	m.lastRecord = rec
	m.showResults = true
}

// resetSession discards the current attempt and selects a new text. A
// fresh engine keeps the weak-character tally scoped to one text.
func (m *Model) resetSession() {
	m.level = m.currentLevel()
	m.engine = session.New()
	m.engine.Begin(m.selector.SelectText(m.level, m.profile))
	m.inputRunes = nil
	m.metrics = model.LiveMetrics{Accuracy: 100}
	m.showResults = false
	m.unlockedIDs = nil
	m.leveledUp = false
}

// restartSession retries the same text from scratch.
func (m *Model) restartSession() {
	m.engine.Restart()
	m.inputRunes = nil
	m.metrics = model.LiveMetrics{Accuracy: 100}
}

func (m *Model) currentLevel() int {
	if m.fixedLevel > 0 {
		return model.LevelByNumber(m.fixedLevel).Level
	}
	return m.profile.Stats.CurrentLevel
}

func (m *Model) renderFooter() string {
	lv := model.LevelByNumber(m.level)
	segments := []string{
		fmt.Sprintf("WPM %d", m.metrics.WPM),
		fmt.Sprintf("Accuracy %d%%", m.metrics.Accuracy),
		fmt.Sprintf("Errors %d", m.metrics.Errors),
		fmt.Sprintf("Time %s", statsPkg.FormatDuration(m.metrics.Elapsed.Seconds())),
		fmt.Sprintf("Level %d %s", lv.Level, lv.Name),
	}
	if m.profile.Stats.Streak > 0 {
		segments = append(segments, fmt.Sprintf("Streak %d", m.profile.Stats.Streak))
	}
	segments = append(segments, "tab new text · ctrl+r restart")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	var b strings.Builder
	b.WriteString(resultStyle.Render("Session complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "WPM       %d\n", m.lastRecord.WPM)
	fmt.Fprintf(&b, "Accuracy  %d%%\n", m.lastRecord.Accuracy)
	fmt.Fprintf(&b, "Errors    %d\n", m.lastRecord.Errors)
	fmt.Fprintf(&b, "Time      %s\n", statsPkg.FormatDuration(m.lastRecord.Duration))
	if m.leveledUp {
		lv := model.LevelByNumber(m.profile.Stats.CurrentLevel)
		b.WriteString("\n")
		b.WriteString(unlockStyle.Render(fmt.Sprintf("Level up! You are now %s", lv.Name)))
		b.WriteString("\n")
	}
	for _, id := range m.unlockedIDs {
		a, ok := achievement.ByID(id)
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(unlockStyle.Render(fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Name)))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("enter next · ctrl+c quit"))
	return b.String()
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
