package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmatveev/typemaster/internal/achievement"
	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"
	"github.com/kmatveev/typemaster/internal/race"
	"github.com/kmatveev/typemaster/internal/session"
	"github.com/kmatveev/typemaster/internal/store"
	"github.com/kmatveev/typemaster/internal/textgen"
)

type racePhase int

const (
	raceLobby racePhase = iota
	raceCountdown
	raceRunning
	raceDone
)

// Ticker messages carry the race generation so ticks from an abandoned
// round are discarded.
type countdownMsg struct{ id int }

type raceTickMsg struct{ id int }

var countdownStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

// RaceModel implements the Bubble Tea race UI against a simulated
// opponent.
type RaceModel struct {
	engine   *session.Engine
	opponent *race.Opponent
	selector *textgen.Selector
	store    store.ProfileStore
	log      *logger.Logger
	profile  *model.Profile

	roomCode string
	private  bool

	playerBar   progress.Model
	opponentBar progress.Model

	phase     racePhase
	countdown int
	raceID    int

	width  int
	height int

	inputRunes []rune
	metrics    model.LiveMetrics

	won        bool
	newlyAward bool
}

// NewRaceModel constructs a race model. Private races get a shareable
// room code.
func NewRaceModel(profile *model.Profile, st store.ProfileStore, selector *textgen.Selector, log *logger.Logger, private bool) *RaceModel {
	m := &RaceModel{
		selector:    selector,
		store:       st,
		log:         log,
		profile:     profile,
		private:     private,
		playerBar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		opponentBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	if private {
		m.roomCode = race.RoomCode()
	}
	m.newRound()
	return m
}

// Init implements tea.Model.
func (m *RaceModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *RaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width / 2
		if barWidth < 10 {
			barWidth = 10
		}
		m.playerBar.Width = barWidth
		m.opponentBar.Width = barWidth
		return m, nil
	case countdownMsg:
		return m.handleCountdown(msg)
	case raceTickMsg:
		return m.handleRaceTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *RaceModel) handleCountdown(msg countdownMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.raceID || m.phase != raceCountdown {
		return m, nil
	}
	m.countdown--
	if m.countdown > 0 {
		return m, m.countdownCmd()
	}
	m.phase = raceRunning
	return m, m.raceTickCmd()
}

func (m *RaceModel) handleRaceTick(msg raceTickMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.raceID || m.phase != raceRunning {
		return m, nil
	}
	m.opponent.Tick()
	if m.opponent.Finished() {
		m.finishRace(false)
		return m, nil
	}
	return m, m.raceTickCmd()
}

func (m *RaceModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.phase {
	case raceLobby:
		if msg.Type == tea.KeyEnter {
			m.phase = raceCountdown
			m.countdown = race.CountdownTicks
			return m, m.countdownCmd()
		}
	case raceRunning:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			if len(m.inputRunes) > 0 {
				m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
				m.metrics = m.engine.OnInput(string(m.inputRunes))
			}
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
		}
	case raceDone:
		switch {
		case msg.Type == tea.KeyEnter:
			return m, tea.Quit
		case msg.String() == "r":
			m.newRound()
			m.phase = raceCountdown
			m.countdown = race.CountdownTicks
			return m, m.countdownCmd()
		}
	}
	return m, nil
}

func (m *RaceModel) handleRunes(runes []rune) {
	target := []rune(m.engine.Target())
	for _, r := range runes {
		if len(m.inputRunes) >= len(target) {
			return
		}
		m.inputRunes = append(m.inputRunes, r)
		m.metrics = m.engine.OnInput(string(m.inputRunes))
		if m.metrics.Complete {
			m.finishRace(!m.opponent.Finished())
			return
		}
	}
}

func (m *RaceModel) finishRace(won bool) {
	m.phase = raceDone
	m.won = won
	m.newlyAward = false
	if !won {
		return
	}
	if achievement.AwardRaceWin(m.profile) {
		m.newlyAward = true
		if err := m.store.SaveProfile(context.Background(), m.profile); err != nil {
			m.log.Error().Err(err).Msg("failed to save profile after race win")
		}
	}
}

// newRound resets engine, opponent, and input for a fresh race. Bumping
// the generation invalidates any ticker still in flight.
func (m *RaceModel) newRound() {
	m.raceID++
	m.engine = session.New()
	m.engine.Begin(m.selector.SelectText(model.MaxLevel(), m.profile))
	m.opponent = race.NewOpponent(len([]rune(m.engine.Target())))
	m.inputRunes = nil
	m.metrics = model.LiveMetrics{Accuracy: 100}
	m.phase = raceLobby
	m.won = false
	m.newlyAward = false
}

func (m *RaceModel) countdownCmd() tea.Cmd {
	id := m.raceID
	return tea.Tick(race.CountdownInterval, func(time.Time) tea.Msg {
		return countdownMsg{id: id}
	})
}

func (m *RaceModel) raceTickCmd() tea.Cmd {
	id := m.raceID
	return tea.Tick(race.TickInterval, func(time.Time) tea.Msg {
		return raceTickMsg{id: id}
	})
}

// View implements tea.Model.
func (m *RaceModel) View() string {
	var content string
	switch m.phase {
	case raceLobby:
		content = m.renderLobby()
	case raceCountdown:
		content = countdownStyle.Render(fmt.Sprintf("%d", m.countdown))
	case raceRunning:
		content = m.renderRace()
	case raceDone:
		content = m.renderResult()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *RaceModel) renderLobby() string {
	var b strings.Builder
	b.WriteString(resultStyle.Render("Typing race"))
	b.WriteString("\n\n")
	if m.private {
		fmt.Fprintf(&b, "Room %s\n", m.roomCode)
		b.WriteString("Share this code with a friend\n\n")
	}
	fmt.Fprintf(&b, "Racing as %s\n\n", m.profile.Username)
	b.WriteString(footerStyle.Render("enter start · ctrl+c quit"))
	return b.String()
}

func (m *RaceModel) renderRace() string {
	target := []rune(m.engine.Target())
	cursorIndex := -1
	if len(m.inputRunes) < len(target) {
		cursorIndex = len(m.inputRunes)
	}
	styledRunes := buildStyledRunes(target, m.metrics.Classification, cursorIndex)
	text := renderStyledRunes(styledRunes)
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 1 {
			contentWidth = 1
		}
		text = wrapStyledRunes(styledRunes, contentWidth)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You       %s\n", m.playerBar.ViewAs(m.playerPercent()))
	fmt.Fprintf(&b, "Opponent  %s\n\n", m.opponentBar.ViewAs(m.opponent.Percent()))
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("WPM %d  Accuracy %d%%", m.metrics.WPM, m.metrics.Accuracy)))
	return b.String()
}

func (m *RaceModel) renderResult() string {
	var b strings.Builder
	if m.won {
		b.WriteString(resultStyle.Render("You won the race!"))
	} else {
		b.WriteString(resultStyle.Render("Opponent finished first"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "WPM       %d\n", m.metrics.WPM)
	fmt.Fprintf(&b, "Accuracy  %d%%\n", m.metrics.Accuracy)
	if m.newlyAward {
		if a, ok := achievement.ByID(achievement.IDRaceWinner); ok {
			b.WriteString("\n")
			b.WriteString(unlockStyle.Render(fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Name)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("r rematch · enter quit"))
	return b.String()
}

func (m *RaceModel) playerPercent() float64 {
	target := []rune(m.engine.Target())
	if len(target) == 0 {
		return 1
	}
	return float64(len(m.inputRunes)) / float64(len(target))
}
