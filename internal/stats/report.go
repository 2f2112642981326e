package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/kmatveev/typemaster/internal/achievement"
	"github.com/kmatveev/typemaster/internal/model"
)

const (
	recentSessionLimit = 10
	weakCharLimit      = 10
	curveWindow        = 5
)

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// RenderDashboard prints the profile dashboard: summary, learning curve,
// recent sessions, weak characters, and achievements.
func RenderDashboard(w io.Writer, p *model.Profile) error {
	if err := renderSummary(w, p); err != nil {
		return err
	}
	if err := renderCurve(w, p.Sessions); err != nil {
		return err
	}
	if err := renderRecentSessions(w, p.Sessions); err != nil {
		return err
	}
	if err := renderWeakChars(w, p.Stats.WeakChars); err != nil {
		return err
	}
	return renderAchievements(w, p)
}

func renderSummary(w io.Writer, p *model.Profile) error {
	st := p.Stats
	level := model.LevelByNumber(st.CurrentLevel)
	if _, err := fmt.Fprintf(w, "Profile %s - Level %d (%s)\n", p.Username, level.Level, level.Name); err != nil {
		return err
	}
	lastPractice := st.LastPracticeDate
	if lastPractice == "" {
		lastPractice = "never"
	}
	rows := [][]string{
		{"Best WPM", fmt.Sprintf("%d", st.BestWPM)},
		{"Best Accuracy", fmt.Sprintf("%d%%", st.BestAccuracy)},
		{"Sessions", fmt.Sprintf("%d", st.TotalSessions)},
		{"Practice Time", FormatDuration(st.TotalTime)},
		{"Characters Typed", fmt.Sprintf("%d", st.TotalChars)},
		{"Streak", fmt.Sprintf("%d day(s)", st.Streak)},
		{"Last Practice", lastPractice},
	}
	for _, line := range FormatTable([]string{"Stat", "Value"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderCurve(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) < 2 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = float64(s.WPM)
	}
	smoothed := MovingAverage(wpms, curveWindow)
	if _, err := fmt.Fprintf(w, "WPM Curve  %s\n\n", Sparkline(smoothed)); err != nil {
		return err
	}
	return nil
}

func renderRecentSessions(w io.Writer, sessions []model.SessionRecord) error {
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions yet.")
		return err
	}
	start := len(sessions) - recentSessionLimit
	if start < 0 {
		start = 0
	}
	recent := sessions[start:]
	rows := make([][]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		s := recent[i]
		rows = append(rows, []string{
			s.StartedAt.Format(time.DateOnly),
			fmt.Sprintf("%d", s.WPM),
			fmt.Sprintf("%d%%", s.Accuracy),
			FormatDuration(s.Duration),
			fmt.Sprintf("%d", s.Difficulty),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range FormatTable([]string{"Date", "WPM", "Accuracy", "Time", "Level"}, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderWeakChars(w io.Writer, weak map[string]int) error {
	if _, err := fmt.Fprintln(w, "Weak Characters"); err != nil {
		return err
	}
	top := TopWeakChars(weak, weakCharLimit)
	if len(top) == 0 {
		_, err := fmt.Fprintln(w, "No data yet.")
		return err
	}
	rows := make([][]string, 0, len(top))
	for _, wc := range top {
		label := wc.Char
		if label == " " {
			label = "<space>"
		}
		rows = append(rows, []string{label, fmt.Sprintf("%d", wc.Errors)})
	}
	for _, line := range FormatTable([]string{"Char", "Errors"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderAchievements(w io.Writer, p *model.Profile) error {
	if _, err := fmt.Fprintln(w, "Achievements"); err != nil {
		return err
	}
	for _, a := range achievement.Table {
		marker := "[ ]"
		if p.HasAchievement(a.ID) {
			marker = "[x]"
		}
		if _, err := fmt.Fprintf(w, "%s %s %s - %s\n", marker, a.Icon, a.Name, a.Description); err != nil {
			return err
		}
	}
	return nil
}
