// Package stats contains statistics aggregation and reporting.
package stats

import (
	"time"

	"github.com/kmatveev/typemaster/internal/model"
)

// Aggregator folds completed sessions into cumulative profile stats.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator returns an aggregator using the wall clock.
func NewAggregator() *Aggregator {
	return NewAggregatorWithClock(time.Now)
}

// NewAggregatorWithClock returns an aggregator with an injected clock.
func NewAggregatorWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// Apply folds rec into the profile: totals, best marks, the calendar-day
// streak, level progression, and the session history. The caller owns
// persistence of the returned profile.
func (a *Aggregator) Apply(p *model.Profile, rec model.SessionRecord) *model.Profile {
	st := &p.Stats

	st.TotalSessions++
	st.TotalTime += rec.Duration
	st.TotalChars += rec.TotalChars

	if rec.WPM > st.BestWPM {
		st.BestWPM = rec.WPM
	}
	if rec.Accuracy > st.BestAccuracy {
		st.BestAccuracy = rec.Accuracy
	}

	// Streak compares calendar dates, not instants.
	today := a.now().Format(time.DateOnly)
	yesterday := a.now().AddDate(0, 0, -1).Format(time.DateOnly)
	switch st.LastPracticeDate {
	case today:
		// Same day, streak unchanged.
	case yesterday:
		st.Streak++
	default:
		st.Streak = 1
	}
	st.LastPracticeDate = today

	// Level up one step at most, gated on the current band's upper bound.
	level := model.LevelByNumber(st.CurrentLevel)
	if rec.WPM >= level.MaxWPM && rec.Accuracy >= 90 && st.CurrentLevel < model.MaxLevel() {
		st.CurrentLevel++
	}

	p.Sessions = append(p.Sessions, rec)
	return p
}

// MergeWeak folds a session's weak-character tally into the profile.
func MergeWeak(p *model.Profile, tally map[string]int) {
	if len(tally) == 0 {
		return
	}
	if p.Stats.WeakChars == nil {
		p.Stats.WeakChars = map[string]int{}
	}
	for ch, n := range tally {
		p.Stats.WeakChars[ch] += n
	}
}
