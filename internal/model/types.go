// Package model defines shared data structures.
package model

import "time"

// Profile is a user record: credentials, cumulative stats, session
// history, and unlocked achievements. Guest profiles are never persisted.
type Profile struct {
	Username     string          `json:"username"`
	Secret       string          `json:"secret,omitempty"`
	Guest        bool            `json:"guest,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Stats        Stats           `json:"stats"`
	Sessions     []SessionRecord `json:"sessions,omitempty"`
	Achievements []string        `json:"achievements,omitempty"`
}

// NewProfile returns a profile with zeroed stats at the first level.
func NewProfile(username string) *Profile {
	return &Profile{
		Username:  username,
		CreatedAt: time.Now(),
		Stats:     Stats{CurrentLevel: 1, WeakChars: map[string]int{}},
	}
}

// HasAchievement reports whether the achievement is already unlocked.
func (p *Profile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Stats holds cumulative per-profile statistics. Bests, totals, and the
// level are monotonically non-decreasing.
type Stats struct {
	BestWPM       int            `json:"best_wpm"`
	BestAccuracy  int            `json:"best_accuracy"`
	TotalSessions int            `json:"total_sessions"`
	TotalTime     float64        `json:"total_time"`
	TotalChars    int            `json:"total_chars"`
	CurrentLevel  int            `json:"current_level"`
	WeakChars     map[string]int `json:"weak_chars,omitempty"`
	Streak        int            `json:"streak"`
	// LastPracticeDate is a calendar date in time.DateOnly form, empty when
	// the profile has never completed a session.
	LastPracticeDate string `json:"last_practice_date,omitempty"`
}

// SessionRecord captures one completed practice attempt. Immutable once
// created. Duration is in seconds.
type SessionRecord struct {
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	Duration   float64   `json:"duration"`
	Text       string    `json:"text"`
	Difficulty int       `json:"difficulty"`
	WPM        int       `json:"wpm"`
	Accuracy   int       `json:"accuracy"`
	Errors     int       `json:"errors"`
	TotalChars int       `json:"total_chars"`
}

// CharState classifies one target position against the typed prefix.
type CharState int

const (
	CharPending CharState = iota
	CharCorrect
	CharIncorrect
)

// LiveMetrics is the per-keystroke output of the session engine.
type LiveMetrics struct {
	WPM            int
	Accuracy       int
	Errors         int
	TypedChars     int
	Elapsed        time.Duration
	Classification []CharState
	Complete       bool
}
