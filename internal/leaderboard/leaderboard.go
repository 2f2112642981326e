// Package leaderboard builds the local sample standings.
package leaderboard

import (
	"fmt"
	"io"
	"sort"

	"github.com/kmatveev/typemaster/internal/model"
	"github.com/kmatveev/typemaster/internal/stats"
)

// Entry is one leaderboard row.
type Entry struct {
	Username string
	WPM      int
	Accuracy int
}

// Sample racers shown alongside the local profile. There is no server;
// these stand in for remote players.
var sampleEntries = []Entry{
	{Username: "SpeedTyper99", WPM: 85, Accuracy: 96},
	{Username: "KeyboardMaster", WPM: 82, Accuracy: 98},
	{Username: "TypingNinja", WPM: 78, Accuracy: 94},
	{Username: "FastFingers", WPM: 75, Accuracy: 97},
	{Username: "WordRacer", WPM: 73, Accuracy: 95},
}

// Standings merges the profile's best marks into the sample entries,
// sorted by WPM descending. Guest profiles are not ranked.
func Standings(p *model.Profile) []Entry {
	entries := make([]Entry, len(sampleEntries))
	copy(entries, sampleEntries)
	if p != nil && !p.Guest {
		entries = append(entries, Entry{
			Username: p.Username,
			WPM:      p.Stats.BestWPM,
			Accuracy: p.Stats.BestAccuracy,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WPM > entries[j].WPM
	})
	return entries
}

// Render prints the standings, marking the highlighted username.
func Render(w io.Writer, entries []Entry, highlight string) error {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		name := e.Username
		if name == highlight && highlight != "" {
			name += " *"
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", e.WPM),
			fmt.Sprintf("%d%%", e.Accuracy),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true}
	for _, line := range stats.FormatTable([]string{"Rank", "User", "WPM", "Accuracy"}, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
