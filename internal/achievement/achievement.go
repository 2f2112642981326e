// Package achievement evaluates achievement unlocks against profile stats.
package achievement

import "github.com/kmatveev/typemaster/internal/model"

// Achievement identifiers.
const (
	IDFirstLesson        = "first_lesson"
	IDSpeedDemon         = "speed_demon"
	IDAccuracyMaster     = "accuracy_master"
	IDConsistentPractice = "consistent_practice"
	IDRaceWinner         = "race_winner"
)

// Achievement is one entry of the static achievement table.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string

	unlocked func(st model.Stats, rec model.SessionRecord) bool
}

// Table lists all achievements. Evaluation order is table order.
var Table = []Achievement{
	{
		ID:          IDFirstLesson,
		Name:        "Getting Started",
		Description: "Complete your first lesson",
		Icon:        "🎯",
		unlocked: func(st model.Stats, _ model.SessionRecord) bool {
			return st.TotalSessions >= 1
		},
	},
	{
		ID:          IDSpeedDemon,
		Name:        "Speed Demon",
		Description: "Reach 60 WPM",
		Icon:        "⚡",
		unlocked: func(_ model.Stats, rec model.SessionRecord) bool {
			return rec.WPM >= 60
		},
	},
	{
		ID:          IDAccuracyMaster,
		Name:        "Accuracy Master",
		Description: "Achieve 95% accuracy",
		Icon:        "🎯",
		unlocked: func(_ model.Stats, rec model.SessionRecord) bool {
			return rec.Accuracy >= 95
		},
	},
	{
		ID:          IDConsistentPractice,
		Name:        "Consistent Practice",
		Description: "Practice for 7 days straight",
		Icon:        "🔥",
		unlocked: func(st model.Stats, _ model.SessionRecord) bool {
			return st.Streak >= 7
		},
	},
	{
		ID:          IDRaceWinner,
		Name:        "Race Winner",
		Description: "Win your first multiplayer race",
		Icon:        "🏆",
		// Granted only through AwardRaceWin on a race victory.
		unlocked: func(model.Stats, model.SessionRecord) bool {
			return false
		},
	},
}

// ByID looks up an achievement in the table.
func ByID(id string) (Achievement, bool) {
	for _, a := range Table {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate checks every predicate against the just-updated stats and the
// just-completed session, appends newly unlocked identifiers to the
// profile, and returns them in table order. Identifiers already unlocked
// are never re-evaluated or re-notified.
func Evaluate(p *model.Profile, rec model.SessionRecord) []string {
	var unlocked []string
	for _, a := range Table {
		if p.HasAchievement(a.ID) {
			continue
		}
		if !a.unlocked(p.Stats, rec) {
			continue
		}
		p.Achievements = append(p.Achievements, a.ID)
		unlocked = append(unlocked, a.ID)
	}
	return unlocked
}

// AwardRaceWin unlocks race_winner on a race victory. It reports whether
// the achievement was newly granted.
func AwardRaceWin(p *model.Profile) bool {
	if p.HasAchievement(IDRaceWinner) {
		return false
	}
	p.Achievements = append(p.Achievements, IDRaceWinner)
	return true
}
