package model

// DifficultyLevel is one entry of the static level table. Characters is
// the drill alphabet used for the low levels; higher levels draw from the
// sentence pool instead.
type DifficultyLevel struct {
	Level      int
	Name       string
	Characters string
	MinWPM     int
	MaxWPM     int
}

// Levels is the process-wide difficulty table, ordered by level number.
var Levels = []DifficultyLevel{
	{Level: 1, Name: "Beginner", Characters: "asdf jkl;", MinWPM: 0, MaxWPM: 15},
	{Level: 2, Name: "Intermediate", Characters: "asdfgh jkl;'", MinWPM: 15, MaxWPM: 30},
	{Level: 3, Name: "Advanced", Characters: "qwertyuiop asdfghjkl; zxcvbnm", MinWPM: 30, MaxWPM: 50},
	{Level: 4, Name: "Expert", Characters: "", MinWPM: 50, MaxWPM: 999},
}

// MaxLevel is the highest defined difficulty level.
func MaxLevel() int {
	return len(Levels)
}

// LevelByNumber returns the level entry for n, clamping to the table
// bounds so a stored out-of-range level never panics.
func LevelByNumber(n int) DifficultyLevel {
	if n < 1 {
		n = 1
	}
	if n > len(Levels) {
		n = len(Levels)
	}
	return Levels[n-1]
}
