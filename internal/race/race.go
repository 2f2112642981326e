// Package race simulates a typing race against a scripted opponent.
package race

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// CountdownTicks is the number of one-second countdown ticks before
	// the start signal.
	CountdownTicks = 3
	// CountdownInterval is the cadence of the countdown ticker.
	CountdownInterval = time.Second
	// TickInterval is the cadence of the opponent-progress ticker.
	TickInterval = 100 * time.Millisecond

	opponentBaseWPM   = 70.0
	opponentWPMSpread = 20.0
)

// Opponent is a random-walk simulation of a rival typist. Each tick
// advances its progress by a randomized 70-90 WPM speed.
type Opponent struct {
	rnd      *rand.Rand
	textLen  int
	progress float64
}

// NewOpponent returns an opponent seeded with the current time.
func NewOpponent(textLen int) *Opponent {
	return NewOpponentWithRand(textLen, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewOpponentWithRand returns an opponent with an injected random source.
func NewOpponentWithRand(textLen int, rnd *rand.Rand) *Opponent {
	return &Opponent{rnd: rnd, textLen: textLen}
}

// Tick advances the opponent by one TickInterval worth of typing.
func (o *Opponent) Tick() {
	if o.Finished() {
		return
	}
	wpm := opponentBaseWPM + o.rnd.Float64()*opponentWPMSpread
	charsPerSecond := wpm * 5 / 60
	o.progress += charsPerSecond * TickInterval.Seconds()
}

// Progress returns the opponent's position in characters.
func (o *Opponent) Progress() float64 {
	return o.progress
}

// Percent returns the opponent's completion ratio in [0, 1].
func (o *Opponent) Percent() float64 {
	if o.textLen <= 0 {
		return 1
	}
	pct := o.progress / float64(o.textLen)
	if pct > 1 {
		pct = 1
	}
	return pct
}

// Finished reports whether the opponent has typed the whole text.
func (o *Opponent) Finished() bool {
	return o.progress >= float64(o.textLen)
}

// RoomCode builds a shareable private-race code.
func RoomCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TR-%s", id[:6])
}
