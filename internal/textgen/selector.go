// Package textgen selects practice texts by difficulty level and weak
// characters.
package textgen

import (
	"math/rand"
	"strings"
	"time"

	"github.com/kmatveev/typemaster/internal/model"
)

const (
	drillChars     = 50
	drillGroupSize = 5
)

// Selector produces target texts for practice sessions.
type Selector struct {
	rnd  *rand.Rand
	pool []string
}

// New returns a Selector seeded with the current time, using the built-in
// sentence pool.
func New() *Selector {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Selector with an injected random source.
func NewWithRand(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd, pool: DefaultPool()}
}

// SetPool replaces the sentence pool used for the higher levels.
func (s *Selector) SetPool(pool []string) {
	if len(pool) > 0 {
		s.pool = pool
	}
}

// SelectText chooses the next practice text. Levels 1 and 2 synthesize a
// character drill from the level alphabet; higher levels pick a pool
// sentence, preferring one that contains a recorded weak character.
func (s *Selector) SelectText(level int, p *model.Profile) string {
	lv := model.LevelByNumber(level)
	if lv.Level <= 2 {
		return s.drill(lv.Characters)
	}
	return s.fromPool(p)
}

func (s *Selector) drill(alphabet string) string {
	chars := []rune(strings.ReplaceAll(alphabet, " ", ""))
	var b strings.Builder
	for i := 0; i < drillChars; i++ {
		if i > 0 && i%drillGroupSize == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(chars[s.rnd.Intn(len(chars))])
	}
	return strings.TrimSpace(b.String())
}

// fromPool draws a uniform sentence, then prefers the first pool sentence
// containing any weak character. Best-effort single pass, not a ranking.
func (s *Selector) fromPool(p *model.Profile) string {
	pick := s.pool[s.rnd.Intn(len(s.pool))]
	if p == nil || len(p.Stats.WeakChars) == 0 {
		return pick
	}
	for _, sentence := range s.pool {
		if containsWeakChar(sentence, p.Stats.WeakChars) {
			return sentence
		}
	}
	return pick
}

func containsWeakChar(sentence string, weak map[string]int) bool {
	for ch := range weak {
		if strings.Contains(sentence, ch) {
			return true
		}
	}
	return false
}
