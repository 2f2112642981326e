// Package session tracks one practice attempt against a target text.
package session

import (
	"math"
	"time"

	"github.com/kmatveev/typemaster/internal/model"
)

// Engine owns the live state of a single typing attempt. It performs no
// rendering and no persistence; callers feed it the full typed prefix on
// every keystroke and read the returned metrics.
type Engine struct {
	now func() time.Time

	target    []rune
	startedAt time.Time
	endedAt   time.Time

	weak map[string]int
	last model.LiveMetrics
}

// New returns an engine using the wall clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock returns an engine with an injected clock.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now, weak: map[string]int{}}
}

// Begin initializes the engine for a new target text. The timer does not
// start until the first keystroke.
func (e *Engine) Begin(text string) {
	e.target = []rune(text)
	e.Restart()
}

// Restart resets the attempt, keeping the current target text and the
// lifetime weak-character tally.
func (e *Engine) Restart() {
	e.startedAt = time.Time{}
	e.endedAt = time.Time{}
	e.last = model.LiveMetrics{Accuracy: 100}
}

// Target returns the current target text.
func (e *Engine) Target() string {
	return string(e.target)
}

// Started reports whether the first keystroke has arrived.
func (e *Engine) Started() bool {
	return !e.startedAt.IsZero()
}

// OnInput classifies the typed prefix against the target and returns live
// metrics. Classification is recomputed from scratch on every call, so
// backspace needs no special handling. Input past the target length is
// rejected.
//
// The weak-character tally accumulates per call: a position that is
// incorrect on this call increments its target character's tally even if
// the same position was already incorrect on the previous call.
func (e *Engine) OnInput(prefix string) model.LiveMetrics {
	if e.startedAt.IsZero() {
		e.startedAt = e.now()
	}

	typedRunes := []rune(prefix)
	if len(typedRunes) > len(e.target) {
		typedRunes = typedRunes[:len(e.target)]
	}

	classification := make([]model.CharState, len(e.target))
	errors := 0
	for i, r := range typedRunes {
		if r == e.target[i] {
			classification[i] = model.CharCorrect
			continue
		}
		classification[i] = model.CharIncorrect
		errors++
		e.weak[string(e.target[i])]++
	}

	typed := len(typedRunes)
	elapsed := e.now().Sub(e.startedAt)

	wpm := 0
	if minutes := elapsed.Minutes(); minutes > 0 {
		wpm = int(math.Round((float64(typed) / 5.0) / minutes))
	}
	accuracy := 100
	if typed > 0 {
		accuracy = int(math.Round(float64(typed-errors) / float64(typed) * 100))
	}

	complete := len(e.target) > 0 && typed == len(e.target)
	if complete && e.endedAt.IsZero() {
		e.endedAt = e.now()
	}

	e.last = model.LiveMetrics{
		WPM:            wpm,
		Accuracy:       accuracy,
		Errors:         errors,
		TypedChars:     typed,
		Elapsed:        elapsed,
		Classification: classification,
		Complete:       complete,
	}
	return e.last
}

// Complete finalizes the attempt into an immutable session record. It is
// meant to be called once OnInput has reported Complete; calling it early
// stamps the end at the current instant.
func (e *Engine) Complete(difficulty int) model.SessionRecord {
	if e.endedAt.IsZero() {
		e.endedAt = e.now()
	}
	duration := 0.0
	if !e.startedAt.IsZero() {
		duration = e.endedAt.Sub(e.startedAt).Seconds()
	}
	return model.SessionRecord{
		StartedAt:  e.startedAt,
		EndedAt:    e.endedAt,
		Duration:   duration,
		Text:       string(e.target),
		Difficulty: difficulty,
		WPM:        e.last.WPM,
		Accuracy:   e.last.Accuracy,
		Errors:     e.last.Errors,
		TotalChars: e.last.TypedChars,
	}
}

// WeakTally returns a copy of the accumulated weak-character tally.
func (e *Engine) WeakTally() map[string]int {
	out := make(map[string]int, len(e.weak))
	for ch, n := range e.weak {
		out[ch] = n
	}
	return out
}
