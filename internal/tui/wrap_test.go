package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmatveev/typemaster/internal/model"
)

func TestBuildStyledRunesStates(t *testing.T) {
	target := []rune("ab c")
	classification := []model.CharState{
		model.CharCorrect,
		model.CharIncorrect,
		model.CharPending,
		model.CharPending,
	}

	out := buildStyledRunes(target, classification, 2)

	require.Len(t, out, 4)
	require.False(t, out[0].isSpace)
	require.True(t, out[2].isSpace)
	for _, item := range out {
		require.Equal(t, 1, item.width)
	}
}

func TestBuildStyledRunesIncorrectSpaceShowsBullet(t *testing.T) {
	target := []rune("a b")
	classification := []model.CharState{
		model.CharCorrect,
		model.CharIncorrect,
		model.CharPending,
	}

	out := buildStyledRunes(target, classification, 2)

	require.Contains(t, out[1].s, "•")
	require.True(t, out[1].isSpace)
}

func TestBuildStyledRunesShortClassification(t *testing.T) {
	target := []rune("abc")

	out := buildStyledRunes(target, nil, 0)

	require.Len(t, out, 3)
}

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("aaa bbb ccc"), 7)

	require.Equal(t, "aaa\nbbb ccc", got)
}

func TestWrapStyledRunesHardBreakWithoutSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("aaaaaa"), 4)

	require.Equal(t, "aaaa\naa", got)
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	got := wrapStyledRunes(plainRunes("aaa bbb"), 0)

	require.Equal(t, "aaa bbb", got)
	require.False(t, strings.Contains(got, "\n"))
}
