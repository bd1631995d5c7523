package sage

import (
	"math/rand/v2"
	"testing"

	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRng() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPickMood(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Mood
	}{
		{"special wins over everything", Input{BlackScore: 4, WhiteScore: 1, LastMover: othello.BLACK, SpecialUsed: true}, MoodSpecial},
		{"opening", Input{BlackScore: 4, WhiteScore: 3, LastMover: othello.BLACK}, MoodStart},
		{"close game", Input{BlackScore: 20, WhiteScore: 16, LastMover: othello.WHITE}, MoodClose},
		{"black leads after black move", Input{BlackScore: 30, WhiteScore: 10, LastMover: othello.BLACK}, MoodWinning},
		{"black leads after white move", Input{BlackScore: 30, WhiteScore: 10, LastMover: othello.WHITE}, MoodLosing},
		{"white leads after white move", Input{BlackScore: 10, WhiteScore: 30, LastMover: othello.WHITE}, MoodWinning},
		{"white leads after black move", Input{BlackScore: 10, WhiteScore: 30, LastMover: othello.BLACK}, MoodLosing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickMood(tt.in, newRng()))
		})
	}
}

func TestPickMoodMiddleMargin(t *testing.T) {
	rng := newRng()
	in := Input{BlackScore: 28, WhiteScore: 20, LastMover: othello.BLACK}

	seen := make(map[Mood]bool)
	for range 100 {
		seen[PickMood(in, rng)] = true
	}

	require.Equal(t, map[Mood]bool{MoodCapture: true, MoodGeneric: true}, seen)
}

func TestComment(t *testing.T) {
	in := Input{BlackScore: 10, WhiteScore: 30, LastMover: othello.BLACK}

	comment := Comment(in, Indonesian, newRng())
	require.Contains(t, Lines(Indonesian, MoodLosing), comment)

	comment = Comment(in, English, newRng())
	require.Contains(t, Lines(English, MoodLosing), comment)

	// Unknown languages fall back to English.
	comment = Comment(in, Language("fr"), newRng())
	require.Contains(t, Lines(English, MoodLosing), comment)
}

func TestCommentDeterministicWithSeed(t *testing.T) {
	in := Input{BlackScore: 28, WhiteScore: 20, LastMover: othello.WHITE}
	require.Equal(t, Comment(in, English, newRng()), Comment(in, English, newRng()))
}

func TestParseLanguage(t *testing.T) {
	require.Equal(t, Indonesian, ParseLanguage("id"))
	require.Equal(t, English, ParseLanguage("en"))
	require.Equal(t, English, ParseLanguage(""))
}

func TestEveryMoodHasLines(t *testing.T) {
	moods := []Mood{MoodStart, MoodWinning, MoodLosing, MoodClose, MoodSpecial, MoodCapture, MoodGeneric}
	for _, lang := range []Language{English, Indonesian} {
		for _, mood := range moods {
			require.NotEmpty(t, Lines(lang, mood), "%s %s", lang, mood)
		}
	}
}
