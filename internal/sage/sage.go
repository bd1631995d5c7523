// Package sage picks a short line of commentary after each move.
package sage

import (
	"math/rand/v2"

	"github.com/lk16/flippy/burst/internal/othello"
)

// Language selects the set of lines.
type Language string

const (
	English    Language = "en"
	Indonesian Language = "id"
)

// ParseLanguage returns the language for code, falling back to English.
func ParseLanguage(code string) Language {
	if Language(code) == Indonesian {
		return Indonesian
	}
	return English
}

// Mood is the category a comment is drawn from.
type Mood string

const (
	MoodStart   Mood = "start"
	MoodWinning Mood = "winning"
	MoodLosing  Mood = "losing"
	MoodClose   Mood = "close"
	MoodSpecial Mood = "special"
	MoodCapture Mood = "capture"
	MoodGeneric Mood = "generic"
)

const (
	openingDiscs   = 8
	closeMargin    = 6
	decisiveMargin = 10
)

// Input describes the move that was just played.
type Input struct {
	BlackScore  int
	WhiteScore  int
	LastMover   othello.Cell
	SpecialUsed bool
}

var lines = map[Language]map[Mood][]string{
	English: {
		MoodStart: {
			"An empty board. Every disc from here on sets the rhythm.",
			"The first discs are quiet, but they are never harmless.",
			"A new duel. Mind the corners.",
		},
		MoodWinning: {
			"The board bends to your will.",
			"A commanding formation. Do not grow careless.",
			"Your opponent is running out of room.",
		},
		MoodLosing: {
			"The tide is against you, but one corner can turn it.",
			"Patience. Mobility wins more games than discs do.",
			"Your position is fragile. Shore up your edges.",
		},
		MoodClose: {
			"Perfectly balanced. Who strikes next?",
			"Neck and neck. Every disc counts now.",
			"A tight battle. Nobody can relax.",
		},
		MoodSpecial: {
			"A burst! The whole neighborhood changes color.",
			"The ground shakes. That is not in any opening book.",
			"Chaos unleashed. The discs obey no line today.",
		},
		MoodCapture: {
			"A clean capture.",
			"The lines align in your favor.",
			"You claim their ground.",
		},
		MoodGeneric: {
			"Interesting choice.",
			"Calculated.",
			"Proceed with caution.",
		},
	},
	Indonesian: {
		MoodStart: {
			"Papan masih kosong. Setiap keping menentukan irama.",
			"Keping pertama terlihat tenang, tapi tidak pernah remeh.",
			"Duel baru dimulai. Perhatikan sudut.",
		},
		MoodWinning: {
			"Papan tunduk pada kehendakmu.",
			"Formasi yang kuat. Jangan lengah.",
			"Lawanmu mulai kehabisan ruang.",
		},
		MoodLosing: {
			"Arus melawanmu, tapi satu sudut bisa membaliknya.",
			"Sabar. Mobilitas lebih penting dari jumlah keping.",
			"Posisimu rapuh. Perkuat sisi papan.",
		},
		MoodClose: {
			"Seimbang sempurna. Siapa yang menyerang berikutnya?",
			"Saling kejar. Setiap keping berarti sekarang.",
			"Pertarungan ketat. Tidak ada yang bisa santai.",
		},
		MoodSpecial: {
			"Ledakan! Seluruh tetangga berganti warna.",
			"Tanah bergetar. Itu tidak ada di buku pembukaan mana pun.",
			"Kekacauan dilepaskan. Keping tidak mengikuti garis hari ini.",
		},
		MoodCapture: {
			"Tangkapan yang rapi.",
			"Garis-garis berpihak padamu.",
			"Kamu merebut wilayah mereka.",
		},
		MoodGeneric: {
			"Pilihan yang menarik.",
			"Sudah diperhitungkan.",
			"Lanjutkan dengan hati-hati.",
		},
	},
}

// PickMood decides which category of comment fits the move. The rng is only used to choose
// between capture and generic comments.
func PickMood(in Input, rng *rand.Rand) Mood {
	if in.SpecialUsed {
		return MoodSpecial
	}

	total := in.BlackScore + in.WhiteScore
	if total < openingDiscs {
		return MoodStart
	}

	diff := in.BlackScore - in.WhiteScore
	absDiff := max(diff, -diff)

	if absDiff < closeMargin {
		return MoodClose
	}

	if absDiff > decisiveMargin {
		blackLeads := diff > 0
		if blackLeads == (in.LastMover == othello.BLACK) {
			return MoodWinning
		}
		return MoodLosing
	}

	if rng.IntN(2) == 0 {
		return MoodCapture
	}
	return MoodGeneric
}

// Comment returns a line of commentary on the move described by in.
func Comment(in Input, lang Language, rng *rand.Rand) string {
	byMood, ok := lines[lang]
	if !ok {
		byMood = lines[English]
	}

	options := byMood[PickMood(in, rng)]
	return options[rng.IntN(len(options))]
}

// Lines returns the possible comments for a mood, mostly useful for tests.
func Lines(lang Language, mood Mood) []string {
	byMood, ok := lines[lang]
	if !ok {
		byMood = lines[English]
	}
	return byMood[mood]
}
