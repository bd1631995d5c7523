package ai

import "github.com/lk16/flippy/burst/internal/othello"

// PositionalWeights scores each square. Corners are worth the most, squares next to corners
// hand them to the opponent and are penalized.
var PositionalWeights = [othello.N][othello.N]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// Evaluate returns the weighted square sum of player minus that of the opponent.
func Evaluate(b *othello.Board, player othello.Cell) int {
	opponent := player.Opponent()
	score := 0

	for r := range othello.N {
		for c := range othello.N {
			switch b[r][c] {
			case player:
				score += PositionalWeights[r][c]
			case opponent:
				score -= PositionalWeights[r][c]
			}
		}
	}

	return score
}
