package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/flippy/burst/internal/ai"
	"github.com/lk16/flippy/burst/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 64 squares of x, o and .")
	moverString := flag.String("mover", "black", "the side to move")
	depth := flag.Int("depth", 0, "if positive, also search the best move with this depth")
	flag.Parse()

	board, err := othello.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	mover, err := othello.ParseSide(*moverString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board.Print(mover)

	black, white, empty := board.Counts()
	fmt.Printf("black: %d, white: %d, empty: %d\n", black, white, empty)

	moves := othello.LegalMoves(&board, mover)
	if len(moves) == 0 {
		fmt.Printf("%s has no moves\n", mover)
		return
	}

	fields := make([]string, len(moves))
	for i, move := range moves {
		fields[i] = move.String()
	}
	fmt.Printf("%s moves: %v\n", mover, fields)

	if *depth > 0 {
		bot := ai.NewBot(*depth)
		move, _ := bot.ChooseMove(board, mover)
		stats := bot.Stats()
		fmt.Printf("best move at depth %d: %s (%d nodes, %d cutoffs, %s)\n",
			bot.Depth(), move, stats.Nodes, stats.Cutoffs, stats.Elapsed)
	}
}
