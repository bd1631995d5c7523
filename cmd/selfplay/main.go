package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/lk16/flippy/burst/internal/ai"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/othello"
)

// playGame lets two bots play a full game and returns the final state and the game record. The
// first openingPlies moves are picked at random, so repeated games differ.
func playGame(black, white *ai.Bot, rng *rand.Rand, openingPlies int, verbose bool) (othello.GameState, []string) {
	game := othello.NewGame()
	record := []string{}

	for !game.IsOver() {
		mover := game.Mover()

		bot := black
		if mover == othello.WHITE {
			bot = white
		}

		var move othello.Move
		ok := true

		if len(record) < openingPlies {
			legal := game.LegalMoves()
			move = legal[rng.IntN(len(legal))]
		} else {
			move, ok = bot.ChooseMove(game.Board(), mover)
		}

		if !ok {
			slog.Error("bot has no moves on its turn", "side", mover)
			os.Exit(1)
		}

		next, err := othello.Reduce(game, othello.PlaceMove{Side: mover, Move: move})
		if err != nil {
			slog.Error("bot move rejected", "side", mover, "move", move.String(), "error", err)
			os.Exit(1)
		}

		game = next
		record = append(record, move.String())

		if verbose {
			board := game.Board()
			fmt.Printf("%s plays %s\n", mover, move)
			board.Print(game.Mover())
			fmt.Println()
		}
	}

	return game.State(), record
}

func main() {
	config.SetLogLevel()

	blackDepth := flag.Int("black-depth", ai.DefaultDepth, "search depth of the black bot")
	whiteDepth := flag.Int("white-depth", ai.DefaultDepth, "search depth of the white bot")
	games := flag.Int("games", 1, "number of games to play")
	opening := flag.Int("opening", 0, "number of random moves at the start of each game")
	seed := flag.Uint64("seed", 1, "seed for the random opening moves")
	verbose := flag.Bool("verbose", false, "print the board after every move")
	flag.Parse()

	black := ai.NewBot(*blackDepth)
	white := ai.NewBot(*whiteDepth)

	rng := rand.New(rand.NewPCG(*seed, *seed))
	wins := map[othello.Winner]int{}

	for i := range *games {
		state, record := playGame(black, white, rng, *opening, *verbose)
		wins[state.Winner]++

		fmt.Printf("game %d: %s wins %d-%d: %s\n",
			i+1, state.Winner, state.BlackScore, state.WhiteScore, strings.Join(record, " "))
	}

	fmt.Printf("black (depth %d): %d, white (depth %d): %d, draws: %d\n",
		black.Depth(), wins[othello.WinnerBlack], white.Depth(), wins[othello.WinnerWhite], wins[othello.WinnerDraw])
}
