package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lk16/flippy/burst/internal/client"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/models"
	"github.com/lk16/flippy/burst/internal/othello"
)

const requestTimeout = 10 * time.Second

func printGame(game models.GameResponse) {
	board, err := othello.NewBoardFromString(game.BoardString())
	if err != nil {
		slog.Error("Server sent invalid board", "error", err)
		return
	}

	mover, err := othello.ParseSide(game.Mover)
	if err != nil {
		mover = othello.EMPTY
	}

	fmt.Println()
	board.Print(mover)
	fmt.Printf("black %d - %d white\n", game.BlackScore, game.WhiteScore)

	if game.Comment != "" {
		fmt.Printf("> %s\n", game.Comment)
	}

	if game.GameOver {
		fmt.Printf("Game over, winner: %s\n", *game.Winner)
		return
	}

	special := "available"
	if game.SpecialArmed {
		special = "armed"
	} else if (game.HumanSide == "black" && !game.BlackSpecialAvailable) ||
		(game.HumanSide == "white" && !game.WhiteSpecialAvailable) {
		special = "used"
	}

	fmt.Printf("Your moves: %s (burst %s)\n", strings.Join(game.LegalMoves, " "), special)
}

// execute runs one line of input and returns false if the user wants to stop.
func execute(ctx context.Context, c *client.Client, id string, line string) (models.GameResponse, bool, error) {
	switch line {
	case "quit", "exit":
		return models.GameResponse{}, false, c.DeleteGame(ctx, id)
	case "special", "burst":
		game, err := c.ActivateSpecial(ctx, id)
		return game, true, err
	case "reset":
		game, err := c.Reset(ctx, id)
		return game, true, err
	default:
		game, err := c.PlaceMove(ctx, id, line)
		return game, true, err
	}
}

func main() {
	config.SetLogLevel()

	side := flag.String("side", "black", "the side you play")
	language := flag.String("language", "en", "language of the commentary, en or id")
	flag.Parse()

	c := client.NewClient(config.LoadClientConfig())

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	game, err := c.NewGame(ctx, models.NewGameRequest{HumanSide: *side, Language: *language})
	cancel()

	if err != nil {
		slog.Error("Failed to start game", "error", err)
		os.Exit(1)
	}

	fmt.Println("Type a move such as d3, \"special\" to toggle the burst, \"reset\" or \"quit\".")
	printGame(game)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		next, keepGoing, err := execute(ctx, c, game.ID, line)
		cancel()

		if !keepGoing {
			if err != nil {
				slog.Warn("Failed to delete game", "error", err)
			}
			return
		}

		if err != nil {
			fmt.Println(err)
			continue
		}

		game = next
		printGame(game)
	}
}
