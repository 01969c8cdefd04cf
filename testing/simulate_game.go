package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/tatianab/mansion/internal/config"
	"github.com/tatianab/mansion/internal/engine"
	"github.com/tatianab/mansion/internal/models"
	"github.com/tatianab/mansion/internal/narrator"
)

const maxTurns = 40

// riddleGuesses are tried in turn when no narrator is available.
var riddleGuesses = []string{"a candle", "an oil lamp"}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	eng := engine.New(engine.WithRoller(engine.NewRoller(seed)))
	pick := rand.New(rand.NewPCG(uint64(seed), 1))

	// The player is the narrator when Gemini is configured, a coin flip otherwise.
	var player *narrator.Narrator
	if cfg.GeminiAPIKey != "" {
		player, err = narrator.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create narrator: %v", err)
		}
		defer player.Close()
	}

	guesses := 0
	for turn := 1; turn <= maxTurns; turn++ {
		snap := eng.Snapshot()
		fmt.Printf("--- Turn %d: %s (health %d, score %d) ---\n", turn, snap.Room.Name, snap.Health, snap.Score)

		var cmd models.Command
		switch {
		case player != nil:
			cmd, err = player.ChooseAction(ctx, snap)
			if err != nil {
				fmt.Printf("Narrator could not decide: %v\n", err)
				cmd = randomAction(pick, snap)
			}
		case snap.Riddle != nil:
			cmd = models.Command{Kind: models.ActionAnswer, Target: riddleGuesses[guesses%len(riddleGuesses)]}
			guesses++
		default:
			cmd = randomAction(pick, snap)
		}

		fmt.Printf("Player: %s %s\n", cmd.Kind, cmd.Target)
		res := eng.Dispatch(cmd)
		for _, msg := range res.Messages {
			fmt.Printf("  %s\n", msg)
		}

		if o := eng.Outcome(); o != nil {
			if o.Won {
				fmt.Printf("Game Ended: Player Won! %s Final Score: %d\n", o.Message, o.FinalScore)
			} else {
				fmt.Printf("Game Ended: Player Lost! %s Final Score: %d\n", o.Message, o.FinalScore)
			}
			return
		}
	}

	snap := eng.Snapshot()
	fmt.Printf("Out of turns. Health=%d, Score=%d, Inventory=%v\n", snap.Health, snap.Score, snap.Inventory)
}

func randomAction(r *rand.Rand, snap models.Snapshot) models.Command {
	var enabled []models.Command
	for _, a := range snap.Actions {
		if a.Enabled && a.Kind != models.ActionAnswer {
			enabled = append(enabled, a)
		}
	}
	if len(enabled) == 0 {
		return models.Command{}
	}
	return enabled[r.IntN(len(enabled))]
}
