package cmd

import (
	"errors"
	"fmt"

	"github.com/marcus/swipedeck/internal/db"
	"github.com/marcus/swipedeck/internal/deckfile"
	"github.com/marcus/swipedeck/internal/models"
	"github.com/marcus/swipedeck/internal/output"
	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:     "deck",
	Short:   "Inspect deck files",
	GroupID: "core",
}

var deckShowCmd = &cobra.Command{
	Use:   "show [deck-file...]",
	Short: "List the cards of a deck with their last verdict",
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := loadDeckArgs(cmd, args)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(deckJSON{ID: deck.ID(), Name: deck.Name, Cards: deck.Cards})
		}

		verdicts, err := latestVerdicts(deck.ID())
		if err != nil {
			output.Warning("read journal: %v", err)
		}

		fmt.Printf("%s (%s) %d cards\n", deck.Name, deck.ID(), len(deck.Cards))
		tree := output.CardTree(deck.Name, deck.Cards, verdicts)
		fmt.Println(output.RenderTree(tree, output.TreeRenderOptions{ShowVerdict: true}))
		return nil
	},
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate <deck-file...>",
	Short: "Check deck files for missing or duplicate card ids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := deckfile.Load(cmd.Context(), args...)
		if err != nil {
			return err
		}
		output.Success("%s: %d cards, id %s", deck.Name, len(deck.Cards), deck.ID())
		return nil
	},
}

type deckJSON struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Cards []models.Card `json:"cards"`
}

func loadDeckArgs(cmd *cobra.Command, args []string) (*deckfile.Deck, error) {
	var configured []string
	if len(args) == 0 {
		s, err := loadSettings()
		if err != nil {
			return nil, err
		}
		configured = s.DeckPaths
	}
	return loadDeck(cmd.Context(), args, configured)
}

// latestVerdicts maps card id to its most recent verdict for the deck. A
// missing journal yields an empty map.
func latestVerdicts(deckID string) (map[string]models.Direction, error) {
	journal, err := db.Open(getBaseDir())
	if errors.Is(err, db.ErrNotInitialized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer journal.Close()

	list, err := journal.ListVerdicts(db.VerdictFilter{DeckID: deckID})
	if err != nil {
		return nil, err
	}
	latest := make(map[string]models.Direction, len(list))
	for _, v := range list {
		if _, seen := latest[v.CardID]; !seen {
			latest[v.CardID] = v.Direction
		}
	}
	return latest, nil
}

func init() {
	deckShowCmd.Flags().Bool("json", false, "output as JSON")
	deckCmd.AddCommand(deckShowCmd, deckValidateCmd)
	rootCmd.AddCommand(deckCmd)
}
