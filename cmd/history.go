package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/marcus/swipedeck/internal/db"
	"github.com/marcus/swipedeck/internal/models"
	"github.com/marcus/swipedeck/internal/output"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show recorded swipes",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID, _ := cmd.Flags().GetString("deck")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOut, _ := cmd.Flags().GetBool("json")

		journal, err := db.Open(getBaseDir())
		if errors.Is(err, db.ErrNotInitialized) {
			if jsonOut {
				return output.JSON(historyJSON{Verdicts: []models.Verdict{}, Tallies: []models.Tally{}})
			}
			fmt.Println("No verdicts recorded yet")
			return nil
		}
		if err != nil {
			return err
		}
		defer journal.Close()

		verdicts, err := journal.ListVerdicts(db.VerdictFilter{DeckID: deckID, Limit: limit})
		if err != nil {
			return err
		}
		tallies, err := journal.Tallies()
		if err != nil {
			return err
		}
		if deckID != "" {
			tallies = filterTallies(tallies, deckID)
		}

		if jsonOut {
			if verdicts == nil {
				verdicts = []models.Verdict{}
			}
			if tallies == nil {
				tallies = []models.Tally{}
			}
			return output.JSON(historyJSON{Verdicts: verdicts, Tallies: tallies})
		}

		if len(verdicts) == 0 {
			fmt.Println("No verdicts recorded yet")
			return nil
		}
		for _, line := range output.VerdictLines(verdicts, time.Now()) {
			fmt.Println(line)
		}
		fmt.Println()
		for _, t := range tallies {
			fmt.Println(output.FormatTally(t))
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded swipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID, _ := cmd.Flags().GetString("deck")
		yes, _ := cmd.Flags().GetBool("yes")

		journal, err := db.Open(getBaseDir())
		if errors.Is(err, db.ErrNotInitialized) {
			fmt.Println("No verdicts recorded yet")
			return nil
		}
		if err != nil {
			return err
		}
		defer journal.Close()

		if !yes {
			scope := "all decks"
			if deckID != "" {
				scope = "deck " + deckID
			}
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete recorded swipes for %s?", scope)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed).
				Run()
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return fmt.Errorf("confirm: %w", err)
			}
			if !confirmed {
				return nil
			}
		}

		n, err := journal.ClearVerdicts(deckID)
		if err != nil {
			return err
		}
		logger.Info("history cleared", "deck", deckID, "rows", n)
		output.Success("Deleted %d verdicts", n)
		return nil
	},
}

type historyJSON struct {
	Verdicts []models.Verdict `json:"verdicts"`
	Tallies  []models.Tally   `json:"tallies"`
}

func filterTallies(tallies []models.Tally, deckID string) []models.Tally {
	var out []models.Tally
	for _, t := range tallies {
		if t.DeckID == deckID {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	historyCmd.PersistentFlags().String("deck", "", "only this deck id")
	historyCmd.Flags().IntP("limit", "n", 20, "maximum verdicts to list (0 = all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyClearCmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
