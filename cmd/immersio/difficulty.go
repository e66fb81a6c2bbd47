package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/learner"
	"github.com/immersio/immersio/internal/validation"
)

var adjustDifficultyReason string

var adjustDifficultyCmd = &cobra.Command{
	Use:   "adjust-difficulty <auto|easier|harder|A1-C2>",
	Short: "Change the difficulty override",
	Long:  "Set difficulty.level in user-overrides.json and append an entry to the adjustment log. The log is append-only and never pruned.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdjustDifficulty,
}

func init() {
	addTutorFlags(adjustDifficultyCmd)
	adjustDifficultyCmd.Flags().StringVar(&adjustDifficultyReason, "reason", "",
		"One-line reason for the adjustment")
	adjustDifficultyCmd.MarkFlagRequired("reason")

	rootCmd.AddCommand(adjustDifficultyCmd)
}

func runAdjustDifficulty(cmd *cobra.Command, args []string) error {
	direction := args[0]

	var c validation.Collector
	c.Add(validation.ValidateEnum("direction", direction, learner.DifficultyLevels))
	c.Add(validation.ValidateRequired("reason", adjustDifficultyReason))
	c.Add(validation.ValidateMaxLength("reason", adjustDifficultyReason, 300))
	if err := c.Err(); err != nil {
		return err
	}

	adj, err := tutorStore().AdjustDifficulty(direction, adjustDifficultyReason)
	if err != nil {
		return err
	}

	if tutorJSONOutput {
		return printJSON(cmd.OutOrStdout(), adj)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Difficulty set to %q (%s)\n", direction, adj.ID)
	return nil
}
