package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/validation"
)

var markWordRecalledCmd = &cobra.Command{
	Use:   "mark-word-recalled <word> <quality>",
	Short: "Record a recall attempt for a tracked word",
	Long:  "Record a recall with quality 0-5 and reschedule the word. Quality 3 or better passes; below 3 resets the word to daily review.",
	Args:  cobra.ExactArgs(2),
	RunE:  runMarkWordRecalled,
}

func init() {
	addTutorFlags(markWordRecalledCmd)
	rootCmd.AddCommand(markWordRecalledCmd)
}

func runMarkWordRecalled(cmd *cobra.Command, args []string) error {
	word := args[0]

	quality, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quality must be an integer 0-5, got %q", args[1])
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("word", word))
	c.Add(validation.ValidateIntRange("quality", quality, 0, 5))
	if err := c.Err(); err != nil {
		return err
	}

	entry, err := tutorStore().MarkRecalled(word, quality)
	if err != nil {
		return err
	}

	if tutorJSONOutput {
		return printJSON(cmd.OutOrStdout(), entry)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %q quality %d: interval %dd, ease %.2f, next review %s\n",
		entry.Word, quality, entry.Interval, entry.Ease, entry.NextReview)
	return nil
}
