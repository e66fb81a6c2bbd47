package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/validation"
)

var markGrammarUsedCmd = &cobra.Command{
	Use:   "mark-grammar-used <rule> <correct|incorrect>",
	Short: "Record an attempted use of a tracked grammar construct",
	Args:  cobra.ExactArgs(2),
	RunE:  runMarkGrammarUsed,
}

func init() {
	addTutorFlags(markGrammarUsedCmd)
	rootCmd.AddCommand(markGrammarUsedCmd)
}

func runMarkGrammarUsed(cmd *cobra.Command, args []string) error {
	rule, outcome := args[0], args[1]

	var c validation.Collector
	c.Add(validation.ValidateRequired("rule", rule))
	c.Add(validation.ValidateEnum("outcome", outcome, []string{"correct", "incorrect"}))
	if err := c.Err(); err != nil {
		return err
	}

	updated, err := tutorStore().MarkRuleUsed(rule, outcome == "correct")
	if err != nil {
		return err
	}

	if tutorJSONOutput {
		return printJSON(cmd.OutOrStdout(), updated)
	}

	status := fmt.Sprintf("%d star", updated.Stars)
	if updated.Stars != 1 {
		status += "s"
	}
	if updated.Permanent {
		status += ", permanent"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s use of %q: %s (streak %d)\n",
		strings.ToLower(outcome), updated.Rule, status, updated.CorrectStreak)
	return nil
}
