package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/learner"
	"github.com/immersio/immersio/internal/validation"
)

var (
	addGrammarLevel string
	addGrammarNotes string
)

var addGrammarCmd = &cobra.Command{
	Use:   "add-grammar <rule> <description>",
	Short: "Start tracking a grammar construct",
	Long:  "Add a construct to grammar.json at one star. Stars grow with consecutive correct uses and a construct held at five stars long enough becomes permanent.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddGrammar,
}

func init() {
	addTutorFlags(addGrammarCmd)
	addGrammarCmd.Flags().StringVar(&addGrammarLevel, "level", "",
		"CEFR level of the construct (A1-C2)")
	addGrammarCmd.Flags().StringVar(&addGrammarNotes, "notes", "",
		"Initial usage note")
	addGrammarCmd.MarkFlagRequired("level")

	rootCmd.AddCommand(addGrammarCmd)
}

func runAddGrammar(cmd *cobra.Command, args []string) error {
	rule, description := args[0], args[1]

	var c validation.Collector
	c.Add(validation.ValidateRequired("rule", rule))
	c.Add(validation.ValidateUTF8("rule", rule))
	c.Add(validation.ValidateNoNullBytes("rule", rule))
	c.Add(validation.ValidateMaxLength("rule", rule, 200))
	c.Add(validation.ValidateRequired("description", description))
	c.Add(validation.ValidateMaxLength("description", description, 500))
	c.Add(validation.ValidateEnum("level", addGrammarLevel, learner.Levels))
	if err := c.Err(); err != nil {
		return err
	}

	added, err := tutorStore().AddRule(rule, description, addGrammarLevel, addGrammarNotes)
	if err != nil {
		return err
	}

	if tutorJSONOutput {
		return printJSON(cmd.OutOrStdout(), added)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added rule %q (%s) at %d star\n",
		added.Rule, added.Level, added.Stars)
	return nil
}
