package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/validation"
)

var addWordNotes string

var addWordCmd = &cobra.Command{
	Use:   "add-word <word> <meaning>",
	Short: "Start tracking a new vocabulary word",
	Long:  "Add a word to vocabulary.json with fresh scheduling. The word is due immediately and follows spaced repetition from the first recall.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddWord,
}

func init() {
	addTutorFlags(addWordCmd)
	addWordCmd.Flags().StringVar(&addWordNotes, "notes", "",
		"Initial usage note")

	rootCmd.AddCommand(addWordCmd)
}

func runAddWord(cmd *cobra.Command, args []string) error {
	word, meaning := args[0], args[1]

	var c validation.Collector
	c.Add(validation.ValidateRequired("word", word))
	c.Add(validation.ValidateUTF8("word", word))
	c.Add(validation.ValidateNoNullBytes("word", word))
	c.Add(validation.ValidateMaxLength("word", word, 100))
	c.Add(validation.ValidateRequired("meaning", meaning))
	c.Add(validation.ValidateUTF8("meaning", meaning))
	c.Add(validation.ValidateMaxLength("meaning", meaning, 500))
	if err := c.Err(); err != nil {
		return err
	}

	entry, err := tutorStore().AddWord(word, meaning, addWordNotes)
	if err != nil {
		return err
	}

	if tutorJSONOutput {
		return printJSON(cmd.OutOrStdout(), entry)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s), next review %s\n",
		entry.Word, entry.Meaning, entry.NextReview)
	return nil
}
