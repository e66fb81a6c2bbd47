package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/validation"
)

var updateWordNoteCmd = &cobra.Command{
	Use:   "update-word-note <word> <note>",
	Short: "Append a dated usage note to a tracked word",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdateWordNote,
}

func init() {
	addTutorFlags(updateWordNoteCmd)
	rootCmd.AddCommand(updateWordNoteCmd)
}

func runUpdateWordNote(cmd *cobra.Command, args []string) error {
	word, note := args[0], args[1]

	var c validation.Collector
	c.Add(validation.ValidateRequired("word", word))
	c.Add(validation.ValidateRequired("note", note))
	c.Add(validation.ValidateUTF8("note", note))
	c.Add(validation.ValidateNoNullBytes("note", note))
	c.Add(validation.ValidateMaxLength("note", note, 500))
	if err := c.Err(); err != nil {
		return err
	}

	if err := tutorStore().UpdateWordNote(word, note); err != nil {
		return err
	}

	if tutorJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"word":  word,
			"noted": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Noted %q\n", word)
	return nil
}
