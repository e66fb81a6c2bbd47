package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

var languageDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a language and all its learner state",
	Long:  "Permanently delete a language directory including vocabulary, grammar, and conversation sessions. Requires --force or interactive confirmation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLanguageDelete,
}

func init() {
	languageDeleteCmd.Flags().BoolVar(&deleteForce, "force", false,
		"Skip confirmation prompt")
}

func runLanguageDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	mgr, err := resolveLanguageManager()
	if err != nil {
		return err
	}

	// Interactive confirmation unless --force
	if !deleteForce {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "WARNING: This will permanently delete %q and all learner progress.\n", name)
		fmt.Fprint(errOut, "Type the language name to confirm: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}

		if strings.TrimSpace(input) != name {
			fmt.Fprintln(errOut, "Aborted. Language name did not match.")
			return nil
		}
	}

	if err := mgr.Delete(ctx, name); err != nil {
		return err
	}

	if languageJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"name":    name,
			"deleted": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted language %q\n", name)
	return nil
}
