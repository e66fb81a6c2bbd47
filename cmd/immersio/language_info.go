package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var languageInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details for one language",
	Args:  cobra.ExactArgs(1),
	RunE:  runLanguageInfo,
}

func runLanguageInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mgr, err := resolveLanguageManager()
	if err != nil {
		return err
	}

	lang, err := mgr.Get(ctx, args[0])
	if err != nil {
		return err
	}
	info := lang.Info()

	if languageJSONOutput {
		return printJSON(cmd.OutOrStdout(), info)
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintf(w, "Name:\t%s\n", info.DisplayName)
	fmt.Fprintf(w, "Native script:\t%s\n", info.NativeScript)
	fmt.Fprintf(w, "Romanization:\t%s\n", info.Romanization)
	fmt.Fprintf(w, "Started:\t%s\n", info.Started)
	fmt.Fprintf(w, "Words tracked:\t%d\n", info.Words)
	fmt.Fprintf(w, "Rules tracked:\t%d\n", info.Rules)
	fmt.Fprintf(w, "Directory:\t%s\n", lang.Dir)
	w.Flush()

	return nil
}
