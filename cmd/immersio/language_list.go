package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var languageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all languages",
	Args:  cobra.NoArgs,
	RunE:  runLanguageList,
}

func runLanguageList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mgr, err := resolveLanguageManager()
	if err != nil {
		return err
	}

	infos, err := mgr.List(ctx)
	if err != nil {
		return fmt.Errorf("list languages: %w", err)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	if languageJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"languages": infos,
			"total":     len(infos),
		})
	}

	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No languages found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "NAME\tSCRIPT\tSTARTED\tWORDS\tRULES")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			info.Name,
			info.NativeScript,
			info.Started,
			info.Words,
			info.Rules,
		)
	}
	w.Flush()

	return nil
}
