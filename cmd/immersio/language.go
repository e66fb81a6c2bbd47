package main

import (
	"encoding/json"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/language"
)

var (
	languageRootOverride string
	languageJSONOutput   bool
)

var languageCmd = &cobra.Command{
	Use:   "language",
	Short: "Manage tutored languages",
	Long:  "Bootstrap, list, inspect, and delete language directories without running the server.",
}

func init() {
	languageCmd.PersistentFlags().StringVar(&languageRootOverride, "root", "",
		"Data root path (overrides IMMERSIO_DATA_ROOT)")
	languageCmd.PersistentFlags().BoolVar(&languageJSONOutput, "json", false,
		"Output in JSON format")

	languageCmd.AddCommand(languageBootstrapCmd)
	languageCmd.AddCommand(languageListCmd)
	languageCmd.AddCommand(languageInfoCmd)
	languageCmd.AddCommand(languageDeleteCmd)

	rootCmd.AddCommand(languageCmd)
}

// resolveLanguageManager creates a Manager from the --root override, the
// IMMERSIO_DATA_ROOT env var, or the default root, in that order.
func resolveLanguageManager() (*language.Manager, error) {
	rootPath := languageRootOverride
	if rootPath == "" {
		rootPath = os.Getenv("IMMERSIO_DATA_ROOT")
	}
	if rootPath == "" {
		rootPath = "~/.immersio/languages"
	}
	return language.NewManager(rootPath)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
