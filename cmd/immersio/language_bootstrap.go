package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/language"
)

var bootstrapIfNotExists bool

var languageBootstrapCmd = &cobra.Command{
	Use:   "bootstrap <name>",
	Short: "Bootstrap a new language",
	Long:  "Create a language directory with tutor instructions and fresh learner state. Names are lowercase letters, 2-32 characters.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLanguageBootstrap,
}

func init() {
	languageBootstrapCmd.Flags().BoolVar(&bootstrapIfNotExists, "if-not-exists", false,
		"Exit 0 if the language already exists")
}

func runLanguageBootstrap(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mgr, err := resolveLanguageManager()
	if err != nil {
		return err
	}

	lang, err := mgr.Bootstrap(ctx, args[0])
	if err != nil {
		if errors.Is(err, language.ErrLanguageExists) && bootstrapIfNotExists {
			existing, loadErr := mgr.Get(ctx, args[0])
			if loadErr != nil {
				return fmt.Errorf("language exists but could not be loaded: %w", loadErr)
			}
			if languageJSONOutput {
				info := existing.Info()
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"name":            info.Name,
					"started":         info.Started,
					"already_existed": true,
				})
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Language %q already exists\n", existing.Name)
			return nil
		}
		return err
	}

	if languageJSONOutput {
		return printJSON(cmd.OutOrStdout(), lang.Info())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Bootstrapped %s (%s) at %s\n",
		language.Display(lang.Name), lang.Config.NativeScript, lang.Dir)
	return nil
}
