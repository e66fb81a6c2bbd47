package main

import (
	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/learner"
)

// Flags shared by the tutor script commands. These commands are what the
// spawned agent runs from inside a language directory, so they default to
// the current directory and must fail with a non-zero exit when the state
// documents are missing.
var (
	tutorDir        string
	tutorJSONOutput bool
)

func addTutorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tutorDir, "dir", ".",
		"Language directory holding the state documents")
	cmd.Flags().BoolVar(&tutorJSONOutput, "json", false,
		"Output in JSON format")
}

func tutorStore() *learner.Store {
	return learner.NewStore(tutorDir)
}
