package main

import (
	"os"
	"strings"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fixit",
		Short:        "FixIt device diagnosis tools",
		Long:         "FixIt maps free-text device symptoms to canned diagnoses. This CLI runs diagnoses offline and validates knowledge files.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("rules", "", "Path to a rules YAML file (overrides FIXIT_RULES_PATH and the embedded table)")

	rootCmd.AddCommand(newDiagnoseCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newIssuesCmd())
	return rootCmd
}

// loadIndex resolves the rule table from --rules, then FIXIT_RULES_PATH,
// then the embedded default.
func loadIndex(cmd *cobra.Command) (*knowledge.Index, error) {
	path, _ := cmd.Flags().GetString("rules")
	if path == "" {
		path = lookupEnv("FIXIT_RULES_PATH")
	}
	if path == "" {
		return knowledge.Default()
	}
	return knowledge.LoadFile(path)
}

func lookupEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
