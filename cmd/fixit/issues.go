package main

import (
	"fmt"
	"strings"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"github.com/spf13/cobra"
)

func newIssuesCmd() *cobra.Command {
	issuesCmd := &cobra.Command{
		Use:   "issues",
		Short: "Validate issue catalogs",
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an issue catalog JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := knowledge.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d issues across %d devices (%s)\n",
				args[0], catalog.Len(), len(catalog.Devices()), strings.Join(catalog.Devices(), ", "))
			return nil
		},
	}

	issuesCmd.AddCommand(validateCmd)
	return issuesCmd
}
