package main

import (
	"fmt"
	"strings"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule tables",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List rules (optionally for one device)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			device, _ := cmd.Flags().GetString("device")
			device = strings.ToLower(strings.TrimSpace(device))

			idx, err := loadIndex(cmd)
			if err != nil {
				return err
			}

			devices := idx.Devices()
			if device != "" {
				if !idx.Has(device) {
					return fmt.Errorf("no rules found for device %q", device)
				}
				devices = []string{device}
			}

			out := cmd.OutOrStdout()
			// Header.
			fmt.Fprintf(out, "%-16s  %-32s  %-8s  %-16s  %-4s  %s\n",
				"Device", "Diagnosis", "Severity", "Cost", "Tech", "Keywords")
			fmt.Fprintln(out, strings.Repeat("─", 110))

			n := 0
			for _, d := range devices {
				for _, rule := range idx.Lookup(d) {
					tech := "no"
					if rule.TechnicianRequired {
						tech = "yes"
					}
					fmt.Fprintf(out, "%-16s  %-32s  %-8s  %-16s  %-4s  %s\n",
						d, truncate(rule.Diagnosis, 32), rule.Severity, rule.Cost, tech,
						strings.Join(rule.Keywords, ", "))
					n++
				}
			}

			fmt.Fprintf(out, "\n%d rules\n", n)
			return nil
		},
	}
	listCmd.Flags().String("device", "", "Only list rules for this device category")

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a rules YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := knowledge.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules across %d devices (%s)\n",
				args[0], idx.RuleCount(), len(idx.Devices()), strings.Join(idx.Devices(), ", "))
			return nil
		},
	}

	rulesCmd.AddCommand(listCmd)
	rulesCmd.AddCommand(validateCmd)
	return rulesCmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
