package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kiranshivaraju/fixit/internal/diagnosis"
	"github.com/spf13/cobra"
)

func newDiagnoseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose <symptom...>",
		Short: "Diagnose a symptom and print the result as JSON",
		Example: `  fixit diagnose --device phone "my phone won't charge"
  fixit diagnose --strategy legacy fridge is warm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			device, _ := cmd.Flags().GetString("device")
			strategyName, _ := cmd.Flags().GetString("strategy")

			device = strings.ToLower(strings.TrimSpace(device))
			if device == "" {
				return fmt.Errorf("--device must not be blank")
			}

			idx, err := loadIndex(cmd)
			if err != nil {
				return err
			}
			strategy, err := diagnosis.NewStrategy(strategyName, idx)
			if err != nil {
				return err
			}

			svc := diagnosis.NewService(strategy, diagnosis.NewResponder())
			result := svc.Diagnose(device, strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().String("device", "phone", "Device category to match against")
	cmd.Flags().String("strategy", diagnosis.StrategyRules, "Matching strategy (rules or legacy)")
	return cmd
}
