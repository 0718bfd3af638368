package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/D-dracula/merchantlens/internal/analyzer"
)

func analyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze per-order profit and loss from an orders export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			client, err := createLLMClient()
			if err != nil {
				return err
			}

			a := analyzer.New(client, slog.Default(), analyzer.Options{
				Locale:   viper.GetString("format.locale"),
				Currency: viper.GetString("format.currency"),
			})

			report, err := a.AnalyzeProfit(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			fmt.Println(renderProfitReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw report as JSON")
	return cmd
}
