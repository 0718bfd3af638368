package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/D-dracula/merchantlens/internal/analyzer"
	"github.com/D-dracula/merchantlens/internal/forecast"
)

func forecastCmd() *cobra.Command {
	var asJSON bool
	var leadTimeDays int

	cmd := &cobra.Command{
		Use:   "forecast <file>",
		Short: "Forecast stockouts and reorders from a sales-history export",
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

			cfg := forecast.DefaultConfig()
			if leadTimeDays > 0 {
				cfg.LeadTimeDays = leadTimeDays
			} else if configured := viper.GetInt("forecast.lead_time_days"); configured > 0 {
				cfg.LeadTimeDays = configured
			}

			a := analyzer.New(client, slog.Default(), analyzer.Options{
				Locale:   viper.GetString("format.locale"),
				Currency: viper.GetString("format.currency"),
				Forecast: cfg,
			})

			report, err := a.ForecastInventory(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			fmt.Println(renderForecastReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw report as JSON")
	cmd.Flags().IntVar(&leadTimeDays, "lead-time", 0, "reorder lead time in days (default 14)")
	return cmd
}
