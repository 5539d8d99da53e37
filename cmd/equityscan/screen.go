package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/equityscan/equityscan/internal/screener"
)

func newScreenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Run a one-shot screen and print the ranked results",
		Long: `Runs a preset screen over the universe and prints ranked results.
Use --json for machine-readable output.`,
		RunE: runScreen,
	}
	cmd.Flags().String("preset", "momentum", "Preset screen (momentum|value|growth|dividend|quality|sector-leaders)")
	cmd.Flags().String("sector", "", "Sector for sector-leaders")
	cmd.Flags().Int("top", 0, "Limit output to the top N results (0 = all)")
	cmd.Flags().Bool("json", false, "Emit JSON instead of a table")
	return cmd
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	presetName, _ := cmd.Flags().GetString("preset")
	preset, err := screener.ParsePreset(presetName)
	if err != nil {
		return err
	}
	sector, _ := cmd.Flags().GetString("sector")
	top, _ := cmd.Flags().GetInt("top")
	asJSON, _ := cmd.Flags().GetBool("json")

	sc, symbols, cleanup, err := buildScreener(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := sc.RunPreset(context.Background(), symbols, preset, sector)
	if err != nil {
		return err
	}
	if top > 0 && len(results) > top {
		results = results[:top]
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printTable(results)
	return nil
}

func printTable(results []screener.Result) {
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSYMBOL\tSECTOR\tPRICE\tSCORE\tRATING")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.1f\t%s\n",
			i+1, r.Symbol, r.Sector, r.CurrentPrice, r.Score, r.FinancialRating)
	}
	w.Flush()
}
