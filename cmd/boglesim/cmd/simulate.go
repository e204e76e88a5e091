package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bogleworks/boglesim/chart"
	"github.com/bogleworks/boglesim/simulate"
	"github.com/bogleworks/boglesim/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo retirement projection",
	Long: `Simulate generates thousands of independent random future paths of
portfolio value and summarizes them into percentile bands, means, and
depletion probabilities per year.

Example:
  boglesim simulate --balance 200000 --contribution 12000 --years 30 \
    --mean 0.07 --volatility 0.15 --trials 5000 --seed 42`,
	RunE: runSimulate,
}

var (
	simBalance       float64
	simContribution  float64
	simContribGrowth float64
	simYears         int
	simMean          float64
	simVolatility    float64
	simWithdraw      float64
	simWithdrawStart int
	simTrials        int
	simSeed          int64
	simModel         string
	simWorkers       int
	simChartPath     string
	simDBPath        string
	simSave          bool
	simJSON          bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64VarP(&simBalance, "balance", "b", 100_000, "starting portfolio balance")
	simulateCmd.Flags().Float64VarP(&simContribution, "contribution", "c", 12_000, "annual contribution")
	simulateCmd.Flags().Float64Var(&simContribGrowth, "contribution-growth", 0, "annual contribution growth rate (0.02 = 2%)")
	simulateCmd.Flags().IntVarP(&simYears, "years", "y", 30, "investment horizon in years (1-100)")
	simulateCmd.Flags().Float64VarP(&simMean, "mean", "m", 0.07, "expected annual return (0.07 = 7%)")
	simulateCmd.Flags().Float64VarP(&simVolatility, "volatility", "v", 0.15, "annual return volatility (0.15 = 15%)")
	simulateCmd.Flags().Float64VarP(&simWithdraw, "withdraw", "w", 0, "annual withdrawal once the drawdown phase starts")
	simulateCmd.Flags().IntVar(&simWithdrawStart, "withdraw-start", 1, "simulation year the withdrawals begin (1-based)")
	simulateCmd.Flags().IntVarP(&simTrials, "trials", "t", 5_000, "number of simulated trials")
	simulateCmd.Flags().Int64VarP(&simSeed, "seed", "s", 0, "random seed for reproducible runs")
	simulateCmd.Flags().StringVar(&simModel, "model", "normal", "return model (normal, student-t)")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "worker goroutines (0 = one per CPU)")
	simulateCmd.Flags().StringVar(&simChartPath, "chart", "", "write a PNG fan chart to this path")
	simulateCmd.Flags().StringVarP(&simDBPath, "db", "d", "./boglesim.db", "path to SQLite database (used with --save)")
	simulateCmd.Flags().BoolVar(&simSave, "save", false, "persist the run (assumption + summary) to the database")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "emit the full summary as JSON instead of a table")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	model, err := simulate.ModelByName(simModel)
	if err != nil {
		return err
	}

	assumption := simulate.Assumption{
		StartingBalance:    simBalance,
		AnnualContribution: simContribution,
		ContributionGrowth: simContribGrowth,
		HorizonYears:       simYears,
		MeanReturn:         simMean,
		Volatility:         simVolatility,
	}
	if simWithdraw > 0 {
		assumption.Withdrawal = &simulate.WithdrawalPhase{
			Annual:    simWithdraw,
			StartYear: simWithdrawStart,
		}
	}

	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = &simSeed
	}

	engine := &simulate.Engine{Model: model, Workers: simWorkers}
	summary, err := engine.Run(context.Background(), assumption, simTrials, seed)
	if err != nil {
		return err
	}

	if simJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		printSummary(summary)
	}

	if simChartPath != "" {
		png, err := chart.RenderFan(summary, "Monte Carlo Projection")
		if err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		if err := os.WriteFile(simChartPath, png, 0644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Printf("\nChart written to %s\n", simChartPath)
	}

	if simSave {
		st, err := store.NewSQLite(simDBPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer st.Close()

		runID, err := st.SaveRun(assumption, summary)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nRun saved: %s\n", runID)
	}

	return nil
}

func printSummary(s *simulate.Summary) {
	fmt.Printf("Monte Carlo Projection (%d trials, seed %d)\n\n", s.Trials, s.Seed)

	fmt.Printf("%-5s", "Year")
	for _, p := range s.Percentiles {
		fmt.Printf("  %12s", fmt.Sprintf("P%g", p))
	}
	fmt.Printf("  %12s  %9s\n", "Mean", "Depleted")

	for _, y := range s.Years {
		fmt.Printf("%-5d", y.Year)
		for _, v := range y.Percentile {
			fmt.Printf("  %12.0f", v)
		}
		fmt.Printf("  %12.0f  %8.1f%%\n", y.Mean, y.DepletionProb*100)
	}

	fmt.Printf("\nFinal year: median $%.0f, mean $%.0f, range $%.0f - $%.0f\n",
		s.Final.Median, s.Final.Mean, s.Final.Min, s.Final.Max)

	if len(s.Final.Targets) > 0 {
		fmt.Println("\nOdds of reaching:")
		for _, t := range s.Final.Targets {
			fmt.Printf("  $%-12.0f %.1f%%\n", t.Target, t.Probability*100)
		}
	}

	if len(s.Final.Income) > 0 {
		fmt.Println("\nAnnual income by safe withdrawal rate (median balance):")
		for _, band := range s.Final.Income {
			fmt.Printf("  %.1f%%  $%.0f\n", band.Rate*100, band.Median)
		}
	}

	if s.FailedTrials > 0 {
		fmt.Printf("\nNote: %d trials excluded for non-finite balances\n", s.FailedTrials)
	}
}
