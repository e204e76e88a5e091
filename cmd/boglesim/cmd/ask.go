package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bogleworks/boglesim/advisor"
	"github.com/bogleworks/boglesim/funds"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the Boglehead investment assistant",
	Long: `Ask sends a question to the OpenAI-backed investment assistant. The
API key is read from the OPENAI_API_KEY environment variable.

Examples:
  boglesim ask "What is the three-fund portfolio?"
  boglesim ask compare VTI ITOT SWTSX
  boglesim ask allocation --age 35 --risk moderate`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var askCompareCmd = &cobra.Command{
	Use:   "compare <ticker> <ticker> [ticker...]",
	Short: "Compare catalog funds",
	Long: `Compare asks the assistant for a side-by-side analysis of two or more
catalog funds, favoring the lowest expense ratio.

Example:
  boglesim ask compare VTI ITOT SWTSX`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAskCompare,
}

var askAllocationCmd = &cobra.Command{
	Use:   "allocation",
	Short: "Get an asset allocation recommendation",
	Long: `Allocation asks the assistant for a US/international/bond split suited
to an investor's age, risk tolerance, and situation.

Example:
  boglesim ask allocation --age 35 --risk moderate --situation "stable income, 6-month emergency fund"`,
	RunE: runAskAllocation,
}

var (
	askModel     string
	askAge       int
	askRisk      string
	askSituation string
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.AddCommand(askCompareCmd)
	askCmd.AddCommand(askAllocationCmd)

	askCmd.PersistentFlags().StringVar(&askModel, "model", advisor.DefaultModel, "OpenAI model")

	askAllocationCmd.Flags().IntVar(&askAge, "age", 30, "investor age")
	askAllocationCmd.Flags().StringVar(&askRisk, "risk", "moderate", "risk tolerance (conservative, moderate, aggressive)")
	askAllocationCmd.Flags().StringVar(&askSituation, "situation", "", "financial situation notes")
}

func newAdvisor() (*advisor.Advisor, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return advisor.New(apiKey, askModel), nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	adv, err := newAdvisor()
	if err != nil {
		return err
	}

	answer, err := adv.Ask(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func runAskCompare(cmd *cobra.Command, args []string) error {
	list := make([]funds.Fund, 0, len(args))
	for _, ticker := range args {
		f, ok := funds.ByTicker(strings.ToUpper(ticker))
		if !ok {
			return fmt.Errorf("unknown fund %q", ticker)
		}
		list = append(list, f)
	}

	adv, err := newAdvisor()
	if err != nil {
		return err
	}

	answer, err := adv.CompareFunds(context.Background(), list)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func runAskAllocation(cmd *cobra.Command, args []string) error {
	adv, err := newAdvisor()
	if err != nil {
		return err
	}

	answer, err := adv.AllocationAdvice(context.Background(), askAge, askRisk, askSituation)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
