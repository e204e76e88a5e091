// Package advisor wraps OpenAI chat completions behind the three
// assistant features of the optimizer: free-form Boglehead questions,
// fund comparisons, and allocation advice.
package advisor

import (
	"context"
	"fmt"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/bogleworks/boglesim/funds"
)

// DefaultModel is used when config does not name one.
const DefaultModel = "gpt-4o"

const systemPrompt = `You are a helpful financial advisor specializing in Boglehead investment principles.
You provide guidance on passive investing, low-cost index funds, and long-term investment strategies.

Key principles to adhere to:
1. Emphasize long-term investing over short-term trading
2. Always recommend low-cost index funds (expense ratios < 0.2%)
3. Focus on proper asset allocation based on age and risk tolerance
4. Advocate for tax-efficient placement of investments
5. Recommend diversification across US stocks, international stocks, and bonds
6. Promote the 3-fund portfolio approach: Total US Stock Market, Total International Stock Market, and Total Bond Market
7. Highlight importance of staying the course during market downturns
8. Discourage market timing and individual stock picking

Your advice should be educational, balanced, and focused on helping users become better investors.
Never recommend complicated investment products or high-cost actively managed funds.`

// Advisor answers investment questions through the OpenAI API.
type Advisor struct {
	cli   oa.Client
	model string
}

// New builds an advisor from an API key. An empty model falls back to
// DefaultModel.
func New(apiKey, model string) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	return &Advisor{
		cli:   oa.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Ask answers a free-form question in the Boglehead frame.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}
	return a.complete(ctx, question)
}

// CompareFunds asks for a comparison of the given catalog funds,
// favoring the lowest expense ratio unless there is a reason not to.
func (a *Advisor) CompareFunds(ctx context.Context, list []funds.Fund) (string, error) {
	if len(list) < 2 {
		return "", fmt.Errorf("need at least two funds to compare")
	}

	var b strings.Builder
	b.WriteString("Please compare these investment funds and provide a concise analysis:\n\n")
	for _, f := range list {
		fmt.Fprintf(&b, "- %s (%s): %s, expense ratio %.4f%%\n",
			f.Ticker, f.Provider, f.Category, f.ExpenseRatio*100)
	}
	b.WriteString(`
Focus on:
1. Expense ratios and their long-term impact
2. Tax efficiency considerations
3. Tracking differences to their benchmarks
4. Recommendation based on Boglehead principles

Favor the fund with the lowest expense ratio unless there's a compelling reason not to.`)

	return a.complete(ctx, b.String())
}

// AllocationAdvice asks for a US/international/bond split suited to the
// investor's age, risk tolerance, and situation.
func (a *Advisor) AllocationAdvice(ctx context.Context, age int, riskTolerance, situation string) (string, error) {
	if age < 1 {
		return "", fmt.Errorf("age must be positive, got %d", age)
	}

	prompt := fmt.Sprintf(`Please recommend an asset allocation for someone with these characteristics:

Age: %d
Risk Tolerance: %s
Financial Situation: %s

Provide:
1. Recommended allocation percentages for US stocks, international stocks, and bonds
2. Brief explanation of the reasoning
3. Suggested funds that match this allocation
4. Any tax-efficient placement considerations`, age, riskTolerance, situation)

	return a.complete(ctx, prompt)
}

func (a *Advisor) complete(ctx context.Context, userPrompt string) (string, error) {
	resp, err := a.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: a.model,
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(userPrompt),
		},
		MaxTokens: oa.Int(800),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
