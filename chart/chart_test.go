package chart

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bogleworks/boglesim/simulate"
)

func testSummary(t *testing.T, horizon int) *simulate.Summary {
	t.Helper()
	e := &simulate.Engine{}
	seed := int64(1)
	s, err := e.Run(context.Background(), simulate.Assumption{
		StartingBalance:    100_000,
		AnnualContribution: 12_000,
		HorizonYears:       horizon,
		MeanReturn:         0.07,
		Volatility:         0.15,
	}, 100, &seed)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return s
}

func TestRenderFanProducesPNG(t *testing.T) {
	t.Parallel()

	png, err := RenderFan(testSummary(t, 30), "Test Projection")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected PNG magic bytes")
}

func TestRenderFanDefaultTitle(t *testing.T) {
	t.Parallel()

	png, err := RenderFan(testSummary(t, 5), "")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRenderFanSingleYear(t *testing.T) {
	t.Parallel()

	png, err := RenderFan(testSummary(t, 1), "")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRenderFanRejectsEmptySummary(t *testing.T) {
	t.Parallel()

	_, err := RenderFan(nil, "")
	assert.Error(t, err)

	_, err = RenderFan(&simulate.Summary{}, "")
	assert.Error(t, err)
}
