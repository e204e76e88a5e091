// Package chart renders simulation output as PNG images for the web
// UI and CLI.
package chart

import (
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"github.com/bogleworks/boglesim/simulate"
)

// RenderFan draws the percentile bands of a projection summary as a
// line chart: one series per requested percentile plus the mean,
// year on the x axis, portfolio value on the y axis.
func RenderFan(s *simulate.Summary, title string) ([]byte, error) {
	if s == nil || len(s.Years) == 0 {
		return nil, fmt.Errorf("empty summary")
	}
	if title == "" {
		title = "Monte Carlo Projection"
	}

	var values [][]float64
	var legend []string
	for _, rank := range s.Percentiles {
		series, ok := s.PercentileSeries(rank)
		if !ok {
			continue
		}
		values = append(values, series)
		legend = append(legend, fmt.Sprintf("P%g", rank))
	}
	values = append(values, s.MeanSeries())
	legend = append(legend, "Mean")

	xLabels := make([]string, len(s.Years))
	for i, y := range s.Years {
		xLabels[i] = fmt.Sprintf("Y%d", y.Year)
	}

	minVal, maxVal := values[0][0], values[0][0]
	for _, series := range values {
		for _, v := range series {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal*0.05 + 1
	}
	yMin := minVal - padding
	if yMin < 0 {
		yMin = 0
	}
	yMax := maxVal + padding

	splitNum := 6
	if len(xLabels) <= 30 {
		splitNum = len(xLabels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(title),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: legend,
			Top:  charts.PositionTop,
		}),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf, nil
}
