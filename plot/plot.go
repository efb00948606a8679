// Package plot condenses accumulated sweep iterations into display
// series and renders them as line charts.
package plot

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spinlab/odmr/data"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
)

// ErrNoSeries is returned when a selection is asked of an empty history
var ErrNoSeries = errors.New("no series accumulated yet")

// Average reduces the accumulated iterations to their element-wise
// mean.  Every series must have the same length.
func Average(series []data.Series) (data.Series, error) {
	if len(series) == 0 {
		return data.Series{}, ErrNoSeries
	}
	n := series[0].Len()
	var out data.Series
	for row := 0; row < 2; row++ {
		acc := make([]float64, n)
		for i, s := range series {
			if len(s[row]) != n {
				return data.Series{}, fmt.Errorf("series %d has %d points, expected %d", i, len(s[row]), n)
			}
			floats.Add(acc, s[row])
		}
		floats.Scale(1/float64(len(series)), acc)
		out[row] = acc
	}
	return out, nil
}

// Latest returns the most recent iteration
func Latest(series []data.Series) (data.Series, error) {
	if len(series) == 0 {
		return data.Series{}, ErrNoSeries
	}
	return series[len(series)-1], nil
}

// First returns the earliest iteration
func First(series []data.Series) (data.Series, error) {
	if len(series) == 0 {
		return data.Series{}, ErrNoSeries
	}
	return series[0], nil
}

// LatestN returns up to n of the most recent iterations
func LatestN(series []data.Series, n int) []data.Series {
	if n >= len(series) {
		return series
	}
	return series[len(series)-n:]
}

// RenderLine writes an HTML line chart of s to w, titled and labeled
// from the record it came from
func RenderLine(w io.Writer, rec data.Record, name string, s data.Series) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: rec.Title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: rec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: rec.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: rec.YLabel}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	xs := make([]string, s.Len())
	ys := make([]opts.LineData, s.Len())
	for i := 0; i < s.Len(); i++ {
		xs[i] = strconv.FormatFloat(s[0][i], 'f', 4, 64)
		ys[i] = opts.LineData{Value: s[1][i]}
	}
	line.SetXAxis(xs)
	line.AddSeries(name, ys, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line.Render(w)
}
