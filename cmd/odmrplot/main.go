// Command odmrplot subscribes to a dataset on the data relay and
// renders the accumulated sweep iterations as an HTML line chart.
// By default it waits for one record, writes the chart, and exits;
// with -watch it keeps polling and rewrites the chart as new
// iterations arrive.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"golang.org/x/time/rate"

	"github.com/spinlab/odmr/data"
	"github.com/spinlab/odmr/plot"
	"github.com/spinlab/odmr/sweep"
)

func main() {
	var (
		dataAddr = flag.String("data", "localhost:8000", "host:port of the data relay")
		dataset  = flag.String("dataset", "odmr", "name of the dataset to subscribe to")
		out      = flag.String("out", "odmr.html", "path of the HTML chart to write")
		mode     = flag.String("series", "avg", "which iterations to plot: avg, latest, first, or latest-n")
		n        = flag.Int("n", 10, "window size for -series latest-n")
		watch    = flag.Bool("watch", false, "keep polling and rewrite the chart as data arrives")
		interval = flag.Duration("interval", 500*time.Millisecond, "poll pacing in watch mode")
	)
	flag.Parse()

	sink, err := data.NewSink(*dataAddr, *dataset)
	if err != nil {
		log.Fatal(err)
	}
	defer sink.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	lim := rate.NewLimiter(rate.Every(*interval), 1)
	for {
		if err := lim.Wait(ctx); err != nil {
			// interrupted
			return
		}
		if !sink.Pop() {
			if err := sink.Err(); err != nil {
				log.Fatalf("lost connection to data relay: %v", err)
			}
			continue
		}
		if err := render(sink.Record, *mode, *n, *out); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s with %d accumulated iterations", *out, len(sink.Datasets[sweep.SeriesName]))
		if !*watch {
			return
		}
	}
}

// render reduces the accumulated history per mode and writes the chart
func render(rec data.Record, mode string, n int, out string) error {
	history := rec.Datasets[sweep.SeriesName]
	var (
		s    data.Series
		err  error
		name = mode
	)
	switch mode {
	case "latest":
		s, err = plot.Latest(history)
	case "first":
		s, err = plot.First(history)
	case "latest-n":
		s, err = plot.Average(plot.LatestN(history, n))
	default:
		s, err = plot.Average(history)
		name = "avg"
	}
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return plot.RenderLine(f, rec, name, s)
}
