// Command odmrsweep runs an ODMR frequency sweep against an instrument
// server, streaming accumulated results to the data relay after every
// iteration.  Ctrl-C stops the sweep; iterations already published
// remain visible to subscribers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spinlab/odmr/sweep"

	"github.com/theckman/yacspin"
)

func main() {
	var (
		server     = flag.String("server", "localhost:8000", "host:port of the instrument server")
		instrument = flag.String("instrument", "/odmr/siggen", "endpoint of the signal generator on the server")
		dataAddr   = flag.String("data", "", "host:port of the data relay, defaults to the instrument server")
		p          = sweep.DefaultParams()
	)
	flag.StringVar(&p.Dataset, "dataset", p.Dataset, "name of the dataset to push data to")
	flag.Float64Var(&p.Start, "start", p.Start, "start frequency, Hz")
	flag.Float64Var(&p.Stop, "stop", p.Stop, "stop frequency, Hz")
	flag.IntVar(&p.NumPoints, "points", p.NumPoints, "number of scan points between start and stop, inclusive")
	flag.IntVar(&p.Iterations, "iterations", p.Iterations, "number of times to repeat the experiment")
	flag.Parse()

	if *dataAddr == "" {
		*dataAddr = *server
	}
	if err := p.Validate(); err != nil {
		log.Fatal(err)
	}

	spinner, err := yacspin.New(yacspin.Config{
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[14],
		Suffix:            " odmr sweep",
		SuffixAutoColon:   true,
		Message:           fmt.Sprintf("%g-%g GHz, %d points, %d iterations -> %s", p.Start/1e9, p.Stop/1e9, p.NumPoints, p.Iterations, p.Dataset),
		StopCharacter:     "✓",
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: "✗",
		StopFailColors:    []string{"fgRed"},
	})
	if err != nil {
		log.Fatal(err)
	}
	spinner.Start()

	var r sweep.Runner
	r.Run(func(stop <-chan struct{}) error {
		return sweep.ODMR(*server, *instrument, *dataAddr, p, stop)
	})

	done := make(chan error, 1)
	go func() { done <- r.Wait() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	select {
	case <-sig:
		spinner.Message("stopping")
		r.Kill()
		err = r.Wait()
	case err = <-done:
	}

	switch {
	case err == nil:
		spinner.Stop()
	case errors.Is(err, sweep.ErrStopped):
		spinner.StopFailMessage("stopped by user")
		spinner.StopFail()
	default:
		spinner.StopFailMessage(err.Error())
		spinner.StopFail()
		os.Exit(1)
	}
}
