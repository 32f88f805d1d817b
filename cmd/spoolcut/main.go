// SpoolCut — pipe spool fabrication calculator and cut planner
//
// Fitting takeouts, offsets, saddle and segmented-bend templates, wedge gap
// correction and First-Fit-Decreasing bar packing, from the command line
// or over a JSON HTTP API.
//
// Build:
//   go build -o spoolcut ./cmd/spoolcut
//
// Usage:
//   spoolcut [-config spoolcut.yml] [-log-level debug] serve
//   spoolcut pack -cuts cuts.csv -pdf plan.pdf -labels labels.pdf
//   spoolcut pack -load job.json -estimate -price 85
//   spoolcut template -main 200 -branch 100 -dxf saddle.dxf
//   spoolcut wedge -dn 150 -g12 2.5 -g6 0.5 -png wedge.png
//   spoolcut segment -dn 200 -segments 4 -dxf segment.dxf
//   spoolcut backup export -out jobs.json job1 job2
//   spoolcut table

package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/piwi3910/SpoolCut/internal/config"
	"github.com/piwi3910/SpoolCut/internal/logging"
)

func main() {
	configLocation := flag.String("config", "", "path to configuration file (optional)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	app := &cli{conf: conf, logger: logger, out: os.Stdout}
	if err := app.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Error("command failed",
			zap.String("op", "main"),
			zap.String("command", flag.Arg(0)),
			zap.Error(err),
		)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: spoolcut [-config file] [-log-level level] <command> [flags]

Commands:
  serve      run the JSON HTTP API
  pack       pack a cut list into stock bars
  template   print a branch saddle profile and write templates
  wedge      solve a gapped pipe end from four face gaps
  segment    lay out a segmented (lobster-back) bend
  backup     export or import saved jobs
  table      print the active dimension table

Global flags:
`)
	flag.PrintDefaults()
}
