package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/decibelcooper/mcanalysis"
	"github.com/decibelcooper/mcanalysis/analysis"
	"github.com/decibelcooper/mcanalysis/evtio"
	"github.com/decibelcooper/mcanalysis/output"

	_ "github.com/decibelcooper/mcanalysis/mcsimple"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <hepmc-or-proio-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	rc := mcanalysis.DefaultRunCard()
	rc.RegisterFlags(flag.CommandLine)
	var (
		config  = flag.String("config", "", "YAML run card; explicit flags take precedence")
		list    = flag.Bool("l", false, "list available analyses and exit")
		verbose = flag.Bool("v", false, "log per-event diagnostics")
		prof    = flag.Bool("profile", false, "write a CPU profile to the working directory")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *list {
		for _, name := range analysis.Names() {
			fmt.Println(name)
		}
		return
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *config != "" {
		card, err := mcanalysis.LoadRunCard(*config)
		if err != nil {
			log.Fatal(err)
		}
		card.Overlay(rc, flag.CommandLine)
		rc = card
	}
	if flag.NArg() > 0 {
		rc.Inputs = flag.Args()
	}
	if err := rc.Validate(); err != nil {
		printUsage()
		log.Fatal(err)
	}

	profDir := ""
	if *prof {
		profDir = "."
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, rc, profDir)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

// run processes the inputs of rc and writes the requested outputs. A CPU
// profile is written to profDir unless it is empty.
func run(ctx context.Context, rc *mcanalysis.RunCard, profDir string) error {
	if profDir != "" {
		defer profile.Start(profile.ProfilePath(profDir), profile.Quiet).Stop()
	}

	jobs, err := analysis.RunFiles(ctx, rc.Analyses, rc.Inputs, evtio.Opener(rc.Format), rc.Threads, rc.MaxEvents)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		log.WithFields(log.Fields{
			"analysis": job.Analysis.Name(),
			"events":   job.Histos.Events(),
			"sumw":     job.Histos.SumW(),
		}).Info("analysis done")
	}

	if rc.YODA != "" {
		if err := output.SaveYODA(rc.YODA, jobs...); err != nil {
			return err
		}
	}
	if rc.ROOT != "" {
		if err := output.SaveROOT(rc.ROOT, jobs...); err != nil {
			return err
		}
	}
	if rc.PlotDir != "" {
		if err := output.SavePlots(rc.PlotDir, rc.PlotFormats, jobs...); err != nil {
			return err
		}
	}
	return nil
}
