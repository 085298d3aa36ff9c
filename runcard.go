// Package mcanalysis holds the run configuration shared by the command-line
// tools: the run card and its flag bindings.
package mcanalysis

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunCard describes one analysis run. It can be read from YAML and
// overridden from command-line flags.
type RunCard struct {
	Analyses    []string `yaml:"analyses"`
	Inputs      []string `yaml:"inputs"`
	Format      string   `yaml:"format"`
	Threads     int      `yaml:"threads"`
	MaxEvents   int64    `yaml:"max_events"`
	YODA        string   `yaml:"yoda"`
	ROOT        string   `yaml:"root"`
	PlotDir     string   `yaml:"plots"`
	PlotFormats []string `yaml:"plot_formats"`
}

func DefaultRunCard() *RunCard {
	return &RunCard{
		Analyses:    []string{"MC_SIMPLE"},
		Format:      "auto",
		Threads:     2,
		YODA:        "out.yoda",
		PlotFormats: []string{"png"},
	}
}

// LoadRunCard reads a YAML run card on top of the defaults.
func LoadRunCard(path string) (*RunCard, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run card: %w", err)
	}

	rc := DefaultRunCard()
	if err := yaml.Unmarshal(b, rc); err != nil {
		return nil, fmt.Errorf("unmarshal run card %s: %w", path, err)
	}
	return rc, nil
}

// RegisterFlags binds the run card fields to flags of fs.
func (rc *RunCard) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&StringArrayFlags{Values: &rc.Analyses}, "a", "analysis to run (repeatable)")
	fs.StringVar(&rc.Format, "f", rc.Format, "input format: auto, hepmc or proio")
	fs.IntVar(&rc.Threads, "t", rc.Threads, "number of concurrent files to process")
	fs.Int64Var(&rc.MaxEvents, "n", rc.MaxEvents, "maximum number of events per file (0 for all)")
	fs.StringVar(&rc.YODA, "yoda", rc.YODA, "path of YODA output file (empty to disable)")
	fs.StringVar(&rc.ROOT, "root", rc.ROOT, "path of ROOT output file (empty to disable)")
	fs.StringVar(&rc.PlotDir, "plots", rc.PlotDir, "directory for histogram plots (empty to disable)")
	fs.Var(&StringArrayFlags{Values: &rc.PlotFormats}, "plotfmt", "plot file format (repeatable)")
}

// Overlay copies into rc the fields of from whose flags were explicitly set
// on fs. from must have been bound to fs with RegisterFlags.
func (rc *RunCard) Overlay(from *RunCard, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			rc.Analyses = from.Analyses
		case "f":
			rc.Format = from.Format
		case "t":
			rc.Threads = from.Threads
		case "n":
			rc.MaxEvents = from.MaxEvents
		case "yoda":
			rc.YODA = from.YODA
		case "root":
			rc.ROOT = from.ROOT
		case "plots":
			rc.PlotDir = from.PlotDir
		case "plotfmt":
			rc.PlotFormats = from.PlotFormats
		}
	})
}

func (rc *RunCard) Validate() error {
	switch {
	case len(rc.Analyses) == 0:
		return errors.New("no analysis requested")
	case len(rc.Inputs) == 0:
		return errors.New("no input files")
	case rc.Threads < 1:
		return fmt.Errorf("invalid number of threads: %d", rc.Threads)
	case rc.PlotDir != "" && len(rc.PlotFormats) == 0:
		return errors.New("plots requested without a plot format")
	}

	switch rc.Format {
	case "auto", "hepmc", "proio":
	default:
		return fmt.Errorf("unknown input format %q", rc.Format)
	}
	return nil
}
