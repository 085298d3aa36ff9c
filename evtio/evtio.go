// Package evtio reads generator events from HepMC2 ASCII and proio files.
package evtio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/decibelcooper/mcanalysis/analysis"
)

const (
	FormatAuto  = "auto"
	FormatHepMC = "hepmc"
	FormatProio = "proio"
)

// FormatFor guesses the input format from the file name, ignoring a
// compression suffix.
func FormatFor(path string) string {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".gz", ".xz"} {
		name = strings.TrimSuffix(name, ext)
	}
	if filepath.Ext(name) == ".proio" {
		return FormatProio
	}
	return FormatHepMC
}

// Open returns an event source for path. format is one of FormatAuto,
// FormatHepMC or FormatProio.
func Open(path, format string) (analysis.Source, error) {
	if format == "" || format == FormatAuto {
		format = FormatFor(path)
	}

	switch format {
	case FormatHepMC:
		return OpenHepMC(path)
	case FormatProio:
		return OpenProio(path)
	default:
		return nil, fmt.Errorf("evtio: unknown input format %q", format)
	}
}

// Opener adapts Open to a fixed format.
func Opener(format string) func(string) (analysis.Source, error) {
	return func(path string) (analysis.Source, error) {
		return Open(path, format)
	}
}
