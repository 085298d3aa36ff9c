package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/mcanalysis/analysis"
)

// PlotFile is the file name used for a histogram plot, with spaces
// replaced so the result is shell friendly.
func PlotFile(dir, analysisName, histoName, format string) string {
	base := analysisName + "_" + strings.ReplaceAll(histoName, " ", "_") + "." + format
	return filepath.Join(dir, base)
}

// SavePlots draws one figure per histogram into dir, once per format
// (any extension gonum/plot can save, e.g. png, pdf, svg).
func SavePlots(dir string, formats []string, jobs ...*analysis.Job) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, job := range jobs {
		name := job.Analysis.Name()
		for _, hname := range job.Histos.Names() {
			p := hplot.New()
			p.Title.Text = HistoPath(name, hname)
			p.X.Label.Text = hname
			p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

			h := hplot.NewH1D(job.Histos.Get(hname))
			h.Infos.Style = hplot.HInfoSummary
			p.Add(h)

			for _, format := range formats {
				file := PlotFile(dir, name, hname, format)
				if err := p.Save(6*vg.Inch, 4*vg.Inch, file); err != nil {
					return fmt.Errorf("output: could not save %s: %w", file, err)
				}
			}
		}
	}
	return nil
}
