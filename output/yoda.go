// Package output writes the histograms of finished analysis jobs as YODA
// text, ROOT files and plots.
package output

import (
	"fmt"
	"io"
	"os"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/mcanalysis/analysis"
)

// HistoPath is the path of a histogram inside the output files,
// /ANALYSIS/NAME.
func HistoPath(analysisName, histoName string) string {
	return "/" + analysisName + "/" + histoName
}

// WriteYODA writes every histogram of jobs to w in YODA format.
func WriteYODA(w io.Writer, jobs ...*analysis.Job) error {
	for _, job := range jobs {
		name := job.Analysis.Name()
		for _, hname := range job.Histos.Names() {
			path := HistoPath(name, hname)
			raw, err := marshalYODA(job.Histos.Get(hname), path)
			if err != nil {
				return fmt.Errorf("output: could not marshal %s to YODA: %w", path, err)
			}
			if _, err := w.Write(raw); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// marshalYODA encodes h under path. The bins are shared with h but the
// annotations are copied, so h itself is left untouched.
func marshalYODA(h *hbook.H1D, path string) ([]byte, error) {
	ann := make(hbook.Annotation, len(h.Ann)+1)
	for k, v := range h.Ann {
		ann[k] = v
	}
	ann["Path"] = path
	return (&hbook.H1D{Binning: h.Binning, Ann: ann}).MarshalYODA()
}

// SaveYODA writes jobs to a YODA file at path.
func SaveYODA(path string, jobs ...*analysis.Job) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteYODA(f, jobs...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
