package output

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"

	"github.com/decibelcooper/mcanalysis/analysis"
)

// SaveROOT writes jobs to a ROOT file with one directory per analysis.
func SaveROOT(path string, jobs ...*analysis.Job) error {
	f, err := groot.Create(path)
	if err != nil {
		return fmt.Errorf("output: could not create ROOT file: %w", err)
	}
	if err := putJobs(f, jobs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func putJobs(f *riofs.File, jobs []*analysis.Job) error {
	for _, job := range jobs {
		name := job.Analysis.Name()
		dir, err := f.Mkdir(name)
		if err != nil {
			return fmt.Errorf("output: could not create directory %s: %w", name, err)
		}

		for _, hname := range job.Histos.Names() {
			if err := dir.Put(hname, rhist.NewH1DFrom(job.Histos.Get(hname))); err != nil {
				return fmt.Errorf("output: could not write %s: %w", HistoPath(name, hname), err)
			}
		}
	}
	return nil
}
