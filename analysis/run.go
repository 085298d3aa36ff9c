package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Job pairs an analysis instance with the histogram store it booked into.
type Job struct {
	Analysis Analysis
	Histos   *Histos
}

// NewJob creates and initializes the named analysis.
func NewJob(name string) (*Job, error) {
	a, err := New(name)
	if err != nil {
		return nil, err
	}

	hs := NewHistos()
	if err := a.Init(hs); err != nil {
		return nil, fmt.Errorf("analysis: could not initialize %s: %w", name, err)
	}
	return &Job{Analysis: a, Histos: hs}, nil
}

func newJobs(names []string) ([]*Job, error) {
	if len(names) == 0 {
		return nil, errors.New("analysis: no analysis requested")
	}

	jobs := make([]*Job, len(names))
	for i, name := range names {
		job, err := NewJob(name)
		if err != nil {
			return nil, err
		}
		jobs[i] = job
	}
	return jobs, nil
}

// Process feeds events from src to every job until the source is drained,
// maxEvents events have been read (if maxEvents > 0) or ctx is done. It
// returns the number of events processed.
func Process(ctx context.Context, jobs []*Job, src Source, maxEvents int64) (int64, error) {
	var n int64
	for maxEvents <= 0 || n < maxEvents {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		evt, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("analysis: could not read event %d: %w", n, err)
		}

		for _, job := range jobs {
			if err := job.Analysis.Analyze(evt); err != nil {
				return n, fmt.Errorf("analysis: %s failed on event %d: %w", job.Analysis.Name(), evt.Number, err)
			}
			job.Histos.countEvent(evt.Weight)
		}
		n++
	}
	return n, nil
}

// Run initializes the named analyses, processes src and finalizes them.
func Run(ctx context.Context, names []string, src Source, maxEvents int64) ([]*Job, error) {
	jobs, err := newJobs(names)
	if err != nil {
		return nil, err
	}

	n, err := Process(ctx, jobs, src, maxEvents)
	if err != nil {
		return nil, err
	}
	logrus.WithField("events", n).Info("event stream done")

	if err := finalize(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// RunFiles processes files with up to nThreads concurrent streams. Every
// file gets its own set of analysis instances and histograms; once all
// files are done the per-file stores are merged in file order into the
// first set, which is then finalized and returned.
func RunFiles(ctx context.Context, names []string, files []string, open func(string) (Source, error), nThreads int, maxEvents int64) ([]*Job, error) {
	if len(files) == 0 {
		return nil, errors.New("analysis: no input files")
	}
	if nThreads < 1 {
		nThreads = 1
	}

	perFile := make([][]*Job, len(files))
	for i := range files {
		jobs, err := newJobs(names)
		if err != nil {
			return nil, err
		}
		perFile[i] = jobs
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(nThreads)
	for i, fname := range files {
		fname := fname
		jobs := perFile[i]
		grp.Go(func() error {
			src, err := open(fname)
			if err != nil {
				return fmt.Errorf("analysis: could not open %q: %w", fname, err)
			}
			defer src.Close()

			n, err := Process(ctx, jobs, src, maxEvents)
			if err != nil {
				return fmt.Errorf("%s: %w", fname, err)
			}
			logrus.WithFields(logrus.Fields{"file": fname, "events": n}).Info("file done")
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	jobs := perFile[0]
	for _, other := range perFile[1:] {
		for i, job := range jobs {
			if err := job.Histos.Merge(other[i].Histos); err != nil {
				return nil, fmt.Errorf("analysis: could not merge %s: %w", job.Analysis.Name(), err)
			}
		}
	}

	if err := finalize(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func finalize(jobs []*Job) error {
	for _, job := range jobs {
		if err := job.Analysis.Finalize(); err != nil {
			return fmt.Errorf("analysis: could not finalize %s: %w", job.Analysis.Name(), err)
		}
		logrus.WithFields(logrus.Fields{
			"analysis": job.Analysis.Name(),
			"events":   job.Histos.Events(),
			"sumw":     job.Histos.SumW(),
		}).Debug("finalized")
	}
	return nil
}
