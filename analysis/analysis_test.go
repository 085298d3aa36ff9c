package analysis_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/mcanalysis/analysis"
)

const testAnalysis = "TEST_PT"

// ptAnalysis fills the pT of every particle.
type ptAnalysis struct {
	h         *hbook.H1D
	finalized int
}

func (a *ptAnalysis) Name() string { return testAnalysis }

func (a *ptAnalysis) Init(hs *analysis.Histos) error {
	a.h = hs.Book("pT", 10, 0, 10)
	return nil
}

func (a *ptAnalysis) Analyze(evt *analysis.Event) error {
	for _, p := range evt.Particles {
		if p.Pt() < 0 {
			return errors.New("negative pT")
		}
		a.h.Fill(p.Pt(), evt.Weight)
	}
	return nil
}

func (a *ptAnalysis) Finalize() error {
	a.finalized++
	return nil
}

func init() {
	analysis.Register(testAnalysis, func() analysis.Analysis { return &ptAnalysis{} })
}

type sliceSource struct {
	events []*analysis.Event
	closed bool
}

func (s *sliceSource) Next() (*analysis.Event, error) {
	if len(s.events) == 0 {
		return nil, io.EOF
	}
	evt := s.events[0]
	s.events = s.events[1:]
	return evt, nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func event(n int64, w float64, pts ...float64) *analysis.Event {
	evt := &analysis.Event{Number: n, Weight: w}
	for _, pt := range pts {
		evt.Particles = append(evt.Particles, analysis.Particle{Mom: fmom.NewPxPyPzE(pt, 0, 0, pt), Charge: 1})
	}
	return evt
}

func contents(h *hbook.H1D) []float64 {
	out := make([]float64, h.Len())
	for i := range out {
		_, out[i] = h.XY(i)
	}
	return out
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, analysis.Names(), testAnalysis)

	a, err := analysis.New(testAnalysis)
	require.NoError(t, err)
	assert.Equal(t, testAnalysis, a.Name())

	_, err = analysis.New("NO_SUCH_ANALYSIS")
	assert.Error(t, err)

	assert.Panics(t, func() {
		analysis.Register(testAnalysis, func() analysis.Analysis { return &ptAnalysis{} })
	})
}

func TestBookTwicePanics(t *testing.T) {
	hs := analysis.NewHistos()
	hs.Book("x", 10, 0, 1)
	assert.Panics(t, func() { hs.Book("x", 10, 0, 1) })
	assert.Equal(t, []string{"x"}, hs.Names())
	assert.Nil(t, hs.Get("y"))
}

func TestRun(t *testing.T) {
	src := &sliceSource{events: []*analysis.Event{
		event(0, 1, 1.5, 2.5),
		event(1, 2, 2.5),
		event(2, 0.5),
	}}

	jobs, err := analysis.Run(context.Background(), []string{testAnalysis}, src, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	hs := jobs[0].Histos
	assert.Equal(t, int64(3), hs.Events())
	assert.Equal(t, 3.5, hs.SumW())
	assert.Equal(t, 1, jobs[0].Analysis.(*ptAnalysis).finalized)

	c := contents(hs.Get("pT"))
	assert.Equal(t, 1.0, c[1])
	assert.Equal(t, 3.0, c[2])
}

func TestProcessMaxEvents(t *testing.T) {
	job, err := analysis.NewJob(testAnalysis)
	require.NoError(t, err)

	src := &sliceSource{events: []*analysis.Event{event(0, 1, 1), event(1, 1, 1), event(2, 1, 1)}}
	n, err := analysis.Process(context.Background(), []*analysis.Job{job}, src, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, src.events, 1)
}

func TestProcessCancelled(t *testing.T) {
	job, err := analysis.NewJob(testAnalysis)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &sliceSource{events: []*analysis.Event{event(0, 1, 1)}}
	n, err := analysis.Process(ctx, []*analysis.Job{job}, src, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestRunFilesMergeMatchesSequential(t *testing.T) {
	files := map[string][]*analysis.Event{
		"a": {event(0, 1, 0.5, 3.5), event(1, 2, 9.5)},
		"b": {event(0, 1, 3.5), event(1, 0.25)},
		"c": {event(0, 4, 7.5, 7.5, 12)},
	}
	open := func(name string) (analysis.Source, error) {
		evts, ok := files[name]
		if !ok {
			return nil, errors.New("no such file")
		}
		return &sliceSource{events: append([]*analysis.Event(nil), evts...)}, nil
	}

	merged, err := analysis.RunFiles(context.Background(), []string{testAnalysis}, []string{"a", "b", "c"}, open, 2, 0)
	require.NoError(t, err)

	var all []*analysis.Event
	for _, name := range []string{"a", "b", "c"} {
		all = append(all, files[name]...)
	}
	seq, err := analysis.Run(context.Background(), []string{testAnalysis}, &sliceSource{events: all}, 0)
	require.NoError(t, err)

	assert.Equal(t, contents(seq[0].Histos.Get("pT")), contents(merged[0].Histos.Get("pT")))
	assert.Equal(t, seq[0].Histos.Events(), merged[0].Histos.Events())
	assert.Equal(t, seq[0].Histos.SumW(), merged[0].Histos.SumW())
	assert.Equal(t, "pT", merged[0].Histos.Get("pT").Name())
	assert.Equal(t, 1, merged[0].Analysis.(*ptAnalysis).finalized)
}

func TestRunFilesErrors(t *testing.T) {
	open := func(string) (analysis.Source, error) { return nil, errors.New("boom") }

	_, err := analysis.RunFiles(context.Background(), []string{testAnalysis}, nil, open, 1, 0)
	assert.Error(t, err)

	_, err = analysis.RunFiles(context.Background(), []string{testAnalysis}, []string{"x"}, open, 1, 0)
	assert.ErrorContains(t, err, "boom")

	_, err = analysis.RunFiles(context.Background(), nil, []string{"x"}, open, 1, 0)
	assert.Error(t, err)
}

func TestMergeBinningMismatch(t *testing.T) {
	a := analysis.NewHistos()
	a.Book("x", 10, 0, 10).Fill(1, 1)
	b := analysis.NewHistos()
	b.Book("x", 20, 0, 10).Fill(1, 1)

	require.Error(t, a.Merge(b))
	assert.Equal(t, 1.0, contents(a.Get("x"))[1])

	c := analysis.NewHistos()
	c.Book("y", 10, 0, 10)
	assert.Error(t, a.Merge(c))
}
