// Package mcsimple implements MC_SIMPLE, a minimal generator-level analysis
// of charged particles and anti-kt jets.
package mcsimple

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/fastjet"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/mcanalysis/analysis"
	"github.com/decibelcooper/mcanalysis/projection"
)

const Name = "MC_SIMPLE"

const (
	jetR     = 0.4
	jetPtMin = 20 * projection.GeV
)

func init() {
	analysis.Register(Name, func() analysis.Analysis { return New() })
}

type Analysis struct {
	cfs  projection.FinalState
	jets projection.FastJets

	hChargedEta, hSumPt, hNJets, hJetPt *hbook.H1D

	log logrus.FieldLogger
}

func New() *Analysis {
	return &Analysis{log: logrus.WithField("analysis", Name)}
}

func (a *Analysis) Name() string { return Name }

func (a *Analysis) Init(hs *analysis.Histos) error {
	// charged particles for the distributions, jets from everything
	a.cfs = projection.NewChargedFinalState(-2.5, 2.5, 0.5*projection.GeV)
	fs := projection.NewFinalState(-5.0, 5.0, 0.0*projection.GeV)
	a.jets = projection.NewFastJets(fs, fastjet.AntiKtAlgorithm, jetR)

	a.hChargedEta = hs.Book("Eta", 50, -5, 5)
	a.hSumPt = hs.Book("Sum pT", 100, 0, 100)
	a.hNJets = hs.Book("N Jets", 10, 0, 10)
	a.hJetPt = hs.Book("Jet pT", 100, 0, 100)
	return nil
}

func (a *Analysis) Analyze(evt *analysis.Event) error {
	weight := evt.Weight

	particles := a.cfs.ParticlesByPt(evt)
	if len(particles) > 0 {
		a.log.WithField("event", evt.Number).Debugf("leading charged particle pT: %v", particles[0].Pt())
	}

	pTSum := 0.0
	for _, p := range particles {
		pTSum += p.Pt()
		a.hChargedEta.Fill(p.Eta(), weight)
	}
	a.hSumPt.Fill(pTSum, weight)

	jets, err := a.jets.JetsByPt(evt, jetPtMin)
	if err != nil {
		return fmt.Errorf("mcsimple: jets: %w", err)
	}

	nJets := len(jets)
	a.hNJets.Fill(float64(nJets), weight)
	if nJets > 0 {
		a.log.WithField("event", evt.Number).Debugf("%d jets, leading jet pT: %v", nJets, jets[0].Pt())
	}

	for _, j := range jets {
		a.hJetPt.Fill(j.Pt(), weight)
	}
	return nil
}

// Finalize leaves the histograms unnormalized.
func (a *Analysis) Finalize() error { return nil }
