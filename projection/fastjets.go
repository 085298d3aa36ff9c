package projection

import (
	"fmt"
	"sort"

	"go-hep.org/x/hep/fastjet"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/mcanalysis/analysis"
)

type Jet struct {
	Mom fmom.PxPyPzE
}

func (j Jet) Pt() float64  { return j.Mom.Pt() }
func (j Jet) Eta() float64 { return j.Mom.Eta() }
func (j Jet) Phi() float64 { return j.Mom.Phi() }

// FastJets clusters the particles of an input final state into jets.
type FastJets struct {
	Input FinalState
	Def   fastjet.JetDefinition
}

// NewFastJets uses E-scheme recombination, as FastJet does by default.
func NewFastJets(fs FinalState, alg fastjet.JetAlgorithm, r float64) FastJets {
	return FastJets{
		Input: fs,
		Def:   fastjet.NewJetDefinition(alg, r, fastjet.EScheme, fastjet.N2PlainStrategy),
	}
}

// Jets returns the inclusive jets of evt in clustering order.
func (fj FastJets) Jets(evt *analysis.Event) ([]Jet, error) {
	parts := fj.Input.Particles(evt)
	if len(parts) == 0 {
		return nil, nil
	}

	inputs := make([]fastjet.Jet, len(parts))
	for i, p := range parts {
		inputs[i] = fastjet.NewJet(p.Mom.Px(), p.Mom.Py(), p.Mom.Pz(), p.Mom.E())
	}

	cs, err := fastjet.NewClusterSequence(inputs, fj.Def)
	if err != nil {
		return nil, fmt.Errorf("projection: could not cluster %d particles: %w", len(inputs), err)
	}
	incl, err := cs.InclusiveJets(0)
	if err != nil {
		return nil, fmt.Errorf("projection: could not retrieve inclusive jets: %w", err)
	}

	jets := make([]Jet, len(incl))
	for i := range incl {
		j := &incl[i]
		jets[i] = Jet{Mom: fmom.NewPxPyPzE(j.Px(), j.Py(), j.Pz(), j.E())}
	}
	return jets, nil
}

// JetsByPt returns the jets with pT >= ptMin, hardest first.
func (fj FastJets) JetsByPt(evt *analysis.Event, ptMin float64) ([]Jet, error) {
	all, err := fj.Jets(evt)
	if err != nil {
		return nil, err
	}

	var jets []Jet
	for _, j := range all {
		if j.Pt() >= ptMin {
			jets = append(jets, j)
		}
	}
	sort.SliceStable(jets, func(i, j int) bool {
		return jets[i].Pt() > jets[j].Pt()
	})
	return jets, nil
}
