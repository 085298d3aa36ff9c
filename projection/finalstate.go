package projection

import (
	"sort"

	"github.com/decibelcooper/mcanalysis/analysis"
)

const GeV = 1.0

// FinalState selects the final-state particles of an event inside a
// pseudorapidity window and above a transverse momentum floor. The window
// is half-open: EtaMin <= eta < EtaMax, and pT >= PtMin.
type FinalState struct {
	EtaMin, EtaMax float64
	PtMin          float64
	Charged        bool
}

func NewFinalState(etaMin, etaMax, ptMin float64) FinalState {
	return FinalState{EtaMin: etaMin, EtaMax: etaMax, PtMin: ptMin}
}

func NewChargedFinalState(etaMin, etaMax, ptMin float64) FinalState {
	return FinalState{EtaMin: etaMin, EtaMax: etaMax, PtMin: ptMin, Charged: true}
}

// Contains reports whether the kinematics pass the cuts.
func (fs FinalState) Contains(eta, pt float64) bool {
	return eta >= fs.EtaMin && eta < fs.EtaMax && pt >= fs.PtMin
}

func (fs FinalState) Accept(p analysis.Particle) bool {
	if fs.Charged && p.Charge == 0 {
		return false
	}
	return fs.Contains(p.Eta(), p.Pt())
}

// Particles returns the selected particles in event order.
func (fs FinalState) Particles(evt *analysis.Event) []analysis.Particle {
	var parts []analysis.Particle
	for _, p := range evt.Particles {
		if fs.Accept(p) {
			parts = append(parts, p)
		}
	}
	return parts
}

// ParticlesByPt returns the selected particles, hardest first.
func (fs FinalState) ParticlesByPt(evt *analysis.Event) []analysis.Particle {
	parts := fs.Particles(evt)
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Pt() > parts[j].Pt()
	})
	return parts
}
