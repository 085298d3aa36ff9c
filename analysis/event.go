package analysis

import (
	"go-hep.org/x/hep/fmom"
)

// Particle is a final-state particle of a generated event.
type Particle struct {
	Mom    fmom.PxPyPzE
	PdgID  int64
	Charge float64 // in units of e
}

func (p Particle) Pt() float64  { return p.Mom.Pt() }
func (p Particle) Eta() float64 { return p.Mom.Eta() }
func (p Particle) Phi() float64 { return p.Mom.Phi() }
func (p Particle) E() float64   { return p.Mom.E() }

// Event is one generated collision as seen by analyses.
type Event struct {
	Number    int64
	Weight    float64
	Particles []Particle
}

// Source delivers events one at a time. Next returns io.EOF once the
// stream is exhausted.
type Source interface {
	Next() (*Event, error)
	Close() error
}
