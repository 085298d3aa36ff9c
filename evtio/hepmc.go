package evtio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"go-hep.org/x/hep/hepmc"
	"go-hep.org/x/hep/heppdt"

	"github.com/decibelcooper/mcanalysis/analysis"
)

// HepMCReader reads HepMC2 ASCII (IO_GenEvent) files, plain, gzip or xz
// compressed.
type HepMCReader struct {
	f   *os.File
	dec *hepmc.Decoder
}

func OpenHepMC(path string) (*HepMCReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &HepMCReader{f: f, dec: hepmc.NewDecoder(r)}, nil
}

func (r *HepMCReader) Next() (*analysis.Event, error) {
	var evt hepmc.Event
	if err := r.dec.Decode(&evt); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("evtio: could not decode HepMC event: %w", err)
	}
	return fromHepMC(&evt), nil
}

func (r *HepMCReader) Close() error {
	return r.f.Close()
}

// fromHepMC keeps the stable (status 1) particles ordered by barcode.
func fromHepMC(evt *hepmc.Event) *analysis.Event {
	barcodes := make([]int, 0, len(evt.Particles))
	for bc, p := range evt.Particles {
		if p.Status == 1 {
			barcodes = append(barcodes, bc)
		}
	}
	sort.Ints(barcodes)

	out := &analysis.Event{
		Number:    int64(evt.EventNumber),
		Weight:    1,
		Particles: make([]analysis.Particle, 0, len(barcodes)),
	}
	if len(evt.Weights.Slice) > 0 {
		out.Weight = evt.Weights.Slice[0]
	}

	for _, bc := range barcodes {
		p := evt.Particles[bc]
		out.Particles = append(out.Particles, analysis.Particle{
			Mom:    p.Momentum,
			PdgID:  p.PdgID,
			Charge: pdgCharge(p.PdgID),
		})
	}
	return out
}

// pdgCharge looks id up in the particle data table, falling back to the
// conjugate for antiparticles the table does not list. Unknown ids are
// neutral.
func pdgCharge(id int64) float64 {
	if part := heppdt.ParticleByID(heppdt.PID(id)); part != nil {
		return part.Charge
	}
	if part := heppdt.ParticleByID(heppdt.PID(-id)); part != nil {
		return -part.Charge
	}
	return 0
}
