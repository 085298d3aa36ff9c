package evtio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/mcanalysis/analysis"
)

// ProioReader reads the stable generator particles ("GenStable" entries)
// of proio EIC files. proio carries no event weights; every event has
// weight 1.
type ProioReader struct {
	reader *proio.Reader
	n      int64
}

func OpenProio(path string) (*ProioReader, error) {
	reader, err := proio.Open(path)
	if err != nil {
		return nil, err
	}
	return &ProioReader{reader: reader}, nil
}

func (r *ProioReader) Next() (*analysis.Event, error) {
	event, err := r.reader.Next()
	if err != nil {
		// a clean end of stream happens while looking for the next bucket
		// header; running out of bytes inside a bucket means truncation.
		if errors.Is(err, io.EOF) && r.reader.BucketHeader == nil {
			return nil, io.EOF
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("evtio: could not read proio event %d: %w", r.n, err)
	}
	if event == nil {
		return nil, fmt.Errorf("evtio: could not read proio event %d: %w", r.n, io.ErrUnexpectedEOF)
	}

	out := &analysis.Event{Number: r.n, Weight: 1}
	r.n++

	for _, id := range event.TaggedEntries("GenStable") {
		part, ok := event.GetEntry(id).(*eic.Particle)
		if !ok {
			continue
		}

		px := float64(part.GetP().GetX())
		py := float64(part.GetP().GetY())
		pz := float64(part.GetP().GetZ())
		mass := float64(part.GetMass())
		e := math.Sqrt(px*px + py*py + pz*pz + mass*mass)

		out.Particles = append(out.Particles, analysis.Particle{
			Mom:    fmom.NewPxPyPzE(px, py, pz, e),
			PdgID:  int64(part.GetPdg()),
			Charge: float64(part.GetCharge()),
		})
	}
	return out, nil
}

func (r *ProioReader) Close() error {
	r.reader.Close()
	return nil
}
