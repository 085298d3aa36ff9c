package analysis

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// Histos owns the histograms booked by one analysis instance, together
// with the number of events and the sum of event weights they saw.
type Histos struct {
	names  []string
	histos map[string]*hbook.H1D

	nEvents int64
	sumW    float64
}

func NewHistos() *Histos {
	return &Histos{histos: make(map[string]*hbook.H1D)}
}

// Book creates a histogram with nBins equal-width bins over [low, high).
// Booking the same name twice panics.
func (hs *Histos) Book(name string, nBins int, low, high float64) *hbook.H1D {
	if _, dup := hs.histos[name]; dup {
		panic(fmt.Sprintf("analysis: histogram %q booked twice", name))
	}

	h := hbook.NewH1D(nBins, low, high)
	h.Ann["name"] = name
	hs.names = append(hs.names, name)
	hs.histos[name] = h
	return h
}

// Get returns the named histogram, or nil.
func (hs *Histos) Get(name string) *hbook.H1D {
	return hs.histos[name]
}

// Names returns histogram names in booking order.
func (hs *Histos) Names() []string {
	return append([]string(nil), hs.names...)
}

func (hs *Histos) Events() int64 { return hs.nEvents }
func (hs *Histos) SumW() float64 { return hs.sumW }

func (hs *Histos) countEvent(w float64) {
	hs.nEvents++
	hs.sumW += w
}

// Merge adds the contents of o to hs bin by bin. Both stores must hold the
// same histograms with identical binning; hs is left untouched otherwise.
// Histogram pointers handed out by Book stay valid.
func (hs *Histos) Merge(o *Histos) error {
	if len(hs.names) != len(o.names) {
		return fmt.Errorf("analysis: cannot merge %d histograms into %d", len(o.names), len(hs.names))
	}
	for _, name := range hs.names {
		src, ok := o.histos[name]
		if !ok {
			return fmt.Errorf("analysis: histogram %q missing from merge source", name)
		}
		dst := hs.histos[name]
		if dst.Len() != src.Len() || dst.XMin() != src.XMin() || dst.XMax() != src.XMax() {
			return fmt.Errorf("analysis: histogram %q binning mismatch", name)
		}
	}

	for _, name := range hs.names {
		dst := hs.histos[name]
		sum := hbook.AddH1D(dst, o.histos[name])
		sum.Ann = dst.Ann
		*dst = *sum
	}
	hs.nEvents += o.nEvents
	hs.sumW += o.sumW
	return nil
}
