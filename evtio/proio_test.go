package evtio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32(v float32) *float32 { return &v }
func i32(v int32) *int32     { return &v }

func eicParticle(pdg int32, charge, px, py, pz, mass float32) *eic.Particle {
	return &eic.Particle{
		Pdg:    i32(pdg),
		Charge: f32(charge),
		Mass:   f32(mass),
		P:      &eic.XYZF{X: f32(px), Y: f32(py), Z: f32(pz)},
	}
}

func writeProio(t *testing.T, path string, events ...*proio.Event) {
	t.Helper()
	writer, err := proio.Create(path)
	require.NoError(t, err)
	for _, event := range events {
		require.NoError(t, writer.Push(event))
	}
	require.NoError(t, writer.Close())
}

func TestProioReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.proio")

	first := proio.NewEvent()
	first.AddEntry("GenStable", eicParticle(211, 1, 3, 0, 0, 4))
	first.AddEntry("GenStable", eicParticle(22, 0, 0, 2, 0, 0))
	first.AddEntry("Primary", eicParticle(443, 0, 0, 0, 1, 3.1))
	second := proio.NewEvent()
	second.AddEntry("Primary", eicParticle(443, 0, 0, 0, 1, 3.1))
	writeProio(t, path, first, second)

	src, err := Open(path, FormatAuto)
	require.NoError(t, err)
	defer src.Close()
	require.IsType(t, &ProioReader{}, src)

	evt, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(0), evt.Number)
	assert.Equal(t, 1.0, evt.Weight)
	require.Len(t, evt.Particles, 2)

	pion := evt.Particles[0]
	assert.Equal(t, int64(211), pion.PdgID)
	assert.Equal(t, 1.0, pion.Charge)
	assert.Equal(t, 3.0, pion.Pt())
	assert.Equal(t, 5.0, pion.E(), "energy from momentum and mass")

	photon := evt.Particles[1]
	assert.Equal(t, int64(22), photon.PdgID)
	assert.Zero(t, photon.Charge)
	assert.Equal(t, 2.0, photon.E())

	evt, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1), evt.Number)
	assert.Empty(t, evt.Particles)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestProioReaderTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.proio")

	var events []*proio.Event
	for i := 0; i < 5; i++ {
		event := proio.NewEvent()
		event.AddEntry("GenStable", eicParticle(211, 1, float32(i+1), 0, 0, 0))
		events = append(events, event)
	}
	writeProio(t, path, events...)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, fi.Size()-10))

	src, err := OpenProio(path)
	require.NoError(t, err)
	defer src.Close()

	n := 0
	for {
		_, err = src.Next()
		if err != nil {
			break
		}
		n++
	}
	assert.Less(t, n, 5)
	assert.False(t, errors.Is(err, io.EOF), "truncation must not look like a clean end: %v", err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
