package source

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/MartinPdeS/LightWave2D/config"
	"github.com/MartinPdeS/LightWave2D/field"
)

// PlaneWave is the "plane-wave line source" spec.md §4.4 names as a
// legal extra variant: a single common waveform
//
//	Ez(x,y) += A*cos(omega*t + phi)
//
// injected identically across every cell in Idx, typically a full row or
// column spanning a waveguide cross-section (scenario S4).
type PlaneWave struct {
	Omega, A, Phase float64
	Idx             [][2]int
}

// NewPlaneWave validates Idx is non-empty and returns a PlaneWave source.
func NewPlaneWave(omega, a, phase float64, idx [][2]int) (o *PlaneWave, err error) {
	if len(idx) == 0 {
		return nil, chk.Err("plane-wave source requires at least one injection index")
	}
	return &PlaneWave{Omega: omega, A: a, Phase: phase, Idx: idx}, nil
}

// Inject implements Source.
func (o *PlaneWave) Inject(cfg *config.Config, f *field.FieldSet) (err error) {
	if err = checkIdx(o.Idx, f.Nx, f.Ny); err != nil {
		return
	}
	contribution := o.A * math.Cos(o.Omega*cfg.Time+o.Phase)
	for _, xy := range o.Idx {
		f.Ez[xy[0]][xy[1]] += contribution
	}
	return
}

// Ring is the "ring source" spec.md §4.4 names as a legal extra variant:
// a MultiWavelength-shaped waveform shared by every cell of a ring of
// injection indices (e.g. the boundary of a ring resonator).
type Ring struct {
	Omega, Amp, Phase []float64
	Idx               [][2]int
}

// NewRing validates that Omega, Amp and Phase share a length and returns
// a ready-to-use Ring source.
func NewRing(omega, amp, phase []float64, idx [][2]int) (o *Ring, err error) {
	if len(omega) != len(amp) || len(omega) != len(phase) {
		return nil, chk.Err("omega, amp and phase must share a length (%d, %d, %d)", len(omega), len(amp), len(phase))
	}
	if len(idx) == 0 {
		return nil, chk.Err("ring source requires at least one injection index")
	}
	return &Ring{Omega: omega, Amp: amp, Phase: phase, Idx: idx}, nil
}

// Inject implements Source.
func (o *Ring) Inject(cfg *config.Config, f *field.FieldSet) (err error) {
	if err = checkIdx(o.Idx, f.Nx, f.Ny); err != nil {
		return
	}
	var contribution float64
	for k := range o.Omega {
		contribution += o.Amp[k] * math.Cos(o.Omega[k]*cfg.Time+o.Phase[k])
	}
	for _, xy := range o.Idx {
		f.Ez[xy[0]][xy[1]] += contribution
	}
	return
}
