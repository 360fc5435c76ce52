// package source implements the polymorphic Ez injection variants of
// spec.md §4.4. Every variant obeys the same additive, commutative
// contract: Inject adds to Ez at config.Time, never overwrites it.
// Impulsion accepts its scalar parameters as gosl/fun.Prms, mirroring
// gofem's mconduct.Model.Init(prms fun.Prms) convention; the other
// variants take plain arguments.
package source

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/MartinPdeS/LightWave2D/config"
	"github.com/MartinPdeS/LightWave2D/field"
)

// Source is the capability every injection variant provides: add a
// contribution to Ez at the field set's cells for the run's current
// simulated time (cfg.Time). Order among multiple sources in a Stepper
// is the order they were added; contributions are additive and
// commute (spec.md §4.5 Step G, §5).
type Source interface {
	Inject(cfg *config.Config, f *field.FieldSet) error
}

// checkIdx validates that every (x,y) pair in idx lies within
// [0,nx) x [0,ny), returning a SourceOutOfBounds-shaped error otherwise.
func checkIdx(idx [][2]int, nx, ny int) error {
	for n, xy := range idx {
		x, y := xy[0], xy[1]
		if x < 0 || x >= nx || y < 0 || y >= ny {
			return chk.Err("source injection index %d = (%d,%d) is out of bounds for grid (%d,%d)", n, x, y, nx, ny)
		}
	}
	return nil
}

// MultiWavelength injects, at each of its cells, the sum of cosine
// waveforms:
//
//	Ez(x,y) += sum_k A[k]*cos(omega[k]*t + phi[k])
//
// Omega, Amp and Phase must share the same length (spec.md §4.4).
type MultiWavelength struct {
	Omega, Amp, Phase []float64
	Idx               [][2]int
}

// NewMultiWavelength validates that Omega, Amp and Phase share a length
// and returns a ready-to-use MultiWavelength source.
func NewMultiWavelength(omega, amp, phase []float64, idx [][2]int) (o *MultiWavelength, err error) {
	if len(omega) != len(amp) || len(omega) != len(phase) {
		return nil, chk.Err("omega, amp and phase must share a length (%d, %d, %d)", len(omega), len(amp), len(phase))
	}
	if len(idx) == 0 {
		return nil, chk.Err("multi-wavelength source requires at least one injection index")
	}
	return &MultiWavelength{Omega: omega, Amp: amp, Phase: phase, Idx: idx}, nil
}

// Inject implements Source.
func (o *MultiWavelength) Inject(cfg *config.Config, f *field.FieldSet) (err error) {
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

// Impulsion is a Gaussian-in-time soft source:
//
//	Ez(x,y) += A * exp(-((t-t0)/tau)^2)
type Impulsion struct {
	A, Tau, T0 float64
	Idx        [][2]int
}

// NewImpulsion builds an Impulsion from named scalar parameters, mirroring
// mconduct.Model.Init(fun.Prms). Expected names: "A", "tau", "t0".
func NewImpulsion(prms fun.Prms, idx [][2]int) (o *Impulsion, err error) {
	a := prms.Find("A")
	tau := prms.Find("tau")
	t0 := prms.Find("t0")
	if a == nil || tau == nil || t0 == nil {
		return nil, chk.Err("impulsion source requires parameters A, tau and t0")
	}
	if tau.V <= 0 {
		return nil, chk.Err("impulsion tau must be positive (tau=%v)", tau.V)
	}
	if len(idx) == 0 {
		return nil, chk.Err("impulsion source requires at least one injection index")
	}
	return &Impulsion{A: a.V, Tau: tau.V, T0: t0.V, Idx: idx}, nil
}

// Inject implements Source.
func (o *Impulsion) Inject(cfg *config.Config, f *field.FieldSet) (err error) {
	if err = checkIdx(o.Idx, f.Nx, f.Ny); err != nil {
		return
	}
	z := (cfg.Time - o.T0) / o.Tau
	contribution := o.A * math.Exp(-z*z)
	for _, xy := range o.Idx {
		f.Ez[xy[0]][xy[1]] += contribution
	}
	return
}
