// package stepper implements the Yee time step (spec.md §4.5): the
// stencil kernel that updates H from the curl of E, updates E from the
// curl of H, applies PML absorption and optional SHG/Kerr corrections,
// and injects source contributions. It does not record or advance time;
// that is the engine's job (spec.md §2 "data flow").
package stepper

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/MartinPdeS/LightWave2D/config"
	"github.com/MartinPdeS/LightWave2D/field"
	"github.com/MartinPdeS/LightWave2D/mesh"
	"github.com/MartinPdeS/LightWave2D/source"
)

// Stepper performs one Yee step at a time. It owns the four gradient
// buffers (dEz/dx, dEz/dy, dHy/dx, dHx/dy) so they are allocated once
// and reused across steps, per spec.md §9 Design Notes. A Stepper is
// stateless between steps beyond these buffers; it carries no run
// progress of its own (spec.md §4.5 "State machine").
type Stepper struct {
	nx, ny  int
	dEzDx   [][]float64
	dEzDy   [][]float64
	dHyDx   [][]float64
	dHxDy   [][]float64
	workers int
}

// New allocates a Stepper's gradient buffers for an (nx, ny) grid. The
// worker pool used by Step is sized to runtime.NumCPU(), the idiomatic
// Go default for a CPU-bound, embarrassingly parallel loop (spec.md §5);
// see DESIGN.md for why no third-party worker-pool library is used here.
func New(nx, ny int) *Stepper {
	return &Stepper{
		nx: nx, ny: ny,
		dEzDx:   allocGrad(nx, ny),
		dEzDy:   allocGrad(nx, ny),
		dHyDx:   allocGrad(nx, ny),
		dHxDy:   allocGrad(nx, ny),
		workers: runtime.NumCPU(),
	}
}

func allocGrad(nx, ny int) [][]float64 {
	g := make([][]float64, nx)
	for i := range g {
		g[i] = make([]float64, ny)
	}
	return g
}

// parallelRows partitions the outer index range [0,n) statically across
// the worker pool and calls work(i) for each row index, blocking until
// all rows complete. There is no loop-carried dependency within a single
// call (spec.md §5), so no synchronisation beyond the final barrier is
// required.
func (o *Stepper) parallelRows(n int, work func(i int)) {
	if n <= 0 {
		return
	}
	workers := o.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			work(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				work(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// Step performs sub-steps A-G of spec.md §4.5, in strict order, mutating
// f in place. It returns a NumericalInstability-shaped error if any
// field value becomes non-finite (invariant I4), checked once after the
// full sub-step sequence.
func (o *Stepper) Step(cfg *config.Config, m *mesh.MeshSet, f *field.FieldSet, sources []source.Source) (err error) {
	if f.Nx != o.nx || f.Ny != o.ny || m.Nx != o.nx || m.Ny != o.ny {
		return chk.Err("shape mismatch: stepper built for (%d,%d), got field (%d,%d) mesh (%d,%d)", o.nx, o.ny, f.Nx, f.Ny, m.Nx, m.Ny)
	}
	nx, ny := o.nx, o.ny
	dx, dy, dt := cfg.Dx, cfg.Dy, cfg.Dt
	mu := m.Mu

	// updateH is Step A+B: Yee gradients of Ez, then the H update with
	// first-order PML attenuation.
	updateH := func() {
		o.parallelRows(nx-1, func(i int) {
			for j := 0; j < ny; j++ {
				o.dEzDx[i][j] = (f.Ez[i+1][j] - f.Ez[i][j]) / dx
			}
		})
		o.parallelRows(nx, func(i int) {
			for j := 0; j < ny-1; j++ {
				o.dEzDy[i][j] = (f.Ez[i][j+1] - f.Ez[i][j]) / dy
			}
		})
		o.parallelRows(nx, func(i int) {
			for j := 0; j < ny-1; j++ {
				loss := 1 - m.SigmaY[i][j]*dt/(2*mu)
				f.Hx[i][j] -= (dt / mu) * o.dEzDy[i][j] * loss
			}
		})
		o.parallelRows(nx-1, func(i int) {
			for j := 0; j < ny; j++ {
				loss := 1 - m.SigmaX[i][j]*dt/(2*mu)
				f.Hy[i][j] += (dt / mu) * o.dEzDx[i][j] * loss
			}
		})
	}

	// updateE is Step C+D: Yee gradients of H, then the Ez update, both
	// strict interior only.
	updateE := func() {
		o.parallelRows(nx-2, func(ii int) {
			i := ii + 1
			for j := 1; j < ny-1; j++ {
				o.dHyDx[i][j] = (f.Hy[i][j] - f.Hy[i-1][j]) / dx
				o.dHxDy[i][j] = (f.Hx[i][j] - f.Hx[i][j-1]) / dy
			}
		})
		o.parallelRows(nx-2, func(ii int) {
			i := ii + 1
			for j := 1; j < ny-1; j++ {
				f.Ez[i][j] += (dt / m.Eps[i][j]) * (o.dHyDx[i][j] - o.dHxDy[i][j])
			}
		})
	}

	// A negative dt reverses the leapfrog pairing (E before H instead of H
	// before E); on an empty mesh (sigma=gamma=n2=0, no sources) this is
	// the exact inverse of a positive-dt step, so running N steps forward
	// then N steps with dt negated returns Ez to its pre-step value to
	// floating-point precision (spec.md §8 P5).
	if dt >= 0 {
		updateH()
		updateE()
	} else {
		updateE()
		updateH()
	}

	// Step E: SHG nonlinearity (no-op when gamma == 0 everywhere).
	o.parallelRows(nx, func(i int) {
		for j := 0; j < ny; j++ {
			if m.Shg[i][j] != 0 {
				f.Ez[i][j] += m.Shg[i][j] * f.Ez[i][j] * f.Ez[i][j] * dt
			}
		}
	})

	// Optional Kerr correction (spec.md §9 Open Question 1): disabled by
	// default, ring-fenced so it can be toggled without touching A-G.
	if m.EnableKerr {
		o.parallelRows(nx, func(i int) {
			for j := 0; j < ny; j++ {
				e := f.Ez[i][j]
				f.Ez[i][j] *= dt / (m.Eps[i][j] + m.Kerr[i][j]*e*e)
			}
		})
	}

	// Step F: absorption, clamped to [0,1].
	o.parallelRows(nx, func(i int) {
		for j := 0; j < ny; j++ {
			factor := 1 - (m.SigmaX[i][j]+m.SigmaY[i][j])*dt/(2*m.Eps[i][j])
			if factor < 0 {
				factor = 0
			}
			if factor > 1 {
				factor = 1
			}
			f.Ez[i][j] *= factor
		}
	})

	// Step G: source injection, in the order sources were added.
	for _, s := range sources {
		if err = s.Inject(cfg, f); err != nil {
			return chk.Err("source injection failed at iteration %d:\n%v", cfg.Iteration, err)
		}
	}

	// invariant I4: finiteness.
	return checkFinite(f, cfg.Iteration)
}

func checkFinite(f *field.FieldSet, iteration int) error {
	for i := 0; i < f.Nx; i++ {
		for j := 0; j < f.Ny; j++ {
			if !finite(f.Ez[i][j]) {
				return chk.Err("numerical instability: Ez[%d][%d] is non-finite after iteration %d", i, j, iteration)
			}
			if !finite(f.Hx[i][j]) {
				return chk.Err("numerical instability: Hx[%d][%d] is non-finite after iteration %d", i, j, iteration)
			}
			if !finite(f.Hy[i][j]) {
				return chk.Err("numerical instability: Hy[%d][%d] is non-finite after iteration %d", i, j, iteration)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
