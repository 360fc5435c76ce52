// package config holds the immutable grid/time parameters of a 2-D FDTD
// run plus the mutable step counter advanced by the engine.
package config

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Eps0 and Mu0 are the vacuum permittivity and permeability (SI units).
const (
	Eps0 = 8.8541878128e-12 // F/m
	Mu0  = 1.25663706212e-6 // H/m
)

// Config holds dx, dy, dt, nx, ny and the time_stamps sequence of a run,
// plus the iteration counter and current simulated time advanced by
// Advance(). Dx, Dy, Dt, Nx, Ny and TimeStamps are set once at
// construction and must not change during a run (spec.md §3, §4.1).
type Config struct {

	// grid (immutable)
	Dx, Dy float64 // cell spacing [m]
	Dt     float64 // time step [s]
	Nx, Ny int     // grid dimensions

	// time (immutable)
	TimeStamps []float64 // time_stamps[k] == physical time at which iteration k begins

	// mutable run state
	Iteration int     // current step index, starts at 0
	Time      float64 // config.time, starts at TimeStamps[0]

	// diagnostics (informational only; does not affect stepping)
	CFLFactor float64 // Dt / (CFL limit), set by New
}

// New builds a Config and validates it against spec.md §3/§7:
// time_stamps must be non-empty and strictly increasing, and dt must
// respect the CFL bound for the given background permeability mu (pass
// config.Mu0 for vacuum).
//
//	dt <= 1 / (c * sqrt(1/dx^2 + 1/dy^2)),  c = 1/sqrt(mu*Eps0)
func New(dx, dy, dt float64, nx, ny int, timeStamps []float64, mu float64) (o *Config, err error) {
	if nx <= 0 || ny <= 0 {
		return nil, chk.Err("nx and ny must be positive (nx=%d, ny=%d)", nx, ny)
	}
	if len(timeStamps) == 0 {
		return nil, chk.Err("time_stamps must not be empty")
	}
	for k := 1; k < len(timeStamps); k++ {
		if timeStamps[k] <= timeStamps[k-1] {
			return nil, chk.Err("time_stamps must be strictly increasing: t[%d]=%v <= t[%d]=%v", k, timeStamps[k], k-1, timeStamps[k-1])
		}
	}
	c := 1.0 / math.Sqrt(mu*Eps0)
	dtMax := 1.0 / (c * math.Sqrt(1.0/(dx*dx)+1.0/(dy*dy)))
	if dt <= 0 {
		return nil, chk.Err("dt must be positive (dt=%v)", dt)
	}
	if dt > dtMax {
		return nil, chk.Err("dt=%v violates the CFL bound dt<=%v (dx=%v, dy=%v, mu=%v)", dt, dtMax, dx, dy, mu)
	}
	o = &Config{
		Dx: dx, Dy: dy, Dt: dt, Nx: nx, Ny: ny,
		TimeStamps: timeStamps,
		Iteration:  0,
		Time:       timeStamps[0],
		CFLFactor:  dt / dtMax,
	}
	return
}

// NSteps returns the number of time stamps (length of the run).
func (o *Config) NSteps() int {
	return len(o.TimeStamps)
}

// Advance increments the iteration counter and, if there is a next time
// stamp, sets Time to it. Advancing past the last index is a programmer
// error (spec.md §4.1) and panics, mirroring fem/dyncoefs.go's validation
// discipline.
func (o *Config) Advance() {
	if o.Iteration >= len(o.TimeStamps)-1 {
		chk.Panic("cannot advance past the last time stamp (iteration=%d, n_steps=%d)", o.Iteration, len(o.TimeStamps))
	}
	o.Iteration++
	o.Time = o.TimeStamps[o.Iteration]
}

// Print dumps the configuration, in the style of fem/dyncoefs.go's Print.
func (o *Config) Print() {
	io.Pfgrey("dx=%v, dy=%v, dt=%v, nx=%d, ny=%d\n", o.Dx, o.Dy, o.Dt, o.Nx, o.Ny)
	io.Pfgrey("n_steps=%d, cfl_factor=%.4f\n", o.NSteps(), o.CFLFactor)
	io.Pfgrey("iteration=%d, time=%v\n", o.Iteration, o.Time)
}
