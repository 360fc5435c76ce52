// lightwave2d runs the vacuum point-impulse scenario (spec.md §8, S1) as
// a command-line demonstration of the engine.
package main

import (
	"flag"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/MartinPdeS/LightWave2D/ana"
	"github.com/MartinPdeS/LightWave2D/config"
	"github.com/MartinPdeS/LightWave2D/engine"
	"github.com/MartinPdeS/LightWave2D/mesh"
	"github.com/MartinPdeS/LightWave2D/source"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// flags
	n := flag.Int("n", 101, "grid size (nx = ny = n)")
	steps := flag.Int("steps", 200, "number of time steps")
	cflFrac := flag.Float64("cfl", 0.95, "fraction of the CFL limit to use for dt")
	flag.Parse()

	io.PfWhite("\nLightWave2D -- 2-D TM FDTD engine\n\n")

	// grid and timing (scenario S1)
	nx, ny := *n, *n
	dx, dy := 1e-7, 1e-7
	c := 1.0 / math.Sqrt(config.Mu0*config.Eps0)
	dtMax := 1.0 / (c * math.Sqrt(1.0/(dx*dx)+1.0/(dy*dy)))
	dt := dtMax * (*cflFrac)
	timeStamps := utl.LinSpace(0, dt*float64(*steps-1), *steps)

	cfg, err := config.New(dx, dy, dt, nx, ny, timeStamps, config.Mu0)
	if err != nil {
		chk.Panic("config.New failed:\n%v", err)
	}
	cfg.Print()

	m, err := mesh.NewUniform(nx, ny, config.Eps0, config.Mu0, dt)
	if err != nil {
		chk.Panic("mesh.NewUniform failed:\n%v", err)
	}

	eng, err := engine.New(cfg, m)
	if err != nil {
		chk.Panic("engine.New failed:\n%v", err)
	}
	eng.ShowMsg = true

	cx, cy := nx/2, ny/2
	imp, err := source.NewImpulsion(fun.Prms{
		&fun.Prm{N: "A", V: 1.0},
		&fun.Prm{N: "tau", V: 2 * dt},
		&fun.Prm{N: "t0", V: 5 * dt},
	}, [][2]int{{cx, cy}})
	if err != nil {
		chk.Panic("source.NewImpulsion failed:\n%v", err)
	}
	eng.AddSource(imp)

	ezTime := utl.Deep3alloc(*steps, nx, ny)
	if err = eng.Run(ezTime, nil); err != nil {
		chk.Panic("Run failed:\n%v", err)
	}

	last := ezTime[*steps-1]
	io.Pf("> Ez(center) at final step = %v\n", last[cx][cy])
	io.Pf("> peak |Ez| at final step  = %v\n", ana.PeakAbs(last))
}
