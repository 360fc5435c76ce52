package stepper

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/MartinPdeS/LightWave2D/config"
	"github.com/MartinPdeS/LightWave2D/field"
	"github.com/MartinPdeS/LightWave2D/mesh"
	"github.com/MartinPdeS/LightWave2D/source"
)

func newVacuumRun(nx, ny int) (*config.Config, *mesh.MeshSet, *field.FieldSet) {
	dx, dy := 1e-7, 1e-7
	c := 1.0 / math.Sqrt(config.Mu0*config.Eps0)
	dtMax := 1.0 / (c * math.Sqrt(1.0/(dx*dx)+1.0/(dy*dy)))
	dt := dtMax * 0.95
	ts := make([]float64, 5)
	for k := range ts {
		ts[k] = float64(k) * dt
	}
	cfg, err := config.New(dx, dy, dt, nx, ny, ts, config.Mu0)
	if err != nil {
		panic(err)
	}
	m, err := mesh.NewUniform(nx, ny, config.Eps0, config.Mu0, dt)
	if err != nil {
		panic(err)
	}
	f := field.New(nx, ny)
	return cfg, m, f
}

func Test_stepper01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper01. H padding row/column stay zero")

	nx, ny := 21, 21
	cfg, m, f := newVacuumRun(nx, ny)
	f.Ez[nx/2][ny/2] = 1.0

	st := New(nx, ny)
	if err := st.Step(cfg, m, f, nil); err != nil {
		tst.Errorf("Step failed:\n%v", err)
		return
	}

	// Hx padding: column ny-1
	for i := 0; i < nx; i++ {
		chk.Scalar(tst, "Hx padding column", 1e-30, f.Hx[i][ny-1], 0)
	}
	// Hy padding: row nx-1
	for j := 0; j < ny; j++ {
		chk.Scalar(tst, "Hy padding row", 1e-30, f.Hy[nx-1][j], 0)
	}
}

func Test_stepper02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper02. Ez boundary cells are untouched by Step D")

	nx, ny := 15, 15
	cfg, m, f := newVacuumRun(nx, ny)
	f.Ez[nx/2][ny/2] = 1.0

	st := New(nx, ny)
	for k := 0; k < 3; k++ {
		if err := st.Step(cfg, m, f, nil); err != nil {
			tst.Errorf("Step failed:\n%v", err)
			return
		}
	}

	for i := 0; i < nx; i++ {
		chk.Scalar(tst, "Ez boundary j=0", 1e-30, f.Ez[i][0], 0)
		chk.Scalar(tst, "Ez boundary j=ny-1", 1e-30, f.Ez[i][ny-1], 0)
	}
	for j := 0; j < ny; j++ {
		chk.Scalar(tst, "Ez boundary i=0", 1e-30, f.Ez[0][j], 0)
		chk.Scalar(tst, "Ez boundary i=nx-1", 1e-30, f.Ez[nx-1][j], 0)
	}
}

func Test_stepper03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper03. source injection is additive and ordered")

	nx, ny := 11, 11
	cfg, m, f := newVacuumRun(nx, ny)
	st := New(nx, ny)

	s1, _ := source.NewPlaneWave(0, 1.0, 0, [][2]int{{5, 5}})
	s2, _ := source.NewPlaneWave(0, 2.0, 0, [][2]int{{5, 5}})

	if err := st.Step(cfg, m, f, []source.Source{s1, s2}); err != nil {
		tst.Errorf("Step failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "Ez(5,5) after two constant sources", 1e-12, f.Ez[5][5], 3.0)
}

func Test_stepper04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper04. non-finite field is reported as instability")

	nx, ny := 9, 9
	cfg, m, f := newVacuumRun(nx, ny)
	f.Ez[4][4] = math.NaN()

	st := New(nx, ny)
	err := st.Step(cfg, m, f, nil)
	if err == nil {
		tst.Errorf("expected non-finite Ez to be reported")
	}
}

func Test_stepper05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper05. P5: negating dt undoes N forward steps on an empty mesh")

	nx, ny, n := 25, 25, 12
	cfg, m, f := newVacuumRun(nx, ny)

	// an arbitrary finite initial condition, away from the boundary.
	cx, cy := nx/2, ny/2
	f.Ez[cx][cy] = 1.0
	f.Ez[cx+1][cy] = 0.4
	f.Ez[cx][cy+1] = -0.3
	f.Ez[cx-2][cy+3] = 0.15
	f.Hx[cx][cy] = 0.2
	f.Hy[cx][cy] = -0.1

	initial := field.New(nx, ny)
	for i := 0; i < nx; i++ {
		copy(initial.Ez[i], f.Ez[i])
	}

	st := New(nx, ny)
	for k := 0; k < n; k++ {
		if err := st.Step(cfg, m, f, nil); err != nil {
			tst.Errorf("forward Step failed:\n%v", err)
			return
		}
	}

	cfg.Dt = -cfg.Dt
	for k := 0; k < n; k++ {
		if err := st.Step(cfg, m, f, nil); err != nil {
			tst.Errorf("reverse Step failed:\n%v", err)
			return
		}
	}

	for i := 0; i < nx; i++ {
		chk.Array(tst, "Ez returns to its initial value", 1e-9, f.Ez[i], initial.Ez[i])
	}
}
