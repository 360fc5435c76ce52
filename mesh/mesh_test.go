package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/MartinPdeS/LightWave2D/config"
)

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. uniform vacuum mesh")

	m, err := NewUniform(11, 11, config.Eps0, config.Mu0, 1e-18)
	if err != nil {
		tst.Errorf("NewUniform failed:\n%v", err)
		return
	}
	chk.IntAssert(m.Nx, 11)
	chk.IntAssert(m.Ny, 11)
	for i := 0; i < m.Nx; i++ {
		for j := 0; j < m.Ny; j++ {
			chk.Scalar(tst, "eps", 1e-30, m.Eps[i][j], config.Eps0)
			chk.Scalar(tst, "sigma_x", 1e-30, m.SigmaX[i][j], 0)
			chk.Scalar(tst, "sigma_y", 1e-30, m.SigmaY[i][j], 0)
		}
	}
}

func Test_mesh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02. invariant I1 rejects eps <= 0")

	eps := make([][]float64, 5)
	for i := range eps {
		eps[i] = make([]float64, 5)
		for j := range eps[i] {
			eps[i][j] = config.Eps0
		}
	}
	eps[2][2] = 0 // violates I1
	zero := make([][]float64, 5)
	for i := range zero {
		zero[i] = make([]float64, 5)
	}
	_, err := New(eps, zero, zero, zero, zero, config.Mu0, 1e-18)
	if err == nil {
		tst.Errorf("expected eps<=0 to be rejected")
	}
}

func Test_mesh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh03. PML profile ramps toward the boundary and vanishes in the interior")

	nx, width, order, sigmaMax := 40, 10, 3.0, 1e10
	sigma := PMLProfile(nx, width, order, sigmaMax, Lo)

	// interior (outside the band) must be exactly zero (invariant I2)
	for k := width; k < nx; k++ {
		chk.Scalar(tst, "interior sigma", 1e-30, sigma[k], 0)
	}

	// monotonic ramp toward the boundary (k=0)
	for k := 1; k < width; k++ {
		if sigma[k-1] < sigma[k] {
			tst.Errorf("sigma must ramp toward the boundary: sigma[%d]=%v < sigma[%d]=%v", k-1, sigma[k-1], k, sigma[k])
		}
	}
	chk.Scalar(tst, "boundary sigma", 1e-6, sigma[0], sigmaMax)
}

func Test_mesh04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh04. sigma_max*dt/(2*mu) > 1 is rejected")

	nx, ny := 20, 20
	sigmaX, sigmaY := BuildPMLBands(nx, ny, 5, 3, 1e20) // absurdly large sigma_max
	eps := make([][]float64, nx)
	kerr := make([][]float64, nx)
	shg := make([][]float64, nx)
	for i := range eps {
		eps[i] = make([]float64, ny)
		kerr[i] = make([]float64, ny)
		shg[i] = make([]float64, ny)
		for j := range eps[i] {
			eps[i][j] = config.Eps0
		}
	}
	_, err := New(eps, kerr, shg, sigmaX, sigmaY, config.Mu0, 1e-15)
	if err == nil {
		tst.Errorf("expected sigma_max*dt/(2*mu) > 1 to be rejected")
	}
}
