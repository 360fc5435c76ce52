// package mesh holds the material maps (permittivity, nonlinear
// coefficients, PML conductivities and permeability) living on the Ez
// grid, plus the PML conductivity-profile builder. Mirrors the
// plain-data-holder role of spec.md §4.2; validation borrows the
// validate-at-construction discipline of gofem's mconduct.Model, with
// violations returned as errors.
package mesh

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// MeshSet holds the spatially varying material arrays on the (nx, ny) Ez
// grid, plus the scalar magnetic permeability. Eps is the ABSOLUTE
// permittivity in F/m (spec.md §3: "ε(i,j): absolute permittivity"); a
// caller working with relative permittivity must multiply by
// config.Eps0 before constructing a MeshSet (see DESIGN.md, Open
// Question decisions, item 3). Once built, a MeshSet must not be mutated during a run
// (spec.md §4.2).
type MeshSet struct {
	Nx, Ny int
	Eps    [][]float64 // ε(i,j), absolute permittivity [F/m], > 0
	Kerr   [][]float64 // n²(i,j), Kerr coefficient, may be all-zero
	Shg    [][]float64 // γ(i,j), SHG coefficient, may be all-zero
	SigmaX [][]float64 // σx(i,j), PML conductivity [S/m], >= 0
	SigmaY [][]float64 // σy(i,j), PML conductivity [S/m], >= 0
	Mu     float64     // scalar permeability [H/m]

	// EnableKerr gates the reference Kerr correction
	// (Ez *= dt/(eps + n^2*|E|^2)) described in spec.md §9 Open Question
	// 1. Default false: the formula is not validated and is NOT part of
	// the default step sequence.
	EnableKerr bool
}

// New validates shapes and invariants I1 (eps > 0) and I2 (sigma >= 0)
// and returns a MeshSet. dt is required here only to validate the PML
// stability condition sigma_max*dt/(2*mu) <= 1 demanded by spec.md §4.5
// Step B.
func New(eps, kerr, shg, sigmaX, sigmaY [][]float64, mu, dt float64) (o *MeshSet, err error) {
	nx := len(eps)
	if nx == 0 {
		return nil, chk.Err("eps must have at least one row")
	}
	ny := len(eps[0])
	check := func(name string, a [][]float64) error {
		if len(a) != nx {
			return chk.Err("%s has %d rows, expected %d", name, len(a), nx)
		}
		for i, row := range a {
			if len(row) != ny {
				return chk.Err("%s row %d has %d columns, expected %d", name, i, len(row), ny)
			}
		}
		return nil
	}
	for name, a := range map[string][][]float64{"eps": eps, "n2": kerr, "gamma": shg, "sigma_x": sigmaX, "sigma_y": sigmaY} {
		if e := check(name, a); e != nil {
			return nil, e
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if eps[i][j] <= 0 {
				return nil, chk.Err("eps[%d][%d]=%v violates invariant I1 (eps must be > 0)", i, j, eps[i][j])
			}
			if sigmaX[i][j] < 0 {
				return nil, chk.Err("sigma_x[%d][%d]=%v violates invariant I2 (sigma must be >= 0)", i, j, sigmaX[i][j])
			}
			if sigmaY[i][j] < 0 {
				return nil, chk.Err("sigma_y[%d][%d]=%v violates invariant I2 (sigma must be >= 0)", i, j, sigmaY[i][j])
			}
			if s := sigmaX[i][j] * dt / (2 * mu); s > 1 {
				return nil, chk.Err("sigma_x[%d][%d]*dt/(2*mu)=%v > 1 (spec.md §4.5 Step B requirement)", i, j, s)
			}
			if s := sigmaY[i][j] * dt / (2 * mu); s > 1 {
				return nil, chk.Err("sigma_y[%d][%d]*dt/(2*mu)=%v > 1 (spec.md §4.5 Step B requirement)", i, j, s)
			}
		}
	}
	o = &MeshSet{Nx: nx, Ny: ny, Eps: eps, Kerr: kerr, Shg: shg, SigmaX: sigmaX, SigmaY: sigmaY, Mu: mu}
	return
}

// NewUniform builds a MeshSet with constant eps/mu and no nonlinearity or
// PML, the common starting point for vacuum scenarios (e.g. S1).
func NewUniform(nx, ny int, eps, mu, dt float64) (o *MeshSet, err error) {
	epsArr := utl.Alloc(nx, ny)
	kerr := utl.Alloc(nx, ny)
	shg := utl.Alloc(nx, ny)
	sx := utl.Alloc(nx, ny)
	sy := utl.Alloc(nx, ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			epsArr[i][j] = eps
		}
	}
	return New(epsArr, kerr, shg, sx, sy, mu, dt)
}

// PMLProfile builds a polynomial PML conductivity ramp over a band of
// width W cells at the given edge, per spec.md §3:
//
//	sigma(d) = sigmaMax * (d/W)^p,  d = distance in cells into the PML
//	           from its inner edge, clamped to [0, W]
//
// side selects which of the four domain edges the band sits against.
func PMLProfile(n, width int, order float64, sigmaMax float64, side Side) []float64 {
	sigma := make([]float64, n)
	if width <= 0 {
		return sigma
	}
	for k := 0; k < n; k++ {
		var d float64
		switch side {
		case Lo:
			d = float64(width-1-k) + 1 // distance into PML counted from inner edge
		case Hi:
			d = float64(k-(n-width)) + 1
		}
		if d < 0 {
			d = 0
		}
		if d > float64(width) {
			d = float64(width)
		}
		sigma[k] = sigmaMax * math.Pow(d/float64(width), order)
	}
	return sigma
}

// Side names which edge of the domain a PML band hugs.
type Side int

const (
	Lo Side = iota // low-index edge (i=0 or j=0)
	Hi             // high-index edge (i=nx-1 or j=ny-1)
)

// BuildPMLBands assembles sigmaX and sigmaY arrays with PML bands of
// width cells and polynomial order p on all four sides of an (nx, ny)
// domain, the configuration used by scenario S3. sigmaX ramps in the
// x-direction (present on the i=0 and i=nx-1 edges); sigmaY ramps in the
// y-direction (present on the j=0 and j=ny-1 edges). Interior cells
// (outside every band) are zero, satisfying invariant I2.
func BuildPMLBands(nx, ny, width int, order, sigmaMax float64) (sigmaX, sigmaY [][]float64) {
	sx := PMLProfile(nx, width, order, sigmaMax, Lo)
	sxHi := PMLProfile(nx, width, order, sigmaMax, Hi)
	sy := PMLProfile(ny, width, order, sigmaMax, Lo)
	syHi := PMLProfile(ny, width, order, sigmaMax, Hi)
	for i := range sx {
		if sxHi[i] > sx[i] {
			sx[i] = sxHi[i]
		}
	}
	for j := range sy {
		if syHi[j] > sy[j] {
			sy[j] = syHi[j]
		}
	}
	sigmaX = utl.Alloc(nx, ny)
	sigmaY = utl.Alloc(nx, ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			sigmaX[i][j] = sx[i]
			sigmaY[i][j] = sy[j]
		}
	}
	return
}
