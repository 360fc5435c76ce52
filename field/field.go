// package field holds the mutable Yee-lattice state: Ez, Hx, Hy.
package field

import "github.com/cpmech/gosl/utl"

// FieldSet holds the three working arrays of the TM-polarised run.
// All three are allocated with shape (nx, ny); per spec.md §3, Hx only
// carries meaningful values over [0,nx)x[0,ny-1) and Hy over
// [0,nx-1)x[0,ny), with the outermost padding row/column held at zero by
// construction (the Stepper never writes it).
type FieldSet struct {
	Nx, Ny int
	Ez     [][]float64
	Hx     [][]float64
	Hy     [][]float64
}

// New allocates a zero-initialised FieldSet for an (nx, ny) grid.
func New(nx, ny int) *FieldSet {
	return &FieldSet{
		Nx: nx, Ny: ny,
		Ez: utl.Alloc(nx, ny),
		Hx: utl.Alloc(nx, ny),
		Hy: utl.Alloc(nx, ny),
	}
}

// Zero sets Ez, Hx and Hy to zero everywhere.
func (o *FieldSet) Zero() {
	for i := 0; i < o.Nx; i++ {
		for j := 0; j < o.Ny; j++ {
			o.Ez[i][j] = 0
			o.Hx[i][j] = 0
			o.Hy[i][j] = 0
		}
	}
}
