// package ana holds analytic/reference computations used by the tests
// (and, for PeakAbs, by the cmd/lightwave2d demo) — the same role
// gofem's own ana package plays for its element tests (closed-form
// displacement/stress solutions checked against the FE result).
package ana

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"

	"github.com/MartinPdeS/LightWave2D/field"
)

// L2Norm returns the combined L2 norm of (Ez,Hx,Hy), flattened into one
// vector and measured with la.VecNorm, used by property test P1 (bounded
// energy with no losses).
func L2Norm(f *field.FieldSet) float64 {
	v := make([]float64, 0, 3*f.Nx*f.Ny)
	for i := 0; i < f.Nx; i++ {
		v = append(v, f.Ez[i]...)
		v = append(v, f.Hx[i]...)
		v = append(v, f.Hy[i]...)
	}
	return la.VecNorm(v)
}

// SeedRandomField fills f.Ez, f.Hx and f.Hy with finite pseudo-random
// values in [-amp,amp], seeded for reproducibility, used by property
// test P1 to exercise an "arbitrary finite initial" state.
func SeedRandomField(f *field.FieldSet, seed int, amp float64) {
	rnd.Init(seed)
	for i := 0; i < f.Nx; i++ {
		for j := 0; j < f.Ny; j++ {
			f.Ez[i][j] = rnd.Float64(-amp, amp)
		}
	}
	for i := 0; i < f.Nx; i++ {
		for j := 0; j < f.Ny-1; j++ {
			f.Hx[i][j] = rnd.Float64(-amp, amp)
		}
	}
	for i := 0; i < f.Nx-1; i++ {
		for j := 0; j < f.Ny; j++ {
			f.Hy[i][j] = rnd.Float64(-amp, amp)
		}
	}
}

// PeakAbs returns the largest absolute value in a 2-D snapshot, used to
// measure decay relative to a pulse's peak (scenarios S1, S3).
func PeakAbs(snapshot [][]float64) (peak float64) {
	for _, row := range snapshot {
		for _, v := range row {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	return
}

// RadialAsymmetry compares a snapshot with its point reflection through
// (cx,cy): the max, over samples up to radius cells from the centre along
// each axis, of the relative difference between the amplitudes at
// (cx+dx,cy+dy) and (cx-dx,cy-dy). Samples at the same distance in other
// directions are not compared, so a point-symmetric field that is not
// radially symmetric scores 0. Used by scenario S1's 2% envelope check.
func RadialAsymmetry(snapshot [][]float64, cx, cy, radius int) (maxDiff float64) {
	nx, ny := len(snapshot), len(snapshot[0])
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			x1, y1 := cx+dx, cy+dy
			x2, y2 := cx-dx, cy-dy
			if x1 < 0 || x1 >= nx || y1 < 0 || y1 >= ny || x2 < 0 || x2 >= nx || y2 < 0 || y2 >= ny {
				continue
			}
			a, b := snapshot[x1][y1], snapshot[x2][y2]
			denom := math.Max(math.Abs(a), math.Abs(b))
			if denom < 1e-15 {
				continue
			}
			diff := math.Abs(a-b) / denom
			if diff > maxDiff {
				maxDiff = diff
			}
		}
	}
	return
}
