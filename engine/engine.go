// package engine orchestrates the stepping loop described in spec.md
// §2/§4.5/§7, in the style of fem/fem.go's FEM.Run: validate once up
// front, loop, record, report. It owns the caller-provided recording
// array; the Stepper only mutates the FieldSet.
package engine

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/MartinPdeS/LightWave2D/config"
	"github.com/MartinPdeS/LightWave2D/field"
	"github.com/MartinPdeS/LightWave2D/mesh"
	"github.com/MartinPdeS/LightWave2D/source"
	"github.com/MartinPdeS/LightWave2D/stepper"
)

// Detector is an opt-in probe whose Ez value Run writes into the
// detector time series at every recorded step (honouring RecordEvery),
// alongside the full Ez_time snapshot. Run always requires the full
// Ez_time array; detectors add to it and do not replace it.
type Detector struct {
	I, J int
}

// Engine holds the (immutable during a run) Config, MeshSet and Sources,
// the mutable FieldSet, and a Stepper sized to the grid.
type Engine struct {
	Cfg     *config.Config
	Mesh    *mesh.MeshSet
	Field   *field.FieldSet
	Sources []source.Source
	step    *stepper.Stepper

	// RecordEvery subsamples recording per spec.md §9; the default (0 or
	// 1) records every step and matches the literal Step H contract.
	RecordEvery int

	Detectors []Detector
	ShowMsg   bool
}

// New builds an Engine for the given Config/MeshSet, with a freshly
// zeroed FieldSet and Stepper. Sources are appended with AddSource
// before Run.
func New(cfg *config.Config, m *mesh.MeshSet) (o *Engine, err error) {
	if cfg.Nx != m.Nx || cfg.Ny != m.Ny {
		return nil, chk.Err("shape mismatch: config is (%d,%d), mesh is (%d,%d)", cfg.Nx, cfg.Ny, m.Nx, m.Ny)
	}
	o = &Engine{
		Cfg:   cfg,
		Mesh:  m,
		Field: field.New(cfg.Nx, cfg.Ny),
		step:  stepper.New(cfg.Nx, cfg.Ny),
	}
	return
}

// AddSource appends a source, to be injected in this order every step
// (spec.md §4.5 Step G).
func (o *Engine) AddSource(s source.Source) {
	o.Sources = append(o.Sources, s)
}

// recordedSteps returns how many rows the recording array must have
// given RecordEvery.
func (o *Engine) recordedSteps() int {
	stride := o.RecordEvery
	if stride <= 0 {
		stride = 1
	}
	n := o.Cfg.NSteps()
	return (n + stride - 1) / stride
}

// Run executes the full stepping loop, writing Ez into ezTime and
// (optionally) into the detector time series. ezTime must have shape
// (K, nx, ny) where K = recordedSteps(); this is validated up front
// (spec.md §7 ShapeMismatch, scenario S6) before any step runs.
//
// detectorTime, if non-nil, must have shape (K, len(Engine.Detectors))
// and receives each detector's Ez value alongside the snapshot write.
//
// After Run returns successfully, ezTime[k][i][j] is the recorded Ez at
// the corresponding time stamp immediately after source injection for
// that step (spec.md §6, §8 P3).
func (o *Engine) Run(ezTime [][][]float64, detectorTime [][]float64) (err error) {
	nx, ny := o.Cfg.Nx, o.Cfg.Ny
	nRecorded := o.recordedSteps()
	if len(ezTime) != nRecorded {
		return chk.Err("shape mismatch: Ez_time has %d rows, expected %d (n_steps=%d, record_every=%d)", len(ezTime), nRecorded, o.Cfg.NSteps(), o.RecordEvery)
	}
	for k, row := range ezTime {
		if len(row) != nx {
			return chk.Err("shape mismatch: Ez_time[%d] has %d rows, expected nx=%d", k, len(row), nx)
		}
		for i, col := range row {
			if len(col) != ny {
				return chk.Err("shape mismatch: Ez_time[%d][%d] has %d columns, expected ny=%d", k, i, len(col), ny)
			}
		}
	}
	if detectorTime != nil {
		if len(detectorTime) != nRecorded {
			return chk.Err("shape mismatch: detector_time has %d rows, expected %d", len(detectorTime), nRecorded)
		}
		for k, row := range detectorTime {
			if len(row) != len(o.Detectors) {
				return chk.Err("shape mismatch: detector_time[%d] has %d columns, expected %d detectors", k, len(row), len(o.Detectors))
			}
		}
	}

	stride := o.RecordEvery
	if stride <= 0 {
		stride = 1
	}

	if o.ShowMsg {
		io.Pf("> running %d steps on a (%d,%d) grid\n", o.Cfg.NSteps(), nx, ny)
	}

	n := o.Cfg.NSteps()
	recIdx := 0
	for k := 0; k < n; k++ {

		// Steps A-G: the Yee kernel.
		if err = o.step.Step(o.Cfg, o.Mesh, o.Field, o.Sources); err != nil {
			return chk.Err("run aborted at iteration %d (recorded up to row %d):\n%v", k, recIdx, err)
		}

		// Step H: recording (subject to RecordEvery subsampling).
		if k%stride == 0 {
			for i := 0; i < nx; i++ {
				copy(ezTime[recIdx][i], o.Field.Ez[i])
			}
			if detectorTime != nil {
				for d, det := range o.Detectors {
					detectorTime[recIdx][d] = o.Field.Ez[det.I][det.J]
				}
			}
			recIdx++
		}

		// Step I: time advance, unless this was the last step.
		if k < n-1 {
			o.Cfg.Advance()
		}
	}

	if o.ShowMsg {
		io.Pfgreen("> success: %d rows recorded\n", recIdx)
	}
	return
}
