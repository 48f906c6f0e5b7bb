// Package config derives scratch-buffer and diagnostic sizing from the host
// machine, in the spirit of eutils' SetTunings/GetTunings performance
// parameters. Per §5 the simulation itself is strictly single-threaded —
// these values size scratch buffers and diagnostics reporting only, never
// goroutine fan-out.
package config

import (
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// TuningParams are the host-derived constants diag reports and population
// sizes its family-split scratch map from.
type TuningParams struct {
	LogicalCPUs    int
	PhysicalCores  int
	TotalMemoryMiB uint64

	// MatrixScratchRows is a scratch-size hint scaled conservatively to
	// available memory. It caps the initial capacity of the family map in
	// population.SplitIntoFamilies and is printed by diag.PrintStats.
	MatrixScratchRows int
}

// DefaultTuning derives TuningParams from the current host. It never reads
// user configuration; it exists purely to right-size scratch buffers to the
// machine the simulation happens to run on.
func DefaultTuning() TuningParams {
	nCPU := runtime.NumCPU()
	if nCPU < 1 {
		nCPU = 1
	}
	cores := nCPU
	if cpuid.CPU.ThreadsPerCore > 0 {
		cores = nCPU / cpuid.CPU.ThreadsPerCore
		if cores < 1 {
			cores = 1
		}
	}

	totalMiB := memory.TotalMemory() / (1024 * 1024)

	rows := 4096
	switch {
	case totalMiB >= 16384:
		rows = 65536
	case totalMiB >= 4096:
		rows = 16384
	}

	return TuningParams{
		LogicalCPUs:       nCPU,
		PhysicalCores:     cores,
		TotalMemoryMiB:    totalMiB,
		MatrixScratchRows: rows,
	}
}
