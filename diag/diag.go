// Package diag prints run diagnostics and performance-tuning parameters,
// adapted from PrintStats/PrintDuration/PrintMemory in
// edirect/eutils/utils.go.
package diag

import (
	"io"
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KiraVill/genomicSimulation/config"
)

// PrintStats reports host tuning parameters: logical CPUs, physical cores,
// total memory, and the derived scratch-buffer sizing, thousands-separated
// the way a human-facing report should be.
func PrintStats(w io.Writer, tp config.TuningParams) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Thrd %d\n", tp.LogicalCPUs)
	p.Fprintf(w, "Core %d\n", tp.PhysicalCores)
	p.Fprintf(w, "Mmry %d MiB\n", tp.TotalMemoryMiB)
	p.Fprintf(w, "Scrb %d\n", tp.MatrixScratchRows)
}

// PrintMemory reports current Go runtime heap usage, as PrintMemory does in
// the teacher's utils.go.
func PrintMemory(w io.Writer) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p := message.NewPrinter(language.English)
	bToMb := func(b uint64) uint64 { return b / 1024 / 1024 }
	p.Fprintf(w, "Alloc = %d MiB", bToMb(m.Alloc))
	p.Fprintf(w, "\tTotalAlloc = %d MiB", bToMb(m.TotalAlloc))
	p.Fprintf(w, "\tSys = %d MiB", bToMb(m.Sys))
	p.Fprintf(w, "\tNumGC = %d\n", m.NumGC)
}

// PrintDuration reports elapsed time and, when recordCount is positive, a
// throughput figure, mirroring PrintDuration's rate-reporting conventions.
func PrintDuration(w io.Writer, label string, started time.Time, recordCount int) {
	seconds := time.Since(started).Seconds()
	prec := 3
	if seconds >= 100 {
		prec = 1
	} else if seconds >= 10 {
		prec = 2
	}

	p := message.NewPrinter(language.English)
	if recordCount > 0 {
		p.Fprintf(w, "Processed %d %s in %.*f seconds", recordCount, label, prec, seconds)
		if seconds >= 0.001 {
			rate := int(float64(recordCount) / seconds)
			p.Fprintf(w, " (%d %s/second)", rate, label)
		}
		p.Fprintf(w, "\n")
		return
	}
	p.Fprintf(w, "Completed in %.*f seconds\n", prec, seconds)
}
