// Package yield gives long-running loops a cheap, idiomatic way to honor
// host cancellation, the Go rendering of the cooperative-interrupt hook
// required by the design (matrix multiply, count-matrix fill, file scans).
package yield

import (
	"context"

	"github.com/KiraVill/genomicSimulation/simerrs"
)

// Every defines how often a loop consults the context; checking on every
// iteration would dominate runtime for tight numeric loops.
const Every = 4096

// Check returns a non-nil *simerrs.Error the first time it is called with
// i a multiple of Every while ctx is done. Callers call this once per loop
// iteration; the modulus test keeps the common case to a single branch.
func Check(ctx context.Context, i int) error {
	if i%Every != 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return simerrs.New(simerrs.Cancelled, "operation cancelled: %v", ctx.Err())
	default:
		return nil
	}
}
