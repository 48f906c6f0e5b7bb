// Package ioexport wraps the human-readable dump writers (genotype,
// pedigree, effects, block-GEBV) with optional gzip compression, adapted
// from the channel-based streaming conventions in edirect/eutils/chan.go
// but using klauspost/pgzip for parallel-friendly compression instead of a
// goroutine-fed channel, since dump writing here is a single synchronous
// pass rather than a record stream.
package ioexport

import (
	"io"
	"os"

	"github.com/klauspost/pgzip"

	"github.com/KiraVill/genomicSimulation/simerrs"
)

// Create opens path for writing, wrapping it in a gzip writer when gzipped
// is true (and path doesn't already carry a ".gz" suffix, in which case one
// is appended). The returned closer must be closed by the caller to flush
// and release the underlying file.
func Create(path string, gzipped bool) (w io.Writer, closer func() error, err error) {
	if gzipped && (len(path) < 3 || path[len(path)-3:] != ".gz") {
		path += ".gz"
	}
	f, openErr := os.Create(path)
	if openErr != nil {
		return nil, nil, simerrs.New(simerrs.IOFailure, "creating %s: %v", path, openErr)
	}
	if !gzipped {
		return f, f.Close, nil
	}

	gz := pgzip.NewWriter(f)
	closer = func() error {
		if err := gz.Close(); err != nil {
			f.Close()
			return simerrs.New(simerrs.IOFailure, "closing gzip writer for %s: %v", path, err)
		}
		return f.Close()
	}
	return gz, closer, nil
}
