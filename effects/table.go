// Package effects implements the effect table (component C): per-allele
// marker effect rows and the best-allele lookup used to build the ideal
// genotype, adapted from EffectMatrix (original_source/src/utils.c,
// calculate_ideal_genotype in sim-gebv.c).
package effects

import (
	"github.com/KiraVill/genomicSimulation/dmatrix"
	"github.com/KiraVill/genomicSimulation/simerrs"
)

// Table holds K distinct single-character allele labels and a K x n_markers
// matrix of additive per-allele contributions.
type Table struct {
	Names   []rune
	Effects *dmatrix.Matrix
}

// New builds a Table, failing if names is empty, contains duplicates, or
// doesn't match the effects matrix's row count.
func New(names []rune, effects *dmatrix.Matrix) (*Table, error) {
	if len(names) == 0 {
		return nil, simerrs.New(simerrs.InvalidArgument, "effect table needs at least one allele label")
	}
	if effects == nil || effects.Rows != len(names) {
		return nil, simerrs.New(simerrs.ShapeMismatch, "effect matrix rows (%d) must match allele label count (%d)", rowsOf(effects), len(names))
	}
	seen := make(map[rune]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, simerrs.New(simerrs.InvalidArgument, "duplicate allele label %q in effect table", n)
		}
		seen[n] = true
	}
	return &Table{Names: names, Effects: effects}, nil
}

func rowsOf(m *dmatrix.Matrix) int {
	if m == nil {
		return 0
	}
	return m.Rows
}

// RowIndex returns the row index of allele label a, or an error if a is
// not one of the table's effect_names.
func (t *Table) RowIndex(a rune) (int, error) {
	for i, n := range t.Names {
		if n == a {
			return i, nil
		}
	}
	return -1, simerrs.New(simerrs.NotFound, "allele label %q has no effect row", a)
}

// BestAllele returns the allele label with the highest effect at marker m,
// ties broken by lowest row index (i.e. the first-listed label wins).
func (t *Table) BestAllele(marker int) (rune, error) {
	if t.Effects == nil || t.Effects.Rows < 1 {
		return 0, simerrs.New(simerrs.MissingPrerequisite, "no effect values are loaded")
	}
	if marker < 0 || marker >= t.Effects.Cols {
		return 0, simerrs.New(simerrs.InvalidArgument, "marker %d out of range [0,%d)", marker, t.Effects.Cols)
	}
	best := t.Names[0]
	bestScore := t.Effects.At(0, marker)
	for a := 1; a < t.Effects.Rows; a++ {
		if v := t.Effects.At(a, marker); v > bestScore {
			bestScore = v
			best = t.Names[a]
		}
	}
	return best, nil
}
