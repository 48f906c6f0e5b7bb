// Package genmap implements the genetic map (component B): marker
// name/position tables, derived chromosome boundaries and lengths, and
// name lookup, adapted from the GeneticMap fields of SimData in
// original_source/src/utils.c (map.n_chr, map.chr_ends, map.chr_lengths,
// map.positions) and the name<->position alignment used throughout
// sim-gebv.c.
package genmap

import (
	"sort"

	"github.com/KiraVill/genomicSimulation/simerrs"
)

// MarkerPosition pairs a chromosome number with a centiMorgan position.
// Chromosome 0 denotes "uninitialised / missing"; such markers sort to the
// tail of any ordering.
type MarkerPosition struct {
	Chromosome uint8
	Position   float64
}

// Map holds an ordered sequence of marker names, their positions, and the
// chromosome boundaries/lengths derived from them.
type Map struct {
	Names     []string
	Positions []MarkerPosition

	// ChrEnds holds n_chr+1 marker-index bounds: chromosome c occupies
	// Names[ChrEnds[c-1]:ChrEnds[c]] (1-indexed chromosomes, ChrEnds[0]==0).
	ChrEnds []int
	// ChrLengths holds the centiMorgan span of each chromosome, 0-indexed
	// by chromosome-1 (chromosome 0, the "missing" bucket, has no length).
	ChrLengths []float64
}

// New builds a Map from parallel name/position slices, sorting markers by
// (chromosome, position) with chromosome-0 entries moved to the tail, and
// permuting names in lockstep. Order among equal keys is unspecified, as
// in the original.
func New(names []string, positions []MarkerPosition) (*Map, error) {
	if len(names) != len(positions) {
		return nil, simerrs.New(simerrs.InvalidArgument, "names and positions length mismatch: %d vs %d", len(names), len(positions))
	}
	n := len(names)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		pi, pj := positions[idx[i]], positions[idx[j]]
		if (pi.Chromosome == 0) != (pj.Chromosome == 0) {
			return pj.Chromosome == 0 // non-zero sorts before zero
		}
		if pi.Chromosome != pj.Chromosome {
			return pi.Chromosome < pj.Chromosome
		}
		return pi.Position < pj.Position
	})

	sortedNames := make([]string, n)
	sortedPositions := make([]MarkerPosition, n)
	for i, j := range idx {
		sortedNames[i] = names[j]
		sortedPositions[i] = positions[j]
	}

	m := &Map{Names: sortedNames, Positions: sortedPositions}
	m.deriveChromosomes()
	return m, nil
}

func (m *Map) deriveChromosomes() {
	var maxChr uint8
	for _, p := range m.Positions {
		if p.Chromosome > maxChr {
			maxChr = p.Chromosome
		}
	}
	m.ChrEnds = make([]int, maxChr+1)
	m.ChrLengths = make([]float64, maxChr)

	starts := make([]float64, maxChr+1)
	have := make([]bool, maxChr+1)
	for i, p := range m.Positions {
		if p.Chromosome == 0 {
			continue
		}
		if !have[p.Chromosome] {
			starts[p.Chromosome] = p.Position
			have[p.Chromosome] = true
		}
		m.ChrLengths[p.Chromosome-1] = p.Position - starts[p.Chromosome]
		for c := p.Chromosome; c <= maxChr; c++ {
			m.ChrEnds[c] = i + 1
		}
	}
}

// NMarkers returns the number of markers in the map.
func (m *Map) NMarkers() int {
	return len(m.Names)
}

// MarkerIndex performs a linear scan over the unordered name list to find
// a marker's position, matching the original's design (names are not kept
// in a lookup index).
func (m *Map) MarkerIndex(name string) (int, error) {
	for i, n := range m.Names {
		if n == name {
			return i, nil
		}
	}
	return -1, simerrs.New(simerrs.NotFound, "marker %q not found in genetic map", name)
}
