// Package gebv implements the GEBV & selection kernel (component G):
// per-allele count matrices, breeding-value sums, top-N selection and
// ideal-genotype synthesis, adapted from calculate_fitness_metric_of_group,
// calculate_count_matrix_of_allele_for_ids and split_group_by_fitness in
// original_source/src/sim-gebv.c.
package gebv

import (
	"context"
	"math"
	"sort"

	"github.com/KiraVill/genomicSimulation/dmatrix"
	"github.com/KiraVill/genomicSimulation/effects"
	"github.com/KiraVill/genomicSimulation/population"
	"github.com/KiraVill/genomicSimulation/simerrs"
	"github.com/KiraVill/genomicSimulation/yield"
)

// CountMatrixForIDs returns an n_markers x len(ids) matrix whose [m,i]
// entry counts occurrences of allele at the diploid cell of individual i
// at marker m (0, 1, or 2). Missing genotype rows contribute all zeros.
func CountMatrixForIDs(ctx context.Context, store *population.Store, ids []uint32, allele rune) (*dmatrix.Matrix, error) {
	counts, err := dmatrix.Zeros(store.NMarkers, len(ids))
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		if err := yield.Check(ctx, i); err != nil {
			return nil, err
		}
		genes, err := store.GenesOf(id)
		if err != nil {
			continue // missing genotype row contributes all zeros
		}
		runes := []rune(genes)
		for m := 0; m < store.NMarkers; m++ {
			cell := 0.0
			if runes[2*m] == allele {
				cell++
			}
			if runes[2*m+1] == allele {
				cell++
			}
			counts.Set(m, i, cell)
		}
	}
	return counts, nil
}

// GEBVForGroup computes a 1xlen(group) matrix, the sum over alleles of
// (effect row . count matrix for that allele), for every member of group
// g. Fails if no effects are loaded or the store is empty.
func GEBVForGroup(ctx context.Context, store *population.Store, tbl *effects.Table, g uint32) (*dmatrix.Matrix, error) {
	if tbl == nil || tbl.Effects == nil || tbl.Effects.Rows < 1 {
		return nil, simerrs.New(simerrs.MissingPrerequisite, "no effect values are loaded")
	}
	if store.NIndividuals() == 0 {
		return nil, simerrs.New(simerrs.MissingPrerequisite, "store is empty")
	}

	ids := store.GroupIDs(g)
	sum, err := dmatrix.Zeros(1, len(ids))
	if err != nil {
		return nil, err
	}

	for a := 0; a < tbl.Effects.Rows; a++ {
		counts, err := CountMatrixForIDs(ctx, store, ids, tbl.Names[a])
		if err != nil {
			return nil, err
		}
		effectRow, err := dmatrix.RowSubset(tbl.Effects, a)
		if err != nil {
			return nil, err
		}
		product, err := dmatrix.Multiply(ctx, effectRow, counts)
		if err != nil {
			return nil, err
		}
		if err := dmatrix.AddInto(sum, product); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// TopNByGEBV ranks group g by GEBV (ascending if lowIsBest, else
// descending), lifts the top n into a fresh group, and returns its tag.
// Ties are broken by a stable sort, then by ascending original index
// within the group (§9 Open Question (a)).
func TopNByGEBV(ctx context.Context, store *population.Store, tbl *effects.Table, g uint32, n int, lowIsBest bool) (uint32, error) {
	if n < 0 {
		return 0, simerrs.New(simerrs.InvalidArgument, "n must be non-negative, got %d", n)
	}
	indexes := store.GroupIndexes(g)
	gebvs, err := GEBVForGroup(ctx, store, tbl, g)
	if err != nil {
		return 0, err
	}
	if n > len(indexes) {
		n = len(indexes)
	}

	order := make([]int, len(indexes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		vi, vj := gebvs.At(0, order[i]), gebvs.At(0, order[j])
		if vi == vj {
			return order[i] < order[j]
		}
		if lowIsBest {
			return vi < vj
		}
		return vi > vj
	})

	top := make([]int, n)
	for i := 0; i < n; i++ {
		top[i] = indexes[order[i]]
	}
	return store.SplitByIndices(top), nil
}

// SelectByPercent computes n = floor(len(g) * pct / 100) then runs
// TopNByGEBV.
func SelectByPercent(ctx context.Context, store *population.Store, tbl *effects.Table, g uint32, pct float64, lowIsBest bool) (uint32, error) {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, simerrs.New(simerrs.InvalidArgument, "percentage must be a finite number, got %v", pct)
	}
	if pct < 0 {
		return 0, simerrs.New(simerrs.InvalidArgument, "percentage must be non-negative, got %v", pct)
	}
	n := int(float64(store.GroupSize(g)) * pct / 100)
	return TopNByGEBV(ctx, store, tbl, g, n, lowIsBest)
}

// IdealGenotype returns the length-n_markers string of best single-copy
// alleles (§4.C: highest effect per marker, ties toward the lowest row).
func IdealGenotype(tbl *effects.Table, nMarkers int) (string, error) {
	runes := make([]rune, nMarkers)
	for m := 0; m < nMarkers; m++ {
		best, err := tbl.BestAllele(m)
		if err != nil {
			return "", err
		}
		runes[m] = best
	}
	return string(runes), nil
}
