// Package cross implements the crossing orchestrator (component H):
// given a parent-pair schedule, it asks an external meiosis sampler for
// offspring allele strings and appends them through the genotype store,
// optionally streaming genotype/pedigree/effect dumps. Adapted from the
// GenOptions-driven cross family in original_source/src/utils.c (the
// BASIC_OPT record and its consumers).
package cross

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/KiraVill/genomicSimulation/effects"
	"github.com/KiraVill/genomicSimulation/gebv"
	"github.com/KiraVill/genomicSimulation/genmap"
	"github.com/KiraVill/genomicSimulation/ioexport"
	"github.com/KiraVill/genomicSimulation/population"
	"github.com/KiraVill/genomicSimulation/simerrs"
	"github.com/KiraVill/genomicSimulation/yield"
)

// Sampler generates one offspring allele string from two parent genotypes
// across the genetic map. The core never inspects recombination mechanics;
// it only needs this one function (§1: deliberately out of scope).
type Sampler func(gm *genmap.Map, parent1Genes, parent2Genes string) string

// Options is the configuration record carried across every cross schedule
// variant (§4.H), mirroring GenOptions/BASIC_OPT field-for-field; GzipDumps
// has no GenOptions counterpart.
type Options struct {
	WillName           bool
	NamePrefix         string
	FamilySize         int
	TrackPedigree      bool
	AllocateIDs        bool
	FilePrefix         string
	SaveGenesToFile    bool
	SavePedigreeToFile bool
	SaveEffectsToFile  bool
	GzipDumps          bool
	RetainInSimdata    bool
}

// BasicOptions mirrors BASIC_OPT: no naming, family size 1, no pedigree
// tracking, ids allocated, nothing written to file, offspring retained.
func BasicOptions() Options {
	return Options{FamilySize: 1, AllocateIDs: true, RetainInSimdata: true}
}

// Orchestrator wires together the store, map, effect table and sampler
// every cross schedule variant needs.
type Orchestrator struct {
	Store   *population.Store
	Map     *genmap.Map
	Effects *effects.Table
	Sample  Sampler
}

func New(store *population.Store, gm *genmap.Map, tbl *effects.Table, sample Sampler) *Orchestrator {
	return &Orchestrator{Store: store, Map: gm, Effects: tbl, Sample: sample}
}

type parentPair struct {
	p1, p2 int // global indices
}

// runPairs is the common engine every public cross method delegates to: for
// each parent-index pair, ask the sampler for opts.FamilySize offspring,
// append them through the store, and apply the configured naming/id/file
// options. Returns the fresh group tag holding all produced offspring.
func (o *Orchestrator) runPairs(ctx context.Context, pairs []parentPair, opts Options) (uint32, error) {
	if opts.FamilySize < 1 {
		return 0, simerrs.New(simerrs.InvalidArgument, "family size must be >= 1, got %d", opts.FamilySize)
	}
	var produced []int
	counter := 0
	for _, pair := range pairs {
		if err := yield.Check(ctx, counter); err != nil {
			return 0, err
		}
		counter++

		g1, err := o.Store.GenesOfIndex(pair.p1)
		if err != nil {
			return 0, err
		}
		g2, err := o.Store.GenesOfIndex(pair.p2)
		if err != nil {
			return 0, err
		}
		var pid1, pid2 uint32
		if opts.TrackPedigree {
			pid1, err = o.Store.IDOfIndex(pair.p1)
			if err != nil {
				return 0, err
			}
			pid2, err = o.Store.IDOfIndex(pair.p2)
			if err != nil {
				return 0, err
			}
		}

		for i := 0; i < opts.FamilySize; i++ {
			offspring := o.Sample(o.Map, g1, g2)
			idx, err := o.Store.Append(offspring, pid1, pid2, "", 0)
			if err != nil {
				return 0, err
			}
			produced = append(produced, idx)
		}
	}

	if len(produced) == 0 {
		return 0, simerrs.New(simerrs.InvalidArgument, "cross schedule produced no offspring")
	}

	group := o.Store.SplitByIndices(produced)

	if opts.AllocateIDs {
		if _, err := o.Store.AllocateIDs(produced[0], produced[len(produced)-1]); err != nil {
			return group, err
		}
	}
	if opts.WillName {
		if err := o.Store.SetNamesForIndices(produced, opts.NamePrefix, 1); err != nil {
			return group, err
		}
	}

	if err := o.dumpToFiles(ctx, group, opts); err != nil {
		return group, err
	}

	if !opts.RetainInSimdata {
		o.Store.DeleteByGroup(group)
		return 0, nil
	}
	return group, nil
}

// dumpToFiles streams the configured genotype/pedigree/effect dumps for
// group to "{FilePrefix}.genotype"/".pedigree"/".effects", per §4.H point 4,
// gzip-compressing them via ioexport when opts.GzipDumps is set or
// FilePrefix itself already names a ".gz" file.
func (o *Orchestrator) dumpToFiles(ctx context.Context, group uint32, opts Options) error {
	if opts.FilePrefix == "" {
		return nil
	}
	gzipped := opts.GzipDumps || strings.HasSuffix(opts.FilePrefix, ".gz")

	if opts.SaveGenesToFile {
		w, closer, err := ioexport.Create(opts.FilePrefix+".genotype", gzipped)
		if err != nil {
			return err
		}
		if err := DumpGenotypes(w, o.Store, group); err != nil {
			closer()
			return err
		}
		if err := closer(); err != nil {
			return err
		}
	}
	if opts.SavePedigreeToFile {
		w, closer, err := ioexport.Create(opts.FilePrefix+".pedigree", gzipped)
		if err != nil {
			return err
		}
		if err := DumpPedigree(w, o.Store, group); err != nil {
			closer()
			return err
		}
		if err := closer(); err != nil {
			return err
		}
	}
	if opts.SaveEffectsToFile && o.Effects != nil {
		w, closer, err := ioexport.Create(opts.FilePrefix+".effects", gzipped)
		if err != nil {
			return err
		}
		if err := DumpEffects(ctx, w, o.Store, o.Effects, group); err != nil {
			closer()
			return err
		}
		if err := closer(); err != nil {
			return err
		}
	}
	return nil
}

// RandomCrosses performs n random crosses of distinct parent pairs drawn
// from group g (sampling with replacement across pairs, but never pairing
// an individual with itself).
func (o *Orchestrator) RandomCrosses(ctx context.Context, g uint32, n int, opts Options, rng *rand.Rand) (uint32, error) {
	members := o.Store.GroupIndexes(g)
	if len(members) < 2 {
		return 0, simerrs.New(simerrs.InvalidArgument, "group %d has fewer than 2 members", g)
	}
	if n < 0 {
		return 0, simerrs.New(simerrs.InvalidArgument, "n must be non-negative, got %d", n)
	}
	pairs := make([]parentPair, n)
	for i := 0; i < n; i++ {
		a := members[rng.Intn(len(members))]
		b := members[rng.Intn(len(members))]
		for b == a && len(members) > 1 {
			b = members[rng.Intn(len(members))]
		}
		pairs[i] = parentPair{a, b}
	}
	return o.runPairs(ctx, pairs, opts)
}

// IndexPairs crosses the explicit (p1, p2) global-index pairs given.
func (o *Orchestrator) IndexPairs(ctx context.Context, indexPairs [][2]int, opts Options) (uint32, error) {
	pairs := make([]parentPair, len(indexPairs))
	for i, p := range indexPairs {
		pairs[i] = parentPair{p[0], p[1]}
	}
	return o.runPairs(ctx, pairs, opts)
}

// NamePairs crosses explicit (name1, name2) pairs, resolving each name to
// its global index via the store's name locator.
func (o *Orchestrator) NamePairs(ctx context.Context, namePairs [][2]string, opts Options) (uint32, error) {
	pairs := make([]parentPair, len(namePairs))
	for i, np := range namePairs {
		i1, err := o.Store.IndexOfName(np[0])
		if err != nil {
			return 0, err
		}
		i2, err := o.Store.IndexOfName(np[1])
		if err != nil {
			return 0, err
		}
		pairs[i] = parentPair{i1, i2}
	}
	return o.runPairs(ctx, pairs, opts)
}

// AllPairs performs the full Cartesian cross within group g, excluding
// self-pairs and (by the unordered convention of §4.F) each unordered pair
// only once.
func (o *Orchestrator) AllPairs(ctx context.Context, g uint32, opts Options) (uint32, error) {
	members := o.Store.GroupIndexes(g)
	if len(members) < 2 {
		return 0, simerrs.New(simerrs.InvalidArgument, "group %d has fewer than 2 members", g)
	}
	var pairs []parentPair
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			pairs = append(pairs, parentPair{members[i], members[j]})
		}
	}
	return o.runPairs(ctx, pairs, opts)
}

// SelfCrosses self-crosses every member of g (p1 == p2 == member).
func (o *Orchestrator) SelfCrosses(ctx context.Context, g uint32, opts Options) (uint32, error) {
	members := o.Store.GroupIndexes(g)
	pairs := make([]parentPair, len(members))
	for i, m := range members {
		pairs[i] = parentPair{m, m}
	}
	return o.runPairs(ctx, pairs, opts)
}

// DoubledHaploids produces one doubled-haploid offspring per member of g:
// the sampler is called with the member as both parents, and the first
// haplotype of its output (one gamete) is copied onto the second, so every
// offspring is homozygous at every marker. FamilySize is forced to 1
// regardless of opts.
func (o *Orchestrator) DoubledHaploids(ctx context.Context, g uint32, opts Options) (uint32, error) {
	opts.FamilySize = 1
	members := o.Store.GroupIndexes(g)
	pairs := make([]parentPair, len(members))
	for i, m := range members {
		pairs[i] = parentPair{m, m}
	}
	dh := *o
	dh.Sample = func(gm *genmap.Map, p1, p2 string) string {
		child := []byte(o.Sample(gm, p1, p2))
		for m := 0; m+1 < len(child); m += 2 {
			child[m+1] = child[m]
		}
		return string(child)
	}
	return dh.runPairs(ctx, pairs, opts)
}

// SpecificPair performs exactly one cross between global indices p1 and p2.
func (o *Orchestrator) SpecificPair(ctx context.Context, p1, p2 int, opts Options) (uint32, error) {
	return o.runPairs(ctx, []parentPair{{p1, p2}}, opts)
}

// DumpGenotypes writes the allele string of every member of g, one per
// line, prefixed by name or "G{index}" (§6 Best-genotype/Block-GEBV output
// conventions).
func DumpGenotypes(w io.Writer, store *population.Store, g uint32) error {
	indexes := store.GroupIndexes(g)
	for _, idx := range indexes {
		genes, err := store.GenesOfIndex(idx)
		if err != nil {
			return err
		}
		name, err := store.NameOfIndex(idx)
		if err != nil {
			return err
		}
		if name == "" {
			name = fmt.Sprintf("G%d", idx)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", name, genes); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing genotype dump: %v", err)
		}
	}
	return nil
}

// DumpPedigree writes "{name} {parent1_id} {parent2_id}" for every member
// of g.
func DumpPedigree(w io.Writer, store *population.Store, g uint32) error {
	ids := store.GroupIDs(g)
	for _, id := range ids {
		name, err := store.NameOf(id)
		if err != nil {
			return err
		}
		p1, p2, _ := store.ParentsOf(id)
		if _, err := fmt.Fprintf(w, "%s %d %d\n", name, p1, p2); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing pedigree dump: %v", err)
		}
	}
	return nil
}

// DumpEffects writes the GEBV of every member of g, one per line, alongside
// its name, using the gebv kernel.
func DumpEffects(ctx context.Context, w io.Writer, store *population.Store, tbl *effects.Table, g uint32) error {
	vals, err := gebv.GEBVForGroup(ctx, store, tbl, g)
	if err != nil {
		return err
	}
	indexes := store.GroupIndexes(g)
	for i, idx := range indexes {
		name, err := store.NameOfIndex(idx)
		if err != nil {
			return err
		}
		if name == "" {
			name = fmt.Sprintf("G%d", idx)
		}
		if _, err := fmt.Fprintf(w, "%s %v\n", name, vals.At(0, i)); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing effects dump: %v", err)
		}
	}
	return nil
}
