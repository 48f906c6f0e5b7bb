package gebv

import (
	"bufio"
	"fmt"
	"io"

	"github.com/KiraVill/genomicSimulation/effects"
	"github.com/KiraVill/genomicSimulation/genmap"
	"github.com/KiraVill/genomicSimulation/population"
	"github.com/KiraVill/genomicSimulation/simerrs"
	"github.com/KiraVill/genomicSimulation/tabular"
)

// blockContribution sums the effect contribution of a single haplotype's
// alleles at a block's markers for one individual.
func blockContribution(tbl *effects.Table, gm *genmap.Map, genes string, markers []string, hapOffset int) float64 {
	total := 0.0
	for _, name := range markers {
		m, err := gm.MarkerIndex(name)
		if err != nil {
			continue // unknown marker names within a block are silently skipped
		}
		allele := rune(genes[2*m+hapOffset])
		row, err := tbl.RowIndex(allele)
		if err != nil {
			continue // allele label not in effect_names contributes nothing
		}
		total += tbl.Effects.At(row, m)
	}
	return total
}

// WriteBlockGEBVs implements block_gebvs (§4.G): for each block in the
// block-definition table, and for each individual in group (or every
// individual if group == 0), emits two lines "{name_or_Gi}_1 v…" and
// "{name_or_Gi}_2 v…", vk the summed effect contribution of hap-A
// (resp. hap-B) across that block's markers.
func WriteBlockGEBVs(w io.Writer, store *population.Store, gm *genmap.Map, tbl *effects.Table, blockFile string, group uint32) error {
	if tbl == nil || tbl.Effects == nil || tbl.Effects.Rows < 1 {
		return simerrs.New(simerrs.MissingPrerequisite, "no effect values are loaded")
	}
	defs, err := tabular.ReadBlockDefinitions(blockFile)
	if err != nil {
		return err
	}

	var indexes []int
	if group == 0 {
		indexes = make([]int, store.NIndividuals())
		for i := range indexes {
			indexes[i] = i
		}
	} else {
		indexes = store.GroupIndexes(group)
	}

	bw := bufio.NewWriter(w)
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

		if _, err := fmt.Fprintf(bw, "%s_1", name); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing block-gebv file: %v", err)
		}
		for _, def := range defs {
			v := blockContribution(tbl, gm, genes, def.Markers, 0)
			if _, err := fmt.Fprintf(bw, " %v", v); err != nil {
				return simerrs.New(simerrs.IOFailure, "writing block-gebv file: %v", err)
			}
		}
		if _, err := fmt.Fprint(bw, "\n"); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing block-gebv file: %v", err)
		}

		if _, err := fmt.Fprintf(bw, "%s_2", name); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing block-gebv file: %v", err)
		}
		for _, def := range defs {
			v := blockContribution(tbl, gm, genes, def.Markers, 1)
			if _, err := fmt.Fprintf(bw, " %v", v); err != nil {
				return simerrs.New(simerrs.IOFailure, "writing block-gebv file: %v", err)
			}
		}
		if _, err := fmt.Fprint(bw, "\n"); err != nil {
			return simerrs.New(simerrs.IOFailure, "writing block-gebv file: %v", err)
		}
	}
	return bw.Flush()
}
