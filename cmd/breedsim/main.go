// Command breedsim is the host-binding-free CLI surface over the
// population store, group algebra, and GEBV kernel: a thin, single-binary
// stand-in for the scripting-host binding layer the core deliberately
// leaves external (§1). Dispatch follows the teacher's manual
// os.Args-switch style (edirect/cmd/rchive.go), not the flag package.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gedex/inflector"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KiraVill/genomicSimulation/config"
	"github.com/KiraVill/genomicSimulation/diag"
	"github.com/KiraVill/genomicSimulation/dmatrix"
	"github.com/KiraVill/genomicSimulation/effects"
	"github.com/KiraVill/genomicSimulation/gebv"
	"github.com/KiraVill/genomicSimulation/population"
)

var (
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

func fail(format string, args ...interface{}) {
	errColor.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}

func warn(format string, args ...interface{}) {
	warnColor.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}

func main() {
	args := os.Args[1:]
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	switch args[0] {
	case "help", "-help", "--help":
		printHelp()
	case "stats":
		diag.PrintStats(os.Stdout, config.DefaultTuning())
	case "ideal-genotype":
		cmdIdealGenotype(args[1:])
	case "gebv":
		cmdGEBV(args[1:])
	default:
		fail("unrecognized command %q", args[0])
	}
}

func printHelp() {
	titleCaser := cases.Title(language.English)
	fmt.Fprintln(os.Stdout, titleCaser.String("breeding simulator"))
	fmt.Fprintln(os.Stdout, "commands: stats, ideal-genotype, gebv")
}

// loadEffects reads a whitespace-separated file: a header row of marker
// names, then one row per allele label ("A 0.1 -0.2 0.5").
func loadEffects(path string) (*effects.Table, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	scanr := bufio.NewScanner(f)
	nMarkers := 0
	var names []rune
	var rows [][]float64
	row := 0
	for scanr.Scan() {
		line := strings.TrimSpace(scanr.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row++
		if row == 1 {
			nMarkers = len(fields)
			continue
		}
		label := []rune(fields[0])[0]
		vals := make([]float64, nMarkers)
		for i := 0; i < nMarkers && i+1 < len(fields); i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, 0, err
			}
			vals[i] = v
		}
		names = append(names, label)
		rows = append(rows, vals)
	}

	m, err := dmatrix.Zeros(len(rows), nMarkers)
	if err != nil {
		return nil, 0, err
	}
	for r, vals := range rows {
		for c, v := range vals {
			m.Set(r, c, v)
		}
	}
	tbl, err := effects.New(names, m)
	if err != nil {
		return nil, 0, err
	}
	return tbl, nMarkers, nil
}

func cmdIdealGenotype(args []string) {
	if len(args) < 1 {
		fail("ideal-genotype requires a path to an effects file")
	}
	tbl, nMarkers, err := loadEffects(args[0])
	if err != nil {
		fail("loading effects file: %v", err)
	}
	genotype, err := gebv.IdealGenotype(tbl, nMarkers)
	if err != nil {
		fail("computing ideal genotype: %v", err)
	}
	fmt.Println(genotype)
}

// loadFounders reads one allele string per line and appends each as an
// unnamed individual (cmdGEBV prints them as "G{index}"); a minimal
// founder-table stand-in for the file parser §1 leaves external.
func loadFounders(store *population.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanr := bufio.NewScanner(f)
	for scanr.Scan() {
		line := strings.TrimSpace(scanr.Text())
		if line == "" {
			continue
		}
		if _, err := store.Append(line, 0, 0, "", 0); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func cmdGEBV(args []string) {
	if len(args) < 2 {
		fail("gebv requires <effects-file> <founders-file>")
	}
	tbl, nMarkers, err := loadEffects(args[0])
	if err != nil {
		fail("loading effects file: %v", err)
	}

	store, err := population.NewStore(nMarkers)
	if err != nil {
		fail("creating store: %v", err)
	}
	n, err := loadFounders(store, args[1])
	if err != nil {
		fail("loading founders: %v", err)
	}
	if _, err := store.AllocateIDs(0, n-1); err != nil {
		warn("%v", err)
	}

	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	group := store.SplitByIndices(indexes)

	vals, err := gebv.GEBVForGroup(context.Background(), store, tbl, group)
	if err != nil {
		fail("computing GEBV: %v", err)
	}

	noun := "individual"
	if n != 1 {
		noun = inflector.Pluralize(noun)
	}
	fmt.Fprintf(os.Stdout, "computed %s for %d %s\n",
		inflector.Pluralize("breeding value"), n, noun)
	for i := 0; i < n; i++ {
		fmt.Printf("G%d %v\n", i, vals.At(0, i))
	}
}
