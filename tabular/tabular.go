// Package tabular reads the whitespace- and tab-delimited files the core
// treats as external collaborators: dimension-probing for generic founder
// tables and the block-definition table consumed by the GEBV kernel's
// block-partitioned breeding values. Adapted from the line-oriented
// bufio.Scanner conventions in eutils' TableConverter/TableToMap.
package tabular

import (
	"bufio"
	"os"
	"strings"

	"github.com/KiraVill/genomicSimulation/simerrs"
)

// Dimensions reports (numRows, numColumns) for a delimited file: columns are
// counted by separator occurrences + 1 on the first non-empty row; rows
// count newline-terminated non-empty lines plus a trailing unterminated
// row, if any. Every non-first non-empty row must match the first row's
// column count.
func Dimensions(path, sep string) (rows, cols int, err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return 0, 0, simerrs.New(simerrs.IOFailure, "opening %s: %v", path, openErr)
	}
	defer f.Close()

	scanr := bufio.NewScanner(f)
	row := 0
	for scanr.Scan() {
		line := scanr.Text()
		if line == "" {
			continue
		}
		row++
		n := strings.Count(line, sep) + 1
		if cols == 0 {
			cols = n
			continue
		}
		if n != cols {
			return 0, 0, simerrs.New(simerrs.InvalidArgument, "Bad columns on row %d", row)
		}
	}
	if scanErr := scanr.Err(); scanErr != nil {
		return 0, 0, simerrs.New(simerrs.IOFailure, "reading %s: %v", path, scanErr)
	}
	return row, cols, nil
}

// BlockDefinition is one row of the block-definition table: a genomic
// region named by four leading tokens, covering a set of marker names.
type BlockDefinition struct {
	Chromosome string
	Position   string
	Name       string
	Class      string
	Markers    []string
}

// ReadBlockDefinitions parses a tab-separated block-definition file: a
// one-line header, then rows of four leading tokens (chrom, pos, name,
// class) followed by a whitespace-delimited field of semicolon-separated
// marker names.
func ReadBlockDefinitions(path string) ([]BlockDefinition, error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, simerrs.New(simerrs.IOFailure, "opening %s: %v", path, openErr)
	}
	defer f.Close()

	scanr := bufio.NewScanner(f)
	var defs []BlockDefinition
	row := 0
	for scanr.Scan() {
		line := scanr.Text()
		row++
		if row == 1 {
			continue // header
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 5 {
			return nil, simerrs.New(simerrs.InvalidArgument, "Bad columns on row %d", row)
		}
		markerField := strings.TrimSpace(cols[4])
		defs = append(defs, BlockDefinition{
			Chromosome: cols[0],
			Position:   cols[1],
			Name:       cols[2],
			Class:      cols[3],
			Markers:    strings.Split(markerField, ";"),
		})
	}
	if scanErr := scanr.Err(); scanErr != nil {
		return nil, simerrs.New(simerrs.IOFailure, "reading %s: %v", path, scanErr)
	}
	return defs, nil
}
