package tabular_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KiraVill/genomicSimulation/tabular"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDimensions(t *testing.T) {
	path := writeTemp(t, "founders.tsv", "a\tb\tc\n1\t2\t3\n4\t5\t6\n")
	rows, cols, err := tabular.Dimensions(path, "\t")
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if rows != 3 || cols != 3 {
		t.Fatalf("Dimensions = (%d, %d), want (3, 3)", rows, cols)
	}
}

func TestDimensionsBadColumns(t *testing.T) {
	path := writeTemp(t, "bad.tsv", "a\tb\tc\n1\t2\n")
	if _, _, err := tabular.Dimensions(path, "\t"); err == nil {
		t.Fatal("expected bad-columns error")
	}
}

func TestReadBlockDefinitions(t *testing.T) {
	path := writeTemp(t, "blocks.tsv",
		"chrom\tpos\tname\tclass\tmarkers\n"+
			"1\t0.0\tblock0\tqtl\tm0;m1\n"+
			"1\t5.0\tblock1\tqtl\tm2\n")
	defs, err := tabular.ReadBlockDefinitions(path)
	if err != nil {
		t.Fatalf("ReadBlockDefinitions: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d defs, want 2", len(defs))
	}
	if defs[0].Name != "block0" || len(defs[0].Markers) != 2 {
		t.Fatalf("defs[0] = %+v", defs[0])
	}
	if defs[1].Name != "block1" || len(defs[1].Markers) != 1 || defs[1].Markers[0] != "m2" {
		t.Fatalf("defs[1] = %+v", defs[1])
	}
}
