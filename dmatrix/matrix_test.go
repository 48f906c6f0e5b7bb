package dmatrix_test

import (
	"context"
	"testing"

	"github.com/KiraVill/genomicSimulation/dmatrix"
)

func TestZeros(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"square", 3, 3, false},
		{"rectangular", 2, 5, false},
		{"empty", 0, 0, false},
		{"negative rows", -1, 3, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := dmatrix.Zeros(c.rows, c.cols)
			if (err != nil) != c.wantErr {
				t.Fatalf("Zeros(%d,%d) err=%v, wantErr=%v", c.rows, c.cols, err, c.wantErr)
			}
			if err != nil {
				return
			}
			if m.Rows != c.rows || m.Cols != c.cols {
				t.Fatalf("got %dx%d, want %dx%d", m.Rows, m.Cols, c.rows, c.cols)
			}
			for r := 0; r < m.Rows; r++ {
				for col := 0; col < m.Cols; col++ {
					if m.At(r, col) != 0 {
						t.Fatalf("Zeros not zero at (%d,%d)", r, col)
					}
				}
			}
		})
	}
}

func TestRowSubset(t *testing.T) {
	m, _ := dmatrix.Zeros(3, 2)
	m.Set(1, 0, 5)
	m.Set(1, 1, 6)

	row, err := dmatrix.RowSubset(m, 1)
	if err != nil {
		t.Fatalf("RowSubset: %v", err)
	}
	if row.Rows != 1 || row.Cols != 2 || row.At(0, 0) != 5 || row.At(0, 1) != 6 {
		t.Fatalf("RowSubset copied wrong data: %+v", row)
	}

	if _, err := dmatrix.RowSubset(m, 3); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestMultiply(t *testing.T) {
	a, _ := dmatrix.Zeros(1, 2)
	a.Set(0, 0, 2)
	a.Set(0, 1, 3)

	b, _ := dmatrix.Zeros(2, 2)
	b.Set(0, 0, 1)
	b.Set(0, 1, 0)
	b.Set(1, 0, 0)
	b.Set(1, 1, 1)

	got, err := dmatrix.Multiply(context.Background(), a, b)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if got.At(0, 0) != 2 || got.At(0, 1) != 3 {
		t.Fatalf("Multiply wrong result: %v %v", got.At(0, 0), got.At(0, 1))
	}

	if _, err := dmatrix.Multiply(context.Background(), a, a); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestAddInto(t *testing.T) {
	a, _ := dmatrix.Zeros(1, 2)
	a.Set(0, 0, 1)
	b, _ := dmatrix.Zeros(1, 2)
	b.Set(0, 0, 4)
	b.Set(0, 1, 5)

	if err := dmatrix.AddInto(a, b); err != nil {
		t.Fatalf("AddInto: %v", err)
	}
	if a.At(0, 0) != 5 || a.At(0, 1) != 5 {
		t.Fatalf("AddInto wrong result: %v %v", a.At(0, 0), a.At(0, 1))
	}

	c, _ := dmatrix.Zeros(2, 2)
	if err := dmatrix.AddInto(a, c); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestFree(t *testing.T) {
	m, _ := dmatrix.Zeros(2, 2)
	dmatrix.Free(m)
	if m.Rows != 0 || m.Cols != 0 {
		t.Fatalf("Free did not zero matrix: %+v", m)
	}
	dmatrix.Free(m) // idempotent
	dmatrix.Free(nil)
}

func TestMultiplyCancellation(t *testing.T) {
	a, _ := dmatrix.Zeros(8192, 1)
	b, _ := dmatrix.Zeros(1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := dmatrix.Multiply(ctx, a, b); err == nil {
		t.Fatal("expected cancellation error")
	}
}
