package gate

import (
	"math"
	"testing"

	"github.com/msevi/FC-ordination/fctable"
)

func twoChannelTable(values [][]float64) *fctable.EventTable {
	return &fctable.EventTable{
		Channels: []string{"FL1-H", "FL3-H"},
		Values:   values,
	}
}

func TestAsinh(t *testing.T) {
	table := twoChannelTable([][]float64{
		{0, 5},
		{50, 26214},
	})

	out, err := Asinh(table, 5)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		row, col int
		want     float64
	}{
		{0, 0, 0},
		{0, 1, math.Asinh(1)},
		{1, 0, math.Asinh(10)},
		{1, 1, math.Asinh(26214.0 / 5)},
	} {
		if got := out.Values[v.row][v.col]; math.Abs(got-v.want) > 1e-12 {
			t.Fatalf("Asinh value at (%d, %d) = %f, want %f", v.row, v.col, got, v.want)
		}
	}

	// The input is untouched.
	if table.Values[1][0] != 50 {
		t.Fatal("Asinh mutated its input")
	}

	if _, err := Asinh(table, 0); err == nil {
		t.Fatal("Expected an error for a non-positive cofactor")
	}
}

func TestRescale(t *testing.T) {
	table := twoChannelTable([][]float64{
		{1, 8},
		{4, 2},
	})

	out, err := Rescale(table, "FL1-H")
	if err != nil {
		t.Fatal(err)
	}

	// Everything is divided by max(FL1-H) = 4.
	for _, v := range []struct {
		row, col int
		want     float64
	}{
		{0, 0, 0.25},
		{0, 1, 2},
		{1, 0, 1},
		{1, 1, 0.5},
	} {
		if got := out.Values[v.row][v.col]; math.Abs(got-v.want) > 1e-12 {
			t.Fatalf("Rescaled value at (%d, %d) = %f, want %f", v.row, v.col, got, v.want)
		}
	}

	if table.Values[1][0] != 4 {
		t.Fatal("Rescale mutated its input")
	}
}

func TestRescaleNonPositiveMax(t *testing.T) {
	table := twoChannelTable([][]float64{
		{-1, 8},
		{0, 2},
	})

	if _, err := Rescale(table, "FL1-H"); err == nil {
		t.Fatal("Expected an error when the reference channel max is not positive")
	}
}

func TestChannelCounts(t *testing.T) {
	table := twoChannelTable([][]float64{
		{0, 0}, {0.1, 0}, {0.9, 0}, {1, 0},
	})

	counts, low, width, err := ChannelCounts(table, "FL1-H", 2)
	if err != nil {
		t.Fatal(err)
	}

	if low != 0 || math.Abs(width-0.5) > 1e-12 {
		t.Fatalf("low = %f, width = %f", low, width)
	}

	if counts[0] != 2 || counts[1] != 2 {
		t.Fatalf("counts = %v, want [2 2]", counts)
	}
}
