package gate

import (
	"testing"

	fcordination "github.com/msevi/FC-ordination"
	"github.com/msevi/FC-ordination/fctable"
)

func unitSquare() Polygon {
	return Polygon{
		X: []float64{0, 1, 1, 0},
		Y: []float64{0, 0, 1, 1},
	}
}

func TestPolygonContains(t *testing.T) {
	square := unitSquare()

	for _, v := range []struct {
		x, y float64
		want bool
	}{
		{0.5, 0.5, true},
		{0.99, 0.01, true},
		{1.5, 0.5, false},
		{-0.1, 0.5, false},
		{0.5, 2, false},

		// Boundary points are inside (inclusive policy).
		{0, 0, true},
		{1, 1, true},
		{0.5, 0, true},
		{1, 0.5, true},
	} {
		if got := square.Contains(v.x, v.y); got != v.want {
			t.Fatalf("Contains(%f, %f) = %v, want %v", v.x, v.y, got, v.want)
		}
	}
}

func TestPolygonContainsConcave(t *testing.T) {
	// A "U" shape: the notch between the arms is outside.
	u := Polygon{
		X: []float64{0, 3, 3, 2, 2, 1, 1, 0},
		Y: []float64{0, 0, 3, 3, 1, 1, 3, 3},
	}

	for _, v := range []struct {
		x, y float64
		want bool
	}{
		{0.5, 2, true},
		{2.5, 2, true},
		{1.5, 2, false},
		{1.5, 0.5, true},
	} {
		if got := u.Contains(v.x, v.y); got != v.want {
			t.Fatalf("Contains(%f, %f) = %v, want %v", v.x, v.y, got, v.want)
		}
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	table := &fctable.EventTable{
		Key:      fcordination.SampleKey{Location: "br2", Stain: "sg", Timepoint: 1, Replicate: 1},
		Channels: []string{"FL1-H", "FL3-H"},
		Values: [][]float64{
			{0.5, 0.5},
			{2, 2},
			{0.1, 0.9},
			{1, 0.5}, // on the boundary: kept
		},
	}

	square := unitSquare()

	first, firstMask, err := square.Apply(table, "FL1-H", "FL3-H")
	if err != nil {
		t.Fatal(err)
	}

	if got := first.NumEvents(); got != 3 {
		t.Fatalf("Gated events = %d, want 3", got)
	}

	for run := 0; run < 10; run++ {
		again, mask, err := square.Apply(table, "FL1-H", "FL3-H")
		if err != nil {
			t.Fatal(err)
		}

		if again.NumEvents() != first.NumEvents() {
			t.Fatal("Gate output changed between runs on identical input")
		}

		for i := range mask {
			if mask[i] != firstMask[i] {
				t.Fatalf("Mask changed at event %d between runs", i)
			}
		}
	}
}

func TestApplyEmptyGate(t *testing.T) {
	table := &fctable.EventTable{
		Channels: []string{"FL1-H", "FL3-H"},
		Values:   [][]float64{{5, 5}},
	}

	if _, _, err := unitSquare().Apply(table, "FL1-H", "FL3-H"); err == nil {
		t.Fatal("Expected an error when no events pass the gate")
	}
}

func TestParsePolygon(t *testing.T) {
	p, err := ParsePolygon("0,0; 1,0; 1,1; 0,1")
	if err != nil {
		t.Fatal(err)
	}

	if len(p.X) != 4 {
		t.Fatalf("Got %d vertices, want 4", len(p.X))
	}

	for _, bad := range []string{"", "0,0;1,1", "0;1;2", "a,b;c,d;e,f"} {
		if _, err := ParsePolygon(bad); err == nil {
			t.Fatalf("ParsePolygon(%q): expected an error", bad)
		}
	}
}
