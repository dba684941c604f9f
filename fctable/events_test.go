package fctable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEventFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadEventTable(t *testing.T) {
	path := writeEventFile(t, "br2_sgpi_t1_r1.csv", strings.Join([]string{
		"FSC-H,SSC-H,FL1-H,FL3-H",
		"100,200,5,1",
		"110,210,6,2",
		"120,220,7,3",
	}, "\n"))

	table, err := LoadEventTable(path, []string{"FL1-H", "FL3-H"})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := table.Key.String(), "br2_sgpi_t1_r1"; got != want {
		t.Fatalf("Key = %q, want %q", got, want)
	}

	if got := table.NumEvents(); got != 3 {
		t.Fatalf("NumEvents = %d, want 3", got)
	}

	fl1, err := table.Column("FL1-H")
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []float64{5, 6, 7} {
		if fl1[i] != want {
			t.Fatalf("FL1-H[%d] = %f, want %f", i, fl1[i], want)
		}
	}
}

func TestLoadEventTableTabDelimited(t *testing.T) {
	path := writeEventFile(t, "br2_sgpi_t1_r1.tsv", strings.Join([]string{
		"FSC-H\tFL1-H",
		"100\t5",
		"110\t6",
	}, "\n"))

	table, err := LoadEventTable(path, []string{"FL1-H"})
	if err != nil {
		t.Fatal(err)
	}

	if got := table.NumEvents(); got != 2 {
		t.Fatalf("NumEvents = %d, want 2", got)
	}
}

func TestLoadEventTableErrors(t *testing.T) {
	for _, v := range []struct {
		name     string
		contents string
		channels []string
	}{
		{"missing channel", "FSC-H,SSC-H\n1,2\n", []string{"FL1-H"}},
		{"bad value", "FL1-H,FL3-H\n1,2\nx,4\n", []string{"FL1-H", "FL3-H"}},
		{"no events", "FL1-H,FL3-H\n", []string{"FL1-H", "FL3-H"}},
	} {
		path := writeEventFile(t, "br2_sgpi_t1_r1.csv", v.contents)

		if _, err := LoadEventTable(path, v.channels); err == nil {
			t.Fatalf("%s: expected an error", v.name)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	path := writeEventFile(t, "br2_sgpi_t1_r1.csv", "FL1-H\n1\n2\n")

	table, err := LoadEventTable(path, []string{"FL1-H"})
	if err != nil {
		t.Fatal(err)
	}

	clone := table.Clone()
	clone.Values[0][0] = 99

	if table.Values[0][0] != 1 {
		t.Fatal("Mutating a clone changed the source table")
	}
}
