package fctable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const envHeader = "Sample_ID,Temp,pH,Cond,DO,NO3,NH4,PO4,DOC"

func writeEnvFile(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "env.csv")
	contents := envHeader + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadEnvTable(t *testing.T) {
	path := writeEnvFile(t,
		"br2_sg_t1_r1,12.5,7.8,450,9.1,0.5,0.1,0.05,4.2",
		"br2_sg_t1_r2,12.6,7.9,455,9.0,0.4,0.1,0.06,4.1",
	)

	records, err := LoadEnvTable(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}

	if !records[0].Complete() {
		t.Fatal("First record should be complete")
	}

	vec := records[0].Vector()
	if len(vec) != len(CovariateNames) {
		t.Fatalf("Vector length %d, want %d", len(vec), len(CovariateNames))
	}

	if vec[0] != 12.5 || vec[7] != 4.2 {
		t.Fatalf("Vector = %v", vec)
	}
}

func TestLoadEnvTableDuplicateID(t *testing.T) {
	path := writeEnvFile(t,
		"br2_sg_t1_r1,12.5,7.8,450,9.1,0.5,0.1,0.05,4.2",
		"br2_sg_t1_r1,12.6,7.9,455,9.0,0.4,0.1,0.06,4.1",
	)

	if _, err := LoadEnvTable(path); err == nil {
		t.Fatal("Expected a duplicate identifier error")
	}
}

func TestKnownBadConductivityIsCorrected(t *testing.T) {
	path := writeEnvFile(t,
		"cw2_sg_t2_r1,12.5,7.8,4560,9.1,0.5,0.1,0.05,4.2",
		"cw2_sg_t2_r2,12.5,7.8,4560,9.1,0.5,0.1,0.05,4.2",
	)

	records, err := LoadEnvTable(path)
	if err != nil {
		t.Fatal(err)
	}

	// Only the one known-bad cell is rewritten; the same value elsewhere is
	// left alone.
	if got := records[0].Conductivity.Float64; got != 456.0 {
		t.Fatalf("Corrected conductivity = %f, want 456.0", got)
	}

	if got := records[1].Conductivity.Float64; got != 4560 {
		t.Fatalf("Unrelated conductivity = %f, want 4560", got)
	}
}

func TestEnvMatrixDropsIncompleteRows(t *testing.T) {
	path := writeEnvFile(t,
		"br2_sg_t1_r1,12.5,7.8,450,9.1,0.5,0.1,0.05,4.2",
		"br2_sg_t1_r2,12.6,,455,9.0,0.4,0.1,0.06,4.1",
		"br2_sg_t1_r3,12.7,7.7,452,9.2,0.5,0.2,0.05,4.3",
	)

	records, err := LoadEnvTable(path)
	if err != nil {
		t.Fatal(err)
	}

	ids, data, dropped := EnvMatrix(records)

	if dropped != 1 {
		t.Fatalf("Dropped = %d, want 1", dropped)
	}

	if len(ids) != 2 || len(data) != 2 {
		t.Fatalf("Kept %d ids and %d rows, want 2 and 2", len(ids), len(data))
	}

	if ids[0] != "br2_sg_t1_r1" || ids[1] != "br2_sg_t1_r3" {
		t.Fatalf("Kept ids = %v", ids)
	}
}
