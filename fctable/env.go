package fctable

import (
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// EnvRecord is one sample's water-chemistry covariates. Cells may be empty in
// the source table, so every covariate is nullable; rows missing any selected
// covariate are dropped before standardization rather than imputed.
type EnvRecord struct {
	SampleID        string     `csv:"Sample_ID"`
	Temperature     null.Float `csv:"Temp"`
	PH              null.Float `csv:"pH"`
	Conductivity    null.Float `csv:"Cond"`
	DissolvedOxygen null.Float `csv:"DO"`
	Nitrate         null.Float `csv:"NO3"`
	Ammonium        null.Float `csv:"NH4"`
	Phosphate       null.Float `csv:"PO4"`
	DOC             null.Float `csv:"DOC"`
}

// CovariateNames is the fixed covariate order used everywhere a row of an
// EnvRecord becomes a numeric vector.
var CovariateNames = []string{"Temp", "pH", "Cond", "DO", "NO3", "NH4", "PO4", "DOC"}

func (r *EnvRecord) covariates() []null.Float {
	return []null.Float{
		r.Temperature,
		r.PH,
		r.Conductivity,
		r.DissolvedOxygen,
		r.Nitrate,
		r.Ammonium,
		r.Phosphate,
		r.DOC,
	}
}

// Complete reports whether every covariate is present.
func (r *EnvRecord) Complete() bool {
	for _, v := range r.covariates() {
		if !v.Valid {
			return false
		}
	}

	return true
}

// Vector returns the covariates in CovariateNames order. Call only on
// Complete records.
func (r *EnvRecord) Vector() []float64 {
	vals := r.covariates()

	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v.Float64
	}

	return out
}

// LoadEnvTable reads the environmental covariate CSV and applies the known
// data correction.
func LoadEnvTable(path string) ([]*EnvRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var records []*EnvRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.SampleID]; dup {
			return nil, fmt.Errorf("%s: duplicate sample identifier %q", path, rec.SampleID)
		}
		seen[rec.SampleID] = struct{}{}

		correctKnownBadValue(rec)
	}

	return records, nil
}

// correctKnownBadValue fixes the one value in the source spreadsheet that was
// recorded with a misplaced decimal point: the conductivity for cw2_sg_t2_r1
// reads 4560 uS/cm where the field log shows 456.0. Every other reading at
// that site and timepoint is in the 400s.
func correctKnownBadValue(rec *EnvRecord) {
	if rec.SampleID == "cw2_sg_t2_r1" && rec.Conductivity.Valid && rec.Conductivity.Float64 == 4560 {
		rec.Conductivity = null.FloatFrom(456.0)
	}
}

// EnvMatrix converts complete records into a samples-by-covariates matrix,
// dropping (and counting) incomplete rows. Row order follows the input.
func EnvMatrix(records []*EnvRecord) (ids []string, data [][]float64, dropped int) {
	for _, rec := range records {
		if !rec.Complete() {
			dropped++
			continue
		}

		ids = append(ids, rec.SampleID)
		data = append(data, rec.Vector())
	}

	return ids, data, dropped
}
