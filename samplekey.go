package fcordination

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SampleKey is the composite identifier for one cytometry sample. The same
// key links a sample's event table to its environmental covariates, so its
// canonical string form must be stable: location_stain_tN_rN, all lowercase
// prefixes on the numeric parts.
type SampleKey struct {
	Location  string
	Stain     string
	Timepoint int
	Replicate int
}

func (k SampleKey) String() string {
	return fmt.Sprintf("%s_%s_t%d_r%d", k.Location, k.Stain, k.Timepoint, k.Replicate)
}

// ParseSampleKey derives a SampleKey from an event file path. The file's base
// name (extension stripped) must have 4 underscore-delimited fields:
// location, stain, timepoint, and replicate. The numeric fields tolerate a
// leading t/T or r/R, so BR2_SGPI_T3_R2.csv and br2_sgpi_3_2.csv both parse.
func ParseSampleKey(path string) (SampleKey, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(base, "_")
	if len(parts) != 4 {
		return SampleKey{}, fmt.Errorf("Expected 4 underscore-delimited fields in sample name %q, got %d", base, len(parts))
	}

	key := SampleKey{
		Location: parts[0],
		Stain:    parts[1],
	}

	var err error

	key.Timepoint, err = parseIndexField(parts[2], "t")
	if err != nil {
		return SampleKey{}, fmt.Errorf("Sample name %q: bad timepoint: %v", base, err)
	}

	key.Replicate, err = parseIndexField(parts[3], "r")
	if err != nil {
		return SampleKey{}, fmt.Errorf("Sample name %q: bad replicate: %v", base, err)
	}

	return key, nil
}

func parseIndexField(field, prefix string) (int, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(field), prefix)

	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		return 0, fmt.Errorf("negative value %d", v)
	}

	return v, nil
}
