package fcordination

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
)

// ListEventFiles returns the delimited event files under dir, sorted by name.
// Files whose names do not parse as a SampleKey are skipped and returned
// separately so callers can report them.
func ListEventFiles(dir string) (matched []string, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".tsv", ".txt":
		default:
			continue
		}

		full := filepath.Join(dir, entry.Name())

		if _, err := ParseSampleKey(full); err != nil {
			skipped = append(skipped, full)
			continue
		}

		matched = append(matched, full)
	}

	sort.Strings(matched)
	sort.Strings(skipped)

	return matched, skipped, nil
}
