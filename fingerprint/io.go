package fingerprint

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
)

// WriteMatrix writes fingerprints as CSV: a Sample_ID column followed by one
// column per grid cell. Row order follows ids.
func WriteMatrix(w io.Writer, ids []string, rows [][]float64) error {
	if len(ids) != len(rows) {
		return fmt.Errorf("Got %d identifiers but %d fingerprints", len(ids), len(rows))
	}

	if len(rows) == 0 {
		return fmt.Errorf("No fingerprints to write")
	}

	cw := csv.NewWriter(w)

	header := make([]string, 1, 1+len(rows[0]))
	header[0] = "Sample_ID"
	for i := range rows[0] {
		header = append(header, "cell_"+strconv.Itoa(i))
	}

	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 1+len(rows[0]))
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return fmt.Errorf("Fingerprint %s has length %d, want %d", ids[i], len(row), len(rows[0]))
		}

		record[0] = ids[i]
		for j, v := range row {
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteMatrixFile is WriteMatrix straight to a file path.
func WriteMatrixFile(path string, ids []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return WriteMatrix(f, ids, rows)
}

// ReadMatrix reads a CSV written by WriteMatrix.
func ReadMatrix(r io.Reader) (ids []string, rows [][]float64, err error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("Could not read fingerprint header: %v", err)
	}

	if len(header) < 2 || header[0] != "Sample_ID" {
		return nil, nil, fmt.Errorf("Unexpected fingerprint header (starts %q, %d columns)", header[0], len(header))
	}

	width := len(header) - 1

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, fmt.Errorf("Line %d: %v", line, err)
		}

		row := make([]float64, width)
		for j := 0; j < width; j++ {
			row[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("Line %d, column %d: %v", line, j+2, err)
			}
		}

		ids = append(ids, record[0])
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("No fingerprints found")
	}

	return ids, rows, nil
}

// ReadMatrixFile is ReadMatrix from a file path.
func ReadMatrixFile(path string) (ids []string, rows [][]float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}
	defer f.Close()

	ids, rows, err = ReadMatrix(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %v", path, err)
	}

	return ids, rows, nil
}
