// Package fctable ingests per-sample cytometry event tables and the
// environmental covariate table, and joins the two on sample identifiers.
package fctable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	fcordination "github.com/msevi/FC-ordination"
)

// EventTable holds one sample's cytometry events: one row per event, one
// column per channel. Raw tables are never mutated after load; each
// preprocessing step returns a derived copy.
type EventTable struct {
	Key      fcordination.SampleKey
	Channels []string
	Values   [][]float64
}

func (t *EventTable) NumEvents() int {
	return len(t.Values)
}

// ChannelIndex returns the column offset for a named channel.
func (t *EventTable) ChannelIndex(channel string) (int, error) {
	for i, name := range t.Channels {
		if name == channel {
			return i, nil
		}
	}

	return 0, fmt.Errorf("Sample %s has no channel named %q (channels: %v)", t.Key, channel, t.Channels)
}

// Column returns a copy of one channel's values across all events.
func (t *EventTable) Column(channel string) ([]float64, error) {
	col, err := t.ChannelIndex(channel)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(t.Values))
	for i, row := range t.Values {
		out[i] = row[col]
	}

	return out, nil
}

// Clone returns a deep copy with the same key and channel set.
func (t *EventTable) Clone() *EventTable {
	out := &EventTable{
		Key:      t.Key,
		Channels: append([]string{}, t.Channels...),
		Values:   make([][]float64, len(t.Values)),
	}

	for i, row := range t.Values {
		out.Values[i] = append([]float64{}, row...)
	}

	return out
}

// LoadEventTable reads one sample's delimited event export, keeping only the
// named channels (in the given order). The delimiter is sniffed from the file
// contents. The sample key comes from the file name.
func LoadEventTable(path string, channels []string) (*EventTable, error) {
	key, err := fcordination.ParseSampleKey(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := fcordination.DetermineDelimiter(bytes.NewReader(raw))

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: could not read header: %v", path, err)
	}

	// Map each requested channel to its column in this file.
	colFor := make([]int, len(channels))
	for i, want := range channels {
		colFor[i] = -1
		for j, name := range header {
			if name == want {
				colFor[i] = j
				break
			}
		}
		if colFor[i] < 0 {
			return nil, fmt.Errorf("%s: channel %q not found in header %v", path, want, header)
		}
	}

	out := &EventTable{
		Key:      key,
		Channels: append([]string{}, channels...),
	}

	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%s: line %d: %v", path, line, err)
		}

		row := make([]float64, len(channels))
		for i, col := range colFor {
			if col >= len(record) {
				return nil, fmt.Errorf("%s: line %d has %d fields, need at least %d", path, line, len(record), col+1)
			}

			row[i], err = strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d, channel %s: %v", path, line, channels[i], err)
			}
		}

		out.Values = append(out.Values, row)
	}

	if out.NumEvents() == 0 {
		return nil, fmt.Errorf("%s: no events", path)
	}

	return out, nil
}
