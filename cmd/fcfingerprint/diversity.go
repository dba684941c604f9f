package main

import (
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

type diversityRow struct {
	SampleID string  `csv:"Sample_ID"`
	Events   int     `csv:"Events"`
	Gated    int     `csv:"Gated_Events"`
	D0       float64 `csv:"D0"`
	D1       float64 `csv:"D1"`
	D2       float64 `csv:"D2"`
}

func writeDiversity(path string, rows []*diversityRow) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}
