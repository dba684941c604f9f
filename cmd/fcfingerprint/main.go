// fcfingerprint turns a directory of per-sample cytometry event exports into
// a table of phenotypic fingerprints: each event table is arcsinh
// transformed, gated with a fixed polygon in a two-channel plane, rescaled,
// and summarized as binned kernel densities on a grid shared by all samples.
// It also writes a Hill-number diversity table and prints a terminal
// histogram of per-sample gate retention as a quick quality check.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	fcordination "github.com/msevi/FC-ordination"
	"github.com/msevi/FC-ordination/buildinfo"
	"github.com/msevi/FC-ordination/fctable"
	"github.com/msevi/FC-ordination/fingerprint"
	"github.com/msevi/FC-ordination/gate"
)

// defaultGate outlines the stained-cell region in the asinh(FL1)/asinh(FL3)
// plane. It matches the denoising gate used in the reference campaign;
// override it for other instruments.
const defaultGate = "2,0.5;2,6;9,12;12,12;12,2;6,0.5"

func main() {
	var eventsDir, channelList, gateX, gateY, gateVertices, rescaleChannel string
	var outPath, diversityPath, normalize string
	var cofactor, bandwidth float64
	var bins int

	flag.StringVar(&eventsDir, "events", "", "Directory of per-sample delimited event exports, named location_stain_tN_rN.csv")
	flag.StringVar(&channelList, "channels", "FL1-H,FL3-H,FSC-H,SSC-H", "Comma-delimited channel subset to fingerprint")
	flag.StringVar(&gateX, "gate_x", "FL1-H", "Channel on the gate's x axis")
	flag.StringVar(&gateY, "gate_y", "FL3-H", "Channel on the gate's y axis")
	flag.StringVar(&gateVertices, "gate", defaultGate, "Gate polygon vertices as x1,y1;x2,y2;... in transformed units")
	flag.StringVar(&rescaleChannel, "rescale_channel", "FL1-H", "Channel whose per-sample max rescales all channels")
	flag.Float64Var(&cofactor, "cofactor", 5, "Arcsinh cofactor")
	flag.IntVar(&bins, "bins", 128, "Grid bins per axis")
	flag.Float64Var(&bandwidth, "bandwidth", 0.01, "Kernel bandwidth in rescaled units")
	flag.StringVar(&normalize, "normalize", "identity", "Fingerprint normalization: identity or relative")
	flag.StringVar(&outPath, "out", "fingerprints.csv", "Output fingerprint CSV")
	flag.StringVar(&diversityPath, "diversity", "diversity.csv", "Output Hill-number diversity CSV")
	flag.Parse()

	if eventsDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Println(buildinfo.Get())

	if err := run(eventsDir, channelList, gateX, gateY, gateVertices, rescaleChannel, normalize, outPath, diversityPath, cofactor, bandwidth, bins); err != nil {
		log.Fatalln(err)
	}
}

func run(eventsDir, channelList, gateX, gateY, gateVertices, rescaleChannel, normalize, outPath, diversityPath string, cofactor, bandwidth float64, bins int) error {
	channels := strings.Split(channelList, ",")

	var normFunc fingerprint.NormalizeFunc
	switch normalize {
	case "identity":
		normFunc = fingerprint.Identity
	case "relative":
		normFunc = fingerprint.Relative
	default:
		return fmt.Errorf("Unknown normalization %q (want identity or relative)", normalize)
	}

	poly, err := gate.ParsePolygon(gateVertices)
	if err != nil {
		return err
	}

	basis := fingerprint.DefaultBasis(channels)
	basis.Bins = bins
	basis.Bandwidth = bandwidth

	files, skipped, err := fcordination.ListEventFiles(fcordination.ExpandHome(eventsDir))
	if err != nil {
		return err
	}

	for _, path := range skipped {
		log.Println("Skipping", path, "(name does not parse as a sample key)")
	}

	if len(files) == 0 {
		return fmt.Errorf("No event files found under %s", eventsDir)
	}

	log.Println("Fingerprinting", len(files), "samples across", len(basis.Pairs()), "channel pairs (", basis.Len(), "cells )")

	ids := make([]string, 0, len(files))
	prints := make([][]float64, 0, len(files))
	diversities := make([]*diversityRow, 0, len(files))
	retained := make([]float64, 0, len(files))

	for i, path := range files {
		raw, err := fctable.LoadEventTable(path, channels)
		if err != nil {
			return err
		}

		transformed, err := gate.Asinh(raw, cofactor)
		if err != nil {
			return err
		}

		gated, _, err := poly.Apply(transformed, gateX, gateY)
		if err != nil {
			return err
		}

		rescaled, err := gate.Rescale(gated, rescaleChannel)
		if err != nil {
			return err
		}

		fp, err := basis.Fingerprint(rescaled)
		if err != nil {
			return err
		}
		fp = normFunc(fp)

		div, err := fingerprint.HillNumbers(fp)
		if err != nil {
			return fmt.Errorf("Sample %s: %v", raw.Key, err)
		}

		ids = append(ids, raw.Key.String())
		prints = append(prints, fp)
		diversities = append(diversities, &diversityRow{
			SampleID: raw.Key.String(),
			Events:   raw.NumEvents(),
			Gated:    gated.NumEvents(),
			D0:       div.D0,
			D1:       div.D1,
			D2:       div.D2,
		})
		retained = append(retained, gate.RetainedFraction(raw, gated))

		if (i+1)%25 == 0 {
			log.Println("Processed", i+1, "of", len(files), "samples")
		}
	}

	if err := fingerprint.WriteMatrixFile(outPath, ids, prints); err != nil {
		return err
	}
	log.Println("Wrote", outPath)

	if err := writeDiversity(diversityPath, diversities); err != nil {
		return err
	}
	log.Println("Wrote", diversityPath)

	log.Println("Fraction of events retained by the gate, per sample:")
	hist := histogram.Hist(10, retained)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		return err
	}

	return nil
}
