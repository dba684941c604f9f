// fcpcoa ordinates phenotypic fingerprints: it builds the pairwise
// Bray-Curtis dissimilarity matrix and runs principal coordinates analysis,
// writing per-sample coordinates, the eigenvalue table, and a scatterplot of
// the first two axes colored by a metadata grouping.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	fcordination "github.com/msevi/FC-ordination"
	"github.com/msevi/FC-ordination/buildinfo"
	"github.com/msevi/FC-ordination/fctable"
	"github.com/msevi/FC-ordination/fingerprint"
	"github.com/msevi/FC-ordination/ordination"
	"github.com/msevi/FC-ordination/plot"
)

func main() {
	var fingerprintPath, envPath, groupBy, coordsPath, eigenPath, plotPath string

	flag.StringVar(&fingerprintPath, "fingerprints", "", "Fingerprint CSV written by fcfingerprint")
	flag.StringVar(&envPath, "env", "", "Optional environmental covariate CSV; when set, only samples present in both tables are ordinated")
	flag.StringVar(&groupBy, "group", "location", "Metadata grouping for the plot: location, stain, timepoint, or replicate")
	flag.StringVar(&coordsPath, "coords", "pcoa_coordinates.csv", "Output coordinate CSV")
	flag.StringVar(&eigenPath, "eigen", "pcoa_eigenvalues.csv", "Output eigenvalue CSV")
	flag.StringVar(&plotPath, "plot", "pcoa.png", "Output scatterplot PNG")
	flag.Parse()

	if fingerprintPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Println(buildinfo.Get())

	if err := run(fingerprintPath, envPath, groupBy, coordsPath, eigenPath, plotPath); err != nil {
		log.Fatalln(err)
	}
}

func run(fingerprintPath, envPath, groupBy, coordsPath, eigenPath, plotPath string) error {
	ids, prints, err := fingerprint.ReadMatrixFile(fcordination.ExpandHome(fingerprintPath))
	if err != nil {
		return err
	}
	log.Println("Read", len(ids), "fingerprints of length", len(prints[0]))

	if envPath != "" {
		ids, prints, err = restrictToEnv(envPath, ids, prints)
		if err != nil {
			return err
		}
	}

	dist, err := ordination.BrayCurtis(prints)
	if err != nil {
		return err
	}

	res, err := ordination.PCoA(dist)
	if err != nil {
		return err
	}

	if res.NegativeAxes > 0 {
		log.Println("Dropped", res.NegativeAxes, "negative eigenvalues (most negative:", res.MostNegative, ")")
	}
	log.Println("Retained", len(res.Eigenvalues), "axes; first two explain",
		fmt.Sprintf("%.1f%% and %.1f%%", 100*res.ExplainedVar[0], 100*varAt(res.ExplainedVar, 1)))

	if err := writeCoordinates(coordsPath, ids, res); err != nil {
		return err
	}
	log.Println("Wrote", coordsPath)

	if err := writeEigenvalues(eigenPath, res); err != nil {
		return err
	}
	log.Println("Wrote", eigenPath)

	points, err := ordinationPoints(ids, res, groupBy)
	if err != nil {
		return err
	}

	xLabel := fmt.Sprintf("PCoA 1 (%.1f%%)", 100*res.ExplainedVar[0])
	yLabel := fmt.Sprintf("PCoA 2 (%.1f%%)", 100*varAt(res.ExplainedVar, 1))

	if err := plot.ScatterFile("Bray-Curtis PCoA of phenotypic fingerprints", xLabel, yLabel, points, plotPath); err != nil {
		return err
	}
	log.Println("Wrote", plotPath)

	return nil
}

// restrictToEnv keeps only fingerprints whose sample identifier also appears
// in the covariate table. Mismatches on either side are logged and dropped.
func restrictToEnv(envPath string, ids []string, prints [][]float64) ([]string, [][]float64, error) {
	envRecords, err := fctable.LoadEnvTable(fcordination.ExpandHome(envPath))
	if err != nil {
		return nil, nil, err
	}

	envIDs := make([]string, 0, len(envRecords))
	for _, rec := range envRecords {
		envIDs = append(envIDs, rec.SampleID)
	}

	matched, printOnly, envOnly := fctable.MatchedIDs(ids, envIDs)

	if len(printOnly) > 0 {
		log.Println("Dropping", len(printOnly), "fingerprinted samples with no covariates:", printOnly)
	}
	if len(envOnly) > 0 {
		log.Println("Ignoring", len(envOnly), "covariate rows with no fingerprint:", envOnly)
	}

	if len(matched) < 2 {
		return nil, nil, fmt.Errorf("Only %d samples appear in both tables", len(matched))
	}

	keep := make(map[string]struct{}, len(matched))
	for _, id := range matched {
		keep[id] = struct{}{}
	}

	outIDs := make([]string, 0, len(matched))
	outPrints := make([][]float64, 0, len(matched))
	for i, id := range ids {
		if _, ok := keep[id]; ok {
			outIDs = append(outIDs, id)
			outPrints = append(outPrints, prints[i])
		}
	}

	return outIDs, outPrints, nil
}

type coordinateRow struct {
	SampleID  string  `csv:"Sample_ID"`
	Location  string  `csv:"Location"`
	Stain     string  `csv:"Stain"`
	Timepoint int     `csv:"Timepoint"`
	Replicate int     `csv:"Replicate"`
	Axis1     float64 `csv:"Axis1"`
	Axis2     float64 `csv:"Axis2"`
}

func writeCoordinates(path string, ids []string, res *ordination.PCoAResult) error {
	rows := make([]*coordinateRow, 0, len(ids))

	for i, id := range ids {
		key, err := fcordination.ParseSampleKey(id)
		if err != nil {
			return err
		}

		row := &coordinateRow{
			SampleID:  id,
			Location:  key.Location,
			Stain:     key.Stain,
			Timepoint: key.Timepoint,
			Replicate: key.Replicate,
			Axis1:     res.Coordinates.At(i, 0),
		}

		if _, axes := res.Coordinates.Dims(); axes > 1 {
			row.Axis2 = res.Coordinates.At(i, 1)
		}

		rows = append(rows, row)
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

type eigenRow struct {
	Axis         int     `csv:"Axis"`
	Eigenvalue   float64 `csv:"Eigenvalue"`
	ExplainedVar float64 `csv:"Explained_Variance"`
}

func writeEigenvalues(path string, res *ordination.PCoAResult) error {
	rows := make([]*eigenRow, 0, len(res.Eigenvalues))
	for i, v := range res.Eigenvalues {
		rows = append(rows, &eigenRow{
			Axis:         i + 1,
			Eigenvalue:   v,
			ExplainedVar: res.ExplainedVar[i],
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

func ordinationPoints(ids []string, res *ordination.PCoAResult, groupBy string) ([]plot.Point, error) {
	points := make([]plot.Point, 0, len(ids))

	for i, id := range ids {
		key, err := fcordination.ParseSampleKey(id)
		if err != nil {
			return nil, err
		}

		group := ""
		switch groupBy {
		case "location":
			group = key.Location
		case "stain":
			group = key.Stain
		case "timepoint":
			group = "t" + strconv.Itoa(key.Timepoint)
		case "replicate":
			group = "r" + strconv.Itoa(key.Replicate)
		default:
			return nil, fmt.Errorf("Unknown grouping %q (want location, stain, timepoint, or replicate)", groupBy)
		}

		p := plot.Point{
			ID:    id,
			Group: group,
			X:     res.Coordinates.At(i, 0),
		}

		if _, axes := res.Coordinates.Dims(); axes > 1 {
			p.Y = res.Coordinates.At(i, 1)
		}

		points = append(points, p)
	}

	return points, nil
}

func varAt(vars []float64, i int) float64 {
	if i >= len(vars) {
		return 0
	}

	return vars[i]
}
