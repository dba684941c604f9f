// envpca runs principal component analysis on the environmental covariate
// table: rows with missing values are dropped, the remaining columns are
// standardized, and the correlation matrix is eigendecomposed. It writes
// per-sample scores, an eigenvalue table with Kaiser-Guttman retention flags,
// a loading table, and a scatterplot of the first two components.
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
	"github.com/msevi/FC-ordination/ordination"
	"github.com/msevi/FC-ordination/plot"
	"gonum.org/v1/gonum/mat"
)

func main() {
	var envPath, groupBy, scoresPath, eigenPath, loadingsPath, plotPath string

	flag.StringVar(&envPath, "env", "", "Environmental covariate CSV")
	flag.StringVar(&groupBy, "group", "location", "Metadata grouping for the plot: location, stain, timepoint, or replicate")
	flag.StringVar(&scoresPath, "scores", "pca_scores.csv", "Output per-sample score CSV")
	flag.StringVar(&eigenPath, "eigen", "pca_eigenvalues.csv", "Output eigenvalue CSV")
	flag.StringVar(&loadingsPath, "loadings", "pca_loadings.csv", "Output variable loading CSV")
	flag.StringVar(&plotPath, "plot", "pca.png", "Output scatterplot PNG")
	flag.Parse()

	if envPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Println(buildinfo.Get())

	if err := run(envPath, groupBy, scoresPath, eigenPath, loadingsPath, plotPath); err != nil {
		log.Fatalln(err)
	}
}

func run(envPath, groupBy, scoresPath, eigenPath, loadingsPath, plotPath string) error {
	records, err := fctable.LoadEnvTable(fcordination.ExpandHome(envPath))
	if err != nil {
		return err
	}

	ids, data, dropped := fctable.EnvMatrix(records)
	if dropped > 0 {
		log.Println("Dropped", dropped, "of", len(records), "rows with missing covariates")
	}

	if len(ids) < 3 {
		return fmt.Errorf("Only %d complete covariate rows; not enough to ordinate", len(ids))
	}

	raw := mat.NewDense(len(ids), len(fctable.CovariateNames), nil)
	for i, row := range data {
		raw.SetRow(i, row)
	}

	standardized, err := ordination.Standardize(raw)
	if err != nil {
		return err
	}

	res, err := ordination.PCA(standardized)
	if err != nil {
		return err
	}

	kept := 0
	for _, retained := range res.Retained {
		if retained {
			kept++
		}
	}
	log.Println("Kaiser-Guttman retains", kept, "of", len(res.Eigenvalues), "axes; first two explain",
		fmt.Sprintf("%.1f%% and %.1f%%", 100*res.ExplainedVar[0], 100*res.ExplainedVar[1]))

	if err := writeScores(scoresPath, ids, res); err != nil {
		return err
	}
	log.Println("Wrote", scoresPath)

	if err := writeEigenvalues(eigenPath, res); err != nil {
		return err
	}
	log.Println("Wrote", eigenPath)

	if err := writeLoadings(loadingsPath, res); err != nil {
		return err
	}
	log.Println("Wrote", loadingsPath)

	points, err := scorePoints(ids, res, groupBy)
	if err != nil {
		return err
	}

	xLabel := fmt.Sprintf("PC1 (%.1f%%)", 100*res.ExplainedVar[0])
	yLabel := fmt.Sprintf("PC2 (%.1f%%)", 100*res.ExplainedVar[1])

	if err := plot.ScatterFile("PCA of environmental covariates", xLabel, yLabel, points, plotPath); err != nil {
		return err
	}
	log.Println("Wrote", plotPath)

	return nil
}

type scoreRow struct {
	SampleID  string  `csv:"Sample_ID"`
	Location  string  `csv:"Location"`
	Stain     string  `csv:"Stain"`
	Timepoint int     `csv:"Timepoint"`
	Replicate int     `csv:"Replicate"`
	PC1       float64 `csv:"PC1"`
	PC2       float64 `csv:"PC2"`
}

func writeScores(path string, ids []string, res *ordination.PCAResult) error {
	rows := make([]*scoreRow, 0, len(ids))

	for i, id := range ids {
		key, err := fcordination.ParseSampleKey(id)
		if err != nil {
			return err
		}

		rows = append(rows, &scoreRow{
			SampleID:  id,
			Location:  key.Location,
			Stain:     key.Stain,
			Timepoint: key.Timepoint,
			Replicate: key.Replicate,
			PC1:       res.Scores.At(i, 0),
			PC2:       res.Scores.At(i, 1),
		})
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
	Retained     bool    `csv:"Kaiser_Guttman_Retained"`
}

func writeEigenvalues(path string, res *ordination.PCAResult) error {
	rows := make([]*eigenRow, 0, len(res.Eigenvalues))
	for i, v := range res.Eigenvalues {
		rows = append(rows, &eigenRow{
			Axis:         i + 1,
			Eigenvalue:   v,
			ExplainedVar: res.ExplainedVar[i],
			Retained:     res.Retained[i],
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

type loadingRow struct {
	Covariate string  `csv:"Covariate"`
	PC1       float64 `csv:"PC1"`
	PC2       float64 `csv:"PC2"`
}

func writeLoadings(path string, res *ordination.PCAResult) error {
	rows := make([]*loadingRow, 0, len(fctable.CovariateNames))
	for i, name := range fctable.CovariateNames {
		rows = append(rows, &loadingRow{
			Covariate: name,
			PC1:       res.Loadings.At(i, 0),
			PC2:       res.Loadings.At(i, 1),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

func scorePoints(ids []string, res *ordination.PCAResult, groupBy string) ([]plot.Point, error) {
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

		points = append(points, plot.Point{
			ID:    id,
			Group: group,
			X:     res.Scores.At(i, 0),
			Y:     res.Scores.At(i, 1),
		})
	}

	return points, nil
}
