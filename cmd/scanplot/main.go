// Command scanplot renders a recorded scan as a top-down Cartesian plot:
// each ray's range reading is projected through its azimuth into XY, with
// out-of-range rays omitted.
package main

import (
	"flag"
	"log"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/scanstore"
)

var (
	dbFile  = flag.String("db", "scans.db", "Scan database to read")
	scanID  = flag.Int64("scan", 0, "Scan row ID to plot (default: latest)")
	sensor  = flag.String("sensor", "gpu_rays_demo", "Sensor ID used when no scan ID is given")
	outFile = flag.String("out", "scan.png", "Output image path")
)

func main() {
	flag.Parse()

	store, err := scanstore.Open(*dbFile)
	if err != nil {
		log.Fatalf("opening scan database: %v", err)
	}
	defer store.Close()

	rec, err := loadRecord(store)
	if err != nil {
		log.Fatalf("loading scan: %v", err)
	}

	pts := make(plotter.XYs, 0, rec.Width)
	for i := 0; i < rec.Width; i++ {
		sample := rec.Samples[i*rec.Channels]
		if geom.IsNoReturn(sample) {
			continue
		}
		r := float64(sample)
		az := rayAzimuth(rec, i)
		pts = append(pts, plotter.XY{X: r * math.Cos(az), Y: r * math.Sin(az)})
	}

	p := plot.New()
	p.Title.Text = "scan"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	scatterPlot, err := plotter.NewScatter(pts)
	if err != nil {
		log.Fatalf("building scatter: %v", err)
	}
	scatterPlot.Radius = vg.Points(1)
	p.Add(scatterPlot, plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 6*vg.Inch, *outFile); err != nil {
		log.Fatalf("saving plot: %v", err)
	}
	log.Printf("plotted %d returns from scan %d to %s", len(pts), rec.ID, *outFile)
}

func loadRecord(store *scanstore.Store) (*scanstore.ScanRecord, error) {
	if *scanID != 0 {
		return store.Scan(*scanID)
	}
	recs, err := store.Scans(*sensor)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		log.Fatalf("no scans recorded for sensor %q", *sensor)
	}
	return recs[len(recs)-1], nil
}

func rayAzimuth(rec *scanstore.ScanRecord, i int) float64 {
	if rec.Width <= 1 {
		return (rec.AngleMin + rec.AngleMax) / 2
	}
	return rec.AngleMin + float64(i)*(rec.AngleMax-rec.AngleMin)/float64(rec.Width-1)
}
