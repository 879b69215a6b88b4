package mc

import (
	"gonum.org/v1/gonum/stat"

	"github.com/AlesInsomnes/Elementary-MC-model/mc/record"
)

// Collector samples geometric and energetic observables into an append-only
// record series. It never mutates simulation state.
//
// Cluster length is the largest per-axis extent; the aspect ratio divides
// it by the mean of the other two extents, so elongation reads the same
// whichever axis the fiber grows along.
type Collector struct {
	cfg    *Config
	rates  *RateModel
	series *record.Series

	// Mean-length history at sample cadence, for the convergence check.
	meanLengths []float64
}

// NewCollector creates a collector for one run.
func NewCollector(cfg *Config, rates *RateModel, runID string) *Collector {
	return &Collector{
		cfg:   cfg,
		rates: rates,
		series: &record.Series{
			RunID: runID,
			Seed:  cfg.Seed,
		},
	}
}

// Series returns the record sequence collected so far.
func (col *Collector) Series() *record.Series { return col.series }

// Sample appends one checkpoint over the live clusters.
func (col *Collector) Sample(step int64, clusters []*Cluster, reservoir int64, s float64) {
	sample := record.Sample{
		Step:            step,
		LiveClusters:    len(clusters),
		ReservoirAtoms:  reservoir,
		Supersaturation: s,
		Clusters:        make([]record.ClusterSample, 0, len(clusters)),
	}

	var lengthSum float64
	for _, c := range clusters {
		ex, ey, ez := c.Extents()
		fx, fy, fz := c.SurfaceFaces()
		sample.Clusters = append(sample.Clusters, record.ClusterSample{
			ClusterID:   c.ID,
			Atoms:       c.Atoms(),
			ExtentX:     ex,
			ExtentY:     ey,
			ExtentZ:     ez,
			FacesX:      fx,
			FacesY:      fy,
			FacesZ:      fz,
			EnergyDelta: c.EnergyDelta(),
		})
		sample.SurfaceArea += fx + fy + fz
		sample.SurfaceEnergy += float64(fx)*col.rates.EX2/2 +
			float64(fy)*col.rates.EY2/2 + float64(fz)*col.rates.EZ2/2
		lengthSum += float64(clusterLength(ex, ey, ez))
	}

	col.series.Samples = append(col.series.Samples, sample)
	if len(clusters) > 0 {
		col.meanLengths = append(col.meanLengths, lengthSum/float64(len(clusters)))
	}
}

// RecordDissolution appends a terminal lifecycle record for a cluster body
// or a disconnected fragment.
func (col *Collector) RecordDissolution(clusterID int, step int64, atomsReturned int64, fragment bool) {
	col.series.Dissolutions = append(col.series.Dissolutions, record.Dissolution{
		ClusterID:     clusterID,
		Step:          step,
		AtomsReturned: atomsReturned,
		Fragment:      fragment,
	})
}

// Finish stamps the terminal state onto the series.
func (col *Collector) Finish(step int64, reason record.StopReason) {
	col.series.FinalStep = step
	col.series.StopReason = reason
}

// Converged reports whether the mean length changed by at most the
// configured tolerance across the configured window of samples.
func (col *Collector) Converged() bool {
	w := col.cfg.ConvergeWindow
	if w <= 0 || len(col.meanLengths) < w {
		return false
	}
	first := col.meanLengths[len(col.meanLengths)-w]
	last := col.meanLengths[len(col.meanLengths)-1]
	diff := last - first
	if diff < 0 {
		diff = -diff
	}
	return diff <= col.cfg.ConvergeTol
}

// Summary condenses the run's final state for cross-realization
// aggregation.
func (col *Collector) Summary(clusters []*Cluster, reservoir int64) record.Summary {
	sum := record.Summary{
		RunID:        col.series.RunID,
		Seed:         col.series.Seed,
		FinalStep:    col.series.FinalStep,
		StopReason:   col.series.StopReason,
		LiveClusters: len(clusters),
	}

	lengths := make([]float64, 0, len(clusters))
	aspects := make([]float64, 0, len(clusters))
	for _, c := range clusters {
		ex, ey, ez := c.Extents()
		fx, fy, fz := c.SurfaceFaces()
		sum.TotalAtoms += c.Atoms()
		sum.SurfaceArea += fx + fy + fz
		sum.SurfaceEnergy += float64(fx)*col.rates.EX2/2 +
			float64(fy)*col.rates.EY2/2 + float64(fz)*col.rates.EZ2/2
		lengths = append(lengths, float64(clusterLength(ex, ey, ez)))
		aspects = append(aspects, aspectRatio(ex, ey, ez))
	}
	sum.ReservoirAtoms = reservoir
	if len(lengths) > 0 {
		sum.MeanLength = stat.Mean(lengths, nil)
		sum.MeanAspectRatio = stat.Mean(aspects, nil)
	}
	if len(lengths) > 1 {
		sum.StdevLength = stat.StdDev(lengths, nil)
	}
	return sum
}

// clusterLength is the largest per-axis extent (the fiber length).
func clusterLength(ex, ey, ez int) int {
	l := ex
	if ey > l {
		l = ey
	}
	if ez > l {
		l = ez
	}
	return l
}

// aspectRatio divides the fiber length by the mean lateral extent.
func aspectRatio(ex, ey, ez int) float64 {
	l := clusterLength(ex, ey, ez)
	lateral := float64(ex+ey+ez-l) / 2
	if lateral <= 0 {
		return 0
	}
	return float64(l) / lateral
}
