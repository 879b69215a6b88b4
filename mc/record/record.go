// Package record provides the output record types emitted by a simulation
// run. This package has no dependencies on mc/ — it stores pure data types,
// so external analysis tooling can consume the record stream without
// importing the engine.
package record

// ClusterSample captures the geometry of one live cluster at a checkpoint.
type ClusterSample struct {
	ClusterID int   `json:"cluster_id"`
	Atoms     int64 `json:"atoms"`
	ExtentX   int   `json:"extent_x"`
	ExtentY   int   `json:"extent_y"`
	ExtentZ   int   `json:"extent_z"`
	// Exposed lattice faces per facet normal; their sum is the surface
	// area estimate for this cluster.
	FacesX int64 `json:"faces_x"`
	FacesY int64 `json:"faces_y"`
	FacesZ int64 `json:"faces_z"`
	// Running total of surface-energy change over accepted events.
	EnergyDelta float64 `json:"energy_delta"`
}

// Sample is one timestamped checkpoint of the whole system.
type Sample struct {
	Step            int64           `json:"step"`
	LiveClusters    int             `json:"live_clusters"`
	ReservoirAtoms  int64           `json:"reservoir_atoms"`
	Supersaturation float64         `json:"supersaturation"`
	SurfaceArea     int64           `json:"surface_area"`
	SurfaceEnergy   float64         `json:"surface_energy"`
	Clusters        []ClusterSample `json:"clusters"`
}

// Dissolution records a cluster reaching zero atoms (terminal state).
type Dissolution struct {
	ClusterID int   `json:"cluster_id"`
	Step      int64 `json:"step"`
	// Atoms returned to the reservoir when the whole cluster or one of
	// its disconnected fragments dissolved at this step.
	AtomsReturned int64 `json:"atoms_returned"`
	// Fragment is true when this entry records a disconnected fragment
	// rather than the cluster body itself.
	Fragment bool `json:"fragment"`
}

// StopReason names why a run terminated. All values are expected terminal
// conditions, not errors.
type StopReason string

const (
	StopBudget    StopReason = "step-budget"
	StopDissolved StopReason = "all-dissolved"
	StopConverged StopReason = "converged"
	StopStalled   StopReason = "frontier-stalled"
)

// Series is the ordered, append-only record sequence produced by one run.
type Series struct {
	RunID        string        `json:"run_id"`
	Seed         int64         `json:"seed"`
	Samples      []Sample      `json:"samples"`
	Dissolutions []Dissolution `json:"dissolutions"`
	StopReason   StopReason    `json:"stop_reason"`
	FinalStep    int64         `json:"final_step"`
}

// Summary condenses one run for cross-realization aggregation.
type Summary struct {
	RunID           string     `json:"run_id"`
	Seed            int64      `json:"seed"`
	FinalStep       int64      `json:"final_step"`
	StopReason      StopReason `json:"stop_reason"`
	LiveClusters    int        `json:"live_clusters"`
	TotalAtoms      int64      `json:"total_atoms"`
	ReservoirAtoms  int64      `json:"reservoir_atoms"`
	SurfaceArea     int64      `json:"surface_area"`
	SurfaceEnergy   float64    `json:"surface_energy"`
	MeanLength      float64    `json:"mean_length"`
	StdevLength     float64    `json:"stdev_length"`
	MeanAspectRatio float64    `json:"mean_aspect_ratio"`
}

// Aggregate summarizes a set of independent realizations.
type Aggregate struct {
	Realizations     int     `json:"realizations"`
	MeanLiveClusters float64 `json:"mean_live_clusters"`
	MeanLength       float64 `json:"mean_length"`
	StdevLength      float64 `json:"stdev_length"`
	MeanAspectRatio  float64 `json:"mean_aspect_ratio"`
	MeanSurfaceArea  float64 `json:"mean_surface_area"`
}
