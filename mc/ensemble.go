package mc

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AlesInsomnes/Elementary-MC-model/mc/record"
)

// Simulation owns one reproducible run: the shared lattice, the cluster
// population, the reservoir ledger, the kernel, and the statistics
// collector. Single-cluster runs are the degenerate case with one cluster
// and a fixed supersaturation; ensemble runs couple all clusters through
// the finite reservoir.
//
// A run is strictly sequential: every accepted event depends on the state
// left by the previous one. Independent realizations get independent
// Simulation values (see RunRealizations).
type Simulation struct {
	cfg   *Config
	lat   *Lattice
	rates *RateModel
	rng   *PartitionedRNG
	kern  *Kernel

	clusters []*Cluster // all, including dissolved
	live     []*Cluster

	reservoir  int64
	vaporSites int64
	baseline   int64 // conserved atom total for ensemble runs

	super  float64 // current supersaturation S
	deltaG float64

	collector *Collector
}

// NewSimulation validates the configuration and builds the initial state:
// lattice geometry, seeded clusters, reservoir, and driving force. Any
// configuration error fails here, before the first step.
func NewSimulation(cfg *Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lat := NewLattice(cfg.NX, cfg.NY, cfg.NZ, cfg.PeriodicX, cfg.PeriodicY, cfg.PeriodicZ)
	rates := NewRateModel(cfg)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	sim := &Simulation{
		cfg:        cfg,
		lat:        lat,
		rates:      rates,
		rng:        rng,
		kern:       NewKernel(cfg, rates, rng.ForSubsystem(SubsystemKernel)),
		vaporSites: cfg.EffectiveVaporSites(),
		collector:  NewCollector(cfg, rates, runID(cfg.Seed)),
	}

	for i := 0; i < cfg.Clusters; i++ {
		c := NewCluster(i, lat)
		if err := c.SeedBox(cfg.SeedDX, cfg.SeedDY, cfg.SeedDZ); err != nil {
			return nil, fmt.Errorf("cluster %d: %w", i, err)
		}
		sim.clusters = append(sim.clusters, c)
		sim.live = append(sim.live, c)
	}

	switch cfg.Mode {
	case ModeSingle:
		sim.super = cfg.Supersaturation
		sim.deltaG = DeltaG(cfg.KT, sim.super)
	case ModeEnsemble:
		sim.reservoir = cfg.ReservoirAtoms
		sim.baseline = sim.reservoir + sim.totalAtoms()
		if err := sim.updateDriving(); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

// runID derives a deterministic run identifier from the seed, so identical
// configurations replay byte-identical record sequences.
func runID(seed int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("emc-run-%d", seed))).String()
}

// Reservoir returns the current mobile-atom pool.
func (sim *Simulation) Reservoir() int64 { return sim.reservoir }

// Supersaturation returns the current driving ratio S.
func (sim *Simulation) Supersaturation() float64 { return sim.super }

// Live returns the live cluster set.
func (sim *Simulation) Live() []*Cluster { return sim.live }

// Summary condenses the final state of a finished run.
func (sim *Simulation) Summary() record.Summary {
	return sim.collector.Summary(sim.live, sim.reservoir)
}

func (sim *Simulation) ensembleMode() bool { return sim.cfg.Mode == ModeEnsemble }

func (sim *Simulation) totalAtoms() int64 {
	var n int64
	for _, c := range sim.clusters {
		n += c.Atoms()
	}
	return n
}

// updateDriving recomputes the shared supersaturation from the reservoir
// concentration: S = c/c_eq with c = reservoir / free vapor sites.
func (sim *Simulation) updateDriving() error {
	free := sim.vaporSites - sim.totalAtoms()
	if free <= 0 {
		return fmt.Errorf("vapor volume exhausted: %d vapor sites, %d crystal atoms",
			sim.vaporSites, sim.totalAtoms())
	}
	conc := float64(sim.reservoir) / float64(free)
	sim.super = conc / sim.cfg.EqConcentration
	sim.deltaG = DeltaG(sim.cfg.KT, sim.super)
	return nil
}

// checkInvariants verifies the atom ledger after a global step. A failure
// is a modeling bug; the run aborts with diagnostic state rather than
// producing physically meaningless results.
func (sim *Simulation) checkInvariants(step int64) error {
	if sim.reservoir < 0 {
		return fmt.Errorf("step %d: reservoir went negative (%d)", step, sim.reservoir)
	}
	var total int64
	for _, c := range sim.clusters {
		if c.Atoms() < 0 {
			return fmt.Errorf("step %d: cluster %d atom count negative (%d)", step, c.ID, c.Atoms())
		}
		total += c.Atoms()
	}
	if total+sim.reservoir != sim.baseline {
		return fmt.Errorf("step %d: atom conservation violated: clusters=%d reservoir=%d baseline=%d",
			step, total, sim.reservoir, sim.baseline)
	}
	return nil
}

// Run executes the stepping loop to termination and returns the record
// series. Ensemble scheduling is round-robin: one kernel step per live
// cluster per global step.
func (sim *Simulation) Run() (*record.Series, error) {
	sim.collector.Sample(0, sim.live, sim.reservoir, sim.super)

	cfg := sim.cfg
	reason := record.StopBudget
	var step int64

	for step = 1; step <= cfg.Steps; step++ {
		transition := false
		stalled := 0

		for _, c := range sim.live {
			blocked := sim.ensembleMode() && sim.reservoir <= cfg.ReservoirFloor
			out, err := sim.kern.Step(c, sim.deltaG, blocked)
			if err != nil {
				logrus.Errorf("step %d cluster %d: %v", step, c.ID, err)
				return nil, err
			}

			if sim.ensembleMode() {
				if out.Attached {
					sim.reservoir--
				}
				if out.Detached {
					sim.reservoir++
				}
				sim.reservoir += out.FragmentAtoms
			}
			if out.FragmentAtoms > 0 {
				sim.collector.RecordDissolution(c.ID, step, out.FragmentAtoms, true)
				transition = true
			}
			if c.Dissolved() {
				logrus.Infof("cluster %d dissolved at step %d", c.ID, step)
				sim.collector.RecordDissolution(c.ID, step, 0, false)
				transition = true
			} else if out.Stalled {
				stalled++
			}
		}

		if sim.ensembleMode() {
			if err := sim.checkInvariants(step); err != nil {
				logrus.Errorf("invariant violation: %v", err)
				return nil, err
			}
			if err := sim.updateDriving(); err != nil {
				logrus.Errorf("invariant violation: %v", err)
				return nil, err
			}
		}

		if transition {
			liveOut := sim.live[:0]
			for _, c := range sim.live {
				if !c.Dissolved() {
					liveOut = append(liveOut, c)
				}
			}
			sim.live = liveOut
		}

		if len(sim.live) == 0 {
			reason = record.StopDissolved
			sim.collector.Sample(step, sim.live, sim.reservoir, sim.super)
			break
		}
		if stalled == len(sim.live) {
			logrus.Warnf("step %d: every live cluster has an empty frontier, stopping", step)
			reason = record.StopStalled
			sim.collector.Sample(step, sim.live, sim.reservoir, sim.super)
			break
		}

		if transition || step%cfg.SampleEvery == 0 {
			sim.collector.Sample(step, sim.live, sim.reservoir, sim.super)
			if sim.collector.Converged() {
				reason = record.StopConverged
				break
			}
		}
		if cfg.PrintEvery > 0 && step%cfg.PrintEvery == 0 {
			logrus.Infof("step %d/%d: live=%d reservoir=%d S=%.4g",
				step, cfg.Steps, len(sim.live), sim.reservoir, sim.super)
		}
	}

	if step > cfg.Steps {
		step = cfg.Steps
	}
	sim.collector.Finish(step, reason)
	return sim.collector.Series(), nil
}
