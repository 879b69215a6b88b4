package mc

import "math/rand"

// StepOutcome reports what one kernel step did, for the ensemble atom
// ledger and lifecycle handling.
type StepOutcome struct {
	Attached bool
	Detached bool
	// FragmentAtoms counts atoms dissolved from disconnected fragments
	// under the dissolve-fragment policy (returned to the reservoir).
	FragmentAtoms int64
	// Stalled means the cluster had no candidate sites: the body either
	// dissolved or filled the whole periodic volume.
	Stalled bool
}

// Kernel drives single-cluster state transitions. One step selects one
// candidate site uniformly from the union of the attach and detach
// frontiers (fixed-sweep Monte Carlo), evaluates the rate model, and draws
// once; rejected events are no-ops that still consume the step.
type Kernel struct {
	cfg   *Config
	rates *RateModel
	rng   *rand.Rand
}

// NewKernel creates a kernel bound to a run-owned RNG stream.
func NewKernel(cfg *Config, rates *RateModel, rng *rand.Rand) *Kernel {
	return &Kernel{cfg: cfg, rates: rates, rng: rng}
}

// Step advances one cluster by one Monte Carlo step under the given driving
// force. attachBlocked suppresses attachment when the ensemble reservoir is
// at its floor. Errors indicate kernel bugs, not physics outcomes.
func (k *Kernel) Step(c *Cluster, deltaG float64, attachBlocked bool) (StepOutcome, error) {
	var out StepOutcome

	front := c.Frontier()
	nAttach := front.AttachLen()
	total := nAttach + front.DetachLen()
	if total == 0 {
		out.Stalled = true
		return out, nil
	}

	pick := k.rng.Intn(total)
	if pick < nAttach {
		if attachBlocked {
			return out, nil
		}
		idx := front.AttachAt(pick)
		sx, sy, sz := c.AxisNeighborSums(idx)
		dE := k.rates.AttachEnergyChange(sx, sy, sz)
		if k.rng.Float64() < k.rates.PAttach(dE, deltaG) {
			if err := c.Attach(idx); err != nil {
				return out, err
			}
			c.AddEnergy(dE)
			out.Attached = true
		}
		return out, nil
	}

	idx := front.DetachAt(pick - nAttach)
	sx, sy, sz := c.AxisNeighborSums(idx)
	vx, vy, vz := c.ExposedFaces(idx)
	dE := k.rates.DetachEnergyChange(sx, sy, sz)
	p := k.rates.PDetach(dE, deltaG, FacetOf(vx, vy, vz))
	if k.rng.Float64() >= p {
		return out, nil
	}

	splits := c.Atoms() > 1 && c.WouldDisconnect(idx)
	if splits && k.cfg.Disconnection == DisconnectReject {
		return out, nil
	}

	if err := c.Detach(idx); err != nil {
		return out, err
	}
	c.AddEnergy(dE)
	out.Detached = true

	if splits {
		out.FragmentAtoms = k.dissolveFragments(c)
	}
	return out, nil
}

// dissolveFragments keeps the largest connected component and dissolves the
// rest, returning the atom count removed.
func (k *Kernel) dissolveFragments(c *Cluster) int64 {
	comps := c.Components()
	if len(comps) <= 1 {
		return 0
	}
	largest := 0
	for i, comp := range comps {
		if len(comp) > len(comps[largest]) {
			largest = i
		}
	}
	var doomed []int32
	for i, comp := range comps {
		if i != largest {
			doomed = append(doomed, comp...)
		}
	}
	return c.DissolveSites(doomed)
}
