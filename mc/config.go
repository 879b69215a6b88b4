package mc

import "fmt"

// Mode selects the simulation variant.
type Mode string

const (
	// ModeSingle evolves one cluster under a fixed supersaturation.
	ModeSingle Mode = "single"
	// ModeEnsemble couples many clusters through a shared finite
	// reservoir of mobile atoms.
	ModeEnsemble Mode = "ensemble"
)

// DisconnectionPolicy fixes how a detach that would split the occupied body
// is resolved. It materially affects length statistics, so it is part of
// the configuration and never mixed within a run.
type DisconnectionPolicy string

const (
	// DisconnectReject rejects splitting detach events (no-op step).
	DisconnectReject DisconnectionPolicy = "reject"
	// DisconnectFragment allows the detach and dissolves every component
	// except the largest, returning its atoms to the reservoir.
	DisconnectFragment DisconnectionPolicy = "dissolve-fragment"
)

// SelectionScheme names the candidate-site selection rule. Only the
// fixed-sweep uniform scheme is implemented; the field exists so the scheme
// is explicit in every run's configuration record.
type SelectionScheme string

// SelectUniform picks uniformly over the union of the attach and detach
// frontiers (fixed-sweep Monte Carlo: one candidate per step, accepted or
// not, each step advances time by one).
const SelectUniform SelectionScheme = "uniform-frontier"

// Config holds every knob of a simulation run. It is validated before the
// first step; invalid parameter sets fail fast and are never clamped.
type Config struct {
	Mode Mode `yaml:"mode"`

	// Lattice geometry.
	NX        int  `yaml:"nx"`
	NY        int  `yaml:"ny"`
	NZ        int  `yaml:"nz"`
	PeriodicX bool `yaml:"periodic_x"`
	PeriodicY bool `yaml:"periodic_y"`
	PeriodicZ bool `yaml:"periodic_z"`

	// Initial nucleus: a centered box per cluster.
	SeedDX int `yaml:"seed_dx"`
	SeedDY int `yaml:"seed_dy"`
	SeedDZ int `yaml:"seed_dz"`

	// Ensemble population.
	Clusters int `yaml:"clusters"`

	// Thermal rate parameters.
	Supersaturation float64 `yaml:"supersaturation"` // fixed S, single mode
	KT              float64 `yaml:"kt"`
	GammaX          float64 `yaml:"gamma_x"`
	GammaY          float64 `yaml:"gamma_y"`
	GammaZ          float64 `yaml:"gamma_z"`
	Nu              float64 `yaml:"nu"`

	// Athermal ballistic detachment magnitude per facet class.
	BallisticX float64 `yaml:"ballistic_x"`
	BallisticY float64 `yaml:"ballistic_y"`
	BallisticZ float64 `yaml:"ballistic_z"`

	Disconnection DisconnectionPolicy `yaml:"disconnection"`
	Selection     SelectionScheme     `yaml:"selection"`

	// Stepping, sampling, and termination.
	Steps          int64   `yaml:"steps"`
	SampleEvery    int64   `yaml:"sample_every"`
	PrintEvery     int64   `yaml:"print_every"`
	ConvergeWindow int     `yaml:"converge_window"` // samples; 0 disables
	ConvergeTol    float64 `yaml:"converge_tol"`

	Seed int64 `yaml:"seed"`

	// Reservoir coupling (ensemble mode).
	ReservoirAtoms  int64   `yaml:"reservoir_atoms"`
	EqConcentration float64 `yaml:"eq_concentration"`
	ReservoirFloor  int64   `yaml:"reservoir_floor"`
	// VaporSites is the mobile-phase capacity used as the concentration
	// denominator; 0 defaults to clusters * lattice volume.
	VaporSites int64 `yaml:"vapor_sites"`
}

// DefaultConfig returns a runnable single-cluster configuration.
func DefaultConfig() *Config {
	return &Config{
		Mode:            ModeSingle,
		NX:              20,
		NY:              20,
		NZ:              40,
		PeriodicX:       true,
		PeriodicY:       true,
		PeriodicZ:       true,
		SeedDX:          6,
		SeedDY:          6,
		SeedDZ:          10,
		Clusters:        1,
		Supersaturation: 1.2,
		KT:              1.0,
		GammaX:          1.0,
		GammaY:          1.0,
		GammaZ:          1.0,
		Nu:              0.5,
		BallisticX:      0.0,
		BallisticY:      0.0,
		BallisticZ:      0.0,
		Disconnection:   DisconnectReject,
		Selection:       SelectUniform,
		Steps:           100000,
		SampleEvery:     1000,
		PrintEvery:      0,
		Seed:            42,
		EqConcentration: 0.01,
		ReservoirFloor:  0,
	}
}

// Validate rejects parameter sets that could produce out-of-range
// probabilities or physically meaningless state. Called once before any
// stepping; nothing is silently clamped.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeSingle, ModeEnsemble:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeSingle, ModeEnsemble, c.Mode)
	}
	if c.NX <= 0 || c.NY <= 0 || c.NZ <= 0 {
		return fmt.Errorf("lattice dimensions must be > 0, got %dx%dx%d", c.NX, c.NY, c.NZ)
	}
	if c.SeedDX <= 0 || c.SeedDY <= 0 || c.SeedDZ <= 0 {
		return fmt.Errorf("seed box dimensions must be > 0, got %dx%dx%d", c.SeedDX, c.SeedDY, c.SeedDZ)
	}
	if c.SeedDX > c.NX || c.SeedDY > c.NY || c.SeedDZ > c.NZ {
		return fmt.Errorf("seed box %dx%dx%d does not fit lattice %dx%dx%d",
			c.SeedDX, c.SeedDY, c.SeedDZ, c.NX, c.NY, c.NZ)
	}
	if c.KT <= 0 {
		return fmt.Errorf("kt must be > 0, got %g", c.KT)
	}
	if c.GammaX < 0 || c.GammaY < 0 || c.GammaZ < 0 {
		return fmt.Errorf("surface energies must be >= 0, got (%g, %g, %g)",
			c.GammaX, c.GammaY, c.GammaZ)
	}
	if c.Nu <= 0 || c.Nu > 1 {
		return fmt.Errorf("nu must be in (0, 1], got %g", c.Nu)
	}
	maxB := c.BallisticX
	if c.BallisticY > maxB {
		maxB = c.BallisticY
	}
	if c.BallisticZ > maxB {
		maxB = c.BallisticZ
	}
	if c.BallisticX < 0 || c.BallisticY < 0 || c.BallisticZ < 0 || maxB > 1 {
		return fmt.Errorf("ballistic magnitudes must be in [0, 1], got (%g, %g, %g)",
			c.BallisticX, c.BallisticY, c.BallisticZ)
	}
	if c.Nu+maxB > 1 {
		return fmt.Errorf("nu + max ballistic magnitude must be <= 1 so the combined "+
			"detachment probability stays in [0, 1], got %g + %g", c.Nu, maxB)
	}
	switch c.Disconnection {
	case DisconnectReject, DisconnectFragment:
	default:
		return fmt.Errorf("disconnection policy must be %q or %q, got %q",
			DisconnectReject, DisconnectFragment, c.Disconnection)
	}
	if c.Selection != SelectUniform {
		return fmt.Errorf("selection scheme must be %q, got %q", SelectUniform, c.Selection)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be > 0, got %d", c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be > 0, got %d", c.SampleEvery)
	}
	if c.PrintEvery < 0 {
		return fmt.Errorf("print_every must be >= 0, got %d", c.PrintEvery)
	}
	if c.ConvergeWindow < 0 {
		return fmt.Errorf("converge_window must be >= 0, got %d", c.ConvergeWindow)
	}
	if c.ConvergeWindow > 0 && c.ConvergeTol <= 0 {
		return fmt.Errorf("converge_tol must be > 0 when converge_window is set, got %g", c.ConvergeTol)
	}

	switch c.Mode {
	case ModeSingle:
		if c.Supersaturation <= 0 {
			return fmt.Errorf("supersaturation must be > 0, got %g", c.Supersaturation)
		}
		if c.Clusters != 1 {
			return fmt.Errorf("single mode runs exactly one cluster, got %d", c.Clusters)
		}
	case ModeEnsemble:
		if c.Clusters < 1 {
			return fmt.Errorf("ensemble mode needs at least one cluster, got %d", c.Clusters)
		}
		if c.EqConcentration <= 0 {
			return fmt.Errorf("eq_concentration must be > 0, got %g", c.EqConcentration)
		}
		if c.ReservoirAtoms < 0 {
			return fmt.Errorf("reservoir_atoms must be >= 0, got %d", c.ReservoirAtoms)
		}
		if c.ReservoirFloor < 0 {
			return fmt.Errorf("reservoir_floor must be >= 0, got %d", c.ReservoirFloor)
		}
		if c.VaporSites < 0 {
			return fmt.Errorf("vapor_sites must be >= 0, got %d", c.VaporSites)
		}
	}
	return nil
}

// EffectiveVaporSites resolves the concentration denominator default.
func (c *Config) EffectiveVaporSites() int64 {
	if c.VaporSites > 0 {
		return c.VaporSites
	}
	return int64(c.Clusters) * int64(c.NX) * int64(c.NY) * int64(c.NZ)
}
