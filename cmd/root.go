package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlesInsomnes/Elementary-MC-model/mc"
)

var (
	// Run control
	logLevel     string // Log verbosity level
	outPath      string // Output path for the record stream ("" = stdout)
	scenarioFile string // YAML scenario file with preset parameter sets
	scenarioName string // Scenario to load from the scenario file
	realizations int    // Number of independent parallel realizations

	// Simulation configuration (defaults mirror mc.DefaultConfig)
	mode            string
	nx, ny, nz      int
	periodicX       bool
	periodicY       bool
	periodicZ       bool
	seedDX          int
	seedDY          int
	seedDZ          int
	clusters        int
	supersaturation float64
	kt              float64
	gammaX          float64
	gammaY          float64
	gammaZ          float64
	nu              float64
	ballisticX      float64
	ballisticY      float64
	ballisticZ      float64
	disconnection   string
	steps           int64
	sampleEvery     int64
	printEvery      int64
	convergeWindow  int
	convergeTol     float64
	seed            int64
	reservoirAtoms  int64
	eqConcentration float64
	reservoirFloor  int64
	vaporSites      int64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "emc",
	Short: "Monte Carlo simulator for anisotropic crystallite recrystallization",
}

// runCmd executes one simulation (or several parallel realizations) using
// parameters from CLI flags, optionally layered over a YAML scenario.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the recrystallization simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := mc.DefaultConfig()
		if scenarioFile != "" {
			cfg, err = LoadScenario(scenarioFile, scenarioName)
			if err != nil {
				logrus.Fatalf("Failed to load scenario: %v", err)
			}
			logrus.Infof("Using scenario %q from %s", scenarioName, scenarioFile)
		}
		applyFlagOverrides(cmd, cfg)

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				logrus.Fatalf("Failed to create output file: %v", err)
			}
			defer f.Close()
			out = f
		}

		if realizations > 1 {
			logrus.Infof("Starting %d realizations: mode=%s lattice=%dx%dx%d clusters=%d steps=%d",
				realizations, cfg.Mode, cfg.NX, cfg.NY, cfg.NZ, cfg.Clusters, cfg.Steps)
			summaries, err := mc.RunRealizations(cfg, realizations)
			if err != nil {
				logrus.Fatalf("Realization failed: %v", err)
			}
			if err := writeSummaries(out, summaries, mc.Aggregate(summaries)); err != nil {
				logrus.Fatalf("Failed to write output: %v", err)
			}
			logrus.Info("Simulation complete.")
			return
		}

		logrus.Infof("Starting simulation: mode=%s lattice=%dx%dx%d clusters=%d steps=%d seed=%d",
			cfg.Mode, cfg.NX, cfg.NY, cfg.NZ, cfg.Clusters, cfg.Steps, cfg.Seed)

		sim, err := mc.NewSimulation(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		series, err := sim.Run()
		if err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}
		if err := writeSeries(out, series, sim.Summary()); err != nil {
			logrus.Fatalf("Failed to write output: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// applyFlagOverrides copies explicitly-set flags onto the configuration, so
// flags take precedence over scenario presets.
func applyFlagOverrides(cmd *cobra.Command, cfg *mc.Config) {
	set := map[string]func(){
		"mode":             func() { cfg.Mode = mc.Mode(mode) },
		"nx":               func() { cfg.NX = nx },
		"ny":               func() { cfg.NY = ny },
		"nz":               func() { cfg.NZ = nz },
		"periodic-x":       func() { cfg.PeriodicX = periodicX },
		"periodic-y":       func() { cfg.PeriodicY = periodicY },
		"periodic-z":       func() { cfg.PeriodicZ = periodicZ },
		"seed-dx":          func() { cfg.SeedDX = seedDX },
		"seed-dy":          func() { cfg.SeedDY = seedDY },
		"seed-dz":          func() { cfg.SeedDZ = seedDZ },
		"clusters":         func() { cfg.Clusters = clusters },
		"supersaturation":  func() { cfg.Supersaturation = supersaturation },
		"kt":               func() { cfg.KT = kt },
		"gamma-x":          func() { cfg.GammaX = gammaX },
		"gamma-y":          func() { cfg.GammaY = gammaY },
		"gamma-z":          func() { cfg.GammaZ = gammaZ },
		"nu":               func() { cfg.Nu = nu },
		"ballistic-x":      func() { cfg.BallisticX = ballisticX },
		"ballistic-y":      func() { cfg.BallisticY = ballisticY },
		"ballistic-z":      func() { cfg.BallisticZ = ballisticZ },
		"disconnection":    func() { cfg.Disconnection = mc.DisconnectionPolicy(disconnection) },
		"steps":            func() { cfg.Steps = steps },
		"sample-every":     func() { cfg.SampleEvery = sampleEvery },
		"print-every":      func() { cfg.PrintEvery = printEvery },
		"converge-window":  func() { cfg.ConvergeWindow = convergeWindow },
		"converge-tol":     func() { cfg.ConvergeTol = convergeTol },
		"seed":             func() { cfg.Seed = seed },
		"reservoir-atoms":  func() { cfg.ReservoirAtoms = reservoirAtoms },
		"eq-concentration": func() { cfg.EqConcentration = eqConcentration },
		"reservoir-floor":  func() { cfg.ReservoirFloor = reservoirFloor },
		"vapor-sites":      func() { cfg.VaporSites = vaporSites },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := mc.DefaultConfig()

	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Output file for the record stream (default stdout)")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML scenario file")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario name inside the scenario file")
	runCmd.Flags().IntVar(&realizations, "realizations", 1, "Number of independent parallel realizations")

	runCmd.Flags().StringVar(&mode, "mode", string(def.Mode), "Simulation variant (single, ensemble)")
	runCmd.Flags().IntVar(&nx, "nx", def.NX, "Lattice size along X")
	runCmd.Flags().IntVar(&ny, "ny", def.NY, "Lattice size along Y")
	runCmd.Flags().IntVar(&nz, "nz", def.NZ, "Lattice size along Z")
	runCmd.Flags().BoolVar(&periodicX, "periodic-x", def.PeriodicX, "Periodic boundary along X")
	runCmd.Flags().BoolVar(&periodicY, "periodic-y", def.PeriodicY, "Periodic boundary along Y")
	runCmd.Flags().BoolVar(&periodicZ, "periodic-z", def.PeriodicZ, "Periodic boundary along Z")
	runCmd.Flags().IntVar(&seedDX, "seed-dx", def.SeedDX, "Seed nucleus size along X")
	runCmd.Flags().IntVar(&seedDY, "seed-dy", def.SeedDY, "Seed nucleus size along Y")
	runCmd.Flags().IntVar(&seedDZ, "seed-dz", def.SeedDZ, "Seed nucleus size along Z")
	runCmd.Flags().IntVar(&clusters, "clusters", def.Clusters, "Number of clusters (ensemble mode)")
	runCmd.Flags().Float64Var(&supersaturation, "supersaturation", def.Supersaturation, "Fixed supersaturation S (single mode)")
	runCmd.Flags().Float64Var(&kt, "kt", def.KT, "Thermal energy kT")
	runCmd.Flags().Float64Var(&gammaX, "gamma-x", def.GammaX, "Surface energy of X-normal facets")
	runCmd.Flags().Float64Var(&gammaY, "gamma-y", def.GammaY, "Surface energy of Y-normal facets")
	runCmd.Flags().Float64Var(&gammaZ, "gamma-z", def.GammaZ, "Surface energy of Z-normal facets")
	runCmd.Flags().Float64Var(&nu, "nu", def.Nu, "Thermal attempt frequency in (0, 1]")
	runCmd.Flags().Float64Var(&ballisticX, "ballistic-x", def.BallisticX, "Ballistic detachment magnitude for X facets")
	runCmd.Flags().Float64Var(&ballisticY, "ballistic-y", def.BallisticY, "Ballistic detachment magnitude for Y facets")
	runCmd.Flags().Float64Var(&ballisticZ, "ballistic-z", def.BallisticZ, "Ballistic detachment magnitude for Z facets")
	runCmd.Flags().StringVar(&disconnection, "disconnection", string(def.Disconnection), "Disconnection policy (reject, dissolve-fragment)")
	runCmd.Flags().Int64Var(&steps, "steps", def.Steps, "Step budget")
	runCmd.Flags().Int64Var(&sampleEvery, "sample-every", def.SampleEvery, "Sampling cadence in steps")
	runCmd.Flags().Int64Var(&printEvery, "print-every", def.PrintEvery, "Progress log cadence in steps (0 = off)")
	runCmd.Flags().IntVar(&convergeWindow, "converge-window", def.ConvergeWindow, "Convergence window in samples (0 = off)")
	runCmd.Flags().Float64Var(&convergeTol, "converge-tol", def.ConvergeTol, "Mean-length change tolerance for convergence")
	runCmd.Flags().Int64Var(&seed, "seed", def.Seed, "Master random seed")
	runCmd.Flags().Int64Var(&reservoirAtoms, "reservoir-atoms", def.ReservoirAtoms, "Initial reservoir atom count (ensemble mode)")
	runCmd.Flags().Float64Var(&eqConcentration, "eq-concentration", def.EqConcentration, "Equilibrium concentration c_eq (ensemble mode)")
	runCmd.Flags().Int64Var(&reservoirFloor, "reservoir-floor", def.ReservoirFloor, "Reservoir level that blocks attachment (ensemble mode)")
	runCmd.Flags().Int64Var(&vaporSites, "vapor-sites", def.VaporSites, "Vapor-phase site capacity (0 = clusters * lattice volume)")

	rootCmd.AddCommand(runCmd)
}
