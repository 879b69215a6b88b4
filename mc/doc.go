// Package mc provides the Monte Carlo engine that simulates anisotropic
// recrystallization of fibrous crystallites under intensive stirring. The
// kinetics combine a Terrace-Ledge-Kink thermal term with an athermal,
// facet-selective "ballistic detachment" term that mimics mechanically
// driven atom removal.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - lattice.go: the shared grid geometry and precomputed neighbor table
//   - kernel.go: the per-step candidate selection and accept/reject logic
//   - ensemble.go: the run loop, reservoir coupling, and termination
//
// # Architecture
//
// A Simulation owns everything one reproducible run needs: one Lattice, one
// RateModel, one PartitionedRNG, one Kernel, the cluster population, the
// reservoir ledger, and a Collector. Clusters share the lattice geometry
// but each holds its own occupancy and frontier (cluster.go, frontier.go).
// Output records are pure data types in mc/record, so analysis tooling
// consumes the record stream without touching engine internals.
//
// In ensemble mode every detached atom enters the shared reservoir and
// every attached atom is drawn from it; the reservoir concentration sets
// the supersaturation all clusters see on the next step. Atoms never leave
// the simulated volume: fragment dissolution is a logged transfer into the
// reservoir, so the atom total is conserved exactly.
package mc
