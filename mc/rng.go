package mc

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey names one reproducible run. Replaying a key against the
// same configuration reproduces the record stream exactly.
type SimulationKey int64

// NewSimulationKey wraps a seed value as a SimulationKey.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemKernel is the RNG subsystem driving event selection and
	// acceptance draws. Uses the master seed directly so --seed behaves
	// the same in single-cluster and ensemble runs.
	SubsystemKernel = "kernel"
)

// SubsystemRealization returns the subsystem name for independent
// realization N. Each realization derives its own master seed from it.
func SubsystemRealization(n int) string {
	return fmt.Sprintf("realization_%d", n)
}

// PartitionedRNG hands out one deterministic RNG stream per named
// subsystem, all derived from a single master key. SubsystemKernel gets
// the master seed unchanged; any other name gets the master seed XORed
// with the FNV-1a hash of the name.
//
// Not safe for concurrent use. Each run owns an instance and steps it from
// one goroutine; parallel realizations construct their own.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG for the named subsystem, creating and
// caching it on first use so repeated calls share one *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(p.DeriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// DeriveSeed returns the seed a subsystem RNG would be created with.
// Exposed so parallel realizations can derive independent master seeds.
func (p *PartitionedRNG) DeriveSeed(name string) int64 {
	if name == SubsystemKernel {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
