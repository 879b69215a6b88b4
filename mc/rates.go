package mc

import "math"

// FacetClass labels the crystallographic facet a surface site belongs to,
// by the normal of its dominant exposed face. Ballistic detachment
// magnitudes are configured per class.
type FacetClass int

const (
	FacetX FacetClass = iota
	FacetY
	FacetZ
)

// RateModel computes per-site attachment and detachment probabilities from
// local geometry, the driving force, and the anisotropic ballistic term.
//
// Thermal kinetics follow the Terrace-Ledge-Kink picture via a Metropolis
// factor on the anisotropic surface-energy change: filling a kink (two
// occupied neighbors along an axis) lowers the surface energy and attaches
// fast, while an undercoordinated ledge atom detaches fast. The athermal
// ballistic term is an additive detachment probability independent of
// coordination, selected by facet class.
type RateModel struct {
	KT float64
	Nu float64 // thermal attempt frequency, in (0, 1]

	// Energy change per face pair created or destroyed along each axis
	// (2 * gamma_axis for unit lattice spacing).
	EX2, EY2, EZ2 float64

	// Ballistic detachment probability per facet class.
	Ballistic [3]float64
}

// NewRateModel derives the rate parameters from a validated configuration.
func NewRateModel(cfg *Config) *RateModel {
	return &RateModel{
		KT:        cfg.KT,
		Nu:        cfg.Nu,
		EX2:       2 * cfg.GammaX,
		EY2:       2 * cfg.GammaY,
		EZ2:       2 * cfg.GammaZ,
		Ballistic: [3]float64{cfg.BallisticX, cfg.BallisticY, cfg.BallisticZ},
	}
}

// DeltaG returns the chemical driving force kT*ln(S) for supersaturation S.
func DeltaG(kt, s float64) float64 {
	return kt * math.Log(s)
}

// AttachEnergyChange is the surface-energy change of occupying a vacant
// site with the given per-axis occupied-neighbor sums: an axis with no
// occupied neighbor gains a face pair, an axis with both neighbors occupied
// loses one.
func (r *RateModel) AttachEnergyChange(sx, sy, sz int) float64 {
	var dE float64
	switch sx {
	case 0:
		dE += r.EX2
	case 2:
		dE -= r.EX2
	}
	switch sy {
	case 0:
		dE += r.EY2
	case 2:
		dE -= r.EY2
	}
	switch sz {
	case 0:
		dE += r.EZ2
	case 2:
		dE -= r.EZ2
	}
	return dE
}

// DetachEnergyChange is the surface-energy change of vacating an occupied
// site; the sign convention mirrors AttachEnergyChange.
func (r *RateModel) DetachEnergyChange(sx, sy, sz int) float64 {
	return -r.AttachEnergyChange(sx, sy, sz)
}

// PAttach returns the attachment probability for a vacant frontier site.
// Always in [0, 1].
func (r *RateModel) PAttach(dEsurf, deltaG float64) float64 {
	return r.Nu * metropolis(dEsurf-deltaG, r.KT)
}

// PThermalDetach returns the thermal detachment probability for an occupied
// frontier site. Always in [0, 1].
func (r *RateModel) PThermalDetach(dEsurf, deltaG float64) float64 {
	return r.Nu * metropolis(dEsurf+deltaG, r.KT)
}

// PDetach returns the combined detachment probability: thermal term plus
// the athermal ballistic term for the site's facet class, clamped to [0,1].
// Config validation guarantees Nu + max(Ballistic) <= 1, so the clamp never
// truncates for valid configurations.
func (r *RateModel) PDetach(dEsurf, deltaG float64, class FacetClass) float64 {
	p := r.PThermalDetach(dEsurf, deltaG) + r.Ballistic[class]
	if p > 1 {
		return 1
	}
	return p
}

// FacetOf classifies a surface site by the axis with the most exposed
// faces; ties resolve X before Y before Z.
func FacetOf(vx, vy, vz int) FacetClass {
	class, best := FacetX, vx
	if vy > best {
		class, best = FacetY, vy
	}
	if vz > best {
		class = FacetZ
	}
	return class
}

// metropolis is min(1, exp(-dE/kT)).
func metropolis(dE, kt float64) float64 {
	if dE <= 0 {
		return 1
	}
	return math.Exp(-dE / kt)
}
