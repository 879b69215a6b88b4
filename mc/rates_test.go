package mc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func isotropicRates(kt, gamma, nu float64) *RateModel {
	cfg := DefaultConfig()
	cfg.KT = kt
	cfg.GammaX, cfg.GammaY, cfg.GammaZ = gamma, gamma, gamma
	cfg.Nu = nu
	return NewRateModel(cfg)
}

func TestRateModel_AttachEnergyChange(t *testing.T) {
	r := isotropicRates(1.0, 1.0, 1.0)

	tests := []struct {
		name       string
		sx, sy, sz int
		want       float64
	}{
		{"isolated adatom gains three face pairs", 0, 0, 0, 6.0},
		{"kink along one axis is neutral there", 2, 0, 0, 2.0},
		{"hole fill destroys three face pairs", 2, 2, 2, -6.0},
		{"single neighbor leaves the axis unchanged", 1, 1, 1, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.AttachEnergyChange(tt.sx, tt.sy, tt.sz)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.InDelta(t, -tt.want, r.DetachEnergyChange(tt.sx, tt.sy, tt.sz), 1e-12)
		})
	}
}

func TestRateModel_Anisotropy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GammaX, cfg.GammaY, cfg.GammaZ = 1.0, 2.0, 3.0
	r := NewRateModel(cfg)

	// An isolated adatom pays 2*gamma per axis.
	assert.InDelta(t, 2*(1.0+2.0+3.0), r.AttachEnergyChange(0, 0, 0), 1e-12)
	// A y-kink fill saves 2*gamma_y while x and z still cost.
	assert.InDelta(t, 2*1.0-2*2.0+2*3.0, r.AttachEnergyChange(0, 2, 0), 1e-12)
}

func TestRateModel_Probabilities(t *testing.T) {
	r := isotropicRates(1.0, 1.0, 0.5)
	dG := DeltaG(1.0, math.E) // kT ln(e) = 1

	// Favorable attach (dE - dG <= 0) saturates at Nu.
	assert.InDelta(t, 0.5, r.PAttach(1.0, dG), 1e-12)
	// Unfavorable attach decays exponentially.
	assert.InDelta(t, 0.5*math.Exp(-2), r.PAttach(3.0, dG), 1e-12)
	// Detach sees the driving force with the opposite sign.
	assert.InDelta(t, 0.5*math.Exp(-1), r.PThermalDetach(0.0, dG), 1e-12)

	// Probabilities never leave [0, 1] even at extreme dE.
	assert.LessOrEqual(t, r.PAttach(-1e6, 1e6), 1.0)
	assert.GreaterOrEqual(t, r.PAttach(1e6, -1e6), 0.0)
}

func TestRateModel_BallisticIsAdditive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nu = 0.5
	cfg.BallisticX, cfg.BallisticY, cfg.BallisticZ = 0.1, 0.2, 0.3
	r := NewRateModel(cfg)

	thermal := r.PThermalDetach(0.0, 0.0)
	assert.InDelta(t, thermal+0.1, r.PDetach(0.0, 0.0, FacetX), 1e-12)
	assert.InDelta(t, thermal+0.2, r.PDetach(0.0, 0.0, FacetY), 1e-12)
	assert.InDelta(t, thermal+0.3, r.PDetach(0.0, 0.0, FacetZ), 1e-12)
}

func TestRateModel_PDetachClamps(t *testing.T) {
	r := isotropicRates(1.0, 1.0, 1.0)
	r.Ballistic = [3]float64{0.9, 0.9, 0.9}
	assert.Equal(t, 1.0, r.PDetach(-10.0, 0.0, FacetX))
}

func TestFacetOf(t *testing.T) {
	tests := []struct {
		vx, vy, vz int
		want       FacetClass
	}{
		{3, 1, 1, FacetX},
		{1, 3, 1, FacetY},
		{1, 1, 3, FacetZ},
		{2, 2, 1, FacetX}, // ties resolve toward x
		{1, 2, 2, FacetY}, // then y
		{0, 0, 0, FacetX},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FacetOf(tt.vx, tt.vy, tt.vz),
			"FacetOf(%d,%d,%d)", tt.vx, tt.vy, tt.vz)
	}
}

func TestDeltaG(t *testing.T) {
	assert.InDelta(t, 0.0, DeltaG(1.0, 1.0), 1e-12)
	assert.Greater(t, DeltaG(1.0, 2.0), 0.0, "supersaturated drives growth")
	assert.Less(t, DeltaG(1.0, 0.5), 0.0, "undersaturated drives dissolution")
	assert.True(t, math.IsInf(DeltaG(1.0, 0.0), -1), "empty reservoir forbids attachment")
}
