package mc

import "testing"

func TestLattice_IndexCoordsRoundTrip(t *testing.T) {
	l := NewLattice(4, 5, 6, true, false, true)
	for x := 0; x < l.NX; x++ {
		for y := 0; y < l.NY; y++ {
			for z := 0; z < l.NZ; z++ {
				idx := l.Index(x, y, z)
				gx, gy, gz := l.Coords(idx)
				if gx != x || gy != y || gz != z {
					t.Fatalf("Coords(Index(%d,%d,%d)) = (%d,%d,%d)", x, y, z, gx, gy, gz)
				}
			}
		}
	}
}

func TestLattice_InteriorNeighbors(t *testing.T) {
	l := NewLattice(5, 5, 5, false, false, false)
	idx := l.Index(2, 2, 2)
	nbs := l.Neighbors(idx)

	want := [6]int{
		l.Index(1, 2, 2), l.Index(3, 2, 2),
		l.Index(2, 1, 2), l.Index(2, 3, 2),
		l.Index(2, 2, 1), l.Index(2, 2, 3),
	}
	for i, w := range want {
		if int(nbs[i]) != w {
			t.Errorf("neighbor slot %d: got %d, want %d", i, nbs[i], w)
		}
	}
}

func TestLattice_PeriodicWrap(t *testing.T) {
	// GIVEN a lattice periodic along X only
	l := NewLattice(4, 4, 4, true, false, false)

	// THEN the -x neighbor of x=0 wraps to x=NX-1
	nbs := l.Neighbors(l.Index(0, 1, 1))
	if int(nbs[0]) != l.Index(3, 1, 1) {
		t.Errorf("-x neighbor at x=0: got %d, want wrap to %d", nbs[0], l.Index(3, 1, 1))
	}

	// AND the -y neighbor at y=0 falls outside the open boundary
	nbs = l.Neighbors(l.Index(1, 0, 1))
	if nbs[2] != noSite {
		t.Errorf("-y neighbor at open boundary: got %d, want noSite", nbs[2])
	}
}

func TestLattice_NeighborAxes(t *testing.T) {
	for slot, want := range []Axis{AxisX, AxisX, AxisY, AxisY, AxisZ, AxisZ} {
		if neighborAxis(slot) != want {
			t.Errorf("slot %d: got axis %d, want %d", slot, neighborAxis(slot), want)
		}
	}
}
