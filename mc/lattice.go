package mc

// noSite marks a neighbor slot that falls outside an open (non-periodic)
// boundary.
const noSite int32 = -1

// Axis identifies a principal lattice direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Lattice is the shared geometry of the simulation volume: a 3D cubic grid
// with 6-connectivity and per-axis periodic or open boundaries.
//
// Sites are addressed by a flat index idx = z + y*NZ + x*NZ*NY. Neighbor
// relationships are precomputed into a flat table rather than stored as
// links between sites; clusters hold their own occupancy over this shared
// geometry.
type Lattice struct {
	NX, NY, NZ int
	PeriodicX  bool
	PeriodicY  bool
	PeriodicZ  bool

	Size    int
	strideY int // NZ
	strideX int // NZ * NY

	// neighbors[idx] lists the 6 face neighbors of idx in the fixed order
	// (-x, +x, -y, +y, -z, +z); noSite for open-boundary misses.
	neighbors [][6]int32
}

// NewLattice precomputes the neighbor table for the given dimensions and
// boundary conditions. Dimensions must already be validated positive.
func NewLattice(nx, ny, nz int, px, py, pz bool) *Lattice {
	l := &Lattice{
		NX: nx, NY: ny, NZ: nz,
		PeriodicX: px, PeriodicY: py, PeriodicZ: pz,
		Size:    nx * ny * nz,
		strideY: nz,
		strideX: nz * ny,
	}
	l.neighbors = make([][6]int32, l.Size)

	for idx := 0; idx < l.Size; idx++ {
		x, y, z := l.Coords(idx)
		offsets := [6][3]int{
			{x - 1, y, z}, {x + 1, y, z},
			{x, y - 1, z}, {x, y + 1, z},
			{x, y, z - 1}, {x, y, z + 1},
		}
		for i, o := range offsets {
			xi := wrapCoord(o[0], nx, px)
			yi := wrapCoord(o[1], ny, py)
			zi := wrapCoord(o[2], nz, pz)
			if xi < 0 || yi < 0 || zi < 0 {
				l.neighbors[idx][i] = noSite
				continue
			}
			l.neighbors[idx][i] = int32(l.Index(xi, yi, zi))
		}
	}
	return l
}

// wrapCoord maps a raw coordinate into [0, dim) under periodic boundaries,
// or returns -1 when it falls outside an open boundary.
func wrapCoord(c, dim int, periodic bool) int {
	if c >= 0 && c < dim {
		return c
	}
	if !periodic {
		return -1
	}
	c %= dim
	if c < 0 {
		c += dim
	}
	return c
}

// Index converts lattice coordinates to a flat site index.
func (l *Lattice) Index(x, y, z int) int {
	return z + y*l.strideY + x*l.strideX
}

// Coords converts a flat site index back to lattice coordinates.
func (l *Lattice) Coords(idx int) (x, y, z int) {
	z = idx % l.NZ
	y = (idx / l.strideY) % l.NY
	x = idx / l.strideX
	return
}

// Neighbors returns the precomputed neighbor slots of a site.
func (l *Lattice) Neighbors(idx int) *[6]int32 {
	return &l.neighbors[idx]
}

// neighborAxis maps a neighbor slot position to its axis.
func neighborAxis(slot int) Axis {
	return Axis(slot / 2)
}
