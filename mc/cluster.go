package mc

import "fmt"

// Cluster is one crystallite: an occupancy layer over the shared lattice
// geometry, its incremental frontier, and its atom count. Clusters in an
// ensemble share one Lattice but never share occupancy.
type Cluster struct {
	ID int

	lat   *Lattice
	occ   []uint8
	front *Frontier

	atoms     int64
	dissolved bool

	// Running total of surface-energy change over accepted events.
	energyDelta float64
}

// NewCluster creates an empty cluster over the given lattice.
func NewCluster(id int, lat *Lattice) *Cluster {
	return &Cluster{
		ID:    id,
		lat:   lat,
		occ:   make([]uint8, lat.Size),
		front: NewFrontier(lat.Size),
	}
}

// SeedBox occupies a rectangular nucleus of dx*dy*dz sites centered in the
// lattice, then builds the frontier. The box must fit inside the lattice.
func (c *Cluster) SeedBox(dx, dy, dz int) error {
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return fmt.Errorf("seed box dimensions must be > 0, got %dx%dx%d", dx, dy, dz)
	}
	if dx > c.lat.NX || dy > c.lat.NY || dz > c.lat.NZ {
		return fmt.Errorf("seed box %dx%dx%d exceeds lattice %dx%dx%d",
			dx, dy, dz, c.lat.NX, c.lat.NY, c.lat.NZ)
	}
	x0 := (c.lat.NX - dx) / 2
	y0 := (c.lat.NY - dy) / 2
	z0 := (c.lat.NZ - dz) / 2
	for x := x0; x < x0+dx; x++ {
		for y := y0; y < y0+dy; y++ {
			for z := z0; z < z0+dz; z++ {
				c.occ[c.lat.Index(x, y, z)] = 1
			}
		}
	}
	c.RebuildFrontier()
	return nil
}

// RebuildFrontier recomputes the atom count and both frontier sets by a
// full scan. Used at construction and after fragment dissolution; every
// per-event update is incremental.
func (c *Cluster) RebuildFrontier() {
	c.front.Reset()
	c.atoms = 0
	for idx, s := range c.occ {
		if s != 1 {
			continue
		}
		c.atoms++
		hasVacancy := false
		for _, nb := range c.lat.Neighbors(idx) {
			if nb != noSite && c.occ[nb] == 0 {
				hasVacancy = true
				c.front.AddAttach(int(nb))
			}
		}
		if hasVacancy {
			c.front.AddDetach(idx)
		}
	}
}

// Occupied reports whether the site is part of the cluster body.
func (c *Cluster) Occupied(idx int) bool { return c.occ[idx] == 1 }

// Atoms returns the occupied-site count.
func (c *Cluster) Atoms() int64 { return c.atoms }

// Dissolved reports whether the cluster reached the terminal empty state.
func (c *Cluster) Dissolved() bool { return c.dissolved }

// Frontier exposes the candidate-event sets for kernel sampling.
func (c *Cluster) Frontier() *Frontier { return c.front }

// EnergyDelta returns the accumulated surface-energy change.
func (c *Cluster) EnergyDelta() float64 { return c.energyDelta }

// AddEnergy accumulates the surface-energy change of an accepted event.
func (c *Cluster) AddEnergy(dE float64) { c.energyDelta += dE }

// AxisNeighborSums counts occupied neighbors per axis (each in {0,1,2});
// open-boundary misses count as unoccupied.
func (c *Cluster) AxisNeighborSums(idx int) (sx, sy, sz int) {
	nbs := c.lat.Neighbors(idx)
	for i, nb := range nbs {
		if nb == noSite || c.occ[nb] != 1 {
			continue
		}
		switch neighborAxis(i) {
		case AxisX:
			sx++
		case AxisY:
			sy++
		case AxisZ:
			sz++
		}
	}
	return
}

// ExposedFaces counts vacant neighbors per axis. Open-boundary misses are
// walls, not vacancies, so they expose no face.
func (c *Cluster) ExposedFaces(idx int) (vx, vy, vz int) {
	nbs := c.lat.Neighbors(idx)
	for i, nb := range nbs {
		if nb == noSite || c.occ[nb] != 0 {
			continue
		}
		switch neighborAxis(i) {
		case AxisX:
			vx++
		case AxisY:
			vy++
		case AxisZ:
			vz++
		}
	}
	return
}

// Attach marks a vacant frontier site occupied and updates both frontier
// sets incrementally. It fails if the site is occupied or not adjacent to
// the existing body.
func (c *Cluster) Attach(idx int) error {
	if c.occ[idx] == 1 {
		return fmt.Errorf("attach at %d: site already occupied", idx)
	}
	if !c.front.InAttach(idx) {
		return fmt.Errorf("attach at %d: site not adjacent to cluster body", idx)
	}

	c.occ[idx] = 1
	c.atoms++
	c.front.RemoveAttach(idx)

	sx, sy, sz := c.AxisNeighborSums(idx)
	if sx+sy+sz < 6 {
		c.front.AddDetach(idx)
	}

	nbs := c.lat.Neighbors(idx)
	for _, nb := range nbs {
		if nb == noSite {
			continue
		}
		switch c.occ[nb] {
		case 0:
			c.front.AddAttach(int(nb))
		case 1:
			// The filled site may have been its last vacancy.
			if !c.hasVacantNeighbor(int(nb)) {
				c.front.RemoveDetach(int(nb))
			}
		}
	}
	return nil
}

// Detach marks an occupied surface site vacant and updates both frontier
// sets incrementally. It fails if the site is vacant or interior. Removing
// the final atom transitions the cluster to the terminal dissolved state.
func (c *Cluster) Detach(idx int) error {
	if c.occ[idx] == 0 {
		return fmt.Errorf("detach at %d: site already vacant", idx)
	}
	if !c.front.InDetach(idx) {
		return fmt.Errorf("detach at %d: site is interior, not on the surface", idx)
	}

	c.occ[idx] = 0
	c.atoms--
	c.front.RemoveDetach(idx)

	sx, sy, sz := c.AxisNeighborSums(idx)
	if sx+sy+sz > 0 {
		c.front.AddAttach(idx)
	}

	nbs := c.lat.Neighbors(idx)
	for _, nb := range nbs {
		if nb == noSite {
			continue
		}
		switch c.occ[nb] {
		case 0:
			// The vacated site may have been its last occupied contact.
			if !c.hasOccupiedNeighbor(int(nb)) {
				c.front.RemoveAttach(int(nb))
			}
		case 1:
			c.front.AddDetach(int(nb))
		}
	}

	if c.atoms == 0 {
		c.dissolved = true
		c.front.Reset()
	}
	return nil
}

func (c *Cluster) hasVacantNeighbor(idx int) bool {
	for _, nb := range c.lat.Neighbors(idx) {
		if nb != noSite && c.occ[nb] == 0 {
			return true
		}
	}
	return false
}

func (c *Cluster) hasOccupiedNeighbor(idx int) bool {
	for _, nb := range c.lat.Neighbors(idx) {
		if nb != noSite && c.occ[nb] == 1 {
			return true
		}
	}
	return false
}

// WouldDisconnect reports whether detaching idx would split the body into
// disconnected components. The walk starts at one occupied neighbor and
// stops as soon as every other occupied neighbor of idx is reached, so the
// common case touches only a small local patch.
func (c *Cluster) WouldDisconnect(idx int) bool {
	var anchors []int32
	for _, nb := range c.lat.Neighbors(idx) {
		if nb != noSite && c.occ[nb] == 1 {
			anchors = append(anchors, nb)
		}
	}
	if len(anchors) <= 1 {
		return false
	}

	pending := make(map[int32]bool, len(anchors)-1)
	for _, a := range anchors[1:] {
		pending[a] = true
	}
	visited := map[int32]bool{int32(idx): true, anchors[0]: true}
	queue := []int32{anchors[0]}

	for len(queue) > 0 && len(pending) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range c.lat.Neighbors(int(cur)) {
			if nb == noSite || c.occ[nb] != 1 || visited[nb] {
				continue
			}
			visited[nb] = true
			delete(pending, nb)
			queue = append(queue, nb)
		}
	}
	return len(pending) > 0
}

// Components returns the connected components of the occupied body, each as
// a list of site indices. Used by the dissolve-fragment policy after a
// splitting detach has been applied.
func (c *Cluster) Components() [][]int32 {
	visited := make(map[int32]bool)
	var comps [][]int32
	for idx, s := range c.occ {
		if s != 1 || visited[int32(idx)] {
			continue
		}
		var comp []int32
		queue := []int32{int32(idx)}
		visited[int32(idx)] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range c.lat.Neighbors(int(cur)) {
				if nb == noSite || c.occ[nb] != 1 || visited[nb] {
					continue
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// DissolveSites vacates the given sites wholesale and rebuilds the frontier.
// Returns the number of atoms removed. Used when a disconnected fragment
// dissolves back into the reservoir.
func (c *Cluster) DissolveSites(sites []int32) int64 {
	var removed int64
	for _, idx := range sites {
		if c.occ[idx] == 1 {
			c.occ[idx] = 0
			removed++
		}
	}
	c.RebuildFrontier()
	if c.atoms == 0 {
		c.dissolved = true
	}
	return removed
}

// Extents returns the number of distinct occupied planes along each axis,
// measured over the detach frontier (surface sites span the same planes as
// the body).
func (c *Cluster) Extents() (ex, ey, ez int) {
	n := c.front.DetachLen()
	if n == 0 {
		return 0, 0, 0
	}
	xs := make([]uint8, c.lat.NX)
	ys := make([]uint8, c.lat.NY)
	zs := make([]uint8, c.lat.NZ)
	for i := 0; i < n; i++ {
		x, y, z := c.lat.Coords(c.front.DetachAt(i))
		xs[x] = 1
		ys[y] = 1
		zs[z] = 1
	}
	for _, v := range xs {
		ex += int(v)
	}
	for _, v := range ys {
		ey += int(v)
	}
	for _, v := range zs {
		ez += int(v)
	}
	return
}

// SurfaceFaces counts exposed lattice faces per facet normal over the
// detach frontier. The sum of the three is the cluster surface area in
// face units.
func (c *Cluster) SurfaceFaces() (fx, fy, fz int64) {
	n := c.front.DetachLen()
	for i := 0; i < n; i++ {
		vx, vy, vz := c.ExposedFaces(c.front.DetachAt(i))
		fx += int64(vx)
		fy += int64(vy)
		fz += int64(vz)
	}
	return
}
