package arrange

type containment int

const (
	outside containment = iota
	onEdge
	inside
)

// ringContains classifies p against a closed ring using ray casting, with an
// explicit check for points within tol of an edge.
func ringContains(p UV, ring []UV, tol float64) containment {
	n := len(ring)
	if n < 3 {
		return outside
	}
	in := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if distToSegment(p, a, b) <= tol {
			return onEdge
		}
		if (a.V > p.V) != (b.V > p.V) {
			x := a.U + (p.V-a.V)*(b.U-a.U)/(b.V-a.V)
			if p.U < x {
				in = !in
			}
		}
	}
	if in {
		return inside
	}
	return outside
}

// PointInPolygon reports whether p is inside boundary. Points lying on an
// edge, within DefaultEpsilon, count as inside: clicks land on edges often.
func PointInPolygon(p UV, boundary []UV) bool {
	return ringContains(p, boundary, DefaultEpsilon) != outside
}

// RegionContains reports whether p lies in r: inside its boundary and not
// strictly inside any of its holes. A point on a hole's edge belongs to r.
func RegionContains(p UV, r Region) bool {
	return regionContains(p, r, DefaultEpsilon)
}

func regionContains(p UV, r Region, tol float64) bool {
	if !r.Bounds.IsEmpty() && !r.Bounds.ExpandedByMargin(tol).ContainsPoint(p.r2()) {
		return false
	}
	if ringContains(p, r.Boundary, tol) == outside {
		return false
	}
	for _, h := range r.Holes {
		if ringContains(p, h, tol) == inside {
			return false
		}
	}
	return true
}

// SmallestRegionContaining returns the innermost region containing p: of all
// containing regions the one with the smallest boundary area.
func SmallestRegionContaining(regions []Region, p UV) (Region, bool) {
	return smallestRegionContaining(regions, p, DefaultEpsilon)
}

func smallestRegionContaining(regions []Region, p UV, tol float64) (Region, bool) {
	best := -1
	for i := range regions {
		if !regionContains(p, regions[i], tol) {
			continue
		}
		if best < 0 || smaller(regions[i], regions[best]) {
			best = i
		}
	}
	if best < 0 {
		return Region{}, false
	}
	return regions[best], true
}

func smaller(a, b Region) bool {
	if a.BoundaryArea != b.BoundaryArea {
		return a.BoundaryArea < b.BoundaryArea
	}
	return a.ID < b.ID
}
