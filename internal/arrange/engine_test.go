package arrange

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/tdewolff/test"
)

func rect(u0, v0, u1, v1 float64) []Segment {
	return []Segment{
		Seg(u0, v0, u1, v0),
		Seg(u1, v0, u1, v1),
		Seg(u1, v1, u0, v1),
		Seg(u0, v1, u0, v0),
	}
}

func concat(sets ...[]Segment) []Segment {
	var out []Segment
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func ids(rs []Region) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	sort.Strings(out)
	return out
}

func byID(rs []Region, id string) Region {
	for _, r := range rs {
		if r.ID == id {
			return r
		}
	}
	return Region{}
}

var fixtures = map[string][]Segment{
	"rectangle": rect(0, 0, 4, 3),
	"donut":     concat(rect(0, 0, 10, 10), rect(3, 3, 5, 5)),
	"diagonals": concat(rect(0, 0, 4, 4), []Segment{Seg(0, 0, 4, 4), Seg(0, 4, 4, 0)}),
	"nested3":   concat(rect(0, 0, 12, 12), rect(2, 2, 10, 10), rect(4, 4, 8, 8)),
	"adjacent":  concat(rect(0, 0, 2, 2), rect(2, 0, 4, 2)),
	"disjoint":  concat(rect(0, 0, 2, 2), rect(5, 0, 7, 2)),
	"hash": {
		Seg(0, 1, 3, 1), Seg(0, 2, 3, 2),
		Seg(1, 0, 1, 3), Seg(2, 0, 2, 3),
	},
	"spike":   concat(rect(0, 0, 4, 4), []Segment{Seg(0, 2, 2, 2)}),
	"overlap": {Seg(0, 0, 4, 0), Seg(2, 0, 6, 0), Seg(6, 0, 6, 3), Seg(6, 3, 0, 3), Seg(0, 3, 0, 0)},
}

func TestComputeEmpty(t *testing.T) {
	res := Compute(nil)
	test.T(t, len(res.Regions), 0)
	test.T(t, res.Diagnostics, Diagnostics{})

	res = Compute([]Segment{Seg(1, 1, 1.1, 1.2)}) // collapses to one vertex after snapping
	test.T(t, len(res.Regions), 0)
	test.T(t, res.Diagnostics.EdgeCount, 0)
}

func TestComputeOpenPolyline(t *testing.T) {
	res := Compute([]Segment{Seg(0, 0, 4, 0), Seg(4, 0, 4, 4), Seg(4, 4, 0, 4)})
	test.T(t, len(res.Regions), 0)
	test.T(t, res.Diagnostics.EdgeCount, 3)
	test.T(t, res.Diagnostics.VertexCount, 4)
}

func TestComputeRectangle(t *testing.T) {
	res := Compute(fixtures["rectangle"])
	test.T(t, len(res.Regions), 1)
	r := res.Regions[0]
	test.Float(t, r.Area, 12)
	test.Float(t, r.BoundaryArea, 12)
	test.T(t, len(r.Holes), 0)
	test.T(t, r.Depth, 0)
	test.T(t, r.Parent, "")
	test.T(t, res.Diagnostics.EdgeCount, 4)
	test.T(t, res.Diagnostics.VertexCount, 4)
	test.T(t, res.Diagnostics.RegionCount, 1)
}

func TestComputeDonut(t *testing.T) {
	res := Compute(fixtures["donut"])
	test.T(t, len(res.Regions), 2)

	outer, inner := res.Regions[0], res.Regions[1]
	test.Float(t, outer.BoundaryArea, 100)
	test.T(t, len(outer.Holes), 1)
	test.T(t, outer.HoleIDs, []string{inner.ID})
	test.Float(t, outer.Area, 96)
	test.Float(t, signedArea(outer.Holes[0]), 4)

	test.Float(t, inner.Area, 4)
	test.T(t, len(inner.Holes), 0)
	test.T(t, inner.Parent, outer.ID)
	test.T(t, inner.Depth, 1)
}

func TestComputeDiagonals(t *testing.T) {
	res := Compute(fixtures["diagonals"])
	test.T(t, len(res.Regions), 4)
	sum := 0.0
	for _, r := range res.Regions {
		test.T(t, len(r.Boundary), 3)
		test.Float(t, r.Area, 4)
		sum += r.Area
	}
	test.Float(t, sum, 16)
	test.T(t, res.Diagnostics.VertexCount, 5)
	test.T(t, res.Diagnostics.EdgeCount, 8)
}

func TestComputeNestedDepths(t *testing.T) {
	res := Compute(fixtures["nested3"])
	test.T(t, len(res.Regions), 3)
	depths := map[float64]int{}
	nets := map[float64]float64{}
	for _, r := range res.Regions {
		depths[r.BoundaryArea] = r.Depth
		nets[r.BoundaryArea] = r.Area
		test.That(t, len(r.Holes) <= 1, "no double nesting")
	}
	test.T(t, depths, map[float64]int{144: 0, 64: 1, 16: 2})
	test.Float(t, nets[144], 80)
	test.Float(t, nets[64], 48)
	test.Float(t, nets[16], 16)
}

func TestComputeHashShape(t *testing.T) {
	// only the centre cell of a '#' is enclosed; its exterior walk has the
	// same absolute area and must be the one rejected
	res := Compute(fixtures["hash"])
	test.T(t, len(res.Regions), 1)
	test.Float(t, res.Regions[0].Area, 1)
	test.Float(t, res.Regions[0].Centroid.U, 1.5)
	test.Float(t, res.Regions[0].Centroid.V, 1.5)
}

func TestComputeSpike(t *testing.T) {
	res := Compute(fixtures["spike"])
	test.T(t, len(res.Regions), 1)
	test.Float(t, res.Regions[0].Area, 16)
}

func TestComputeCollinearOverlap(t *testing.T) {
	res := Compute(fixtures["overlap"])
	test.T(t, len(res.Regions), 1)
	test.Float(t, res.Regions[0].Area, 18)
}

func TestComputeDisjoint(t *testing.T) {
	res := Compute(fixtures["disjoint"])
	test.T(t, len(res.Regions), 2)
	for _, r := range res.Regions {
		test.T(t, r.Depth, 0)
		test.Float(t, r.Area, 4)
	}
}

// grids runs fixtures on snapping grids other than the default half grid.
// Coordinates are mapped by c*scale+offset onto the grid; the tenth grid has
// no exact binary representation.
var grids = []struct {
	name          string
	opts          []Option
	scale, offset float64
}{
	{"half", nil, 1, 0},
	{"tenth", []Option{WithSnap(0.1)}, 0.7, 1.1},
	{"quarter", []Option{WithSnap(0.25)}, 0.75, 0.25},
}

func onGrid(segs []Segment, scale, offset float64) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Seg(s.A.U*scale+offset, s.A.V*scale+offset, s.B.U*scale+offset, s.B.V*scale+offset)
	}
	return out
}

func TestRegionInvariants(t *testing.T) {
	for _, grid := range grids {
		for name, segs := range fixtures {
			t.Run(grid.name+"/"+name, func(t *testing.T) {
				res := Compute(onGrid(segs, grid.scale, grid.offset), grid.opts...)
				seen := map[string]bool{}
				for _, r := range res.Regions {
					test.That(t, signedArea(r.Boundary) > 0, "boundary must be counter-clockwise")
					test.That(t, len(r.Boundary) >= 3, "boundary needs three vertices")
					test.That(t, !seen[r.canon], "duplicate boundary", r.canon)
					seen[r.canon] = true
					test.That(t, r.Area >= 0)
					for _, h := range r.Holes {
						test.That(t, PointInPolygon(centroid(h), r.Boundary), "hole outside its parent")
					}
				}
				test.T(t, res.Diagnostics.RegionCount, len(res.Regions))
				test.T(t, len(res.Regions), len(Compute(segs).Regions), "region count differs from the half grid")
			})
		}
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, grid := range grids {
		for name, segs := range fixtures {
			t.Run(grid.name+"/"+name, func(t *testing.T) {
				segs := onGrid(segs, grid.scale, grid.offset)
				want := ids(Compute(segs, grid.opts...).Regions)
				for trial := 0; trial < 5; trial++ {
					shuffled := make([]Segment, len(segs))
					copy(shuffled, segs)
					rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
					for i := range shuffled {
						if rnd.Intn(2) == 0 {
							shuffled[i] = Segment{A: shuffled[i].B, B: shuffled[i].A}
						}
					}
					test.T(t, ids(Compute(shuffled, grid.opts...).Regions), want)
				}
			})
		}
	}
}

func TestNestingOnFineGrids(t *testing.T) {
	for _, grid := range grids {
		t.Run(grid.name, func(t *testing.T) {
			donut := Compute(onGrid(fixtures["donut"], grid.scale, grid.offset), grid.opts...)
			test.T(t, len(donut.Regions), 2)
			outer, inner := donut.Regions[0], donut.Regions[1]
			test.T(t, outer.HoleIDs, []string{inner.ID})
			test.T(t, inner.Depth, 1)
			test.FloatDiff(t, outer.Area, 96*grid.scale*grid.scale, 1e-9)

			nested := Compute(onGrid(fixtures["nested3"], grid.scale, grid.offset), grid.opts...)
			test.T(t, len(nested.Regions), 3)
			for i, r := range nested.Regions {
				test.T(t, r.Depth, i)
			}
		})
	}
}

func TestTenthGridRingStaysFillable(t *testing.T) {
	segs := concat(rect(1.1, 4.5, 7.8, 8.1), rect(1.4, 5.2, 2.2, 6.4))
	e := New(WithSnap(0.1))
	res := e.Compute(segs)
	test.T(t, len(res.Regions), 2)

	r, ok := e.RegionAt(segs, Pt(5, 7))
	test.That(t, ok, "ring around the inner rectangle has no region")
	test.T(t, len(r.Holes), 1)
	test.FloatDiff(t, r.Area, 24.12-0.96, 1e-9)
}

func TestTenthGridNestedSweep(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	e := New(WithSnap(0.1))
	for trial := 0; trial < 500; trial++ {
		u0 := 0.1 * float64(rnd.Intn(100))
		v0 := 0.1 * float64(rnd.Intn(100))
		w := 1.5 + 0.1*float64(rnd.Intn(80))
		h := 2.5 + 0.1*float64(rnd.Intn(80))
		segs := concat(rect(u0, v0, u0+w, v0+h), rect(u0+0.3, v0+0.7, u0+1.1, v0+1.9))
		res := e.Compute(segs)
		test.T(t, len(res.Regions), 2, "trial", trial, u0, v0, w, h)
		test.T(t, len(res.Regions[0].Holes), 1, "trial", trial)
		test.T(t, res.Regions[1].Depth, 1, "trial", trial)
	}
}

func TestIdentityIgnoresDisjointRegions(t *testing.T) {
	a := Compute(rect(0, 0, 2, 2)).Regions
	b := Compute(concat(rect(0, 0, 2, 2), rect(5, 5, 6, 6))).Regions
	test.T(t, len(a), 1)
	test.T(t, len(b), 2)
	test.That(t, byID(b, a[0].ID).ID != "", "region identity changed when an unrelated region was added")
}

func TestRemovingLineCollapsesRegions(t *testing.T) {
	withDiagonal := concat(rect(0, 0, 4, 4), []Segment{Seg(0, 0, 4, 4)})
	res := Compute(withDiagonal)
	test.T(t, len(res.Regions), 2)

	plain := Compute(rect(0, 0, 4, 4))
	test.T(t, len(plain.Regions), 1)
	test.Float(t, plain.Regions[0].Area, 16)
	for _, r := range res.Regions {
		test.That(t, r.ID != plain.Regions[0].ID)
	}

	open := Compute(rect(0, 0, 4, 4)[:3])
	test.T(t, len(open.Regions), 0)
}

func TestSnapping(t *testing.T) {
	// endpoints a little off the half grid still close the loop
	segs := []Segment{
		Seg(0.1, -0.1, 3.9, 0.2),
		Seg(4.1, 0, 4, 2.9),
		Seg(3.8, 3.1, 0.2, 3),
		Seg(0, 2.9, -0.2, 0.1),
	}
	res := Compute(segs)
	test.T(t, len(res.Regions), 1)
	test.Float(t, res.Regions[0].Area, 12)

	unit := Compute(segs, WithSnap(1))
	test.T(t, len(unit.Regions), 1)
	test.Float(t, unit.Regions[0].Area, 12)

	// a two-unit grid pulls the corners apart and nothing stays closed
	coarse := Compute(segs, WithSnap(2))
	test.T(t, len(coarse.Regions), 0)
}

func TestEngineConfig(t *testing.T) {
	e := New(WithSnap(0.25), WithEpsilon(1e-7), WithQuantum(1e-4), WithSnap(-1))
	test.Float(t, e.Config().Snap, 0.25)
	test.Float(t, e.Config().Epsilon, 1e-7)
	test.Float(t, e.Config().Quantum, 1e-4)
	test.T(t, New().Config().Snap, DefaultSnap)
}

func TestRegionAt(t *testing.T) {
	e := New()
	r, ok := e.RegionAt(fixtures["donut"], Pt(4, 4))
	test.That(t, ok)
	test.Float(t, r.Area, 4)

	r, ok = e.RegionAt(fixtures["donut"], Pt(1, 1))
	test.That(t, ok)
	test.Float(t, r.Area, 96)

	_, ok = e.RegionAt(fixtures["donut"], Pt(20, 1))
	test.That(t, !ok)
}

func TestPinchedBoundary(t *testing.T) {
	// a triangle touching the square's corner leaves the square's face
	// walking through (0,0) twice
	segs := concat(rect(0, 0, 4, 4), []Segment{Seg(0, 0, 2, 1), Seg(2, 1, 1, 2), Seg(1, 2, 0, 0)})
	res := Compute(segs)
	test.T(t, len(res.Regions), 2)

	e := New()
	tri, ok := e.RegionAt(segs, Pt(1, 1))
	test.That(t, ok)
	test.Float(t, tri.Area, 1.5)

	sq, ok := e.RegionAt(segs, Pt(3, 3))
	test.That(t, ok)
	test.Float(t, sq.Area+tri.Area, 16)
	corners := 0
	for _, p := range sq.Boundary {
		if p == Pt(0, 0) {
			corners++
		}
	}
	test.T(t, corners, 2)
	test.That(t, signedArea(sq.Boundary) > 0)
}
