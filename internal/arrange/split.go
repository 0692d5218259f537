package arrange

import (
	"math"
	"sort"

	"github.com/peterstace/simplefeatures/rtree"
)

// edgeKey is an undirected edge; A is never greater than B so both
// orientations of an edge collapse to one key.
type edgeKey struct {
	A, B Key
}

func newEdgeKey(a, b Key) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{A: a, B: b}
}

// workSeg is an input segment after snapping, with every vertex found on it.
type workSeg struct {
	a, b   UV
	ka, kb Key
	on     []Key
}

type splitResult struct {
	verts         *vertexSet
	edges         map[edgeKey]struct{}
	segments      int
	intersections int
}

// splitSegments snaps the input, finds every pairwise intersection and
// collinear overlap, and cuts each segment into atomic edges that meet other
// edges only at shared endpoints.
func splitSegments(segs []Segment, cfg Config) *splitResult {
	res := &splitResult{
		verts: newVertexSet(cfg.Quantum, cfg.Epsilon),
		edges: make(map[edgeKey]struct{}),
	}

	work := make([]*workSeg, 0, len(segs))
	for _, s := range segs {
		a := UV{U: snap(s.A.U, cfg.Snap), V: snap(s.A.V, cfg.Snap)}
		b := UV{U: snap(s.B.U, cfg.Snap), V: snap(s.B.V, cfg.Snap)}
		ka := res.verts.add(a)
		kb := res.verts.add(b)
		if ka == kb {
			continue
		}
		a, b = res.verts.at(ka), res.verts.at(kb)
		work = append(work, &workSeg{a: a, b: b, ka: ka, kb: kb, on: []Key{ka, kb}})
	}
	res.segments = len(work)
	if len(work) == 0 {
		return res
	}

	tol := lengthTol(cfg)
	items := make([]rtree.BulkItem, len(work))
	for i, w := range work {
		items[i] = rtree.BulkItem{Box: segBox(w, tol), RecordID: i}
	}
	tree := rtree.BulkLoad(items)
	for i, w := range work {
		_ = tree.RangeSearch(segBox(w, tol), func(j int) error {
			if j <= i {
				return nil
			}
			if intersectInto(w, work[j], res.verts, cfg) {
				res.intersections++
			}
			return nil
		})
	}

	for _, w := range work {
		for _, e := range w.atomicEdges(res.verts) {
			res.edges[e] = struct{}{}
		}
	}
	return res
}

func segBox(w *workSeg, tol float64) rtree.Box {
	return rtree.Box{
		MinX: math.Min(w.a.U, w.b.U) - tol,
		MinY: math.Min(w.a.V, w.b.V) - tol,
		MaxX: math.Max(w.a.U, w.b.U) + tol,
		MaxY: math.Max(w.a.V, w.b.V) + tol,
	}
}

// lengthTol is the absolute distance under which a point counts as lying on
// a segment.
func lengthTol(cfg Config) float64 {
	return math.Max(cfg.Epsilon, cfg.Quantum/2)
}

// intersectInto records the crossing or overlap points of s1 and s2 on both
// segments. It reports whether any point was found.
func intersectInto(s1, s2 *workSeg, vs *vertexSet, cfg Config) bool {
	r := s1.b.Sub(s1.a)
	s := s2.b.Sub(s2.a)
	qp := s2.a.Sub(s1.a)
	denom := r.Cross(s)
	rl, sl := r.Len(), s.Len()
	tol := lengthTol(cfg)

	if math.Abs(denom) <= cfg.Epsilon*rl*sl {
		// parallel: only collinear overlaps matter
		if math.Abs(qp.Cross(r))/rl > tol {
			return false
		}
		found := false
		for _, c := range []struct {
			p   UV
			k   Key
			dst *workSeg
		}{
			{s2.a, s2.ka, s1}, {s2.b, s2.kb, s1},
			{s1.a, s1.ka, s2}, {s1.b, s1.kb, s2},
		} {
			if onSegment(c.p, c.dst.a, c.dst.b, tol) {
				c.dst.on = append(c.dst.on, c.k)
				found = true
			}
		}
		return found
	}

	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	eps := cfg.Epsilon
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return false
	}

	// Touching at an endpoint must reuse that endpoint's vertex exactly.
	var k Key
	switch {
	case nearEnd(u, eps, 0, sl, tol):
		k = s2.ka
	case nearEnd(u, eps, 1, sl, tol):
		k = s2.kb
	case nearEnd(t, eps, 0, rl, tol):
		k = s1.ka
	case nearEnd(t, eps, 1, rl, tol):
		k = s1.kb
	default:
		k = vs.add(s1.a.Add(r.Mul(t)))
	}
	s1.on = append(s1.on, k)
	s2.on = append(s2.on, k)
	return true
}

// nearEnd reports whether parameter t lies within tolerance of end (0 or 1)
// on a segment of the given length.
func nearEnd(t, eps, end, length, tol float64) bool {
	return math.Abs(t-end) <= eps || math.Abs(t-end)*length <= tol
}

// onSegment reports whether p lies within tol of segment ab.
func onSegment(p, a, b UV, tol float64) bool {
	return distToSegment(p, a, b) <= tol
}

func distToSegment(p, a, b UV) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Mul(t)))
}

// atomicEdges orders the vertices found on w from its start and joins each
// consecutive distinct pair.
func (w *workSeg) atomicEdges(vs *vertexSet) []edgeKey {
	seen := make(map[Key]struct{}, len(w.on))
	keys := make([]Key, 0, len(w.on))
	for _, k := range w.on {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	dir := w.b.Sub(w.a)
	sort.SliceStable(keys, func(i, j int) bool {
		di := vs.at(keys[i]).Sub(w.a).Dot(dir)
		dj := vs.at(keys[j]).Sub(w.a).Dot(dir)
		if di != dj {
			return di < dj
		}
		return keys[i].Less(keys[j])
	})
	out := make([]edgeKey, 0, len(keys)-1)
	for i := 0; i+1 < len(keys); i++ {
		if keys[i] == keys[i+1] {
			continue
		}
		out = append(out, newEdgeKey(keys[i], keys[i+1]))
	}
	return out
}
