package arrange

import (
	"errors"
	"fmt"
)

// ErrInteriorCrossing reports input the degree-2 loop path cannot handle:
// two segments meet somewhere other than a shared endpoint.
var ErrInteriorCrossing = errors.New("arrange: segments cross or touch away from shared endpoints")

// SimpleRegionAt is the lightweight click-to-fill path. It never splits
// segments; it follows connected components in which every vertex has
// degree two, treats each as a simple loop, nests loops by containment and
// returns the smallest loop containing p, or nil when none does.
//
// The path is only correct when no two segments cross, overlap or form a
// T-junction. That precondition is checked first and ErrInteriorCrossing is
// returned when it does not hold; callers should fall back to RegionAt,
// which handles every case.
func (e *Engine) SimpleRegionAt(segs []Segment, p UV) (*Region, error) {
	cfg := e.cfg
	vs := newVertexSet(cfg.Quantum, cfg.Epsilon)
	g := &Graph{pos: make(map[Key]UV), adj: make(map[Key]map[Key]struct{})}

	var work []*workSeg
	for _, s := range segs {
		a := UV{U: snap(s.A.U, cfg.Snap), V: snap(s.A.V, cfg.Snap)}
		b := UV{U: snap(s.B.U, cfg.Snap), V: snap(s.B.V, cfg.Snap)}
		ka, kb := vs.add(a), vs.add(b)
		if ka == kb {
			continue
		}
		w := &workSeg{a: vs.at(ka), b: vs.at(kb), ka: ka, kb: kb}
		work = append(work, w)
		g.link(ka, kb, w.a, w.b)
	}
	for i := range work {
		for j := i + 1; j < len(work); j++ {
			if k, bad := touchesInterior(work[i], work[j], vs, cfg); bad {
				return nil, fmt.Errorf("%w: at %v", ErrInteriorCrossing, vs.at(k))
			}
		}
	}

	var cands []*candidate
	seen := make(map[Key]bool)
	for _, start := range g.Vertices() {
		if seen[start] {
			continue
		}
		loop, ok := degreeTwoLoop(g, start, seen)
		if !ok {
			continue
		}
		c := faceCycle{keys: loop, pts: make([]UV, len(loop))}
		for i, k := range loop {
			c.pts[i] = g.pos[k]
		}
		c.signed = signedArea(c.pts)
		if c.signed < 0 {
			c = faceCycle{keys: reversedKeys(c.keys), pts: reversed(c.pts), signed: -c.signed}
		}
		if c.signed <= cfg.Epsilon {
			continue
		}
		cands = append(cands, &candidate{cycle: c, canon: canonical(c.keys), area: c.signed, parent: -1})
	}
	regions := nestRegions(cands, cfg)
	cfg.log().Debug("arrange: simple loops", "segments", len(work), "loops", len(regions))
	r, ok := smallestRegionContaining(regions, p, cfg.Epsilon)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// touchesInterior reports whether s1 and s2 share any point that is not an
// endpoint of both.
func touchesInterior(s1, s2 *workSeg, vs *vertexSet, cfg Config) (Key, bool) {
	a := &workSeg{a: s1.a, b: s1.b, ka: s1.ka, kb: s1.kb}
	b := &workSeg{a: s2.a, b: s2.b, ka: s2.ka, kb: s2.kb}
	if !intersectInto(a, b, vs, cfg) {
		return Key{}, false
	}
	shared := func(k Key) bool {
		return (k == s1.ka || k == s1.kb) && (k == s2.ka || k == s2.kb)
	}
	for _, k := range append(a.on, b.on...) {
		if !shared(k) {
			return k, true
		}
	}
	return Key{}, false
}

// degreeTwoLoop walks the component of start, marking it seen, and returns
// its vertices in order when every vertex has degree two.
func degreeTwoLoop(g *Graph, start Key, seen map[Key]bool) ([]Key, bool) {
	comp := []Key{start}
	seen[start] = true
	simple := true
	for i := 0; i < len(comp); i++ {
		k := comp[i]
		if g.Degree(k) != 2 {
			simple = false
		}
		for _, n := range g.Neighbors(k) {
			if !seen[n] {
				seen[n] = true
				comp = append(comp, n)
			}
		}
	}
	if !simple || len(comp) < 3 {
		return nil, false
	}
	loop := make([]Key, 0, len(comp))
	prev, cur := Key{}, start
	for i := 0; i < len(comp); i++ {
		loop = append(loop, cur)
		ns := g.Neighbors(cur)
		nxt := ns[0]
		if i > 0 && nxt == prev {
			nxt = ns[1]
		}
		prev, cur = cur, nxt
	}
	return loop, cur == start
}
