package arrange

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/golang/geo/r2"
)

// Region is a bounded face of the arrangement with its resolved holes.
type Region struct {
	// ID is derived from the canonical boundary and the sorted hole IDs.
	ID string
	// Boundary is counter-clockwise with at least three vertices. It is not
	// always a simple ring: it revisits a vertex where a nested loop touches
	// it at a single point (a pinch) or where a dangling edge is walked out
	// and back.
	Boundary []UV
	// Holes are the boundaries of the regions directly nested inside this
	// one, each counter-clockwise like any other boundary.
	Holes   [][]UV
	HoleIDs []string
	// Area is BoundaryArea minus the immediate hole areas, floored at zero.
	Area         float64
	BoundaryArea float64
	Depth        int
	// Parent is the ID of the enclosing region, empty at depth 0.
	Parent   string
	Centroid UV
	// Anchor is a point strictly inside the boundary.
	Anchor UV
	Bounds r2.Rect

	canon string
}

// Diagnostics summarizes one arrangement pass.
type Diagnostics struct {
	EdgeCount      int
	VertexCount    int
	RegionCount    int
	CycleCount     int
	AbandonedWalks int
}

type candidate struct {
	cycle  faceCycle
	canon  string
	area   float64
	anchor UV
	parent int
	depth  int
	kids   []int
	id     string
}

// resolveRegions turns raw face cycles into regions: the exterior is dropped,
// duplicate traces collapse, nesting is resolved and identities assigned.
func resolveRegions(cycles []faceCycle, cfg Config, log *slog.Logger) []Region {
	if len(cycles) <= 1 {
		return nil
	}

	// A lone loop traces the same area both ways round, and the two shoelace
	// sums can differ in the last bits; near ties go to the clockwise trace.
	outer := 0
	for i := 1; i < len(cycles); i++ {
		a, b := cycles[i], cycles[outer]
		switch {
		case sameArea(a.area(), b.area(), cfg.Epsilon):
			if a.signed < b.signed {
				outer = i
			}
		case a.area() > b.area():
			outer = i
		}
	}

	byCanon := make(map[string]int)
	var kept []faceCycle
	var canons []string
	for i, c := range cycles {
		if i == outer || c.area() <= cfg.Epsilon {
			continue
		}
		key := canonical(c.keys)
		if j, ok := byCanon[key]; ok {
			if kept[j].signed < 0 && c.signed > 0 {
				kept[j] = c
			}
			continue
		}
		byCanon[key] = len(kept)
		kept = append(kept, c)
		canons = append(canons, key)
	}

	var cands []*candidate
	for i, c := range kept {
		if c.signed > 0 {
			cands = append(cands, &candidate{cycle: c, canon: canons[i], area: c.signed, parent: -1})
		}
	}
	if len(cands) == 0 {
		for i, c := range kept {
			rc := faceCycle{
				keys:   reversedKeys(c.keys),
				pts:    reversed(c.pts),
				signed: -c.signed,
			}
			cands = append(cands, &candidate{cycle: rc, canon: canons[i], area: rc.signed, parent: -1})
		}
		if len(cands) > 0 {
			log.Debug("arrange: no positive cycles, using reversed negative traces", "count", len(cands))
		}
	}

	return nestRegions(cands, cfg)
}

func sameArea(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(a, b))
}

// nestRegions resolves parent/hole structure among bounded candidates and
// builds the public regions. A candidate's parent is the smallest strictly
// larger candidate whose boundary contains its anchor.
func nestRegions(cands []*candidate, cfg Config) []Region {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].area != cands[j].area {
			return cands[i].area < cands[j].area
		}
		return cands[i].canon < cands[j].canon
	})

	tol := lengthTol(cfg)
	for i, r := range cands {
		r.anchor = interiorPoint(r.cycle.pts, tol)
		for j := i + 1; j < len(cands); j++ {
			p := cands[j]
			if p.area <= r.area+cfg.Epsilon {
				continue
			}
			if ringContains(r.anchor, p.cycle.pts, tol) == inside {
				r.parent = j
				p.kids = append(p.kids, i)
				break
			}
		}
	}
	// Parents sit later in ascending-area order, so walking backwards fixes
	// depths top-down and walking forwards fixes IDs bottom-up.
	for i := len(cands) - 1; i >= 0; i-- {
		if p := cands[i].parent; p >= 0 {
			cands[i].depth = cands[p].depth + 1
		}
	}
	for _, c := range cands {
		holeIDs := make([]string, len(c.kids))
		for k, kid := range c.kids {
			holeIDs[k] = cands[kid].id
		}
		sort.Strings(holeIDs)
		c.id = regionID(c.canon, holeIDs)
	}

	regions := make([]Region, 0, len(cands))
	for _, c := range cands {
		r := Region{
			ID:           c.id,
			Boundary:     c.cycle.pts,
			BoundaryArea: c.area,
			Depth:        c.depth,
			Centroid:     centroid(c.cycle.pts),
			Anchor:       c.anchor,
			Bounds:       RingBounds(c.cycle.pts),
			canon:        c.canon,
		}
		if c.parent >= 0 {
			r.Parent = cands[c.parent].id
		}
		kids := append([]int(nil), c.kids...)
		sort.Slice(kids, func(a, b int) bool { return cands[kids[a]].id < cands[kids[b]].id })
		net := c.area
		for _, kid := range kids {
			r.Holes = append(r.Holes, cands[kid].cycle.pts)
			r.HoleIDs = append(r.HoleIDs, cands[kid].id)
			net -= cands[kid].area
		}
		r.Area = math.Max(0, net)
		regions = append(regions, r)
	}
	sortRegions(regions)
	return regions
}

// sortRegions orders outermost first, then larger first, then by ID.
func sortRegions(rs []Region) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Depth != rs[j].Depth {
			return rs[i].Depth < rs[j].Depth
		}
		if rs[i].BoundaryArea != rs[j].BoundaryArea {
			return rs[i].BoundaryArea > rs[j].BoundaryArea
		}
		return rs[i].ID < rs[j].ID
	})
}

// canonical encodes a cycle independently of where it starts and which way
// it runs: it begins at the smallest key and takes whichever direction reads
// smaller.
func canonical(keys []Key) string {
	n := len(keys)
	if n == 0 {
		return ""
	}
	lo := keys[0]
	for _, k := range keys[1:] {
		if k.Less(lo) {
			lo = k
		}
	}
	var best []Key
	try := func(seq []Key) {
		if best == nil || lessSeq(seq, best) {
			best = seq
		}
	}
	for i, k := range keys {
		if k != lo {
			continue
		}
		fwd := make([]Key, n)
		rev := make([]Key, n)
		for j := 0; j < n; j++ {
			fwd[j] = keys[(i+j)%n]
			rev[j] = keys[(i-j+n)%n]
		}
		try(fwd)
		try(rev)
	}
	var sb strings.Builder
	for i, k := range best {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k.String())
	}
	return sb.String()
}

func lessSeq(a, b []Key) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i].Less(b[i])
		}
	}
	return false
}

func reversedKeys(keys []Key) []Key {
	out := make([]Key, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

func regionID(canon string, holeIDs []string) string {
	h := sha256.New()
	h.Write([]byte(canon))
	for _, id := range holeIDs {
		h.Write([]byte{'|'})
		h.Write([]byte(id))
	}
	return "rgn-" + hex.EncodeToString(h.Sum(nil))[:16]
}

// interiorPoint returns the centroid when it lies strictly inside ring,
// otherwise the middle of the first interior span of a horizontal scanline.
func interiorPoint(ring []UV, tol float64) UV {
	c := centroid(ring)
	if ringContains(c, ring, tol) == inside {
		return c
	}
	vs := make([]float64, 0, len(ring))
	for _, p := range ring {
		vs = append(vs, p.V)
	}
	sort.Float64s(vs)
	lines := []float64{c.V}
	for i := 0; i+1 < len(vs); i++ {
		if vs[i+1]-vs[i] > tol {
			lines = append(lines, (vs[i]+vs[i+1])/2)
		}
	}
	for _, v := range lines {
		var xs []float64
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			if (a.V > v) == (b.V > v) {
				continue
			}
			xs = append(xs, a.U+(v-a.V)*(b.U-a.U)/(b.V-a.V))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			p := UV{U: (xs[i] + xs[i+1]) / 2, V: v}
			if ringContains(p, ring, tol) == inside {
				return p
			}
		}
	}
	return c
}
