package arrange

import (
	"log/slog"
	"math"
	"sort"
)

type halfEdge struct {
	from, to Key
	angle    float64
	idx      int // position in the angular order around from
	visited  bool
}

// faceCycle is a closed walk of half-edges, stored as the origin of each.
type faceCycle struct {
	keys   []Key
	pts    []UV
	signed float64
}

func (c faceCycle) area() float64 {
	return math.Abs(c.signed)
}

type traceResult struct {
	cycles     []faceCycle
	degenerate int
	abandoned  int
}

type dirKey struct {
	from, to Key
}

// traceFaces enumerates every face of g, the exterior of each connected
// component included. Leaving vertex to after arriving along from->to, the
// walk continues with the half-edge immediately clockwise of to->from, so
// bounded faces come out counter-clockwise and exteriors clockwise.
func traceFaces(g *Graph, log *slog.Logger) traceResult {
	var res traceResult
	edges := g.Edges()
	if len(edges) == 0 {
		return res
	}

	all := make([]*halfEdge, 0, 2*len(edges))
	byDir := make(map[dirKey]*halfEdge, 2*len(edges))
	around := make(map[Key][]*halfEdge)
	add := func(from, to Key) {
		a, b := g.pos[from], g.pos[to]
		h := &halfEdge{from: from, to: to, angle: math.Atan2(b.V-a.V, b.U-a.U)}
		all = append(all, h)
		byDir[dirKey{from, to}] = h
		around[from] = append(around[from], h)
	}
	for _, e := range edges {
		add(e.A, e.B)
		add(e.B, e.A)
	}
	for _, hs := range around {
		sort.Slice(hs, func(i, j int) bool {
			if hs[i].angle != hs[j].angle {
				return hs[i].angle < hs[j].angle
			}
			return hs[i].to.Less(hs[j].to)
		})
		for i, h := range hs {
			h.idx = i
		}
	}

	next := func(h *halfEdge) *halfEdge {
		rev, ok := byDir[dirKey{h.to, h.from}]
		if !ok {
			return nil
		}
		group := around[h.to]
		return group[(rev.idx-1+len(group))%len(group)]
	}

	for _, start := range all {
		if start.visited {
			continue
		}
		var loop []*halfEdge
		closed := false
		cur := start
		for steps := 0; steps <= len(all); steps++ {
			loop = append(loop, cur)
			cur.visited = true
			nxt := next(cur)
			if nxt == nil {
				break
			}
			if nxt == start {
				closed = true
				break
			}
			if nxt.visited {
				break
			}
			cur = nxt
		}
		if !closed {
			res.abandoned++
			log.Debug("arrange: abandoned face walk",
				"from", start.from.String(), "to", start.to.String(), "steps", len(loop))
			continue
		}
		if len(loop) < 3 {
			res.degenerate++
			continue
		}
		c := faceCycle{
			keys: make([]Key, len(loop)),
			pts:  make([]UV, len(loop)),
		}
		for i, h := range loop {
			c.keys[i] = h.from
			c.pts[i] = g.pos[h.from]
		}
		c.signed = signedArea(c.pts)
		res.cycles = append(res.cycles, c)
	}
	return res
}
