package arrange

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestGraphCollinearOverlap(t *testing.T) {
	g := New().Graph([]Segment{Seg(0, 0, 4, 0), Seg(2, 0, 6, 0)})
	test.T(t, g.NumVertices(), 4)
	test.T(t, g.NumEdges(), 3)
	for _, k := range g.Vertices() {
		test.That(t, g.Degree(k) <= 2, "overlap must not duplicate edges", k)
	}
}

func TestGraphTJunction(t *testing.T) {
	g := New().Graph([]Segment{Seg(0, 0, 4, 0), Seg(2, 0, 2, 3)})
	test.T(t, g.NumVertices(), 4)
	test.T(t, g.NumEdges(), 3)

	var junction Key
	found := false
	for _, k := range g.Vertices() {
		if g.Degree(k) == 3 {
			junction, found = k, true
		}
	}
	test.That(t, found, "no vertex of degree three")
	p, ok := g.Vertex(junction)
	test.That(t, ok)
	test.T(t, p, Pt(2, 0))
	test.T(t, len(g.Neighbors(junction)), 3)
}

func TestGraphCrossing(t *testing.T) {
	g := New().Graph([]Segment{Seg(0, 0, 4, 4), Seg(0, 4, 4, 0)})
	test.T(t, g.NumVertices(), 5)
	test.T(t, g.NumEdges(), 4)

	edges := g.Edges()
	test.T(t, len(edges), 4)
	for i, e := range edges {
		test.That(t, e.A.Less(e.B), "edge keys out of order")
		if i > 0 {
			test.That(t, !e.A.Less(edges[i-1].A), "edges out of order")
		}
	}
}

func TestGraphCrossingQuantized(t *testing.T) {
	// both segments must be split at the same crossing vertex
	g := New().Graph([]Segment{Seg(0, 0, 2, 1), Seg(0, 1, 2, 0)})
	test.T(t, g.NumVertices(), 5)
	for _, k := range g.Vertices() {
		if g.Degree(k) == 4 {
			p, _ := g.Vertex(k)
			test.Float(t, p.U, 1)
			test.Float(t, p.V, 0.5)
			return
		}
	}
	t.Fatal("crossing vertex missing")
}

func TestVertexSetMergesNeighbours(t *testing.T) {
	vs := newVertexSet(DefaultQuantum, DefaultEpsilon)
	a := vs.add(Pt(1.0000004, 2))
	b := vs.add(Pt(1.0000006, 2)) // rounds into the next cell
	test.T(t, a, b)
	test.T(t, vs.len(), 1)

	c := vs.add(Pt(1.5, 2))
	test.That(t, c != a)
	test.T(t, vs.at(c), Pt(1.5, 2))
}

func TestKeyOrder(t *testing.T) {
	test.That(t, Key{1, 5}.Less(Key{2, 0}))
	test.That(t, Key{1, 0}.Less(Key{1, 1}))
	test.That(t, !Key{1, 1}.Less(Key{1, 1}))
	test.String(t, Key{3, -4}.String(), "3:-4")
}

func TestTraceOrientation(t *testing.T) {
	g := New().Graph(rect(0, 0, 2, 2))
	tr := traceFaces(g, Logger())
	test.T(t, len(tr.cycles), 2)
	pos, neg := 0, 0
	for _, c := range tr.cycles {
		test.Float(t, c.area(), 4)
		if c.signed > 0 {
			pos++
		} else {
			neg++
		}
	}
	test.T(t, pos, 1)
	test.T(t, neg, 1)
	test.T(t, tr.abandoned, 0)
}

func TestTraceTree(t *testing.T) {
	// a tree has a single face whose walk covers every edge twice
	g := New().Graph([]Segment{Seg(0, 0, 2, 0), Seg(2, 0, 2, 2), Seg(2, 0, 4, 0)})
	tr := traceFaces(g, Logger())
	test.T(t, len(tr.cycles), 1)
	test.T(t, len(tr.cycles[0].keys), 6)
	test.Float(t, tr.cycles[0].signed, 0)
}
