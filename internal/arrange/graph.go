package arrange

import "sort"

// Edge is an undirected atomic edge of the arrangement.
type Edge struct {
	A, B Key
}

// Graph is the planar graph induced by the split segments: vertex keys mapped
// to the set of directly connected keys.
type Graph struct {
	pos map[Key]UV
	adj map[Key]map[Key]struct{}
}

func buildGraph(sr *splitResult) *Graph {
	g := &Graph{
		pos: make(map[Key]UV),
		adj: make(map[Key]map[Key]struct{}),
	}
	for e := range sr.edges {
		g.link(e.A, e.B, sr.verts.at(e.A), sr.verts.at(e.B))
	}
	return g
}

func (g *Graph) link(a, b Key, pa, pb UV) {
	g.pos[a] = pa
	g.pos[b] = pb
	if g.adj[a] == nil {
		g.adj[a] = make(map[Key]struct{})
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[Key]struct{})
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// Vertex returns the coordinates of the vertex with key k.
func (g *Graph) Vertex(k Key) (UV, bool) {
	p, ok := g.pos[k]
	return p, ok
}

// Vertices returns every vertex key in ascending order.
func (g *Graph) Vertices() []Key {
	keys := make([]Key, 0, len(g.pos))
	for k := range g.pos {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Edges enumerates every undirected edge once, smaller key first, in
// ascending order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for a, ns := range g.adj {
		for b := range ns {
			if a.Less(b) {
				out = append(out, Edge{A: a, B: b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A.Less(out[j].A)
		}
		return out[i].B.Less(out[j].B)
	})
	return out
}

// Degree is the number of edges incident to k.
func (g *Graph) Degree(k Key) int {
	return len(g.adj[k])
}

// Neighbors returns the keys adjacent to k in ascending order.
func (g *Graph) Neighbors(k Key) []Key {
	out := make([]Key, 0, len(g.adj[k]))
	for n := range g.adj[k] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (g *Graph) NumVertices() int { return len(g.pos) }

func (g *Graph) NumEdges() int {
	n := 0
	for _, ns := range g.adj {
		n += len(ns)
	}
	return n / 2
}
