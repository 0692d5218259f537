package arrange

import (
	"fmt"
	"math"
)

// Key identifies a vertex by its coordinates quantized to Config.Quantum.
type Key struct {
	I, J int64
}

// Less orders keys lexicographically.
func (k Key) Less(o Key) bool {
	if k.I != o.I {
		return k.I < o.I
	}
	return k.J < o.J
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.I, k.J)
}

// vertexSet deduplicates points. A point resolves to an existing vertex when
// it quantizes to the same cell, or lies within merge distance of a vertex in
// one of the eight neighbouring cells (two computations of the same crossing
// can straddle a cell boundary).
type vertexSet struct {
	quantum float64
	scale   float64
	merge   float64
	pos     map[Key]UV
}

func newVertexSet(quantum, eps float64) *vertexSet {
	scale := 1 / quantum
	if r := math.Round(scale); math.Abs(scale-r) < 1e-9*r {
		scale = r
	}
	return &vertexSet{quantum: quantum, scale: scale, merge: math.Max(eps, quantum), pos: make(map[Key]UV)}
}

// lattice maps a key back to coordinates. Dividing by an integral scale keeps
// grid points such as 0.5 exact.
func (vs *vertexSet) lattice(k Key) UV {
	return UV{U: float64(k.I) / vs.scale, V: float64(k.J) / vs.scale}
}

func (vs *vertexSet) keyOf(p UV) Key {
	return Key{
		I: int64(math.Round(p.U * vs.scale)),
		J: int64(math.Round(p.V * vs.scale)),
	}
}

// add registers p and returns the key of the vertex it resolves to.
func (vs *vertexSet) add(p UV) Key {
	k := vs.keyOf(p)
	if _, ok := vs.pos[k]; ok {
		return k
	}
	for di := int64(-1); di <= 1; di++ {
		for dj := int64(-1); dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			nk := Key{I: k.I + di, J: k.J + dj}
			if q, ok := vs.pos[nk]; ok && q.Dist(p) <= vs.merge {
				return nk
			}
		}
	}
	vs.pos[k] = vs.lattice(k)
	return k
}

func (vs *vertexSet) at(k Key) UV {
	return vs.pos[k]
}

func (vs *vertexSet) len() int {
	return len(vs.pos)
}
