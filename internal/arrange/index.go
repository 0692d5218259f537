package arrange

import (
	"sort"

	"github.com/peterstace/simplefeatures/rtree"
)

// Index answers repeated point queries against a fixed region set. Regions
// are filtered by bounding box through an R-tree before the exact test.
type Index struct {
	regions []Region
	tree    *rtree.RTree
	tol     float64
}

// NewIndex bulk loads the bounds of regions. The slice is retained, not
// copied. Points within DefaultEpsilon of an edge count as on it.
func NewIndex(regions []Region) *Index {
	return newIndex(regions, DefaultEpsilon)
}

func newIndex(regions []Region, tol float64) *Index {
	items := make([]rtree.BulkItem, 0, len(regions))
	for i, r := range regions {
		if r.Bounds.IsEmpty() {
			continue
		}
		items = append(items, rtree.BulkItem{
			Box: rtree.Box{
				MinX: r.Bounds.X.Lo - tol,
				MinY: r.Bounds.Y.Lo - tol,
				MaxX: r.Bounds.X.Hi + tol,
				MaxY: r.Bounds.Y.Hi + tol,
			},
			RecordID: i,
		})
	}
	return &Index{regions: regions, tree: rtree.BulkLoad(items), tol: tol}
}

// Len is the number of indexed regions.
func (ix *Index) Len() int {
	return len(ix.regions)
}

// Containing returns every region containing p, smallest first.
func (ix *Index) Containing(p UV) []Region {
	var out []Region
	box := rtree.Box{MinX: p.U, MinY: p.V, MaxX: p.U, MaxY: p.V}
	_ = ix.tree.RangeSearch(box, func(id int) error {
		if regionContains(p, ix.regions[id], ix.tol) {
			out = append(out, ix.regions[id])
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return smaller(out[i], out[j]) })
	return out
}

// At returns the innermost region containing p.
func (ix *Index) At(p UV) (Region, bool) {
	rs := ix.Containing(p)
	if len(rs) == 0 {
		return Region{}, false
	}
	return rs[0], true
}

// Lookup finds a region by ID.
func (ix *Index) Lookup(id string) (Region, bool) {
	for _, r := range ix.regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
