package shape

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"isoplan/internal/arrange"
)

var (
	ErrNotFound  = errors.New("shape: not found")
	ErrNoRegion  = errors.New("no enclosed region found")
	ErrWrongKind = errors.New("shape: wrong kind")
	ErrLocked    = errors.New("shape: locked")
)

// DefaultFill is the colour used when a fill or face is created without one.
const DefaultFill = "#5b8def"

// Store owns the shapes of one drawing in insertion order, together with the
// region cache over its active lines. A Store is not safe for concurrent use.
type Store struct {
	ids    IDGen
	cache  *arrange.Cache
	order  []string
	shapes map[string]Shape
}

// NewStore returns an empty store. A nil ids uses RandomIDs; opts configure
// the arrangement engine.
func NewStore(ids IDGen, opts ...arrange.Option) *Store {
	if ids == nil {
		ids = RandomIDs{}
	}
	return &Store{
		ids:    ids,
		cache:  arrange.NewCache(arrange.New(opts...)),
		shapes: make(map[string]Shape),
	}
}

func (st *Store) add(s Shape) {
	b := s.base()
	b.id = st.ids.Next(s.Kind())
	st.order = append(st.order, b.id)
	st.shapes[b.id] = s
	Logger().Debug("shape: added", "id", b.id, "kind", s.Kind().String())
}

// AddLine draws a segment from a to b.
func (st *Store) AddLine(a, b UV) *Line {
	l := &Line{A: a, B: b}
	st.add(l)
	st.syncFills()
	return l
}

// AddLines draws every segment of segs.
func (st *Store) AddLines(segs []arrange.Segment) []*Line {
	out := make([]*Line, 0, len(segs))
	for _, s := range segs {
		l := &Line{A: s.A, B: s.B}
		st.add(l)
		out = append(out, l)
	}
	st.syncFills()
	return out
}

// AddPolygon draws a closed outline through pts.
func (st *Store) AddPolygon(pts []UV) (*Polygon, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("shape: polygon needs at least 3 points, got %d", len(pts))
	}
	p := &Polygon{Points: copyRing(pts)}
	st.add(p)
	st.syncFills()
	return p, nil
}

// AddMeasurement places a dimension line from a to b.
func (st *Store) AddMeasurement(a, b UV) *Measurement {
	m := &Measurement{A: a, B: b}
	st.add(m)
	return m
}

// Group bundles the shapes with the given IDs.
func (st *Store) Group(ids ...string) (*Group, error) {
	if len(ids) == 0 {
		return nil, errors.New("shape: empty group")
	}
	for _, id := range ids {
		if _, ok := st.shapes[id]; !ok {
			return nil, fmt.Errorf("group member %s: %w", id, ErrNotFound)
		}
	}
	g := &Group{Members: append([]string(nil), ids...)}
	st.add(g)
	return g, nil
}

// Remove deletes a shape. Removing a group leaves its members in place;
// removing a shape drops it from every group.
func (st *Store) Remove(id string) error {
	s, ok := st.shapes[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	delete(st.shapes, id)
	for i, o := range st.order {
		if o == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	for _, o := range st.shapes {
		if g, ok := o.(*Group); ok {
			g.Members = without(g.Members, id)
		}
	}
	Logger().Debug("shape: removed", "id", id, "kind", s.Kind().String())
	if affectsRegions(s) {
		st.syncFills()
	}
	return nil
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, o := range ids {
		if o != id {
			out = append(out, o)
		}
	}
	return out
}

// MoveLine sets new endpoints for a line.
func (st *Store) MoveLine(id string, a, b UV) error {
	l, err := st.line(id)
	if err != nil {
		return err
	}
	if l.Locked {
		return fmt.Errorf("move %s: %w", id, ErrLocked)
	}
	l.A, l.B = a, b
	st.syncFills()
	return nil
}

func (st *Store) line(id string) (*Line, error) {
	s, ok := st.shapes[id]
	if !ok {
		return nil, fmt.Errorf("line %s: %w", id, ErrNotFound)
	}
	l, ok := s.(*Line)
	if !ok {
		return nil, fmt.Errorf("%s is a %s: %w", id, s.Kind(), ErrWrongKind)
	}
	return l, nil
}

// SetHidden shows or hides a shape. Hidden lines and polygons stop
// enclosing regions.
func (st *Store) SetHidden(id string, hidden bool) error {
	s, ok := st.shapes[id]
	if !ok {
		return fmt.Errorf("hide %s: %w", id, ErrNotFound)
	}
	s.base().Hidden = hidden
	if affectsRegions(s) {
		st.syncFills()
	}
	return nil
}

// SetLocked locks or unlocks a shape. Locked lines and polygons are
// excluded from region detection and cannot be moved.
func (st *Store) SetLocked(id string, locked bool) error {
	s, ok := st.shapes[id]
	if !ok {
		return fmt.Errorf("lock %s: %w", id, ErrNotFound)
	}
	s.base().Locked = locked
	if affectsRegions(s) {
		st.syncFills()
	}
	return nil
}

func affectsRegions(s Shape) bool {
	switch s.(type) {
	case *Line, *Polygon:
		return true
	}
	return false
}

// Clear removes every shape.
func (st *Store) Clear() {
	st.order = nil
	st.shapes = make(map[string]Shape)
	st.cache.Invalidate()
}

// Get returns the shape with the given ID.
func (st *Store) Get(id string) (Shape, bool) {
	s, ok := st.shapes[id]
	return s, ok
}

// Len is the number of shapes.
func (st *Store) Len() int {
	return len(st.order)
}

// Shapes returns every shape in insertion order.
func (st *Store) Shapes() []Shape {
	out := make([]Shape, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.shapes[id])
	}
	return out
}

// Lines returns the active lines in insertion order.
func (st *Store) Lines() []*Line {
	var out []*Line
	for _, id := range st.order {
		if l, ok := st.shapes[id].(*Line); ok && l.active() {
			out = append(out, l)
		}
	}
	return out
}

// LastLine returns the most recently added line, active or not.
func (st *Store) LastLine() (*Line, bool) {
	for i := len(st.order) - 1; i >= 0; i-- {
		if l, ok := st.shapes[st.order[i]].(*Line); ok {
			return l, true
		}
	}
	return nil, false
}

// Segments is the line set region detection runs on: active lines followed
// by the edges of active polygons.
func (st *Store) Segments() []arrange.Segment {
	segs := arrange.SegmentsOf(st.Lines())
	for _, id := range st.order {
		if p, ok := st.shapes[id].(*Polygon); ok && !p.Hidden && !p.Locked {
			segs = append(segs, p.Edges()...)
		}
	}
	return segs
}

// Regions returns the arrangement of the current line set, recomputed only
// when the lines changed since the last call.
func (st *Store) Regions() arrange.Result {
	return st.cache.Result(st.Segments())
}

// RegionAt returns the innermost region containing p.
func (st *Store) RegionAt(p UV) (arrange.Region, bool) {
	return st.cache.Index(st.Segments()).At(p)
}

// Region looks a region up by ID.
func (st *Store) Region(id string) (arrange.Region, bool) {
	return st.cache.Index(st.Segments()).Lookup(id)
}

// Fills returns the fill regions in insertion order.
func (st *Store) Fills() []*FillRegion {
	var out []*FillRegion
	for _, id := range st.order {
		if f, ok := st.shapes[id].(*FillRegion); ok {
			out = append(out, f)
		}
	}
	return out
}

// FillAt fills the innermost region under p with color. Filling a region
// that already has a fill recolours it.
func (st *Store) FillAt(p UV, color string) (*FillRegion, error) {
	r, ok := st.RegionAt(p)
	if !ok {
		return nil, ErrNoRegion
	}
	if color == "" {
		color = DefaultFill
	}
	if _, err := colorful.Hex(color); err != nil {
		return nil, fmt.Errorf("fill colour %q: %w", color, err)
	}
	for _, f := range st.Fills() {
		if f.RegionID == r.ID {
			f.Color = color
			return f, nil
		}
	}
	f := &FillRegion{RegionID: r.ID}
	f.Color = color
	f.track(r)
	st.add(f)
	return f, nil
}

func (f *FillRegion) track(r arrange.Region) {
	f.Boundary = copyRing(r.Boundary)
	f.Holes = copyRings(r.Holes)
	f.Area = r.Area
}

// ConvertToFace freezes a region into a face. A fill on the region is
// replaced by the face and hands over its colour.
func (st *Store) ConvertToFace(regionID string) (*Face, error) {
	r, ok := st.Region(regionID)
	if !ok {
		return nil, fmt.Errorf("region %s: %w", regionID, ErrNoRegion)
	}
	face := &Face{
		Boundary: copyRing(r.Boundary),
		Holes:    copyRings(r.Holes),
		Source:   r.ID,
	}
	face.Color = DefaultFill
	for _, f := range st.Fills() {
		if f.RegionID == r.ID {
			face.Color = f.Color
			if err := st.Remove(f.ID()); err != nil {
				return nil, err
			}
		}
	}
	st.add(face)
	return face, nil
}

// syncFills re-resolves every fill against the current regions: fills whose
// region survived take its geometry, the rest are dropped.
func (st *Store) syncFills() {
	fills := st.Fills()
	if len(fills) == 0 {
		return
	}
	ix := st.cache.Index(st.Segments())
	for _, f := range fills {
		r, ok := ix.Lookup(f.RegionID)
		if !ok {
			_ = st.Remove(f.ID())
			Logger().Info("shape: fill dropped, region gone", "id", f.ID(), "region", f.RegionID)
			continue
		}
		f.track(r)
	}
	Logger().Debug("shape: fills refreshed", "fills", len(st.Fills()))
}
