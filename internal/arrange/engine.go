// Package arrange computes the planar arrangement of a set of line segments
// and extracts its enclosed regions.
//
// The pipeline runs one way: segments are snapped and split at every
// crossing into atomic edges, the edges form an undirected planar graph,
// half-edge walks over the graph trace every face, and the bounded faces are
// deduplicated, nested into holes and given content-derived identities.
//
// Coordinates are UV grid coordinates. Endpoints snap to Config.Snap
// (half-grid by default); computed crossings are quantized to
// Config.Quantum. Nothing here is robust against adversarial floating point
// input; degenerate pieces are dropped rather than reported as errors.
package arrange

// Result is the output of a full arrangement pass.
type Result struct {
	Regions     []Region
	Diagnostics Diagnostics
}

// Engine runs the arrangement pipeline with a fixed configuration. An Engine
// holds no state between calls and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New returns an engine configured by opts on top of DefaultConfig.
func New(opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Compute builds the arrangement of segs and resolves its regions. Equal
// line sets produce identical results regardless of order or orientation.
func (e *Engine) Compute(segs []Segment) Result {
	log := e.cfg.log()
	g, sr := e.graph(segs)
	if g.NumEdges() == 0 {
		return Result{}
	}
	tr := traceFaces(g, log)
	regions := resolveRegions(tr.cycles, e.cfg, log)
	res := Result{
		Regions: regions,
		Diagnostics: Diagnostics{
			EdgeCount:      g.NumEdges(),
			VertexCount:    g.NumVertices(),
			RegionCount:    len(regions),
			CycleCount:     len(tr.cycles),
			AbandonedWalks: tr.abandoned,
		},
	}
	log.Debug("arrange: computed",
		"segments", sr.segments,
		"intersections", sr.intersections,
		"vertices", res.Diagnostics.VertexCount,
		"edges", res.Diagnostics.EdgeCount,
		"cycles", res.Diagnostics.CycleCount,
		"degenerate", tr.degenerate,
		"abandoned", tr.abandoned,
		"regions", res.Diagnostics.RegionCount,
	)
	return res
}

// Graph returns the split arrangement graph of segs without tracing faces.
func (e *Engine) Graph(segs []Segment) *Graph {
	g, _ := e.graph(segs)
	return g
}

func (e *Engine) graph(segs []Segment) (*Graph, *splitResult) {
	sr := splitSegments(segs, e.cfg)
	return buildGraph(sr), sr
}

// RegionAt computes the arrangement of segs and returns the innermost region
// containing p.
func (e *Engine) RegionAt(segs []Segment, p UV) (Region, bool) {
	return smallestRegionContaining(e.Compute(segs).Regions, p, e.cfg.Epsilon)
}

// Compute runs a one-off engine built from opts.
func Compute(segs []Segment, opts ...Option) Result {
	return New(opts...).Compute(segs)
}
