package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"

	"isoplan/internal/arrange"
)

func donut() []arrange.Segment {
	return []arrange.Segment{
		arrange.Seg(0, 0, 10, 0), arrange.Seg(10, 0, 10, 10),
		arrange.Seg(10, 10, 0, 10), arrange.Seg(0, 10, 0, 0),
		arrange.Seg(3, 3, 5, 3), arrange.Seg(5, 3, 5, 5),
		arrange.Seg(5, 5, 3, 5), arrange.Seg(3, 5, 3, 3),
	}
}

func near(t *testing.T, got color.Color, want string) {
	t.Helper()
	w, err := parseColor(want)
	test.Error(t, err)
	r1, g1, b1, _ := got.RGBA()
	r2, g2, b2, _ := w.RGBA()
	diff := func(a, b uint32) bool { return a>>8 > b>>8+2 || b>>8 > a>>8+2 }
	test.That(t, !diff(r1, r2) && !diff(g1, g2) && !diff(b1, b2), "colour", got, "want", want)
}

func TestProjectRoundTrip(t *testing.T) {
	for _, p := range []Projection{Iso, Plan} {
		t.Run(p.String(), func(t *testing.T) {
			uv := arrange.Pt(3.5, -2)
			x, y := p.Project(uv)
			back := p.Unproject(x, y)
			test.Float(t, back.U, uv.U)
			test.Float(t, back.V, uv.V)
		})
	}
	x, y := Iso.Project(arrange.Pt(1, 1))
	test.Float(t, x, 0)
	test.Float(t, y, 1)
}

func TestRenderHoles(t *testing.T) {
	segs := donut()
	res := arrange.Compute(segs)
	outer := res.Regions[0]
	sc := Scene{Segments: segs, Regions: res.Regions, Fills: map[string]string{outer.ID: "#ff0000"}}

	img, err := Render(sc, WithSize(100, 100), WithProjection(Plan), WithAutoFill(false))
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 100)

	near(t, img.At(29, 70), "#ff0000") // u=1, v=1
	near(t, img.At(44, 55), "#10243e") // inside the hole
	near(t, img.At(2, 2), "#10243e")   // outside everything

	// depth colouring fills the hole with the inner region's colour
	img, err = Render(Scene{Segments: segs, Regions: res.Regions}, WithSize(100, 100), WithProjection(Plan))
	test.Error(t, err)
	near(t, img.At(29, 70), DepthColor(0))
	near(t, img.At(44, 55), DepthColor(1))
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(Scene{}, WithColors("nope", "#ffffff"))
	test.That(t, err != nil)

	res := arrange.Compute(donut())
	_, err = Render(Scene{Regions: res.Regions, Fills: map[string]string{res.Regions[0].ID: "#zz"}})
	test.That(t, err != nil)
}

func TestRenderEmpty(t *testing.T) {
	img, err := Render(Scene{}, WithSize(10, 20))
	test.Error(t, err)
	test.T(t, img.Bounds().Dy(), 20)
	near(t, img.At(5, 5), "#10243e")
}

func TestSavePNG(t *testing.T) {
	res := arrange.Compute(donut())
	p := filepath.Join(t.TempDir(), "out.png")
	test.Error(t, SavePNG(p, Scene{Segments: donut(), Regions: res.Regions}, WithLabels(true), WithLineWidth(2)))

	var buf bytes.Buffer
	img, err := Render(Scene{Segments: donut()})
	test.Error(t, err)
	test.Error(t, WritePNG(&buf, img))
	dec, err := png.Decode(&buf)
	test.Error(t, err)
	test.T(t, dec.Bounds(), img.Bounds())
}

func TestDepthColorCycles(t *testing.T) {
	test.String(t, DepthColor(len(Palette)), Palette[0])
}
