package composer

import (
	"fmt"
	"math"
	"testing"

	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/drag"
	"github.com/milk9111/totestudio/layer"
)

func seqIDs() func() layer.ID {
	n := 0
	return func() layer.ID {
		n++
		return layer.ID(fmt.Sprintf("l%d", n))
	}
}

// newTestComposer builds a 600x600 composer whose surface is the canvas
// itself at scale 1, so screen and canvas coordinates coincide.
func newTestComposer() (*Composer, *layer.Store) {
	s := layer.NewStore(layer.WithIDGenerator(seqIDs()))
	c := New(s, drag.NewController(s), Options{Width: 600, Height: 600})
	c.SetSurface(common.Rect{Width: 600, Height: 600}, 0)
	return c, s
}

// controlPoint maps the centre of a chrome rect to screen space for a
// composer whose viewport is the identity.
func controlPoint(l layer.Layer, r common.Rect) common.Point {
	c := r.Center()
	p := common.Point{X: l.X + c.X, Y: l.Y + c.Y}
	cx, cy := l.Center()
	return p.RotateAround(common.Point{X: cx, Y: cy}, l.Rotation)
}

func ids(ls []layer.Layer) []layer.ID {
	out := make([]layer.ID, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestPaintOrder(t *testing.T) {
	cases := []struct {
		name string
		pick int // index into [A,B,C], -1 = none
		want []layer.ID
	}{
		{"none_selected", -1, []layer.ID{"l1", "l2", "l3"}},
		{"last_selected", 2, []layer.ID{"l1", "l2", "l3"}},
		{"first_selected", 0, []layer.ID{"l2", "l3", "l1"}},
		{"middle_selected", 1, []layer.ID{"l1", "l3", "l2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, s := newTestComposer()
			added := []layer.ID{s.Add(layer.KindText, "A"), s.Add(layer.KindText, "B"), s.Add(layer.KindText, "C")}
			if tc.pick < 0 {
				s.ClearSelection()
			} else {
				s.Select(added[tc.pick])
			}
			got := ids(c.PaintOrder())
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSceneRenderSpecs(t *testing.T) {
	c, s := newTestComposer()
	txt := s.Add(layer.KindText, "Hi")
	s.Update(txt, layer.Font(40))
	emo := s.Add(layer.KindEmoji, "🔥")
	img := s.Add(layer.KindImage, "data:image/png;base64,AA==")

	sc := c.Scene(false)
	if sc.Chrome != nil {
		t.Fatalf("chrome must be omitted when not requested")
	}
	specs := map[layer.ID]RenderSpec{}
	for _, it := range sc.Items {
		specs[it.ID] = it.Spec
	}
	if sp := specs[txt]; sp.FontSize != 40 || !sp.Bold {
		t.Fatalf("text spec: %+v", sp)
	}
	if sp := specs[emo]; sp.FontSize != layer.EmojiSize*EmojiScale || sp.Bold {
		t.Fatalf("emoji spec: %+v", sp)
	}
	if sp := specs[img]; sp.Fit != FitContain {
		t.Fatalf("image spec: %+v", sp)
	}
	if last := sc.Items[len(sc.Items)-1]; last.ID != img || !last.Selected {
		t.Fatalf("selected layer must be painted last")
	}

	withChrome := c.Scene(true)
	if withChrome.Chrome == nil || withChrome.Chrome.ID != img {
		t.Fatalf("expected chrome for selected layer")
	}
}

func TestHitTest(t *testing.T) {
	c, s := newTestComposer()
	a := s.Add(layer.KindText, "a") // box (250,250)-(350,350)
	s.Update(a, layer.Move(100, 100))
	b := s.Add(layer.KindText, "b")
	s.Update(b, layer.Move(150, 150))
	s.ClearSelection()

	cases := []struct {
		name string
		pt   common.Point
		want Hit
	}{
		{"outside_surface", common.Point{X: -5, Y: 10}, Hit{Target: TargetOutside}},
		{"background", common.Point{X: 10, Y: 10}, Hit{Target: TargetBackground}},
		{"only_a", common.Point{X: 110, Y: 110}, Hit{Target: TargetLayer, Layer: a}},
		{"overlap_topmost_wins", common.Point{X: 175, Y: 175}, Hit{Target: TargetLayer, Layer: b}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.HitTest(tc.pt); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}

	t.Run("selected_raised_in_overlap", func(t *testing.T) {
		s.Select(a)
		if got := c.HitTest(common.Point{X: 175, Y: 175}); got.Layer != a {
			t.Fatalf("selected layer should win the overlap, got %+v", got)
		}
	})

	t.Run("controls_of_selected", func(t *testing.T) {
		s.Select(b)
		l, _ := s.Get(b)
		ch := chromeFor(l)
		rot := controlPoint(l, ch.Rotate)
		del := controlPoint(l, ch.Delete)
		if got := c.HitTest(rot); got.Target != TargetRotate || got.Layer != b {
			t.Fatalf("expected rotate control, got %+v", got)
		}
		if got := c.HitTest(del); got.Target != TargetDelete {
			t.Fatalf("expected delete control, got %+v", got)
		}
	})

	t.Run("rotated_layer_uses_local_space", func(t *testing.T) {
		c, s := newTestComposer()
		id := s.Add(layer.KindImage, "x")
		s.Update(id, layer.Move(100, 100)) // box 100..200, centre 150
		s.Update(id, layer.Rotate(45))
		s.ClearSelection()
		// the unrotated corner is outside the rotated diamond
		if got := c.HitTest(common.Point{X: 102, Y: 102}); got.Target != TargetBackground {
			t.Fatalf("corner of rotated box should miss, got %+v", got)
		}
		// a point past the unrotated edge but inside the diamond tip
		if got := c.HitTest(common.Point{X: 150, Y: 215}); got.Layer != id {
			t.Fatalf("diamond tip should hit, got %+v", got)
		}
	})

	t.Run("clipped_outside_canvas", func(t *testing.T) {
		c, s := newTestComposer()
		c.SetSurface(common.Rect{Width: 800, Height: 800}, 100) // canvas at 100..700
		id := s.Add(layer.KindText, "edge")
		s.Update(id, layer.Move(-50, 0))
		if got := c.HitTest(common.Point{X: 60, Y: 150}); got.Target != TargetBackground {
			t.Fatalf("layer part outside the canvas must not be hittable, got %+v", got)
		}
		if got := c.HitTest(common.Point{X: 110, Y: 150}); got.Layer != id {
			t.Fatalf("visible part should hit, got %+v", got)
		}
	})
}

func TestBackgroundClickClearsSelection(t *testing.T) {
	c, s := newTestComposer()
	s.Add(layer.KindText, "a")

	c.PointerDown(common.Point{X: 10, Y: 10})
	c.PointerUp(common.Point{X: 12, Y: 11})

	if _, ok := s.Selected(); ok {
		t.Fatalf("background click should clear selection")
	}
}

func TestClickOutsideSurfaceKeepsSelection(t *testing.T) {
	c, s := newTestComposer()
	id := s.Add(layer.KindText, "a")
	c.PointerDown(common.Point{X: -10, Y: 10})
	c.PointerUp(common.Point{X: -10, Y: 10})
	if sel, _ := s.Selected(); sel != id {
		t.Fatalf("sidebar clicks must not deselect")
	}
}

func TestDragReleasedOverBackgroundKeepsSelection(t *testing.T) {
	c, s := newTestComposer()
	id := s.Add(layer.KindText, "a")

	c.PointerDown(common.Point{X: 260, Y: 260})
	c.PointerMove(common.Point{X: 20, Y: 20})
	c.PointerUp(common.Point{X: 5, Y: 5})

	if sel, _ := s.Selected(); sel != id {
		t.Fatalf("a drag is not a background click")
	}
	if l, _ := s.Get(id); l.X != 10 || l.Y != 10 {
		t.Fatalf("expected (10,10), got (%v,%v)", l.X, l.Y)
	}
}

func TestDragContinuesOutsideSurface(t *testing.T) {
	c, s := newTestComposer()
	id := s.Add(layer.KindText, "a")
	c.PointerDown(common.Point{X: 300, Y: 300})
	if !c.PointerMove(common.Point{X: 900, Y: -100}) {
		t.Fatalf("moves outside the surface must still drive the drag")
	}
	c.PointerUp(common.Point{X: 900, Y: -100})
	if l, _ := s.Get(id); l.X != 850 || l.Y != -150 {
		t.Fatalf("expected (850,-150), got (%v,%v)", l.X, l.Y)
	}
}

func TestControlsRotateAndDelete(t *testing.T) {
	c, s := newTestComposer()
	other := s.Add(layer.KindText, "other")
	id := s.Add(layer.KindEmoji, "🔥")
	for i := 0; i < 24; i++ {
		// the controls rotate with the layer
		l, _ := s.Get(id)
		rot := controlPoint(l, chromeFor(l).Rotate)
		c.PointerDown(rot)
		if got := c.PointerUp(rot); got.Target != TargetRotate {
			t.Fatalf("expected rotate click, got %+v", got)
		}
	}
	l, _ := s.Get(id)
	if l.Rotation != 360 {
		t.Fatalf("expected 360 after 24 steps, got %v", l.Rotation)
	}
	if sel, _ := s.Selected(); sel != id {
		t.Fatalf("rotate must not reach the background handler")
	}
	if l.X != layer.DefaultX {
		t.Fatalf("pressing a control must not move the layer")
	}

	del := controlPoint(l, chromeFor(l).Delete)
	c.PointerDown(del)
	c.PointerUp(del)
	if _, ok := s.Get(id); ok {
		t.Fatalf("delete control should remove the layer")
	}
	if _, ok := s.Get(other); !ok {
		t.Fatalf("other layer must survive")
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("delete clears selection")
	}
}

func TestViewportMapping(t *testing.T) {
	v := FitViewport(common.Rect{X: 320, Y: 80, Width: 1000, Height: 400}, 600, 600, 20)
	if v.Scale != 0.6 {
		t.Fatalf("expected scale 0.6, got %v", v.Scale)
	}
	p := common.Point{X: 123, Y: 45}
	back := v.ToCanvas(v.ToScreen(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Fatalf("round trip drifted: %+v", back)
	}

	big := FitViewport(common.Rect{Width: 2000, Height: 2000}, 600, 600, 0)
	if big.Scale != 1 || big.OffsetX != 700 {
		t.Fatalf("canvas should not upscale and should centre: %+v", big)
	}
}

func TestScaledViewportDrag(t *testing.T) {
	s := layer.NewStore(layer.WithOrigin(50, 50))
	c := New(s, drag.NewController(s), Options{Width: 600, Height: 600})
	c.SetSurface(common.Rect{X: 0, Y: 0, Width: 300, Height: 300}, 0) // scale 0.5
	id := s.Add(layer.KindEmoji, "🔥")

	c.PointerDown(common.Point{X: 50, Y: 50}) // canvas (100,100)
	c.PointerMove(common.Point{X: 70, Y: 80}) // canvas (140,160)
	c.PointerUp(common.Point{X: 70, Y: 80})

	if l, _ := s.Get(id); l.X != 90 || l.Y != 110 {
		t.Fatalf("expected (90,110) in canvas space, got (%v,%v)", l.X, l.Y)
	}
}

// The end-to-end editing flow: add emoji and text, drag the emoji, delete it.
func TestEditingScenario(t *testing.T) {
	s := layer.NewStore(layer.WithOrigin(50, 50), layer.WithIDGenerator(seqIDs()))
	c := New(s, drag.NewController(s), Options{Width: 600, Height: 600})
	c.SetSurface(common.Rect{Width: 600, Height: 600}, 0)

	emoji := s.Add(layer.KindEmoji, "🔥")
	text := s.Add(layer.KindText, "Hi")
	if l, _ := s.Get(text); l.FontSize != 24 {
		t.Fatalf("expected font size 24")
	}
	// move the text away so the press lands on the emoji alone
	s.Update(text, layer.Move(400, 400))
	s.Select(emoji)

	c.PointerDown(common.Point{X: 100, Y: 100})
	c.PointerMove(common.Point{X: 120, Y: 130})
	c.PointerMove(common.Point{X: 140, Y: 160})
	c.PointerUp(common.Point{X: 140, Y: 160})

	l, _ := s.Get(emoji)
	if l.X != 90 || l.Y != 110 {
		t.Fatalf("expected emoji at (90,110), got (%v,%v)", l.X, l.Y)
	}

	c.Delete(emoji)
	all := s.All()
	if len(all) != 1 || all[0].ID != text {
		t.Fatalf("expected only the text layer, got %+v", all)
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected nothing selected")
	}
}
