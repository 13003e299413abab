// Package composer is the single canvas surface: it decides paint order,
// hit-tests pointer input against layers and their floating controls, and
// routes the result to the layer store and the drag controller.
package composer

import (
	"go.uber.org/zap"

	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/drag"
	"github.com/milk9111/totestudio/layer"
)

// DefaultRotateStep is the rotation applied by one press of the rotate control.
const DefaultRotateStep = 15.0

// Target is what a pointer event landed on.
type Target int

const (
	// TargetOutside is anything outside the composer surface (side panels).
	TargetOutside Target = iota
	// TargetBackground is the composer's own surface, base artwork included.
	TargetBackground
	TargetLayer
	TargetRotate
	TargetDelete
)

func (t Target) String() string {
	switch t {
	case TargetOutside:
		return "outside"
	case TargetBackground:
		return "background"
	case TargetLayer:
		return "layer"
	case TargetRotate:
		return "rotate"
	case TargetDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hit is a resolved pointer target.
type Hit struct {
	Target Target
	Layer  layer.ID
}

// Options configures a Composer.
type Options struct {
	Width      float64
	Height     float64
	RotateStep float64
	Logger     *zap.Logger
}

// Composer owns the canvas geometry and input routing for one session.
type Composer struct {
	store      *layer.Store
	drag       *drag.Controller
	width      float64
	height     float64
	rotateStep float64
	log        *zap.Logger

	surface common.Rect
	view    Viewport

	// press is the target captured at pointer-down, used to detect clicks.
	press *Hit
}

func New(store *layer.Store, ctl *drag.Controller, opts Options) *Composer {
	if opts.RotateStep == 0 {
		opts.RotateStep = DefaultRotateStep
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := &Composer{
		store:      store,
		drag:       ctl,
		width:      opts.Width,
		height:     opts.Height,
		rotateStep: opts.RotateStep,
		log:        opts.Logger,
	}
	c.surface = common.Rect{Width: opts.Width, Height: opts.Height}
	c.view = Viewport{Scale: 1}
	return c
}

func (c *Composer) Size() (float64, float64) { return c.width, c.height }

// SetSurface places the composer on screen. The canvas is centred inside the
// surface and scaled to fit it.
func (c *Composer) SetSurface(area common.Rect, margin float64) {
	c.surface = area
	c.view = FitViewport(area, c.width, c.height, margin)
}

func (c *Composer) Surface() common.Rect { return c.surface }

func (c *Composer) Viewport() Viewport { return c.view }

// CanvasRect is the canvas in screen space.
func (c *Composer) CanvasRect() common.Rect {
	tl := c.view.ToScreen(common.Point{})
	s := c.view.scale()
	return common.Rect{X: tl.X, Y: tl.Y, Width: c.width * s, Height: c.height * s}
}

// PaintOrder is insertion order with the selected layer moved to the end.
func (c *Composer) PaintOrder() []layer.Layer {
	all := c.store.All()
	sel, ok := c.store.Selected()
	if !ok {
		return all
	}
	out := make([]layer.Layer, 0, len(all))
	var top *layer.Layer
	for i := range all {
		if all[i].ID == sel {
			top = &all[i]
			continue
		}
		out = append(out, all[i])
	}
	if top != nil {
		out = append(out, *top)
	}
	return out
}

// Scene builds the render list. Chrome is included only when asked for, so
// snapshot captures can leave the selection ring and controls out.
func (c *Composer) Scene(includeChrome bool) Scene {
	order := c.PaintOrder()
	sel, hasSel := c.store.Selected()
	sc := Scene{Width: c.width, Height: c.height, Items: make([]Item, 0, len(order))}
	for _, l := range order {
		selected := hasSel && l.ID == sel
		sc.Items = append(sc.Items, Item{ID: l.ID, Spec: SpecFor(l), Selected: selected})
		if selected && includeChrome {
			ch := chromeFor(l)
			sc.Chrome = &ch
		}
	}
	return sc
}

// HitTest resolves a screen point. Layers are tested topmost first, the
// selected layer's controls before its box. Anything on the surface that is
// not a layer is background; parts of layers outside the canvas are clipped.
func (c *Composer) HitTest(screen common.Point) Hit {
	if !c.surface.Contains(screen) {
		return Hit{Target: TargetOutside}
	}
	p := c.view.ToCanvas(screen)
	if !(common.Rect{Width: c.width, Height: c.height}).Contains(p) {
		return Hit{Target: TargetBackground}
	}

	order := c.PaintOrder()
	sel, hasSel := c.store.Selected()
	for i := len(order) - 1; i >= 0; i-- {
		l := order[i]
		box := common.Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
		local := toLocal(box, l.Rotation, p)
		if hasSel && l.ID == sel {
			ch := chromeFor(l)
			switch {
			case ch.Rotate.Contains(local):
				return Hit{Target: TargetRotate, Layer: l.ID}
			case ch.Delete.Contains(local):
				return Hit{Target: TargetDelete, Layer: l.ID}
			case ch.Bar.Contains(local):
				// the bar belongs to the layer
				return Hit{Target: TargetLayer, Layer: l.ID}
			}
		}
		if local.X >= 0 && local.Y >= 0 && local.X < l.Width && local.Y < l.Height {
			return Hit{Target: TargetLayer, Layer: l.ID}
		}
	}
	return Hit{Target: TargetBackground}
}

// PointerDown handles a press. A press on a layer selects it and starts a
// drag; presses on controls and background are remembered so the release can
// complete a click.
func (c *Composer) PointerDown(screen common.Point) Hit {
	if id, ok := c.drag.Target(); ok {
		return Hit{Target: TargetLayer, Layer: id}
	}
	h := c.HitTest(screen)
	c.press = nil
	switch h.Target {
	case TargetOutside:
		return h
	case TargetLayer:
		c.drag.PointerDown(h.Layer, c.view.ToCanvas(screen))
	}
	c.press = &h
	return h
}

// PointerMove forwards the pointer to an active drag, wherever it is.
func (c *Composer) PointerMove(screen common.Point) bool {
	if !c.drag.Dragging() {
		return false
	}
	return c.drag.PointerMove(c.view.ToCanvas(screen))
}

// PointerUp ends any drag and completes a click when the release lands on the
// same target as the press. It returns the clicked target, or TargetOutside
// when no click happened.
func (c *Composer) PointerUp(screen common.Point) Hit {
	c.drag.PointerUp()
	press := c.press
	c.press = nil
	if press == nil {
		return Hit{Target: TargetOutside}
	}
	h := c.HitTest(screen)
	if h != *press {
		return Hit{Target: TargetOutside}
	}
	switch h.Target {
	case TargetBackground:
		c.store.ClearSelection()
	case TargetRotate:
		c.rotate(h.Layer)
	case TargetDelete:
		c.Delete(h.Layer)
	}
	return h
}

// RotateSelected applies one rotate step to the selected layer.
func (c *Composer) RotateSelected() {
	if id, ok := c.store.Selected(); ok {
		c.rotate(id)
	}
}

// DeleteSelected removes the selected layer.
func (c *Composer) DeleteSelected() {
	if id, ok := c.store.Selected(); ok {
		c.Delete(id)
	}
}

// Delete removes a layer; selection is cleared by the store.
func (c *Composer) Delete(id layer.ID) {
	c.store.Remove(id)
	c.log.Debug("layer deleted", zap.String("layer", string(id)))
}

func (c *Composer) rotate(id layer.ID) {
	l, ok := c.store.Get(id)
	if !ok {
		return
	}
	c.store.Update(id, layer.Rotate(l.Rotation+c.rotateStep))
	c.log.Debug("layer rotated", zap.String("layer", string(id)), zap.Float64("rotation", l.Rotation+c.rotateStep))
}
