// Package drag turns pointer events on a layer into position updates.
//
// The controller is a two-state machine. PointerDown on a layer selects it and
// captures the pointer; every PointerMove while captured moves the layer so
// that the pointer keeps the offset it had at press time; PointerUp anywhere
// releases the capture.
package drag

import (
	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/layer"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Store is the slice of the layer store the controller needs.
type Store interface {
	Get(id layer.ID) (layer.Layer, bool)
	Update(id layer.ID, p layer.Patch)
	Select(id layer.ID)
}

// Controller owns the single active drag of an editing session.
type Controller struct {
	store  Store
	state  State
	target layer.ID
	offset common.Point
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Dragging() bool { return c.state == Dragging }

// Target returns the layer being dragged, if any.
func (c *Controller) Target() (layer.ID, bool) {
	if c.state != Dragging {
		return "", false
	}
	return c.target, true
}

// Offset returns the pointer-to-anchor offset captured at press time.
func (c *Controller) Offset() common.Point { return c.offset }

// PointerDown selects id and starts dragging it. The layer is selected before
// anything else is checked. A press while a drag is already active is ignored
// and reports false.
func (c *Controller) PointerDown(id layer.ID, p common.Point) bool {
	if c.state == Dragging {
		return false
	}
	c.store.Select(id)
	l, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.target = id
	c.offset = common.Point{X: p.X - l.X, Y: p.Y - l.Y}
	c.state = Dragging
	return true
}

// PointerMove repositions the dragged layer. No clamping: layers may leave the
// canvas. Reports whether an update was issued.
func (c *Controller) PointerMove(p common.Point) bool {
	if c.state != Dragging {
		return false
	}
	c.store.Update(c.target, layer.Move(p.X-c.offset.X, p.Y-c.offset.Y))
	return true
}

// PointerUp ends the drag wherever the pointer is.
func (c *Controller) PointerUp() {
	c.state = Idle
	c.target = ""
	c.offset = common.Point{}
}
