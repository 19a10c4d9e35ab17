package state

import (
	"image/color"
	"log"
)

// PaintTarget is the surface the controller drives. It owns the bitmap;
// the controller only tells it how to paint and when to clear.
type PaintTarget interface {
	SetPaintStyle(c color.Color, width int)
	Clear()
}

// Controller owns the DrawingState and is the only place it changes.
type Controller struct {
	state    DrawingState
	target   PaintTarget
	OnChange func(DrawingState) // re-render hook, called after every handler
}

func NewController() *Controller {
	return &Controller{state: DefaultState()}
}

// Attach binds the surface and pushes the current paint style to it.
func (c *Controller) Attach(t PaintTarget) {
	c.target = t
	c.pushStyle()
}

// State returns a copy of the current state.
func (c *Controller) State() DrawingState { return c.state }

func (c *Controller) OnPointerDown() {
	c.state.IsDragging = true
	c.changed()
}

func (c *Controller) OnPointerUp() {
	c.state.IsDragging = false
	c.changed()
}

func (c *Controller) OnClear() {
	if c.target == nil {
		log.Println("[CONTROLLER] Clear requested before a surface was attached, ignoring")
		return
	}
	log.Println("[CONTROLLER] Clearing surface")
	c.target.Clear()
	c.changed()
}

func (c *Controller) OnColorPicked(value color.Color) {
	c.state.ActiveColor = Opaque(value)
	log.Printf("[CONTROLLER] Color set to %s", HexString(c.state.ActiveColor))
	c.pushStyle()
	c.changed()
}

func (c *Controller) OnWidthChanged(value float64) {
	c.state.StrokeWidth = ClampWidth(value)
	log.Printf("[CONTROLLER] Stroke width set to %d", c.state.StrokeWidth)
	c.pushStyle()
	c.changed()
}

// OnModeToggled switches erase mode. The previously picked color is not
// remembered: leaving erase mode always returns to the foreground color.
func (c *Controller) OnModeToggled() {
	if c.state.IsErasing {
		c.state.ActiveColor = Foreground
		c.state.IsErasing = false
	} else {
		c.state.ActiveColor = Background
		c.state.IsErasing = true
	}
	log.Printf("[CONTROLLER] Erase mode: %t", c.state.IsErasing)
	c.pushStyle()
	c.changed()
}

func (c *Controller) pushStyle() {
	if c.target != nil {
		c.target.SetPaintStyle(c.state.ActiveColor, c.state.StrokeWidth)
	}
}

func (c *Controller) changed() {
	if c.OnChange != nil {
		c.OnChange(c.state)
	}
}
