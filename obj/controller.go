package obj

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/platkit/scene"
	"github.com/milk9111/platkit/trigger"
)

// Controller is the moving actor whose contact with surfaces is tracked. It
// records the surfaces under its two ground probes and owns the registry of
// reactive objects it currently overlaps.
type Controller struct {
	Name   string
	Width  float64
	Height float64

	Body  *cp.Body
	Shape *cp.Shape

	Grounded    bool
	GroundGrace int

	primary   *scene.Node
	secondary *scene.Node

	reactives []trigger.Reactive
}

// NewController creates a controller with the given extents.
func NewController(name string, width, height float64) *Controller {
	return &Controller{Name: name, Width: width, Height: height}
}

// PrimarySurface returns the surface under the leading ground probe.
func (c *Controller) PrimarySurface() *scene.Node {
	if c == nil {
		return nil
	}
	return c.primary
}

// SecondarySurface returns the surface under the trailing ground probe.
func (c *Controller) SecondarySurface() *scene.Node {
	if c == nil {
		return nil
	}
	return c.secondary
}

// SetPrimarySurface records the surface under the leading ground probe.
func (c *Controller) SetPrimarySurface(n *scene.Node) {
	if c == nil {
		return
	}
	c.primary = n
}

// SetSecondarySurface records the surface under the trailing ground probe.
func (c *Controller) SetSecondarySurface(n *scene.Node) {
	if c == nil {
		return
	}
	c.secondary = n
}

// NotifyReactiveEnter adds a reactive object to the registry. Re-entering
// an already-registered object is a no-op.
func (c *Controller) NotifyReactiveEnter(r trigger.Reactive) {
	if c == nil || r == nil {
		return
	}
	for _, existing := range c.reactives {
		if existing == r {
			return
		}
	}
	c.reactives = append(c.reactives, r)
}

// NotifyReactiveExit removes a reactive object from the registry.
func (c *Controller) NotifyReactiveExit(r trigger.Reactive) {
	if c == nil || r == nil {
		return
	}
	for i, existing := range c.reactives {
		if existing == r {
			c.reactives = append(c.reactives[:i], c.reactives[i+1:]...)
			return
		}
	}
}

// Reactives returns a copy of the reactive-object registry.
func (c *Controller) Reactives() []trigger.Reactive {
	if c == nil {
		return nil
	}
	return append([]trigger.Reactive(nil), c.reactives...)
}

// Position returns the body position, or zero without a body.
func (c *Controller) Position() cp.Vector {
	if c == nil || c.Body == nil {
		return cp.Vector{}
	}
	return c.Body.Position()
}
