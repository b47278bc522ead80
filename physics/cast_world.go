package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/platkit/obj"
	"github.com/milk9111/platkit/scene"
	"github.com/milk9111/platkit/trigger"
)

const (
	gravity     = 900.0
	probeReach  = 4.0 // how far past the feet the ground probes extend
	graceFrames = 6
)

// CastWorld owns the chipmunk space, the static surface shapes built from a
// level, and the per-tick ground probes that feed surface triggers.
type CastWorld struct {
	space *cp.Space
	level *obj.Level
	root  *scene.Node

	shapeToSurface map[*cp.Shape]*scene.Node
	surfaces       []SurfaceRef
	controllers    []*obj.Controller
	nextGroup      uint
}

// SurfaceRef pairs a surface node with the level rectangle it was built
// from.
type SurfaceRef struct {
	Node    *scene.Node
	Surface obj.Surface
}

// NewCastWorld builds a cast world for level, attaching one surface node
// with a SurfaceTrigger per merged solid rectangle under root.
func NewCastWorld(level *obj.Level, root *scene.Node) *CastWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &CastWorld{
		space:          space,
		level:          level,
		root:           root,
		shapeToSurface: make(map[*cp.Shape]*scene.Node),
	}
	w.buildSurfaces()
	return w
}

// Space returns the underlying chipmunk space.
func (w *CastWorld) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Root returns the node all surface nodes are parented under.
func (w *CastWorld) Root() *scene.Node {
	if w == nil {
		return nil
	}
	return w.root
}

func (w *CastWorld) buildSurfaces() {
	if w == nil || w.space == nil || w.level == nil || w.root == nil {
		return
	}
	for i, s := range w.level.Surfaces() {
		name := fmt.Sprintf("surface_%d", i)
		if s.OneWay {
			name = fmt.Sprintf("oneway_%d", i)
		}
		node := scene.NewNode(name)
		node.Collider = true
		node.Position = cp.Vector{X: s.Rect.CenterX(), Y: s.Rect.CenterY()}
		w.root.AddChild(node)

		trig := trigger.NewSurfaceTrigger()
		if s.OneWay {
			trig.CollisionRules = append(trig.CollisionRules, oneWayRule)
		}
		node.AddComponent(trig)

		bb := cp.BB{L: s.Rect.X, B: s.Rect.Y, R: s.Rect.X + s.Rect.Width, T: s.Rect.Y + s.Rect.Height}
		shape := cp.NewBox2(w.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		w.space.AddShape(shape)
		w.shapeToSurface[shape] = node
		w.surfaces = append(w.surfaces, SurfaceRef{Node: node, Surface: s})
	}
}

// SurfaceList returns every surface node with its rectangle, in build
// order.
func (w *CastWorld) SurfaceList() []SurfaceRef {
	if w == nil {
		return nil
	}
	return w.surfaces
}

// oneWayRule accepts hits against the top face only.
func oneWayRule(hit trigger.TerrainCastHit) bool {
	return hit.Normal.Y < 0
}

// AttachController creates a body for the controller at world position
// (x, y) and registers it for per-tick ground probes. A controller that
// already has a body is left alone.
func (w *CastWorld) AttachController(c *obj.Controller, x, y float64) {
	if w == nil || w.space == nil || c == nil {
		return
	}
	if c.Body != nil {
		return
	}

	body := cp.NewBody(1.0, cp.MomentForBox(1.0, c.Width, c.Height))
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	body.SetPosition(cp.Vector{X: x + c.Width/2, Y: y + c.Height/2})
	shape := cp.NewBox(body, c.Width, c.Height, 0)
	shape.SetFriction(0)
	w.nextGroup++
	shape.SetFilter(cp.NewShapeFilter(w.nextGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	c.Body = body
	c.Shape = shape
	w.controllers = append(w.controllers, c)
}

// SurfaceFor returns the surface node backing a shape, or nil.
func (w *CastWorld) SurfaceFor(shape *cp.Shape) *scene.Node {
	if w == nil || shape == nil {
		return nil
	}
	return w.shapeToSurface[shape]
}

// Step advances the simulation one tick and reconciles every controller's
// ground probes against the surface triggers. Probe reconciliation runs
// before the scheduler's stay pass each tick.
func (w *CastWorld) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
	for _, c := range w.controllers {
		w.probeController(c)
	}
}

func (w *CastWorld) probeController(c *obj.Controller) {
	if c == nil || c.Body == nil || c.Shape == nil {
		return
	}
	pos := c.Body.Position()
	half := c.Width * 0.45

	primary, primaryHit := w.groundProbe(c, cp.Vector{X: pos.X - half, Y: pos.Y})
	secondary, secondaryHit := w.groundProbe(c, cp.Vector{X: pos.X + half, Y: pos.Y})

	prevPrimary := c.PrimarySurface()
	prevSecondary := c.SecondarySurface()

	// a duplicate exit when both probes left the same surface is absorbed
	// by the trigger's exit guard
	for _, prev := range []*scene.Node{prevPrimary, prevSecondary} {
		if prev == nil || prev == primary || prev == secondary {
			continue
		}
		if trig := trigger.FindSurfaceTrigger(prev); trig != nil {
			trig.UpdateController(c, trigger.TerrainCastHit{Controller: c, Surface: prev}, true)
		}
	}

	c.SetPrimarySurface(primary)
	c.SetSecondarySurface(secondary)

	if primary != nil {
		if trig := trigger.FindSurfaceTrigger(primary); trig != nil {
			trig.UpdateController(c, primaryHit, false)
		}
	}
	if secondary != nil && secondary != primary {
		if trig := trigger.FindSurfaceTrigger(secondary); trig != nil {
			trig.UpdateController(c, secondaryHit, false)
		}
	}

	if primary != nil || secondary != nil {
		c.Grounded = true
		c.GroundGrace = graceFrames
	} else if c.GroundGrace > 0 {
		c.GroundGrace--
		c.Grounded = c.GroundGrace > 0
	} else {
		c.Grounded = false
	}
}

// groundProbe casts straight down from a probe origin and returns the
// surface node under it, if the surface's trigger accepts the hit.
func (w *CastWorld) groundProbe(c *obj.Controller, from cp.Vector) (*scene.Node, trigger.TerrainCastHit) {
	end := cp.Vector{X: from.X, Y: from.Y + c.Height/2 + probeReach}
	filter := cp.SHAPE_FILTER_ALL
	if c.Shape != nil {
		filter = c.Shape.Filter
	}
	info := w.space.SegmentQueryFirst(from, end, 0, filter)
	if info.Shape == nil {
		return nil, trigger.TerrainCastHit{}
	}
	node := w.shapeToSurface[info.Shape]
	if node == nil {
		return nil, trigger.TerrainCastHit{}
	}
	hit := trigger.TerrainCastHit{
		Controller: c,
		Surface:    node,
		Point:      info.Point,
		Normal:     info.Normal,
		Distance:   from.Distance(info.Point),
	}
	if trig := trigger.FindSurfaceTrigger(node); trig != nil && !trig.CollidesWith(hit) {
		return nil, trigger.TerrainCastHit{}
	}
	return node, hit
}
