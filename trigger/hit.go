package trigger

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/platkit/scene"
)

// TerrainCastHit is the result of one geometric probe against a surface. It
// carries the controller that issued the probe and the surface node the
// probe landed on. Values are immutable per invocation; triggers store the
// most recent one per controller.
type TerrainCastHit struct {
	Controller Controller
	Surface    *scene.Node
	Point      cp.Vector
	Normal     cp.Vector
	Distance   float64
}

// Controller is the moving actor whose contact with surfaces is tracked.
type Controller interface {
	PrimarySurface() *scene.Node
	SecondarySurface() *scene.Node
	NotifyReactiveEnter(r Reactive)
	NotifyReactiveExit(r Reactive)
}

// Reactive is implemented by components registered in a controller's
// reactive-object registry while the controller overlaps them.
type Reactive interface {
	Node() *scene.Node
}
