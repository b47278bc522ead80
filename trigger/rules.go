package trigger

// CollisionRule decides whether a cast hit counts as a collision for a
// trigger. Rules are pure; a trigger with registered rules accepts a hit
// only when every rule returns true.
type CollisionRule func(hit TerrainCastHit) bool

// SurfaceRule decides whether a controller counts as standing on the hit
// surface.
type SurfaceRule func(c Controller, hit TerrainCastHit) bool

// DefaultCollisionRule accepts every hit. It applies only when a trigger's
// collision rule list is empty.
func DefaultCollisionRule(TerrainCastHit) bool {
	return true
}

// DefaultSurfaceRule holds when the hit's transform is the controller's
// primary or secondary surface. It applies only when a trigger's surface
// rule list is empty.
func DefaultSurfaceRule(c Controller, hit TerrainCastHit) bool {
	if c == nil || hit.Surface == nil {
		return false
	}
	return hit.Surface == c.PrimarySurface() || hit.Surface == c.SecondarySurface()
}
