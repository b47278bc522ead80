package trigger

import (
	"github.com/milk9111/platkit/scene"
)

// contactRecord pairs a controller with its most recent cast hit while
// contact persists. At most one record exists per controller.
type contactRecord struct {
	controller Controller
	hit        TerrainCastHit
}

// SurfaceTrigger tracks which controllers are standing on one collidable
// surface. The physics layer reports cast results through UpdateController;
// the trigger reconciles them into enter/stay/exit events and bubbles
// updates to ancestor triggers that opted into child triggering.
type SurfaceTrigger struct {
	BaseTrigger

	// TriggerFromChildren makes descendant trigger updates bubble into this
	// trigger and causes activation to attach triggers to descendant
	// collider nodes.
	TriggerFromChildren bool

	CollisionRules []CollisionRule
	SurfaceRules   []SurfaceRule

	SurfaceEnter *ContactSignal
	SurfaceStay  *ContactSignal
	SurfaceExit  *ContactSignal

	contacts []contactRecord
}

// NewSurfaceTrigger creates a trigger with all channels allocated.
func NewSurfaceTrigger() *SurfaceTrigger {
	t := &SurfaceTrigger{}
	t.initSignals()
	t.initSurfaceSignals()
	return t
}

func (t *SurfaceTrigger) initSurfaceSignals() {
	if t == nil {
		return
	}
	if t.SurfaceEnter == nil {
		t.SurfaceEnter = NewContactSignal()
	}
	if t.SurfaceStay == nil {
		t.SurfaceStay = NewContactSignal()
	}
	if t.SurfaceExit == nil {
		t.SurfaceExit = NewContactSignal()
	}
}

// Activate initializes channels and, when TriggerFromChildren is set,
// ensures descendant collider nodes carry their own triggers.
func (t *SurfaceTrigger) Activate() {
	if t == nil {
		return
	}
	t.initSignals()
	t.initSurfaceSignals()
	if t.TriggerFromChildren {
		t.EnsureDescendantTriggers()
	}
}

// EnsureDescendantTriggers attaches a SurfaceTrigger to every descendant
// collider node that lacks one. Safe to call repeatedly.
func (t *SurfaceTrigger) EnsureDescendantTriggers() {
	if t == nil {
		return
	}
	node := t.Node()
	if node == nil {
		return
	}
	for _, d := range node.Descendants() {
		if !d.Collider || hasSurfaceTrigger(d) {
			continue
		}
		d.AddComponent(NewSurfaceTrigger())
	}
}

func hasSurfaceTrigger(n *scene.Node) bool {
	return FindSurfaceTrigger(n) != nil
}

// FindSurfaceTrigger returns the first SurfaceTrigger attached to n, or nil.
func FindSurfaceTrigger(n *scene.Node) *SurfaceTrigger {
	if n == nil {
		return nil
	}
	for _, c := range n.Components() {
		if t, ok := c.(*SurfaceTrigger); ok {
			return t
		}
	}
	return nil
}

// UpdateController reconciles one cast result for a controller against this
// trigger's contact list, then bubbles the update to qualifying ancestors.
// Disabled triggers and nil controllers are silent no-ops.
func (t *SurfaceTrigger) UpdateController(c Controller, hit TerrainCastHit, isExit bool) {
	if t == nil || c == nil || !t.live() {
		return
	}
	t.CheckSurface(c, hit, isExit)
	t.BubbleEvent(c, hit, isExit)
}

// CheckSurface updates the local contact list for one cast result. An exit
// only removes a record whose stored hit is against the same surface as the
// incoming hit; a mismatched exit leaves state untouched. A repeated
// non-exit update overwrites the stored hit without firing events, even if
// the surface under the controller changed.
func (t *SurfaceTrigger) CheckSurface(c Controller, hit TerrainCastHit, isExit bool) {
	if t == nil || c == nil || !t.live() {
		return
	}
	idx := t.indexOf(c)
	switch {
	case isExit:
		if idx < 0 || t.contacts[idx].hit.Surface != hit.Surface {
			return
		}
		t.contacts = append(t.contacts[:idx], t.contacts[idx+1:]...)
		t.SurfaceExit.Emit(c, hit)
		t.Exit.Emit(c, hit)
	case idx < 0:
		t.contacts = append(t.contacts, contactRecord{controller: c, hit: hit})
		t.SurfaceEnter.Emit(c, hit)
		t.Enter.Emit(c, hit)
	default:
		t.contacts[idx].hit = hit
	}
}

// BubbleEvent reconciles the same cast result on every ancestor trigger,
// other than this one, that is configured to trigger from children.
func (t *SurfaceTrigger) BubbleEvent(c Controller, hit TerrainCastHit, isExit bool) {
	if t == nil {
		return
	}
	node := t.Node()
	if node == nil {
		return
	}
	for _, ancestor := range node.Ancestors() {
		for _, comp := range ancestor.Components() {
			other, ok := comp.(*SurfaceTrigger)
			if !ok || other == t || !other.TriggerFromChildren {
				continue
			}
			other.CheckSurface(c, hit, isExit)
		}
	}
}

// OnTick runs the per-tick stay pass.
func (t *SurfaceTrigger) OnTick() {
	t.FixedUpdate()
}

// FixedUpdate fires a stay notification for every tracked contact using its
// most recent hit. Stay notifications are driven by elapsed ticks, not by
// new cast results.
func (t *SurfaceTrigger) FixedUpdate() {
	if t == nil || !t.live() {
		return
	}
	// iterate a snapshot so listeners may remove contacts during the pass
	for _, rec := range append([]contactRecord(nil), t.contacts...) {
		t.SurfaceStay.Emit(rec.controller, rec.hit)
		t.Stay.Emit(rec.controller, rec.hit)
	}
}

// HasController reports whether a contact record exists for the controller.
func (t *SurfaceTrigger) HasController(c Controller) bool {
	if t == nil || c == nil {
		return false
	}
	return t.indexOf(c) >= 0
}

// IsOnSurface reports whether the controller counts as standing on the hit
// surface: every registered surface rule must hold, or the default surface
// rule when none are registered.
func (t *SurfaceTrigger) IsOnSurface(c Controller, hit TerrainCastHit) bool {
	if t == nil || c == nil {
		return false
	}
	if len(t.SurfaceRules) == 0 {
		return DefaultSurfaceRule(c, hit)
	}
	for _, rule := range t.SurfaceRules {
		if rule == nil || !rule(c, hit) {
			return false
		}
	}
	return true
}

// CollidesWith reports whether the hit counts as a collision: every
// registered collision rule must hold, or the default collision rule when
// none are registered.
func (t *SurfaceTrigger) CollidesWith(hit TerrainCastHit) bool {
	if t == nil {
		return false
	}
	if len(t.CollisionRules) == 0 {
		return DefaultCollisionRule(hit)
	}
	for _, rule := range t.CollisionRules {
		if rule == nil || !rule(hit) {
			return false
		}
	}
	return true
}

// Contacts returns a copy of the current contact records' controllers.
func (t *SurfaceTrigger) Contacts() []Controller {
	if t == nil {
		return nil
	}
	out := make([]Controller, 0, len(t.contacts))
	for _, rec := range t.contacts {
		out = append(out, rec.controller)
	}
	return out
}

func (t *SurfaceTrigger) indexOf(c Controller) int {
	for i, rec := range t.contacts {
		if rec.controller == c {
			return i
		}
	}
	return -1
}
