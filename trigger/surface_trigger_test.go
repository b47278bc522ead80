package trigger

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/platkit/scene"
)

type fakeController struct {
	name      string
	primary   *scene.Node
	secondary *scene.Node
	entered   []Reactive
	exited    []Reactive
}

func (f *fakeController) PrimarySurface() *scene.Node   { return f.primary }
func (f *fakeController) SecondarySurface() *scene.Node { return f.secondary }
func (f *fakeController) NotifyReactiveEnter(r Reactive) {
	f.entered = append(f.entered, r)
}
func (f *fakeController) NotifyReactiveExit(r Reactive) {
	f.exited = append(f.exited, r)
}

// attachedTrigger creates a trigger on an enabled node.
func attachedTrigger(name string) (*SurfaceTrigger, *scene.Node) {
	n := scene.NewNode(name)
	t := NewSurfaceTrigger()
	n.AddComponent(t)
	return t, n
}

type eventCounter struct {
	enters, stays, exits int
	lastHit              TerrainCastHit
}

func (ec *eventCounter) connect(t *SurfaceTrigger) {
	t.SurfaceEnter.Connect(func(c Controller, hit TerrainCastHit) {
		ec.enters++
		ec.lastHit = hit
	})
	t.SurfaceStay.Connect(func(c Controller, hit TerrainCastHit) {
		ec.stays++
		ec.lastHit = hit
	})
	t.SurfaceExit.Connect(func(c Controller, hit TerrainCastHit) {
		ec.exits++
		ec.lastHit = hit
	})
}

func TestUpdateControllerEnterAndRefresh(t *testing.T) {
	trig, node := attachedTrigger("floor")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	hit := TerrainCastHit{Controller: ctrl, Surface: node, Normal: cp.Vector{Y: -1}}
	for i := 0; i < 3; i++ {
		trig.UpdateController(ctrl, hit, false)
	}

	if ec.enters != 1 {
		t.Fatalf("expected exactly one enter, got %d", ec.enters)
	}
	if ec.exits != 0 {
		t.Fatalf("expected no exits, got %d", ec.exits)
	}
	if !trig.HasController(ctrl) {
		t.Fatalf("expected controller to be tracked")
	}
	if got := len(trig.Contacts()); got != 1 {
		t.Fatalf("expected one contact record, got %d", got)
	}
}

func TestUpdateControllerRefreshOverwritesHit(t *testing.T) {
	trig, node := attachedTrigger("floor")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	first := TerrainCastHit{Controller: ctrl, Surface: node, Point: cp.Vector{X: 1}}
	second := TerrainCastHit{Controller: ctrl, Surface: node, Point: cp.Vector{X: 9}}
	trig.UpdateController(ctrl, first, false)
	trig.UpdateController(ctrl, second, false)

	trig.FixedUpdate()
	if ec.stays != 1 {
		t.Fatalf("expected one stay, got %d", ec.stays)
	}
	if ec.lastHit.Point.X != 9 {
		t.Fatalf("stay should carry the refreshed hit, got point %v", ec.lastHit.Point)
	}
}

func TestSurfaceSwapIsSilentRefresh(t *testing.T) {
	trig, node := attachedTrigger("floor")
	other := scene.NewNode("other")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: node}, false)
	// the surface under the controller changed but no exit was reported
	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: other}, false)

	if ec.enters != 1 || ec.exits != 0 {
		t.Fatalf("surface swap should be silent, got enters=%d exits=%d", ec.enters, ec.exits)
	}
	trig.FixedUpdate()
	if ec.lastHit.Surface != other {
		t.Fatalf("stored hit should reference the new surface")
	}
}

func TestExitGuard(t *testing.T) {
	trig, node := attachedTrigger("floor")
	stale := scene.NewNode("stale")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: node}, false)

	// exit against a transform that is not the recorded one is absorbed
	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: stale}, true)
	if ec.exits != 0 {
		t.Fatalf("mismatched exit should fire nothing, got %d", ec.exits)
	}
	if !trig.HasController(ctrl) {
		t.Fatalf("mismatched exit should leave the record in place")
	}

	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: node}, true)
	if ec.exits != 1 {
		t.Fatalf("expected exactly one exit, got %d", ec.exits)
	}
	if trig.HasController(ctrl) {
		t.Fatalf("record should be removed after matching exit")
	}

	// a second matching exit has no record left to remove
	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: node}, true)
	if ec.exits != 1 {
		t.Fatalf("repeated exit should be absorbed, got %d", ec.exits)
	}
}

func TestExitForUnknownControllerIsNoOp(t *testing.T) {
	trig, node := attachedTrigger("floor")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: node}, true)
	if ec.exits != 0 {
		t.Fatalf("exit without a record should fire nothing, got %d", ec.exits)
	}
}

func TestDisabledTriggerNoOps(t *testing.T) {
	trig, node := attachedTrigger("floor")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	node.SetEnabled(false)
	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: node}, false)
	trig.FixedUpdate()

	if ec.enters != 0 || ec.stays != 0 {
		t.Fatalf("disabled trigger should be silent, got enters=%d stays=%d", ec.enters, ec.stays)
	}
	if trig.HasController(ctrl) {
		t.Fatalf("disabled trigger should not record contacts")
	}
}

func TestNilControllerNoOps(t *testing.T) {
	trig, node := attachedTrigger("floor")
	var ec eventCounter
	ec.connect(trig)

	trig.UpdateController(nil, TerrainCastHit{Surface: node}, false)
	if ec.enters != 0 {
		t.Fatalf("nil controller should be silent, got %d enters", ec.enters)
	}
}

func TestCollisionRuleSemantics(t *testing.T) {
	alwaysTrue := func(TerrainCastHit) bool { return true }
	alwaysFalse := func(TerrainCastHit) bool { return false }

	cases := []struct {
		name  string
		rules []CollisionRule
		want  bool
	}{
		{"empty_uses_default", nil, true},
		{"single_true", []CollisionRule{alwaysTrue}, true},
		{"single_false", []CollisionRule{alwaysFalse}, false},
		{"false_vetoes_true", []CollisionRule{alwaysTrue, alwaysFalse, alwaysTrue}, false},
		{"all_true", []CollisionRule{alwaysTrue, alwaysTrue}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			trig, _ := attachedTrigger("floor")
			trig.CollisionRules = c.rules
			// result is stable across repeated calls
			for i := 0; i < 2; i++ {
				if got := trig.CollidesWith(TerrainCastHit{}); got != c.want {
					t.Fatalf("CollidesWith = %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestIsOnSurfaceDefaultRule(t *testing.T) {
	primary := scene.NewNode("primary")
	secondary := scene.NewNode("secondary")
	unrelated := scene.NewNode("unrelated")
	ctrl := &fakeController{name: "c", primary: primary, secondary: secondary}

	cases := []struct {
		name    string
		surface *scene.Node
		want    bool
	}{
		{"primary_surface", primary, true},
		{"secondary_surface", secondary, true},
		{"unrelated_surface", unrelated, false},
		{"nil_surface", nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			trig, _ := attachedTrigger("floor")
			hit := TerrainCastHit{Controller: ctrl, Surface: c.surface}
			if got := trig.IsOnSurface(ctrl, hit); got != c.want {
				t.Fatalf("IsOnSurface = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIsOnSurfaceRegisteredRulesReplaceDefault(t *testing.T) {
	primary := scene.NewNode("primary")
	unrelated := scene.NewNode("unrelated")
	ctrl := &fakeController{name: "c", primary: primary}
	trig, _ := attachedTrigger("floor")

	// a registered rule accepts the unrelated surface; the default rule
	// must not be consulted even implicitly
	trig.SurfaceRules = []SurfaceRule{func(Controller, TerrainCastHit) bool { return true }}
	if !trig.IsOnSurface(ctrl, TerrainCastHit{Controller: ctrl, Surface: unrelated}) {
		t.Fatalf("registered rules should replace the default rule")
	}

	trig.SurfaceRules = append(trig.SurfaceRules, func(Controller, TerrainCastHit) bool { return false })
	if trig.IsOnSurface(ctrl, TerrainCastHit{Controller: ctrl, Surface: primary}) {
		t.Fatalf("one false rule should veto, even for the primary surface")
	}
}

func TestBubbling(t *testing.T) {
	grandparent := scene.NewNode("grandparent")
	parent := scene.NewNode("parent")
	child := scene.NewNode("child")
	grandparent.AddChild(parent)
	parent.AddChild(child)

	grandTrig := NewSurfaceTrigger()
	grandparent.AddComponent(grandTrig)
	parentTrig := NewSurfaceTrigger()
	parentTrig.TriggerFromChildren = true
	parent.AddComponent(parentTrig)
	childTrig := NewSurfaceTrigger()
	child.AddComponent(childTrig)

	ctrl := &fakeController{name: "c"}
	hit := TerrainCastHit{Controller: ctrl, Surface: child}
	childTrig.UpdateController(ctrl, hit, false)

	if !childTrig.HasController(ctrl) {
		t.Fatalf("child should track the controller")
	}
	if !parentTrig.HasController(ctrl) {
		t.Fatalf("parent with TriggerFromChildren should receive the bubble")
	}
	if grandTrig.HasController(ctrl) {
		t.Fatalf("grandparent without TriggerFromChildren should not receive the bubble")
	}

	// the exit bubbles too
	childTrig.UpdateController(ctrl, hit, true)
	if childTrig.HasController(ctrl) || parentTrig.HasController(ctrl) {
		t.Fatalf("exit should bubble to the parent")
	}
}

func TestBubblingSkipsSelf(t *testing.T) {
	parent := scene.NewNode("parent")
	child := scene.NewNode("child")
	parent.AddChild(child)

	trig := NewSurfaceTrigger()
	trig.TriggerFromChildren = true
	child.AddComponent(trig)

	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)
	trig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: child}, false)

	if ec.enters != 1 {
		t.Fatalf("self must not be re-triggered by bubbling, got %d enters", ec.enters)
	}
}

func TestBubblingReachesAllQualifyingAncestors(t *testing.T) {
	top := scene.NewNode("top")
	mid := scene.NewNode("mid")
	leaf := scene.NewNode("leaf")
	top.AddChild(mid)
	mid.AddChild(leaf)

	topTrig := NewSurfaceTrigger()
	topTrig.TriggerFromChildren = true
	top.AddComponent(topTrig)
	midTrig := NewSurfaceTrigger()
	midTrig.TriggerFromChildren = true
	mid.AddComponent(midTrig)
	leafTrig := NewSurfaceTrigger()
	leaf.AddComponent(leafTrig)

	ctrl := &fakeController{name: "c"}
	leafTrig.UpdateController(ctrl, TerrainCastHit{Controller: ctrl, Surface: leaf}, false)

	if !midTrig.HasController(ctrl) || !topTrig.HasController(ctrl) {
		t.Fatalf("bubbling should reach every qualifying ancestor, not just the nearest")
	}
}

func TestFixedUpdateStayPass(t *testing.T) {
	trig, node := attachedTrigger("floor")
	ctrl := &fakeController{name: "c"}
	var ec eventCounter
	ec.connect(trig)

	stored := TerrainCastHit{Controller: ctrl, Surface: node, Point: cp.Vector{X: 3}}
	trig.UpdateController(ctrl, stored, false)

	// ticks with no new cast results still fire one stay each, carrying
	// the previously stored hit
	for i := 1; i <= 3; i++ {
		trig.FixedUpdate()
		if ec.stays != i {
			t.Fatalf("tick %d: expected %d stays, got %d", i, i, ec.stays)
		}
	}
	if ec.lastHit.Point.X != 3 {
		t.Fatalf("stay should carry the stored hit, got %v", ec.lastHit.Point)
	}
}

func TestFixedUpdateNoContactsNoStay(t *testing.T) {
	trig, _ := attachedTrigger("floor")
	var ec eventCounter
	ec.connect(trig)

	trig.FixedUpdate()
	if ec.stays != 0 {
		t.Fatalf("no contacts should mean no stays, got %d", ec.stays)
	}
}

func TestGenericChannelsFireWithSurfaceChannels(t *testing.T) {
	trig, node := attachedTrigger("floor")
	ctrl := &fakeController{name: "c"}

	var generic []string
	trig.Enter.Connect(func(Controller, TerrainCastHit) { generic = append(generic, "enter") })
	trig.Stay.Connect(func(Controller, TerrainCastHit) { generic = append(generic, "stay") })
	trig.Exit.Connect(func(Controller, TerrainCastHit) { generic = append(generic, "exit") })

	var surface []string
	trig.SurfaceEnter.Connect(func(Controller, TerrainCastHit) { surface = append(surface, "enter") })
	trig.SurfaceExit.Connect(func(Controller, TerrainCastHit) { surface = append(surface, "exit") })

	hit := TerrainCastHit{Controller: ctrl, Surface: node}
	trig.UpdateController(ctrl, hit, false)
	trig.FixedUpdate()
	trig.UpdateController(ctrl, hit, true)

	wantGeneric := []string{"enter", "stay", "exit"}
	if len(generic) != len(wantGeneric) {
		t.Fatalf("generic events = %v, want %v", generic, wantGeneric)
	}
	for i := range wantGeneric {
		if generic[i] != wantGeneric[i] {
			t.Fatalf("generic events = %v, want %v", generic, wantGeneric)
		}
	}
	if len(surface) != 2 {
		t.Fatalf("surface events = %v", surface)
	}
}

func TestEnsureDescendantTriggersIdempotent(t *testing.T) {
	root := scene.NewNode("root")
	colliderA := scene.NewNode("a")
	colliderA.Collider = true
	plain := scene.NewNode("plain")
	colliderB := scene.NewNode("b")
	colliderB.Collider = true
	root.AddChild(colliderA)
	root.AddChild(plain)
	plain.AddChild(colliderB)

	trig := NewSurfaceTrigger()
	trig.TriggerFromChildren = true
	root.AddComponent(trig)

	trig.EnsureDescendantTriggers()
	trig.EnsureDescendantTriggers()

	for _, n := range []*scene.Node{colliderA, colliderB} {
		count := 0
		for _, c := range n.Components() {
			if _, ok := c.(*SurfaceTrigger); ok {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("node %s: expected exactly one trigger, got %d", n.Name, count)
		}
	}
	if FindSurfaceTrigger(plain) != nil {
		t.Fatalf("non-collider node should not receive a trigger")
	}
}

func TestChannelReferencesSurviveReactivation(t *testing.T) {
	trig, node := attachedTrigger("floor")
	before := trig.SurfaceEnter

	node.SetEnabled(false)
	node.SetEnabled(true)

	if trig.SurfaceEnter != before {
		t.Fatalf("pre-existing channels must be preserved across re-activation")
	}
}
