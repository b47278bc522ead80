package trigger

import (
	"github.com/milk9111/platkit/scene"
)

// ActivationRelay subscribes to an activation trigger's enter/stay/exit
// channels and forwards them into the controller's reactive-object
// registry. Subscription is de-duplicated: re-activation before
// deactivation never double-registers.
type ActivationRelay struct {
	scene.BaseComponent

	// Trigger is the activation trigger whose channels drive this relay.
	Trigger ActivationTrigger

	// Optional hooks run after the registry notification. Stay has no
	// registry side; the hook is the whole effect.
	OnReactiveEnter ContactFunc
	OnReactiveStay  ContactFunc
	OnReactiveExit  ContactFunc

	subscribed bool
	enterID    ListenerID
	stayID     ListenerID
	exitID     ListenerID
}

// NewActivationRelay creates a relay for the given trigger.
func NewActivationRelay(t ActivationTrigger) *ActivationRelay {
	return &ActivationRelay{Trigger: t}
}

// Activate connects the three listeners. A no-op when already subscribed or
// when the trigger's channels are unavailable.
func (r *ActivationRelay) Activate() {
	if r == nil || r.subscribed || r.Trigger == nil {
		return
	}
	enter := r.Trigger.EnterSignal()
	stay := r.Trigger.StaySignal()
	exit := r.Trigger.ExitSignal()
	if enter == nil || stay == nil || exit == nil {
		return
	}
	r.enterID = enter.Connect(r.handleEnter)
	r.stayID = stay.Connect(r.handleStay)
	r.exitID = exit.Connect(r.handleExit)
	r.subscribed = true
}

// Deactivate disconnects the listeners. A no-op when not subscribed.
func (r *ActivationRelay) Deactivate() {
	if r == nil || !r.subscribed || r.Trigger == nil {
		return
	}
	if s := r.Trigger.EnterSignal(); s != nil {
		s.Disconnect(r.enterID)
	}
	if s := r.Trigger.StaySignal(); s != nil {
		s.Disconnect(r.stayID)
	}
	if s := r.Trigger.ExitSignal(); s != nil {
		s.Disconnect(r.exitID)
	}
	r.enterID, r.stayID, r.exitID = 0, 0, 0
	r.subscribed = false
}

// Subscribed reports whether the relay's listeners are connected.
func (r *ActivationRelay) Subscribed() bool {
	return r != nil && r.subscribed
}

func (r *ActivationRelay) handleEnter(c Controller, hit TerrainCastHit) {
	if r == nil {
		return
	}
	if c != nil {
		c.NotifyReactiveEnter(r)
	}
	if r.OnReactiveEnter != nil {
		r.OnReactiveEnter(c, hit)
	}
}

func (r *ActivationRelay) handleStay(c Controller, hit TerrainCastHit) {
	if r == nil {
		return
	}
	if r.OnReactiveStay != nil {
		r.OnReactiveStay(c, hit)
	}
}

func (r *ActivationRelay) handleExit(c Controller, hit TerrainCastHit) {
	if r == nil {
		return
	}
	if c != nil {
		c.NotifyReactiveExit(r)
	}
	if r.OnReactiveExit != nil {
		r.OnReactiveExit(c, hit)
	}
}
