package trigger

import (
	"github.com/milk9111/platkit/scene"
)

// ActivationTrigger exposes the generic contact channels a relay or other
// listener component subscribes to.
type ActivationTrigger interface {
	EnterSignal() *ContactSignal
	StaySignal() *ContactSignal
	ExitSignal() *ContactSignal
}

// BaseTrigger carries the generic enter/stay/exit channels shared by all
// trigger components.
type BaseTrigger struct {
	scene.BaseComponent

	Enter *ContactSignal
	Stay  *ContactSignal
	Exit  *ContactSignal
}

// initSignals creates any absent channels. Pre-existing channel references
// are preserved so listeners connected before activation survive it.
func (b *BaseTrigger) initSignals() {
	if b == nil {
		return
	}
	if b.Enter == nil {
		b.Enter = NewContactSignal()
	}
	if b.Stay == nil {
		b.Stay = NewContactSignal()
	}
	if b.Exit == nil {
		b.Exit = NewContactSignal()
	}
}

// Activate initializes the generic channels.
func (b *BaseTrigger) Activate() {
	b.initSignals()
}

func (b *BaseTrigger) EnterSignal() *ContactSignal {
	if b == nil {
		return nil
	}
	return b.Enter
}

func (b *BaseTrigger) StaySignal() *ContactSignal {
	if b == nil {
		return nil
	}
	return b.Stay
}

func (b *BaseTrigger) ExitSignal() *ContactSignal {
	if b == nil {
		return nil
	}
	return b.Exit
}

// live reports whether the trigger is attached to an enabled node.
func (b *BaseTrigger) live() bool {
	return b != nil && b.Node() != nil && b.Node().Enabled()
}
