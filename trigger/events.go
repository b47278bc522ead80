package trigger

// ContactFunc receives the controller and its most recent cast hit.
type ContactFunc func(c Controller, hit TerrainCastHit)

// ListenerID identifies a connected listener for later removal.
type ListenerID int

type contactListener struct {
	id ListenerID
	fn ContactFunc
}

// ContactSignal is an ordered list of listeners invoked synchronously in
// connection order.
type ContactSignal struct {
	next      ListenerID
	listeners []contactListener
}

// NewContactSignal creates an empty signal.
func NewContactSignal() *ContactSignal {
	return &ContactSignal{}
}

// Connect appends a listener and returns its id.
func (s *ContactSignal) Connect(fn ContactFunc) ListenerID {
	if s == nil || fn == nil {
		return 0
	}
	s.next++
	s.listeners = append(s.listeners, contactListener{id: s.next, fn: fn})
	return s.next
}

// Disconnect removes the listener with the given id, reporting whether it
// was connected.
func (s *ContactSignal) Disconnect(id ListenerID) bool {
	if s == nil || id == 0 {
		return false
	}
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Emit invokes every listener in connection order.
func (s *ContactSignal) Emit(c Controller, hit TerrainCastHit) {
	if s == nil {
		return
	}
	// iterate a snapshot so listeners may connect or disconnect during emit
	for _, l := range append([]contactListener(nil), s.listeners...) {
		if l.fn != nil {
			l.fn(c, hit)
		}
	}
}

// Len returns the number of connected listeners.
func (s *ContactSignal) Len() int {
	if s == nil {
		return 0
	}
	return len(s.listeners)
}
