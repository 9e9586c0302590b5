package key

// Action is the kind of a raw key notification.
type Action uint8

const (
	// Press is a key going down.
	Press Action = iota
	// Release is a key going up.
	Release
	// Repeat is an auto-repeat notification for a key already down.
	Repeat
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Repeat:
		return "Repeat"
	default:
		return "Action(?)"
	}
}

// Event is a single press/release notification after translation to Key.
type Event struct {
	Key    Key
	Action Action
}

// Tracker holds the per-frame key state: which keys are held and which
// changed during the most recent sampling pass.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	held     Set
	pressed  Set
	released Set
}

// NewTracker creates a tracker with no keys held.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a sampling pass for the event strategy by clearing the
// transition sets. The held set carries over.
func (t *Tracker) Begin() {
	t.pressed.Clear()
	t.released.Clear()
}

// Apply feeds one notification into the current pass.
//
// A press of a key that is already held is ignored, so auto-repeat never
// re-triggers JustPressed. A press/release pair inside one pass cancels out,
// keeping JustPressed within Held and JustReleased outside it.
func (t *Tracker) Apply(ev Event) {
	k := ev.Key
	if !k.Valid() {
		return
	}

	switch ev.Action {
	case Press:
		if t.held.Has(k) {
			return
		}
		t.held.Add(k)
		if t.released.Has(k) {
			t.released.Remove(k)
		} else {
			t.pressed.Add(k)
		}

	case Release:
		if !t.held.Has(k) {
			return
		}
		t.held.Remove(k)
		if t.pressed.Has(k) {
			t.pressed.Remove(k)
		} else {
			t.released.Add(k)
		}
	}
}

// Sample runs a complete event-strategy pass over a drained queue.
// Events are applied in arrival order.
func (t *Tracker) Sample(events []Event) {
	t.Begin()
	for _, ev := range events {
		t.Apply(ev)
	}
}

// Poll runs a polling-strategy pass: down is everything the device reports
// as currently held. Additions become JustPressed, removals JustReleased.
func (t *Tracker) Poll(down []Key) {
	current := NewSet(down...)
	t.PollSet(current)
}

// PollSet is Poll for a pre-built set.
func (t *Tracker) PollSet(current Set) {
	t.pressed = current.Difference(t.held)
	t.released = t.held.Difference(current)
	t.held = current
}

// Reset forgets all state, as if every key were up.
func (t *Tracker) Reset() {
	t.held.Clear()
	t.Begin()
}

// IsPressed reports whether k is held.
func (t *Tracker) IsPressed(k Key) bool {
	return t.held.Has(k)
}

// IsJustPressed reports whether k went down during the last pass.
func (t *Tracker) IsJustPressed(k Key) bool {
	return t.pressed.Has(k)
}

// IsJustReleased reports whether k went up during the last pass.
func (t *Tracker) IsJustReleased(k Key) bool {
	return t.released.Has(k)
}

// Held returns a copy of the held set.
func (t *Tracker) Held() Set { return t.held }

// JustPressed returns a copy of the just-pressed set.
func (t *Tracker) JustPressed() Set { return t.pressed }

// JustReleased returns a copy of the just-released set.
func (t *Tracker) JustReleased() Set { return t.released }
