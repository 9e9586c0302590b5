// Package key provides the logical keyboard model shared by every backend.
//
// This package defines:
//
//   - Key: a closed enumeration of logical keys (letters, digits, function
//     keys, arrows, punctuation, modifiers) plus the KeyUnknown sentinel
//   - Set: a fixed-size bitset of keys with value semantics
//   - Tracker: the per-frame held / just-pressed / just-released state machine
//
// Backends translate their raw codes into Key at the boundary. Codes without
// a mapping become KeyUnknown, which a Tracker never stores, so it is never
// reported as held or as a transition.
//
// # Sampling
//
// A Tracker supports two sampling strategies with identical observable
// results. Devices that can only report the keys that are down right now use
// Poll; devices that deliver a queue of press/release notifications use
// Begin followed by Apply for every queued event (or Sample, which does both).
//
// In both cases the transition sets describe the difference between the held
// set at the start of the pass and the held set at its end:
//
//	JustPressed  = held(end) \ held(start)
//	JustReleased = held(start) \ held(end)
//
// so JustPressed is always a subset of Held and JustReleased never
// intersects it.
package key
