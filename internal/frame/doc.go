// Package frame provides fixed-delay frame pacing for the render loop.
//
// A Pacer converts a target frame rate into a per-frame budget. Each call to
// Wait measures the time since the previous call returned and sleeps for
// whatever is left of the budget. Overruns are not carried forward: a slow
// frame is followed by an immediate return, never by a shortened next frame.
package frame
