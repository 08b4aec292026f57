// Package bridge defines the call contract between the playback controller
// and a cellular-automaton engine.
//
// The contract is four synchronous calls:
//
//   - [Engine.Load]: parse pattern text and reset engine state
//   - [Engine.Expand]: size the render surface to the pattern plus margin
//   - [Engine.Draw]: paint the current generation onto a render context
//   - [Engine.Step]: advance exactly one generation
//
// Callers must issue load, expand and draw in that order after every new
// pattern or margin change, and must not step or draw until a load has
// succeeded. [Monitor] wraps an engine and records every call that breaks
// this ordering.
package bridge
