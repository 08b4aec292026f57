// Package player implements the playback controller: it takes pattern text
// from file selections or presets, validates it through a bridge.Engine,
// keeps the render surface sized to the margin, and runs at most one
// step-loop at a time.
//
// # States
//
//	Idle          nothing loaded
//	Loading       a file read is in flight
//	LoadFailed    the last read or engine load failed; Status().Message says why
//	LoadedPaused  generation drawn, waiting for Start
//	Playing       stepping and drawing every Delay
//
// # Threading
//
// A Controller is not safe for concurrent use. All methods, and every
// callback delivered by its Reader and Scheduler, must run on one loop
// thread (the bubbletea Update goroutine in the TUI).
package player
