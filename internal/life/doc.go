// Package life is a Game of Life engine that satisfies the bridge contract.
//
// Patterns are read from run-length encoded (RLE) text:
//
//	#N Glider
//	x = 3, y = 3, rule = B3/S23
//	bo$2bo$3o!
//
// The header line and comments are optional. The grid is bounded: cells
// beyond the edge are always dead, so the margin passed to [Engine.Expand]
// is the room a pattern has to grow.
package life
