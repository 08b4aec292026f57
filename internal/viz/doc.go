// Package viz renders a cellular automaton grid into the terminal.
//
// [Canvas] packs cells into Unicode Braille runes, 2 columns by 4 rows per
// rune, and implements both halves of the engine's drawing contract:
//
//   - SetSize sizes the canvas to the grid in cells
//   - PutCells replaces the canvas contents with a grid snapshot
//
// Colour schemes live in [Theme]; [NewStyles] derives the lipgloss styles
// the TUI uses from one of them.
package viz
