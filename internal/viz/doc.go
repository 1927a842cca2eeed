// Package viz renders ropes in the terminal.
//
//   - [Canvas]: Braille dot canvas with a world [Viewport]
//   - [Model]: bubbletea live view that steps a rope at 60 frames a second
//   - [Recorder]: GIF capture of the canvas
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Rebuild the rope from its config
//	Arrows - Drag the first anchor (or the centre of an oscillating drive)
//	+/-    - Double/halve relaxation iterations
//	T      - Cycle colour themes
//	G      - Toggle GIF recording
//	?      - Show help overlay
package viz
