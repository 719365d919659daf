// Package viz renders spring animations in the terminal and to SVG.
//
// The package implements an interactive corner-snap demo using the Bubble
// Tea framework:
//
//   - [Live]: an overlay block that springs to a selected corner,
//     carrying its velocity through retargets and flings
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [TrajectoryToSVG], [CanvasToSVG]: static SVG exports
//
// # Key Bindings
//
//	1-4   - Snap to a corner
//	hjkl  - Fling the block (arrow keys work too)
//	P     - Cycle spring preset
//	Space - Pause/Resume
//	R     - Reset to center
//	?     - Show help overlay
package viz
