// Package viz renders terminal output for attractor runs.
//
//   - [Canvas]: Braille dot canvas, filled from a rendered image by [Thumbnail]
//   - [Summary]: lipgloss panel of labelled values
//   - [RunWithProgress]: Bubble Tea progress display fed by a [Tracker]
package viz
