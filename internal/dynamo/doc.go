// Package dynamo provides the core primitives for iterating planar maps.
//
// The package defines the fundamental types shared by the rendering
// pipeline:
//
//   - [Point]: a position in the plane
//   - [Params]: the recurrence coefficients and render settings
//   - [Map]: interface for discrete-time planar recurrences
//   - [Orbit]: the retained iterates of a run
//
// # Example
//
//	m := physics.NewGumowskiMira(p.A, p.S, p.Mu)
//	gen := sim.New(m)
//	orbit, _ := gen.Run(ctx, p)
//
// # Errors
//
// Failures are reported through the sentinel errors in this package
// ([ErrConfiguration], [ErrDegenerateOrbit], [ErrNumericDivergence],
// [ErrEmptyGrid]), wrapped in [ConfigError] or [IterationError] when more
// context is available. Use errors.Is to classify them.
package dynamo
