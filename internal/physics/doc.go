// Package physics provides the planar recurrences rendered by mira.
//
// Each model implements the [dynamo.Map] interface, advancing a point by
// one iteration:
//
//   - [GumowskiMira]: the Gumowski–Mira map used for attractor images
//
// Models also implement [dynamo.Configurable] so analysis tools can sweep
// their coefficients by name.
//
//	m := physics.NewGumowskiMira(0.008, 0.05, -0.496)
//	p := m.DefaultPoint()
//	for i := 0; i < 1000; i++ {
//	    p = m.Step(p)
//	}
package physics
