// Package analysis provides chaos and density analysis tools.
//
// The package includes tools for characterizing an attractor render:
//
//   - [LyapunovExponent]: largest Lyapunov exponent via orbit separation
//   - [Coverage]: fraction of grid cells the orbit reached
//   - [Entropy]: Shannon entropy of the deposited mass
//   - [HistogramSeries]: intensity histogram binned for terminal plots
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	est, _ := analysis.LyapunovExponent(m, p0, 1000, 100000, 1e-9)
//	if est.Value > 0 {
//	    // orbit is chaotic
//	}
package analysis
