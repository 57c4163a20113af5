package density

import (
	"fmt"
	"math"
	"strings"
)

// Policy selects how a point's mass is distributed over grid cells.
type Policy int

const (
	// Bilinear splats each point over its four surrounding cells.
	Bilinear Policy = iota
	// Nearest adds each point to the closest cell.
	Nearest
)

// FixedPointBits bounds the total mass of a bilinear grid to 2^60 so a
// uint64 cell cannot overflow even if every sample lands in it.
const FixedPointBits = 60

func (p Policy) String() string {
	switch p {
	case Bilinear:
		return "bilinear"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bilinear", "splat":
		return Bilinear, nil
	case "nearest", "bin":
		return Nearest, nil
	default:
		return 0, fmt.Errorf("unknown deposit policy: %s", s)
	}
}

// Unit returns the per-point mass for a run of rep samples.
func (p Policy) Unit(rep int) uint64 {
	if p == Nearest || rep <= 0 {
		return 1
	}
	return (uint64(1) << FixedPointBits) / uint64(rep)
}

func clampIndex(i, w int) int {
	if i < 0 {
		return 0
	}
	if i >= w {
		return w - 1
	}
	return i
}

// toIndex converts a floored or rounded grid coordinate to a cell index,
// clamping anything outside [0, w).
func toIndex(f float64, w int) int {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= float64(w-1) {
		return w - 1
	}
	return int(f)
}

func depositNearest(g *Grid, gx, gy float64) {
	ix := toIndex(math.Round(gx), g.W)
	iy := toIndex(math.Round(gy), g.W)
	g.add(iy, ix, g.Unit)
}

// bilinearWeights splits pw over the four neighbours of (dx, dy). The last
// weight takes the remainder so the four always sum to exactly pw.
func bilinearWeights(pw uint64, dx, dy float64) (w00, w10, w01, w11 uint64) {
	fpw := float64(pw)
	rest := pw

	w00 = min(uint64(fpw*(1-dx)*(1-dy)), rest)
	rest -= w00
	w10 = min(uint64(fpw*dx*(1-dy)), rest)
	rest -= w10
	w01 = min(uint64(fpw*(1-dx)*dy), rest)
	rest -= w01
	w11 = rest
	return w00, w10, w01, w11
}

func depositBilinear(g *Grid, gx, gy float64) {
	fx := math.Floor(gx)
	fy := math.Floor(gy)
	dx := gx - fx
	dy := gy - fy

	w00, w10, w01, w11 := bilinearWeights(g.Unit, dx, dy)

	ix0 := toIndex(fx, g.W)
	iy0 := toIndex(fy, g.W)
	ix1 := clampIndex(ix0+1, g.W)
	iy1 := clampIndex(iy0+1, g.W)
	if fx < 0 {
		ix1 = 0
	}
	if fy < 0 {
		iy1 = 0
	}

	g.add(iy0, ix0, w00)
	g.add(iy0, ix1, w10)
	g.add(iy1, ix0, w01)
	g.add(iy1, ix1, w11)
}
