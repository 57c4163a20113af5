package density

import "fmt"

// Grid is a w×w row-major density grid. Row is the y-bin and column the
// x-bin. Cells are only ever incremented.
type Grid struct {
	W int
	// Unit is the mass each orbit point deposits.
	Unit  uint64
	Cells []uint64
}

func NewGrid(w int, unit uint64) *Grid {
	return &Grid{W: w, Unit: unit, Cells: make([]uint64, w*w)}
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) uint64 {
	return g.Cells[row*g.W+col]
}

func (g *Grid) add(row, col int, v uint64) {
	g.Cells[row*g.W+col] += v
}

func (g *Grid) Max() uint64 {
	var m uint64
	for _, v := range g.Cells {
		if v > m {
			m = v
		}
	}
	return m
}

// Mass returns the total deposited weight.
func (g *Grid) Mass() uint64 {
	var s uint64
	for _, v := range g.Cells {
		s += v
	}
	return s
}

// Occupied returns the number of cells with non-zero mass.
func (g *Grid) Occupied() int {
	n := 0
	for _, v := range g.Cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Merge adds o into g elementwise.
func (g *Grid) Merge(o *Grid) error {
	if o.W != g.W || o.Unit != g.Unit {
		return fmt.Errorf("density: cannot merge %dx%d grid (unit %d) into %dx%d grid (unit %d)",
			o.W, o.W, o.Unit, g.W, g.W, g.Unit)
	}
	for i, v := range o.Cells {
		g.Cells[i] += v
	}
	return nil
}
