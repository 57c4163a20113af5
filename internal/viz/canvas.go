package viz

import (
	"image"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Thumbnail downsamples a grayscale image onto a cols×rows Braille canvas.
// Each dot covers a block of source pixels and is lit when the brightest
// pixel in the block reaches threshold.
func Thumbnail(img *image.Gray, cols, rows int, threshold uint8) *Canvas {
	c := NewCanvas(cols, rows)
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	dw, dh := cols*2, rows*4
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return c
	}

	for dy := 0; dy < dh; dy++ {
		y0 := dy * sh / dh
		y1 := max((dy+1)*sh/dh, y0+1)
		for dx := 0; dx < dw; dx++ {
			x0 := dx * sw / dw
			x1 := max((dx+1)*sw/dw, x0+1)
			if blockMax(img, b.Min.X+x0, b.Min.Y+y0, b.Min.X+x1, b.Min.Y+y1) >= threshold {
				c.Set(dx, dy)
			}
		}
	}
	return c
}

func blockMax(img *image.Gray, x0, y0, x1, y1 int) uint8 {
	var m uint8
	for y := y0; y < y1; y++ {
		row := img.Pix[img.PixOffset(x0, y):img.PixOffset(x1, y)]
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}
