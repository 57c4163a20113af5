// Package raster lays out intensity grids as grayscale images and writes
// them to disk.
package raster

import (
	"image"

	"github.com/san-kum/mira/internal/tone"
)

// Assemble builds the output image from an intensity grid. The grid is
// indexed (row=y-bin, col=x-bin); the image stores x-bins along rows, so
// buffer offset xBin*w+yBin holds grid cell (yBin, xBin).
func Assemble(in *tone.Intensity) *image.Gray {
	w := in.W
	img := image.NewGray(image.Rect(0, 0, w, w))
	for yBin := 0; yBin < w; yBin++ {
		row := in.Pix[yBin*w : (yBin+1)*w]
		for xBin, v := range row {
			img.Pix[xBin*img.Stride+yBin] = v
		}
	}
	return img
}
