package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/domino14/crossfill/filler"
	"github.com/domino14/crossfill/xword"
)

const cellBorder = 2

// SavePNG writes the assignment as a PNG: white cells on a black canvas,
// letters centered in their cells. cellSize is the edge length of one cell
// in pixels.
func SavePNG(cw *xword.Crossword, asgn filler.Assignment, filename string, cellSize int) error {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(cellSize) * 0.8,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, cw.Width*cellSize, cw.Height*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	letters := LetterGrid(cw, asgn)
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	metrics := face.Metrics()
	interior := cellSize - 2*cellBorder

	for i := 0; i < cw.Height; i++ {
		for j := 0; j < cw.Width; j++ {
			if !cw.CellOpen(i, j) {
				continue
			}
			cell := image.Rect(
				j*cellSize+cellBorder, i*cellSize+cellBorder,
				(j+1)*cellSize-cellBorder, (i+1)*cellSize-cellBorder,
			)
			draw.Draw(img, cell, image.NewUniform(color.White), image.Point{}, draw.Src)
			if letters[i][j] == 0 {
				continue
			}
			s := string(letters[i][j])
			adv := drawer.MeasureString(s)
			x := j*cellSize + cellBorder + (interior-adv.Ceil())/2
			y := i*cellSize + cellBorder +
				(interior+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
			drawer.Dot = fixed.P(x, y)
			drawer.DrawString(s)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
