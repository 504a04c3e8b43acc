package render

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crossfill/filler"
	"github.com/domino14/crossfill/xword"
)

func solvedHook(t *testing.T) (*xword.Crossword, filler.Assignment) {
	t.Helper()
	cw, err := xword.New([]string{
		"_____",
		"_####",
		"_####",
	}, []string{"SIX", "SAILS"})
	if err != nil {
		t.Fatal(err)
	}
	return cw, filler.Assignment{
		{Row: 0, Col: 0, Length: 5, Direction: xword.Across}: "SAILS",
		{Row: 0, Col: 0, Length: 3, Direction: xword.Down}:   "SIX",
	}
}

func TestText(t *testing.T) {
	is := is.New(t)
	cw, asgn := solvedHook(t)
	is.Equal(Text(cw, asgn), strings.Join([]string{
		"SAILS",
		"I████",
		"X████",
		"",
	}, "\n"))
}

func TestTextPartialAssignment(t *testing.T) {
	is := is.New(t)
	cw, _ := solvedHook(t)
	partial := filler.Assignment{
		{Row: 0, Col: 0, Length: 3, Direction: xword.Down}: "SIX",
	}
	is.Equal(Text(cw, partial), strings.Join([]string{
		"S    ",
		"I████",
		"X████",
		"",
	}, "\n"))
}

func TestSavePNG(t *testing.T) {
	is := is.New(t)
	cw, asgn := solvedHook(t)
	path := filepath.Join(t.TempDir(), "out.png")
	is.NoErr(SavePNG(cw, asgn, path, 40))

	f, err := os.Open(path)
	is.NoErr(err)
	defer f.Close()
	img, err := png.Decode(f)
	is.NoErr(err)
	is.Equal(img.Bounds().Dx(), cw.Width*40)
	is.Equal(img.Bounds().Dy(), cw.Height*40)
}
