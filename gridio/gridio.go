// Package gridio loads crossword structure files, word lists, and YAML
// puzzle bundles. It is the only place that touches the filesystem; the
// puzzle model and the filler are purely in-memory.
package gridio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/domino14/crossfill/xword"
)

var ErrNoWordSource = errors.New("puzzle bundle must set exactly one of words or words_file")

// LoadStructure reads a grid layout: one line per row, xword.OpenCell for a
// fillable cell, anything else for a block. Trailing carriage returns are
// stripped so Windows-edited files behave.
func LoadStructure(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLines(f), nil
}

// LoadWords reads a word list, one word per line. Uppercasing and
// deduplication happen in xword.New. Word lists predating Unicode are often
// ISO 8859-1; pass encoding "iso-8859-1" (or "latin1") to decode them,
// anything else is read as UTF-8.
func LoadWords(filename string, encoding string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported word list encoding %q", encoding)
	}

	words := readLines(r)
	log.Debug().Int("words", len(words)).Str("file", filename).
		Msg("loaded word list")
	return words, nil
}

type puzzleFile struct {
	Structure []string `yaml:"structure"`
	Words     []string `yaml:"words,omitempty"`
	WordsFile string   `yaml:"words_file,omitempty"`
	Encoding  string   `yaml:"encoding,omitempty"`
}

// LoadPuzzle reads a YAML bundle holding the structure rows and either an
// inline word list or a words_file path, resolved relative to the bundle.
func LoadPuzzle(filename string) (*xword.Crossword, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var pf puzzleFile
	if err = yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parsing puzzle bundle: %w", err)
	}
	if (len(pf.Words) == 0) == (pf.WordsFile == "") {
		return nil, ErrNoWordSource
	}
	words := pf.Words
	if pf.WordsFile != "" {
		words, err = LoadWords(filepath.Join(filepath.Dir(filename), pf.WordsFile), pf.Encoding)
		if err != nil {
			return nil, err
		}
	}
	return xword.New(pf.Structure, words)
}

func readLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}
