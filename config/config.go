package config

import "github.com/namsral/flag"

type Config struct {
	Debug         bool
	PuzzlePath    string
	WordsEncoding string
	CellSize      int
	SearchLogPath string

	// Args holds the remaining positional arguments:
	// structure-file words-file [image-output].
	Args []string
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("crossfill", flag.ContinueOnError)
	fs.BoolVar(&c.Debug, "debug", false, "log debug output, including search statistics")
	fs.StringVar(&c.PuzzlePath, "puzzle", "", "a YAML puzzle bundle; replaces the structure and words arguments")
	fs.StringVar(&c.WordsEncoding, "words-encoding", "", "word list encoding; utf-8 (default) or iso-8859-1")
	fs.IntVar(&c.CellSize, "cell-size", 100, "cell edge length in pixels for image output")
	fs.StringVar(&c.SearchLogPath, "search-log", "", "write a YAML log of search decisions to this file")
	err := fs.Parse(args)
	c.Args = fs.Args()
	return err
}
