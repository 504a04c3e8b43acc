package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/filler"
	"github.com/domino14/crossfill/gridio"
	"github.com/domino14/crossfill/render"
	"github.com/domino14/crossfill/xword"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: crossfill [flags] structure-file word-list [output.png]")
	fmt.Fprintln(os.Stderr, "   or: crossfill [flags] -puzzle bundle.yaml [output.png]")
	os.Exit(2)
}

func loadCrossword(ctx context.Context, cfg *config.Config) (*xword.Crossword, string) {
	if cfg.PuzzlePath != "" {
		if len(cfg.Args) > 1 {
			usage()
		}
		imageOut := ""
		if len(cfg.Args) == 1 {
			imageOut = cfg.Args[0]
		}
		cw, err := gridio.LoadPuzzle(cfg.PuzzlePath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading puzzle bundle")
		}
		return cw, imageOut
	}

	if len(cfg.Args) != 2 && len(cfg.Args) != 3 {
		usage()
	}
	imageOut := ""
	if len(cfg.Args) == 3 {
		imageOut = cfg.Args[2]
	}

	var structure, words []string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		structure, err = gridio.LoadStructure(cfg.Args[0])
		return err
	})
	g.Go(func() error {
		var err error
		words, err = gridio.LoadWords(cfg.Args[1], cfg.WordsEncoding)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("loading inputs")
	}
	cw, err := xword.New(structure, words)
	if err != nil {
		log.Fatal().Err(err).Msg("building puzzle")
	}
	return cw, imageOut
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cw, imageOut := loadCrossword(ctx, cfg)

	solver := filler.NewSolver(cw)
	if cfg.SearchLogPath != "" {
		f, err := os.Create(cfg.SearchLogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("creating search log")
		}
		defer f.Close()
		solver.SetLogStream(f)
	}

	asgn, err := solver.Solve(ctx)
	if errors.Is(err, filler.ErrNoSolution) {
		fmt.Println("No solution.")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	fmt.Print(render.Text(cw, asgn))
	if imageOut != "" {
		if err := render.SavePNG(cw, asgn, imageOut, cfg.CellSize); err != nil {
			log.Fatal().Err(err).Msg("saving image")
		}
	}
}
