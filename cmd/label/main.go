package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pageza/vegfinder/backend/internal/dataset"
	"github.com/pageza/vegfinder/backend/internal/logger"
)

func main() {
	out := flag.String("out", "", "Write the labeled CSV here instead of rewriting the input")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-out labeled.csv] dataset.csv\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Init(logger.Config{Level: os.Getenv("LOG_LEVEL"), Format: "console"})

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	in := flag.Arg(0)

	dest := *out
	if dest == "" {
		dest = in
	}

	stats, err := label(in, dest)
	if err != nil {
		logger.Fatal().Err(err).Str("input", in).Msg("Labeling failed")
	}
	logger.Info().
		Int("rows", stats.Rows).
		Int("vegetarian", stats.Vegetarian).
		Str("output", dest).
		Msg("Dataset labeled")
}

// label writes to a temp file beside dest and renames it into place
func label(in, dest string) (dataset.LabelStats, error) {
	src, err := os.Open(in)
	if err != nil {
		return dataset.LabelStats{}, fmt.Errorf("failed to open %s: %w", in, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".label-*.csv")
	if err != nil {
		return dataset.LabelStats{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	stats, err := dataset.LabelCSV(src, tmp)
	if err != nil {
		tmp.Close()
		return stats, err
	}
	if err := tmp.Close(); err != nil {
		return stats, fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return stats, fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	return stats, nil
}
