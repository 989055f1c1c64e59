/*
DESCRIPTION
  pgsx extracts subtitle screens from a PGS (Presentation Graphic Stream)
  elementary stream, OCRs them, and writes an SRT file.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the pgsx command-line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/reeftext/pgsx/extract"
	"github.com/reeftext/pgsx/ocr"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = false
)

const pkg = "pgsx: "

func main() {
	var (
		workers     int
		strictEpoch bool
		logPath     string
	)

	root := &cobra.Command{
		Use:     "pgsx <input.pgs> <output.srt>",
		Short:   "Extract subtitle text from a PGS stream into an SRT file",
		Version: version,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1], workers, strictEpoch, logPath)
		},
	}
	root.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of concurrent OCR workers")
	root.Flags().BoolVar(&strictEpoch, "strict-epoch", false, "reset composition state at every epoch start")
	root.Flags().StringVar(&logPath, "log", "", "log file path (empty logs to stderr only)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, inPath, outPath string, workers int, strictEpoch bool, logPath string) error {
	var w io.Writer = os.Stderr
	if logPath != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		})
	}
	log := logging.New(logging.Info, w, logSuppress)
	log.Info(pkg+"starting", "version", version, "input", inPath, "output", outPath)

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	stager, err := ocr.NewStager()
	if err != nil {
		return fmt.Errorf("create stager: %w", err)
	}
	defer stager.Close()

	pool := ocr.NewPool(workers, ocr.NopEngine{})
	jobs := make(chan ocr.Job, workers)

	driver := extract.New(extract.Config{Logger: log, StrictEpoch: strictEpoch})

	var runErr error
	done := make(chan struct{})
	var results []ocr.Result
	go func() {
		defer close(done)
		results = pool.Run(ctx, jobs)
	}()

	runErr = driver.Run(ctx, in, func(s extract.Screen) error {
		if _, err := stager.Stage(s.FrameIndex, s.Image); err != nil {
			log.Warning(pkg+"failed to stage screen", "frame", s.FrameIndex, "error", err.Error())
		}
		jobs <- ocr.Job{
			FrameIndex: s.FrameIndex,
			Image:      s.Image,
			BeginUs:    s.BeginUs,
			DurUs:      s.DurUs,
		}
		return nil
	})
	close(jobs)
	<-done

	if runErr != nil {
		return fmt.Errorf("extract: %w", runErr)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	for _, r := range results {
		if r.Err != nil {
			log.Warning(pkg+"ocr failed", "frame", r.FrameIndex, "error", r.Err.Error())
			continue
		}
		if _, err := io.WriteString(out, ocr.FormatSRT(r.FrameIndex, r.BeginUs, r.DurUs, r.Text)); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}

	log.Info(pkg+"done", "screens", len(results))
	return nil
}
