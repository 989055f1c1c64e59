/*
DESCRIPTION
  engine.go defines Engine, the OCR interface a Screen is handed off to,
  and NopEngine, a no-op default implementation.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ocr provides reference implementations of the external
// collaborators a Screen is handed off to: an OCR engine, an SRT
// formatter, a work-distribution pool, and on-disk image staging. Nothing
// in package pgs, compositor, or extract imports this package — it
// exists only to make the CLI in cmd/pgsx runnable end to end.
package ocr

import (
	"context"
	"image"
)

// Engine recognizes text within a subtitle image. A real OCR backend
// (e.g. a tesseract binding) is an external collaborator and is not
// reimplemented here; NopEngine is the shipped default and callers
// supply their own Engine for real OCR.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// NopEngine is an Engine that performs no recognition, always returning
// the empty string. It exists so the pipeline is runnable without an OCR
// backend wired in.
type NopEngine struct{}

// Recognize implements Engine.
func (NopEngine) Recognize(context.Context, image.Image) (string, error) {
	return "", nil
}
