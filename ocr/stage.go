/*
DESCRIPTION
  stage.go stages rendered screens to temporary WebP files on disk, for
  handoff to an external OCR process that wants a file path rather than
  an in-memory image.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ocr

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	nativewebp "github.com/HugoSmits86/nativewebp"
)

// Stager writes screens to temporary WebP files for handoff to an
// external OCR process that wants a file path rather than an in-memory
// image.
type Stager struct {
	dir string
}

// NewStager creates a fresh temp directory to stage screens into.
func NewStager() (*Stager, error) {
	dir, err := os.MkdirTemp("", "pgsx-stage-*")
	if err != nil {
		return nil, fmt.Errorf("create stage dir: %w", err)
	}
	return &Stager{dir: dir}, nil
}

// Stage writes img to a WebP file named after frameIndex and returns its
// path.
func (s *Stager) Stage(frameIndex int, img image.Image) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("screen-%06d.webp", frameIndex))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return "", fmt.Errorf("encode staged screen %d: %w", frameIndex, err)
	}
	return path, nil
}

// Close removes the stage directory and everything in it.
func (s *Stager) Close() error {
	return os.RemoveAll(s.dir)
}
