/*
DESCRIPTION
  ycbcr.go converts PGS palette entries (BT.709 limited-range YCbCr with
  an independent alpha channel) into straight RGBA, and holds the dense
  256-entry lookup tables PGS palettes decode into.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pgscolor converts PGS palette entries (BT.709 limited-range
// YCbCr with an independent alpha channel) into straight RGBA, and holds
// the dense 256-entry lookup tables PGS palettes decode into.
package pgscolor

import "image/color"

// BT.709 limited-range YCbCr-to-RGB coefficients, computed with floating
// point rather than a fixed-point approximation.
const (
	yScale  = 1.164383562
	crToR   = 1.792741071
	crToG   = 0.5329093286
	cbToG   = 0.2132486143
	cbToB   = 2.112401786
)

// Convert decodes one PGS palette entry into straight (non-premultiplied)
// RGBA. Alpha passes through unchanged.
func Convert(y, cr, cb, a uint8) color.RGBA {
	yf := (float64(y) - 16) * yScale
	cbf := float64(cb) - 128
	crf := float64(cr) - 128

	r := clamp(yf + crToR*crf + 0.5)
	g := clamp(yf - crToG*crf - cbToG*cbf + 0.5)
	b := clamp(yf + cbToB*cbf + 0.5)

	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp(v float64) uint8 {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	default:
		return uint8(v)
	}
}

// Palette is the 256-entry color lookup table a PDS segment populates.
// Any index never written by a PaletteDefinition decodes to
// fully-transparent black, which is also the zero value of Palette.
type Palette [256]color.RGBA

// NewPalette returns a Palette initialised to the default fill
// (y=16, cr=128, cb=128, a=0), which Convert maps to {0,0,0,0} — the same
// as the zero value, but constructed explicitly so the invariant doesn't
// rely on an implicit zero value elsewhere in the codebase.
func NewPalette() *Palette {
	var p Palette
	fill := Convert(16, 128, 128, 0)
	for i := range p {
		p[i] = fill
	}
	return &p
}

// Set writes a decoded palette entry into the table at idx.
func (p *Palette) Set(idx uint8, y, cr, cb, a uint8) {
	p[idx] = Convert(y, cr, cb, a)
}
