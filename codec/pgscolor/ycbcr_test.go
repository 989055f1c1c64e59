/*
DESCRIPTION
  ycbcr_test.go provides testing for Convert and Palette.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pgscolor

import (
	"image/color"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name         string
		y, cr, cb, a uint8
		want         color.RGBA
	}{
		{"black transparent", 16, 128, 128, 0, color.RGBA{0, 0, 0, 0}},
		{"white opaque", 235, 128, 128, 255, color.RGBA{255, 255, 255, 255}},
		{"pure red", 81, 240, 90, 255, color.RGBA{R: 255, G: 24, B: 0, A: 255}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Convert(test.y, test.cr, test.cb, test.a)
			if got != test.want {
				t.Errorf("Convert(%d,%d,%d,%d) = %+v, want %+v", test.y, test.cr, test.cb, test.a, got, test.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v    float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{128.4, 128},
		{255, 255},
		{300, 255},
	}
	for _, test := range tests {
		if got := clamp(test.v); got != test.want {
			t.Errorf("clamp(%v) = %d, want %d", test.v, got, test.want)
		}
	}
}

func TestNewPaletteDefaultFill(t *testing.T) {
	p := NewPalette()
	want := color.RGBA{0, 0, 0, 0}
	for i, c := range p {
		if c != want {
			t.Fatalf("palette[%d] = %+v, want %+v", i, c, want)
		}
	}
}

func TestPaletteSet(t *testing.T) {
	p := NewPalette()
	p.Set(5, 235, 128, 128, 255)
	if got, want := p[5], (color.RGBA{255, 255, 255, 255}); got != want {
		t.Errorf("palette[5] = %+v, want %+v", got, want)
	}
	if got, want := p[0], (color.RGBA{0, 0, 0, 0}); got != want {
		t.Errorf("palette[0] should be untouched: got %+v, want %+v", got, want)
	}
}
