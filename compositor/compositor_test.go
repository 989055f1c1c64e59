/*
DESCRIPTION
  compositor_test.go provides testing for Compositor's epoch state machine
  and screen rasterisation.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package compositor

import (
	"image/color"
	"testing"

	"github.com/reeftext/pgsx/pgs"
)

type testLogger struct {
	warnings []string
}

func (l *testLogger) Warning(message string, params ...interface{}) {
	l.warnings = append(l.warnings, message)
}

func soloRun(col uint8, count int) []pgs.RLEEntry {
	entries := make([]pgs.RLEEntry, count)
	for i := range entries {
		entries[i] = pgs.RLEEntry{Kind: pgs.EntrySingle, Color: col}
	}
	return entries
}

func TestHandleEmptyStreamEmitsNothing(t *testing.T) {
	c := New(nil, false)
	screen, err := c.Handle(pgs.Packet{
		PTS: 0,
		Segment: pgs.Segment{
			Kind: pgs.KindPCS,
			PCS:  &pgs.PresentationComposition{State: pgs.EpochStart},
		},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if screen != nil {
		t.Fatalf("want no screen for an empty-object epoch start, got %+v", screen)
	}
}

// TestHandleSingleEpochTwoLineSubtitle builds one full epoch — a 4x2 solid
// white object inside a 4x2 window — and checks the emitted Screen's
// geometry, timing, and pixel contents.
func TestHandleSingleEpochTwoLineSubtitle(t *testing.T) {
	c := New(nil, false)

	feed := func(pts pgs.Timestamp, seg pgs.Segment) *Screen {
		screen, err := c.Handle(pgs.Packet{PTS: pts, Segment: seg})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		return screen
	}

	feed(900, pgs.Segment{
		Kind: pgs.KindPCS,
		PCS: &pgs.PresentationComposition{
			Width: 100, Height: 100,
			State:     pgs.EpochStart,
			PaletteID: 0,
			Objects:   []pgs.CompositionObject{{ObjectID: 1, WindowID: 0, X: 50, Y: 50}},
		},
	})
	feed(900, pgs.Segment{
		Kind: pgs.KindWDS,
		WDS:  []pgs.WindowDefinition{{ID: 0, X: 50, Y: 50, Width: 4, Height: 2}},
	})
	feed(900, pgs.Segment{
		Kind: pgs.KindPDS,
		PDS: &pgs.PaletteDefinition{
			ID: 0,
			Entries: []pgs.PaletteEntry{
				{Index: 1, Y: 235, Cr: 128, Cb: 128, Alpha: 255},
			},
		},
	})
	feed(900, pgs.Segment{
		Kind: pgs.KindODS,
		ODS: &pgs.ObjectDefinition{
			ID: 1, Width: 4, Height: 2,
			RLE: soloRun(1, 8),
		},
	})
	screen := feed(1800, pgs.Segment{
		Kind: pgs.KindPCS,
		PCS: &pgs.PresentationComposition{
			Width: 100, Height: 100,
			State:   pgs.Normal,
			Objects: nil,
		},
	})

	if screen == nil {
		t.Fatal("want a screen on epoch close, got nil")
	}
	if got, want := screen.BeginUs, pgs.Timestamp(900).ToMicros(); got != want {
		t.Errorf("BeginUs = %d, want %d", got, want)
	}
	if got, want := screen.DurUs, pgs.Timestamp(1800).ToMicros()-pgs.Timestamp(900).ToMicros(); got != want {
		t.Errorf("DurUs = %d, want %d", got, want)
	}
	// Padding: padX = floor(100*0.12) = 12, padY = floor(100*0.03) = 3.
	// The object sits at (50,50), with plenty of room to pad on every
	// side, so the full symmetric padding applies.
	if got, want := screen.X, uint32(50-12); got != want {
		t.Errorf("X = %d, want %d", got, want)
	}
	if got, want := screen.Y, uint32(50-3); got != want {
		t.Errorf("Y = %d, want %d", got, want)
	}
	bounds := screen.Image.Bounds()
	if got, want := bounds.Dx(), 4+2*12; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got, want := bounds.Dy(), 2+2*3; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
	white := color.RGBA{255, 255, 255, 255}
	if got := screen.Image.RGBAAt(12, 3); got != white {
		t.Errorf("pixel (12,3) = %+v, want %+v", got, white)
	}
	if got := screen.Image.RGBAAt(15, 4); got != white {
		t.Errorf("pixel (15,4) = %+v, want %+v", got, white)
	}
	// Outside the object but inside padding: should remain zero-value
	// (fully transparent), since nothing was rasterised there.
	if got, want := screen.Image.RGBAAt(0, 0), (color.RGBA{}); got != want {
		t.Errorf("pixel (0,0) = %+v, want %+v", got, want)
	}
}

func TestHandleMidEpochPaletteUpdate(t *testing.T) {
	c := New(nil, false)
	feed := func(pts pgs.Timestamp, seg pgs.Segment) *Screen {
		screen, err := c.Handle(pgs.Packet{PTS: pts, Segment: seg})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		return screen
	}

	feed(0, pgs.Segment{Kind: pgs.KindPCS, PCS: &pgs.PresentationComposition{
		State: pgs.EpochStart, Objects: []pgs.CompositionObject{{ObjectID: 1, WindowID: 0}},
	}})
	feed(0, pgs.Segment{Kind: pgs.KindWDS, WDS: []pgs.WindowDefinition{{ID: 0, Width: 1, Height: 1}}})
	feed(0, pgs.Segment{Kind: pgs.KindPDS, PDS: &pgs.PaletteDefinition{
		ID: 0, Entries: []pgs.PaletteEntry{{Index: 1, Y: 16, Cr: 128, Cb: 128, Alpha: 255}},
	}})
	// A second PDS for the same palette ID overwrites the one entry we care
	// about, simulating a mid-epoch palette animation frame.
	feed(0, pgs.Segment{Kind: pgs.KindPDS, PDS: &pgs.PaletteDefinition{
		ID: 0, Entries: []pgs.PaletteEntry{{Index: 1, Y: 235, Cr: 128, Cb: 128, Alpha: 255}},
	}})
	feed(0, pgs.Segment{Kind: pgs.KindODS, ODS: &pgs.ObjectDefinition{
		ID: 1, Width: 1, Height: 1, RLE: soloRun(1, 1),
	}})
	screen := feed(100, pgs.Segment{Kind: pgs.KindPCS, PCS: &pgs.PresentationComposition{State: pgs.Normal}})

	if screen == nil {
		t.Fatal("want a screen, got nil")
	}
	if got, want := screen.Image.RGBAAt(0, 0), (color.RGBA{255, 255, 255, 255}); got != want {
		t.Errorf("pixel reflects stale palette entry: got %+v, want %+v", got, want)
	}
}

func TestHandleODSRejectsWidthHeightMismatch(t *testing.T) {
	c := New(nil, false)
	_, err := c.Handle(pgs.Packet{Segment: pgs.Segment{
		Kind: pgs.KindODS,
		ODS:  &pgs.ObjectDefinition{ID: 9, Width: 4, Height: 4, RLE: soloRun(1, 3)},
	}})
	if err == nil {
		t.Fatal("want error for RLE sum mismatch, got nil")
	}
	bad, ok := err.(*BadObjectDefinition)
	if !ok {
		t.Fatalf("want *BadObjectDefinition, got %T", err)
	}
	if bad.ObjectID != 9 {
		t.Errorf("ObjectID = %d, want 9", bad.ObjectID)
	}
}

func TestHandleODSRejectsUnknownCompositionObject(t *testing.T) {
	c := New(nil, false)
	_, err := c.Handle(pgs.Packet{Segment: pgs.Segment{
		Kind: pgs.KindODS,
		ODS:  &pgs.ObjectDefinition{ID: 9, Width: 1, Height: 1, RLE: soloRun(1, 1)},
	}})
	if _, ok := err.(*BadObjectDefinition); !ok {
		t.Fatalf("want *BadObjectDefinition for unreferenced object, got %v (%T)", err, err)
	}
}

func TestHandleStrictEpochResetsCarriedPalette(t *testing.T) {
	log := &testLogger{}
	c := New(log, true)

	c.Handle(pgs.Packet{PTS: 0, Segment: pgs.Segment{Kind: pgs.KindPDS, PDS: &pgs.PaletteDefinition{
		ID: 0, Entries: []pgs.PaletteEntry{{Index: 1, Y: 235, Cr: 128, Cb: 128, Alpha: 255}},
	}}})

	// A fresh EpochStart with StrictEpoch set should wipe the palette
	// accumulated above, so an object referencing index 1 without a new
	// PDS renders the default transparent-black fill.
	c.Handle(pgs.Packet{PTS: 10, Segment: pgs.Segment{Kind: pgs.KindPCS, PCS: &pgs.PresentationComposition{
		State: pgs.EpochStart, Objects: []pgs.CompositionObject{{ObjectID: 1, WindowID: 0}},
	}}})
	c.Handle(pgs.Packet{PTS: 10, Segment: pgs.Segment{Kind: pgs.KindWDS, WDS: []pgs.WindowDefinition{
		{ID: 0, Width: 1, Height: 1},
	}}})
	c.Handle(pgs.Packet{PTS: 10, Segment: pgs.Segment{Kind: pgs.KindODS, ODS: &pgs.ObjectDefinition{
		ID: 1, Width: 1, Height: 1, RLE: soloRun(1, 1),
	}}})
	screen, err := c.Handle(pgs.Packet{PTS: 20, Segment: pgs.Segment{Kind: pgs.KindPCS, PCS: &pgs.PresentationComposition{
		State: pgs.Normal,
	}}})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if screen == nil {
		t.Fatal("want a screen, got nil")
	}
	if got, want := screen.Image.RGBAAt(0, 0), (color.RGBA{}); got != want {
		t.Errorf("pixel after strict-epoch reset = %+v, want %+v (palette not carried over)", got, want)
	}
	if got, want := screen.BeginUs, pgs.Timestamp(10).ToMicros(); got != want {
		t.Errorf("BeginUs after strict reset = %d, want %d", got, want)
	}
}
