/*
DESCRIPTION
  compositor.go implements the PGS epoch/composition state machine: it
  accumulates palette, window, object, and composition segments and
  materialises a rendered Screen whenever the epoch boundary rules say one
  has become visible.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package compositor implements the PGS epoch/composition state machine:
// it accumulates palette, window, object, and composition segments and
// materialises a rendered Screen whenever the epoch boundary rules say
// one has become visible.
package compositor

import (
	"image"

	"github.com/reeftext/pgsx/codec/pgscolor"
	"github.com/reeftext/pgsx/pgs"
)

// Logger is the leveled-logging shape the Compositor accepts for
// reporting dropped screens; github.com/ausocean/utils/logging.Logger
// satisfies it.
type Logger interface {
	Warning(message string, params ...interface{})
}

// Screen is one rendered, cropped subtitle display: an RGBA bitmap and
// the screen-relative origin it was cropped from, along with the
// microsecond window (derived from PTS) it should be shown during.
type Screen struct {
	Image    *image.RGBA
	BeginUs  uint64
	DurUs    uint64
	X, Y     uint32
}

// Compositor is a stateful accumulator over one PGS epoch at a time. The
// zero value is not usable; construct with New.
type Compositor struct {
	log         Logger
	strictEpoch bool

	composition *pgs.PresentationComposition
	compObjects map[uint16]pgs.CompositionObject
	palettes    map[uint8]*pgscolor.Palette
	windows     map[uint8]pgs.WindowDefinition
	objectData  map[uint16]pgs.ObjectDefinition
	beginAt     *pgs.Timestamp
	endAt       *pgs.Timestamp
}

// New returns an empty Compositor. A nil Logger is valid; dropped screens
// are then simply not logged. When strictEpoch is true, a PCS carrying
// state EpochStart also forces a reset of the accumulators carried over
// from the previous epoch, in addition to the adopted empty-object-list
// emission rule (see Config.StrictEpoch in package extract).
func New(log Logger, strictEpoch bool) *Compositor {
	return &Compositor{
		log:         log,
		strictEpoch: strictEpoch,
		compObjects: make(map[uint16]pgs.CompositionObject),
		palettes:    make(map[uint8]*pgscolor.Palette),
		windows:     make(map[uint8]pgs.WindowDefinition),
		objectData:  make(map[uint16]pgs.ObjectDefinition),
	}
}

// Handle feeds one packet into the state machine. It returns a non-nil
// Screen when the packet closes out a display epoch. A non-nil error is
// either a *BadObjectDefinition (an ODS that failed validation) or a
// *InternalOverflow (a malformed object discovered during rasterisation);
// both are non-fatal to the Compositor — the caller should log them and
// continue feeding packets.
func (c *Compositor) Handle(pkt pgs.Packet) (*Screen, error) {
	switch pkt.Segment.Kind {
	case pgs.KindPCS:
		return c.handlePCS(pkt.PTS, pkt.Segment.PCS)
	case pgs.KindWDS:
		c.handleWDS(pkt.Segment.WDS)
		return nil, nil
	case pgs.KindPDS:
		c.handlePDS(pkt.Segment.PDS)
		return nil, nil
	case pgs.KindODS:
		return nil, c.handleODS(pkt.Segment.ODS)
	case pgs.KindEnd:
		return nil, nil
	default:
		return nil, nil
	}
}

func (c *Compositor) handlePCS(pts pgs.Timestamp, pcs *pgs.PresentationComposition) (*Screen, error) {
	if c.beginAt == nil || pts < *c.beginAt {
		t := pts
		c.beginAt = &t
	}
	if c.endAt == nil || pts > *c.endAt {
		t := pts
		c.endAt = &t
	}

	var screen *Screen
	var err error
	if len(pcs.Objects) == 0 {
		screen, err = c.generateScreen()
		if err != nil {
			c.warn(err)
		}
	}

	if c.strictEpoch && pcs.State == pgs.EpochStart {
		c.reset()
		t := pts
		c.beginAt, c.endAt = &t, &t
	}

	c.composition = pcs
	for _, obj := range pcs.Objects {
		c.compObjects[obj.ObjectID] = obj
	}

	return screen, err
}

func (c *Compositor) handleWDS(windows []pgs.WindowDefinition) {
	for _, w := range windows {
		c.windows[w.ID] = w
	}
}

func (c *Compositor) handlePDS(pds *pgs.PaletteDefinition) {
	p, ok := c.palettes[pds.ID]
	if !ok {
		p = pgscolor.NewPalette()
		c.palettes[pds.ID] = p
	}
	for _, e := range pds.Entries {
		p.Set(e.Index, e.Y, e.Cr, e.Cb, e.Alpha)
	}
}

func (c *Compositor) handleODS(ods *pgs.ObjectDefinition) error {
	if pgs.SumRunLengths(ods.RLE) != int(ods.Width)*int(ods.Height) {
		err := &BadObjectDefinition{ObjectID: ods.ID, Reason: "decoded RLE run total does not match width*height"}
		c.warn(err)
		return err
	}
	comp, ok := c.compObjects[ods.ID]
	if !ok {
		err := &BadObjectDefinition{ObjectID: ods.ID, Reason: "no composition object references this object id"}
		c.warn(err)
		return err
	}
	if _, ok := c.windows[comp.WindowID]; !ok {
		err := &BadObjectDefinition{ObjectID: ods.ID, Reason: "referenced window id is not yet defined"}
		c.warn(err)
		return err
	}

	c.objectData[ods.ID] = *ods
	return nil
}

func (c *Compositor) warn(err error) {
	if c.log != nil {
		c.log.Warning(err.Error())
	}
}

// reset clears every accumulator after a screen has been emitted, ready
// for the next epoch.
func (c *Compositor) reset() {
	for k := range c.palettes {
		delete(c.palettes, k)
	}
	for k := range c.compObjects {
		delete(c.compObjects, k)
	}
	for k := range c.objectData {
		delete(c.objectData, k)
	}
	for k := range c.windows {
		delete(c.windows, k)
	}
	c.composition = nil
	c.beginAt = nil
	c.endAt = nil
}
