/*
DESCRIPTION
  segment.go defines the wire-level types for the Presentation Graphic
  Stream (PGS) bitmap-subtitle format: the packet and segment framing,
  and the five HDMV segment variants.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pgs provides decoding of the Presentation Graphic Stream (PGS)
// bitmap-subtitle format used for Blu-ray overlay subtitles: the packet
// framing, the five HDMV segment variants, and the RLE bitmap codec they
// carry. It performs no rendering; see package compositor for that.
package pgs

// Timestamp is a 90kHz tick count, as carried by every PGS packet.
type Timestamp uint32

// ToMicros converts a Timestamp to microseconds, dividing before scaling
// so the rounding matches the wire format's 90kHz tick resolution.
func (t Timestamp) ToMicros() uint64 {
	return (uint64(t) / 9) * 100
}

// CompositionState describes the role a PresentationComposition plays
// within its epoch.
type CompositionState uint8

// Composition states, keyed by their wire value.
const (
	Normal           CompositionState = 0x00
	AcquisitionPoint CompositionState = 0x40
	EpochStart       CompositionState = 0x80
)

func (s CompositionState) String() string {
	switch s {
	case Normal:
		return "Normal"
	case AcquisitionPoint:
		return "AcquisitionPoint"
	case EpochStart:
		return "EpochStart"
	default:
		return "Unknown"
	}
}

// Crop is the optional crop rectangle attached to a CompositionObject, in
// object-local coordinates.
type Crop struct {
	X, Y, Width, Height uint16
}

// CompositionObject places an Object into a Window at screen coordinates,
// optionally restricted to a sub-rectangle of the object.
type CompositionObject struct {
	ObjectID uint16
	WindowID uint8
	X, Y     uint16
	Crop     *Crop // nil when the object is not cropped.
}

// PresentationComposition is the PCS segment: it names the screen
// dimensions, declares the epoch/composition state, and lists the objects
// composed onto the screen at this point in the stream.
type PresentationComposition struct {
	Width, Height     uint16
	CompositionNumber uint16
	State             CompositionState
	PaletteUpdate     bool
	PaletteID         uint8
	Objects           []CompositionObject
}

// WindowDefinition is one window of a WDS segment, in screen coordinates.
type WindowDefinition struct {
	ID     uint8
	X, Y   uint16
	Width  uint16
	Height uint16
}

// PaletteEntry is one color slot of a PDS segment, in BT.709 limited-range
// YCbCr with alpha.
type PaletteEntry struct {
	Index           uint8
	Y, Cr, Cb, Alpha uint8
}

// PaletteDefinition is the PDS segment: a set of entries to merge into the
// 256-slot table for PaletteID.
type PaletteDefinition struct {
	ID      uint8
	Version uint8
	Entries []PaletteEntry
}

// ObjectDefinition is the ODS segment: a run-length-coded bitmap.
type ObjectDefinition struct {
	ID              uint16
	Version         uint8
	FirstInSequence bool
	LastInSequence  bool
	Width, Height   uint16
	RLE             []RLEEntry
}

// SegmentKind tags which variant a Segment holds.
type SegmentKind uint8

// Segment kinds, keyed by their wire type byte.
const (
	KindPCS SegmentKind = 0x16
	KindWDS SegmentKind = 0x17
	KindPDS SegmentKind = 0x14
	KindODS SegmentKind = 0x15
	KindEnd SegmentKind = 0x80
)

// Segment is a tagged union over the five HDMV segment variants. Exactly
// one of PCS, WDS, PDS, ODS is non-nil, selected by Kind; KindEnd carries
// no payload.
type Segment struct {
	Kind SegmentKind
	PCS  *PresentationComposition
	WDS  []WindowDefinition
	PDS  *PaletteDefinition
	ODS  *ObjectDefinition
}

// Packet is one framed unit of the stream: a timestamp pair and the
// segment they carry.
type Packet struct {
	PTS, DTS Timestamp
	Segment  Segment
}
