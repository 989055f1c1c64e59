/*
DESCRIPTION
  rle.go decodes the run-length-coded bitmap data carried by an ODS
  segment's payload.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pgs

// RLEEntry is one decoded unit of a PGS run-length-coded bitmap row: a
// single opaque byte, a repeated run of one color, or an explicit
// end-of-line marker.
type RLEEntry struct {
	// Kind selects which field is meaningful: EntrySingle uses Color only
	// (one pixel), EntryRepeated uses both Count and Color, EntryEndOfLine
	// uses neither.
	Kind  RLEKind
	Count uint16
	Color uint8
}

// RLEKind tags an RLEEntry's variant.
type RLEKind uint8

const (
	EntrySingle RLEKind = iota
	EntryRepeated
	EntryEndOfLine
)

// DecodeRLE expands a PGS object-data payload into a flat run stream,
// per the six-row escape-byte table: a nonzero byte is a single opaque
// pixel; 0x00 introduces an escape sequence whose second byte's top two
// bits select a short run, a long run, a short colored run, or a long
// colored run, with 0x00 0x00 as the explicit end-of-line marker.
// Decoding runs until buf is exhausted; truncation at any stage of an
// escape sequence is a *ParseError naming the offset the truncation was
// found at (offset is relative to the start of buf).
func DecodeRLE(buf []byte) ([]RLEEntry, error) {
	var out []RLEEntry
	i := 0
	for i < len(buf) {
		b0 := buf[i]
		if b0 != 0x00 {
			out = append(out, RLEEntry{Kind: EntrySingle, Color: b0})
			i++
			continue
		}

		if i+1 >= len(buf) {
			return nil, parseErrorf(int64(i), "truncated RLE escape sequence")
		}
		b1 := buf[i+1]

		if b1 == 0x00 {
			out = append(out, RLEEntry{Kind: EntryEndOfLine})
			i += 2
			continue
		}

		switch b1 & 0xC0 {
		case 0x00:
			out = append(out, RLEEntry{Kind: EntryRepeated, Count: uint16(b1 & 0x3F), Color: 0})
			i += 2
		case 0x40:
			if i+2 >= len(buf) {
				return nil, parseErrorf(int64(i), "truncated long RLE run")
			}
			b2 := buf[i+2]
			count := (uint16(b1&0x3F) << 8) | uint16(b2)
			out = append(out, RLEEntry{Kind: EntryRepeated, Count: count, Color: 0})
			i += 3
		case 0x80:
			if i+2 >= len(buf) {
				return nil, parseErrorf(int64(i), "truncated colored RLE run")
			}
			b2 := buf[i+2]
			out = append(out, RLEEntry{Kind: EntryRepeated, Count: uint16(b1 & 0x3F), Color: b2})
			i += 3
		case 0xC0:
			if i+3 >= len(buf) {
				return nil, parseErrorf(int64(i), "truncated long colored RLE run")
			}
			b2, b3 := buf[i+2], buf[i+3]
			count := (uint16(b1&0x3F) << 8) | uint16(b2)
			out = append(out, RLEEntry{Kind: EntryRepeated, Count: count, Color: b3})
			i += 4
		}
	}
	return out, nil
}

// RunLength returns the number of pixels an RLEEntry expands to: 1 for a
// single pixel, Count for a repeated run, 0 for an end-of-line marker.
func (e RLEEntry) RunLength() int {
	switch e.Kind {
	case EntrySingle:
		return 1
	case EntryRepeated:
		return int(e.Count)
	default:
		return 0
	}
}

// SumRunLengths totals RunLength over a decoded RLE stream, the quantity
// an ObjectDefinition's Width*Height must equal for the object to be
// well-formed (spec invariant, enforced by package compositor).
func SumRunLengths(entries []RLEEntry) int {
	n := 0
	for _, e := range entries {
		n += e.RunLength()
	}
	return n
}
