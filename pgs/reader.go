/*
DESCRIPTION
  reader.go decodes a byte stream into a sequence of PGS Packets: the
  13-byte packet header, then each of the five HDMV segment variants.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pgs

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const magic = 0x5047 // "PG"

// Reader decodes a sequence of Packets from an underlying byte stream,
// tracking the byte offset it has consumed so that a *ParseError can
// report where in the stream it occurred.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader returns a Reader that decodes packets from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed from the underlying stream
// so far.
func (dr *Reader) Offset() int64 { return dr.offset }

type packetHeader struct {
	Magic       uint16
	PTS         uint32
	DTS         uint32
	SegmentType uint8
	SegmentSize uint16
}

// ReadPacket decodes one Packet, advancing the Reader past it. It returns
// io.EOF (unwrapped) when the stream ends cleanly at a packet boundary;
// any other error is a *ParseError, or for a malformed composition object
// a github.com/pkg/errors wrapper around one (use errors.As to unwrap it).
func (dr *Reader) ReadPacket() (*Packet, error) {
	var h packetHeader
	if err := binary.Read(dr.r, binary.BigEndian, &h); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, parseErrorf(dr.offset, "packet header: %v", err)
	}
	if h.Magic != magic {
		return nil, parseErrorf(dr.offset, `magic number not "PG" (0x5047): got 0x%04x`, h.Magic)
	}
	headerOffset := dr.offset
	dr.offset += 13 // 2 (magic) + 4 (pts) + 4 (dts) + 1 (type) + 2 (size)

	body := make([]byte, h.SegmentSize)
	if _, err := io.ReadFull(dr.r, body); err != nil {
		return nil, parseErrorf(dr.offset, "segment body (%d bytes): %v", h.SegmentSize, err)
	}
	dr.offset += int64(h.SegmentSize)

	seg, err := decodeSegment(SegmentKind(h.SegmentType), body, headerOffset)
	if err != nil {
		return nil, err
	}

	return &Packet{
		PTS:     Timestamp(h.PTS),
		DTS:     Timestamp(h.DTS),
		Segment: seg,
	}, nil
}

func decodeSegment(kind SegmentKind, body []byte, offset int64) (Segment, error) {
	switch kind {
	case KindPDS:
		pds, err := decodePDS(body, offset)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: KindPDS, PDS: pds}, nil
	case KindODS:
		ods, err := decodeODS(body, offset)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: KindODS, ODS: ods}, nil
	case KindPCS:
		pcs, err := decodePCS(body, offset)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: KindPCS, PCS: pcs}, nil
	case KindWDS:
		wds, err := decodeWDS(body, offset)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: KindWDS, WDS: wds}, nil
	case KindEnd:
		return Segment{Kind: KindEnd}, nil
	default:
		return Segment{}, parseErrorf(offset, "unrecognized segment type: 0x%02x", uint8(kind))
	}
}

func decodePDS(body []byte, offset int64) (*PaletteDefinition, error) {
	if len(body) < 2 {
		return nil, parseErrorf(offset, "palette segment too short")
	}
	rest := body[2:]
	if len(rest)%5 != 0 {
		return nil, parseErrorf(offset, "palette segment size %d leaves a trailing %d-byte entry fragment", len(body), len(rest)%5)
	}
	n := len(rest) / 5
	entries := make([]PaletteEntry, n)
	for i := 0; i < n; i++ {
		e := rest[i*5 : i*5+5]
		entries[i] = PaletteEntry{Index: e[0], Y: e[1], Cr: e[2], Cb: e[3], Alpha: e[4]}
	}
	return &PaletteDefinition{ID: body[0], Version: body[1], Entries: entries}, nil
}

func decodeODS(body []byte, offset int64) (*ObjectDefinition, error) {
	const headerLen = 2 + 1 + 1 + 3 + 2 + 2
	if len(body) < headerLen {
		return nil, parseErrorf(offset, "object segment too short")
	}
	id := binary.BigEndian.Uint16(body[0:2])
	version := body[2]
	flags := body[3]
	dataSize := uint32(body[4])<<16 | uint32(body[5])<<8 | uint32(body[6])
	width := binary.BigEndian.Uint16(body[7:9])
	height := binary.BigEndian.Uint16(body[9:11])

	if dataSize < 4 {
		return nil, parseErrorf(offset, "object data length %d excludes width/height", dataSize)
	}
	rleLen := int(dataSize) - 4
	rleStart := headerLen
	if rleStart+rleLen != len(body) {
		return nil, parseErrorf(offset, "object declares %d bytes of RLE data, segment carries %d", rleLen, len(body)-rleStart)
	}

	rle, err := DecodeRLE(body[rleStart:])
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			return nil, parseErrorf(offset, "object RLE data, byte %d: %s", pe.Offset, pe.Reason)
		}
		return nil, err
	}

	return &ObjectDefinition{
		ID:              id,
		Version:         version,
		FirstInSequence: flags&0x80 != 0,
		LastInSequence:  flags&0x40 != 0,
		Width:           width,
		Height:          height,
		RLE:             rle,
	}, nil
}

func decodePCS(body []byte, offset int64) (*PresentationComposition, error) {
	const headerLen = 2 + 2 + 1 + 2 + 1 + 1 + 1 + 1
	if len(body) < headerLen {
		return nil, parseErrorf(offset, "composition segment too short")
	}
	width := binary.BigEndian.Uint16(body[0:2])
	height := binary.BigEndian.Uint16(body[2:4])
	// body[4] is frame_rate, ignored per spec.
	number := binary.BigEndian.Uint16(body[5:7])
	state := CompositionState(body[7])
	switch state {
	case Normal, AcquisitionPoint, EpochStart:
	default:
		return nil, parseErrorf(offset, "unrecognized composition state: 0x%02x", body[7])
	}
	paletteUpdateFlag := body[8]
	if paletteUpdateFlag != 0x00 && paletteUpdateFlag != 0x80 {
		return nil, parseErrorf(offset, "unrecognized palette update flag: 0x%02x", paletteUpdateFlag)
	}
	paletteID := body[9]
	objectCount := int(body[10])

	rest := body[headerLen:]
	objects := make([]CompositionObject, objectCount)
	for i := 0; i < objectCount; i++ {
		obj, n, err := decodeCompositionObject(rest, offset)
		if err != nil {
			return nil, errors.Wrapf(err, "composition object %d/%d", i+1, objectCount)
		}
		objects[i] = obj
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return nil, parseErrorf(offset, "composition segment has %d trailing bytes after %d objects", len(rest), objectCount)
	}

	return &PresentationComposition{
		Width:             width,
		Height:            height,
		CompositionNumber: number,
		State:             state,
		PaletteUpdate:     paletteUpdateFlag == 0x80,
		PaletteID:         paletteID,
		Objects:           objects,
	}, nil
}

func decodeCompositionObject(body []byte, offset int64) (CompositionObject, int, error) {
	const fixedLen = 2 + 1 + 1 + 2 + 2
	if len(body) < fixedLen {
		return CompositionObject{}, 0, parseErrorf(offset, "composition object too short")
	}
	objectID := binary.BigEndian.Uint16(body[0:2])
	windowID := body[2]
	flags := body[3]
	x := binary.BigEndian.Uint16(body[4:6])
	y := binary.BigEndian.Uint16(body[6:8])

	obj := CompositionObject{ObjectID: objectID, WindowID: windowID, X: x, Y: y}
	if flags&0x40 == 0 {
		return obj, fixedLen, nil
	}

	const cropLen = 2 + 2 + 2 + 2
	if len(body) < fixedLen+cropLen {
		return CompositionObject{}, 0, parseErrorf(offset, "cropped composition object too short")
	}
	c := body[fixedLen : fixedLen+cropLen]
	obj.Crop = &Crop{
		X:      binary.BigEndian.Uint16(c[0:2]),
		Y:      binary.BigEndian.Uint16(c[2:4]),
		Width:  binary.BigEndian.Uint16(c[4:6]),
		Height: binary.BigEndian.Uint16(c[6:8]),
	}
	return obj, fixedLen + cropLen, nil
}

func decodeWDS(body []byte, offset int64) ([]WindowDefinition, error) {
	if len(body) < 1 {
		return nil, parseErrorf(offset, "window segment too short")
	}
	n := int(body[0])
	rest := body[1:]
	if len(rest) != n*9 {
		return nil, parseErrorf(offset, "window segment declares %d windows but carries %d bytes", n, len(rest))
	}
	windows := make([]WindowDefinition, n)
	for i := 0; i < n; i++ {
		w := rest[i*9 : i*9+9]
		windows[i] = WindowDefinition{
			ID:     w[0],
			X:      binary.BigEndian.Uint16(w[1:3]),
			Y:      binary.BigEndian.Uint16(w[3:5]),
			Width:  binary.BigEndian.Uint16(w[5:7]),
			Height: binary.BigEndian.Uint16(w[7:9]),
		}
	}
	return windows, nil
}
