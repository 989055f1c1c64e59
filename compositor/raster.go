/*
DESCRIPTION
  raster.go assembles the currently-accumulated composition into a
  Screen: bounding-box computation, padding, and RLE rasterisation with
  window/object/crop clipping.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package compositor

import (
	"image"
	"image/color"
	"sort"

	"github.com/reeftext/pgsx/codec/pgscolor"
	"github.com/reeftext/pgsx/pgs"
)

// generateScreen materialises the currently-accumulated composition into
// a Screen. It returns (nil, nil)
// when there is nothing to render (no composition objects, or an
// unresolvable object/window reference); a palette id that no PDS has
// defined renders with the default transparent-black fill. It returns (nil, err)
// with err a *InternalOverflow when an object's RLE stream walks past its
// declared height mid-rasterisation. The accumulators are reset only on
// a successful emission — an overflow leaves the epoch open, matching the
// source's behavior of never reaching its reset() call on that path.
func (c *Compositor) generateScreen() (*Screen, error) {
	if len(c.compObjects) == 0 {
		return nil, nil
	}
	pcs := c.composition
	if pcs == nil {
		return nil, nil
	}

	ids := sortedObjectIDs(c.compObjects)

	imgX, imgY, imgW, imgH, ok := c.boundingBox(ids)
	if !ok {
		return nil, nil
	}

	padX := int(float64(pcs.Width) * 0.12)
	padY := int(float64(pcs.Height) * 0.03)

	dx := minInt(imgX, padX)
	imgX -= dx
	imgW += 2 * dx

	dy := minInt(imgY, padY)
	imgY -= dy
	imgH += 2 * dy

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))

	palette, ok := c.palettes[pcs.PaletteID]
	if !ok {
		palette = pgscolor.NewPalette()
	}

	for _, id := range ids {
		comp := c.compObjects[id]
		obj, ok := c.objectData[id]
		if !ok {
			return nil, nil
		}
		win, ok := c.windows[comp.WindowID]
		if !ok {
			return nil, nil
		}
		if !rasterizeObject(img, palette, comp, obj, win, imgX, imgY) {
			return nil, &InternalOverflow{ObjectID: id}
		}
	}

	beginUs := c.beginAt.ToMicros()
	durUs := c.endAt.ToMicros() - beginUs

	screen := &Screen{
		Image:   img,
		BeginUs: beginUs,
		DurUs:   durUs,
		X:       uint32(imgX),
		Y:       uint32(imgY),
	}

	c.reset()
	return screen, nil
}

func sortedObjectIDs(m map[uint16]pgs.CompositionObject) []uint16 {
	ids := make([]uint16, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// boundingBox computes the smallest rectangle enclosing every referenced
// composition object, in screen coordinates.
func (c *Compositor) boundingBox(ids []uint16) (x, y, w, h int, ok bool) {
	x, y = -1, -1
	for _, id := range ids {
		_, exists := c.objectData[id]
		if !exists {
			return 0, 0, 0, 0, false
		}
		comp := c.compObjects[id]
		ox, oy := int(comp.X), int(comp.Y)
		if x == -1 || ox < x {
			x = ox
		}
		if y == -1 || oy < y {
			y = oy
		}
	}
	for _, id := range ids {
		obj := c.objectData[id]
		comp := c.compObjects[id]
		ox, oy := int(comp.X), int(comp.Y)
		pw := (ox - x) + int(obj.Width)
		ph := (oy - y) + int(obj.Height)
		if pw > w {
			w = pw
		}
		if ph > h {
			h = ph
		}
	}
	return x, y, w, h, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// rasterizeObject walks obj's decoded RLE stream, writing pixels into img
// at the position comp.X/comp.Y dictate (translated into img's frame by
// imgX/imgY), clipped to the intersection of the window rectangle, the
// object's own bounds, and (when present) comp.Crop. It returns false if
// the object overflows its declared height mid-stream (InternalOverflow).
func rasterizeObject(img *image.RGBA, palette *pgscolor.Palette, comp pgs.CompositionObject, obj pgs.ObjectDefinition, win pgs.WindowDefinition, imgX, imgY int) bool {
	x0 := int(comp.X) - imgX
	y0 := int(comp.Y) - imgY

	winRight := int(win.X) + int(win.Width)
	winBottom := int(win.Y) + int(win.Height)
	maxXShow := minInt(winRight-int(comp.X), int(obj.Width))
	maxYShow := minInt(winBottom-int(comp.Y), int(obj.Height))

	cropMinX, cropMinY, cropMaxX, cropMaxY := 0, 0, int(obj.Width), int(obj.Height)
	if comp.Crop != nil {
		cropMinX, cropMinY = int(comp.Crop.X), int(comp.Crop.Y)
		cropMaxX = cropMinX + int(comp.Crop.Width)
		cropMaxY = cropMinY + int(comp.Crop.Height)
	}

	xOff, yOff := 0, 0
	put := func(px color.RGBA) bool {
		if xOff >= int(obj.Width) {
			xOff = 0
			yOff++
			if yOff > int(obj.Height) {
				return false
			}
		}
		if xOff < maxXShow && yOff < maxYShow &&
			xOff >= cropMinX && xOff < cropMaxX &&
			yOff >= cropMinY && yOff < cropMaxY {
			img.SetRGBA(x0+xOff, y0+yOff, px)
		}
		xOff++
		return true
	}

	for _, e := range obj.RLE {
		switch e.Kind {
		case pgs.EntrySingle:
			if !put(palette[e.Color]) {
				return false
			}
		case pgs.EntryRepeated:
			col := palette[e.Color]
			for i := uint16(0); i < e.Count; i++ {
				if !put(col) {
					return false
				}
			}
		case pgs.EntryEndOfLine:
			xOff = 0
			yOff++
			if yOff > int(obj.Height) {
				return false
			}
		}
	}
	return true
}
