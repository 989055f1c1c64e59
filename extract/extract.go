/*
DESCRIPTION
  extract.go provides Driver, which pulls PGS packets from a byte stream,
  feeds them to a compositor.Compositor, and forwards each emitted screen
  — numbered by a monotonically increasing frame index — to the caller.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package extract provides Driver, which pulls PGS packets from a byte
// stream, feeds them to a compositor.Compositor, and forwards each
// emitted screen — numbered by a monotonically increasing frame index —
// to the caller.
package extract

import (
	"context"
	"errors"
	"io"

	"github.com/reeftext/pgsx/compositor"
	"github.com/reeftext/pgsx/pgs"
)

// Screen is a compositor.Screen tagged with the 0-based frame index the
// Driver assigned it, in emission order.
type Screen struct {
	compositor.Screen
	FrameIndex int
}

// Driver pulls packets from a pgs.Reader until the stream is exhausted,
// feeding a compositor.Compositor and forwarding emitted screens.
type Driver struct {
	cfg  Config
	comp *compositor.Compositor
}

// New returns a Driver configured per cfg.
func New(cfg Config) *Driver {
	return &Driver{
		cfg:  cfg,
		comp: compositor.New(cfg.logger(), cfg.StrictEpoch),
	}
}

// Consumer receives each screen the Driver emits. Returning a non-nil
// error aborts Run.
type Consumer func(Screen) error

// Run reads packets from r until io.EOF, forwarding every emitted screen
// to consume in stream order. It returns a *pgs.ParseError (possibly
// wrapped) if the stream is malformed; a compositor.BadObjectDefinition or
// compositor.InternalOverflow for a given screen is logged and does not
// stop the stream. ctx is checked between packets so a caller can cancel
// mid-stream.
func (d *Driver) Run(ctx context.Context, r io.Reader, consume Consumer) error {
	reader := pgs.NewReader(r)
	frame := 0
	log := d.cfg.logger()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pkt, err := reader.ReadPacket()
		if errors.Is(err, io.EOF) {
			log.Info("stream exhausted", "frames", frame)
			return nil
		}
		if err != nil {
			return err
		}

		screen, err := d.comp.Handle(*pkt)
		if err != nil {
			log.Warning("dropping screen", "error", err.Error())
			continue
		}
		if screen == nil {
			continue
		}

		log.Debug("emitting screen", "frame", frame, "begin_us", screen.BeginUs, "dur_us", screen.DurUs)
		if err := consume(Screen{Screen: *screen, FrameIndex: frame}); err != nil {
			return err
		}
		frame++
	}
}
