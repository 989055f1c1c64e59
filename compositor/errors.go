/*
DESCRIPTION
  errors.go defines the non-fatal per-screen error types Compositor.Handle
  returns: a rejected ODS, or a rasterisation overflow.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package compositor

import "fmt"

// BadObjectDefinition reports an ODS that failed validation: its decoded
// RLE run total didn't match width*height, or it referenced a composition
// object or window that doesn't (yet) exist. It is non-fatal: the
// Compositor's accumulators are unaffected and the stream continues.
type BadObjectDefinition struct {
	ObjectID uint16
	Reason   string
}

func (e *BadObjectDefinition) Error() string {
	return fmt.Sprintf("compositor: bad object definition %d: %s", e.ObjectID, e.Reason)
}

// InternalOverflow reports that rasterising a composition object walked
// past its declared height mid-stream. The screen being assembled is
// dropped and the Compositor's accumulators are left untouched, so the
// epoch is not considered closed.
type InternalOverflow struct {
	ObjectID uint16
}

func (e *InternalOverflow) Error() string {
	return fmt.Sprintf("compositor: object %d overflowed its declared height during rasterisation", e.ObjectID)
}
