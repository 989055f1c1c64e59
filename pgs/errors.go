/*
DESCRIPTION
  errors.go defines the fatal parse-error type Reader and DecodeRLE return
  when the stream can't be decoded.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pgs

import "fmt"

// ParseError reports a fatal framing or segment-body decode failure at a
// given byte offset into the stream. A ParseError is fatal to the stream:
// the Reader keeps no error state of its own, so the caller should stop
// pulling packets.
type ParseError struct {
	Offset int64
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pgs: parse error at offset %d: %s", e.Offset, e.Reason)
}

func parseErrorf(offset int64, format string, args ...interface{}) *ParseError {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
