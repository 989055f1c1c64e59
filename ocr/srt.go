/*
DESCRIPTION
  srt.go formats a recognized subtitle screen as a SubRip (.srt) entry.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ocr

import "fmt"

// FormatSRT renders one SubRip entry for a screen that begins at beginUs
// microseconds and lasts durUs microseconds, numbered frameIndex+1 (SRT
// numbering is 1-based), carrying the recognized text.
func FormatSRT(frameIndex int, beginUs, durUs uint64, text string) string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n\n",
		frameIndex+1,
		formatTimestamp(beginUs),
		formatTimestamp(beginUs+durUs),
		text,
	)
}

// formatTimestamp renders a microsecond offset as zero-padded
// HH:MM:SS,mmm, the canonical SRT timestamp form.
func formatTimestamp(us uint64) string {
	const (
		usPerMilli  = 1_000
		usPerSecond = usPerMilli * 1_000
		usPerMinute = usPerSecond * 60
		usPerHour   = usPerMinute * 60
	)

	hours := us / usPerHour
	us %= usPerHour
	minutes := us / usPerMinute
	us %= usPerMinute
	seconds := us / usPerSecond
	us %= usPerSecond
	millis := us / usPerMilli

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
