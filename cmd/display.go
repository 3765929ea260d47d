package cmd

import (
	"time"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// padToWidth pads or truncates text to exactly width display columns.
// Text that does not fit is cut and ends with "...". Width <= 0 returns
// text unchanged.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	if runewidth.StringWidth(text) > width {
		if width <= runewidth.StringWidth(ellipsis) {
			return runewidth.Truncate(ellipsis, width, "")
		}
		text = runewidth.Truncate(text, width, ellipsis)
	}

	// Wide runes can leave the truncated text one column short.
	return runewidth.FillRight(text, width)
}

// marqueeText scrolls text through a window of width columns. The offset
// advances speed runes per second of now, so repeated calls from a status
// bar animate without keeping state. Text that fits is padded instead.
func marqueeText(text string, width, speed int, separator string, now time.Time) string {
	if width <= 0 {
		return text
	}
	if runewidth.StringWidth(text) <= width {
		return padToWidth(text, width)
	}

	loop := []rune(text + separator)
	offset := int(now.Unix()*int64(speed)) % len(loop)
	if offset < 0 {
		offset += len(loop)
	}

	return window(loop, offset, width)
}

// window collects runes from loop starting at offset, wrapping around,
// until width columns are filled. A wide rune that would overflow is
// replaced by padding.
func window(loop []rune, offset, width int) string {
	out := make([]rune, 0, width)
	used := 0
	for i := 0; i < len(loop) && used < width; i++ {
		r := loop[(offset+i)%len(loop)]
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			break
		}
		out = append(out, r)
		used += rw
	}
	return runewidth.FillRight(string(out), width)
}
