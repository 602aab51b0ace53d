package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// The width and number-format memos are micro-optimizations for the hot
// render path. They are bounded: once a map crosses its cap it is reset
// wholesale at the next prune, so a long-running monitor cannot grow them
// without limit.
const (
	formatCacheCap = 1000
	widthCacheCap  = 500
)

type caches struct {
	format map[string]string
	width  map[string]int
}

func newCaches() *caches {
	return &caches{
		format: make(map[string]string),
		width:  make(map[string]int),
	}
}

// prune resets any memo that outgrew its cap. Called once per config reload.
func (c *caches) prune() {
	if len(c.format) > formatCacheCap {
		c.format = make(map[string]string)
	}
	if len(c.width) > widthCacheCap {
		c.width = make(map[string]int)
	}
}

// cellWidth measures a string in terminal columns; CJK runes occupy two.
func (c *caches) cellWidth(s string) int {
	if w, ok := c.width[s]; ok {
		return w
	}
	w := runewidth.StringWidth(s)
	c.width[s] = w
	return w
}

// padRight pads s with spaces to the given column width. Strings already
// at or over the width are returned unchanged.
func (c *caches) padRight(s string, width int) string {
	w := c.cellWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// formatNumber renders a decimal with a fixed number of fraction digits
// and thousands separators in the integer part.
func (c *caches) formatNumber(d decimal.Decimal, places int) string {
	key := d.String() + "_" + strconv.Itoa(places)
	if s, ok := c.format[key]; ok {
		return s
	}
	s := groupThousands(d.StringFixed(int32(places)))
	c.format[key] = s
	return s
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
