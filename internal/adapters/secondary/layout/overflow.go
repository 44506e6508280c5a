package layout

import (
	"strings"

	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// charsPerInchFactor is an empirically chosen width model constant.
// Treat it as fixed; downstream warnings are tuned against it.
const charsPerInchFactor = 2.5

// lineSpacingFactor approximates single spacing with default leading.
const lineSpacingFactor = 1.3

// Estimate simulates a greedy word wrap to judge whether text fits a
// region at the given font size. The result is advisory: rendering
// proceeds either way and callers decide whether to warn.
func (e *Engine) Estimate(text string, fontSize int, width, height float64) ports.TextEstimate {
	charsPerInch := 72.0 / float64(fontSize) * charsPerInchFactor
	charsPerLine := int(width * charsPerInch)

	linesNeeded := 1
	currentLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := len(word) + 1
		if currentLen+wordLen > charsPerLine {
			linesNeeded++
			currentLen = wordLen
		} else {
			currentLen += wordLen
		}
	}

	lineHeight := float64(fontSize) / 72.0 * lineSpacingFactor
	linesAvailable := int(height / lineHeight)

	return ports.TextEstimate{
		LinesNeeded:    linesNeeded,
		LinesAvailable: linesAvailable,
		Overflows:      linesNeeded > linesAvailable,
	}
}

// AutoSize steps the font size down for long text. Each threshold
// only ever lowers the base size, so the result is monotone
// non-increasing in text length.
func (e *Engine) AutoSize(textLength, baseFontSize int) int {
	size := baseFontSize
	if textLength > 300 {
		size = min(size, 18)
	}
	if textLength > 500 {
		size = min(size, 16)
	}
	if textLength > 700 {
		size = min(size, 14)
	}
	if textLength > 1000 {
		size = min(size, 12)
	}
	return size
}
