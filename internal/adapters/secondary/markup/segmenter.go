package markup

import (
	"regexp"
	"strings"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

var strayTagRe = regexp.MustCompile(`(?i)\[/?(vocabulary|question|answer|emphasis|step)\]`)

// pairMatch is one matched [tag]content[/tag] occurrence.
type pairMatch struct {
	start, end   int
	cStart, cEnd int
	style        entities.Style
}

// nextPair finds the leftmost closed pair at or after pos. The tag
// name in the opening bracket determines which pair expression can
// match there, so leftmost-start is unambiguous.
func nextPair(text string, pos int) (pairMatch, bool) {
	best := pairMatch{start: -1}
	for _, tag := range tags {
		m := tag.pair.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			continue
		}
		if best.start == -1 || pos+m[0] < best.start {
			best = pairMatch{
				start:  pos + m[0],
				end:    pos + m[1],
				cStart: pos + m[2],
				cEnd:   pos + m[3],
				style:  entities.Style(tag.name),
			}
		}
	}
	return best, best.start != -1
}

// Segment normalizes text and splits it into styled segments. Plain
// runs between tags carry an empty style. Zero-length segments are
// dropped, except that empty input yields a single empty plain
// segment. Concatenating segment texts reproduces StripTags(text) up
// to the outer trim.
func Segment(text string) []entities.StyledSegment {
	text = Normalize(text)

	var segments []entities.StyledSegment
	last := 0
	for pos := 0; pos < len(text); {
		m, ok := nextPair(text, pos)
		if !ok {
			break
		}
		if m.start > last {
			segments = append(segments, entities.StyledSegment{Text: text[last:m.start]})
		}
		if m.cEnd > m.cStart {
			segments = append(segments, entities.StyledSegment{
				Text:  text[m.cStart:m.cEnd],
				Style: m.style,
			})
		}
		last = m.end
		pos = m.end
	}
	if last < len(text) {
		segments = append(segments, entities.StyledSegment{Text: text[last:]})
	}

	if len(segments) == 0 {
		return []entities.StyledSegment{{Text: text}}
	}
	return segments
}

// StripTags returns text with every tag marker removed, keeping the
// tagged content.
func StripTags(text string) string {
	text = Normalize(text)

	var b strings.Builder
	last := 0
	for pos := 0; pos < len(text); {
		m, ok := nextPair(text, pos)
		if !ok {
			break
		}
		b.WriteString(text[last:m.start])
		b.WriteString(text[m.cStart:m.cEnd])
		last = m.end
		pos = m.end
	}
	b.WriteString(text[last:])

	// Normalization leaves no stray style tags; this also drops any
	// [step] spelling that survived in odd positions.
	return strings.TrimSpace(strayTagRe.ReplaceAllString(b.String(), ""))
}

// HasTags reports whether the text contains at least one styled run
// after normalization.
func HasTags(text string) bool {
	_, ok := nextPair(Normalize(text), 0)
	return ok
}
