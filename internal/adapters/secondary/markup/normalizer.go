// Package markup implements the lesson-slide markup format: inline
// style tags, step markers, and the sectioned slide document syntax.
package markup

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	stepRe       = regexp.MustCompile(`(?i)\[step\]\s*`)
	stepMarkerRe = regexp.MustCompile(`(?i)\[step\]`)
)

// tagPatterns holds the precompiled expressions for one tag name.
type tagPatterns struct {
	name  string
	pair  *regexp.Regexp
	open  *regexp.Regexp
	close *regexp.Regexp
}

// tags are processed in this fixed order so normalization is
// deterministic.
var tags = []tagPatterns{
	compileTag("vocabulary"),
	compileTag("question"),
	compileTag("answer"),
	compileTag("emphasis"),
}

func compileTag(name string) tagPatterns {
	return tagPatterns{
		name:  name,
		pair:  regexp.MustCompile(`(?i)\[` + name + `\](.*?)\[/` + name + `\]`),
		open:  regexp.MustCompile(`(?i)\[` + name + `\]`),
		close: regexp.MustCompile(`(?i)\[/` + name + `\]`),
	}
}

// Normalize rewrites text so every style tag forms a closed
// [tag]content[/tag] pair. It never fails: valid pairs pass through,
// orphan closing tags are deleted, bare opening tags are closed at
// the next newline, opening bracket, or end of text. Step markers are
// removed entirely, so callers that care about them must check
// HasStepMarker first. Normalize is idempotent.
func Normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = stepRe.ReplaceAllString(text, "")

	// Canonical lowercase tag spellings before any pairing.
	for _, tag := range tags {
		text = tag.open.ReplaceAllString(text, "["+tag.name+"]")
		text = tag.close.ReplaceAllString(text, "[/"+tag.name+"]")
	}

	result := text

	for _, tag := range tags {
		// Protect valid pairs, then drop closing tags outside them.
		pairs := findPairs(result, tag)

		var orphanCloses [][]int
		for _, m := range tag.close.FindAllStringIndex(result, -1) {
			if !insidePair(pairs, m[0], false) {
				orphanCloses = append(orphanCloses, m)
			}
		}
		for i := len(orphanCloses) - 1; i >= 0; i-- {
			m := orphanCloses[i]
			result = result[:m[0]] + result[m[1]:]
		}

		// Re-scan: removing orphans can form new pairs.
		pairs = findPairs(result, tag)

		var bareOpens []int
		for _, m := range tag.open.FindAllStringIndex(result, -1) {
			if !insidePair(pairs, m[0], true) {
				bareOpens = append(bareOpens, m[1])
			}
		}
		for i := len(bareOpens) - 1; i >= 0; i-- {
			result = autoClose(result, bareOpens[i], tag.name)
		}
	}

	return result
}

// findPairs locates the valid closed pairs for one tag: an opening
// marker whose next same-tag marker is a close. A pair's content
// therefore never contains a same-tag boundary; in a doubled opener
// like [emphasis][emphasis]word[/emphasis] the inner opener wins the
// close and the outer one is left bare.
func findPairs(text string, tag tagPatterns) [][]int {
	opens := tag.open.FindAllStringIndex(text, -1)
	closes := tag.close.FindAllStringIndex(text, -1)

	var pairs [][]int
	pendingOpen := -1
	oi, ci := 0, 0
	for ci < len(closes) {
		if oi < len(opens) && opens[oi][0] < closes[ci][0] {
			pendingOpen = opens[oi][0]
			oi++
			continue
		}
		if pendingOpen >= 0 {
			pairs = append(pairs, []int{pendingOpen, closes[ci][1]})
			pendingOpen = -1
		}
		ci++
	}
	return pairs
}

// insidePair reports whether pos falls inside any [start,end) pair.
// Opening tags sit at a pair's start, so they compare inclusively;
// closing tags never do.
func insidePair(pairs [][]int, pos int, inclusiveStart bool) bool {
	for _, p := range pairs {
		if inclusiveStart {
			if p[0] <= pos && pos < p[1] {
				return true
			}
		} else if p[0] < pos && pos < p[1] {
			return true
		}
	}
	return false
}

// autoClose repairs a bare opener whose marker ends at pos. The
// synthetic close lands before the next newline or opening bracket,
// or at end of text. Whitespace directly after the opener and
// directly before the close is tightened away so [emphasis] word
// becomes [emphasis]word[/emphasis].
func autoClose(text string, pos int, tag string) string {
	cut := pos
	for cut < len(text) && text[cut] == ' ' {
		cut++
	}
	text = text[:pos] + text[cut:]

	insert := pos + closeBoundary(text[pos:])
	for insert > pos && text[insert-1] == ' ' {
		insert--
	}
	return text[:insert] + "[/" + tag + "]" + text[insert:]
}

// closeBoundary returns the offset within rest where an auto-close
// tag belongs: before the next newline or opening bracket, or at the
// end.
func closeBoundary(rest string) int {
	boundary := len(rest)
	if i := strings.IndexByte(rest, '\n'); i >= 0 && i < boundary {
		boundary = i
	}
	if i := strings.IndexByte(rest, '['); i >= 0 && i < boundary {
		boundary = i
	}
	return boundary
}

// HasStepMarker reports whether the raw text carries a [step] marker.
// Normalization strips the marker, so call this before Normalize.
func HasStepMarker(text string) bool {
	return stepMarkerRe.MatchString(text)
}

// StripStepMarkers removes [step] markers and any whitespace that
// trails them.
func StripStepMarkers(text string) string {
	return stepRe.ReplaceAllString(text, "")
}
