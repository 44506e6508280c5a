package markup

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
	"github.com/lessondeck/lessondeck/internal/domain/ports"
)

// sectionPrefixes maps each section header to its kind, in match
// order. Longer prefixes sort before their shorter siblings so
// "LeftTop:" is never read as "Left:".
var sectionPrefixes = []struct {
	prefix string
	kind   entities.SectionKind
}{
	{"Content:", entities.SectionContent},
	{"LeftTop:", entities.SectionLeftTop},
	{"LeftBottom:", entities.SectionLeftBottom},
	{"Left:", entities.SectionLeft},
	{"RightTop:", entities.SectionRightTop},
	{"RightBottom:", entities.SectionRightBottom},
	{"Right:", entities.SectionRight},
	{"Notes:", entities.SectionNotes},
}

// Parser reads lesson markup documents into decks. Parsing is total:
// any input produces a deck, with unparseable lines degraded or
// dropped rather than reported as errors.
type Parser struct{}

// NewParser creates a document parser.
func NewParser() *Parser {
	return &Parser{}
}

var _ ports.DeckParser = (*Parser)(nil)

// Parse converts a markup document into a deck. A slide begins at a
// "Slide " line and is kept only once it has a title. Lines before
// the first section header of a slide are dropped.
func (p *Parser) Parse(content []byte) *entities.Deck {
	deck := &entities.Deck{}

	current := entities.NewSlide()
	sectionSet := false
	var section entities.SectionKind

	push := func() {
		if current.HasTitle() {
			current.Index = len(deck.Slides)
			deck.Slides = append(deck.Slides, *current)
		}
		current = entities.NewSlide()
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if line == "" || line == "---" {
			continue
		}

		if strings.HasPrefix(line, "Slide ") {
			push()
			sectionSet = false
			continue
		}

		if strings.HasPrefix(line, "Template:") {
			current.Template = strings.TrimSpace(strings.TrimPrefix(line, "Template:"))
			continue
		}

		if strings.HasPrefix(line, "Title:") {
			current.Title = strings.TrimSpace(strings.TrimPrefix(line, "Title:"))
			sectionSet = false
			continue
		}

		text := line
		if kind, rest, ok := matchSection(line); ok {
			section = kind
			sectionSet = true
			text = rest

			// A LeftBottom header holding several numbered questions
			// splits into one line per question.
			if kind == entities.SectionLeftBottom && hasNumberedQuestions(text) {
				step := HasStepMarker(text)
				for _, q := range SplitQuestions(text) {
					current.Append(section, entities.Line{Text: q, Step: step})
				}
				continue
			}
		}

		if sectionSet && text != "" {
			current.Append(section, entities.Line{Text: text, Step: HasStepMarker(text)})
		}
	}

	push()

	if len(deck.Slides) > 0 {
		deck.Title = deck.Slides[0].Title
	}
	return deck
}

func matchSection(line string) (entities.SectionKind, string, bool) {
	for _, sp := range sectionPrefixes {
		if strings.HasPrefix(line, sp.prefix) {
			return sp.kind, strings.TrimSpace(strings.TrimPrefix(line, sp.prefix)), true
		}
	}
	return "", "", false
}

func hasNumberedQuestions(text string) bool {
	for _, marker := range []string{"1.", "2.", "3."} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

var numberedRe = regexp.MustCompile(`^\d+\.`)

// SplitQuestions splits a run of questions packed onto one line.
// A question ends at a "?" followed by the start of the next one,
// either a numbered marker like "2." or a capitalized word. Each
// piece gets its "?" back.
func SplitQuestions(text string) []string {
	var pieces []string
	start := 0

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) && startsQuestion(string(runes[j:])) {
			pieces = append(pieces, string(runes[start:i]))
			start = j
			i = j - 1
		}
	}
	pieces = append(pieces, string(runes[start:]))

	var result []string
	for _, q := range pieces {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if !strings.HasSuffix(q, "?") {
			q += "?"
		}
		result = append(result, q)
	}

	if len(result) == 0 {
		return []string{text}
	}
	return result
}

func startsQuestion(s string) bool {
	if numberedRe.MatchString(s) {
		return true
	}
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

var bulletPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[•\-\*]`),
	regexp.MustCompile(`^\s*\d+\.`),
	regexp.MustCompile(`^\s*[a-z]\)`),
	regexp.MustCompile(`^\s*[A-Z]\.`),
}

// IsListContent reports whether a block of lines reads as a list: at
// least half the lines start with a bullet or enumeration marker.
func IsListContent(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	matching := 0
	for _, line := range lines {
		for _, p := range bulletPatterns {
			if p.MatchString(line) {
				matching++
				break
			}
		}
	}
	return matching*2 >= len(lines)
}

var bulletMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[•\-\*]\s*`),
	regexp.MustCompile(`^\s*\d+\.\s*`),
	regexp.MustCompile(`^\s*[a-z]\)\s*`),
}

// CleanBulletMarker strips a leading bullet or enumeration marker so
// list items can carry their own rendered bullet.
func CleanBulletMarker(text string) string {
	for _, re := range bulletMarkerRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
