package entities

// Style names an inline text style produced by a markup tag.
type Style string

const (
	StyleVocabulary Style = "vocabulary"
	StyleQuestion   Style = "question"
	StyleAnswer     Style = "answer"
	StyleEmphasis   Style = "emphasis"
)

// Styles lists the stylable tag names in the fixed order the
// normalizer processes them.
var Styles = []Style{StyleVocabulary, StyleQuestion, StyleAnswer, StyleEmphasis}

// IsValidStyle reports whether name is one of the recognized styles.
func IsValidStyle(name string) bool {
	switch Style(name) {
	case StyleVocabulary, StyleQuestion, StyleAnswer, StyleEmphasis:
		return true
	}
	return false
}

// StyledSegment is a contiguous run of text with an optional style.
// Segments never nest; concatenating the Text fields of a line's
// segments reconstitutes the tag-stripped line.
type StyledSegment struct {
	Text string `json:"text"`
	// Style is empty for plain text
	Style Style `json:"style,omitempty"`
}

// Plain reports whether the segment carries no style.
func (s StyledSegment) Plain() bool {
	return s.Style == ""
}
