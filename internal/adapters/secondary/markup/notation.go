package markup

import (
	"regexp"
	"strings"
)

var (
	superscriptRe = regexp.MustCompile(`\^(\d)`)
	subscriptRe   = regexp.MustCompile(`_(\d)`)
	greekRe       = regexp.MustCompile(`\b(alpha|beta|gamma|delta|pi|theta|sigma)\b`)

	superscripts = map[string]string{
		"0": "⁰", "1": "¹", "2": "²", "3": "³", "4": "⁴",
		"5": "⁵", "6": "⁶", "7": "⁷", "8": "⁸", "9": "⁹",
	}
	subscripts = map[string]string{
		"0": "₀", "1": "₁", "2": "₂", "3": "₃", "4": "₄",
		"5": "₅", "6": "₆", "7": "₇", "8": "₈", "9": "₉",
	}
	greek = map[string]string{
		"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
		"pi": "π", "theta": "θ", "sigma": "σ",
	}

	comparisonReplacer = strings.NewReplacer(
		"<=", "≤", ">=", "≥", "!=", "≠", "~=", "≈",
	)
)

// ConvertMathNotation rewrites simple ASCII math spellings to their
// Unicode symbols: ^2 and _3 become super/subscripts, comparison
// operators get their single-glyph forms, and standalone Greek-letter
// names become Greek letters. Greek names inside larger words are
// left alone.
func ConvertMathNotation(text string) string {
	text = superscriptRe.ReplaceAllStringFunc(text, func(m string) string {
		return superscripts[m[1:]]
	})
	text = subscriptRe.ReplaceAllStringFunc(text, func(m string) string {
		return subscripts[m[1:]]
	})
	text = comparisonReplacer.Replace(text)
	text = greekRe.ReplaceAllStringFunc(text, func(m string) string {
		return greek[m]
	})
	return text
}
