package entities

import "fmt"

// RGB is a 24-bit color.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Hex returns the color as a #rrggbb string for HTML output.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TagStyle describes how text inside one markup tag renders.
type TagStyle struct {
	FontSize int  `json:"font_size" yaml:"font_size"`
	Color    RGB  `json:"color" yaml:"color"`
	Bold     bool `json:"bold" yaml:"bold"`
	Italic   bool `json:"italic" yaml:"italic"`
}

// StyleConfig is the full visual configuration for a deck: per-tag
// styles plus deck-level typography and toggles.
type StyleConfig struct {
	Tags map[Style]TagStyle `json:"tags" yaml:"tags"`

	FontFamily      string `json:"font_family" yaml:"font_family"`
	TitleFontSize   int    `json:"title_font_size" yaml:"title_font_size"`
	BodyFontSize    int    `json:"body_font_size" yaml:"body_font_size"`
	TitleColor      RGB    `json:"title_color" yaml:"title_color"`
	BodyColor       RGB    `json:"body_color" yaml:"body_color"`
	BackgroundColor RGB    `json:"background_color" yaml:"background_color"`

	ShowSlideNumbers bool `json:"show_slide_numbers" yaml:"show_slide_numbers"`
	WarnOnOverflow   bool `json:"warn_on_overflow" yaml:"warn_on_overflow"`
}

// DefaultStyleConfig returns the built-in styling: green bold
// vocabulary, purple questions, gray italic answers, dark-red bold
// emphasis.
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		Tags: map[Style]TagStyle{
			StyleVocabulary: {FontSize: 24, Color: RGB{0, 128, 0}, Bold: true},
			StyleQuestion:   {FontSize: 20, Color: RGB{128, 0, 128}},
			StyleAnswer:     {FontSize: 18, Color: RGB{128, 128, 128}, Italic: true},
			StyleEmphasis:   {FontSize: 22, Color: RGB{192, 0, 0}, Bold: true},
		},
		FontFamily:       "Calibri",
		TitleFontSize:    32,
		BodyFontSize:     18,
		TitleColor:       RGB{31, 56, 100},
		BodyColor:        RGB{0, 0, 0},
		BackgroundColor:  RGB{255, 255, 255},
		ShowSlideNumbers: true,
		WarnOnOverflow:   true,
	}
}

// StyleFor returns the effective style for a tag, falling back to the
// built-in default when the config has no entry for it.
func (c StyleConfig) StyleFor(style Style) TagStyle {
	if ts, ok := c.Tags[style]; ok {
		return ts
	}
	return DefaultStyleConfig().Tags[style]
}

// TagStylePatch is a partial tag style: nil fields are left alone
// when applied.
type TagStylePatch struct {
	FontSize *int  `yaml:"font_size"`
	Color    *RGB  `yaml:"color"`
	Bold     *bool `yaml:"bold"`
	Italic   *bool `yaml:"italic"`
}

// StyleConfigPatch is a partial style configuration, typically
// decoded from a styles.yaml file. Only fields present in the patch
// replace the corresponding base values.
type StyleConfigPatch struct {
	Tags map[Style]TagStylePatch `yaml:"tags"`

	FontFamily      *string `yaml:"font_family"`
	TitleFontSize   *int    `yaml:"title_font_size"`
	BodyFontSize    *int    `yaml:"body_font_size"`
	TitleColor      *RGB    `yaml:"title_color"`
	BodyColor       *RGB    `yaml:"body_color"`
	BackgroundColor *RGB    `yaml:"background_color"`

	ShowSlideNumbers *bool `yaml:"show_slide_numbers"`
	WarnOnOverflow   *bool `yaml:"warn_on_overflow"`
}

// Apply returns a copy of the config with the patch's present fields
// replacing the base values. Unknown tag names in the patch are
// ignored.
func (c StyleConfig) Apply(p StyleConfigPatch) StyleConfig {
	out := c
	out.Tags = make(map[Style]TagStyle, len(c.Tags))
	for k, v := range c.Tags {
		out.Tags[k] = v
	}

	for name, tp := range p.Tags {
		if !IsValidStyle(string(name)) {
			continue
		}
		ts := out.StyleFor(name)
		if tp.FontSize != nil {
			ts.FontSize = *tp.FontSize
		}
		if tp.Color != nil {
			ts.Color = *tp.Color
		}
		if tp.Bold != nil {
			ts.Bold = *tp.Bold
		}
		if tp.Italic != nil {
			ts.Italic = *tp.Italic
		}
		out.Tags[name] = ts
	}

	if p.FontFamily != nil {
		out.FontFamily = *p.FontFamily
	}
	if p.TitleFontSize != nil {
		out.TitleFontSize = *p.TitleFontSize
	}
	if p.BodyFontSize != nil {
		out.BodyFontSize = *p.BodyFontSize
	}
	if p.TitleColor != nil {
		out.TitleColor = *p.TitleColor
	}
	if p.BodyColor != nil {
		out.BodyColor = *p.BodyColor
	}
	if p.BackgroundColor != nil {
		out.BackgroundColor = *p.BackgroundColor
	}
	if p.ShowSlideNumbers != nil {
		out.ShowSlideNumbers = *p.ShowSlideNumbers
	}
	if p.WarnOnOverflow != nil {
		out.WarnOnOverflow = *p.WarnOnOverflow
	}

	return out
}
