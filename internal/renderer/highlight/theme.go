package highlight

import (
	"sort"
	"strings"

	"github.com/dshills/codemorph/internal/renderer/core"
)

// Theme maps token classes to colors.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the canvas background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// Colors maps classes to colors. Classes without an entry use
	// Foreground.
	Colors map[Class]core.Color
}

// ColorFor returns the color for a class.
func (t *Theme) ColorFor(c Class) core.Color {
	if color, ok := t.Colors[c]; ok {
		return color
	}
	return t.Foreground
}

var themes = map[string]func() *Theme{
	"default":   DefaultTheme,
	"monokai":   MonokaiTheme,
	"dracula":   DraculaTheme,
	"solarized": SolarizedDarkTheme,
	"light":     LightTheme,
}

// ThemeByName returns a built-in theme. Lookup is case-insensitive.
func ThemeByName(name string) (*Theme, bool) {
	fn, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// ThemeNames returns the names of the built-in themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type palette struct {
	comment, keyword, str, escape, number, function, typ, constant, operator, invalid core.Color
}

func (p palette) colors() map[Class]core.Color {
	return map[Class]core.Color{
		ClassComment:      p.comment,
		ClassString:       p.str,
		ClassStringEscape: p.escape,
		ClassNumber:       p.number,
		ClassKeyword:      p.keyword,
		ClassKeywordType:  p.typ,
		ClassConstant:     p.constant,
		ClassOperator:     p.operator,
		ClassPunctuation:  p.operator,
		ClassFunction:     p.function,
		ClassType:         p.typ,
		ClassTag:          p.keyword,
		ClassAttribute:    p.function,
		ClassNamespace:    p.typ,
		ClassMeta:         p.keyword,
		ClassInvalid:      p.invalid,
	}
}

// DefaultTheme returns a sensible default dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:       "Default Dark",
		Background: core.ColorFromRGB(30, 30, 30),
		Foreground: core.ColorFromRGB(212, 212, 212),
		Colors: palette{
			comment:  core.ColorFromRGB(106, 153, 85),
			keyword:  core.ColorFromRGB(86, 156, 214),
			str:      core.ColorFromRGB(206, 145, 120),
			escape:   core.ColorFromRGB(215, 186, 125),
			number:   core.ColorFromRGB(181, 206, 168),
			function: core.ColorFromRGB(220, 220, 170),
			typ:      core.ColorFromRGB(78, 201, 176),
			constant: core.ColorFromRGB(79, 193, 255),
			operator: core.ColorFromRGB(212, 212, 212),
			invalid:  core.ColorFromRGB(244, 71, 71),
		}.colors(),
	}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := core.ColorFromRGB(249, 38, 114)
	purple := core.ColorFromRGB(174, 129, 255)
	return &Theme{
		Name:       "Monokai",
		Background: core.ColorFromRGB(39, 40, 34),
		Foreground: core.ColorFromRGB(248, 248, 242),
		Colors: palette{
			comment:  core.ColorFromRGB(117, 113, 94),
			keyword:  pink,
			str:      core.ColorFromRGB(230, 219, 116),
			escape:   purple,
			number:   purple,
			function: core.ColorFromRGB(166, 226, 46),
			typ:      core.ColorFromRGB(102, 217, 239),
			constant: purple,
			operator: pink,
			invalid:  core.ColorFromRGB(253, 151, 31),
		}.colors(),
	}
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	pink := core.ColorFromRGB(255, 121, 198)
	purple := core.ColorFromRGB(189, 147, 249)
	return &Theme{
		Name:       "Dracula",
		Background: core.ColorFromRGB(40, 42, 54),
		Foreground: core.ColorFromRGB(248, 248, 242),
		Colors: palette{
			comment:  core.ColorFromRGB(98, 114, 164),
			keyword:  pink,
			str:      core.ColorFromRGB(241, 250, 140),
			escape:   pink,
			number:   purple,
			function: core.ColorFromRGB(80, 250, 123),
			typ:      core.ColorFromRGB(139, 233, 253),
			constant: purple,
			operator: pink,
			invalid:  core.ColorFromRGB(255, 85, 85),
		}.colors(),
	}
}

// SolarizedDarkTheme returns a Solarized Dark theme.
func SolarizedDarkTheme() *Theme {
	return &Theme{
		Name:       "Solarized Dark",
		Background: core.ColorFromRGB(0, 43, 54),
		Foreground: core.ColorFromRGB(131, 148, 150),
		Colors: palette{
			comment:  core.ColorFromRGB(88, 110, 117),
			keyword:  core.ColorFromRGB(133, 153, 0),
			str:      core.ColorFromRGB(42, 161, 152),
			escape:   core.ColorFromRGB(203, 75, 22),
			number:   core.ColorFromRGB(211, 54, 130),
			function: core.ColorFromRGB(38, 139, 210),
			typ:      core.ColorFromRGB(181, 137, 0),
			constant: core.ColorFromRGB(108, 113, 196),
			operator: core.ColorFromRGB(131, 148, 150),
			invalid:  core.ColorFromRGB(220, 50, 47),
		}.colors(),
	}
}

// LightTheme returns a light theme.
func LightTheme() *Theme {
	return &Theme{
		Name:       "Light",
		Background: core.ColorFromRGB(255, 255, 255),
		Foreground: core.ColorFromRGB(0, 0, 0),
		Colors: palette{
			comment:  core.ColorFromRGB(0, 128, 0),
			keyword:  core.ColorFromRGB(0, 0, 255),
			str:      core.ColorFromRGB(163, 21, 21),
			escape:   core.ColorFromRGB(238, 0, 0),
			number:   core.ColorFromRGB(9, 134, 88),
			function: core.ColorFromRGB(121, 94, 38),
			typ:      core.ColorFromRGB(38, 127, 153),
			constant: core.ColorFromRGB(0, 16, 128),
			operator: core.ColorFromRGB(0, 0, 0),
			invalid:  core.ColorFromRGB(205, 49, 49),
		}.colors(),
	}
}
