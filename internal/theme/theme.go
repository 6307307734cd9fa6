// Package theme provides the colour tokens the panel is styled with.
package theme

import (
	"fmt"
	"strings"

	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
)

// Names of the built-in themes.
const (
	NameDark  = "dark"
	NameLight = "light"
)

// Colors holds the structural colours of a theme.
type Colors struct {
	Canvas           string `json:"canvas"`
	Text             string `json:"text"`
	Border           string `json:"border"`
	HeaderBackground string `json:"headerBackground"`
}

// Theme is a named set of colours. Palette maps colour names such as "blue"
// to concrete hex values.
type Theme struct {
	Name    string            `json:"name"`
	IsDark  bool              `json:"isDark"`
	Colors  Colors            `json:"colors"`
	Palette map[string]string `json:"-"`
}

// ColorByName resolves a palette name to its hex value. Hex and rgb()/rgba()
// literals are returned unchanged, as is any name the palette does not know.
func (t Theme) ColorByName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "":
		return t.Colors.Text
	case strings.HasPrefix(n, "#"), strings.HasPrefix(n, "rgb"):
		return name
	case n == "text":
		return t.Colors.Text
	case n == "transparent":
		return "transparent"
	}
	if c, ok := t.Palette[n]; ok {
		return c
	}
	return name
}

// Dark returns the dark theme.
func Dark() Theme {
	return Theme{
		Name:   NameDark,
		IsDark: true,
		Colors: Colors{
			Canvas:           "#111217",
			Text:             "#CCCCDC",
			Border:           "#2F3037",
			HeaderBackground: "#181B1F",
		},
		Palette: map[string]string{
			"blue":   "#5794F2",
			"green":  "#73BF69",
			"red":    "#F2495C",
			"yellow": "#FADE2A",
			"orange": "#FF9830",
			"purple": "#B877D9",
		},
	}
}

// Light returns the light theme.
func Light() Theme {
	return Theme{
		Name:   NameLight,
		IsDark: false,
		Colors: Colors{
			Canvas:           "#F4F5F5",
			Text:             "#24292E",
			Border:           "#DCDEE1",
			HeaderBackground: "#FFFFFF",
		},
		Palette: map[string]string{
			"blue":   "#3274D9",
			"green":  "#56A64B",
			"red":    "#E02F44",
			"yellow": "#F2CC0C",
			"orange": "#FF780A",
			"purple": "#A352CC",
		},
	}
}

// ByName returns the theme with the given name. Matching ignores case.
func ByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameDark:
		return Dark(), nil
	case NameLight:
		return Light(), nil
	default:
		return Theme{}, apperrors.InvalidInput(fmt.Sprintf("unknown theme %q", name))
	}
}
