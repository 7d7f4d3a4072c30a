package xmap

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Theme describes the visual theme of a map view. Background is either a
// CSS color string ("#112233", "white", "rgb(17, 34, 51)"), a Background,
// a *Background, a Color, or a decoded map with "color" and "alpha" keys as
// produced by JSON or TOML. Any other shape falls back to DefaultBackground.
type Theme struct {
	Background any `toml:"background" json:"background"`
}

// Background is a translucent clear color.
type Background struct {
	Color string   `toml:"color" json:"color"`
	Alpha *float64 `toml:"alpha" json:"alpha"`
}

var defaultBackground = mustParseColor(DefaultBackground)

// resolveBackground returns the clear color for a theme background. Alpha
// defaults to 1; unrecognized shapes and bad color strings fall back to
// DefaultBackground.
func resolveBackground(bg any) Color {
	switch v := bg.(type) {
	case string:
		if c, ok := parseColor(v); ok {
			return c
		}
	case Color:
		v.A = 1
		return v
	case Background:
		return compositeBackground(v.Color, v.Alpha)
	case *Background:
		if v != nil {
			return compositeBackground(v.Color, v.Alpha)
		}
	case map[string]any:
		s, _ := v["color"].(string)
		var alpha *float64
		if a, ok := toFloat(v["alpha"]); ok {
			alpha = &a
		}
		return compositeBackground(s, alpha)
	}
	return defaultBackground
}

// compositeBackground resolves a {color, alpha} pair. A bad color string
// keeps the given alpha over the default color.
func compositeBackground(s string, alpha *float64) Color {
	c, ok := parseColor(s)
	if !ok {
		c = defaultBackground
	}
	c.A = 1
	if alpha != nil {
		c.A = clamp01(*alpha)
	}
	return c
}

// parseColor parses a CSS color: a name ("white"), "#rgb", "#rrggbb",
// "rgb(r, g, b)" with 0-255 or percent channels, or "hsl(h, s%, l%)". An
// alpha channel in rgba() or hsla() is ignored. The result is opaque.
func parseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, false
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: 1}, true
	}
	if open := strings.IndexByte(s, '('); open > 0 {
		return parseColorFunc(strings.TrimSpace(s[:open]), s[open+1:])
	}
	if s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
}

// parseColorFunc parses the arguments of rgb(), rgba(), hsl() or hsla().
// rest holds everything after the opening parenthesis.
func parseColorFunc(name, rest string) (Color, bool) {
	body, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
	if !ok {
		return Color{}, false
	}
	args := strings.Split(body, ",")
	if len(args) == 1 {
		args = strings.Fields(body)
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}

	var v [3]float64
	var pct [3]bool
	for i := range v {
		a := strings.TrimSpace(args[i])
		a, pct[i] = strings.CutSuffix(a, "%")
		if name == "hsl" || name == "hsla" {
			a = strings.TrimSuffix(a, "deg")
		}
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Color{}, false
		}
		v[i] = f
	}

	switch name {
	case "rgb", "rgba":
		var c Color
		ch := [3]*float64{&c.R, &c.G, &c.B}
		for i := range v {
			if pct[i] {
				*ch[i] = clamp01(v[i] / 100)
			} else {
				*ch[i] = clamp01(v[i] / 255)
			}
		}
		c.A = 1
		return c, true
	case "hsl", "hsla":
		if !pct[1] || !pct[2] {
			return Color{}, false
		}
		h := math.Mod(v[0], 360)
		if h < 0 {
			h += 360
		}
		c := colorful.Hsl(h, clamp01(v[1]/100), clamp01(v[2]/100)).Clamped()
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
	}
	return Color{}, false
}

func mustParseColor(s string) Color {
	c, ok := parseColor(s)
	if !ok {
		panic("xmap: bad color " + s)
	}
	return c
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// WalkTheme calls OnThemeChange on root and every descendant, depth-first,
// pre-order.
func WalkTheme(root Node, theme Theme) {
	Walk(root, func(n Node) bool {
		n.OnThemeChange(theme)
		return true
	})
}
