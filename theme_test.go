package xmap

import (
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestResolveBackground(t *testing.T) {
	def := ColorHex(0xf9f9f9)
	c112233 := ColorHex(0x112233)

	tests := []struct {
		name string
		bg   any
		want Color
	}{
		{"hex string", "#112233", c112233},
		{"hex without hash", "112233", c112233},
		{"short hex", "#123", ColorHex(0x112233)},
		{"upper case hex", "#ABCDEF", ColorHex(0xabcdef)},
		{"css name", "white", ColorWhite},
		{"css name mixed case", " SteelBlue ", ColorHex(0x4682b4)},
		{"rgb", "rgb(17,34,51)", c112233},
		{"rgb with spaces", "rgb( 17, 34, 51 )", c112233},
		{"rgb space separated", "rgb(17 34 51)", c112233},
		{"rgba ignores alpha", "rgba(17, 34, 51, 0.2)", c112233},
		{"rgb percent", "RGB(100%, 0%, 50%)", Color{1, 0, 0.5, 1}},
		{"rgb clamped", "rgb(300, -5, 0)", Color{1, 0, 0, 1}},
		{"hsl", "hsl(120, 100%, 25%)", Color{0, 0.5, 0, 1}},
		{"hsl negative hue", "hsl(-240deg, 100%, 25%)", Color{0, 0.5, 0, 1}},
		{"hsl without percent", "hsl(120, 100, 25)", def},
		{"rgb too few args", "rgb(1, 2)", def},
		{"rgb bad number", "rgb(a, b, c)", def},
		{"rgb unclosed", "rgb(1, 2, 3", def},
		{"unknown function", "cmyk(0, 0, 0)", def},
		{"composite css name", Background{Color: "black", Alpha: ptr(0.5)}, Color{0, 0, 0, 0.5}},
		{"composite with alpha", Background{Color: "#112233", Alpha: ptr(0.5)}, Color{c112233.R, c112233.G, c112233.B, 0.5}},
		{"composite pointer", &Background{Color: "#112233", Alpha: ptr(0.25)}, Color{c112233.R, c112233.G, c112233.B, 0.25}},
		{"composite default alpha", Background{Color: "#112233"}, c112233},
		{"composite alpha clamped", Background{Color: "#112233", Alpha: ptr(3)}, c112233},
		{"composite bad color keeps alpha", Background{Color: "nope", Alpha: ptr(0.5)}, Color{def.R, def.G, def.B, 0.5}},
		{"decoded map", map[string]any{"color": "#112233", "alpha": 0.5}, Color{c112233.R, c112233.G, c112233.B, 0.5}},
		{"decoded map int alpha", map[string]any{"color": "#112233", "alpha": int64(0)}, Color{c112233.R, c112233.G, c112233.B, 0}},
		{"decoded map no alpha", map[string]any{"color": "#112233"}, c112233},
		{"solid Color forces alpha", Color{R: 1, A: 0.2}, Color{R: 1, A: 1}},
		{"number", 42, def},
		{"nil", nil, def},
		{"nil pointer", (*Background)(nil), def},
		{"invalid string", "not a color", def},
		{"empty string", "", def},
		{"slice", []string{"#112233"}, def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveBackground(tt.bg)
			if !approxEqual(got.R, tt.want.R, 1e-9) ||
				!approxEqual(got.G, tt.want.G, 1e-9) ||
				!approxEqual(got.B, tt.want.B, 1e-9) ||
				!approxEqual(got.A, tt.want.A, 1e-9) {
				t.Errorf("resolveBackground(%v) = %+v, want %+v", tt.bg, got, tt.want)
			}
		})
	}
}

func TestChangeThemeClearColor(t *testing.T) {
	tests := []struct {
		name  string
		theme Theme
		hex   uint32
		alpha float64
	}{
		{"solid", Theme{Background: "#112233"}, 0x112233, 1},
		{"css name", Theme{Background: "white"}, 0xffffff, 1},
		{"rgb function", Theme{Background: "rgb(17, 34, 51)"}, 0x112233, 1},
		{"composite", Theme{Background: Background{Color: "#112233", Alpha: ptr(0.5)}}, 0x112233, 0.5},
		{"number falls back", Theme{Background: 7}, 0xf9f9f9, 1},
		{"absent falls back", Theme{}, 0xf9f9f9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv, _, r, _ := newTestView(t, 10, 10)
			if err := mv.ChangeTheme(tt.theme); err != nil {
				t.Fatal(err)
			}
			want := ColorHex(tt.hex)
			got := r.clearColor
			if !approxEqual(got.R, want.R, 1e-9) || !approxEqual(got.G, want.G, 1e-9) || !approxEqual(got.B, want.B, 1e-9) {
				t.Errorf("clear color = %+v, want %06x", got, tt.hex)
			}
			if got.A != tt.alpha {
				t.Errorf("alpha = %v, want %v", got.A, tt.alpha)
			}
		})
	}
}

func TestWalkThemeVisitsEveryNode(t *testing.T) {
	root := newThemedNode("root")
	child := newThemedNode("child")
	grand := newThemedNode("grand")
	plain := NewObject("plain")
	root.AddChild(plain)
	plain.AddChild(child)
	child.AddChild(grand)

	WalkTheme(root, Theme{Background: "#000"})
	for _, n := range []*themedNode{root, child, grand} {
		if len(n.seen) != 1 {
			t.Errorf("%s saw %d themes, want 1", n.Name, len(n.seen))
		}
	}
}
