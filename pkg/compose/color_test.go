package compose

import (
	"testing"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

func TestColorU32RoundTrip(t *testing.T) {
	values := []uint32{0, 0xffffffff, 0x000000ff, 0xff0000ff, 0x12345678, 0x808080c0, 0xdeadbeef}
	for _, v := range values {
		if got := ColorFromU32(v).ToU32(); got != v {
			t.Errorf("ColorFromU32(%#08x).ToU32() = %#08x", v, got)
		}
	}
}

func TestColorFromU32Channels(t *testing.T) {
	c := ColorFromU32(0xff000080)
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("rgb = %v %v %v, want 1 0 0", c.R, c.G, c.B)
	}
	if c.A < 0.5 || c.A > 0.51 {
		t.Errorf("A = %v, want ~0.502", c.A)
	}
}

func TestToU32Clamps(t *testing.T) {
	c := Color{R: 2, G: -1, B: 0.5, A: 1}
	if got := c.ToU32(); got != 0xff0080ff {
		t.Errorf("ToU32() = %#08x, want 0xff0080ff", got)
	}
}

func TestColorHex(t *testing.T) {
	if got := ColorFromU32(0x009fe3ff).Hex(); got != "#009fe3" {
		t.Errorf("Hex() = %q, want #009fe3", got)
	}
	if got := White.String(); got != "#ffffffff" {
		t.Errorf("String() = %q, want #ffffffff", got)
	}
}

func TestSVGAttrs(t *testing.T) {
	got := Color{R: 1, G: 0, B: 0, A: 0.5}.SVGAttrs("fill")
	want := `fill="#ff0000" fill-opacity="0.5"`
	if got != want {
		t.Errorf("SVGAttrs() = %q, want %q", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#ff0000", 0xff0000ff, false},
		{"#00ff0080", 0x00ff0080, false},
		{"#fff", 0xffffffff, false},
		{"0x11223344", 0x11223344, false},
		{"red", 0, true},
		{"#12345", 0, true},
		{"0xzz", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
				}
				return
			}
			if got := c.ToU32(); got != tt.want {
				t.Errorf("ParseColor(%q) = %#08x, want %#08x", tt.in, got, tt.want)
			}
		})
	}
}

func TestToCSS(t *testing.T) {
	c := ColorFromU32(0xff800080)
	if got, want := c.ToCSS(), "rgba(255,128,0,0.502)"; got != want {
		t.Errorf("ToCSS() = %q, want %q", got, want)
	}
}
