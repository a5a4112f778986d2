package service

import "testing"

func TestColorFor(t *testing.T) {
	tests := []struct {
		index int
		want  Color
	}{
		{index: 0, want: Palette[0]},
		{index: 4, want: Palette[4]},
		{index: 5, want: Palette[0]},
		{index: 12, want: Palette[2]},
		{index: -1, want: Palette[4]},
	}

	for _, tt := range tests {
		if got := ColorFor(tt.index); got != tt.want {
			t.Errorf("ColorFor(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestRandomColorIsFromPalette(t *testing.T) {
	for i := 0; i < 20; i++ {
		c := RandomColor()
		found := false
		for _, p := range Palette {
			if c == p {
				found = true
			}
		}
		if !found {
			t.Fatalf("RandomColor returned %q outside the palette", c)
		}
	}
}
