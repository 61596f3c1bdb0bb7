package renderer

import (
	"bytes"
	"testing"
)

func TestAspectFor(t *testing.T) {
	tests := []struct {
		w, h int
		want float32
	}{
		{800, 600, 0.75},
		{1920, 1080, 0.5625},
		{100, 100, 1},
		{0, 0, 1},
		{0, 10, 10},
		{10, -5, 0.1},
	}
	for _, tt := range tests {
		if got := AspectFor(tt.w, tt.h); got != tt.want {
			t.Errorf("AspectFor(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestUniformBytes(t *testing.T) {
	got := Uniforms{Aspect: 0.75}.bytes()
	want := []byte{0x00, 0x00, 0x40, 0x3f}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes() = % x, want % x", got, want)
	}
}
