package export

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ropesim/internal/runner"
)

func sampleFrames() []runner.Frame {
	return []runner.Frame{
		{mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, 0}},
		{mgl64.Vec2{0, 0}, mgl64.Vec2{1, -0.5}, mgl64.Vec2{2, -1}},
		{mgl64.Vec2{0, 0}, mgl64.Vec2{0.8, -0.9}, mgl64.Vec2{1.5, -1.8}},
	}
}

func TestFramesToSVG(t *testing.T) {
	svg := FramesToSVG(sampleFrames(), 400, 300, 1)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing xml declaration")
	}
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete svg document")
	}
	if got := strings.Count(svg, "<polyline"); got != 3 {
		t.Errorf("got %d polylines, want 3", got)
	}
}

func TestFramesToSVGStride(t *testing.T) {
	svg := FramesToSVG(sampleFrames(), 400, 300, 2)
	if got := strings.Count(svg, "<polyline"); got != 2 {
		t.Errorf("got %d polylines with stride 2, want 2", got)
	}
}

func TestFramesToSVGEmpty(t *testing.T) {
	if svg := FramesToSVG(nil, 400, 300, 1); svg != "" {
		t.Errorf("got %q for empty input, want empty string", svg)
	}
}

func TestTrackToSVG(t *testing.T) {
	svg := TrackToSVG(sampleFrames(), 2, 400, 300)
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("got %d line segments, want 2", got)
	}
}

func TestTrackToSVGBadParticle(t *testing.T) {
	if svg := TrackToSVG(sampleFrames(), 7, 400, 300); svg != "" {
		t.Error("out-of-range particle should produce empty output")
	}
}
