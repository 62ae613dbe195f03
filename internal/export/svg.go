// Package export renders recorded simulation output as SVG: rope shapes as
// polylines, particle tracks as paths.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ropesim/internal/runner"
)

// FramesToSVG draws every nth recorded rope shape as a polyline, oldest
// frames faintest, so the motion reads as a trail. stride <= 1 draws every
// frame.
func FramesToSVG(frames []runner.Frame, width, height, stride int) string {
	if len(frames) == 0 {
		return ""
	}
	if stride < 1 {
		stride = 1
	}

	minX, minY, maxX, maxY := bounds(frames)
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	kept := (len(frames) + stride - 1) / stride
	drawn := 0
	for i := 0; i < len(frames); i += stride {
		frame := frames[i]
		opacity := 0.15 + 0.85*float64(drawn)/float64(max(kept-1, 1))
		drawn++

		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="#00ff00" stroke-width="1.5" opacity="%.2f" points="`, opacity))
		for j, p := range frame {
			x := (p.X() - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y()-minY)/rangeY*float64(height)
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrackToSVG draws the path of one particle across the recording.
func TrackToSVG(frames []runner.Frame, particle, width, height int) string {
	if len(frames) < 2 {
		return ""
	}
	if particle < 0 || particle >= len(frames[0]) {
		return ""
	}

	minX, minY, maxX, maxY := bounds(frames)
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#ff6600" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, frame := range frames {
		p := frame[particle]
		x := (p.X() - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y()-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

func bounds(frames []runner.Frame) (minX, minY, maxX, maxY float64) {
	minX, minY = frames[0][0].X(), frames[0][0].Y()
	maxX, maxY = minX, minY
	for _, frame := range frames {
		for _, p := range frame {
			if p.X() < minX {
				minX = p.X()
			}
			if p.X() > maxX {
				maxX = p.X()
			}
			if p.Y() < minY {
				minY = p.Y()
			}
			if p.Y() > maxY {
				maxY = p.Y()
			}
		}
	}
	return minX, minY, maxX, maxY
}
