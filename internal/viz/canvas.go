// Package viz renders rope state in the terminal: a braille-dot canvas for
// shape, and a bubbletea live view with runtime tuning controls.
package viz

import "strings"

// Braille patterns pack 2x4 sub-pixels per character cell, offset 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in braille sub-pixel coordinates:
// (Width*2) x (Height*4) dots. Plain runes placed with Mark overlay whole
// cells and survive further dot drawing in other cells.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := 0; i < c.Height; i++ {
		if c.Grid[i] == nil {
			c.Grid[i] = make([]rune, c.Width)
		}
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored,
// as are cells already overlaid by a Mark rune.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	if c.Grid[row][col] < 0x2800 {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Mark places a plain rune at the cell containing sub-pixel (x, y).
func (c *Canvas) Mark(x, y int, r rune) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] = r
}

// DrawLine draws a sub-pixel line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
