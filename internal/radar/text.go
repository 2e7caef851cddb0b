package radar

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Glyphs used by RenderText.
const (
	GlyphRing   = '·'
	GlyphAxis   = '+'
	GlyphEdge   = '*'
	GlyphVertex = '●'
	GlyphCenter = 'o'
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// RenderText rasterises chart onto a width x height character canvas. Each
// axis label is followed by its percentage.
func RenderText(c Chart, width, height int) string {
	if width < 8 || height < 5 {
		return ""
	}
	cv := newCanvas(width, height)
	n := len(c.Axes)
	if n == 0 {
		return cv.String()
	}

	labels := make([]string, n)
	longest := 0
	for i, a := range c.Axes {
		labels[i] = fmt.Sprintf("%s %.0f%%", a.Label, clamp(c.Values[a.Key]))
		longest = max(longest, utf8.RuneCountInString(labels[i]))
	}

	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	ry := cy - 1
	rx := min(ry*cellAspect, cx-float64(longest)-1)
	if rx < 2 {
		rx = min(ry*cellAspect, cx-1)
	}
	if ry < 1 || rx < 1 {
		return cv.String()
	}

	at := func(i int, pct float64) (int, int) {
		p := Project(0, 0, 1, i, n, pct)
		return round(cx + p.X*rx), round(cy + p.Y*ry)
	}

	for _, lvl := range c.levels() {
		for i := range n {
			x0, y0 := at(i, lvl)
			x1, y1 := at((i+1)%n, lvl)
			cv.line(x0, y0, x1, y1, GlyphRing)
		}
	}

	for i := range n {
		x, y := at(i, 100)
		cv.line(round(cx), round(cy), x, y, GlyphAxis)
	}
	cv.set(round(cx), round(cy), GlyphCenter)

	for i := range n {
		x0, y0 := at(i, c.Values[c.Axes[i].Key])
		x1, y1 := at((i+1)%n, c.Values[c.Axes[(i+1)%n].Key])
		cv.line(x0, y0, x1, y1, GlyphEdge)
	}
	for i := range n {
		x, y := at(i, c.Values[c.Axes[i].Key])
		cv.set(x, y, GlyphVertex)
	}

	for i, label := range labels {
		x, y := at(i, 100)
		switch {
		case x < round(cx)-1:
			cv.text(x-1-utf8.RuneCountInString(label), y, label)
		case x > round(cx)+1:
			cv.text(x+2, y, label)
		default:
			lx := x - utf8.RuneCountInString(label)/2
			if y < round(cy) {
				y--
			} else {
				y++
			}
			cv.text(lx, y, label)
		}
	}

	return cv.String()
}

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// line draws a straight segment with a simple DDA walk.
func (c *canvas) line(x0, y0, x1, y1 int, r rune) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.set(x0, y0, r)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(round(float64(x0)+t*float64(dx)), round(float64(y0)+t*float64(dy)), r)
	}
}

func (c *canvas) text(x, y int, s string) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r)
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func round(f float64) int { return int(math.Round(f)) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
