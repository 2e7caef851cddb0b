// Package radar draws skill percentages as a polar chart, either as SVG for
// the web page or rasterised onto a character grid for the terminal.
package radar

import (
	"math"

	"github.com/abhisek/quantpath/internal/curriculum"
)

// DefaultLevels are the grid rings drawn behind the data polygon.
var DefaultLevels = []float64{20, 40, 60, 80, 100}

// Axis is one spoke of the chart.
type Axis struct {
	Key   string
	Label string
}

// Chart is everything needed to draw one radar.
type Chart struct {
	Axes   []Axis
	Values map[string]float64 // percentage per Axis.Key
	Levels []float64
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// SkillChart builds a chart over the five curriculum skills.
func SkillChart(pct map[curriculum.Skill]float64) Chart {
	c := Chart{
		Values: make(map[string]float64, len(pct)),
		Levels: DefaultLevels,
	}
	for _, s := range curriculum.Axes() {
		c.Axes = append(c.Axes, Axis{Key: string(s), Label: s.DisplayName()})
		c.Values[string(s)] = pct[s]
	}
	return c
}

// Project maps a percentage on axis index (of n) to chart coordinates. The
// first axis points straight up and the rest follow clockwise.
func Project(cx, cy, radius float64, index, n int, pct float64) Point {
	if n <= 0 {
		return Point{cx, cy}
	}
	angle := -math.Pi/2 + 2*math.Pi*float64(index)/float64(n)
	r := radius * clamp(pct) / 100
	return Point{
		X: cx + r*math.Cos(angle),
		Y: cy + r*math.Sin(angle),
	}
}

func (c Chart) levels() []float64 {
	if len(c.Levels) == 0 {
		return DefaultLevels
	}
	return c.Levels
}

// polygon returns the data polygon vertices in axis order.
func (c Chart) polygon(cx, cy, radius float64) []Point {
	pts := make([]Point, len(c.Axes))
	for i, a := range c.Axes {
		pts[i] = Project(cx, cy, radius, i, len(c.Axes), c.Values[a.Key])
	}
	return pts
}

func (c Chart) ring(cx, cy, radius, level float64) []Point {
	pts := make([]Point, len(c.Axes))
	for i := range c.Axes {
		pts[i] = Project(cx, cy, radius, i, len(c.Axes), level)
	}
	return pts
}

func clamp(pct float64) float64 {
	if math.IsNaN(pct) {
		return 0
	}
	return min(max(pct, 0), 100)
}
