package radar

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"
)

const (
	svgGrid    = "#d0d4dc"
	svgAxis    = "#9aa3b2"
	svgFill    = "rgba(59,130,246,0.25)"
	svgStroke  = "#3b82f6"
	svgLabel   = "#374151"
	svgPadding = 0.22
)

// RenderSVG writes chart as a standalone size x size SVG document.
func RenderSVG(w io.Writer, c Chart, size int) error {
	if size <= 0 {
		size = 360
	}
	s := float64(size)
	cx, cy := s/2, s/2
	radius := s/2 - s*svgPadding
	n := len(c.Axes)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" role="img" aria-label="skills radar">`+"\n",
		size, size, size, size)

	if n > 0 {
		for _, lvl := range c.levels() {
			fmt.Fprintf(bw, `  <polygon class="ring" points="%s" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
				points(c.ring(cx, cy, radius, lvl)), svgGrid)
		}

		for i, a := range c.Axes {
			end := Project(cx, cy, radius, i, n, 100)
			fmt.Fprintf(bw, `  <line class="axis" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
				cx, cy, end.X, end.Y, svgAxis)

			lp := Project(cx, cy, radius+s*0.08, i, n, 100)
			fmt.Fprintf(bw, `  <text class="label" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-size="%d" fill="%s">%s</text>`+"\n",
				lp.X, lp.Y, anchor(lp.X, cx), max(size/30, 9), svgLabel, html.EscapeString(a.Label))
		}

		data := c.polygon(cx, cy, radius)
		fmt.Fprintf(bw, `  <polygon class="data" points="%s" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			points(data), svgFill, svgStroke)
		for i, p := range data {
			fmt.Fprintf(bw, `  <circle class="vertex" cx="%.2f" cy="%.2f" r="3" fill="%s"><title>%s: %.0f%%</title></circle>`+"\n",
				p.X, p.Y, svgStroke, html.EscapeString(c.Axes[i].Label), clamp(c.Values[c.Axes[i].Key]))
		}
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func points(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func anchor(x, cx float64) string {
	switch {
	case x < cx-1:
		return "end"
	case x > cx+1:
		return "start"
	default:
		return "middle"
	}
}
