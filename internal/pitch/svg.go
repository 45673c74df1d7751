package pitch

import (
	"fmt"
	"strings"
)

// Diagram geometry. Width grows linearly with mora count so diagrams for
// short and long words share a scale.
const (
	moraWidth  = 30
	edgePad    = 20
	svgHeight  = 80
	highY      = 20
	lowY       = 50
	textY      = 70
	markerSize = 4
)

func levelY(level Level) int {
	if level == High {
		return highY
	}
	return lowY
}

// RenderSVG draws the accent contour for a reading: one marker per mora on a
// single polyline, the mora's glyph centered below it. A known downstep adds
// a hollow particle marker after the last mora, the only visual difference
// between heiban and odaka. An empty reading yields an empty string.
func RenderSVG(reading string, downstep int) string {
	morae := SplitMorae(reading)
	n := len(morae)
	if n == 0 {
		return ""
	}

	levels := Heights(downstep, n)
	known := downstep >= 0 && downstep <= n

	slots := n
	if known {
		slots++
	}
	width := moraWidth*slots + 2*edgePad

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, svgHeight, width, svgHeight)
	b.WriteString("\n<style>\n")
	b.WriteString("  .mora-text { font-family: \"Noto Sans JP\", sans-serif; font-size: 16px; text-anchor: middle; }\n")
	b.WriteString("  .pitch-line { stroke: #e74c3c; stroke-width: 2; fill: none; }\n")
	b.WriteString("  .pitch-dot { fill: #e74c3c; }\n")
	b.WriteString("  .pitch-particle { fill: none; stroke: #e74c3c; stroke-width: 2; }\n")
	b.WriteString("</style>\n")

	xAt := func(i int) int { return edgePad + i*moraWidth + moraWidth/2 }

	var points []string
	for i, level := range levels {
		points = append(points, fmt.Sprintf("%d,%d", xAt(i), levelY(level)))
	}
	if known {
		points = append(points, fmt.Sprintf("%d,%d", xAt(n), levelY(ParticleLevel(downstep))))
	}
	if len(points) > 1 {
		fmt.Fprintf(&b, `<polyline class="pitch-line" points="%s" />`, strings.Join(points, " "))
		b.WriteString("\n")
	}

	for i, mora := range morae {
		x := xAt(i)
		fmt.Fprintf(&b, `<circle class="pitch-dot" cx="%d" cy="%d" r="%d" />`, x, levelY(levels[i]), markerSize)
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text class="mora-text" x="%d" y="%d">%s</text>`, x, textY, mora)
		b.WriteString("\n")
	}
	if known {
		fmt.Fprintf(&b, `<circle class="pitch-particle" cx="%d" cy="%d" r="%d" />`,
			xAt(n), levelY(ParticleLevel(downstep)), markerSize)
		b.WriteString("\n")
	}

	b.WriteString("</svg>")
	return b.String()
}
