// Package export writes grids and population series as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifeplayer/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG draws every lit Braille dot of canvas as a square cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, fill)

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/>\n",
				float64(x)*scale, float64(y)*scale, scale, scale)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PopulationToSVG plots population against generation as a line.
func PopulationToSVG(pops []int, width, height int, stroke string) string {
	if len(pops) < 2 {
		return ""
	}

	minP, maxP := pops[0], pops[0]
	for _, p := range pops {
		minP = min(minP, p)
		maxP = max(maxP, p)
	}
	rangeP := float64(maxP - minP)
	if rangeP == 0 {
		rangeP = 1
	}
	lo := float64(minP) - rangeP*0.1
	rangeP *= 1.2
	last := float64(len(pops) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, stroke)

	for gen, p := range pops {
		x := float64(gen) / last * float64(width)
		y := float64(height) - (float64(p)-lo)/rangeP*float64(height)
		if gen == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
