package chart

import (
	"fmt"
	"html"
	"strings"
)

// SVG renders d as an inline <svg> element with a vertical gradient fill.
func SVG(d DrawingInstructions) string {
	id := "gradient-" + strings.TrimPrefix(d.Color, "#")
	color := html.EscapeString(d.Color)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %s %s" width="100%%" height="%s" preserveAspectRatio="none" style="background: #0a0a0a;">`,
		num(d.Width), num(d.Height), num(d.Height))
	fmt.Fprintf(&b, `<defs><linearGradient id="%s" x1="0%%" y1="0%%" x2="0%%" y2="100%%">`, html.EscapeString(id))
	fmt.Fprintf(&b, `<stop offset="0%%" style="stop-color:%s;stop-opacity:0.3" />`, color)
	fmt.Fprintf(&b, `<stop offset="100%%" style="stop-color:%s;stop-opacity:0" />`, color)
	b.WriteString(`</linearGradient></defs>`)
	fmt.Fprintf(&b, `<path d="%s" fill="url(#%s)" />`, d.AreaPath, html.EscapeString(id))
	fmt.Fprintf(&b, `<path d="%s" stroke="%s" stroke-width="2" fill="none" opacity="0.8" />`, d.LinePath, color)
	b.WriteString(`</svg>`)
	return b.String()
}
