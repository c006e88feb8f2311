package diagrams

import (
	"fmt"
	"strconv"
	"strings"
)

func generatePie(p Pie) string {
	var b strings.Builder
	b.WriteString("pie")
	if p.ShowData {
		b.WriteString(" showData")
	}
	if title := Escape(p.Title); title != "" {
		fmt.Fprintf(&b, "\n  title %s", title)
	}
	b.WriteString("\n")
	for _, it := range p.Items {
		fmt.Fprintf(&b, "  \"%s\" : %s\n", Escape(it.Label), formatNumber(it.Value))
	}
	return b.String()
}

func generateQuadrant(q Quadrant, fb Fallbacks) string {
	var b strings.Builder
	b.WriteString("quadrantChart\n")
	fmt.Fprintf(&b, "  title %s\n", Escape(orDefault(q.Title, fb.QuadrantTitle)))
	fmt.Fprintf(&b, "  x-axis \"%s\" --> \"%s\"\n",
		Escape(orDefault(q.XLeft, fb.QuadrantXLeft)), Escape(orDefault(q.XRight, fb.QuadrantXRight)))
	fmt.Fprintf(&b, "  y-axis \"%s\" --> \"%s\"\n",
		Escape(orDefault(q.YDown, fb.QuadrantYDown)), Escape(orDefault(q.YUp, fb.QuadrantYUp)))
	for _, p := range q.Points {
		fmt.Fprintf(&b, "  \"%s\": [%s, %s]\n",
			Escape(orDefault(p.Name, fb.QuadrantPoint)), formatNumber(p.X), formatNumber(p.Y))
	}
	return b.String()
}

func generateMindmap(m Mindmap, fb Fallbacks) string {
	var b strings.Builder
	b.WriteString("mindmap\n")
	written := 0
	for _, n := range m.Tree {
		text := escapeIn(n.Text, "[](){}")
		if text == "" {
			continue
		}
		level := n.Level
		if level < 0 {
			level = 0
		}
		b.WriteString(strings.Repeat("  ", level+1) + text + "\n")
		written++
	}
	if written == 0 {
		fmt.Fprintf(&b, "  %s\n", Escape(fb.MindmapRoot))
	}
	return b.String()
}

func generateSankey(s Sankey) string {
	var b strings.Builder
	if s.ShowValues != nil {
		fmt.Fprintf(&b, "---\nconfig:\n  sankey:\n    showValues: %s\n---\n", strconv.FormatBool(*s.ShowValues))
	}
	b.WriteString("sankey-beta\n")

	if s.Map != nil {
		for _, src := range s.Map {
			for _, t := range src.Targets {
				fmt.Fprintf(&b, "%s,%s,%s\n", csvField(src.Source), csvField(t.Target), formatNumber(t.Value))
			}
		}
		return b.String()
	}
	for _, l := range s.Links {
		fmt.Fprintf(&b, "%s,%s,%s\n", csvField(l.Source), csvField(l.Target), formatNumber(l.Value))
	}
	return b.String()
}

// csvField renders a sankey node name as one CSV field: line breaks become
// spaces, and a name holding a comma or quote is quoted with "" doubling.
func csvField(s string) string {
	s = strings.TrimSpace(lineBreaks.ReplaceAllString(s, " "))
	if strings.HasPrefix(s, "%%") {
		s = "#37;" + s[1:]
	}
	if strings.ContainsAny(s, `,"`) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
