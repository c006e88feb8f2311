package diagrams

import (
	"fmt"
	"strings"
	"unicode"
)

func generateFlowchart(f Flowchart) string {
	var b strings.Builder

	dir := f.Direction
	if dir != DirectionLR {
		dir = DirectionTD
	}
	fmt.Fprintf(&b, "graph %s\n", dir)

	var ungrouped []FlowchartNode
	var groupOrder []string
	groups := make(map[string][]FlowchartNode)
	for _, n := range f.Nodes {
		if n.ID = SanitizeID(n.ID); n.ID == "" {
			continue
		}
		g := strings.TrimSpace(n.Group)
		if g == "" {
			ungrouped = append(ungrouped, n)
			continue
		}
		if _, ok := groups[g]; !ok {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], n)
	}

	declared := make([]FlowchartNode, 0, len(ungrouped))
	for _, n := range ungrouped {
		writeFlowchartNode(&b, n, "  ")
		declared = append(declared, n)
	}
	for i, g := range groupOrder {
		fmt.Fprintf(&b, "  subgraph sg%d[\"%s\"]\n", i, Escape(g))
		for _, n := range groups[g] {
			writeFlowchartNode(&b, n, "    ")
			declared = append(declared, n)
		}
		b.WriteString("  end\n")
	}

	for _, n := range declared {
		if hasFill(n.Color) {
			fmt.Fprintf(&b, "  style %s fill:%s\n", n.ID, colorValue(n.Color))
		}
	}

	for _, e := range f.Edges {
		from, to := SanitizeID(e.From), SanitizeID(e.To)
		if from == "" || to == "" {
			continue
		}
		label := ""
		if l := escapeIn(e.Label, `|"`); l != "" {
			label = "|" + l + "|"
		}
		fmt.Fprintf(&b, "  %s -->%s %s\n", from, label, to)
	}

	return b.String()
}

// bracketDelims cannot appear raw inside a bracket-shape label.
const bracketDelims = `[](){}<>|"`

func writeFlowchartNode(b *strings.Builder, n FlowchartNode, indent string) {
	shape := n.Shape
	if shape == "" {
		shape = DefaultShape
	}
	if kw, ok := keywordShapes[shape]; ok {
		label := Escape(n.Label)
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(b, "%s%s@{ shape: %s, label: \"%s\" }\n", indent, n.ID, kw, label)
		return
	}
	br, ok := bracketShapes[shape]
	if !ok {
		br = bracketShapes[DefaultShape]
	}
	label := escapeIn(n.Label, bracketDelims)
	if label == "" {
		label = n.ID
	}
	fmt.Fprintf(b, "%s%s%s%s%s\n", indent, n.ID, br[0], label, br[1])
}

// colorValue keeps the letters, digits and '#' of a css color.
func colorValue(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '#' {
			return r
		}
		return -1
	}, s)
}

// hasFill reports whether color is set to something other than white.
func hasFill(color string) bool {
	c := strings.TrimSpace(color)
	if c == "" {
		return false
	}
	return !strings.EqualFold(c, "#ffffff") && !strings.EqualFold(c, "#fff")
}
