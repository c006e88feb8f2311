package diagrams

import (
	"reflect"
	"strconv"
	"strings"
)

// errorDiagram is emitted for a kind the generator does not know, so a
// preview always has something renderable.
const errorDiagram = "graph TD\n  Error"

// Fallbacks holds the placeholder text used when a model leaves a label
// empty. Locales provide translated sets.
type Fallbacks struct {
	QuadrantTitle  string
	QuadrantXLeft  string
	QuadrantXRight string
	QuadrantYDown  string
	QuadrantYUp    string
	QuadrantPoint  string
	TimelinePeriod string
	MindmapRoot    string
	GanttSection   string
}

// DefaultFallbacks is the English set.
var DefaultFallbacks = Fallbacks{
	QuadrantTitle:  "Quadrant",
	QuadrantXLeft:  "Low",
	QuadrantXRight: "High",
	QuadrantYDown:  "Weak",
	QuadrantYUp:    "Strong",
	QuadrantPoint:  "Point",
	TimelinePeriod: "Period",
	MindmapRoot:    "Root",
	GanttSection:   "Default",
}

// orDefault returns s when it has content, otherwise the fallback.
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Generate renders m as mermaid source using the English fallbacks.
func Generate(kind Kind, m Model) string {
	return GenerateWith(kind, m, DefaultFallbacks)
}

// GenerateWith renders m as mermaid source. A model that is nil or of
// another kind is treated as the empty model of kind. It never fails.
func GenerateWith(kind Kind, m Model, fb Fallbacks) string {
	switch kind {
	case KindFlowchart:
		return generateFlowchart(As[Flowchart](m))
	case KindGantt:
		return generateGantt(As[Gantt](m), fb)
	case KindTimeline:
		return generateTimeline(As[Timeline](m), fb)
	case KindSequence:
		return generateSequence(As[Sequence](m))
	case KindPie:
		return generatePie(As[Pie](m))
	case KindQuadrant:
		return generateQuadrant(As[Quadrant](m), fb)
	case KindMindmap:
		return generateMindmap(As[Mindmap](m), fb)
	case KindSankey:
		return generateSankey(As[Sankey](m))
	default:
		return errorDiagram
	}
}

// Fence wraps generated code as a mermaid fenced block ready for insertion
// into a markdown document.
func Fence(code string) string {
	return "```mermaid\n" + code + "\n```\n\n"
}

// As returns m as a T whether it holds the value or a pointer to it, and
// the zero T for a nil model or a model of another kind.
func As[T Model](m Model) T {
	if v, ok := m.(T); ok {
		return v
	}
	if rv := reflect.ValueOf(m); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if v, ok := rv.Elem().Interface().(T); ok {
			return v
		}
	}
	var zero T
	return zero
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
