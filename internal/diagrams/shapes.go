package diagrams

// DefaultShape is used for nodes with an empty or unknown shape.
const DefaultShape = "rect"

// bracketShapes are drawn with the classic open/close delimiter syntax.
var bracketShapes = map[string][2]string{
	"rect":                  {"[", "]"},
	"rounded":               {"(", ")"},
	"circle":                {"((", "))"},
	"diamond":               {"{", "}"},
	"hex":                   {"{{", "}}"},
	"cylinder":              {"[(", ")]"},
	"database":              {"[(", ")]"},
	"stadium":               {"([", "])"},
	"subroutine":            {"[[", "]]"},
	"parallelogram":         {"[/", "/]"},
	"inverse-parallelogram": {"[\\", "\\]"},
	"trapezoid":             {"[/", "\\]"},
	"inverse-trapezoid":     {"[\\", "/]"},
	"double-circle":         {"(((", ")))"},
	"asymmetric":            {">", "]"},
}

// keywordShapes only exist as named shapes (mermaid 11.3+) and are drawn
// as id@{ shape: <keyword>, label: "..." }.
var keywordShapes = map[string]string{
	"processes":        "processes",
	"das":              "das",
	"comment":          "comment",
	"brace-r":          "brace-r",
	"braces":           "braces",
	"tri":              "tri",
	"flip-tri":         "flip-tri",
	"flag":             "flag",
	"document":         "doc",
	"docs":             "docs",
	"tag-doc":          "tag-doc",
	"f-circ":           "f-circ",
	"sm-circ":          "sm-circ",
	"framed-circle":    "fr-circ",
	"cross-circ":       "cross-circ",
	"bolt":             "bolt",
	"hourglass":        "hourglass",
	"delay":            "delay",
	"input":            "lean-r",
	"output":           "lean-l",
	"card":             "notch-rect",
	"lined-process":    "lin-proc",
	"fork":             "fork",
	"text":             "text",
	"display":          "curv-trap",
	"disk":             "lin-cyl",
	"internal-storage": "win-pane",
	"loop-limit":       "notch-pent",
	"stored-data":      "bow-rect",
	"manual-input":     "sl-rect",
}

// shapeOrder is the menu order of every accepted shape name.
var shapeOrder = []string{
	"rect", "rounded", "stadium", "diamond", "circle", "double-circle",
	"hex", "parallelogram", "inverse-parallelogram", "trapezoid",
	"inverse-trapezoid", "cylinder", "database", "subroutine", "asymmetric",
	"processes", "das", "comment", "brace-r", "braces", "tri", "flip-tri",
	"flag", "document", "docs", "tag-doc", "card", "lined-process", "fork",
	"text", "display", "disk", "internal-storage", "loop-limit",
	"stored-data", "manual-input", "input", "output", "delay",
	"f-circ", "sm-circ", "framed-circle", "cross-circ", "bolt", "hourglass",
}

// Shapes lists every accepted shape name.
func Shapes() []string {
	return append([]string(nil), shapeOrder...)
}

// KnownShape reports whether name has a rendering.
func KnownShape(name string) bool {
	if _, ok := bracketShapes[name]; ok {
		return true
	}
	_, ok := keywordShapes[name]
	return ok
}

// ArrowStyle names one of the eight sequence message arrows.
type ArrowStyle string

const (
	ArrowSolid       ArrowStyle = "solid-arrow"
	ArrowSolidLine   ArrowStyle = "solid-line"
	ArrowDottedLine  ArrowStyle = "dotted-line"
	ArrowDotted      ArrowStyle = "dotted-arrow"
	ArrowSolidCross  ArrowStyle = "solid-cross"
	ArrowDottedCross ArrowStyle = "dotted-cross"
	ArrowSolidAsync  ArrowStyle = "solid-async"
	ArrowDottedAsync ArrowStyle = "dotted-async"

	DefaultArrowStyle = ArrowSolid
)

var arrowSyntax = map[ArrowStyle]string{
	ArrowSolid:       "->>",
	ArrowSolidLine:   "->",
	ArrowDottedLine:  "-->",
	ArrowDotted:      "-->>",
	ArrowSolidCross:  "-x",
	ArrowDottedCross: "--x",
	ArrowSolidAsync:  "-)",
	ArrowDottedAsync: "--)",

	// Labels stored by older documents.
	"实线带箭头": "->>",
	"实线无箭头": "->",
	"虚线无箭头": "-->",
	"虚线带箭头": "-->>",
	"实线叉号":  "-x",
	"虚线叉号":  "--x",
	"实线异步":  "-)",
	"虚线异步":  "--)",
}

// ArrowStyles returns the eight styles in menu order.
func ArrowStyles() []ArrowStyle {
	return []ArrowStyle{
		ArrowSolid, ArrowSolidLine, ArrowDottedLine, ArrowDotted,
		ArrowSolidCross, ArrowDottedCross, ArrowSolidAsync, ArrowDottedAsync,
	}
}

// Syntax returns the mermaid arrow for a, falling back to the solid arrow.
func (a ArrowStyle) Syntax() string {
	if s, ok := arrowSyntax[a]; ok {
		return s
	}
	return arrowSyntax[DefaultArrowStyle]
}
