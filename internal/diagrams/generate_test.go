package diagrams

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{"line1\nline2", "line1 line2"},
		{"line1\r\nline2", "line1 line2"},
		{"a\rb", "a b"},
		{"  padded  ", "padded"},
		{"\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Escape(tt.input)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeNeverLeavesRawQuotesOrNewlines(t *testing.T) {
	inputs := []string{`"`, `""x""`, "a\n\"b\"\r\n", "\"\n\""}
	for _, in := range inputs {
		got := Escape(in)
		if strings.ContainsAny(got, "\r\n") {
			t.Errorf("Escape(%q) = %q contains a line break", in, got)
		}
		for i := 0; i < len(got); i++ {
			if got[i] == '"' && (i == 0 || got[i-1] != '\\') {
				t.Errorf("Escape(%q) = %q has an unescaped quote at %d", in, got, i)
			}
		}
	}
}

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		want     string
	}{
		{"empty", nil, "Node", "Node1"},
		{"gap", []string{"Node1", "Node2", "Node4"}, "Node", "Node3"},
		{"other prefix ignored", []string{"Task1"}, "Node", "Node1"},
		{"contiguous", []string{"A1", "A2", "A3"}, "A", "A4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueName(tt.existing, tt.prefix); got != tt.want {
				t.Errorf("UniqueName(%v, %q) = %q, want %q", tt.existing, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestGenerateFlowchart(t *testing.T) {
	f := Flowchart{
		Direction: DirectionLR,
		Nodes: []FlowchartNode{
			{ID: "A", Label: "Start", Shape: "circle"},
			{ID: "B", Label: "Step", Shape: "rect", Group: "G1", Color: "#ff0000"},
			{ID: "C", Shape: "diamond"},
			{ID: "D", Label: "White", Shape: "bogus", Color: "#FFFFFF"},
		},
		Edges: []FlowchartEdge{
			{From: "A", To: "B", Label: "go"},
			{From: "", To: "C", Label: "dangling"},
			{From: "B", To: "C"},
		},
	}

	want := "graph LR\n" +
		"  A((Start))\n" +
		"  C{C}\n" +
		"  D[White]\n" +
		"  subgraph sg0[\"G1\"]\n" +
		"    B[Step]\n" +
		"  end\n" +
		"  style B fill:#ff0000\n" +
		"  A -->|go| B\n" +
		"  B --> C\n"

	if got := Generate(KindFlowchart, f); got != want {
		t.Errorf("flowchart mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateFlowchartKeywordShape(t *testing.T) {
	f := Flowchart{Nodes: []FlowchartNode{{ID: "D", Label: `say "hi"`, Shape: "document"}}}
	got := Generate(KindFlowchart, f)
	want := "graph TD\n  D@{ shape: doc, label: \"say \\\"hi\\\"\" }\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerateFlowchartShapeConsistent(t *testing.T) {
	f := Flowchart{Nodes: []FlowchartNode{
		{ID: "a", Label: "one", Shape: "circle"},
		{ID: "b", Label: "two", Shape: "circle", Group: "g"},
		{ID: "c", Label: "three", Shape: "circle"},
	}}
	got := Generate(KindFlowchart, f)
	for _, want := range []string{"a((one))", "b((two))", "c((three))"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestGenerateFlowchartSkipsEmptyEndpoints(t *testing.T) {
	f := Flowchart{
		Nodes: []FlowchartNode{{ID: "X", Label: "X"}},
		Edges: []FlowchartEdge{{From: "", To: "X", Label: "secret-label"}, {From: "X", To: ""}},
	}
	got := Generate(KindFlowchart, f)
	if strings.Contains(got, "secret-label") || strings.Contains(got, "-->") {
		t.Errorf("edges with empty endpoints should be omitted:\n%s", got)
	}
}

func TestGenerateGanttDates(t *testing.T) {
	g := Gantt{
		Title:      "Plan",
		TimeFormat: TimeFormatDate,
		Tasks: []GanttTask{
			{Name: "Design", StartDate: "2024-01-01", EndDate: "2024-01-05", Status: StatusDone},
			{Name: "Launch", StartDate: "2024-02-01", EndDate: "2024-02-09", IsMilestone: true},
			{Name: "Odd", StartDate: "2024-03-01", EndDate: "2024-03-02", Status: "weird"},
		},
	}
	want := "gantt\n" +
		"  title Plan\n" +
		"  dateFormat YYYY-MM-DD\n" +
		"  axisFormat %Y-%m-%d\n" +
		"  tickInterval 1day\n" +
		"  Design :done, 2024-01-01, 2024-01-05\n" +
		"  Launch :milestone, 2024-02-01, 0d\n" +
		"  Odd :2024-03-01, 2024-03-02\n"
	if got := Generate(KindGantt, g); got != want {
		t.Errorf("gantt mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateGanttMilestoneIgnoresEndDate(t *testing.T) {
	g := Gantt{Tasks: []GanttTask{
		{Name: "M", StartDate: "2024-01-01", EndDate: "2030-12-31", IsMilestone: true},
	}}
	got := Generate(KindGantt, g)
	if !strings.Contains(got, "milestone") || !strings.Contains(got, "0d") {
		t.Errorf("expected milestone line, got:\n%s", got)
	}
	if strings.Contains(got, "2030-12-31") {
		t.Errorf("milestone must not emit its end date:\n%s", got)
	}
}

func TestGenerateGanttSections(t *testing.T) {
	g := Gantt{
		TimeFormat: TimeFormatTime,
		Tasks: []GanttTask{
			{Name: "A", StartDate: "09:00", EndDate: "10:00", Section: "Build"},
			{Name: "B", StartDate: "10:00", EndDate: "11:00"},
			{Name: "C", StartDate: "11:00", EndDate: "12:00", Section: "Build"},
		},
	}
	want := "gantt\n" +
		"  dateFormat HH:mm\n" +
		"  axisFormat %H:%M\n" +
		"  tickInterval 1hour\n" +
		"  section Build\n" +
		"    A :09:00, 10:00\n" +
		"    C :11:00, 12:00\n" +
		"  section Default\n" +
		"    B :10:00, 11:00\n"
	if got := Generate(KindGantt, g); got != want {
		t.Errorf("gantt mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateGanttDependency(t *testing.T) {
	g := Gantt{
		Scheduling: SchedulingDependency,
		Start:      "2024-01-01",
		Tasks: []GanttTask{
			{Name: "A", Duration: "3d"},
			{Name: "B", After: "A", Status: StatusActive},
			{Name: "C", After: "B", IsMilestone: true},
		},
	}
	got := Generate(KindGantt, g)
	for _, want := range []string{
		"  A :2024-01-01, 3d\n",
		"  B :active, after A, 1d\n",
		"  C :milestone, after B, 0d\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestGenerateTimeline(t *testing.T) {
	tl := Timeline{
		Title: "History",
		Theme: "dark",
		Items: []TimelineItem{
			{Period: "2020", Events: []string{"a", " b "}, Section: "Early"},
			{Period: "", Events: []string{"x"}},
			{Period: "2021", Events: []string{"", "  "}},
			{Period: "2022", Events: []string{"c"}, Section: "Early"},
		},
	}
	want := "%%{init: { 'theme': 'dark' }}%%\n" +
		"timeline\n" +
		"  title History\n" +
		"  section Early\n" +
		"    2020 : a : b\n" +
		"    2022 : c\n" +
		"  Period : x\n"
	if got := Generate(KindTimeline, tl); got != want {
		t.Errorf("timeline mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateTimelineOmitsEmptyEvents(t *testing.T) {
	tl := Timeline{Theme: DefaultTheme, Items: []TimelineItem{{Period: "ghost", Events: []string{"", ""}}}}
	got := Generate(KindTimeline, tl)
	if got != "timeline\n" {
		t.Errorf("got %q, want only the header", got)
	}
}

func TestGenerateSequence(t *testing.T) {
	s := Sequence{
		Participants: []SequenceParticipant{
			{Name: "Alice", Type: ParticipantBox},
			{Name: "Bob", Type: ParticipantActor},
		},
		Messages: []SequenceMessage{
			{From: "Alice", To: "Bob", Text: "Hi", Arrow: ArrowDotted},
			{From: "Bob", To: "Alice", Text: "Yo", Arrow: "bogus"},
			{From: "", To: "Bob", Text: "lost"},
			{From: "Bob", To: "Alice", Text: "legacy", Arrow: "虚线叉号"},
		},
	}
	want := "sequenceDiagram\n" +
		"  participant Alice\n" +
		"  actor Bob\n" +
		"  Alice-->>Bob: Hi\n" +
		"  Bob->>Alice: Yo\n" +
		"  Bob--xAlice: legacy\n"
	if got := Generate(KindSequence, s); got != want {
		t.Errorf("sequence mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestArrowStyleSyntax(t *testing.T) {
	want := map[ArrowStyle]string{
		ArrowSolid:       "->>",
		ArrowSolidLine:   "->",
		ArrowDottedLine:  "-->",
		ArrowDotted:      "-->>",
		ArrowSolidCross:  "-x",
		ArrowDottedCross: "--x",
		ArrowSolidAsync:  "-)",
		ArrowDottedAsync: "--)",
		"":               "->>",
	}
	for style, syntax := range want {
		if got := style.Syntax(); got != syntax {
			t.Errorf("%q.Syntax() = %q, want %q", style, got, syntax)
		}
	}
	if len(ArrowStyles()) != 8 {
		t.Errorf("expected 8 arrow styles, got %d", len(ArrowStyles()))
	}
}

func TestGeneratePie(t *testing.T) {
	p := Pie{Title: "Pets", ShowData: true, Items: []PieItem{{Label: "Dogs", Value: 42.5}, {Label: "Cats", Value: 10}}}
	want := "pie showData\n  title Pets\n  \"Dogs\" : 42.5\n  \"Cats\" : 10\n"
	if got := Generate(KindPie, p); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := Generate(KindPie, Pie{}); got != "pie\n" {
		t.Errorf("empty pie = %q", got)
	}
}

func TestGenerateQuadrantFallbacks(t *testing.T) {
	q := Quadrant{Points: []QuadrantPoint{{Name: "", X: 0, Y: 1}, {Name: "P", X: 0.25, Y: 0.75}}}
	want := "quadrantChart\n" +
		"  title Quadrant\n" +
		"  x-axis \"Low\" --> \"High\"\n" +
		"  y-axis \"Weak\" --> \"Strong\"\n" +
		"  \"Point\": [0, 1]\n" +
		"  \"P\": [0.25, 0.75]\n"
	if got := Generate(KindQuadrant, q); got != want {
		t.Errorf("quadrant mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateMindmap(t *testing.T) {
	m := Mindmap{Tree: []MindmapNode{
		{ID: "a", Text: "Root", Level: 0},
		{ID: "b", Text: "Child", Level: 1},
		{ID: "c", Text: "", Level: 2},
		{ID: "d", Text: "Leaf", Level: 2},
	}}
	want := "mindmap\n  Root\n    Child\n      Leaf\n"
	if got := Generate(KindMindmap, m); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	empty := Mindmap{Tree: []MindmapNode{{ID: "x", Text: " "}}}
	if got := Generate(KindMindmap, empty); got != "mindmap\n  Root\n" {
		t.Errorf("empty mindmap = %q", got)
	}

	fb := DefaultFallbacks
	fb.MindmapRoot = "根节点"
	if got := GenerateWith(KindMindmap, Mindmap{}, fb); got != "mindmap\n  根节点\n" {
		t.Errorf("localized root = %q", got)
	}
}

func TestGenerateSankey(t *testing.T) {
	show := false
	s := Sankey{
		ShowValues: &show,
		Map: SankeyMap{
			{Source: "S1", Targets: []SankeyTarget{{Target: "T1", Value: 10}, {Target: "T2", Value: 2.5}}},
		},
		Links: []SankeyLink{{Source: "X", Target: "Y", Value: 1}},
	}
	want := "---\nconfig:\n  sankey:\n    showValues: false\n---\n" +
		"sankey-beta\n" +
		"S1,T1,10\n" +
		"S1,T2,2.5\n"
	if got := Generate(KindSankey, s); got != want {
		t.Errorf("sankey mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	links := Sankey{Links: []SankeyLink{{Source: "X", Target: "Y", Value: 1}}}
	if got := Generate(KindSankey, links); got != "sankey-beta\nX,Y,1\n" {
		t.Errorf("links sankey = %q", got)
	}

	emptyMap := Sankey{Map: SankeyMap{}, Links: []SankeyLink{{Source: "X", Target: "Y", Value: 1}}}
	if got := Generate(KindSankey, emptyMap); got != "sankey-beta\n" {
		t.Errorf("an empty map should still take priority, got %q", got)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	if got := Generate("radar", Pie{}); got != "graph TD\n  Error" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateNormalizesModel(t *testing.T) {
	if got := Generate(KindPie, Flowchart{Nodes: []FlowchartNode{{ID: "x"}}}); got != "pie\n" {
		t.Errorf("mismatched model = %q", got)
	}
	if got := Generate(KindPie, nil); got != "pie\n" {
		t.Errorf("nil model = %q", got)
	}
	if got := Generate(KindPie, &Pie{Title: "x"}); got != "pie\n  title x\n" {
		t.Errorf("pointer model = %q", got)
	}
	var nilPie *Pie
	if got := Generate(KindPie, nilPie); got != "pie\n" {
		t.Errorf("nil pointer model = %q", got)
	}
}

func TestFence(t *testing.T) {
	got := Fence("pie\n")
	want := "```mermaid\npie\n\n```\n\n"
	if got != want {
		t.Errorf("Fence = %q, want %q", got, want)
	}
}

func TestKnownShape(t *testing.T) {
	for _, s := range Shapes() {
		if !KnownShape(s) {
			t.Errorf("shape %q is listed but has no rendering", s)
		}
	}
	if KnownShape("spaceship") {
		t.Error("unexpected shape accepted")
	}
}
