package diagrams

import (
	"encoding/csv"
	"strings"
	"testing"
)

// hostile holds every delimiter the generators must neutralise.
const hostile = "x\"y]z%%w:v\n%%section injected"

// unescapedQuotes counts double quotes not preceded by a backslash.
func unescapedQuotes(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '"' && (i == 0 || line[i-1] != '\\') {
			n++
		}
	}
	return n
}

func TestGenerateContainsUserText(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		model     Model
		wantLines int
		check     func(t *testing.T, lines []string)
	}{
		{
			name: "flowchart",
			kind: KindFlowchart,
			model: Flowchart{
				Direction: DirectionLR,
				Nodes: []FlowchartNode{
					{ID: hostile, Label: hostile, Shape: "rect", Group: hostile, Color: hostile},
					{ID: "b", Label: hostile, Shape: "circle"},
					{ID: "c", Label: hostile, Shape: "document"},
				},
				Edges: []FlowchartEdge{{From: hostile, To: "b", Label: hostile}},
			},
			wantLines: 8,
			check: func(t *testing.T, lines []string) {
				for _, l := range lines {
					switch {
					case strings.HasPrefix(l, "    x_y_z"):
						if strings.Count(l, "[") != 1 || strings.Count(l, "]") != 1 || !strings.HasSuffix(l, "]") {
							t.Errorf("label escaped its brackets: %q", l)
						}
					case strings.Contains(l, "-->"):
						if strings.Count(l, "|") != 2 {
							t.Errorf("edge label escaped its pipes: %q", l)
						}
					case strings.HasPrefix(l, "  style "):
						if l != "  style x_y_z__w_v___section_injected fill:xyzwvsectioninjected" {
							t.Errorf("style line carries raw text: %q", l)
						}
					}
				}
			},
		},
		{
			name: "gantt dates",
			kind: KindGantt,
			model: Gantt{
				Title: hostile,
				Tasks: []GanttTask{
					{Name: hostile, StartDate: hostile, EndDate: hostile, Section: hostile},
					{Name: hostile, StartDate: hostile, Section: hostile, IsMilestone: true},
				},
			},
			wantLines: 8,
			check:     checkGanttTasks(1),
		},
		{
			name: "gantt dependency",
			kind: KindGantt,
			model: Gantt{
				Scheduling: SchedulingDependency,
				Start:      hostile,
				Tasks: []GanttTask{
					{Name: hostile, After: hostile, Duration: hostile},
					{Name: hostile, Duration: hostile},
				},
			},
			wantLines: 6,
			check:     checkGanttTasks(1),
		},
		{
			name: "timeline",
			kind: KindTimeline,
			model: Timeline{
				Title: hostile,
				Theme: "dark' }}%%\nflowchart",
				Items: []TimelineItem{
					{Period: hostile, Events: []string{hostile, hostile}, Section: hostile},
					{Period: hostile, Events: []string{hostile}},
				},
			},
			wantLines: 6,
			check: func(t *testing.T, lines []string) {
				if lines[0] != "%%{init: { 'theme': 'darkflowchart' }}%%" {
					t.Errorf("theme line = %q", lines[0])
				}
				if got := strings.Count(lines[4], ":"); got != 2 {
					t.Errorf("two events should give two separators, got %d in %q", got, lines[4])
				}
				if got := strings.Count(lines[5], ":"); got != 1 {
					t.Errorf("one event should give one separator, got %d in %q", got, lines[5])
				}
			},
		},
		{
			name: "sequence",
			kind: KindSequence,
			model: Sequence{
				Participants: []SequenceParticipant{{Name: hostile}, {Name: "B", Type: ParticipantActor}},
				Messages:     []SequenceMessage{{From: hostile, To: "B", Text: hostile + ";next"}},
			},
			wantLines: 4,
			check: func(t *testing.T, lines []string) {
				name := strings.TrimPrefix(lines[1], "  participant ")
				head, _, ok := strings.Cut(lines[3], ": ")
				if !ok || head != "  "+name+"->>B" {
					t.Errorf("message %q does not start with participant %q", lines[3], name)
				}
				if strings.Contains(lines[3], ";") && !strings.Contains(lines[3], "#59;") {
					t.Errorf("raw statement separator in %q", lines[3])
				}
			},
		},
		{
			name:      "pie",
			kind:      KindPie,
			model:     Pie{Title: hostile, Items: []PieItem{{Label: hostile, Value: 1}}},
			wantLines: 3,
		},
		{
			name: "quadrant",
			kind: KindQuadrant,
			model: Quadrant{
				Title: hostile, XLeft: hostile, XRight: hostile, YDown: hostile, YUp: hostile,
				Points: []QuadrantPoint{{Name: hostile, X: 0.5, Y: 0.5}},
			},
			wantLines: 5,
		},
		{
			name:      "mindmap",
			kind:      KindMindmap,
			model:     Mindmap{Tree: []MindmapNode{{Text: hostile + "(round)"}, {Text: hostile, Level: 1}}},
			wantLines: 3,
			check: func(t *testing.T, lines []string) {
				for _, l := range lines[1:] {
					if strings.ContainsAny(l, "[](){}") {
						t.Errorf("node text can change the node shape: %q", l)
					}
				}
			},
		},
		{
			name:      "sankey",
			kind:      KindSankey,
			model:     Sankey{Map: SankeyMap{{Source: hostile, Targets: []SankeyTarget{{Target: "a,b", Value: 1}}}}},
			wantLines: 2,
			check: func(t *testing.T, lines []string) {
				rec, err := csv.NewReader(strings.NewReader(lines[1])).Read()
				if err != nil {
					t.Fatalf("row %q: %v", lines[1], err)
				}
				if len(rec) != 3 || rec[1] != "a,b" || rec[2] != "1" {
					t.Errorf("row fields = %q", rec)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Generate(tt.kind, tt.model)
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d:\n%s", len(lines), tt.wantLines, out)
			}
			for i, l := range lines {
				trimmed := strings.TrimSpace(l)
				if strings.HasPrefix(trimmed, "%%") && !(i == 0 && strings.HasPrefix(l, "%%{init")) {
					t.Errorf("line %d starts a comment: %q", i, l)
				}
				if strings.HasPrefix(trimmed, "section injected") {
					t.Errorf("line %d was injected: %q", i, l)
				}
				if n := unescapedQuotes(l); n%2 != 0 {
					t.Errorf("line %d has an unbalanced quote: %q", i, l)
				}
			}
			if tt.check != nil {
				tt.check(t, lines)
			}
		})
	}
}

// checkGanttTasks asserts that every task line keeps its name free of
// separators and its data to one statement.
func checkGanttTasks(from int) func(t *testing.T, lines []string) {
	return func(t *testing.T, lines []string) {
		for _, l := range lines[from:] {
			trimmed := strings.TrimSpace(l)
			if strings.HasPrefix(trimmed, "title ") || strings.HasPrefix(trimmed, "section ") {
				if strings.ContainsAny(trimmed, "#;") {
					t.Errorf("header carries a separator: %q", l)
				}
				continue
			}
			if strings.HasPrefix(trimmed, "dateFormat") || strings.HasPrefix(trimmed, "axisFormat") || strings.HasPrefix(trimmed, "tickInterval") {
				continue
			}
			name, data, ok := strings.Cut(trimmed, " :")
			if !ok {
				t.Errorf("task line without data: %q", l)
				continue
			}
			if strings.ContainsAny(name, "#:;") {
				t.Errorf("task name carries a separator: %q", name)
			}
			if strings.ContainsAny(data, "#;\"") {
				t.Errorf("task data carries a separator: %q", data)
			}
			if n := strings.Count(data, ","); n < 1 || n > 2 {
				t.Errorf("task data has %d fields: %q", n+1, data)
			}
		}
	}
}

func TestGenerateFlowchartIDs(t *testing.T) {
	f := Flowchart{
		Nodes: []FlowchartNode{
			{ID: " a b ", Label: "A"},
			{ID: "  ", Label: "ghost"},
			{ID: "c"},
		},
		Edges: []FlowchartEdge{
			{From: " a b", To: "c "},
			{From: "   ", To: "c", Label: "blank"},
			{From: "c", To: "\t"},
		},
	}
	want := "graph TD\n" +
		"  a_b[A]\n" +
		"  c[c]\n" +
		"  a_b --> c\n"
	if got := Generate(KindFlowchart, f); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateGanttSectionNamedLikeFallback(t *testing.T) {
	g := Gantt{Tasks: []GanttTask{
		{Name: "A", StartDate: "2024-01-01", EndDate: "2024-01-02", Section: "Default"},
		{Name: "B", StartDate: "2024-01-03", EndDate: "2024-01-04"},
	}}
	fb := DefaultFallbacks
	fb.GanttSection = "Other"
	got := GenerateWith(KindGantt, g, fb)
	want := "  section Default\n" +
		"    A :2024-01-01, 2024-01-02\n" +
		"  section Other\n" +
		"    B :2024-01-03, 2024-01-04\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
	}

	got = Generate(KindGantt, g)
	if n := strings.Count(got, "section Default\n"); n != 2 {
		t.Errorf("a section named like the fallback must stay separate, got %d headers:\n%s", n, got)
	}
}

func TestEscapeIn(t *testing.T) {
	tests := []struct {
		in, delims, want string
	}{
		{"a]b", "[]", "a#93;b"},
		{"50% done", "", "50% done"},
		{"%%comment", "", "#37;#37;comment"},
		{"say \"hi\"", `"`, "say #34;hi#34;"},
		{"  a\nb  ", ":", "a b"},
	}
	for _, tt := range tests {
		if got := escapeIn(tt.in, tt.delims); got != tt.want {
			t.Errorf("escapeIn(%q, %q) = %q, want %q", tt.in, tt.delims, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"2024-01-01":                      "2024-01-01",
		" 09:30 ":                         "09:30",
		"2024-01-01\n  section injected": "2024-01-01  section injected",
		"3d, 2024;#x\"":                   "3d 2024x",
	}
	for in, want := range tests {
		if got := SanitizeToken(in); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}
