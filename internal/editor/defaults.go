package editor

import (
	"fmt"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

// Defaults returns the starting model shown when kind is picked.
func Defaults(kind diagrams.Kind, loc *i18n.Locale, now time.Time) (diagrams.Model, error) {
	if loc == nil {
		loc = i18n.New(i18n.DefaultLang)
	}
	n := func(prefix string, i int) string { return fmt.Sprintf("%s%d", loc.T(prefix), i) }

	switch kind {
	case diagrams.KindFlowchart:
		return diagrams.Flowchart{
			Direction: diagrams.DirectionTD,
			Nodes: []diagrams.FlowchartNode{
				{ID: "start", Label: n("prefix.node", 1), Shape: diagrams.DefaultShape},
			},
			Edges: []diagrams.FlowchartEdge{},
		}, nil

	case diagrams.KindGantt:
		start, end := edit.DefaultTaskDates(diagrams.TimeFormatDate, now)
		return diagrams.Gantt{
			Title:      loc.T("defaults.gantt_title"),
			TimeFormat: diagrams.TimeFormatDate,
			Scheduling: diagrams.SchedulingDates,
			Tasks: []diagrams.GanttTask{
				{Name: loc.T("defaults.gantt_task"), StartDate: start, EndDate: end, Status: diagrams.StatusActive},
			},
		}, nil

	case diagrams.KindTimeline:
		return diagrams.Timeline{
			Theme: diagrams.DefaultTheme,
			Items: []diagrams.TimelineItem{
				{Period: n("prefix.period", 1), Events: []string{n("prefix.event", 1)}},
				{Period: n("prefix.period", 2), Events: []string{n("prefix.event", 1)}},
			},
		}, nil

	case diagrams.KindSequence:
		a, b := n("prefix.participant", 1), n("prefix.participant", 2)
		return diagrams.Sequence{
			Participants: []diagrams.SequenceParticipant{
				{Name: a, Type: diagrams.ParticipantActor},
				{Name: b, Type: diagrams.ParticipantBox},
			},
			Messages: []diagrams.SequenceMessage{
				{From: a, To: b, Text: n("prefix.message", 1), Arrow: diagrams.DefaultArrowStyle},
			},
		}, nil

	case diagrams.KindPie:
		return diagrams.Pie{Items: []diagrams.PieItem{
			{Label: n("prefix.category", 1), Value: 30},
			{Label: n("prefix.category", 2), Value: 45},
			{Label: n("prefix.category", 3), Value: 25},
		}}, nil

	case diagrams.KindQuadrant:
		return diagrams.Quadrant{
			Title:  loc.T("fallback.quadrant_title"),
			XLeft:  loc.T("fallback.quadrant_x_left"),
			XRight: loc.T("fallback.quadrant_x_right"),
			YDown:  loc.T("fallback.quadrant_y_down"),
			YUp:    loc.T("fallback.quadrant_y_up"),
			Points: []diagrams.QuadrantPoint{{Name: n("prefix.point", 1), X: 0.3, Y: 0.6}},
		}, nil

	case diagrams.KindMindmap:
		return diagrams.Mindmap{Tree: []diagrams.MindmapNode{
			{ID: "root", Text: loc.T("fallback.mindmap_root"), Level: 0},
			{ID: "n1", Text: n("prefix.node", 1), Level: 1},
		}}, nil

	case diagrams.KindSankey:
		show := false
		return diagrams.Sankey{
			ShowValues: &show,
			Map: diagrams.SankeyMap{
				{Source: "Source1", Targets: []diagrams.SankeyTarget{{Target: "Target1", Value: 10}, {Target: "Target2", Value: 20}}},
				{Source: "Source2", Targets: []diagrams.SankeyTarget{{Target: "Target1", Value: 15}}},
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", diagrams.ErrUnknownKind, kind)
}
