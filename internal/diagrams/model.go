package diagrams

import (
	"errors"
	"fmt"
	"slices"
)

// Kind identifies one of the supported diagram types.
type Kind string

const (
	KindFlowchart Kind = "flowchart"
	KindGantt     Kind = "gantt"
	KindTimeline  Kind = "timeline"
	KindPie       Kind = "pie"
	KindQuadrant  Kind = "quadrant"
	KindSequence  Kind = "sequence"
	KindMindmap   Kind = "mindmap"
	KindSankey    Kind = "sankey"
)

// ErrUnknownKind is returned when a string does not name a supported kind.
var ErrUnknownKind = errors.New("unknown diagram kind")

// Kinds returns every supported kind in menu order.
func Kinds() []Kind {
	return []Kind{
		KindFlowchart,
		KindGantt,
		KindTimeline,
		KindPie,
		KindQuadrant,
		KindSequence,
		KindMindmap,
		KindSankey,
	}
}

// ParseKind validates s as a diagram kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Model is the editable content of one diagram.
type Model interface {
	Kind() Kind
}

// Direction is the layout direction of a flowchart.
type Direction string

const (
	DirectionTD Direction = "TD"
	DirectionLR Direction = "LR"
)

// FlowchartNode is a single node of a flowchart.
type FlowchartNode struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Shape string `json:"shape" yaml:"shape"`
	Group string `json:"group" yaml:"group"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// FlowchartEdge connects two nodes by id. Either end may be empty while the
// user is still picking endpoints.
type FlowchartEdge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

type Flowchart struct {
	Direction Direction       `json:"direction,omitempty" yaml:"direction,omitempty"`
	Nodes     []FlowchartNode `json:"nodes" yaml:"nodes"`
	Edges     []FlowchartEdge `json:"edges" yaml:"edges"`
}

func (Flowchart) Kind() Kind { return KindFlowchart }

// TimeFormat selects whether gantt dates are calendar days or clock times.
type TimeFormat string

const (
	TimeFormatDate TimeFormat = "date"
	TimeFormatTime TimeFormat = "time"
)

// Scheduling selects how gantt tasks are placed on the axis.
type Scheduling string

const (
	// SchedulingDates places every task by explicit start and end values.
	SchedulingDates Scheduling = "dates"
	// SchedulingDependency places tasks after another task (or a fixed
	// start) for a duration such as "3d".
	SchedulingDependency Scheduling = "dependency"
)

// TaskStatus is the mermaid status tag of a gantt task.
type TaskStatus string

const (
	StatusDefault TaskStatus = ""
	StatusActive  TaskStatus = "active"
	StatusDone    TaskStatus = "done"
	StatusCrit    TaskStatus = "crit"
)

// Valid reports whether s is one of the mermaid task tags.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusDefault, StatusActive, StatusDone, StatusCrit:
		return true
	}
	return false
}

type GanttTask struct {
	Name        string     `json:"name" yaml:"name"`
	StartDate   string     `json:"startDate" yaml:"startDate"`
	EndDate     string     `json:"endDate" yaml:"endDate"`
	Status      TaskStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Section     string     `json:"section,omitempty" yaml:"section,omitempty"`
	IsMilestone bool       `json:"isMilestone,omitempty" yaml:"isMilestone,omitempty"`

	// Dependency scheduling only.
	After    string `json:"after,omitempty" yaml:"after,omitempty"`
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

type Gantt struct {
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	TimeFormat TimeFormat  `json:"timeFormat,omitempty" yaml:"timeFormat,omitempty"`
	Scheduling Scheduling  `json:"scheduling,omitempty" yaml:"scheduling,omitempty"`
	Start      string      `json:"start,omitempty" yaml:"start,omitempty"`
	Tasks      []GanttTask `json:"tasks" yaml:"tasks"`
}

func (Gantt) Kind() Kind { return KindGantt }

type TimelineItem struct {
	Period  string   `json:"period" yaml:"period"`
	Events  []string `json:"events" yaml:"events"`
	Section string   `json:"section,omitempty" yaml:"section,omitempty"`
}

type Timeline struct {
	Title string         `json:"title,omitempty" yaml:"title,omitempty"`
	Theme string         `json:"theme,omitempty" yaml:"theme,omitempty"`
	Items []TimelineItem `json:"items" yaml:"items"`
}

func (Timeline) Kind() Kind { return KindTimeline }

// ParticipantType distinguishes boxes from stick figures.
type ParticipantType string

const (
	ParticipantBox   ParticipantType = "participant"
	ParticipantActor ParticipantType = "actor"
)

type SequenceParticipant struct {
	Name string          `json:"name" yaml:"name"`
	Type ParticipantType `json:"type" yaml:"type"`
}

type SequenceMessage struct {
	From  string     `json:"from" yaml:"from"`
	To    string     `json:"to" yaml:"to"`
	Text  string     `json:"text" yaml:"text"`
	Arrow ArrowStyle `json:"arrow" yaml:"arrow"`
}

type Sequence struct {
	Participants []SequenceParticipant `json:"participants" yaml:"participants"`
	Messages     []SequenceMessage     `json:"messages" yaml:"messages"`
}

func (Sequence) Kind() Kind { return KindSequence }

type PieItem struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

type Pie struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	ShowData bool      `json:"showData,omitempty" yaml:"showData,omitempty"`
	Items    []PieItem `json:"items" yaml:"items"`
}

func (Pie) Kind() Kind { return KindPie }

// QuadrantPoint coordinates are meant to lie in [0, 1] but are not clamped.
type QuadrantPoint struct {
	Name string  `json:"name" yaml:"name"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

type Quadrant struct {
	Title  string          `json:"title,omitempty" yaml:"title,omitempty"`
	XLeft  string          `json:"xLeft,omitempty" yaml:"xLeft,omitempty"`
	XRight string          `json:"xRight,omitempty" yaml:"xRight,omitempty"`
	YDown  string          `json:"yDown,omitempty" yaml:"yDown,omitempty"`
	YUp    string          `json:"yUp,omitempty" yaml:"yUp,omitempty"`
	Points []QuadrantPoint `json:"points" yaml:"points"`
}

func (Quadrant) Kind() Kind { return KindQuadrant }

// MindmapNode is one entry of a flat, leveled tree. A node's parent is the
// nearest preceding node with a strictly smaller level; it is never stored.
type MindmapNode struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level" yaml:"level"`
}

type Mindmap struct {
	Tree []MindmapNode `json:"tree" yaml:"tree"`
}

func (Mindmap) Kind() Kind { return KindMindmap }

// SankeyLink is the flat representation of one flow.
type SankeyLink struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Value  float64 `json:"value" yaml:"value"`
}

type Sankey struct {
	// ShowValues is emitted as a config header only when set.
	ShowValues *bool        `json:"showValues,omitempty" yaml:"showValues,omitempty"`
	Map        SankeyMap    `json:"map,omitempty" yaml:"map,omitempty"`
	Links      []SankeyLink `json:"links,omitempty" yaml:"links,omitempty"`
}

func (Sankey) Kind() Kind { return KindSankey }

// Clone returns a deep copy of a model value, so callers may change the
// result without touching the original. Other values are returned as is.
func Clone(m Model) Model {
	switch v := m.(type) {
	case Flowchart:
		v.Nodes = slices.Clone(v.Nodes)
		v.Edges = slices.Clone(v.Edges)
		return v
	case Gantt:
		v.Tasks = slices.Clone(v.Tasks)
		return v
	case Timeline:
		v.Items = slices.Clone(v.Items)
		for i := range v.Items {
			v.Items[i].Events = slices.Clone(v.Items[i].Events)
		}
		return v
	case Sequence:
		v.Participants = slices.Clone(v.Participants)
		v.Messages = slices.Clone(v.Messages)
		return v
	case Pie:
		v.Items = slices.Clone(v.Items)
		return v
	case Quadrant:
		v.Points = slices.Clone(v.Points)
		return v
	case Mindmap:
		v.Tree = slices.Clone(v.Tree)
		return v
	case Sankey:
		if v.ShowValues != nil {
			show := *v.ShowValues
			v.ShowValues = &show
		}
		v.Map = v.Map.Clone()
		v.Links = slices.Clone(v.Links)
		return v
	}
	return m
}
