// Package editor adapts the edit operations to a form-driven UI. Each
// diagram kind has one Editor variant that describes its form, decodes
// patches from the UI into edit operations and holds the current model.
// Editors are not safe for concurrent use; the owning session serializes
// access.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

var (
	// ErrUnknownOp is returned for a patch op the editor does not handle.
	ErrUnknownOp = errors.New("unknown patch op")
	// ErrUnknownField is returned for an update naming a field that does
	// not exist on the row.
	ErrUnknownField = errors.New("unknown field")
	// ErrNoDrag is returned for a drop without a preceding drag_start.
	ErrNoDrag = errors.New("drop without drag")
)

// Patch is one edit request from the UI. Which members matter depends on
// Op; rows carry a pre-filled Patch with their identity.
type Patch struct {
	Op     string  `json:"op"`
	Index  int     `json:"index,omitempty"`
	Sub    int     `json:"sub,omitempty"`
	ID     string  `json:"id,omitempty"`
	Target string  `json:"target,omitempty"`
	Above  bool    `json:"above,omitempty"`
	Field  string  `json:"field,omitempty"`
	Value  string  `json:"value,omitempty"`
	Number float64 `json:"number,omitempty"`
	Flag   bool    `json:"flag,omitempty"`
}

// Ops shared by every variant.
const (
	OpDragStart = "drag_start"
	OpDrop      = "drop"
	OpDragEnd   = "drag_end"
)

// Editor is the form-side view of one diagram being edited.
type Editor interface {
	Kind() diagrams.Kind
	// Build describes the current form.
	Build() Form
	// UpdateData applies one patch to the held model.
	UpdateData(p Patch) error
	Model() diagrams.Model
	// Cleanup drops transient UI state such as an unfinished drag.
	Cleanup()
}

// Clock returns the current time. Gantt defaults depend on it.
type Clock func() time.Time

// New returns the editor variant for kind, starting from m. A nil or
// mismatched model starts from the localized defaults.
func New(kind diagrams.Kind, m diagrams.Model, loc *i18n.Locale, now Clock) (Editor, error) {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = i18n.New(i18n.DefaultLang)
	}
	if m == nil || m.Kind() != kind {
		d, err := Defaults(kind, loc, now())
		if err != nil {
			return nil, err
		}
		m = d
	}
	b := base{loc: loc, now: now}

	switch kind {
	case diagrams.KindFlowchart:
		return &flowchartEditor{base: b, m: diagrams.As[diagrams.Flowchart](m)}, nil
	case diagrams.KindGantt:
		return &ganttEditor{base: b, m: diagrams.As[diagrams.Gantt](m)}, nil
	case diagrams.KindTimeline:
		return &timelineEditor{base: b, m: diagrams.As[diagrams.Timeline](m)}, nil
	case diagrams.KindSequence:
		return &sequenceEditor{base: b, m: diagrams.As[diagrams.Sequence](m)}, nil
	case diagrams.KindPie:
		return &pieEditor{base: b, m: diagrams.As[diagrams.Pie](m)}, nil
	case diagrams.KindQuadrant:
		return &quadrantEditor{base: b, m: diagrams.As[diagrams.Quadrant](m)}, nil
	case diagrams.KindMindmap:
		return &mindmapEditor{base: b, m: diagrams.As[diagrams.Mindmap](m)}, nil
	case diagrams.KindSankey:
		return &sankeyEditor{base: b, m: diagrams.As[diagrams.Sankey](m)}, nil
	}
	return nil, fmt.Errorf("%w: %q", diagrams.ErrUnknownKind, kind)
}

// dragState remembers the row picked up by drag_start until it is dropped.
type dragState struct {
	active bool
	id     string
	index  int
}

// base carries what every variant needs.
type base struct {
	loc  *i18n.Locale
	now  Clock
	drag dragState
}

func (b *base) Cleanup() {
	b.drag = dragState{}
}

// startDrag records the dragged row.
func (b *base) startDrag(p Patch) {
	b.drag = dragState{active: true, id: p.ID, index: p.Index}
}

// takeDrag returns and clears the dragged row.
func (b *base) takeDrag() (dragState, error) {
	d := b.drag
	b.drag = dragState{}
	if !d.active {
		return d, ErrNoDrag
	}
	return d, nil
}

func (b *base) t(key string) string { return b.loc.T(key) }

func unknownOp(kind diagrams.Kind, op string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownOp, kind, op)
}

func unknownField(kind diagrams.Kind, field string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownField, kind, field)
}

// number prefers the numeric member of p and falls back to parsing Value.
func number(p Patch) (float64, error) {
	if p.Value == "" {
		return p.Number, nil
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as a number: %w", p.Value, err)
	}
	return v, nil
}

// flag prefers the boolean member of p and falls back to parsing Value.
func flag(p Patch) (bool, error) {
	if p.Value == "" {
		return p.Flag, nil
	}
	v, err := strconv.ParseBool(p.Value)
	if err != nil {
		return false, fmt.Errorf("parsing %q as a boolean: %w", p.Value, err)
	}
	return v, nil
}

// options builds select options whose labels come from keyPrefix+value.
func (b *base) options(keyPrefix string, values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: b.t(keyPrefix + v)}
	}
	return out
}

func deleteAction(b *base, p Patch) Action {
	return Action{Label: b.t("action.delete"), Patch: p}
}
