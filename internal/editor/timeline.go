package editor

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type timelineEditor struct {
	base
	m diagrams.Timeline
}

func (e *timelineEditor) Kind() diagrams.Kind    { return diagrams.KindTimeline }
func (e *timelineEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *timelineEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "set_title":
		e.m = edit.SetTimelineTitle(e.m, p.Value)
	case "set_theme":
		e.m = edit.SetTheme(e.m, p.Value)
	case "add_item":
		e.m = edit.AddItem(e.m, e.t("prefix.period"), e.t("prefix.event"))
	case "remove_item":
		e.m = edit.RemoveItem(e.m, p.Index)
	case "update_item":
		switch p.Field {
		case "period":
			e.m = edit.SetPeriod(e.m, p.Index, p.Value)
		case "section":
			e.m = edit.SetItemSection(e.m, p.Index, p.Value)
		default:
			// Event inputs are named event-<n>.
			j, err := strconv.Atoi(strings.TrimPrefix(p.Field, "event-"))
			if !strings.HasPrefix(p.Field, "event-") || err != nil {
				return unknownField(e.Kind(), p.Field)
			}
			e.m = edit.UpdateEvent(e.m, p.Index, j, p.Value)
		}
	case "add_event":
		e.m = edit.AddEvent(e.m, p.Index, e.t("prefix.event"))
	case "update_event":
		e.m = edit.UpdateEvent(e.m, p.Index, p.Sub, p.Value)
	case "remove_event":
		e.m = edit.RemoveEvent(e.m, p.Index, p.Sub)
	case "move_item":
		e.m = edit.ReorderItems(e.m, p.Index, p.Sub, p.Above)
	case OpDragStart:
		e.startDrag(p)
	case OpDragEnd:
		e.Cleanup()
	case OpDrop:
		d, err := e.takeDrag()
		if err != nil {
			return err
		}
		e.m = edit.ReorderItems(e.m, d.index, p.Index, p.Above)
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *timelineEditor) Build() Form {
	theme := e.m.Theme
	if theme == "" {
		theme = diagrams.DefaultTheme
	}
	config := Section{Title: e.t("section.config"), Rows: []Row{
		{Key: "title", UpdateOp: "set_title", Fields: []Field{
			{Name: "title", Label: e.t("field.title"), Type: FieldText, Value: e.m.Title},
		}},
		{Key: "theme", UpdateOp: "set_theme", Fields: []Field{
			{Name: "theme", Label: e.t("field.theme"), Type: FieldSelect, Value: theme, Options: e.options("theme.", edit.Themes()...)},
		}},
	}}

	items := Section{Title: e.t("section.items"), Actions: []Action{
		{Label: e.t("action.add_item"), Patch: Patch{Op: "add_item"}},
	}}
	for i, it := range e.m.Items {
		fields := []Field{
			{Name: "period", Label: e.t("field.period"), Type: FieldText, Value: it.Period},
			{Name: "section", Label: e.t("field.section"), Type: FieldText, Value: it.Section, Placeholder: e.t("field.section_optional")},
		}
		actions := []Action{{Label: e.t("action.add_event"), Patch: Patch{Op: "add_event", Index: i}}}
		for j, ev := range it.Events {
			fields = append(fields, Field{
				Name:  "event-" + strconv.Itoa(j),
				Label: e.t("field.event"),
				Type:  FieldText,
				Value: ev,
			})
			actions = append(actions, Action{
				Label: e.t("action.remove_event"),
				Patch: Patch{Op: "remove_event", Index: i, Sub: j},
			})
		}
		actions = append(actions, deleteAction(&e.base, Patch{Op: "remove_item", Index: i}))
		items.Rows = append(items.Rows, Row{
			Key:       "item-" + strconv.Itoa(i),
			Draggable: true,
			UpdateOp:  "update_item",
			Patch:     Patch{Index: i},
			Fields:    fields,
			Actions:   actions,
		})
	}

	return Form{Kind: string(e.Kind()), Title: e.t("kind.timeline"), Sections: []Section{config, items}}
}
