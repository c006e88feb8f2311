package editor

import (
	"fmt"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type sankeyEditor struct {
	base
	m diagrams.Sankey
}

func (e *sankeyEditor) Kind() diagrams.Kind    { return diagrams.KindSankey }
func (e *sankeyEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

// Sankey rows are addressed by source name (ID) and target position
// (Index) within that source.
func (e *sankeyEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "set_show_values":
		show, err := flag(p)
		if err != nil {
			return err
		}
		e.m = edit.SetShowValues(e.m, show)
	case "add_flow":
		e.m = edit.AddFlow(e.m, e.t("prefix.source"), e.t("prefix.target"))
	case "rename_source":
		e.m = edit.RenameSource(e.m, p.ID, p.Value)
	case "update_flow":
		switch p.Field {
		case "source":
			e.m = edit.RenameSource(e.m, p.ID, p.Value)
		case "target":
			e.m = edit.SetFlowTarget(e.m, p.ID, p.Index, p.Value)
		case "value":
			v, err := number(p)
			if err != nil {
				return err
			}
			e.m = edit.SetFlowValue(e.m, p.ID, p.Index, v)
		default:
			return unknownField(e.Kind(), p.Field)
		}
	case "remove_flow":
		e.m = edit.RemoveFlow(e.m, p.ID, p.Index)
	case OpDragStart, OpDragEnd, OpDrop:
		e.Cleanup()
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *sankeyEditor) Build() Form {
	show := e.m.ShowValues != nil && *e.m.ShowValues
	config := Section{Title: e.t("section.config"), Rows: []Row{{
		Key:      "show_values",
		UpdateOp: "set_show_values",
		Fields: []Field{
			{Name: "showValues", Label: e.t("field.show_values"), Type: FieldToggle, Value: show},
		},
	}}}

	flows := Section{Title: e.t("section.map"), Actions: []Action{
		{Label: e.t("action.add_flow"), Patch: Patch{Op: "add_flow"}},
	}}
	m := e.m.Map
	if m == nil {
		m = edit.SankeyFromLinks(e.m.Links)
	}
	for _, src := range m {
		for i, t := range src.Targets {
			flows.Rows = append(flows.Rows, Row{
				Key:      fmt.Sprintf("%s/%d", src.Source, i),
				UpdateOp: "update_flow",
				Patch:    Patch{ID: src.Source, Index: i},
				Fields: []Field{
					{Name: "source", Label: e.t("field.source"), Type: FieldText, Value: src.Source},
					{Name: "target", Label: e.t("field.target"), Type: FieldText, Value: t.Target},
					{Name: "value", Label: e.t("field.value"), Type: FieldNumber, Value: t.Value},
				},
				Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_flow", ID: src.Source, Index: i})},
			})
		}
	}
	return Form{Kind: string(e.Kind()), Title: e.t("kind.sankey"), Sections: []Section{config, flows}}
}
