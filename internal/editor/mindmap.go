package editor

import (
	"fmt"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type mindmapEditor struct {
	base
	m diagrams.Mindmap
}

func (e *mindmapEditor) Kind() diagrams.Kind    { return diagrams.KindMindmap }
func (e *mindmapEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *mindmapEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "add_node":
		e.m = edit.AddMindmapNode(e.m, edit.NewID("n", edit.MindmapIDs(e.m)), e.t("prefix.node"))
	case "remove_node":
		e.m = edit.RemoveMindmapNode(e.m, p.ID)
	case "set_text":
		e.m = edit.SetMindmapText(e.m, p.ID, p.Value)
	case "indent":
		e.m = edit.Indent(e.m, p.ID)
	case "outdent":
		e.m = edit.Outdent(e.m, p.ID)
	case "move_node":
		e.m = edit.ReorderMindmap(e.m, p.ID, p.Target, p.Above)
	case OpDragStart:
		e.startDrag(p)
	case OpDragEnd:
		e.Cleanup()
	case OpDrop:
		d, err := e.takeDrag()
		if err != nil {
			return err
		}
		e.m = edit.ReorderMindmap(e.m, d.id, p.ID, p.Above)
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *mindmapEditor) Build() Form {
	tree := Section{Title: e.t("section.tree"), Actions: []Action{
		{Label: e.t("action.add_node"), Patch: Patch{Op: "add_node"}},
	}}
	for _, n := range e.m.Tree {
		var actions []Action
		if n.Level > 1 {
			actions = append(actions, Action{Label: "←", Patch: Patch{Op: "outdent", ID: n.ID}})
		}
		if n.Level > 0 {
			actions = append(actions, Action{Label: "→", Patch: Patch{Op: "indent", ID: n.ID}})
		}
		actions = append(actions, deleteAction(&e.base, Patch{Op: "remove_node", ID: n.ID}))
		tree.Rows = append(tree.Rows, Row{
			Key:       n.ID,
			Level:     n.Level,
			Draggable: true,
			UpdateOp:  "set_text",
			Patch:     Patch{ID: n.ID},
			Fields: []Field{{
				Name:        "text",
				Label:       fmt.Sprintf("L%d", n.Level),
				Type:        FieldText,
				Value:       n.Text,
				Placeholder: e.t("field.node_text"),
			}},
			Actions: actions,
		})
	}
	return Form{Kind: string(e.Kind()), Title: e.t("kind.mindmap"), Sections: []Section{tree}}
}
