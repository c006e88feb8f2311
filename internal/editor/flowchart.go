package editor

import (
	"strconv"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type flowchartEditor struct {
	base
	m diagrams.Flowchart
}

func (e *flowchartEditor) Kind() diagrams.Kind    { return diagrams.KindFlowchart }
func (e *flowchartEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *flowchartEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "set_direction":
		e.m = edit.SetDirection(e.m, diagrams.Direction(p.Value))
	case "add_node":
		e.m = edit.AddNode(e.m, edit.NewID("n", edit.NodeIDs(e.m)), e.t("prefix.node"))
	case "remove_node":
		e.m = edit.RemoveNode(e.m, p.ID)
	case "update_node":
		var set func(*diagrams.FlowchartNode)
		switch p.Field {
		case "label":
			set = func(n *diagrams.FlowchartNode) { n.Label = p.Value }
		case "shape":
			set = func(n *diagrams.FlowchartNode) { n.Shape = p.Value }
		case "group":
			set = func(n *diagrams.FlowchartNode) { n.Group = p.Value }
		case "color":
			set = func(n *diagrams.FlowchartNode) { n.Color = p.Value }
		default:
			return unknownField(e.Kind(), p.Field)
		}
		e.m = edit.UpdateNode(e.m, p.ID, set)
	case "add_edge":
		e.m = edit.AddEdge(e.m)
	case "remove_edge":
		e.m = edit.RemoveEdge(e.m, p.Index)
	case "update_edge":
		var set func(*diagrams.FlowchartEdge)
		switch p.Field {
		case "from":
			set = func(ed *diagrams.FlowchartEdge) { ed.From = p.Value }
		case "to":
			set = func(ed *diagrams.FlowchartEdge) { ed.To = p.Value }
		case "label":
			set = func(ed *diagrams.FlowchartEdge) { ed.Label = p.Value }
		default:
			return unknownField(e.Kind(), p.Field)
		}
		e.m = edit.UpdateEdge(e.m, p.Index, set)
	case "move_node":
		e.m = edit.ReorderNodes(e.m, p.ID, p.Target, p.Above)
	case OpDragStart:
		e.startDrag(p)
	case OpDragEnd:
		e.Cleanup()
	case OpDrop:
		d, err := e.takeDrag()
		if err != nil {
			return err
		}
		e.m = edit.ReorderNodes(e.m, d.id, p.ID, p.Above)
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *flowchartEditor) Build() Form {
	config := Section{Title: e.t("section.config"), Rows: []Row{{
		Key:      "config",
		UpdateOp: "set_direction",
		Fields: []Field{{
			Name:    "direction",
			Label:   e.t("field.direction"),
			Type:    FieldSelect,
			Value:   string(edit.SetDirection(e.m, e.m.Direction).Direction),
			Options: e.options("direction.", string(diagrams.DirectionTD), string(diagrams.DirectionLR)),
		}},
	}}}

	shapes := make([]Option, 0, len(diagrams.Shapes()))
	for _, s := range diagrams.Shapes() {
		shapes = append(shapes, Option{Value: s, Label: e.t("shape." + s)})
	}
	endpoints := []Option{{Value: "", Label: "-"}}
	for _, n := range e.m.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		endpoints = append(endpoints, Option{Value: n.ID, Label: label})
	}

	nodes := Section{Title: e.t("section.nodes"), Actions: []Action{
		{Label: e.t("action.add_node"), Patch: Patch{Op: "add_node"}},
	}}
	for _, n := range e.m.Nodes {
		color := n.Color
		if color == "" {
			color = "#ffffff"
		}
		shape := n.Shape
		if !diagrams.KnownShape(shape) {
			shape = diagrams.DefaultShape
		}
		nodes.Rows = append(nodes.Rows, Row{
			Key:       n.ID,
			Draggable: true,
			UpdateOp:  "update_node",
			Patch:     Patch{ID: n.ID},
			Fields: []Field{
				{Name: "label", Label: e.t("field.label"), Type: FieldText, Value: n.Label, Placeholder: e.t("field.label")},
				{Name: "shape", Label: e.t("field.shape"), Type: FieldSelect, Value: shape, Options: shapes},
				{Name: "group", Label: e.t("field.group"), Type: FieldText, Value: n.Group, Placeholder: e.t("field.group_optional")},
				{Name: "color", Label: e.t("field.color"), Type: FieldColor, Value: color},
			},
			Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_node", ID: n.ID})},
		})
	}

	edges := Section{Title: e.t("section.edges"), Actions: []Action{
		{Label: e.t("action.add_edge"), Patch: Patch{Op: "add_edge"}},
	}}
	for i, ed := range e.m.Edges {
		edges.Rows = append(edges.Rows, Row{
			Key:      "edge-" + strconv.Itoa(i),
			UpdateOp: "update_edge",
			Patch:    Patch{Index: i},
			Fields: []Field{
				{Name: "from", Label: e.t("field.from"), Type: FieldSelect, Value: ed.From, Options: endpoints},
				{Name: "label", Label: e.t("field.label"), Type: FieldText, Value: ed.Label, Placeholder: e.t("field.edge_label")},
				{Name: "to", Label: e.t("field.to"), Type: FieldSelect, Value: ed.To, Options: endpoints},
			},
			Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_edge", Index: i})},
		})
	}

	return Form{Kind: string(e.Kind()), Title: e.t("kind.flowchart"), Sections: []Section{config, nodes, edges}}
}
