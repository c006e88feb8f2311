package editor

import (
	"strconv"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type pieEditor struct {
	base
	m diagrams.Pie
}

func (e *pieEditor) Kind() diagrams.Kind    { return diagrams.KindPie }
func (e *pieEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *pieEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "set_title":
		e.m = edit.SetPieTitle(e.m, p.Value)
	case "set_show_data":
		show, err := flag(p)
		if err != nil {
			return err
		}
		e.m = edit.SetShowData(e.m, show)
	case "add_item":
		e.m = edit.AddSlice(e.m, e.t("prefix.category"))
	case "remove_item":
		e.m = edit.RemoveSlice(e.m, p.Index)
	case "update_item":
		switch p.Field {
		case "label":
			e.m = edit.SetSliceLabel(e.m, p.Index, p.Value)
		case "value":
			v, err := number(p)
			if err != nil {
				return err
			}
			e.m = edit.SetSliceValue(e.m, p.Index, v)
		default:
			return unknownField(e.Kind(), p.Field)
		}
	case "move_item":
		e.m = edit.ReorderSlices(e.m, p.Index, p.Sub, p.Above)
	case OpDragStart:
		e.startDrag(p)
	case OpDragEnd:
		e.Cleanup()
	case OpDrop:
		d, err := e.takeDrag()
		if err != nil {
			return err
		}
		e.m = edit.ReorderSlices(e.m, d.index, p.Index, p.Above)
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *pieEditor) Build() Form {
	config := Section{Title: e.t("section.config"), Rows: []Row{
		{Key: "title", UpdateOp: "set_title", Fields: []Field{
			{Name: "title", Label: e.t("field.title"), Type: FieldText, Value: e.m.Title},
		}},
		{Key: "show_data", UpdateOp: "set_show_data", Fields: []Field{
			{Name: "showData", Label: e.t("field.show_data"), Type: FieldToggle, Value: e.m.ShowData},
		}},
	}}
	items := Section{Title: e.t("section.data"), Actions: []Action{
		{Label: e.t("action.add_item"), Patch: Patch{Op: "add_item"}},
	}}
	for i, it := range e.m.Items {
		items.Rows = append(items.Rows, Row{
			Key:       "item-" + strconv.Itoa(i),
			Draggable: true,
			UpdateOp:  "update_item",
			Patch:     Patch{Index: i},
			Fields: []Field{
				{Name: "label", Label: e.t("field.label"), Type: FieldText, Value: it.Label},
				{Name: "value", Label: e.t("field.value"), Type: FieldNumber, Value: it.Value},
			},
			Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_item", Index: i})},
		})
	}
	return Form{Kind: string(e.Kind()), Title: e.t("kind.pie"), Sections: []Section{config, items}}
}

type quadrantEditor struct {
	base
	m diagrams.Quadrant
}

func (e *quadrantEditor) Kind() diagrams.Kind    { return diagrams.KindQuadrant }
func (e *quadrantEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *quadrantEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "set_label":
		switch label := edit.QuadrantLabel(p.Field); label {
		case edit.LabelTitle, edit.LabelXLeft, edit.LabelXRight, edit.LabelYDown, edit.LabelYUp:
			e.m = edit.SetQuadrantLabel(e.m, label, p.Value)
		default:
			return unknownField(e.Kind(), p.Field)
		}
	case "add_point":
		e.m = edit.AddPoint(e.m, e.t("prefix.point"))
	case "remove_point":
		e.m = edit.RemovePoint(e.m, p.Index)
	case "update_point":
		switch p.Field {
		case "name":
			e.m = edit.UpdatePoint(e.m, p.Index, func(pt *diagrams.QuadrantPoint) { pt.Name = p.Value })
		case "x", "y":
			v, err := number(p)
			if err != nil {
				return err
			}
			e.m = edit.UpdatePoint(e.m, p.Index, func(pt *diagrams.QuadrantPoint) {
				if p.Field == "x" {
					pt.X = v
				} else {
					pt.Y = v
				}
			})
		default:
			return unknownField(e.Kind(), p.Field)
		}
	case OpDragStart, OpDragEnd, OpDrop:
		e.Cleanup()
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *quadrantEditor) Build() Form {
	label := func(l edit.QuadrantLabel, value string) Field {
		return Field{Name: string(l), Label: e.t("field." + string(l)), Type: FieldText, Value: value}
	}
	config := Section{Title: e.t("section.config"), Rows: []Row{{
		Key:      "labels",
		UpdateOp: "set_label",
		Fields: []Field{
			label(edit.LabelTitle, e.m.Title),
			label(edit.LabelXLeft, e.m.XLeft),
			label(edit.LabelXRight, e.m.XRight),
			label(edit.LabelYDown, e.m.YDown),
			label(edit.LabelYUp, e.m.YUp),
		},
	}}}
	points := Section{Title: e.t("section.points"), Actions: []Action{
		{Label: e.t("action.add_point"), Patch: Patch{Op: "add_point"}},
	}}
	for i, pt := range e.m.Points {
		points.Rows = append(points.Rows, Row{
			Key:      "point-" + strconv.Itoa(i),
			UpdateOp: "update_point",
			Patch:    Patch{Index: i},
			Fields: []Field{
				{Name: "name", Label: e.t("field.name"), Type: FieldText, Value: pt.Name},
				{Name: "x", Label: "X", Type: FieldNumber, Value: pt.X},
				{Name: "y", Label: "Y", Type: FieldNumber, Value: pt.Y},
			},
			Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_point", Index: i})},
		})
	}
	return Form{Kind: string(e.Kind()), Title: e.t("kind.quadrant"), Sections: []Section{config, points}}
}
