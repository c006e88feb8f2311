package editor

import (
	"strconv"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type sequenceEditor struct {
	base
	m diagrams.Sequence
}

func (e *sequenceEditor) Kind() diagrams.Kind    { return diagrams.KindSequence }
func (e *sequenceEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *sequenceEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "add_participant":
		e.m = edit.AddParticipant(e.m, e.t("prefix.participant"))
	case "remove_participant":
		e.m = edit.RemoveParticipant(e.m, p.Index)
	case "update_participant":
		switch p.Field {
		case "name":
			e.m = edit.RenameParticipant(e.m, p.Index, p.Value)
		case "type":
			e.m = edit.SetParticipantType(e.m, p.Index, diagrams.ParticipantType(p.Value))
		default:
			return unknownField(e.Kind(), p.Field)
		}
	case "add_message":
		e.m = edit.AddMessage(e.m, e.t("prefix.message"))
	case "remove_message":
		e.m = edit.RemoveMessage(e.m, p.Index)
	case "update_message":
		var set func(*diagrams.SequenceMessage)
		switch p.Field {
		case "from":
			set = func(m *diagrams.SequenceMessage) { m.From = p.Value }
		case "to":
			set = func(m *diagrams.SequenceMessage) { m.To = p.Value }
		case "text":
			set = func(m *diagrams.SequenceMessage) { m.Text = p.Value }
		case "arrow":
			set = func(m *diagrams.SequenceMessage) { m.Arrow = diagrams.ArrowStyle(p.Value) }
		default:
			return unknownField(e.Kind(), p.Field)
		}
		e.m = edit.UpdateMessage(e.m, p.Index, set)
	case "move_message":
		e.m = edit.ReorderMessages(e.m, p.Index, p.Sub, p.Above)
	case "move_participant":
		e.m = edit.ReorderParticipants(e.m, p.Index, p.Sub, p.Above)
	case OpDragStart:
		e.startDrag(p)
	case OpDragEnd:
		e.Cleanup()
	case OpDrop:
		d, err := e.takeDrag()
		if err != nil {
			return err
		}
		e.m = edit.ReorderMessages(e.m, d.index, p.Index, p.Above)
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *sequenceEditor) Build() Form {
	types := e.options("participant.", string(diagrams.ParticipantBox), string(diagrams.ParticipantActor))
	participants := Section{Title: e.t("section.participants"), Actions: []Action{
		{Label: e.t("action.add_participant"), Patch: Patch{Op: "add_participant"}},
	}}
	names := []Option{{Value: "", Label: "-"}}
	for i, p := range e.m.Participants {
		typ := p.Type
		if typ != diagrams.ParticipantActor {
			typ = diagrams.ParticipantBox
		}
		participants.Rows = append(participants.Rows, Row{
			Key:      "participant-" + strconv.Itoa(i),
			UpdateOp: "update_participant",
			Patch:    Patch{Index: i},
			Fields: []Field{
				{Name: "name", Label: e.t("field.name"), Type: FieldText, Value: p.Name},
				{Name: "type", Label: e.t("field.type"), Type: FieldSelect, Value: string(typ), Options: types},
			},
			Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_participant", Index: i})},
		})
		names = append(names, Option{Value: p.Name, Label: p.Name})
	}

	arrowValues := make([]string, 0, 8)
	for _, a := range diagrams.ArrowStyles() {
		arrowValues = append(arrowValues, string(a))
	}
	arrows := e.options("arrow.", arrowValues...)

	messages := Section{Title: e.t("section.messages"), Actions: []Action{
		{Label: e.t("action.add_message"), Patch: Patch{Op: "add_message"}},
	}}
	for i, m := range e.m.Messages {
		arrow := m.Arrow
		if arrow == "" {
			arrow = diagrams.DefaultArrowStyle
		}
		messages.Rows = append(messages.Rows, Row{
			Key:       "message-" + strconv.Itoa(i),
			Draggable: true,
			UpdateOp:  "update_message",
			Patch:     Patch{Index: i},
			Fields: []Field{
				{Name: "from", Label: e.t("field.from"), Type: FieldSelect, Value: m.From, Options: names},
				{Name: "arrow", Label: e.t("field.arrow"), Type: FieldSelect, Value: string(arrow), Options: arrows},
				{Name: "to", Label: e.t("field.to"), Type: FieldSelect, Value: m.To, Options: names},
				{Name: "text", Label: e.t("field.text"), Type: FieldText, Value: m.Text},
			},
			Actions: []Action{deleteAction(&e.base, Patch{Op: "remove_message", Index: i})},
		})
	}

	return Form{Kind: string(e.Kind()), Title: e.t("kind.sequence"), Sections: []Section{participants, messages}}
}
