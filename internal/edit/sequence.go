package edit

import "github.com/ziadkadry99/mermaid-studio/internal/diagrams"

// AddParticipant appends a box participant with a unique name.
func AddParticipant(s diagrams.Sequence, namePrefix string) diagrams.Sequence {
	name := diagrams.UniqueName(names(s.Participants, func(p diagrams.SequenceParticipant) string { return p.Name }), namePrefix)
	s.Participants = Append(s.Participants, diagrams.SequenceParticipant{Name: name, Type: diagrams.ParticipantBox})
	return s
}

func RemoveParticipant(s diagrams.Sequence, i int) diagrams.Sequence {
	s.Participants = RemoveAt(s.Participants, i)
	return s
}

// RenameParticipant changes the participant only; messages keep whatever
// names they were given.
func RenameParticipant(s diagrams.Sequence, i int, name string) diagrams.Sequence {
	s.Participants = Update(s.Participants, i, func(p *diagrams.SequenceParticipant) { p.Name = name })
	return s
}

func SetParticipantType(s diagrams.Sequence, i int, typ diagrams.ParticipantType) diagrams.Sequence {
	if typ != diagrams.ParticipantActor {
		typ = diagrams.ParticipantBox
	}
	s.Participants = Update(s.Participants, i, func(p *diagrams.SequenceParticipant) { p.Type = typ })
	return s
}

func ReorderParticipants(s diagrams.Sequence, src, tgt int, above bool) diagrams.Sequence {
	s.Participants = Reorder(s.Participants, src, tgt, above)
	return s
}

// AddMessage appends a message from the first participant to the second
// (or to itself when there is only one) with a unique text.
func AddMessage(s diagrams.Sequence, textPrefix string) diagrams.Sequence {
	var from, to string
	if len(s.Participants) > 0 {
		from, to = s.Participants[0].Name, s.Participants[0].Name
	}
	if len(s.Participants) > 1 {
		to = s.Participants[1].Name
	}
	text := diagrams.UniqueName(names(s.Messages, func(m diagrams.SequenceMessage) string { return m.Text }), textPrefix)
	s.Messages = Append(s.Messages, diagrams.SequenceMessage{
		From:  from,
		To:    to,
		Text:  text,
		Arrow: diagrams.DefaultArrowStyle,
	})
	return s
}

func RemoveMessage(s diagrams.Sequence, i int) diagrams.Sequence {
	s.Messages = RemoveAt(s.Messages, i)
	return s
}

func UpdateMessage(s diagrams.Sequence, i int, fn func(*diagrams.SequenceMessage)) diagrams.Sequence {
	s.Messages = Update(s.Messages, i, fn)
	return s
}

func ReorderMessages(s diagrams.Sequence, src, tgt int, above bool) diagrams.Sequence {
	s.Messages = Reorder(s.Messages, src, tgt, above)
	return s
}
