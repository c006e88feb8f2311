package diagrams

import (
	"fmt"
	"strings"
)

func generateSequence(s Sequence) string {
	var b strings.Builder
	b.WriteString("sequenceDiagram\n")

	for _, p := range s.Participants {
		name := participantName(p.Name)
		if name == "" {
			continue
		}
		keyword := "participant"
		if p.Type == ParticipantActor {
			keyword = "actor"
		}
		fmt.Fprintf(&b, "  %s %s\n", keyword, name)
	}

	for _, m := range s.Messages {
		from, to := participantName(m.From), participantName(m.To)
		if from == "" || to == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s%s%s: %s\n", from, m.Arrow.Syntax(), to, escapeIn(m.Text, ";#"))
	}
	return b.String()
}

// participantName turns the runes mermaid reads as arrows, separators,
// quotes or comments into spaces. Messages pass their endpoints through
// the same function so they keep matching the declared participants.
func participantName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`-><:,;%"`, r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(Escape(s)), " ")
}
