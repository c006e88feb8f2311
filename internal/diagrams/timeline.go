package diagrams

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultTheme needs no init directive.
const DefaultTheme = "default"

func generateTimeline(t Timeline, fb Fallbacks) string {
	var b strings.Builder
	if theme := themeName(t.Theme); theme != "" && theme != DefaultTheme {
		fmt.Fprintf(&b, "%%%%{init: { 'theme': '%s' }}%%%%\n", theme)
	}
	b.WriteString("timeline\n")
	if title := Escape(t.Title); title != "" {
		fmt.Fprintf(&b, "  title %s\n", title)
	}

	var order []string
	var ungrouped []TimelineItem
	sections := make(map[string][]TimelineItem)
	for _, it := range t.Items {
		s := strings.TrimSpace(it.Section)
		if s == "" {
			ungrouped = append(ungrouped, it)
			continue
		}
		if _, ok := sections[s]; !ok {
			order = append(order, s)
		}
		sections[s] = append(sections[s], it)
	}

	for _, s := range order {
		fmt.Fprintf(&b, "  section %s\n", escapeIn(s, ":"))
		for _, it := range sections[s] {
			writeTimelineItem(&b, it, "    ", fb)
		}
	}
	for _, it := range ungrouped {
		writeTimelineItem(&b, it, "  ", fb)
	}
	return b.String()
}

func writeTimelineItem(b *strings.Builder, it TimelineItem, indent string, fb Fallbacks) {
	var events []string
	for _, e := range it.Events {
		if e = escapeIn(e, ":"); e != "" {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		return
	}
	period := escapeIn(orDefault(it.Period, fb.TimelinePeriod), ":")
	fmt.Fprintf(b, "%s%s : %s\n", indent, period, strings.Join(events, " : "))
}

// themeName keeps the letters, digits, '-' and '_' of a theme name.
func themeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, s)
}
