package edit

import (
	"slices"
	"strings"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

// AddItem appends a period with a unique name holding one new event.
func AddItem(t diagrams.Timeline, periodPrefix, eventPrefix string) diagrams.Timeline {
	period := diagrams.UniqueName(names(t.Items, func(it diagrams.TimelineItem) string { return it.Period }), periodPrefix)
	t.Items = Append(t.Items, diagrams.TimelineItem{
		Period: period,
		Events: []string{diagrams.UniqueName(nil, eventPrefix)},
	})
	return t
}

func RemoveItem(t diagrams.Timeline, i int) diagrams.Timeline {
	t.Items = RemoveAt(t.Items, i)
	return t
}

func SetPeriod(t diagrams.Timeline, i int, period string) diagrams.Timeline {
	t.Items = Update(t.Items, i, func(it *diagrams.TimelineItem) { it.Period = period })
	return t
}

func SetItemSection(t diagrams.Timeline, i int, section string) diagrams.Timeline {
	t.Items = Update(t.Items, i, func(it *diagrams.TimelineItem) { it.Section = section })
	return t
}

// AddEvent appends an event named uniquely among the item's own events.
func AddEvent(t diagrams.Timeline, i int, eventPrefix string) diagrams.Timeline {
	t.Items = Update(t.Items, i, func(it *diagrams.TimelineItem) {
		existing := names(it.Events, strings.TrimSpace)
		it.Events = Append(it.Events, diagrams.UniqueName(existing, eventPrefix))
	})
	return t
}

func UpdateEvent(t diagrams.Timeline, i, j int, text string) diagrams.Timeline {
	t.Items = Update(t.Items, i, func(it *diagrams.TimelineItem) {
		it.Events = Replace(it.Events, j, text)
	})
	return t
}

func RemoveEvent(t diagrams.Timeline, i, j int) diagrams.Timeline {
	t.Items = Update(t.Items, i, func(it *diagrams.TimelineItem) {
		it.Events = RemoveAt(it.Events, j)
	})
	return t
}

func SetTimelineTitle(t diagrams.Timeline, title string) diagrams.Timeline {
	t.Title = title
	return t
}

func SetTheme(t diagrams.Timeline, theme string) diagrams.Timeline {
	t.Theme = theme
	return t
}

func ReorderItems(t diagrams.Timeline, src, tgt int, above bool) diagrams.Timeline {
	t.Items = Reorder(t.Items, src, tgt, above)
	return t
}

// Themes lists the mermaid themes offered for timelines.
func Themes() []string {
	return slices.Clone(themes)
}

var themes = []string{diagrams.DefaultTheme, "base", "forest", "dark", "neutral"}
