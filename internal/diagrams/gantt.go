package diagrams

import (
	"fmt"
	"strings"
)

// ganttFormat holds the axis directives for one time format.
type ganttFormat struct {
	dateFormat   string
	axisFormat   string
	tickInterval string
}

var ganttFormats = map[TimeFormat]ganttFormat{
	TimeFormatDate: {"YYYY-MM-DD", "%Y-%m-%d", "1day"},
	TimeFormatTime: {"HH:mm", "%H:%M", "1hour"},
}

// ganttDelims end a title, section or task name.
const ganttDelims = "#:;"

// DefaultDuration is used by dependency scheduling when a task has none.
const DefaultDuration = "1d"

func generateGantt(g Gantt, fb Fallbacks) string {
	var b strings.Builder
	b.WriteString("gantt\n")
	if title := stripRunes(g.Title, ganttDelims); title != "" {
		fmt.Fprintf(&b, "  title %s\n", title)
	}

	format, ok := ganttFormats[g.TimeFormat]
	if !ok {
		format = ganttFormats[TimeFormatDate]
	}
	fmt.Fprintf(&b, "  dateFormat %s\n", format.dateFormat)
	fmt.Fprintf(&b, "  axisFormat %s\n", format.axisFormat)
	fmt.Fprintf(&b, "  tickInterval %s\n", format.tickInterval)

	sectioned := false
	for _, t := range g.Tasks {
		if strings.TrimSpace(t.Section) != "" {
			sectioned = true
			break
		}
	}
	if !sectioned {
		for _, t := range g.Tasks {
			b.WriteString("  " + ganttTaskLine(g, t) + "\n")
		}
		return b.String()
	}

	// Tasks without a section share the "" bucket, which is labelled with
	// the fallback name only when rendered.
	var order []string
	bySection := make(map[string][]GanttTask)
	for _, t := range g.Tasks {
		name := strings.TrimSpace(t.Section)
		if _, ok := bySection[name]; !ok {
			order = append(order, name)
		}
		bySection[name] = append(bySection[name], t)
	}
	for _, name := range order {
		fmt.Fprintf(&b, "  section %s\n", stripRunes(orDefault(name, fb.GanttSection), ganttDelims))
		for _, t := range bySection[name] {
			b.WriteString("    " + ganttTaskLine(g, t) + "\n")
		}
	}
	return b.String()
}

// ganttTaskLine renders one task without indentation.
func ganttTaskLine(g Gantt, t GanttTask) string {
	name := stripRunes(t.Name, ganttDelims)
	start := SanitizeToken(t.StartDate)
	if start == "" {
		start = SanitizeToken(g.Start)
	}

	if g.Scheduling == SchedulingDependency {
		return name + " :" + dependencyTaskSpec(t, start)
	}

	if t.IsMilestone {
		return fmt.Sprintf("%s :milestone, %s, 0d", name, start)
	}
	end := SanitizeToken(t.EndDate)
	if end == "" {
		end = DefaultDuration
	}
	return fmt.Sprintf("%s :%s%s, %s", name, statusPrefix(t.Status), start, end)
}

func dependencyTaskSpec(t GanttTask, start string) string {
	prefix := statusPrefix(t.Status)
	duration := SanitizeToken(t.Duration)
	if duration == "" {
		duration = DefaultDuration
	}
	if t.IsMilestone {
		prefix = "milestone, "
		duration = "0d"
	}

	switch {
	case SanitizeToken(t.After) != "":
		return fmt.Sprintf("%safter %s, %s", prefix, SanitizeToken(t.After), duration)
	case start != "":
		return fmt.Sprintf("%s%s, %s", prefix, start, duration)
	default:
		return prefix + duration
	}
}

func statusPrefix(s TaskStatus) string {
	if s == StatusDefault || !s.Valid() {
		return ""
	}
	return string(s) + ", "
}
