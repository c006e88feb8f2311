package edit

import (
	"fmt"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

// StatusMilestone is the pseudo status offered next to the mermaid tags.
// Selecting it marks the task as a milestone.
const StatusMilestone = "milestone"

// DefaultTaskDates returns the start and end given to new tasks: a one day
// span a week from now, or the current hour to the next one (capped at
// 23:00) in time format.
func DefaultTaskDates(tf diagrams.TimeFormat, now time.Time) (start, end string) {
	if tf == diagrams.TimeFormatTime {
		h := now.Hour()
		return fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:00", min(h+1, 23))
	}
	utc := now.UTC()
	return utc.AddDate(0, 0, 7).Format(time.DateOnly), utc.AddDate(0, 0, 8).Format(time.DateOnly)
}

// AddTask appends a task with a unique name and default dates.
func AddTask(g diagrams.Gantt, namePrefix string, now time.Time) diagrams.Gantt {
	name := diagrams.UniqueName(names(g.Tasks, func(t diagrams.GanttTask) string { return t.Name }), namePrefix)
	start, end := DefaultTaskDates(g.TimeFormat, now)
	g.Tasks = Append(g.Tasks, diagrams.GanttTask{Name: name, StartDate: start, EndDate: end})
	return g
}

func RemoveTask(g diagrams.Gantt, i int) diagrams.Gantt {
	g.Tasks = RemoveAt(g.Tasks, i)
	return g
}

func RenameTask(g diagrams.Gantt, i int, name string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) { t.Name = name })
	return g
}

func SetTaskSection(g diagrams.Gantt, i int, section string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) { t.Section = section })
	return g
}

// SetTaskStatus sets one of the mermaid tags or StatusMilestone. Choosing
// milestone clears the tag and pins the end to the start.
func SetTaskStatus(g diagrams.Gantt, i int, status string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) {
		if status == StatusMilestone {
			t.IsMilestone = true
			t.Status = diagrams.StatusDefault
			t.EndDate = t.StartDate
			return
		}
		t.IsMilestone = false
		if s := diagrams.TaskStatus(status); s.Valid() {
			t.Status = s
		}
	})
	return g
}

// SetTaskStart moves the start; a milestone's end follows it.
func SetTaskStart(g diagrams.Gantt, i int, start string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) {
		t.StartDate = start
		if t.IsMilestone {
			t.EndDate = start
		}
	})
	return g
}

// SetTaskEnd moves the end. It is ignored for milestones.
func SetTaskEnd(g diagrams.Gantt, i int, end string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) {
		if !t.IsMilestone {
			t.EndDate = end
		}
	})
	return g
}

func SetTaskAfter(g diagrams.Gantt, i int, after string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) { t.After = after })
	return g
}

func SetTaskDuration(g diagrams.Gantt, i int, d string) diagrams.Gantt {
	g.Tasks = Update(g.Tasks, i, func(t *diagrams.GanttTask) { t.Duration = d })
	return g
}

// SetTimeFormat switches between dates and clock times. Existing task
// values would no longer parse, so every task gets fresh defaults.
func SetTimeFormat(g diagrams.Gantt, tf diagrams.TimeFormat, now time.Time) diagrams.Gantt {
	if tf != diagrams.TimeFormatTime {
		tf = diagrams.TimeFormatDate
	}
	g.TimeFormat = tf
	start, end := DefaultTaskDates(tf, now)
	tasks := make([]diagrams.GanttTask, len(g.Tasks))
	for i, t := range g.Tasks {
		t.StartDate = start
		t.EndDate = end
		if t.IsMilestone {
			t.EndDate = start
		}
		tasks[i] = t
	}
	g.Tasks = tasks
	return g
}

func SetScheduling(g diagrams.Gantt, s diagrams.Scheduling) diagrams.Gantt {
	if s != diagrams.SchedulingDependency {
		s = diagrams.SchedulingDates
	}
	g.Scheduling = s
	return g
}

func SetGanttTitle(g diagrams.Gantt, title string) diagrams.Gantt {
	g.Title = title
	return g
}

func SetGanttStart(g diagrams.Gantt, start string) diagrams.Gantt {
	g.Start = start
	return g
}

func ReorderTasks(g diagrams.Gantt, src, tgt int, above bool) diagrams.Gantt {
	g.Tasks = Reorder(g.Tasks, src, tgt, above)
	return g
}
