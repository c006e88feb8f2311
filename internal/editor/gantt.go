package editor

import (
	"strconv"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
)

type ganttEditor struct {
	base
	m diagrams.Gantt
}

func (e *ganttEditor) Kind() diagrams.Kind    { return diagrams.KindGantt }
func (e *ganttEditor) Model() diagrams.Model { return diagrams.Clone(e.m) }

func (e *ganttEditor) UpdateData(p Patch) error {
	switch p.Op {
	case "set_title":
		e.m = edit.SetGanttTitle(e.m, p.Value)
	case "set_time_format":
		e.m = edit.SetTimeFormat(e.m, diagrams.TimeFormat(p.Value), e.now())
	case "set_scheduling":
		e.m = edit.SetScheduling(e.m, diagrams.Scheduling(p.Value))
	case "set_start":
		e.m = edit.SetGanttStart(e.m, p.Value)
	case "add_task":
		e.m = edit.AddTask(e.m, e.t("prefix.task"), e.now())
	case "remove_task":
		e.m = edit.RemoveTask(e.m, p.Index)
	case "update_task":
		switch p.Field {
		case "name":
			e.m = edit.RenameTask(e.m, p.Index, p.Value)
		case "section":
			e.m = edit.SetTaskSection(e.m, p.Index, p.Value)
		case "status":
			e.m = edit.SetTaskStatus(e.m, p.Index, p.Value)
		case "startDate":
			e.m = edit.SetTaskStart(e.m, p.Index, p.Value)
		case "endDate":
			e.m = edit.SetTaskEnd(e.m, p.Index, p.Value)
		case "after":
			e.m = edit.SetTaskAfter(e.m, p.Index, p.Value)
		case "duration":
			e.m = edit.SetTaskDuration(e.m, p.Index, p.Value)
		default:
			return unknownField(e.Kind(), p.Field)
		}
	case "move_task":
		e.m = edit.ReorderTasks(e.m, p.Index, p.Sub, p.Above)
	case OpDragStart:
		e.startDrag(p)
	case OpDragEnd:
		e.Cleanup()
	case OpDrop:
		d, err := e.takeDrag()
		if err != nil {
			return err
		}
		e.m = edit.ReorderTasks(e.m, d.index, p.Index, p.Above)
	default:
		return unknownOp(e.Kind(), p.Op)
	}
	return nil
}

func (e *ganttEditor) Build() Form {
	timeFormat := e.m.TimeFormat
	if timeFormat != diagrams.TimeFormatTime {
		timeFormat = diagrams.TimeFormatDate
	}
	scheduling := e.m.Scheduling
	if scheduling != diagrams.SchedulingDependency {
		scheduling = diagrams.SchedulingDates
	}
	inputType := FieldDate
	if timeFormat == diagrams.TimeFormatTime {
		inputType = FieldTime
	}

	configRows := []Row{
		{Key: "title", UpdateOp: "set_title", Fields: []Field{
			{Name: "title", Label: e.t("field.title"), Type: FieldText, Value: e.m.Title},
		}},
		{Key: "time_format", UpdateOp: "set_time_format", Fields: []Field{{
			Name: "timeFormat", Label: e.t("field.time_format"), Type: FieldSelect, Value: string(timeFormat),
			Options: e.options("time_format.", string(diagrams.TimeFormatDate), string(diagrams.TimeFormatTime)),
		}}},
		{Key: "scheduling", UpdateOp: "set_scheduling", Fields: []Field{{
			Name: "scheduling", Label: e.t("field.scheduling"), Type: FieldSelect, Value: string(scheduling),
			Options: e.options("scheduling.", string(diagrams.SchedulingDates), string(diagrams.SchedulingDependency)),
		}}},
	}
	if scheduling == diagrams.SchedulingDependency {
		configRows = append(configRows, Row{Key: "start", UpdateOp: "set_start", Fields: []Field{
			{Name: "start", Label: e.t("field.start"), Type: inputType, Value: e.m.Start},
		}})
	}

	statuses := e.options("status.", "", string(diagrams.StatusActive), string(diagrams.StatusDone), string(diagrams.StatusCrit), edit.StatusMilestone)
	var taskNames []Option
	for _, t := range e.m.Tasks {
		if t.Name != "" {
			taskNames = append(taskNames, Option{Value: t.Name, Label: t.Name})
		}
	}

	tasks := Section{Title: e.t("section.tasks"), Actions: []Action{
		{Label: e.t("action.add_task"), Patch: Patch{Op: "add_task"}},
	}}
	for i, t := range e.m.Tasks {
		status := string(t.Status)
		if t.IsMilestone {
			status = edit.StatusMilestone
		}
		fields := []Field{
			{Name: "name", Label: e.t("field.name"), Type: FieldText, Value: t.Name, Placeholder: e.t("field.task_name")},
			{Name: "section", Label: e.t("field.section"), Type: FieldText, Value: t.Section, Placeholder: e.t("field.section_optional")},
			{Name: "status", Label: e.t("field.status"), Type: FieldSelect, Value: status, Options: statuses},
		}
		if scheduling == diagrams.SchedulingDependency {
			fields = append(fields,
				Field{Name: "after", Label: e.t("field.after"), Type: FieldSelect, Value: t.After, Options: append([]Option{{Value: "", Label: "-"}}, taskNames...)},
				Field{Name: "startDate", Label: e.t("field.start"), Type: inputType, Value: t.StartDate},
				Field{Name: "duration", Label: e.t("field.duration"), Type: FieldText, Value: t.Duration, Placeholder: diagrams.DefaultDuration},
			)
		} else {
			fields = append(fields,
				Field{Name: "startDate", Label: e.t("field.start"), Type: inputType, Value: t.StartDate},
				Field{Name: "endDate", Label: e.t("field.end"), Type: inputType, Value: t.EndDate, Disabled: t.IsMilestone},
			)
		}
		tasks.Rows = append(tasks.Rows, Row{
			Key:       "task-" + strconv.Itoa(i),
			Draggable: true,
			UpdateOp:  "update_task",
			Patch:     Patch{Index: i},
			Fields:    fields,
			Actions:   []Action{deleteAction(&e.base, Patch{Op: "remove_task", Index: i})},
		})
	}

	return Form{
		Kind:     string(e.Kind()),
		Title:    e.t("kind.gantt"),
		Sections: []Section{{Title: e.t("section.config"), Rows: configRows}, tasks},
	}
}
