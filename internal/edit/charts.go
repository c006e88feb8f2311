package edit

import "github.com/ziadkadry99/mermaid-studio/internal/diagrams"

// DefaultSliceValue is the value of a newly added pie slice.
const DefaultSliceValue = 10

// AddSlice appends a pie slice with a unique label.
func AddSlice(p diagrams.Pie, labelPrefix string) diagrams.Pie {
	label := diagrams.UniqueName(names(p.Items, func(it diagrams.PieItem) string { return it.Label }), labelPrefix)
	p.Items = Append(p.Items, diagrams.PieItem{Label: label, Value: DefaultSliceValue})
	return p
}

func RemoveSlice(p diagrams.Pie, i int) diagrams.Pie {
	p.Items = RemoveAt(p.Items, i)
	return p
}

func SetSliceLabel(p diagrams.Pie, i int, label string) diagrams.Pie {
	p.Items = Update(p.Items, i, func(it *diagrams.PieItem) { it.Label = label })
	return p
}

func SetSliceValue(p diagrams.Pie, i int, v float64) diagrams.Pie {
	p.Items = Update(p.Items, i, func(it *diagrams.PieItem) { it.Value = v })
	return p
}

func SetPieTitle(p diagrams.Pie, title string) diagrams.Pie {
	p.Title = title
	return p
}

func SetShowData(p diagrams.Pie, show bool) diagrams.Pie {
	p.ShowData = show
	return p
}

func ReorderSlices(p diagrams.Pie, src, tgt int, above bool) diagrams.Pie {
	p.Items = Reorder(p.Items, src, tgt, above)
	return p
}

// AddPoint appends a centered point with a unique name.
func AddPoint(q diagrams.Quadrant, namePrefix string) diagrams.Quadrant {
	name := diagrams.UniqueName(names(q.Points, func(p diagrams.QuadrantPoint) string { return p.Name }), namePrefix)
	q.Points = Append(q.Points, diagrams.QuadrantPoint{Name: name, X: 0.5, Y: 0.5})
	return q
}

func RemovePoint(q diagrams.Quadrant, i int) diagrams.Quadrant {
	q.Points = RemoveAt(q.Points, i)
	return q
}

func UpdatePoint(q diagrams.Quadrant, i int, fn func(*diagrams.QuadrantPoint)) diagrams.Quadrant {
	q.Points = Update(q.Points, i, fn)
	return q
}

// QuadrantLabel names one of the chart's text fields.
type QuadrantLabel string

const (
	LabelTitle  QuadrantLabel = "title"
	LabelXLeft  QuadrantLabel = "xLeft"
	LabelXRight QuadrantLabel = "xRight"
	LabelYDown  QuadrantLabel = "yDown"
	LabelYUp    QuadrantLabel = "yUp"
)

// SetQuadrantLabel sets the title or one axis end. Unknown labels are
// ignored.
func SetQuadrantLabel(q diagrams.Quadrant, label QuadrantLabel, value string) diagrams.Quadrant {
	switch label {
	case LabelTitle:
		q.Title = value
	case LabelXLeft:
		q.XLeft = value
	case LabelXRight:
		q.XRight = value
	case LabelYDown:
		q.YDown = value
	case LabelYUp:
		q.YUp = value
	}
	return q
}
