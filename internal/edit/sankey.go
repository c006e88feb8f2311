package edit

import "github.com/ziadkadry99/mermaid-studio/internal/diagrams"

// DefaultFlowValue is the value of a newly added sankey flow.
const DefaultFlowValue = 10

// SankeyFromLinks folds a flat link list into a source map, keeping first
// appearance order.
func SankeyFromLinks(links []diagrams.SankeyLink) diagrams.SankeyMap {
	out := diagrams.SankeyMap{}
	for _, l := range links {
		t := diagrams.SankeyTarget{Target: l.Target, Value: l.Value}
		if i := out.Index(l.Source); i >= 0 {
			out[i].Targets = append(out[i].Targets, t)
			continue
		}
		out = append(out, diagrams.SankeySource{Source: l.Source, Targets: []diagrams.SankeyTarget{t}})
	}
	return out
}

// editableMap returns a private copy of the map the generator will use.
// A links-only model is converted so edits do not hide existing flows.
func editableMap(s diagrams.Sankey) diagrams.SankeyMap {
	if s.Map == nil {
		return SankeyFromLinks(s.Links)
	}
	return s.Map.Clone()
}

// AddFlow adds a SourceN → TargetN flow, both names unique across every
// source and target already present.
func AddFlow(s diagrams.Sankey, sourcePrefix, targetPrefix string) diagrams.Sankey {
	m := editableMap(s)
	existing := m.Names()
	src := diagrams.UniqueName(existing, sourcePrefix)
	tgt := diagrams.UniqueName(existing, targetPrefix)
	m = append(m, diagrams.SankeySource{
		Source:  src,
		Targets: []diagrams.SankeyTarget{{Target: tgt, Value: DefaultFlowValue}},
	})
	s.Map = m
	return s
}

// RenameSource rekeys oldName. When newName already exists the old
// targets are appended to it, otherwise the entry keeps its position.
func RenameSource(s diagrams.Sankey, oldName, newName string) diagrams.Sankey {
	m := editableMap(s)
	i := m.Index(oldName)
	if i < 0 || oldName == newName {
		return s
	}
	if j := m.Index(newName); j >= 0 {
		m[j].Targets = append(m[j].Targets, m[i].Targets...)
		m = RemoveAt(m, i)
	} else {
		m[i].Source = newName
	}
	s.Map = m
	return s
}

func SetFlowTarget(s diagrams.Sankey, source string, idx int, target string) diagrams.Sankey {
	return updateFlow(s, source, idx, func(t *diagrams.SankeyTarget) { t.Target = target })
}

func SetFlowValue(s diagrams.Sankey, source string, idx int, v float64) diagrams.Sankey {
	return updateFlow(s, source, idx, func(t *diagrams.SankeyTarget) { t.Value = v })
}

func updateFlow(s diagrams.Sankey, source string, idx int, fn func(*diagrams.SankeyTarget)) diagrams.Sankey {
	m := editableMap(s)
	if i := m.Index(source); i >= 0 {
		m[i].Targets = Update(m[i].Targets, idx, fn)
	}
	s.Map = m
	return s
}

// RemoveFlow drops one target of source, and source itself once it has no
// targets left.
func RemoveFlow(s diagrams.Sankey, source string, idx int) diagrams.Sankey {
	m := editableMap(s)
	if i := m.Index(source); i >= 0 {
		m[i].Targets = RemoveAt(m[i].Targets, idx)
		if len(m[i].Targets) == 0 {
			m = RemoveAt(m, i)
		}
	}
	s.Map = m
	return s
}

func SetShowValues(s diagrams.Sankey, show bool) diagrams.Sankey {
	s.ShowValues = &show
	return s
}
