package edit

import (
	"slices"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

// ParentMap derives each node's parent: the nearest preceding node with a
// strictly smaller level. Level-0 nodes and orphans have no entry.
func ParentMap(tree []diagrams.MindmapNode) map[string]string {
	parents := make(map[string]string, len(tree))
	for i, n := range tree {
		if n.Level == 0 {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if tree[j].Level < n.Level {
				parents[n.ID] = tree[j].ID
				break
			}
		}
	}
	return parents
}

// Descendants returns the ids of every node below id, in tree order.
func Descendants(tree []diagrams.MindmapNode, id string) []string {
	parents := ParentMap(tree)
	below := map[string]bool{id: true}
	// A parent always precedes its children, so one forward pass reaches
	// every level.
	var out []string
	for _, n := range tree {
		if p, ok := parents[n.ID]; ok && below[p] && !below[n.ID] {
			below[n.ID] = true
			out = append(out, n.ID)
		}
	}
	return out
}

func mindmapIndex(tree []diagrams.MindmapNode, id string) int {
	return slices.IndexFunc(tree, func(n diagrams.MindmapNode) bool { return n.ID == id })
}

// AddMindmapNode appends a level-1 node with a unique text; the first node
// of an empty tree becomes the level-0 root.
func AddMindmapNode(m diagrams.Mindmap, id, textPrefix string) diagrams.Mindmap {
	text := diagrams.UniqueName(names(m.Tree, func(n diagrams.MindmapNode) string { return n.Text }), textPrefix)
	level := 1
	if len(m.Tree) == 0 {
		level = 0
	}
	m.Tree = Append(m.Tree, diagrams.MindmapNode{ID: id, Text: text, Level: level})
	return m
}

// RemoveMindmapNode removes id together with all of its descendants.
func RemoveMindmapNode(m diagrams.Mindmap, id string) diagrams.Mindmap {
	if mindmapIndex(m.Tree, id) < 0 {
		return m
	}
	doomed := map[string]bool{id: true}
	for _, d := range Descendants(m.Tree, id) {
		doomed[d] = true
	}
	m.Tree = Filter(m.Tree, func(n diagrams.MindmapNode) bool { return !doomed[n.ID] })
	return m
}

// Indent pushes a non-root node one level deeper.
func Indent(m diagrams.Mindmap, id string) diagrams.Mindmap {
	m.Tree = Update(m.Tree, mindmapIndex(m.Tree, id), func(n *diagrams.MindmapNode) {
		if n.Level > 0 {
			n.Level++
		}
	})
	return m
}

// Outdent pulls a non-root node one level up, never above level 1.
func Outdent(m diagrams.Mindmap, id string) diagrams.Mindmap {
	m.Tree = Update(m.Tree, mindmapIndex(m.Tree, id), func(n *diagrams.MindmapNode) {
		if n.Level > 0 {
			n.Level = max(1, n.Level-1)
		}
	})
	return m
}

func SetMindmapText(m diagrams.Mindmap, id, text string) diagrams.Mindmap {
	m.Tree = Update(m.Tree, mindmapIndex(m.Tree, id), func(n *diagrams.MindmapNode) { n.Text = text })
	return m
}

// ReorderMindmap moves the single node src onto the row of tgt. Levels are
// kept, so the move may change which node is its parent.
func ReorderMindmap(m diagrams.Mindmap, src, tgt string, above bool) diagrams.Mindmap {
	m.Tree = Reorder(m.Tree, mindmapIndex(m.Tree, src), mindmapIndex(m.Tree, tgt), above)
	return m
}

// MindmapIDs lists the ids of every node.
func MindmapIDs(m diagrams.Mindmap) []string {
	ids := make([]string, len(m.Tree))
	for i, n := range m.Tree {
		ids[i] = n.ID
	}
	return ids
}
