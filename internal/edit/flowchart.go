package edit

import (
	"slices"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

func nodeIndex(nodes []diagrams.FlowchartNode, id string) int {
	return slices.IndexFunc(nodes, func(n diagrams.FlowchartNode) bool { return n.ID == id })
}

// NodeIDs lists the ids of every node.
func NodeIDs(f diagrams.Flowchart) []string {
	ids := make([]string, len(f.Nodes))
	for i, n := range f.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// AddNode appends a rectangle with a unique label, no group and no color.
func AddNode(f diagrams.Flowchart, id, labelPrefix string) diagrams.Flowchart {
	label := diagrams.UniqueName(names(f.Nodes, func(n diagrams.FlowchartNode) string { return n.Label }), labelPrefix)
	f.Nodes = Append(f.Nodes, diagrams.FlowchartNode{
		ID:    id,
		Label: label,
		Shape: diagrams.DefaultShape,
	})
	return f
}

// RemoveNode drops the node with id. Edges are left alone.
func RemoveNode(f diagrams.Flowchart, id string) diagrams.Flowchart {
	f.Nodes = Filter(f.Nodes, func(n diagrams.FlowchartNode) bool { return n.ID != id })
	return f
}

// UpdateNode applies fn to the node with id.
func UpdateNode(f diagrams.Flowchart, id string, fn func(*diagrams.FlowchartNode)) diagrams.Flowchart {
	f.Nodes = Update(f.Nodes, nodeIndex(f.Nodes, id), fn)
	return f
}

// ReorderNodes moves the node src onto the row of node tgt.
func ReorderNodes(f diagrams.Flowchart, src, tgt string, above bool) diagrams.Flowchart {
	f.Nodes = Reorder(f.Nodes, nodeIndex(f.Nodes, src), nodeIndex(f.Nodes, tgt), above)
	return f
}

// AddEdge appends an edge whose endpoints are still to be picked.
func AddEdge(f diagrams.Flowchart) diagrams.Flowchart {
	f.Edges = Append(f.Edges, diagrams.FlowchartEdge{})
	return f
}

func RemoveEdge(f diagrams.Flowchart, i int) diagrams.Flowchart {
	f.Edges = RemoveAt(f.Edges, i)
	return f
}

func UpdateEdge(f diagrams.Flowchart, i int, fn func(*diagrams.FlowchartEdge)) diagrams.Flowchart {
	f.Edges = Update(f.Edges, i, fn)
	return f
}

// SetDirection switches the layout; anything but LR means top-down.
func SetDirection(f diagrams.Flowchart, d diagrams.Direction) diagrams.Flowchart {
	if d != diagrams.DirectionLR {
		d = diagrams.DirectionTD
	}
	f.Direction = d
	return f
}
