// Package viz renders autodiff expression graphs as GraphViz DOT documents.
//
// Every value becomes a record node showing its data and gradient. A value
// produced by an operator gets an extra oval node labeled with the operator,
// sitting between the operands and the result:
//
//	a ──┐
//	    ├─> (*) ─> c
//	b ──┘
package viz

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// DefaultRankDir lays the graph out left to right.
const DefaultRankDir = "LR"

// Edge connects an operand to the value computed from it.
type Edge struct {
	From *autodiff.Value
	To   *autodiff.Value
}

// Options controls DOT rendering.
type Options struct {
	Name    string // Graph name. Empty renders an anonymous digraph.
	RankDir string // GraphViz rankdir. Defaults to DefaultRankDir.
}

// Trace collects every value reachable from root and the operand edges between them.
//
// Nodes come back in the order autodiff.TopoSort gives them, root first. Each distinct
// operand produces one edge even when it is used twice by the same operator.
func Trace(root *autodiff.Value) ([]*autodiff.Value, []Edge) {
	nodes := autodiff.TopoSort(root)
	var edges []Edge
	for _, v := range nodes {
		for _, child := range v.Children() {
			edges = append(edges, Edge{From: child, To: v})
		}
	}
	return nodes, edges
}

// DOT renders the graph rooted at root.
func DOT(root *autodiff.Value, opts Options) ([]byte, error) {
	if opts.RankDir == "" {
		opts.RankDir = DefaultRankDir
	}

	g := &exprGraph{DirectedGraph: simple.NewDirectedGraph(), rankDir: opts.RankDir}
	nodes, edges := Trace(root)

	valueNodes := make(map[*autodiff.Value]*dotNode, len(nodes))
	opNodes := make(map[*autodiff.Value]*dotNode)
	for i, v := range nodes {
		n := &dotNode{
			id:    g.nextID(),
			dotID: fmt.Sprintf("v%d", i),
			attrs: attributes{
				{Key: "shape", Value: "record"},
				{Key: "label", Value: fmt.Sprintf("data=%.4f | grad=%.4f", v.Data(), v.Grad())},
			},
		}
		g.AddNode(n)
		valueNodes[v] = n

		if v.IsLeaf() {
			continue
		}
		op := &dotNode{
			id:    g.nextID(),
			dotID: fmt.Sprintf("v%d_op", i),
			attrs: attributes{{Key: "label", Value: v.Op()}},
		}
		g.AddNode(op)
		g.SetEdge(g.NewEdge(op, n))
		opNodes[v] = op
	}

	for _, e := range edges {
		g.SetEdge(g.NewEdge(valueNodes[e.From], opNodes[e.To]))
	}

	b, err := dot.Marshal(g, opts.Name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return b, nil
}

// WriteDOT renders the graph rooted at root to w.
func WriteDOT(w io.Writer, root *autodiff.Value, opts Options) error {
	b, err := DOT(root, opts)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	return nil
}

// exprGraph adds graph-level DOT attributes to a simple directed graph.
type exprGraph struct {
	*simple.DirectedGraph
	rankDir string
	ids     int64
}

func (g *exprGraph) nextID() int64 {
	id := g.ids
	g.ids++
	return id
}

// DOTAttributers implements dot.Attributers.
func (g *exprGraph) DOTAttributers() (graphAttrs, nodeAttrs, edgeAttrs encoding.Attributer) {
	return attributes{{Key: "rankdir", Value: g.rankDir}}, attributes{}, attributes{}
}

type dotNode struct {
	id    int64
	dotID string
	attrs attributes
}

func (n *dotNode) ID() int64                        { return n.id }
func (n *dotNode) DOTID() string                    { return n.dotID }
func (n *dotNode) Attributes() []encoding.Attribute { return n.attrs }

type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }

var (
	_ graph.Node      = (*dotNode)(nil)
	_ dot.Node        = (*dotNode)(nil)
	_ dot.Attributers = (*exprGraph)(nil)
	_ graph.Directed  = (*exprGraph)(nil)
)
