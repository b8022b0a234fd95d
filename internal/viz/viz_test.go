package viz_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/viz"
)

func TestTrace(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(-3)
	c := a.Mul(b)
	d := c.Add(a)

	nodes, edges := viz.Trace(d)

	require.Len(t, nodes, 4)
	assert.Same(t, d, nodes[0])
	assert.ElementsMatch(t, []viz.Edge{
		{From: a, To: c},
		{From: b, To: c},
		{From: c, To: d},
		{From: a, To: d},
	}, edges)
}

func TestTrace_SharedOperandHasOneEdge(t *testing.T) {
	x := autodiff.New(3)
	y := x.Mul(x)

	nodes, edges := viz.Trace(y)

	assert.Len(t, nodes, 2)
	assert.Equal(t, []viz.Edge{{From: x, To: y}}, edges)
}

func TestTrace_Leaf(t *testing.T) {
	x := autodiff.New(1)

	nodes, edges := viz.Trace(x)

	assert.Equal(t, []*autodiff.Value{x}, nodes)
	assert.Empty(t, edges)
}

func TestDOT(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(-3)
	c := a.Mul(b).Tanh()
	c.Backward()

	out, err := viz.DOT(c, viz.Options{Name: "expr"})
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "digraph expr {")
	assert.Contains(t, doc, "rankdir=LR")
	assert.Contains(t, doc, "data=2.0000 | grad=")
	assert.Contains(t, doc, "data=-6.0000")
	assert.Contains(t, doc, "tanh")
	assert.Contains(t, doc, "record")
	// Two leaves and two results, plus one operator node per result.
	assert.Equal(t, 4, strings.Count(doc, "record"))
	assert.Equal(t, 2, strings.Count(doc, "_op ["))
	assert.Equal(t, 5, strings.Count(doc, "->"))
}

func TestDOT_RankDir(t *testing.T) {
	out, err := viz.DOT(autodiff.New(1).AddScalar(1), viz.Options{RankDir: "TB"})
	require.NoError(t, err)

	assert.Contains(t, string(out), "rankdir=TB")
	assert.NotContains(t, string(out), "rankdir=LR")
}

func TestWriteDOT(t *testing.T) {
	x := autodiff.New(-4)
	y := x.Pow(2).Add(x)

	var buf bytes.Buffer
	require.NoError(t, viz.WriteDOT(&buf, y, viz.Options{}))

	want, err := viz.DOT(y, viz.Options{})
	require.NoError(t, err)
	assert.Equal(t, string(want)+"\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteDOT_WriterError(t *testing.T) {
	err := viz.WriteDOT(failingWriter{}, autodiff.New(1), viz.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
