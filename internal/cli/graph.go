package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/viz"
)

func runGraph(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	x := fs.Float64("x", -4.0, "Input value of the reference expression.")
	outPath := fs.String("out", "", "Write the DOT document to this file instead of stdout.")
	rankDir := fs.String("rankdir", viz.DefaultRankDir, "GraphViz rankdir: LR, TB, RL or BT.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	switch *rankDir {
	case "LR", "TB", "RL", "BT":
	default:
		return usageError("invalid rankdir %q: must be LR, TB, RL or BT", *rankDir)
	}

	leaf, y := ReferenceExpression(*x)
	y.Backward()

	opts := viz.Options{Name: "minigrad", RankDir: *rankDir}
	if *outPath == "" {
		return viz.WriteDOT(stdout, y, opts)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *outPath, err)
	}
	if err := viz.WriteDOT(f, y, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", *outPath, err)
	}
	fmt.Fprintf(stdout, "y=%g dy/dx=%g\n", y.Data(), leaf.Grad())
	return nil
}

// ReferenceExpression builds the mixed add/mul/relu expression used to cross-check
// the engine. It returns the input leaf and the output.
//
// At x = -4 the output is -20 and dy/dx is 46.
func ReferenceExpression(x float64) (*autodiff.Value, *autodiff.Value) {
	in := autodiff.New(x)
	z := in.MulScalar(2).AddScalar(2).Add(in)
	q := z.ReLU().Add(z.Mul(in))
	h := z.Mul(z).ReLU()
	y := h.Add(q).Add(q.Mul(in))
	return in, y
}
