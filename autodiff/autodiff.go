// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a *Value returns a new node that remembers its
// operands and how to push a gradient back to them. Calling Backward on the
// final node fills in Grad on every node it depends on.
//
// Example:
//
//	import "github.com/born-ml/minigrad/autodiff"
//
//	func main() {
//	    a := autodiff.New(2)
//	    b := autodiff.New(-3)
//	    c := a.Mul(b).Add(a.Pow(2)).Tanh()
//
//	    c.Backward()
//	    fmt.Println(a.Grad(), b.Grad())
//	}
//
// Gradients accumulate across backward passes; call ZeroGrad on the leaves
// before reusing them.
package autodiff

import (
	"github.com/born-ml/minigrad/internal/autodiff"
)

// Value is a scalar node in an expression graph.
type Value = autodiff.Value

// New creates a leaf value.
func New(x float64) *Value {
	return autodiff.New(x)
}

// Scalar is an alias of New, for use where a constant reads better.
func Scalar(x float64) *Value {
	return autodiff.Scalar(x)
}

// Sum adds values left to right. An empty sum is a zero leaf.
func Sum(values ...*Value) *Value {
	return autodiff.Sum(values...)
}

// TopoSort returns every node reachable from root, root first and each node
// before its operands.
func TopoSort(root *Value) []*Value {
	return autodiff.TopoSort(root)
}
