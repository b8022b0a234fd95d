// Package ops defines the local gradient rules of the scalar autodiff engine.
//
// Every operation captures the operand values it needs at construction time
// and computes both its forward value and the partial derivatives that flow
// back to its inputs. The engine never derives gradients anywhere else:
// negation, subtraction and division are expressed through these primitives.
package ops

// Operation is the propagation rule attached to a non-leaf node.
//
// Backward receives the node's fully accumulated gradient and returns one
// contribution per input, in the same order the inputs were recorded.
type Operation interface {
	// Name returns a short human-readable tag (e.g. "+", "tanh") used for
	// graph labels.
	Name() string

	// Forward returns the value of the operation for the captured operands.
	Forward() float64

	// Backward returns outputGrad multiplied by each input's local partial
	// derivative.
	Backward(outputGrad float64) []float64
}
