// Package visibility decides whether conditionally rendered elements appear.
package visibility

// Evaluator determines whether an element should be rendered based on a
// rule string and the card data it is evaluated against.
type Evaluator interface {
	Eval(elementID, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values is the card data the
// caller binds to the pass; Extras carries host-supplied context such as
// feature flags, exposed to rules under the `extras` name.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(elementID, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(elementID, rule string, ctx Context) (bool, error) {
	return fn(elementID, rule, ctx)
}

// Always is an Evaluator that renders every element.
var Always Evaluator = EvaluatorFunc(func(string, string, Context) (bool, error) { return true, nil })
