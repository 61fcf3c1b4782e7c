// Package expr evaluates `$when` rules with expr-lang. Rules may be written
// bare (`qty > 3 && enabled`) or wrapped in the template form `${...}`.
// Values keys are top-level identifiers; Extras are reachable as
// `extras.name`. Undefined identifiers evaluate to nil.
package expr

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-cardrender/pkg/visibility"
)

// Evaluator compiles each distinct rule once per environment shape and is
// safe for concurrent use. Data keys shadow expr builtins of the same name.
type Evaluator struct {
	programs sync.Map // rule + env signature -> *vm.Program
}

var _ visibility.Evaluator = (*Evaluator)(nil)

func New() *Evaluator { return &Evaluator{} }

// Eval reports whether rule holds. A nil result counts as false; any other
// non-boolean result is an error.
func (e *Evaluator) Eval(elementID, rule string, ctx visibility.Context) (bool, error) {
	source := normalize(rule)
	if source == "" {
		return true, nil
	}

	env := environment(ctx)
	program, err := e.compile(source, env)
	if err != nil {
		return false, fmt.Errorf("expr: compile $when of %q: %w", elementID, err)
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("expr: eval $when of %q: %w", elementID, err)
	}
	switch v := output.(type) {
	case bool:
		return v, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expr: $when of %q did not return bool (got %T: %v)", elementID, output, output)
	}
}

func (e *Evaluator) compile(source string, env map[string]any) (*vm.Program, error) {
	key := source + "\x00" + signature(env)
	if cached, ok := e.programs.Load(key); ok {
		return cached.(*vm.Program), nil
	}
	options := []expr.Option{expr.Env(env), expr.AllowUndefinedVariables()}
	for name := range env {
		options = append(options, expr.DisableBuiltin(name))
	}
	program, err := expr.Compile(source, options...)
	if err != nil {
		return nil, err
	}
	e.programs.Store(key, program)
	return program, nil
}

// signature lists env keys with their dynamic types; programs compiled against
// one shape are not reused for another.
func signature(env map[string]any) string {
	keys := make([]string, 0, len(env))
	for key, value := range env {
		keys = append(keys, fmt.Sprintf("%s:%T", key, value))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func normalize(rule string) string {
	trimmed := strings.TrimSpace(rule)
	if strings.HasPrefix(trimmed, "${") && strings.HasSuffix(trimmed, "}") {
		trimmed = strings.TrimSpace(trimmed[2 : len(trimmed)-1])
	}
	return trimmed
}

func environment(ctx visibility.Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+1)
	for key, value := range ctx.Values {
		env[key] = value
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env["extras"] = extras
	return env
}
