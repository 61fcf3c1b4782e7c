package expr

import (
	"testing"

	"github.com/goliatone/go-cardrender/pkg/visibility"
)

func TestEvaluator(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{
		Values: map[string]any{
			"enabled": true,
			"count":   3,
			"user":    map[string]any{"role": "admin"},
		},
		Extras: map[string]any{"beta": true},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{"", true},
		{"enabled", true},
		{"!enabled", false},
		{"count > 2 && enabled", true},
		{"count == 4", false},
		{`user.role == "admin"`, true},
		{"${count >= 3}", true},
		{"extras.beta", true},
		{"missing", false},
		{"missing == nil", true},
	}
	for _, tc := range cases {
		got, err := eval.Eval("field", tc.rule, ctx)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("%q: want %v, got %v", tc.rule, tc.want, got)
		}
	}
}

func TestEvaluatorDataShadowsBuiltins(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{Values: map[string]any{"count": 3, "max": 10, "min": 1, "len": 0}}
	for _, rule := range []string{"count > 2", "max == 10", "min < max && len == 0"} {
		got, err := eval.Eval("field", rule, ctx)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", rule, err)
		}
		if !got {
			t.Fatalf("%q: expected true", rule)
		}
	}
}

func TestEvaluatorRecompilesForNewShape(t *testing.T) {
	t.Parallel()

	eval := New()
	if got, err := eval.Eval("field", "flag == 1", visibility.Context{Values: map[string]any{"flag": 1}}); err != nil || !got {
		t.Fatalf("int flag: got %v, err %v", got, err)
	}
	if got, err := eval.Eval("field", `flag == "on"`, visibility.Context{Values: map[string]any{"flag": "on"}}); err != nil || !got {
		t.Fatalf("string flag: got %v, err %v", got, err)
	}
}

func TestEvaluatorErrors(t *testing.T) {
	t.Parallel()

	eval := New()
	for _, rule := range []string{"count +", `"text"`, "count + 1"} {
		if _, err := eval.Eval("field", rule, visibility.Context{Values: map[string]any{"count": 1}}); err == nil {
			t.Fatalf("%q: expected error", rule)
		}
	}
}

func TestEvaluatorCachesPrograms(t *testing.T) {
	t.Parallel()

	eval := New()
	for i := 0; i < 3; i++ {
		if _, err := eval.Eval("field", "enabled", visibility.Context{Values: map[string]any{"enabled": i%2 == 0}}); err != nil {
			t.Fatalf("eval: %v", err)
		}
	}
	count := 0
	eval.programs.Range(func(any, any) bool { count++; return true })
	if count != 1 {
		t.Fatalf("expected one cached program, got %d", count)
	}
}
