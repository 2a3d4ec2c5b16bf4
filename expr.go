package xlpanel

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// predicateEvaluator evaluates filter expressions against rows using expr-lang/expr.
type predicateEvaluator struct {
	cache sync.Map // expression string → compiled *vm.Program
}

func newPredicateEvaluator() *predicateEvaluator {
	return &predicateEvaluator{}
}

// Check compiles expression without running it, for syntax validation.
func (e *predicateEvaluator) Check(expression string) error {
	_, err := e.compile(expression)
	return err
}

// Match reports whether the expression is true for env. nil results count as false.
func (e *predicateEvaluator) Match(expression string, env map[string]any) (bool, error) {
	if expression == "" {
		return true, nil
	}
	program, err := e.compile(expression)
	if err != nil {
		return false, err
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", expression, err)
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q evaluated to %T, expected bool", expression, result)
	}
	return b, nil
}

func (e *predicateEvaluator) compile(expression string) (*vm.Program, error) {
	if cached, ok := e.cache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	e.cache.Store(expression, program)
	return program, nil
}

// rowEnv builds the expression environment for one row: every column name maps
// to its value (float64 for numeric columns that parse, display text otherwise).
// The whole row is also available as "row" unless a column already uses that name.
func rowEnv(columns []Column, row Row) map[string]any {
	env := make(map[string]any, len(columns)+1)
	for i, col := range columns {
		var c Cell
		if i < len(row) {
			c = row[i]
		}
		env[col.Name] = envValue(col, c)
	}
	if _, ok := env["row"]; !ok {
		fields := make(map[string]any, len(columns))
		for k, v := range env {
			fields[k] = v
		}
		env["row"] = fields
	}
	return env
}

func envValue(col Column, c Cell) any {
	if col.Kind == KindNumeric {
		if v, ok := ParseNumber(c.Value); ok {
			return v
		}
		return nil
	}
	return c.DisplayText()
}
