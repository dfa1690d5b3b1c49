/*
 * Copyright 2025 The FlowSift Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package condition

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
)

// Condition evaluates a compiled boolean expression against a record.
type Condition interface {
	Evaluate(r model.Record) (bool, error)
}

// ExprCondition compiles an expr-lang expression once and runs it per
// record. Dotted field names ("ipv4.proto", "l4.flags") are exposed to the
// expression as nested maps, so queries read naturally:
//
//	ipv4.proto == 6 && l4.flags == 2
type ExprCondition struct {
	source  string
	program *vm.Program
}

// New compiles expression into a Condition. Unknown variables evaluate as
// undefined rather than failing compilation, since records carry open field
// sets.
func New(expression string) (Condition, error) {
	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", expression, err)
	}
	return &ExprCondition{source: expression, program: program}, nil
}

// Evaluate runs the compiled program over r.
func (c *ExprCondition) Evaluate(r model.Record) (bool, error) {
	out, err := expr.Run(c.program, Env(r))
	if err != nil {
		return false, fmt.Errorf("condition %q: %w", c.source, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("condition %q: non-boolean result %T", c.source, out)
	}
	return ok, nil
}

// Filter compiles expression and wraps it as a Filter operator over next.
func Filter(expression string, next operator.Operator) (operator.Operator, error) {
	cond, err := New(expression)
	if err != nil {
		return nil, err
	}
	return operator.NewFilter(cond.Evaluate, next), nil
}

// Env converts a record into an expression environment. It starts from the
// record's native-value map and splits dotted field names into nested maps.
// A scalar field that collides with a nested prefix is shadowed by the
// nested map.
func Env(r model.Record) map[string]any {
	env := make(map[string]any, len(r))
	for k, v := range r.AsMap() {
		parts := strings.Split(k, ".")
		node := env
		for i, part := range parts {
			if i == len(parts)-1 {
				node[part] = v
				break
			}
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
	}
	return env
}
