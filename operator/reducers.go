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

package operator

import (
	"fmt"

	"github.com/flowsift/flowsift/model"
)

// Counter counts the records folded into a group: Empty becomes 1, an Int
// accumulator is incremented. Any other accumulator shape violates the
// reduction contract.
func Counter(acc model.Value, _ model.Record) (model.Value, error) {
	if acc.IsEmpty() {
		return model.Int(1), nil
	}
	n, err := acc.AsInt()
	if err != nil {
		return model.Value{}, fmt.Errorf("counter: %w", err)
	}
	return model.Int(n + 1), nil
}

// SumInts builds a reducer summing the integer field named field across a
// group's records. A missing or non-int field in any record is an error.
func SumInts(field string) ReduceFunc {
	return func(acc model.Value, r model.Record) (model.Value, error) {
		n, err := r.Int(field)
		if err != nil {
			return model.Value{}, fmt.Errorf("sum of %q: %w", field, err)
		}
		if acc.IsEmpty() {
			return model.Int(n), nil
		}
		cur, err := acc.AsInt()
		if err != nil {
			return model.Value{}, fmt.Errorf("sum of %q: %w", field, err)
		}
		return model.Int(cur + n), nil
	}
}
