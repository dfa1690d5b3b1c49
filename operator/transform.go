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

// TransformFunc maps a record to a new record. It must be pure: derive the
// output with copy-on-write helpers and retain no reference to prior input
// records across calls.
type TransformFunc func(r model.Record) (model.Record, error)

// Transform applies a pure record-to-record function to every consumed
// record. Advance signals pass through unchanged.
type Transform struct {
	fn   TransformFunc
	next Operator
}

// NewTransform creates a Transform over next.
func NewTransform(fn TransformFunc, next Operator) *Transform {
	return &Transform{fn: fn, next: next}
}

func (o *Transform) Consume(r model.Record) error {
	out, err := o.fn(r)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	return o.next.Consume(out)
}

func (o *Transform) Advance(r model.Record) error {
	return o.next.Advance(r)
}
