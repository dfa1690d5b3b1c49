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

// PredicateFunc decides whether a record passes a Filter. A predicate error
// is fatal to the run.
type PredicateFunc func(r model.Record) (bool, error)

// Filter forwards records that satisfy a predicate and drops the rest.
// Advance signals always pass through unchanged.
type Filter struct {
	pred PredicateFunc
	next Operator
}

// NewFilter creates a Filter over next.
func NewFilter(pred PredicateFunc, next Operator) *Filter {
	return &Filter{pred: pred, next: next}
}

func (o *Filter) Consume(r model.Record) error {
	ok, err := o.pred(r)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if !ok {
		return nil
	}
	return o.next.Consume(r)
}

func (o *Filter) Advance(r model.Record) error {
	return o.next.Advance(r)
}

// KeyGeqInt builds a predicate that passes records whose integer field key
// is at least threshold. Missing or non-int fields are errors.
func KeyGeqInt(key string, threshold int64) PredicateFunc {
	return func(r model.Record) (bool, error) {
		v, err := r.Int(key)
		if err != nil {
			return false, err
		}
		return v >= threshold, nil
	}
}

// KeyLeqInt is the mirror of KeyGeqInt for upper-bound thresholds.
func KeyLeqInt(key string, threshold int64) PredicateFunc {
	return func(r model.Record) (bool, error) {
		v, err := r.Int(key)
		if err != nil {
			return false, err
		}
		return v <= threshold, nil
	}
}
