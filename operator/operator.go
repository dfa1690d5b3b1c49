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
	"github.com/flowsift/flowsift/model"
)

// Operator is the unit of computation in a pipeline. Consume processes one
// data record; Advance signals that the current window of records is
// complete, carrying a record (normally just the window-id field) that
// stateful operators merge into their flush output.
//
// Both methods return an error only for unrecoverable conditions (missing
// or mistyped fields, reducer contract violations). An error aborts the
// pipeline run; there is no retry and no partial-failure recovery.
type Operator interface {
	Consume(r model.Record) error
	Advance(r model.Record) error
}

// BuildFunc is a one-argument operator constructor: it closes over its
// parameters and takes only the downstream operator.
type BuildFunc func(next Operator) Operator

// Build2Func constructs two operators sharing one downstream, the shape
// produced by Join.
type Build2Func func(next Operator) (Operator, Operator)

// Chain applies build to next, reading pipeline assembly right to left:
// Chain(a, Chain(b, sink)) wires a -> b -> sink.
func Chain(build BuildFunc, next Operator) Operator {
	return build(next)
}

// Chain2 applies a two-headed constructor to a shared downstream.
func Chain2(build Build2Func, next Operator) (Operator, Operator) {
	return build(next)
}

// Func adapts a pair of closures to the Operator interface. A nil slot is
// a no-op, which makes Func{} a valid terminal for pipelines whose output
// is not observed.
type Func struct {
	ConsumeFunc func(r model.Record) error
	AdvanceFunc func(r model.Record) error
}

func (f Func) Consume(r model.Record) error {
	if f.ConsumeFunc == nil {
		return nil
	}
	return f.ConsumeFunc(r)
}

func (f Func) Advance(r model.Record) error {
	if f.AdvanceFunc == nil {
		return nil
	}
	return f.AdvanceFunc(r)
}
