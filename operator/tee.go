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

import "github.com/flowsift/flowsift/model"

// Tee duplicates every signal to two downstream operators, left first.
// Records are immutable, so both branches may process the same record.
type Tee struct {
	left  Operator
	right Operator
}

// NewTee creates a Tee over two sub-pipelines.
func NewTee(left, right Operator) *Tee {
	return &Tee{left: left, right: right}
}

func (o *Tee) Consume(r model.Record) error {
	if err := o.left.Consume(r); err != nil {
		return err
	}
	return o.right.Consume(r)
}

func (o *Tee) Advance(r model.Record) error {
	if err := o.left.Advance(r); err != nil {
		return err
	}
	return o.right.Advance(r)
}
