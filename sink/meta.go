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

package sink

import (
	"fmt"
	"io"

	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
)

// MetaMeter is pass-through instrumentation: it counts records per window
// and writes one `epoch,name,count` line on every Advance before
// forwarding the signal. Useful for measuring how much traffic each stage
// of a pipeline sees.
type MetaMeter struct {
	name   string
	w      io.Writer
	next   operator.Operator
	epochs int64
	count  int64
}

// NewMetaMeter creates a MetaMeter labeled name, writing to w.
func NewMetaMeter(name string, w io.Writer, next operator.Operator) *MetaMeter {
	return &MetaMeter{name: name, w: w, next: next}
}

func (m *MetaMeter) Consume(r model.Record) error {
	m.count++
	return m.next.Consume(r)
}

func (m *MetaMeter) Advance(r model.Record) error {
	if _, err := fmt.Fprintf(m.w, "%d,%s,%d\n", m.epochs, m.name, m.count); err != nil {
		return err
	}
	m.epochs++
	m.count = 0
	return m.next.Advance(r)
}
