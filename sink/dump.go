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
)

// Dump is the default human-readable terminal operator: one line of
// `"key" => value, ` pairs per consumed record. When showReset is set,
// Advance also dumps the advance record followed by a literal [reset]
// marker line.
type Dump struct {
	w         io.Writer
	showReset bool
}

// NewDump creates a Dump sink writing to w.
func NewDump(w io.Writer, showReset bool) *Dump {
	return &Dump{w: w, showReset: showReset}
}

func (s *Dump) Consume(r model.Record) error {
	_, err := fmt.Fprintln(s.w, r.String())
	return err
}

func (s *Dump) Advance(r model.Record) error {
	if !s.showReset {
		return nil
	}
	if _, err := fmt.Fprintln(s.w, r.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.w, "[reset]")
	return err
}

// Collector is a terminal operator that accumulates everything it receives,
// used by tests and by callers that post-process results in memory.
type Collector struct {
	Records  []model.Record
	Advances []model.Record
}

func (c *Collector) Consume(r model.Record) error {
	c.Records = append(c.Records, r)
	return nil
}

func (c *Collector) Advance(r model.Record) error {
	c.Advances = append(c.Advances, r)
	return nil
}

// Reset drops everything collected so far.
func (c *Collector) Reset() {
	c.Records = nil
	c.Advances = nil
}
