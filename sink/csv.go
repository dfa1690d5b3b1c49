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
	"encoding/csv"
	"io"

	"github.com/flowsift/flowsift/model"
)

// CSV is a terminal operator rendering records as CSV rows. The column
// layout is fixed by the first consumed record (sorted field names);
// subsequent records are rendered in that order, with absent fields left
// blank. An optional static column is prepended to every row, and a header
// row is written before the first record when header is set. Advance is a
// no-op.
type CSV struct {
	w      *csv.Writer
	static *[2]string
	header bool
	fields []string
}

// NewCSV creates a CSV sink. static, when non-nil, is a (name, value) pair
// emitted as a leading constant column.
func NewCSV(w io.Writer, static *[2]string, header bool) *CSV {
	return &CSV{w: csv.NewWriter(w), static: static, header: header}
}

func (s *CSV) Consume(r model.Record) error {
	if s.fields == nil {
		s.fields = r.SortedKeys()
		if s.header {
			row := make([]string, 0, len(s.fields)+1)
			if s.static != nil {
				row = append(row, s.static[0])
			}
			row = append(row, s.fields...)
			if err := s.w.Write(row); err != nil {
				return err
			}
		}
	}
	row := make([]string, 0, len(s.fields)+1)
	if s.static != nil {
		row = append(row, s.static[1])
	}
	for _, f := range s.fields {
		if v, ok := r[f]; ok {
			row = append(row, v.String())
		} else {
			row = append(row, "")
		}
	}
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSV) Advance(model.Record) error {
	return nil
}
