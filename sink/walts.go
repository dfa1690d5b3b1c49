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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"

	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
)

// The Walts interchange format is a fixed seven-column CSV:
// src_ip, dst_ip, src_l4_port, dst_l4_port, packet_count, byte_count,
// epoch_id. An IP column holding the literal "0" decodes to the integer
// zero rather than an address.

// TuplesKey is the field under which the per-epoch record count is
// reported on Advance by the Walts reader.
const TuplesKey = "tuples"

// WaltsCSV is a terminal operator writing records in the Walts format.
// Consumed records must carry ipv4.src, ipv4.dst, l4.sport, l4.dport,
// packet_count, byte_count and the window id under eidKey.
type WaltsCSV struct {
	w      io.Writer
	eidKey string
}

// NewWaltsCSV creates a Walts writer; an empty eidKey defaults to "eid".
func NewWaltsCSV(w io.Writer, eidKey string) *WaltsCSV {
	if eidKey == "" {
		eidKey = "eid"
	}
	return &WaltsCSV{w: w, eidKey: eidKey}
}

func (s *WaltsCSV) Consume(r model.Record) error {
	src, ok := r["ipv4.src"]
	if !ok {
		return fmt.Errorf("walts csv: %w: %q", model.ErrMissingField, "ipv4.src")
	}
	dst, ok := r["ipv4.dst"]
	if !ok {
		return fmt.Errorf("walts csv: %w: %q", model.ErrMissingField, "ipv4.dst")
	}
	ints := make([]int64, 0, 5)
	for _, key := range []string{"l4.sport", "l4.dport", "packet_count", "byte_count", s.eidKey} {
		v, err := r.Int(key)
		if err != nil {
			return fmt.Errorf("walts csv: %w", err)
		}
		ints = append(ints, v)
	}
	_, err := fmt.Fprintf(s.w, "%s,%s,%d,%d,%d,%d,%d\n",
		src, dst, ints[0], ints[1], ints[2], ints[3], ints[4])
	return err
}

func (s *WaltsCSV) Advance(model.Record) error {
	return nil
}

// ipOrZero decodes an IP column: the literal "0" is the integer zero,
// anything else a dotted-quad address.
func ipOrZero(s string) (model.Value, error) {
	if s == "0" {
		return model.Int(0), nil
	}
	return model.ParseIPv4(s)
}

type waltsInput struct {
	scanner  *bufio.Scanner
	op       operator.Operator
	eid      int64
	tupCount int64
	active   bool
}

// ReadWaltsCSV drives one operator per input from Walts-format readers,
// interleaving inputs round-robin to simulate independently progressing
// streams. Each parsed row is tagged with its epoch id under eidKey; when
// a row's epoch id moves past the input's current window, Advance fires
// once per skipped window carrying the window id and the count of records
// seen under the "tuples" field. Exhausted inputs get one final Advance
// for the window after their last.
func ReadWaltsCSV(inputs []io.Reader, eidKey string, ops []operator.Operator) error {
	if len(inputs) != len(ops) {
		return fmt.Errorf("walts csv: %d inputs for %d operators", len(inputs), len(ops))
	}
	if eidKey == "" {
		eidKey = "eid"
	}
	states := make([]*waltsInput, len(inputs))
	for i, in := range inputs {
		states[i] = &waltsInput{scanner: bufio.NewScanner(in), op: ops[i], active: true}
	}
	running := len(states)
	for running > 0 {
		for _, st := range states {
			if !st.active {
				continue
			}
			if !st.scanner.Scan() {
				if err := st.scanner.Err(); err != nil {
					return fmt.Errorf("walts csv: %w", err)
				}
				final := model.Record{
					eidKey:    model.Int(st.eid + 1),
					TuplesKey: model.Int(st.tupCount),
				}
				if err := st.op.Advance(final); err != nil {
					return err
				}
				st.active = false
				running--
				continue
			}
			line := strings.TrimSpace(st.scanner.Text())
			if line == "" {
				continue
			}
			r, epoch, err := parseWaltsRow(line, eidKey)
			if err != nil {
				return err
			}
			for epoch > st.eid {
				flush := model.Record{
					eidKey:    model.Int(st.eid),
					TuplesKey: model.Int(st.tupCount),
				}
				if err := st.op.Advance(flush); err != nil {
					return err
				}
				st.tupCount = 0
				st.eid++
			}
			st.tupCount++
			if err := st.op.Consume(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseWaltsRow(line, eidKey string) (model.Record, int64, error) {
	cols := strings.Split(line, ",")
	if len(cols) != 7 {
		return nil, 0, fmt.Errorf("walts csv: malformed row %q: want 7 columns, got %d", line, len(cols))
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	src, err := ipOrZero(cols[0])
	if err != nil {
		return nil, 0, fmt.Errorf("walts csv: src_ip: %w", err)
	}
	dst, err := ipOrZero(cols[1])
	if err != nil {
		return nil, 0, fmt.Errorf("walts csv: dst_ip: %w", err)
	}
	ints := make([]int64, 5)
	for i, col := range cols[2:] {
		n, err := cast.ToInt64E(col)
		if err != nil {
			return nil, 0, fmt.Errorf("walts csv: column %d of %q: %w", i+3, line, err)
		}
		ints[i] = n
	}
	r := model.Record{
		"ipv4.src":     src,
		"ipv4.dst":     dst,
		"l4.sport":     model.Int(ints[0]),
		"l4.dport":     model.Int(ints[1]),
		"packet_count": model.Int(ints[2]),
		"byte_count":   model.Int(ints[3]),
		eidKey:         model.Int(ints[4]),
	}
	return r, ints[4], nil
}
