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

// ExtractFunc splits an incoming record into its join key and the payload
// carried until a match arrives on the other side.
type ExtractFunc func(r model.Record) (key, payload model.Record)

// joinSide is one half of a join's shared state: records waiting for a
// counterpart, keyed by join key plus window id, and this side's window
// progress.
type joinSide struct {
	table map[string]model.Record
	epoch int64
}

// join owns both sides' tables and epoch counters; the two operator views
// returned by NewJoin borrow it, keeping the Operator contract uniform
// while the halves share mutable state.
type join struct {
	eidKey string
	next   Operator
	left   joinSide
	right  joinSide
}

// joinView is the Operator presented for one input side.
type joinView struct {
	j       *join
	side    *joinSide
	other   *joinSide
	extract ExtractFunc
}

// NewJoin creates a two-sided stream join. Each side's extract function
// maps an incoming record to (join key, payload); records match when their
// join keys and window ids coincide across sides, and a match is emitted
// downstream immediately as key ∪ payload ∪ other payload. Window progress
// is tracked per side under eidKey, and an Advance is forwarded downstream
// only once both sides have moved past a window.
//
// Unmatched entries are never explicitly expired: once both sides pass
// their window they are simply abandoned, so a side that never advances
// grows its table without bound. Callers must guarantee periodic window
// progress on both inputs.
func NewJoin(eidKey string, leftExtract, rightExtract ExtractFunc, next Operator) (left, right Operator) {
	j := &join{
		eidKey: eidKey,
		next:   next,
		left:   joinSide{table: make(map[string]model.Record)},
		right:  joinSide{table: make(map[string]model.Record)},
	}
	return &joinView{j: j, side: &j.left, other: &j.right, extract: leftExtract},
		&joinView{j: j, side: &j.right, other: &j.left, extract: rightExtract}
}

// catchUp advances this side's epoch counter to epoch, forwarding a flush
// for a window only after the other side has also moved past it. That
// gate prevents premature emission while the other side may still be
// buffering records for the window.
func (v *joinView) catchUp(epoch int64) error {
	for epoch > v.side.epoch {
		if v.other.epoch > v.side.epoch {
			if err := v.j.next.Advance(model.Record{v.j.eidKey: model.Int(v.side.epoch)}); err != nil {
				return err
			}
		}
		v.side.epoch++
	}
	return nil
}

func (v *joinView) Consume(r model.Record) error {
	key, payload := v.extract(r)
	epoch, err := r.Int(v.j.eidKey)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if err := v.catchUp(epoch); err != nil {
		return err
	}
	fullKey := key.With(v.j.eidKey, model.Int(epoch))
	ck := fullKey.Key()
	if otherPayload, ok := v.other.table[ck]; ok {
		delete(v.other.table, ck)
		return v.j.next.Consume(fullKey.Union(payload).Union(otherPayload))
	}
	v.side.table[ck] = payload
	return nil
}

func (v *joinView) Advance(r model.Record) error {
	epoch, err := r.Int(v.j.eidKey)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	return v.catchUp(epoch)
}
