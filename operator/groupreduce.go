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
	"sort"

	"github.com/flowsift/flowsift/model"
)

// GroupFunc derives the grouping sub-record that identifies a record's
// group within the current window.
type GroupFunc func(r model.Record) model.Record

// ReduceFunc folds a record into the group's accumulated value. The
// accumulator starts as the Empty sentinel on a group's first record.
type ReduceFunc func(acc model.Value, r model.Record) (model.Value, error)

type groupEntry struct {
	key model.Record
	acc model.Value
}

// GroupReduce buckets records by a derived grouping key and folds each
// bucket with a reduction function. On Advance the whole table is flushed:
// one record per group, formed by overlaying the grouping key onto the
// advance record and attaching the accumulated value under outKey; the
// advance signal is then forwarded and the table cleared.
//
// Groups are keyed by the canonical encoding of the grouping sub-record,
// so structurally equal keys share one bucket. Flush emission follows the
// canonical key order, keeping output deterministic.
type GroupReduce struct {
	groupBy GroupFunc
	reduce  ReduceFunc
	outKey  string
	next    Operator
	groups  map[string]groupEntry
}

// NewGroupReduce creates a GroupReduce emitting accumulated values under
// outKey.
func NewGroupReduce(groupBy GroupFunc, reduce ReduceFunc, outKey string, next Operator) *GroupReduce {
	return &GroupReduce{
		groupBy: groupBy,
		reduce:  reduce,
		outKey:  outKey,
		next:    next,
		groups:  make(map[string]groupEntry),
	}
}

func (o *GroupReduce) Consume(r model.Record) error {
	k := o.groupBy(r)
	ck := k.Key()
	entry, ok := o.groups[ck]
	if !ok {
		entry = groupEntry{key: k, acc: model.Empty}
	}
	acc, err := o.reduce(entry.acc, r)
	if err != nil {
		return fmt.Errorf("groupreduce %q: %w", o.outKey, err)
	}
	entry.acc = acc
	o.groups[ck] = entry
	return nil
}

func (o *GroupReduce) Advance(r model.Record) error {
	for _, ck := range sortedTableKeys(o.groups) {
		entry := o.groups[ck]
		out := entry.key.Union(r).With(o.outKey, entry.acc)
		if err := o.next.Consume(out); err != nil {
			return err
		}
	}
	if err := o.next.Advance(r); err != nil {
		return err
	}
	o.groups = make(map[string]groupEntry)
	return nil
}

// Len reports the number of groups currently held, exposed for tests and
// instrumentation.
func (o *GroupReduce) Len() int { return len(o.groups) }

// Deduplicate emits each distinct grouping key observed during a window
// exactly once. It shares GroupReduce's state and flush shape, but stores
// only group presence: on Advance every distinct key is overlaid onto the
// advance record and emitted, then the table is cleared.
type Deduplicate struct {
	groupBy GroupFunc
	next    Operator
	seen    map[string]model.Record
}

// NewDeduplicate creates a Deduplicate over next.
func NewDeduplicate(groupBy GroupFunc, next Operator) *Deduplicate {
	return &Deduplicate{
		groupBy: groupBy,
		next:    next,
		seen:    make(map[string]model.Record),
	}
}

func (o *Deduplicate) Consume(r model.Record) error {
	k := o.groupBy(r)
	o.seen[k.Key()] = k
	return nil
}

func (o *Deduplicate) Advance(r model.Record) error {
	for _, ck := range sortedTableKeys(o.seen) {
		if err := o.next.Consume(o.seen[ck].Union(r)); err != nil {
			return err
		}
	}
	if err := o.next.Advance(r); err != nil {
		return err
	}
	o.seen = make(map[string]model.Record)
	return nil
}

// Len reports the number of distinct keys currently held.
func (o *Deduplicate) Len() int { return len(o.seen) }

func sortedTableKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
