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

package model

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Record is the unit of data flowing through a pipeline: a string-keyed map
// of tagged values. Records are treated as immutable; operators derive new
// records with With, Without and Union instead of mutating one a downstream
// operator may still reference.
type Record map[string]Value

// Clone returns a shallow copy of r. Values are immutable, so a shallow
// copy is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// With returns a copy of r with key set to v.
func (r Record) With(key string, v Value) Record {
	out := r.Clone()
	out[key] = v
	return out
}

// Without returns a copy of r with the given keys removed.
func (r Record) Without(keys ...string) Record {
	out := r.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Union returns the union of r and other. On conflicting keys the value
// from r wins, matching the left-biased merge used when flush and join
// results are overlaid onto a carrier record.
func (r Record) Union(other Record) Record {
	out := make(Record, len(r)+len(other))
	for k, v := range other {
		out[k] = v
	}
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Int extracts an integer field. Missing fields and non-int variants are
// errors and abort the run.
func (r Record) Int(key string) (int64, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	i, err := v.AsInt()
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return i, nil
}

// Float extracts a float field.
func (r Record) Float(key string) (float64, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	f, err := v.AsFloat()
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return f, nil
}

// SortedKeys returns the field names of r in sorted order. Sinks and flush
// loops iterate in this order so output is deterministic.
func (r Record) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Key returns a canonical encoding of r for use as a Go map key. Equal
// records yield equal keys and distinct records yield distinct keys; field
// names are quoted so separators inside names cannot collide.
func (r Record) Key() string {
	var sb strings.Builder
	for _, k := range r.SortedKeys() {
		sb.WriteString(strconv.Quote(k))
		sb.WriteByte('=')
		sb.WriteString(r[k].canon())
		sb.WriteByte(';')
	}
	return sb.String()
}

// Equal reports structural equality of two records.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders r as `"key" => value, ` pairs in sorted key order, the
// format used by the dump sink.
func (r Record) String() string {
	var sb strings.Builder
	for _, k := range r.SortedKeys() {
		sb.WriteByte('"')
		sb.WriteString(k)
		sb.WriteString(`" => `)
		sb.WriteString(r[k].String())
		sb.WriteString(", ")
	}
	return sb.String()
}

// AsMap converts r to a plain map of native Go values.
func (r Record) AsMap() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Native()
	}
	return out
}

// FromMap converts loosely typed input into a Record. Numeric values become
// Float or Int, strings are tried as IPv4 then MAC addresses and otherwise
// coerced numerically via cast. It is the ingest counterpart of AsMap for
// callers holding plain maps of decoded input.
func FromMap(in map[string]any) (Record, error) {
	out := make(Record, len(in))
	for k, raw := range in {
		switch x := raw.(type) {
		case Value:
			out[k] = x
		case float32, float64:
			out[k] = Float(cast.ToFloat64(x))
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			out[k] = Int(cast.ToInt64(x))
		case nil:
			out[k] = Empty
		case string:
			v, err := valueFromString(x)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			out[k] = v
		default:
			return nil, fmt.Errorf("field %q: %w: unsupported input type %T", k, ErrTypeMismatch, raw)
		}
	}
	return out, nil
}

func valueFromString(s string) (Value, error) {
	if v, err := ParseIPv4(s); err == nil {
		return v, nil
	}
	if hw, err := net.ParseMAC(s); err == nil && len(hw) == 6 {
		var b [6]byte
		copy(b[:], hw)
		return MAC(b), nil
	}
	if i, err := cast.ToInt64E(s); err == nil && !strings.ContainsAny(s, ".eE") {
		return Int(i), nil
	}
	if f, err := cast.ToFloat64E(s); err == nil {
		return Float(f), nil
	}
	return Value{}, fmt.Errorf("%w: cannot interpret %q", ErrTypeMismatch, s)
}
