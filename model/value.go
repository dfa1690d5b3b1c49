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
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// ErrTypeMismatch reports extraction of the wrong variant from a Value,
// or a field holding an unexpected variant.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrMissingField reports a record lookup for a field that is not present.
var ErrMissingField = errors.New("missing field")

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindEmpty is the sentinel for "no accumulated value yet".
	// It is the zero Kind so that the zero Value is Empty.
	KindEmpty Kind = iota
	KindFloat
	KindInt
	KindIPv4
	KindMAC
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindFloat:
		return "Float"
	case KindInt:
		return "Int"
	case KindIPv4:
		return "IPv4"
	case KindMAC:
		return "MAC"
	default:
		return "Unknown"
	}
}

// Value is a closed tagged union of the field types carried by flow records:
// Float, Int, IPv4 address, MAC address, or the Empty sentinel. Values are
// immutable once constructed and comparable with ==, so they can take part
// in composite map keys. The zero Value is Empty.
type Value struct {
	kind Kind
	f    float64
	i    int64
	ip   netip.Addr
	mac  [6]byte
}

// Empty is the sentinel Value used as the initial accumulator for reductions.
var Empty = Value{}

// Float constructs a Float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Int constructs an Int value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// IPv4 constructs an IPv4 address value.
func IPv4(a netip.Addr) Value {
	return Value{kind: KindIPv4, ip: a}
}

// ParseIPv4 constructs an IPv4 value from dotted-quad text.
func ParseIPv4(s string) (Value, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return Value{}, fmt.Errorf("parse ipv4 %q: %w", s, err)
	}
	if !a.Is4() {
		return Value{}, fmt.Errorf("parse ipv4 %q: %w: not a 4-byte address", s, ErrTypeMismatch)
	}
	return IPv4(a), nil
}

// MAC constructs a MAC address value.
func MAC(hw [6]byte) Value {
	return Value{kind: KindMAC, mac: hw}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the Empty sentinel.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// AsInt extracts the integer payload. Any other variant is a type mismatch.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("%w: int requested from %s", ErrTypeMismatch, v.kind)
	}
	return v.i, nil
}

// AsFloat extracts the float payload. Any other variant is a type mismatch.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("%w: float requested from %s", ErrTypeMismatch, v.kind)
	}
	return v.f, nil
}

// AsIPv4 extracts the address payload.
func (v Value) AsIPv4() (netip.Addr, error) {
	if v.kind != KindIPv4 {
		return netip.Addr{}, fmt.Errorf("%w: ipv4 requested from %s", ErrTypeMismatch, v.kind)
	}
	return v.ip, nil
}

// AsMAC extracts the hardware address payload.
func (v Value) AsMAC() ([6]byte, error) {
	if v.kind != KindMAC {
		return [6]byte{}, fmt.Errorf("%w: mac requested from %s", ErrTypeMismatch, v.kind)
	}
	return v.mac, nil
}

// Native returns the payload as a plain Go value: float64, int64, the
// string form for addresses, or nil for Empty. Used to build environments
// for expression evaluation and generic serialization.
func (v Value) Native() any {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return v.i
	case KindIPv4:
		return v.ip.String()
	case KindMAC:
		return net.HardwareAddr(v.mac[:]).String()
	default:
		return nil
	}
}

// String renders the value for sinks: numbers via strconv, addresses in
// their usual text forms, Empty as "Empty".
func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindIPv4:
		return v.ip.String()
	case KindMAC:
		return net.HardwareAddr(v.mac[:]).String()
	case KindEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// canon is the canonical encoding used inside Record.Key. The kind prefix
// keeps encodings of different variants disjoint.
func (v Value) canon() string {
	switch v.kind {
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindIPv4:
		return "a:" + v.ip.String()
	case KindMAC:
		return "m:" + net.HardwareAddr(v.mac[:]).String()
	default:
		return "e:"
	}
}
