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

package queries

import (
	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
)

// EIDKey is the field carrying the window id throughout the query library.
const EIDKey = "eid"

const (
	// EpochDur is the default window width in seconds.
	EpochDur = 1.0
	// Threshold is the default detection threshold shared by the
	// volumetric queries.
	Threshold int64 = 40
)

// Builder constructs a single-input query pipeline over a downstream
// operator.
type Builder func(next operator.Operator) operator.Operator

// MultiBuilder constructs a query with several input heads sharing one
// downstream, one head per input stream.
type MultiBuilder func(next operator.Operator) []operator.Operator

// protoAndFlags passes TCP records whose ipv4.proto and l4.flags both
// match exactly.
func protoAndFlags(proto, flags int64) operator.PredicateFunc {
	return func(r model.Record) (bool, error) {
		p, err := r.Int("ipv4.proto")
		if err != nil {
			return false, err
		}
		f, err := r.Int("l4.flags")
		if err != nil {
			return false, err
		}
		return p == proto && f == flags, nil
	}
}

func protoIs(proto int64) operator.PredicateFunc {
	return func(r model.Record) (bool, error) {
		p, err := r.Int("ipv4.proto")
		if err != nil {
			return false, err
		}
		return p == proto, nil
	}
}

// Ident strips the ethernet fields and passes everything else through.
func Ident(next operator.Operator) operator.Operator {
	return operator.NewTransform(func(r model.Record) (model.Record, error) {
		return r.Without("eth.src", "eth.dst"), nil
	}, next)
}

// CountPkts counts all records per one-second window under "pkts".
func CountPkts(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewGroupReduce(operator.WholeGroup, operator.Counter, "pkts", next))
}

// PktsPerSrcDst counts records per (src, dst) pair per window.
func PktsPerSrcDst(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewGroupReduce(operator.Project("ipv4.src", "ipv4.dst"),
			operator.Counter, "pkts", next))
}

// DistinctSrcs counts the distinct source addresses seen per window.
func DistinctSrcs(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewDeduplicate(operator.Project("ipv4.src"),
			operator.NewGroupReduce(operator.WholeGroup, operator.Counter, "srcs", next)))
}

// TCPNewCons flags hosts receiving at least Threshold TCP connection
// attempts (SYN packets) in a window.
func TCPNewCons(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 2),
			operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "cons",
				operator.NewFilter(operator.KeyGeqInt("cons", Threshold), next))))
}

// SSHBruteForce flags SSH servers seeing at least Threshold distinct
// clients sending equal-length packets in a window, a fingerprint of
// scripted password guessing.
func SSHBruteForce(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewFilter(func(r model.Record) (bool, error) {
			p, err := r.Int("ipv4.proto")
			if err != nil {
				return false, err
			}
			dport, err := r.Int("l4.dport")
			if err != nil {
				return false, err
			}
			return p == 6 && dport == 22, nil
		},
			operator.NewDeduplicate(operator.Project("ipv4.src", "ipv4.dst", "ipv4.len"),
				operator.NewGroupReduce(operator.Project("ipv4.dst", "ipv4.len"),
					operator.Counter, "srcs",
					operator.NewFilter(operator.KeyGeqInt("srcs", Threshold), next)))))
}

// SuperSpreader flags sources contacting at least Threshold distinct
// destinations in a window.
func SuperSpreader(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewDeduplicate(operator.Project("ipv4.src", "ipv4.dst"),
			operator.NewGroupReduce(operator.Project("ipv4.src"), operator.Counter, "dsts",
				operator.NewFilter(operator.KeyGeqInt("dsts", Threshold), next))))
}

// PortScan flags sources probing at least Threshold distinct destination
// ports in a window.
func PortScan(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewDeduplicate(operator.Project("ipv4.src", "l4.dport"),
			operator.NewGroupReduce(operator.Project("ipv4.src"), operator.Counter, "ports",
				operator.NewFilter(operator.KeyGeqInt("ports", Threshold), next))))
}

// DDoS flags destinations contacted by at least Threshold+5 distinct
// sources in a window.
func DDoS(next operator.Operator) operator.Operator {
	return operator.NewEpoch(EpochDur, EIDKey,
		operator.NewDeduplicate(operator.Project("ipv4.src", "ipv4.dst"),
			operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "srcs",
				operator.NewFilter(operator.KeyGeqInt("srcs", Threshold+5), next))))
}

// Q3 reports the distinct (src, dst) pairs over long 100-second windows.
func Q3(next operator.Operator) operator.Operator {
	return operator.NewEpoch(100.0, EIDKey,
		operator.NewDeduplicate(operator.Project("ipv4.src", "ipv4.dst"), next))
}

// Q4 counts packets per destination over very long windows.
func Q4(next operator.Operator) operator.Operator {
	return operator.NewEpoch(10000.0, EIDKey,
		operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "pkts", next))
}
