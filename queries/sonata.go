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

// The multi-input queries below return one operator head per input
// stream; feed every head the same packet sequence (or genuinely distinct
// streams) and issue the final Advance on each at end of input.

// addIntField builds a transform that computes combine over two integer
// fields and stores the result under outKey.
func addIntField(outKey, aKey, bKey string, combine func(a, b int64) int64) operator.TransformFunc {
	return func(r model.Record) (model.Record, error) {
		a, err := r.Int(aKey)
		if err != nil {
			return nil, err
		}
		b, err := r.Int(bKey)
		if err != nil {
			return nil, err
		}
		return r.With(outKey, model.Int(combine(a, b))), nil
	}
}

// SynFloodSonata detects hosts for which SYNs plus SYN-ACKs outpace ACKs,
// the half-open connection signature of a SYN flood. Three input heads
// (all fed the full packet stream): SYN counter by destination, SYN-ACK
// counter by source, ACK counter by destination, combined through two
// joins keyed on the victim host.
func SynFloodSonata(next operator.Operator) []operator.Operator {
	const threshold int64 = 3
	epochDur := 1.0

	// Second-stage join: (syns+synacks) against acks.
	join1, join2 := operator.NewJoin(EIDKey,
		func(r model.Record) (model.Record, model.Record) {
			return operator.Project("host")(r), operator.Project("syns+synacks")(r)
		},
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.dst", "host"})(r), operator.Project("acks")(r)
		},
		operator.NewTransform(
			addIntField("syns+synacks-acks", "syns+synacks", "acks", func(a, b int64) int64 { return a - b }),
			operator.NewFilter(operator.KeyGeqInt("syns+synacks-acks", threshold), next)))

	// First-stage join: syns against synacks, feeding the second stage.
	join3, join4 := operator.NewJoin(EIDKey,
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.dst", "host"})(r), operator.Project("syns")(r)
		},
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.src", "host"})(r), operator.Project("synacks")(r)
		},
		operator.NewTransform(
			addIntField("syns+synacks", "syns", "synacks", func(a, b int64) int64 { return a + b }),
			join1))

	syns := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 2),
			operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "syns", join3)))
	synacks := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 18),
			operator.NewGroupReduce(operator.Project("ipv4.src"), operator.Counter, "synacks", join4)))
	acks := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 16),
			operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "acks", join2)))

	return []operator.Operator{syns, synacks, acks}
}

// CompletedFlows reports hosts that opened noticeably more connections
// than they closed over a long window: per-source SYN counts joined with
// per-source FIN counts on the host address, keeping rows where the
// difference is at least one.
func CompletedFlows(next operator.Operator) []operator.Operator {
	const threshold int64 = 1
	epochDur := 30.0

	join1, join2 := operator.NewJoin(EIDKey,
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.dst", "host"})(r), operator.Project("syns")(r)
		},
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.src", "host"})(r), operator.Project("fins")(r)
		},
		operator.NewTransform(
			addIntField("diff", "syns", "fins", func(a, b int64) int64 { return a - b }),
			operator.NewFilter(operator.KeyGeqInt("diff", threshold), next)))

	syns := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 2),
			operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "syns", join1)))
	fins := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(func(r model.Record) (bool, error) {
			p, err := r.Int("ipv4.proto")
			if err != nil {
				return false, err
			}
			flags, err := r.Int("l4.flags")
			if err != nil {
				return false, err
			}
			return p == 6 && flags&1 == 1, nil
		},
			operator.NewGroupReduce(operator.Project("ipv4.src"), operator.Counter, "fins", join2)))

	return []operator.Operator{syns, fins}
}

// Slowloris flags servers holding many connections that each carry very
// little data: connection counts joined with byte counts per destination,
// keeping rows whose bytes-per-connection ratio is suspiciously low.
func Slowloris(next operator.Operator) []operator.Operator {
	const (
		minConns     int64 = 5
		minBytes     int64 = 500
		maxBytesPerC int64 = 90
	)
	epochDur := 1.0

	join1, join2 := operator.NewJoin(EIDKey,
		func(r model.Record) (model.Record, model.Record) {
			return operator.Project("ipv4.dst")(r), operator.Project("n_conns")(r)
		},
		func(r model.Record) (model.Record, model.Record) {
			return operator.Project("ipv4.dst")(r), operator.Project("n_bytes")(r)
		},
		operator.NewTransform(
			addIntField("bytes_per_conn", "n_bytes", "n_conns", func(a, b int64) int64 { return a / b }),
			operator.NewFilter(operator.KeyLeqInt("bytes_per_conn", maxBytesPerC), next)))

	nConns := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoIs(6),
			operator.NewDeduplicate(operator.Project("ipv4.src", "ipv4.dst", "l4.sport"),
				operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "n_conns",
					operator.NewFilter(operator.KeyGeqInt("n_conns", minConns), join1)))))
	nBytes := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoIs(6),
			operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.SumInts("ipv4.len"), "n_bytes",
				operator.NewFilter(operator.KeyGeqInt("n_bytes", minBytes), join2))))

	return []operator.Operator{nConns, nBytes}
}

// JoinTest exercises the join operator directly: SYNs joined with
// SYN-ACKs on the initiating host, payloads carrying the peer address and
// the timestamp.
func JoinTest(next operator.Operator) []operator.Operator {
	epochDur := 1.0

	join1, join2 := operator.NewJoin(EIDKey,
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.src", "host"})(r),
				operator.RenameProject([2]string{"ipv4.dst", "remote"})(r)
		},
		func(r model.Record) (model.Record, model.Record) {
			return operator.RenameProject([2]string{"ipv4.dst", "host"})(r),
				operator.Project("time")(r)
		},
		next)

	syns := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 2), join1))
	synacks := operator.NewEpoch(epochDur, EIDKey,
		operator.NewFilter(protoAndFlags(6, 18), join2))

	return []operator.Operator{syns, synacks}
}
