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
	"net/netip"

	"github.com/flowsift/flowsift/model"
)

// SamplePackets generates n synthetic TCP packets with one-second spacing
// and fixed addresses, the stream used by the demo runner and tests.
func SamplePackets(n int) []model.Record {
	localhost := model.IPv4(netip.AddrFrom4([4]byte{127, 0, 0, 1}))
	srcMAC := model.MAC([6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})
	dstMAC := model.MAC([6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})

	packets := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		packets = append(packets, model.Record{
			"time":          model.Float(float64(i)),
			"eth.src":       srcMAC,
			"eth.dst":       dstMAC,
			"eth.ethertype": model.Int(0x0800),
			"ipv4.hlen":     model.Int(20),
			"ipv4.proto":    model.Int(6),
			"ipv4.len":      model.Int(60),
			"ipv4.src":      localhost,
			"ipv4.dst":      localhost,
			"l4.sport":      model.Int(440),
			"l4.dport":      model.Int(50000),
			"l4.flags":      model.Int(10),
		})
	}
	return packets
}
