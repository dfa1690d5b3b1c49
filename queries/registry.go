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

import "sort"

var builders = map[string]Builder{
	"ident":            Ident,
	"count_pkts":       CountPkts,
	"pkts_per_src_dst": PktsPerSrcDst,
	"distinct_srcs":    DistinctSrcs,
	"tcp_new_cons":     TCPNewCons,
	"ssh_brute_force":  SSHBruteForce,
	"super_spreader":   SuperSpreader,
	"port_scan":        PortScan,
	"ddos":             DDoS,
	"q3":               Q3,
	"q4":               Q4,
}

var multiBuilders = map[string]MultiBuilder{
	"syn_flood_sonata": SynFloodSonata,
	"completed_flows":  CompletedFlows,
	"slowloris":        Slowloris,
	"join_test":        JoinTest,
}

// Lookup resolves a single-input query by name.
func Lookup(name string) (Builder, bool) {
	b, ok := builders[name]
	return b, ok
}

// LookupMulti resolves a multi-input query by name.
func LookupMulti(name string) (MultiBuilder, bool) {
	b, ok := multiBuilders[name]
	return b, ok
}

// Names lists every registered query name, sorted, single-input queries
// and multi-input queries alike.
func Names() []string {
	names := make([]string, 0, len(builders)+len(multiBuilders))
	for name := range builders {
		names = append(names, name)
	}
	for name := range multiBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
