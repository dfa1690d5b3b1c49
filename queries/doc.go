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

/*
Package queries is the library of traffic-monitoring queries built on the
operator runtime: volumetric detectors (port scan, super spreader, DDoS,
TCP connection floods, SSH brute force) and join-based detectors (SYN
flood, completed flows, slowloris).

Each query is a constructor taking the downstream operator, so queries
chain onto any sink. Multi-input queries return one operator head per
input stream. The registry maps stable snake_case names to constructors
for the CLI.
*/
package queries
