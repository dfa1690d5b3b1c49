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
Package operator implements the push-based dataflow runtime for FlowSift.

Every operator exposes two entry points: Consume processes one data record
and Advance closes the current window, flushing any accumulated state
downstream. Operators compose by direct reference chaining (each operator
holds its downstream operator), so a pipeline is assembled right to left
with Chain, and fan-out/fan-in topologies with Tee and Join.

# Operators

  - Filter, Transform: stateless; predicate and map over records
  - Epoch: event-time windowing driven by the record's time field
  - GroupReduce, Deduplicate: per-window keyed state, flushed on Advance
  - Tee: duplicates the stream to two sub-pipelines
  - Join: two-sided stream join with independent per-side window progress

Execution is single-threaded, synchronous and push-driven: a record flows
completely through the chain via nested calls before the next one enters.
No operator is safe for concurrent use. Any error returned from Consume or
Advance is fatal to the run; continuing after a partially applied update
would corrupt aggregation state.
*/
package operator
