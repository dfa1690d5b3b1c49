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
Package sink holds the terminal operators and the ingest edge of FlowSift
pipelines: the human-readable dump, generic CSV output, the fixed
seven-column Walts CSV interchange format (reader and writer), an
in-memory collector, and the MetaMeter pass-through counter.

Sinks implement the same Consume/Advance contract as every other operator,
so any of them can terminate a chain.
*/
package sink
