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
Package model defines the record model for FlowSift pipelines.

A Record is a string-keyed map of tagged Values (Float, Int, IPv4, MAC, or
the Empty sentinel). Records are conceptually immutable: every transformation
produces a new record, so operators and sibling pipeline branches can safely
hold references to records they have already forwarded.

Values are comparable and records expose a canonical Key encoding, which is
what lets composite sub-records (grouping keys, join keys) act as map keys
inside stateful operators.
*/
package model
