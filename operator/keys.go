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

package operator

import "github.com/flowsift/flowsift/model"

// Project returns a GroupFunc extracting the sub-record holding only the
// listed fields. Fields absent from the input are silently omitted.
func Project(fields ...string) GroupFunc {
	return func(r model.Record) model.Record {
		out := make(model.Record, len(fields))
		for _, f := range fields {
			if v, ok := r[f]; ok {
				out[f] = v
			}
		}
		return out
	}
}

// WholeGroup maps every record to the empty sub-record, forcing a single
// global group.
func WholeGroup(model.Record) model.Record {
	return model.Record{}
}

// RenameProject builds a projection that re-keys fields: for each
// (old, new) pair whose old key is present in the input, the value appears
// under the new key in the output. Used to align field names between the
// two sides of a join.
func RenameProject(pairs ...[2]string) func(model.Record) model.Record {
	return func(r model.Record) model.Record {
		out := make(model.Record, len(pairs))
		for _, p := range pairs {
			if v, ok := r[p[0]]; ok {
				out[p[1]] = v
			}
		}
		return out
	}
}
