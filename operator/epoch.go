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

import (
	"fmt"

	"github.com/flowsift/flowsift/model"
)

// TimeKey is the field every record entering an Epoch operator must carry:
// a Float holding the record's simulated timestamp in seconds.
const TimeKey = "time"

// Epoch assigns each record a monotonically increasing window id derived
// from its time field and a fixed window width, and fires Advance on the
// downstream operator once per completed window. The first record of a run
// defines the end of the first window; a timestamp jumping forward by more
// than one width closes every skipped window in increasing id order.
type Epoch struct {
	width  float64
	keyOut string
	next   Operator

	// boundary == 0 means uninitialized; the next record re-derives it.
	boundary float64
	eid      int64
}

// NewEpoch creates an Epoch of the given width in seconds, tagging records
// with the window id under keyOut.
func NewEpoch(width float64, keyOut string, next Operator) *Epoch {
	return &Epoch{width: width, keyOut: keyOut, next: next}
}

func (o *Epoch) Consume(r model.Record) error {
	t, err := r.Float(TimeKey)
	if err != nil {
		return fmt.Errorf("epoch: %w", err)
	}
	if o.boundary == 0 {
		o.boundary = t + o.width
	} else {
		for t >= o.boundary {
			if err := o.next.Advance(model.Record{o.keyOut: model.Int(o.eid)}); err != nil {
				return err
			}
			o.boundary += o.width
			o.eid++
		}
	}
	return o.next.Consume(r.With(o.keyOut, model.Int(o.eid)))
}

// Advance force-closes the current window without waiting for a timestamp
// to cross the boundary, then resets the operator to its uninitialized
// state so the next record defines a fresh first window.
func (o *Epoch) Advance(model.Record) error {
	err := o.next.Advance(model.Record{o.keyOut: model.Int(o.eid)})
	o.boundary = 0
	o.eid = 0
	return err
}
