// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decoder

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// runningSum reconstructs absolute values from consecutive deltas: the
// result at i is the prefix sum of deltas[0..i].  The accumulator is seeded
// at zero and never carried between calls.
func runningSum[T constraints.Signed](deltas []T) []T {
	if len(deltas) == 0 {
		return nil
	}

	out := make([]T, len(deltas))

	var acc T
	for i, d := range deltas {
		acc += d
		out[i] = acc
	}

	return out
}

// tagStream walks the flat key/value index array shared by all nodes of a
// dense group.  Each node's tags are a run of (key, value) index pairs
// closed by a zero delimiter; the delimiter is consumed, never emitted.
type tagStream struct {
	table   *StringTable
	keyVals []int32
	pos     int
}

func newTagStream(table *StringTable, keyVals []int32) *tagStream {
	return &tagStream{table: table, keyVals: keyVals}
}

// next returns the tag set of the next node.  A pair whose key or value
// index resolves to an absent string is dropped; tag loss is non-fatal to
// the rest of the entity.  A stream that runs out before the node's
// delimiter is malformed.
func (ts *tagStream) next() (map[string]string, error) {
	tags := make(map[string]string)

	if len(ts.keyVals) == 0 {
		return tags, nil
	}

	for {
		if ts.pos >= len(ts.keyVals) {
			return nil, fmt.Errorf("%w: tag stream exhausted before delimiter", ErrDecode)
		}

		keyIdx := ts.keyVals[ts.pos]
		ts.pos++

		if keyIdx == 0 {
			return tags, nil
		}

		if ts.pos >= len(ts.keyVals) {
			return nil, fmt.Errorf("%w: tag stream ended after key index %d without a value", ErrDecode, keyIdx)
		}

		valIdx := ts.keyVals[ts.pos]
		ts.pos++

		key, ok := ts.table.Get(int(keyIdx))
		if !ok {
			continue
		}

		val, ok := ts.table.Get(int(valIdx))
		if !ok {
			continue
		}

		tags[key] = val
	}
}
