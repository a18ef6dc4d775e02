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
	"unicode/utf8"

	"github.com/geomantic/osmread/internal/pb"
)

// StringTable resolves the string indices of one block.  Entries are
// interned once at construction and shared read-only by every entity
// decoded from the block; Go strings make each reference a cheap header
// copy over the same backing bytes.
//
// An entry whose raw bytes are not valid UTF-8 is absent, not empty: any
// index resolving to it reports ok == false.  Index 0 is always present and
// empty, as the format reserves it for the tag-stream delimiter.
type StringTable struct {
	strings []string
	present []bool
}

// NewStringTable interns the block's raw byte strings.  A bad entry never
// fails the table; it is recorded as absent.
func NewStringTable(st *pb.StringTable) *StringTable {
	raw := st.GetS()

	size := len(raw)
	if size == 0 {
		size = 1
	}

	t := &StringTable{
		strings: make([]string, size),
		present: make([]bool, size),
	}
	t.present[0] = true

	for i, b := range raw {
		if i == 0 {
			continue
		}

		if utf8.Valid(b) {
			t.strings[i] = string(b)
			t.present[i] = true
		}
	}

	return t
}

// Get resolves index i.  ok is false for absent entries and for indices
// outside the table.
func (t *StringTable) Get(i int) (s string, ok bool) {
	if i < 0 || i >= len(t.strings) || !t.present[i] {
		return "", false
	}

	return t.strings[i], true
}

// Len returns the number of entries, absent ones included.
func (t *StringTable) Len() int {
	return len(t.strings)
}
