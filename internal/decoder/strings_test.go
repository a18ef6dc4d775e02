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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geomantic/osmread/internal/pb"
)

func TestStringTable(t *testing.T) {
	table := NewStringTable(&pb.StringTable{S: [][]byte{
		[]byte(""),
		[]byte("highway"),
		[]byte("residential"),
	}})

	assert.Equal(t, 3, table.Len())

	s, ok := table.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "", s)

	s, ok = table.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "residential", s)
}

func TestStringTableIndexZeroAlwaysEmpty(t *testing.T) {
	// entry 0 is the delimiter; its raw bytes are ignored
	table := NewStringTable(&pb.StringTable{S: [][]byte{[]byte("junk")}})

	s, ok := table.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestStringTableEmpty(t *testing.T) {
	table := NewStringTable(&pb.StringTable{})

	assert.Equal(t, 1, table.Len())

	s, ok := table.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "", s)

	_, ok = table.Get(1)
	assert.False(t, ok)
}

func TestStringTableInvalidUTF8Absent(t *testing.T) {
	table := NewStringTable(&pb.StringTable{S: [][]byte{
		[]byte(""),
		{0xc3, 0x28},
		[]byte("good"),
	}})

	_, ok := table.Get(1)
	assert.False(t, ok)

	s, ok := table.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "good", s)
}

func TestStringTableOutOfRange(t *testing.T) {
	table := NewStringTable(&pb.StringTable{S: [][]byte{[]byte("")}})

	_, ok := table.Get(-1)
	assert.False(t, ok)

	_, ok = table.Get(1)
	assert.False(t, ok)
}
