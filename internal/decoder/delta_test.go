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

func TestRunningSum(t *testing.T) {
	assert.Equal(t, []int64{5, 8, 7}, runningSum([]int64{5, 3, -1}))
	assert.Equal(t, []int32{-2, -5}, runningSum([]int32{-2, -3}))
	assert.Nil(t, runningSum([]int64{}))
	assert.Nil(t, runningSum[int64](nil))
}

func tagTable(entries ...string) *StringTable {
	raw := make([][]byte, len(entries))
	for i, s := range entries {
		raw[i] = []byte(s)
	}

	return NewStringTable(&pb.StringTable{S: raw})
}

func TestTagStream(t *testing.T) {
	table := tagTable("", "amenity", "cafe", "name", "Luna")
	ts := newTagStream(table, []int32{1, 2, 0, 3, 4, 1, 2, 0})

	tags, err := ts.next()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"amenity": "cafe"}, tags)

	tags, err = ts.next()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Luna", "amenity": "cafe"}, tags)
}

func TestTagStreamEmpty(t *testing.T) {
	ts := newTagStream(tagTable(""), nil)

	// every node of an untagged group gets an empty set
	for i := 0; i < 3; i++ {
		tags, err := ts.next()
		assert.NoError(t, err)
		assert.Empty(t, tags)
	}
}

func TestTagStreamUnterminated(t *testing.T) {
	table := tagTable("", "amenity", "cafe")

	ts := newTagStream(table, []int32{1, 2})
	_, err := ts.next()
	assert.ErrorIs(t, err, ErrDecode)

	ts = newTagStream(table, []int32{1, 2, 0, 1, 2})
	_, err = ts.next()
	assert.NoError(t, err)

	_, err = ts.next()
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTagStreamKeyWithoutValue(t *testing.T) {
	ts := newTagStream(tagTable("", "amenity"), []int32{1})

	_, err := ts.next()
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTagStreamDropsUnresolvablePairs(t *testing.T) {
	table := NewStringTable(&pb.StringTable{S: [][]byte{
		[]byte(""),
		[]byte("amenity"),
		{0xff, 0xfe}, // not UTF-8
		[]byte("name"),
		[]byte("Luna"),
	}})

	ts := newTagStream(table, []int32{1, 2, 3, 4, 9, 4, 0})

	tags, err := ts.next()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Luna"}, tags)
}
