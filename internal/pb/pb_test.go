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

package pb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

func TestBlobHeaderUnmarshal(t *testing.T) {
	b := appendString(nil, 1, "OSMData")
	b = appendBytes(b, 2, []byte{0x01, 0x02})
	b = appendVarint(b, 3, 1234)

	header := &BlobHeader{}
	assert.NoError(t, header.Unmarshal(b))

	assert.Equal(t, "OSMData", header.GetType())
	assert.Equal(t, []byte{0x01, 0x02}, header.GetIndexdata())
	assert.Equal(t, int32(1234), header.GetDatasize())
}

func TestBlobHeaderZeroValue(t *testing.T) {
	header := &BlobHeader{}

	assert.Equal(t, "", header.GetType())
	assert.Equal(t, int32(0), header.GetDatasize())
}

func TestBlobUnmarshalVariants(t *testing.T) {
	b := appendVarint(nil, 2, 99)
	b = appendBytes(b, 3, []byte("deflated"))

	blob := &Blob{}
	assert.NoError(t, blob.Unmarshal(b))

	assert.Equal(t, int32(99), blob.GetRawSize())
	assert.Equal(t, []byte("deflated"), blob.GetZlibData())
	assert.Nil(t, blob.GetRaw())

	_, ok := blob.Data.(*Blob_ZlibData)
	assert.True(t, ok)
}

func TestBlobUnmarshalNoData(t *testing.T) {
	blob := &Blob{}
	assert.NoError(t, blob.Unmarshal(appendVarint(nil, 2, 7)))
	assert.Nil(t, blob.Data)
}

func TestPrimitiveBlockDefaults(t *testing.T) {
	blk := &PrimitiveBlock{}
	assert.NoError(t, blk.Unmarshal(nil))

	assert.Equal(t, int32(DefaultGranularity), blk.GetGranularity())
	assert.Equal(t, int32(DefaultDateGranularity), blk.GetDateGranularity())
	assert.Equal(t, int64(0), blk.GetLatOffset())
}

func TestPrimitiveBlockUnmarshal(t *testing.T) {
	table := appendString(nil, 1, "")
	table = appendString(table, 1, "highway")

	b := appendBytes(nil, 1, table)
	b = appendVarint(b, 17, 1000)
	b = appendVarint(b, 18, 2000)
	b = appendVarint(b, 19, protowire.EncodeZigZag(-100))
	b = appendVarint(b, 20, protowire.EncodeZigZag(200))

	blk := &PrimitiveBlock{}
	assert.NoError(t, blk.Unmarshal(b))

	assert.Equal(t, [][]byte{[]byte(""), []byte("highway")}, blk.GetStringtable().GetS())
	assert.Equal(t, int32(1000), blk.GetGranularity())
	assert.Equal(t, int32(2000), blk.GetDateGranularity())
	assert.Equal(t, int64(-100), blk.GetLatOffset())
	assert.Equal(t, int64(200), blk.GetLonOffset())
}

func TestDenseNodesPackedAndUnpacked(t *testing.T) {
	// packed run plus a trailing unpacked entry for the same field
	var packed []byte
	packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(8))
	packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(1))

	b := appendBytes(nil, 1, packed)
	b = appendVarint(b, 1, protowire.EncodeZigZag(-2))

	dense := &DenseNodes{}
	assert.NoError(t, dense.Unmarshal(b))

	assert.Equal(t, []int64{8, 1, -2}, dense.GetId())
}

func TestDenseInfoUnmarshal(t *testing.T) {
	var versions []byte
	versions = protowire.AppendVarint(versions, 1)
	versions = protowire.AppendVarint(versions, 2)

	var visible []byte
	visible = protowire.AppendVarint(visible, 1)
	visible = protowire.AppendVarint(visible, 0)

	b := appendBytes(nil, 1, versions)
	b = appendBytes(b, 6, visible)

	di := &DenseInfo{}
	assert.NoError(t, di.Unmarshal(b))

	assert.Equal(t, []int32{1, 2}, di.GetVersion())
	assert.Equal(t, []bool{true, false}, di.GetVisible())
}

func TestInfoDefaults(t *testing.T) {
	var info *Info

	assert.Equal(t, int32(-1), info.GetVersion())
	assert.True(t, info.GetVisible())
	assert.Equal(t, uint32(0), info.GetUserSid())
}

func TestInfoUnmarshal(t *testing.T) {
	b := appendVarint(nil, 1, 3)
	b = appendVarint(b, 2, 1640995200)
	b = appendVarint(b, 4, 42)
	b = appendVarint(b, 6, 0)

	info := &Info{}
	assert.NoError(t, info.Unmarshal(b))

	assert.Equal(t, int32(3), info.GetVersion())
	assert.Equal(t, int64(1640995200), info.GetTimestamp())
	assert.Equal(t, int32(42), info.GetUid())
	assert.False(t, info.GetVisible())
}

func TestRelationUnmarshal(t *testing.T) {
	var types []byte
	types = protowire.AppendVarint(types, 0)
	types = protowire.AppendVarint(types, 1)
	types = protowire.AppendVarint(types, 2)

	b := appendVarint(nil, 1, 7)
	b = appendBytes(b, 10, types)

	rel := &Relation{}
	assert.NoError(t, rel.Unmarshal(b))

	assert.Equal(t, int64(7), rel.GetId())
	assert.Equal(t, []Relation_MemberType{Relation_NODE, Relation_WAY, Relation_RELATION}, rel.GetTypes())
}

func TestUnknownFieldsSkipped(t *testing.T) {
	b := appendVarint(nil, 999, 1)
	b = appendBytes(b, 998, []byte("future extension"))
	b = appendVarint(b, 3, 55)

	header := &BlobHeader{}
	assert.NoError(t, header.Unmarshal(b))
	assert.Equal(t, int32(55), header.GetDatasize())
}

func TestUnmarshalTruncated(t *testing.T) {
	b := appendBytes(nil, 1, []byte("OSMData"))

	header := &BlobHeader{}
	assert.Error(t, header.Unmarshal(b[:len(b)-3]))
}
