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
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geomantic/osmread/internal/pb"
	"github.com/geomantic/osmread/internal/wiretest"
)

func encHeaderBlock() []byte {
	bbox := wiretest.Sint(nil, 1, -500000000)  // left
	bbox = wiretest.Sint(bbox, 2, 500000000)   // right
	bbox = wiretest.Sint(bbox, 3, 51500000000) // top
	bbox = wiretest.Sint(bbox, 4, 51000000000) // bottom

	b := wiretest.Bytes(nil, 1, bbox)
	b = wiretest.String(b, 4, "OsmSchema-V0.6")
	b = wiretest.String(b, 4, "DenseNodes")
	b = wiretest.String(b, 5, "Sort.Type_then_ID")
	b = wiretest.String(b, 16, "planet-dump")
	b = wiretest.String(b, 17, "https://www.openstreetmap.org/api/0.6")
	b = wiretest.Varint(b, 32, 1617235200)
	b = wiretest.Varint(b, 33, 4500)

	return wiretest.String(b, 34, "https://planet.osm.org/replication/day/")
}

func TestParseHeaderBlock(t *testing.T) {
	header, err := parseHeaderBlock(encHeaderBlock())
	assert.NoError(t, err)

	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, header.RequiredFeatures)
	assert.Equal(t, []string{"Sort.Type_then_ID"}, header.OptionalFeatures)
	assert.Equal(t, "planet-dump", header.WritingProgram)
	assert.Equal(t, "https://www.openstreetmap.org/api/0.6", header.Source)
	assert.Equal(t, int64(4500), header.OsmosisReplicationSequenceNumber)
	assert.Equal(t, "https://planet.osm.org/replication/day/", header.OsmosisReplicationBaseURL)
	assert.Equal(t, time.Unix(1617235200, 0), header.OsmosisReplicationTimestamp)

	assert.NotNil(t, header.BoundingBox)
	assert.InDelta(t, -0.5, float64(header.BoundingBox.Left), 1e-9)
	assert.InDelta(t, 0.5, float64(header.BoundingBox.Right), 1e-9)
	assert.InDelta(t, 51.5, float64(header.BoundingBox.Top), 1e-9)
	assert.InDelta(t, 51.0, float64(header.BoundingBox.Bottom), 1e-9)
}

func TestParseHeaderBlockMinimal(t *testing.T) {
	header, err := parseHeaderBlock(nil)
	assert.NoError(t, err)

	assert.Nil(t, header.BoundingBox)
	assert.Empty(t, header.RequiredFeatures)
	assert.True(t, header.OsmosisReplicationTimestamp.IsZero())
}

func TestDecodeHeaderBlob(t *testing.T) {
	encoded := wiretest.ZstdBlob(encHeaderBlock())

	blob := &pb.Blob{}
	assert.NoError(t, blob.Unmarshal(encoded))

	header, err := DecodeHeaderBlob(blob)
	assert.NoError(t, err)
	assert.Equal(t, "planet-dump", header.WritingProgram)
}

func TestDecodeHeaderBlobGarbage(t *testing.T) {
	blob := &pb.Blob{Data: &pb.Blob_Raw{Raw: []byte{0xff, 0xff, 0xff}}}

	_, err := DecodeHeaderBlob(blob)
	assert.ErrorIs(t, err, ErrDecode)
}
