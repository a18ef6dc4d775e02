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
	"time"

	"github.com/geomantic/osmread/internal/core"
	"github.com/geomantic/osmread/internal/pb"
	"github.com/geomantic/osmread/model"
)

// DecodeHeaderBlob unpacks an OSMHeader blob and parses the file header it
// carries.
func DecodeHeaderBlob(blob *pb.Blob) (model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := unpack(buf, blob)
	if err != nil {
		return model.Header{}, err
	}

	return parseHeaderBlock(unpacked)
}

func parseHeaderBlock(buf []byte) (model.Header, error) {
	hb := &pb.HeaderBlock{}
	if err := hb.Unmarshal(buf); err != nil {
		return model.Header{}, fmt.Errorf("%w: unable to unmarshal header block: %v", ErrDecode, err)
	}

	header := model.Header{
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
	}

	if hb.Bbox != nil {
		header.BoundingBox = &model.BoundingBox{
			Left:   model.ToDegrees(0, 1, hb.Bbox.GetLeft()),
			Right:  model.ToDegrees(0, 1, hb.Bbox.GetRight()),
			Top:    model.ToDegrees(0, 1, hb.Bbox.GetTop()),
			Bottom: model.ToDegrees(0, 1, hb.Bbox.GetBottom()),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		header.OsmosisReplicationTimestamp = time.Unix(*hb.OsmosisReplicationTimestamp, 0)
	}

	return header, nil
}
