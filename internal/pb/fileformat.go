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
	"google.golang.org/protobuf/encoding/protowire"
)

// BlobHeader precedes every blob in the stream and declares its kind and
// the size of the blob that follows.
type BlobHeader struct {
	Type      *string
	Indexdata []byte
	Datasize  int32
}

func (m *BlobHeader) GetType() string {
	if m == nil || m.Type == nil {
		return ""
	}

	return *m.Type
}

func (m *BlobHeader) GetIndexdata() []byte {
	if m == nil {
		return nil
	}

	return m.Indexdata
}

func (m *BlobHeader) GetDatasize() int32 {
	if m == nil {
		return 0
	}

	return m.Datasize
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *BlobHeader) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("blob header", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var s string
			if s, n, err = consumeString(b); err == nil {
				m.Type = &s
			}
		case 2:
			m.Indexdata, n, err = consumeBytes(b)
		case 3:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.Datasize = int32(v)
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("blob header", num, err)
		}

		b = b[n:]
	}

	return nil
}

// Blob carries a block's bytes, either raw or compressed.  The populated
// Data variant identifies the representation; a Blob without one is
// malformed.
type Blob struct {
	RawSize int32
	Data    isBlobData
}

type isBlobData interface {
	isBlobData()
}

type Blob_Raw struct {
	Raw []byte
}

type Blob_ZlibData struct {
	ZlibData []byte
}

type Blob_LzmaData struct {
	LzmaData []byte
}

type Blob_Lz4Data struct {
	Lz4Data []byte
}

type Blob_ZstdData struct {
	ZstdData []byte
}

func (*Blob_Raw) isBlobData()      {}
func (*Blob_ZlibData) isBlobData() {}
func (*Blob_LzmaData) isBlobData() {}
func (*Blob_Lz4Data) isBlobData()  {}
func (*Blob_ZstdData) isBlobData() {}

func (m *Blob) GetRawSize() int32 {
	if m == nil {
		return 0
	}

	return m.RawSize
}

func (m *Blob) GetRaw() []byte {
	if x, ok := m.Data.(*Blob_Raw); ok {
		return x.Raw
	}

	return nil
}

func (m *Blob) GetZlibData() []byte {
	if x, ok := m.Data.(*Blob_ZlibData); ok {
		return x.ZlibData
	}

	return nil
}

func (m *Blob) GetLzmaData() []byte {
	if x, ok := m.Data.(*Blob_LzmaData); ok {
		return x.LzmaData
	}

	return nil
}

func (m *Blob) GetLz4Data() []byte {
	if x, ok := m.Data.(*Blob_Lz4Data); ok {
		return x.Lz4Data
	}

	return nil
}

func (m *Blob) GetZstdData() []byte {
	if x, ok := m.Data.(*Blob_ZstdData); ok {
		return x.ZstdData
	}

	return nil
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *Blob) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("blob", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Data = &Blob_Raw{Raw: v}
			}
		case 2:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.RawSize = int32(v)
			}
		case 3:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Data = &Blob_ZlibData{ZlibData: v}
			}
		case 4:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Data = &Blob_LzmaData{LzmaData: v}
			}
		case 6:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Data = &Blob_Lz4Data{Lz4Data: v}
			}
		case 7:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Data = &Blob_ZstdData{ZstdData: v}
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("blob", num, err)
		}

		b = b[n:]
	}

	return nil
}
