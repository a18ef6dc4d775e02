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

// Package wiretest assembles synthetic OSM PBF payloads for tests.  The
// builders encode messages field by field with protowire, so tests can
// produce well-formed streams as well as deliberately broken ones.
// Builders panic on impossible inputs; they are test support only.
package wiretest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
	"google.golang.org/protobuf/encoding/protowire"
)

// Varint appends field num as a plain varint.
func Varint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

// Sint appends field num as a zigzag-coded varint.
func Sint(b []byte, num protowire.Number, v int64) []byte {
	return Varint(b, num, protowire.EncodeZigZag(v))
}

// Bytes appends field num as a length-delimited byte field.
func Bytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

// String appends field num as a length-delimited string field.
func String(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, s)
}

// PackedVarints appends field num as a packed run of plain varints.
func PackedVarints(b []byte, num protowire.Number, vals ...uint64) []byte {
	var packed []byte
	for _, v := range vals {
		packed = protowire.AppendVarint(packed, v)
	}

	return Bytes(b, num, packed)
}

// PackedSints appends field num as a packed run of zigzag-coded varints.
func PackedSints(b []byte, num protowire.Number, vals ...int64) []byte {
	var packed []byte
	for _, v := range vals {
		packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(v))
	}

	return Bytes(b, num, packed)
}

// Deltas converts a run of absolute values into consecutive differences,
// the form columnar fields carry on the wire.
func Deltas(abs ...int64) []int64 {
	deltas := make([]int64, len(abs))

	var prev int64
	for i, v := range abs {
		deltas[i] = v - prev
		prev = v
	}

	return deltas
}

// StringTable encodes a StringTable message with the given entries in
// order.  Callers are responsible for putting the empty delimiter string
// at index 0 when they want a conforming table.
func StringTable(entries ...string) []byte {
	var b []byte
	for _, s := range entries {
		b = String(b, 1, s)
	}

	return b
}

// Block encodes a PrimitiveBlock carrying the given string table and
// already-encoded PrimitiveGroup messages, with default granularities and
// zero offsets.
func Block(table []string, groups ...[]byte) []byte {
	b := Bytes(nil, 1, StringTable(table...))
	for _, g := range groups {
		b = Bytes(b, 2, g)
	}

	return b
}

// NodesGroup encodes a PrimitiveGroup of plain nodes.
func NodesGroup(nodes ...[]byte) []byte {
	var b []byte
	for _, n := range nodes {
		b = Bytes(b, 1, n)
	}

	return b
}

// DenseGroup encodes a PrimitiveGroup around one DenseNodes message.
func DenseGroup(dense []byte) []byte {
	return Bytes(nil, 2, dense)
}

// WaysGroup encodes a PrimitiveGroup of ways.
func WaysGroup(ways ...[]byte) []byte {
	var b []byte
	for _, w := range ways {
		b = Bytes(b, 3, w)
	}

	return b
}

// RelationsGroup encodes a PrimitiveGroup of relations.
func RelationsGroup(relations ...[]byte) []byte {
	var b []byte
	for _, r := range relations {
		b = Bytes(b, 4, r)
	}

	return b
}

// RawBlob encodes a Blob holding payload uncompressed, with the raw size
// declared.
func RawBlob(payload []byte) []byte {
	b := Bytes(nil, 1, payload)

	return Varint(b, 2, uint64(len(payload)))
}

// ZlibBlob encodes a Blob holding payload behind zlib.
func ZlibBlob(payload []byte) []byte {
	var buf bytes.Buffer

	w := zlib.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		panic(err)
	}

	if err := w.Close(); err != nil {
		panic(err)
	}

	b := Varint(nil, 2, uint64(len(payload)))

	return Bytes(b, 3, buf.Bytes())
}

// LzmaBlob encodes a Blob holding payload behind lzma.
func LzmaBlob(payload []byte) []byte {
	var buf bytes.Buffer

	w, err := lzma.NewWriter(&buf)
	if err != nil {
		panic(err)
	}

	if _, err := w.Write(payload); err != nil {
		panic(err)
	}

	if err := w.Close(); err != nil {
		panic(err)
	}

	b := Varint(nil, 2, uint64(len(payload)))

	return Bytes(b, 4, buf.Bytes())
}

// Lz4Blob encodes a Blob holding payload behind lz4 framing.
func Lz4Blob(payload []byte) []byte {
	var buf bytes.Buffer

	w := lz4.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		panic(err)
	}

	if err := w.Close(); err != nil {
		panic(err)
	}

	b := Varint(nil, 2, uint64(len(payload)))

	return Bytes(b, 6, buf.Bytes())
}

// ZstdBlob encodes a Blob holding payload behind zstd.
func ZstdBlob(payload []byte) []byte {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}

	compressed := w.EncodeAll(payload, nil)
	if err := w.Close(); err != nil {
		panic(err)
	}

	b := Varint(nil, 2, uint64(len(payload)))

	return Bytes(b, 7, compressed)
}

// Frame wraps an encoded Blob message into a complete stream frame: the
// big-endian length prefix, a BlobHeader of the given kind, then the blob.
func Frame(kind string, blob []byte) []byte {
	header := String(nil, 1, kind)
	header = Varint(header, 3, uint64(len(blob)))

	frame := binary.BigEndian.AppendUint32(nil, uint32(len(header)))
	frame = append(frame, header...)

	return append(frame, blob...)
}

// Stream concatenates frames into one byte stream.
func Stream(frames ...[]byte) []byte {
	var b []byte
	for _, f := range frames {
		b = append(b, f...)
	}

	return b
}
