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

// Package pb holds the OSM PBF fileformat and osmformat wire messages,
// decoded directly with the protobuf wire API.  Only the fields the read
// path needs are materialized; unknown fields are skipped.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

func wireError(msg string, num protowire.Number, err error) error {
	return fmt.Errorf("%s: field %d: %w", msg, num, err)
}

// consumeBytes reads a length-delimited field and copies it out of the
// input, which may be backed by a pooled buffer.
func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}

	return append([]byte(nil), v...), n, nil
}

func consumeString(b []byte) (string, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return "", 0, protowire.ParseError(n)
	}

	return string(v), n, nil
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}

	return v, n, nil
}

// unpackVarints consumes a repeated varint field, accepting both the packed
// and the unpacked encodings, and hands each raw varint to add.
func unpackVarints(typ protowire.Type, b []byte, add func(uint64)) (int, error) {
	switch typ {
	case protowire.VarintType:
		v, n, err := consumeVarint(b)
		if err != nil {
			return 0, err
		}

		add(v)

		return n, nil

	case protowire.BytesType:
		pk, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}

		for len(pk) > 0 {
			v, m := protowire.ConsumeVarint(pk)
			if m < 0 {
				return 0, protowire.ParseError(m)
			}

			add(v)
			pk = pk[m:]
		}

		return n, nil

	default:
		return 0, fmt.Errorf("unexpected wire type %v for repeated varint field", typ)
	}
}

func consumeSint64s(dst []int64, typ protowire.Type, b []byte) ([]int64, int, error) {
	n, err := unpackVarints(typ, b, func(v uint64) {
		dst = append(dst, protowire.DecodeZigZag(v))
	})

	return dst, n, err
}

func consumeSint32s(dst []int32, typ protowire.Type, b []byte) ([]int32, int, error) {
	n, err := unpackVarints(typ, b, func(v uint64) {
		dst = append(dst, int32(protowire.DecodeZigZag(v)))
	})

	return dst, n, err
}

func consumeInt32s(dst []int32, typ protowire.Type, b []byte) ([]int32, int, error) {
	n, err := unpackVarints(typ, b, func(v uint64) {
		dst = append(dst, int32(v))
	})

	return dst, n, err
}

func consumeUint32s(dst []uint32, typ protowire.Type, b []byte) ([]uint32, int, error) {
	n, err := unpackVarints(typ, b, func(v uint64) {
		dst = append(dst, uint32(v))
	})

	return dst, n, err
}

func consumeBools(dst []bool, typ protowire.Type, b []byte) ([]bool, int, error) {
	n, err := unpackVarints(typ, b, func(v uint64) {
		dst = append(dst, v != 0)
	})

	return dst, n, err
}

// skipField discards a field of any wire type, returning the number of
// bytes consumed.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
	}

	return n, nil
}
