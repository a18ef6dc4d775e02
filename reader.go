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

// Package osmread decodes OpenStreetMap PBF data, pulling typed entities
// (nodes, ways, relations) one at a time off a byte stream in file order.
package osmread

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/geomantic/osmread/internal/decoder"
	"github.com/geomantic/osmread/internal/pb"
	"github.com/geomantic/osmread/model"
)

// Reader pulls decoded entities off an OSM PBF stream.  It buffers one
// block at a time: when the buffer empties, the next entity-data blob is
// read, decompressed, and decoded whole, then served entity by entity.
// Entities come back in file order, across blocks and across the groups
// within a block.
//
// A Reader is not safe for concurrent use.  Once Next has returned an
// error, the stream is treated as exhausted and every later call returns
// io.EOF.
type Reader struct {
	// Header is the content of the file's leading OSMHeader blob, or the
	// zero value if the stream starts directly with entity data.
	Header model.Header

	ctx    context.Context
	raw    io.Reader
	frames *decoder.FrameReader

	pending *pb.Blob

	buffer []model.Entity
	pos    int
	done   bool

	sortedAssumption bool
}

// NewReader constructs a Reader over r, decoding the leading OSMHeader
// blob when the stream carries one.  ctx is observed between block
// fetches; canceling it makes the next fetch fail and exhausts the
// reader.
func NewReader(ctx context.Context, r io.Reader, opts ...Option) (*Reader, error) {
	options := defaultReaderOptions
	for _, opt := range opts {
		opt(&options)
	}

	rd := &Reader{
		ctx:              ctx,
		raw:              r,
		frames:           decoder.NewFrameReader(r),
		sortedAssumption: options.sortedAssumption,
	}

	// The first frame decides whether the file declares a header.  Frames
	// of other kinds are skipped the same way the decode loop skips them.
	for {
		kind, blob, err := rd.frames.Next()
		if errors.Is(err, io.EOF) {
			rd.done = true

			return rd, nil
		} else if err != nil {
			slog.Error("unable to read leading frame", "error", err)

			return nil, err
		}

		switch kind {
		case decoder.KindHeader:
			header, err := decoder.DecodeHeaderBlob(blob)
			if err != nil {
				slog.Error("unable to decode file header", "error", err)

				return nil, err
			}

			rd.Header = header

			return rd, nil

		case decoder.KindData:
			rd.pending = blob

			return rd, nil

		default:
			continue
		}
	}
}

// Next returns the next entity in file order.  The end of the stream is
// io.EOF.  The first decode error is returned once; thereafter the reader
// is exhausted and Next returns io.EOF.
func (r *Reader) Next() (model.Entity, error) {
	if r.done {
		return nil, io.EOF
	}

	for r.pos >= len(r.buffer) {
		blob, err := r.nextBlob()
		if err != nil {
			r.done = true

			return nil, err
		}

		entities, err := decoder.DecodeBlob(blob)
		if err != nil {
			slog.Error("unable to decode block", "error", err)
			r.done = true

			return nil, err
		}

		r.buffer = entities
		r.pos = 0
	}

	entity := r.buffer[r.pos]
	r.buffer[r.pos] = nil
	r.pos++

	return entity, nil
}

func (r *Reader) nextBlob() (*pb.Blob, error) {
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}

	if r.pending != nil {
		blob := r.pending
		r.pending = nil

		return blob, nil
	}

	return r.frames.NextData()
}

// Close releases the reader's decode buffers.  It does not close the
// underlying stream, which the caller may still claim via Underlying.
func (r *Reader) Close() error {
	r.done = true
	r.buffer = nil

	return r.frames.Close()
}

// Underlying exposes the wrapped byte stream.  The reader keeps no
// position of its own beyond what it has already consumed, so a caller
// done iterating may take the stream over outright.
func (r *Reader) Underlying() io.Reader {
	return r.raw
}

// SetSortedAssumption records the caller's claim that the input is sorted
// by type then id.  Advisory only; the decode pipeline does not use it.
func (r *Reader) SetSortedAssumption(sorted bool) {
	r.sortedAssumption = sorted
}

// SortedAssumption reports the stored sorted-input claim.
func (r *Reader) SortedAssumption() bool {
	return r.sortedAssumption
}
