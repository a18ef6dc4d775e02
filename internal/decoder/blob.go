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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/geomantic/osmread/internal/core"
	"github.com/geomantic/osmread/internal/pb"
)

// Blob kinds declared by blob headers.  Only KindData blobs carry entities.
const (
	KindHeader = "OSMHeader"
	KindData   = "OSMData"
)

// FrameReader reads length-prefixed header/blob frames off a byte stream.
// A frame is a big-endian uint32 header length, the blob header of that
// length, then the blob body whose length the header declares.
type FrameReader struct {
	r   io.Reader
	buf *core.PooledBuffer
}

// NewFrameReader wraps r.  Close must be called to release the frame
// buffer.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r, buf: core.NewPooledBuffer()}
}

// Close releases the frame buffer.  It does not close the underlying
// reader, which the caller owns.
func (f *FrameReader) Close() error {
	return f.buf.Close()
}

// Next reads the next frame of any kind.  A clean end of stream exactly at
// a length-prefix boundary is io.EOF; a partial read anywhere inside a
// frame is ErrFraming.
func (f *FrameReader) Next() (kind string, blob *pb.Blob, err error) {
	header, err := f.readHeader()
	if err != nil {
		return "", nil, err
	}

	blob, err = f.readBody(header)
	if err != nil {
		return "", nil, err
	}

	return header.GetType(), blob, nil
}

// NextData reads frames until the next entity-data blob, consuming and
// discarding frames of any other kind; skipping them keeps the stream
// position correct and is not an error.
func (f *FrameReader) NextData() (*pb.Blob, error) {
	for {
		header, err := f.readHeader()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Error("unable to read blob header", "error", err)
			}

			return nil, err
		}

		if header.GetType() != KindData {
			if err := f.discardBody(header); err != nil {
				slog.Error("unable to skip blob", "kind", header.GetType(), "error", err)

				return nil, err
			}

			continue
		}

		blob, err := f.readBody(header)
		if err != nil {
			slog.Error("unable to read blob", "error", err)

			return nil, err
		}

		return blob, nil
	}
}

func (f *FrameReader) readHeader() (*pb.BlobHeader, error) {
	var size uint32

	err := binary.Read(f.r, binary.BigEndian, &size)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	} else if err != nil {
		return nil, fmt.Errorf("%w: reading frame length: %v", ErrFraming, err)
	}

	f.buf.Reset()

	if n, err := io.CopyN(f.buf, f.r, int64(size)); err != nil {
		return nil, fmt.Errorf("%w: frame header truncated at %d of %d bytes: %v", ErrFraming, n, size, err)
	}

	header := &pb.BlobHeader{}
	if err := header.Unmarshal(f.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling blob header: %v", ErrDecode, err)
	}

	if header.GetDatasize() < 0 {
		return nil, fmt.Errorf("%w: negative blob size %d", ErrFraming, header.GetDatasize())
	}

	return header, nil
}

func (f *FrameReader) readBody(header *pb.BlobHeader) (*pb.Blob, error) {
	size := int64(header.GetDatasize())

	f.buf.Reset()

	if n, err := io.CopyN(f.buf, f.r, size); err != nil {
		return nil, fmt.Errorf("%w: blob truncated at %d of %d bytes: %v", ErrFraming, n, size, err)
	}

	blob := &pb.Blob{}
	if err := blob.Unmarshal(f.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling blob: %v", ErrDecode, err)
	}

	return blob, nil
}

func (f *FrameReader) discardBody(header *pb.BlobHeader) error {
	size := int64(header.GetDatasize())

	if n, err := io.CopyN(io.Discard, f.r, size); err != nil {
		return fmt.Errorf("%w: skipped blob truncated at %d of %d bytes: %v", ErrFraming, n, size, err)
	}

	return nil
}
