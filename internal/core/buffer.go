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

// Package core holds shared plumbing used by the decoding pipeline.
package core

import (
	"bytes"
	"io"
	"sync"
)

const initialBufferSize = 1024 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

// PooledBuffer is a bytes.Buffer drawn from a process-wide pool.  Callers
// must Close the buffer when done so it can be reused; the buffer must not
// be touched after Close, nor may byte slices obtained from Bytes be
// retained past it.
type PooledBuffer struct {
	buf *bytes.Buffer
}

// NewPooledBuffer obtains a buffer from the pool.
func NewPooledBuffer() *PooledBuffer {
	b := bufferPool.Get().(*bytes.Buffer)
	b.Reset()

	return &PooledBuffer{buf: b}
}

// Close returns the buffer to the pool.
func (p *PooledBuffer) Close() error {
	if p.buf != nil {
		bufferPool.Put(p.buf)
		p.buf = nil
	}

	return nil
}

// Reset truncates the buffer to zero length.
func (p *PooledBuffer) Reset() { p.buf.Reset() }

// Grow grows the buffer's capacity to guarantee space for n more bytes.
func (p *PooledBuffer) Grow(n int) { p.buf.Grow(n) }

// Cap returns the capacity of the underlying buffer.
func (p *PooledBuffer) Cap() int { return p.buf.Cap() }

// Len returns the number of bytes held.
func (p *PooledBuffer) Len() int { return p.buf.Len() }

// Bytes returns the contents of the buffer.  The slice is only valid until
// the next mutation or Close.
func (p *PooledBuffer) Bytes() []byte { return p.buf.Bytes() }

// Write implements io.Writer.
func (p *PooledBuffer) Write(b []byte) (int, error) { return p.buf.Write(b) }

// ReadFrom implements io.ReaderFrom.
func (p *PooledBuffer) ReadFrom(r io.Reader) (int64, error) { return p.buf.ReadFrom(r) }

var (
	_ io.Writer     = (*PooledBuffer)(nil)
	_ io.ReaderFrom = (*PooledBuffer)(nil)
	_ io.Closer     = (*PooledBuffer)(nil)
)
