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

package osmread

import (
	"github.com/geomantic/osmread/internal/decoder"
)

// Error kinds reported by Reader.Next.  Every decode failure wraps exactly
// one of these sentinels and is matchable with errors.Is; end of stream is
// io.EOF, not an error kind.
var (
	// ErrFraming reports a truncated or malformed length-prefixed frame.
	ErrFraming = decoder.ErrFraming

	// ErrFormat reports a structurally invalid payload: a blob carrying
	// neither raw nor compressed data, or an entity group with no
	// populated variant.
	ErrFormat = decoder.ErrFormat

	// ErrDecode reports a structured-message parsing failure or a
	// violated column-alignment invariant.
	ErrDecode = decoder.ErrDecode

	// ErrRange reports a decoded numeric value outside its valid range,
	// such as a user id that does not fit the positive 32-bit range.
	ErrRange = decoder.ErrRange

	// ErrEncoding reports a byte string that must be valid text but is
	// not, such as an author name.
	ErrEncoding = decoder.ErrEncoding
)
