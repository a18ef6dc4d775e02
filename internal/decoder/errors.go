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

import "errors"

// Error kinds surfaced by the decoding pipeline.  All errors returned from
// this package wrap exactly one of these sentinels; none of the conditions
// they describe may abort the process.
var (
	// ErrFraming reports a truncated or malformed length-prefixed frame.
	ErrFraming = errors.New("malformed blob framing")

	// ErrFormat reports a structurally invalid payload: a blob with
	// neither raw nor compressed data, or a group with no populated
	// entity variant.
	ErrFormat = errors.New("invalid blob format")

	// ErrDecode reports a failure to decode a structured message or a
	// violated alignment invariant between parallel columns.
	ErrDecode = errors.New("blob decode failure")

	// ErrRange reports a decoded numeric value outside its valid range.
	ErrRange = errors.New("value out of range")

	// ErrEncoding reports a byte string that must be valid text but is
	// not, in a context where absence cannot be tolerated.
	ErrEncoding = errors.New("string not valid text")
)
