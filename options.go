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

// readerOptions provides optional configuration parameters for Reader
// construction.
type readerOptions struct {
	sortedAssumption bool
}

// Option configures how we set up the reader.
type Option func(*readerOptions)

// WithSortedAssumption lets you declare that the input is sorted by type
// then id.  The flag is advisory state for downstream consumers; the
// decode pipeline itself neither checks nor relies on it.
func WithSortedAssumption(sorted bool) Option {
	return func(o *readerOptions) {
		o.sortedAssumption = sorted
	}
}

var defaultReaderOptions = readerOptions{}
