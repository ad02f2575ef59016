/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package key

import "strings"

// Resolvable wraps a Key together with the context of one resolution
// attempt: the chain of keys already in flight on the current path,
// outermost first. A Resolvable is created per attempt and discarded when
// the attempt completes.
type Resolvable struct {
	key  Key
	path []Key
}

// NewResolvable constructs a Resolvable for k with the given in-flight path.
// The path slice is copied; callers may reuse their backing array.
func NewResolvable(k Key, path ...Key) Resolvable {
	r := Resolvable{key: k}
	if len(path) > 0 {
		r.path = make([]Key, len(path))
		copy(r.path, path)
	}
	return r
}

// Key returns the key being resolved.
func (r Resolvable) Key() Key { return r.key }

// Path returns a copy of the in-flight key chain, outermost first. The key
// being resolved is not included.
func (r Resolvable) Path() []Key {
	if len(r.path) == 0 {
		return nil
	}
	out := make([]Key, len(r.path))
	copy(out, r.path)
	return out
}

// Depth returns the number of keys already in flight on the path.
func (r Resolvable) Depth() int { return len(r.path) }

// PathString renders the full chain including the key under resolution,
// e.g. "Key{...} -> Key{...}". Used in cycle and depth error messages.
func (r Resolvable) PathString() string {
	var b strings.Builder
	for _, p := range r.path {
		b.WriteString(p.String())
		b.WriteString(" -> ")
	}
	b.WriteString(r.key.String())
	return b.String()
}
