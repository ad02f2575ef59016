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

package apis

// Config carries read-only resolution knobs that influence the engine and
// the concrete resolvers. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// MaxDepth bounds the nested resolution depth of a single lookup.
	// Acts as a safety guard on top of cycle detection against pathological
	// resolver graphs.
	MaxDepth int

	// MaxUnwrap limits pointer unwrapping depth when normalizing key types
	// for reflective construction.
	MaxUnwrap int

	// ReflectFallback controls whether the reflective zero-value resolver
	// participates in the default chain. If false, keys with no explicit
	// binding or specialized resolver fail as unsupported.
	ReflectFallback bool
}
