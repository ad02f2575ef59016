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

import (
	"dirpx.dev/injx/key"
)

// Provider lazily produces an instance for a key.
//
// The factory argument is the resolution context of the invocation that
// triggered the provider; nested lookups a provider performs MUST go through
// it so the engine sees the full in-flight path for cycle detection.
type Provider func(factory InstanceFactory) (any, error)

// InstanceFactory is the consumer call surface of the resolution runtime:
// a single synchronous entry point that returns a fully usable instance or
// fails with a named resolution error. Implementations must be safe for
// concurrent use.
type InstanceFactory interface {
	// Instance resolves an instance for k. It never returns a nil error
	// together with a placeholder value: a returned instance is usable.
	Instance(k key.Key) (any, error)
}

// ConfigurableFactory extends InstanceFactory with the two surfaces the
// surrounding system uses to set the runtime up: ordered resolver
// registration and explicit per-key bindings.
type ConfigurableFactory interface {
	InstanceFactory

	// RegisterResolver appends r to the resolver chain. Registration order
	// is semantically significant: the first registered resolver whose
	// Supports answers true for a key wins, exclusively. Nil resolvers are
	// ignored.
	RegisterResolver(r FactoryResolver)

	// Bind registers an explicit provider for k. Bindings take precedence
	// over the resolver chain. Binding the same key identity twice is a
	// conflict error.
	Bind(k key.Key, p Provider) error
}
