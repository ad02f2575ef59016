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

// FactoryResolver is a pluggable resolution strategy. An engine consults a
// chain of resolvers in registration order; the first one whose Supports
// answers true is routed the key exclusively (there is no try-next-on-failure
// once a resolver claims support).
//
// Implementations may be stateless; identity is by registration order, not
// by equality.
type FactoryResolver interface {
	// Supports reports whether this resolver can produce a provider for k.
	// It must be a side-effect-free predicate and must not panic for any
	// well-formed key; the engine treats a panicking Supports as false.
	Supports(k key.Key) bool

	// Resolve returns a lazy provider for a supported key. Callers guarantee
	// Supports(rk.Key()) was consulted first; a defensive implementation
	// should return a configuration error for unsupported keys rather than
	// a nil provider.
	//
	// The factory argument serves lookups the resolver needs at resolution
	// time; the provider itself receives the factory of whichever invocation
	// runs it, which is the mechanism for composing nested dependencies.
	Resolve(rk key.Resolvable, factory InstanceFactory) (Provider, error)
}
