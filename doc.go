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

// Package injx provides a typed, extensible dependency-resolution runtime.
//
// injx answers one question: "give me an instance satisfying this typed,
// optionally-namespaced key". It does so by consulting an ordered chain of
// pluggable resolution strategies, caching outcomes per key, and detecting
// recursive construction cycles. One of those strategies specializes in
// resolving namespaced plugin collections assembled at startup.
//
// # Design
//
// The core of injx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: knobs that bound resolution (nested depth guard, pointer
//     unwrap limit, whether reflective zero-value construction is allowed).
//
//   - NamespaceRegistry: the process-wide mapping from namespace name to a
//     collection of plugin descriptors. A scanning collaborator (package
//     scan) populates it once at startup from a statically assembled
//     descriptor table; afterward it is read-only.
//
//   - InstanceFactory: the resolution engine. Given a key.Key it walks the
//     resolver chain in registration order, routes the key to the first
//     resolver that claims it, memoizes the resulting provider, and caches
//     the instance according to the key's scope. Resolution failures are
//     named errors (unsupported key, cycle, depth), never placeholder
//     instances.
//
//   - Builder: a pluggable factory that knows how to construct the
//     registry and the engine for a given Config (and optional extension
//     data), wiring the default resolver chain:
//     namespace -> collection -> provider -> reflect fallback.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state
// and atomically swap it in, which is also how the "registry is populated,
// now immutable" handoff becomes visible to all goroutines at once.
//
// This means injx lookups are lock-free at the snapshot level:
//
//	ns, err := injx.InstanceOf[model.Namespace](key.InNamespace("converters"))
//	reg := injx.Registry()
//
// # Resolution semantics
//
// For every key identity (type, namespace, qualifier) at most one resolver
// is ever selected, and that selection is stable for the process lifetime.
// First registered match wins; there is no try-next-on-failure once a
// resolver claims a key. Singleton-scoped keys are constructed at most
// once even under concurrent first requests; prototype-scoped keys
// re-invoke the memoized provider per lookup.
//
// A provider may resolve further keys through the factory it receives.
// The engine tracks the chain of keys in flight on each resolution path,
// so re-entering a key on its own path fails fast with a cycle error
// instead of recursing, while two goroutines independently resolving the
// same key are serialized rather than misreported as a cycle.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers: Instance, InstanceOf, Namespace, Registry, Factory,
//     Builder, Config. Safe for concurrent use; they always read the
//     latest published snapshot.
//
//  2. Mutation helpers: Bind, RegisterResolver, SetConfig, SetBuilder,
//     SetExt, SetRegistry, SetFactory, Pin/Unpin per layer, and SetAll as
//     the hard-reset API (mainly for tests). Each Set* acquires an
//     internal build lock, derives a new snapshot (rebuilding or reusing
//     layers as pinning dictates), and publishes it atomically.
//
//  3. Introspection: ExtAs, IsRegistryPinned, IsFactoryPinned, plus the
//     registry's Names/Count.
//
// # Scope
//
// injx resolves and caches service instances; it is not a persistence
// framework and performs no I/O of its own. Discovery of plugin types is
// the job of package scan; log formatting, appenders and the rest of the
// surrounding system are downstream consumers that obtain configured
// instances through this core.
package injx
