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

// Package factory implements the resolution engine: it selects a resolver
// from an ordered chain, memoizes per-key providers and singleton
// instances, and rejects resolution cycles.
//
// Resolver selection for a key happens at most once per process lifetime:
// once a resolver claims a key, that selection is stable and repeated
// lookups are O(1). Cycle detection is tracked per resolution path, not
// globally, so two goroutines racing on the same key are serialized (for
// singletons) rather than misreported as a cycle.
package factory

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/config"
	"dirpx.dev/injx/key"
)

// New constructs a resolution engine for cfg.
//
// The resolver chain starts empty; populate it via WithResolvers or
// RegisterResolver. Order is semantically significant: register more
// specific resolvers before general fallbacks.
func New(cfg apis.Config, opts ...Option) apis.ConfigurableFactory {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	g := &engine{
		cfg: cfg,
		log: log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Option customizes an engine during construction.
type Option func(*engine)

// WithResolvers appends resolvers to the chain in the given order.
// Nil resolvers are ignored.
func WithResolvers(rs ...apis.FactoryResolver) Option {
	return func(g *engine) {
		for _, r := range rs {
			if r != nil {
				g.chain = append(g.chain, r)
			}
		}
	}
}

// WithLogger installs a diagnostics logger. The engine logs resolver
// selection and construction at debug level only; passing nil keeps the
// default disabled logger.
func WithLogger(l *log.Logger) Option {
	return func(g *engine) {
		if l != nil {
			g.log = l
		}
	}
}

// engine is the apis.ConfigurableFactory implementation.
type engine struct {
	cfg apis.Config
	log *log.Logger

	// chainMu guards chain; reads snapshot the slice header, writes
	// copy-on-write so snapshots stay immutable.
	chainMu sync.RWMutex
	chain   []apis.FactoryResolver

	// bindings maps key.ID to an explicitly registered apis.Provider.
	bindings sync.Map
	// entries maps key.ID to its *entry.
	entries sync.Map
	// group serializes first-time singleton construction per entry.
	group singleflight.Group
}

// Ensure engine implements the configurable factory surface.
var _ apis.ConfigurableFactory = (*engine)(nil)

// entry carries the memoized resolution state of one key identity.
type entry struct {
	// resolveOnce guards resolver selection; at most one resolver is ever
	// selected per key and the selection is stable for the process lifetime.
	resolveOnce sync.Once
	provider    apis.Provider
	source      string
	resolveErr  error

	// ready publishes the singleton outcome; val/err are written before the
	// ready store and read only after a true load.
	ready atomic.Bool
	val   any
	err   error
}

// RegisterResolver appends r to the resolver chain.
func (g *engine) RegisterResolver(r apis.FactoryResolver) {
	if r == nil {
		return
	}
	g.chainMu.Lock()
	next := make([]apis.FactoryResolver, len(g.chain), len(g.chain)+1)
	copy(next, g.chain)
	g.chain = append(next, r)
	g.chainMu.Unlock()
}

// Bind registers an explicit provider for k. Bindings take precedence over
// the resolver chain but do not replace a selection that already happened:
// keys resolved before Bind keep their original provider.
func (g *engine) Bind(k key.Key, p apis.Provider) error {
	if !k.IsValid() {
		return key.ErrNilType
	}
	if p == nil {
		return ErrNilBinding
	}
	if _, loaded := g.bindings.LoadOrStore(k.ID(), p); loaded {
		return &DuplicateBindingError{Key: k}
	}
	return nil
}

// Instance resolves an instance for k from a fresh resolution path.
func (g *engine) Instance(k key.Key) (any, error) {
	return (&scoped{eng: g}).Instance(k)
}

// entryFor returns the entry for id, creating it on first use.
func (g *engine) entryFor(id key.ID) *entry {
	if v, ok := g.entries.Load(id); ok {
		return v.(*entry)
	}
	v, _ := g.entries.LoadOrStore(id, &entry{})
	return v.(*entry)
}

// selectResolver walks the chain in registration order and returns the
// first resolver claiming k, or nil. A panic in Supports is treated as
// "does not support".
func (g *engine) selectResolver(k key.Key) apis.FactoryResolver {
	g.chainMu.RLock()
	chain := g.chain
	g.chainMu.RUnlock()

	for _, r := range chain {
		if g.supports(r, k) {
			return r
		}
	}
	return nil
}

// supports calls r.Supports defensively.
func (g *engine) supports(r apis.FactoryResolver, k key.Key) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			g.log.Warn("resolver panicked in Supports, treated as unsupported",
				"key", k.String(), "resolver", resolverName(r), "panic", rec)
		}
	}()
	return r.Supports(k)
}

// scoped is the per-resolution-path view of the engine handed to resolvers
// and providers. It carries the chain of keys in flight on this path so
// nested lookups participate in cycle detection.
type scoped struct {
	eng  *engine
	path []key.Key
}

// Ensure scoped implements the consumer surface resolvers call back into.
var _ apis.InstanceFactory = (*scoped)(nil)

// Instance resolves an instance for k on the current path.
func (s *scoped) Instance(k key.Key) (any, error) {
	if !k.IsValid() {
		return nil, key.ErrNilType
	}

	id := k.ID()
	for _, p := range s.path {
		if p.ID() == id {
			return nil, &CycleError{Path: append(s.pathCopy(), k)}
		}
	}
	if len(s.path) >= s.eng.cfg.MaxDepth {
		return nil, &DepthError{Path: append(s.pathCopy(), k), Limit: s.eng.cfg.MaxDepth}
	}

	e := s.eng.entryFor(id)
	if k.Scope() != key.Singleton {
		// Prototype: re-invoke the memoized provider on every lookup.
		return s.construct(e, k)
	}

	if e.ready.Load() {
		return e.val, e.err
	}
	// Serialize concurrent first-time requests so the provider runs to
	// completion at most once per singleton key. The group key is the entry
	// pointer, which is unique per key identity.
	v, err, _ := s.eng.group.Do(fmt.Sprintf("%p", e), func() (any, error) {
		if e.ready.Load() {
			return e.val, e.err
		}
		v, err := s.construct(e, k)
		e.val, e.err = v, err
		e.ready.Store(true)
		return v, err
	})
	return v, err
}

// construct obtains the memoized provider for k and invokes it with a
// child path that includes k.
func (s *scoped) construct(e *entry, k key.Key) (any, error) {
	p, err := s.providerFor(e, k)
	if err != nil {
		return nil, err
	}

	next := &scoped{eng: s.eng, path: append(s.pathCopy(), k)}
	v, err := p(next)
	if err != nil {
		return nil, err
	}
	s.eng.log.Debug("instance constructed", "key", k.String(), "source", e.source)
	return v, nil
}

// providerFor performs resolver selection for k exactly once and returns
// the memoized provider. Explicit bindings win over the chain.
func (s *scoped) providerFor(e *entry, k key.Key) (apis.Provider, error) {
	e.resolveOnce.Do(func() {
		if b, ok := s.eng.bindings.Load(k.ID()); ok {
			e.provider = b.(apis.Provider)
			e.source = "binding"
			s.eng.log.Debug("binding selected", "key", k.String())
			return
		}

		r := s.eng.selectResolver(k)
		if r == nil {
			e.resolveErr = &UnsupportedKeyError{Key: k}
			return
		}
		e.source = resolverName(r)

		p, err := r.Resolve(key.NewResolvable(k, s.path...), s)
		if err != nil {
			e.resolveErr = err
			return
		}
		if p == nil {
			e.resolveErr = &NilProviderError{Key: k}
			return
		}
		e.provider = p
		s.eng.log.Debug("resolver selected", "key", k.String(), "resolver", e.source)
	})

	if e.resolveErr != nil {
		return nil, e.resolveErr
	}
	return e.provider, nil
}

// pathCopy returns a private copy of the current path for extension.
func (s *scoped) pathCopy() []key.Key {
	if len(s.path) == 0 {
		return nil
	}
	out := make([]key.Key, len(s.path))
	copy(out, s.path)
	return out
}

// resolverName renders a resolver's dynamic type for diagnostics.
func resolverName(r apis.FactoryResolver) string {
	return fmt.Sprintf("%T", r)
}
