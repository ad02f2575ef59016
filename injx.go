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

package injx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/builder"
	"dirpx.dev/injx/config"
	"dirpx.dev/injx/key"
	"dirpx.dev/injx/model"
)

// init initializes the global injx state.
func init() {
	// Initialize state with default cfg, reg, and fac.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.fac = b.BuildFactory(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("injx: builder returned nil registry")
	// ErrNilFactory is returned when a builder returns a nil factory.
	ErrNilFactory = errors.New("injx: builder returned nil factory")
	// ErrWrongInstanceType is returned by InstanceOf when the resolved
	// instance is not assignable to the requested type parameter.
	ErrWrongInstanceType = errors.New("injx: resolved instance has wrong type")
)

// Instance resolves an instance for k using the global factory.
// This is a convenience wrapper around the global fac.
func Instance(k key.Key) (any, error) {
	return st.Load().fac.Instance(k)
}

// InstanceOf resolves an instance for a Key declared as type T.
// This is a convenience wrapper around the global fac.
func InstanceOf[T any](opts ...key.Option) (T, error) {
	var zero T
	v, err := Instance(key.Of[T](opts...))
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, ErrWrongInstanceType
	}
	return out, nil
}

// Namespace returns the namespace registered under name in the global reg.
// This is a convenience wrapper around the global reg.
func Namespace(name string) model.Namespace {
	return st.Load().reg.Namespace(name)
}

// Bind registers an explicit provider for k on the global factory.
// This is a convenience wrapper around the global fac.
func Bind(k key.Key, p apis.Provider) error {
	return st.Load().fac.Bind(k, p)
}

// RegisterResolver appends r to the global factory's resolver chain.
// This is a convenience wrapper around the global fac.
func RegisterResolver(r apis.FactoryResolver) {
	st.Load().fac.RegisterResolver(r)
}

// SetAll explicitly sets all global injx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.NamespaceRegistry, fac apis.ConfigurableFactory, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Factory
	nfac := fac
	npfac := false
	if nfac == nil {
		nfac = nbld.BuildFactory(ncfg, nreg, old.fac, next)
	} else {
		npfac = true
	}

	// Ensure non-nil reg and fac.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			fac:  nfac,
			bld:  nbld,
			preg: npreg,
			pfac: npfac,
		},
	)
}

// Config returns the global injx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global injx configuration to cfg.
// It rebuilds the global reg and fac using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and fac based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(cfg, nreg, old.fac, old.ext)
	}

	// Ensure non-nil reg and fac.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			fac:  nfac,
			bld:  b,
			preg: old.preg,
			pfac: old.pfac,
		},
	)
}

// Registry returns the global injx reg.
func Registry() apis.NamespaceRegistry {
	return st.Load().reg
}

// SetRegistry sets the global injx reg to reg.
// It uses the global injx configuration to rebuild the global fac.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.NamespaceRegistry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new fac based on the old cfg and new reg.
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(old.cfg, reg, old.fac, old.ext)
	}

	// Ensure non-nil fac.
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			fac:  nfac,
			bld:  b,
			preg: true,
			pfac: old.pfac,
		},
	)
}

// Factory returns the global injx fac.
func Factory() apis.ConfigurableFactory {
	return st.Load().fac
}

// SetFactory sets the global injx fac to fac.
// This is a convenience wrapper around the global state.
func SetFactory(fac apis.ConfigurableFactory) {
	if fac == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			fac:  fac,
			bld:  old.bld,
			preg: old.preg,
			pfac: true,
		},
	)
}

// Builder returns the global injx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global injx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and fac based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(old.cfg, nreg, old.fac, old.ext)
	}

	// Ensure non-nil reg and fac.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			fac:  nfac,
			bld:  b,
			preg: old.preg,
			pfac: old.pfac,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and fac based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(old.cfg, nreg, old.fac, ext)
	}

	// Ensure non-nil reg and fac.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			fac:  nfac,
			bld:  b,
			preg: old.preg,
			pfac: old.pfac,
		},
	)
}

// ExtAs returns the global injx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global injx reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global injx reg immutable.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			fac:  old.fac,
			bld:  old.bld,
			preg: true,
			pfac: old.pfac,
		},
	)
}

// UnpinRegistry makes the global injx reg mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			fac:  old.fac,
			bld:  old.bld,
			preg: false,
			pfac: old.pfac,
		},
	)
}

// IsFactoryPinned returns whether the global injx fac is pinned (immutable).
func IsFactoryPinned() bool {
	return st.Load().pfac
}

// PinFactory makes the global injx fac immutable.
func PinFactory() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			fac:  old.fac,
			bld:  old.bld,
			preg: old.preg,
			pfac: true,
		},
	)
}

// UnpinFactory makes the global injx fac mutable again.
func UnpinFactory() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			fac:  old.fac,
			bld:  old.bld,
			preg: old.preg,
			pfac: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global injx state.
var st atomic.Pointer[state]

// state is the global injx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global injx configuration.
	cfg apis.Config
	// ext is the global injx extension configuration.
	ext any
	// reg is the global injx namespace registry.
	reg apis.NamespaceRegistry
	// fac is the global injx instance factory.
	fac apis.ConfigurableFactory
	// bld is the global injx builder.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pfac indicates whether the fac is pinned (immutable).
	pfac bool
}
