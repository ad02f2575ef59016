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

package resolver

import (
	"reflect"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/key"
	uref "dirpx.dev/injx/utils/reflect"
)

// NewReflectResolver creates the universal fallback resolver: it
// zero-constructs named struct types (or pointers to them) via reflection.
// It must be registered last; every plugin type without an explicit
// binding lands here. The cfg knobs consulted are ReflectFallback (acts as
// an on/off switch) and MaxUnwrap (pointer normalization depth).
func NewReflectResolver(cfg apis.Config) apis.FactoryResolver {
	return reflectResolver{cfg: cfg}
}

// reflectResolver constructs zero values for named struct keys.
type reflectResolver struct {
	cfg apis.Config
}

// Ensure reflectResolver implements apis.FactoryResolver.
var _ apis.FactoryResolver = reflectResolver{}

// Supports claims keys whose type normalizes to a named struct, unless the
// fallback is disabled. Namespace collections never land here because the
// namespace resolver precedes this one in the chain.
func (r reflectResolver) Supports(k key.Key) bool {
	if !r.cfg.ReflectFallback || k.Type() == nil {
		return false
	}
	_, err := uref.Base(k.Type(), r.cfg.MaxUnwrap)
	return err == nil
}

// Resolve returns a provider constructing a fresh zero value. The shape of
// the returned instance matches the declared key type: a pointer key gets
// a pointer, a plain struct key gets a value.
func (r reflectResolver) Resolve(rk key.Resolvable, _ apis.InstanceFactory) (apis.Provider, error) {
	if !r.Supports(rk.Key()) {
		return nil, ErrUnsupportedResolve
	}
	declared := rk.Key().Type()
	base, err := uref.Base(declared, r.cfg.MaxUnwrap)
	if err != nil {
		return nil, err
	}

	return func(apis.InstanceFactory) (any, error) {
		v := reflect.New(base)
		// Re-wrap to the declared pointer depth.
		for t := declared; t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Ptr; t = t.Elem() {
			p := reflect.New(v.Type())
			p.Elem().Set(v)
			v = p
		}
		if declared.Kind() == reflect.Ptr {
			return v.Interface(), nil
		}
		return v.Elem().Interface(), nil
	}, nil
}
