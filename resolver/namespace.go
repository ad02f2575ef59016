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

// Package resolver provides the concrete FactoryResolver implementations
// wired into the default chain: namespace collections, plugin collections,
// lazy providers, and the reflective zero-value fallback.
package resolver

import (
	"errors"
	"reflect"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/key"
	"dirpx.dev/injx/model"
)

var (
	// ErrUnsupportedResolve is returned when Resolve is handed a key the
	// resolver does not support. Callers are expected to consult Supports
	// first; hitting this error indicates a miswired chain.
	ErrUnsupportedResolve = errors.New("injx(resolver): Resolve called with unsupported key")
)

// NamespaceRegistryKey is the key under which the process-wide namespace
// registry itself is resolved. The builder binds the registry instance to
// this key; the namespace resolver looks it up through the factory, which
// is the standard nested-dependency mechanism.
var NamespaceRegistryKey = key.Of[apis.NamespaceRegistry]()

// namespaceType is the declared type namespace-collection keys carry.
var namespaceType = reflect.TypeOf(model.Namespace{})

// NewNamespaceResolver creates the resolver for namespace-collection keys.
// Keys must have a namespace defined; there is no default-namespace
// fallback at this layer.
func NewNamespaceResolver() apis.FactoryResolver {
	return namespaceResolver{}
}

// namespaceResolver resolves model.Namespace keys against the registry.
type namespaceResolver struct{}

// Ensure namespaceResolver implements apis.FactoryResolver.
var _ apis.FactoryResolver = namespaceResolver{}

// Supports claims keys whose declared type is model.Namespace and whose
// namespace field is non-empty.
func (namespaceResolver) Supports(k key.Key) bool {
	return k.Type() == namespaceType && k.Namespace() != ""
}

// Resolve returns a provider that resolves the registry through the
// factory and looks the namespace up by name. An unregistered name yields
// an empty Namespace, not an error.
func (r namespaceResolver) Resolve(rk key.Resolvable, _ apis.InstanceFactory) (apis.Provider, error) {
	if !r.Supports(rk.Key()) {
		return nil, ErrUnsupportedResolve
	}
	namespace := rk.Key().Namespace()
	return func(factory apis.InstanceFactory) (any, error) {
		v, err := factory.Instance(NamespaceRegistryKey)
		if err != nil {
			return nil, err
		}
		return v.(apis.NamespaceRegistry).Namespace(namespace), nil
	}, nil
}
