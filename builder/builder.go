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

package builder

import (
	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/factory"
	"dirpx.dev/injx/registry"
	"dirpx.dev/injx/resolver"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.NamespaceRegistry. If a
// pre-existing registry is provided, its namespaces are copied into the
// new registry.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.NamespaceRegistry, _ any) apis.NamespaceRegistry {
	nreg := registry.New()
	if prev != nil {
		for _, name := range prev.Names() {
			_ = nreg.Register(prev.Namespace(name))
		}
	}
	return nreg
}

// BuildFactory builds and returns a new apis.ConfigurableFactory wired with
// the default resolver chain, ordered most specific first. The registry is
// bound under resolver.NamespaceRegistryKey so namespace lookups go through
// the ordinary nested-dependency mechanism.
func (b *builder) BuildFactory(cfg apis.Config, reg apis.NamespaceRegistry, _ apis.ConfigurableFactory, _ any) apis.ConfigurableFactory {
	f := factory.New(cfg, factory.WithResolvers(
		resolver.NewNamespaceResolver(),
		resolver.NewCollectionResolver(),
		resolver.NewProviderResolver(),
		resolver.NewReflectResolver(cfg),
	))
	if reg != nil {
		_ = f.Bind(resolver.NamespaceRegistryKey, func(apis.InstanceFactory) (any, error) {
			return reg, nil
		})
	}
	return f
}
