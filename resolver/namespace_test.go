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

package resolver_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/builder"
	"dirpx.dev/injx/config"
	"dirpx.dev/injx/factory"
	"dirpx.dev/injx/key"
	"dirpx.dev/injx/model"
	"dirpx.dev/injx/registry"
	"dirpx.dev/injx/resolver"
)

type upperConverter struct{}
type lowerConverter struct{}

// wired returns a factory built with the default chain against a registry
// holding the "converters" namespace.
func wired(t *testing.T) (apis.ConfigurableFactory, apis.NamespaceRegistry) {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register(model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(upperConverter{})},
		model.Descriptor{Name: "lower", Type: reflect.TypeOf(lowerConverter{})},
	)))
	f := builder.New().BuildFactory(config.DefaultConfig(), reg, nil, nil)
	return f, reg
}

func TestNamespaceSupports(t *testing.T) {
	t.Parallel()

	r := resolver.NewNamespaceResolver()

	assert.True(t, r.Supports(key.Of[model.Namespace](key.InNamespace("converters"))))

	// Empty namespace is explicitly rejected: no default-namespace fallback.
	assert.False(t, r.Supports(key.Of[model.Namespace]()))
	// Wrong declared type is rejected regardless of namespace.
	assert.False(t, r.Supports(key.Of[upperConverter](key.InNamespace("converters"))))
}

func TestNamespaceResolution(t *testing.T) {
	t.Parallel()

	f, _ := wired(t)

	v, err := f.Instance(key.Of[model.Namespace](key.InNamespace("converters")))
	require.NoError(t, err)

	ns := v.(model.Namespace)
	assert.Equal(t, []string{"upper", "lower"}, ns.Names())
}

func TestNamespaceResolution_MissingIsEmptyNotError(t *testing.T) {
	t.Parallel()

	f, _ := wired(t)

	v, err := f.Instance(key.Of[model.Namespace](key.InNamespace("missing")))
	require.NoError(t, err)

	ns := v.(model.Namespace)
	assert.True(t, ns.IsEmpty())
	assert.Equal(t, "missing", ns.Name())
}

func TestNamespaceResolution_EmptyNamespaceIsUnsupportedKey(t *testing.T) {
	t.Parallel()

	// Disable the reflect fallback so nothing else claims the key.
	reg := registry.New()
	f := builder.New().BuildFactory(
		config.NewConfig(config.WithReflectFallback(false)), reg, nil, nil)

	_, err := f.Instance(key.Of[model.Namespace]())
	require.ErrorIs(t, err, factory.ErrUnsupportedKey)
}

func TestNamespaceResolution_SingletonNamespaceIsCached(t *testing.T) {
	t.Parallel()

	f, _ := wired(t)
	k := key.Of[model.Namespace](key.InNamespace("converters"))

	first, err := f.Instance(k)
	require.NoError(t, err)
	second, err := f.Instance(k)
	require.NoError(t, err)

	assert.True(t, first.(model.Namespace).Equal(second.(model.Namespace)))
}

func TestNamespaceResolve_DefensiveOnUnsupportedKey(t *testing.T) {
	t.Parallel()

	r := resolver.NewNamespaceResolver()
	rk := key.NewResolvable(key.Of[model.Namespace]())

	_, err := r.Resolve(rk, nil)
	require.ErrorIs(t, err, resolver.ErrUnsupportedResolve)
}

func TestNamespaceRegistryKey_ResolvesTheRegistryItself(t *testing.T) {
	t.Parallel()

	f, reg := wired(t)

	v, err := f.Instance(resolver.NamespaceRegistryKey)
	require.NoError(t, err)
	assert.Same(t, reg, v)
}
