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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/builder"
	"dirpx.dev/injx/config"
	"dirpx.dev/injx/factory"
	"dirpx.dev/injx/key"
	"dirpx.dev/injx/registry"
	"dirpx.dev/injx/resolver"
)

type service struct{ id int }

func TestProviderSupports(t *testing.T) {
	t.Parallel()

	r := resolver.NewProviderResolver()

	assert.True(t, r.Supports(key.Of[func() *service]()))
	assert.True(t, r.Supports(key.Of[func() (*service, error)]()))

	assert.False(t, r.Supports(key.Of[func(int) *service]()), "arguments not allowed")
	assert.False(t, r.Supports(key.Of[func() (int, string)]()), "second result must be error")
	assert.False(t, r.Supports(key.Of[func() error]()), "element must not be error")
	assert.False(t, r.Supports(key.Of[*service]()), "non-func keys decline")
}

func TestProviderResolution_DefersAndSharesSingleton(t *testing.T) {
	t.Parallel()

	f := builder.New().BuildFactory(config.DefaultConfig(), registry.New(), nil, nil)

	var constructions atomic.Int32
	require.NoError(t, f.Bind(key.Of[*service](), func(apis.InstanceFactory) (any, error) {
		constructions.Add(1)
		return &service{id: 5}, nil
	}))

	v, err := f.Instance(key.Of[func() *service]())
	require.NoError(t, err)
	fn := v.(func() *service)

	// Nothing is constructed until the provider function is called.
	assert.Zero(t, constructions.Load())

	first := fn()
	second := fn()
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, 5, first.id)
	assert.EqualValues(t, 1, constructions.Load())

	// Direct lookups share the same singleton element.
	direct, err := f.Instance(key.Of[*service]())
	require.NoError(t, err)
	assert.Same(t, first, direct)
}

func TestProviderResolution_ErrorVariantSurfacesFailure(t *testing.T) {
	t.Parallel()

	// No binding and reflect fallback off: the element lookup must fail
	// through the provider's error result.
	f := builder.New().BuildFactory(
		config.NewConfig(config.WithReflectFallback(false)), registry.New(), nil, nil)

	v, err := f.Instance(key.Of[func() (*service, error)]())
	require.NoError(t, err, "resolving the provider itself is lazy and succeeds")

	fn := v.(func() (*service, error))
	got, err := fn()
	require.ErrorIs(t, err, factory.ErrUnsupportedKey)
	assert.Nil(t, got)
}

func TestProviderResolve_DefensiveOnUnsupportedKey(t *testing.T) {
	t.Parallel()

	r := resolver.NewProviderResolver()
	rk := key.NewResolvable(key.Of[*service]())

	_, err := r.Resolve(rk, nil)
	require.ErrorIs(t, err, resolver.ErrUnsupportedResolve)
}
