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

package registry_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/injx/model"
	"dirpx.dev/injx/registry"
)

type upperConverter struct{}
type lowerConverter struct{}

func converters() model.Namespace {
	return model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(upperConverter{})},
		model.Descriptor{Name: "lower", Type: reflect.TypeOf(lowerConverter{})},
	)
}

func TestRegister_IdempotentAndLookup(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Register(converters()))
	// Idempotent re-registration with equal contents.
	require.NoError(t, reg.Register(converters()))

	ns := reg.Namespace("converters")
	assert.Equal(t, []string{"upper", "lower"}, ns.Names())

	// Lookup is case-insensitive.
	assert.Equal(t, 2, reg.Namespace("CONVERTERS").Len())
	assert.Equal(t, 1, reg.Count())
}

func TestRegister_Conflict(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Register(converters()))

	// Same name, different contents -> conflict.
	other := model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(lowerConverter{})},
	)
	err := reg.Register(other)
	require.ErrorIs(t, err, registry.ErrConflictingNamespace)
	assert.Equal(t, 1, reg.Count())
}

func TestRegister_EmptyName(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	err := reg.Register(model.NewNamespace(""))
	require.ErrorIs(t, err, registry.ErrEmptyNamespaceName)
}

func TestNamespace_AbsentIsEmptyNotError(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	ns := reg.Namespace("missing")

	assert.True(t, ns.IsEmpty())
	assert.Equal(t, "missing", ns.Name())
}

func TestNamesCountReset(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Register(converters()))
	require.NoError(t, reg.Register(model.NewNamespace("appenders",
		model.Descriptor{Name: "console", Type: reflect.TypeOf(upperConverter{})},
	)))

	assert.ElementsMatch(t, []string{"converters", "appenders"}, reg.Names())
	assert.Equal(t, 2, reg.Count())

	reg.Reset()
	assert.Zero(t, reg.Count())
	assert.Empty(t, reg.Names())
	assert.True(t, reg.Namespace("converters").IsEmpty())
}
