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

package model_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/injx/model"
)

type upperConverter struct{}
type lowerConverter struct{}

func TestZeroNamespace_IsEmpty(t *testing.T) {
	t.Parallel()

	var ns model.Namespace
	assert.True(t, ns.IsEmpty())
	assert.Zero(t, ns.Len())
	assert.Nil(t, ns.Descriptors())

	_, ok := ns.Get("anything")
	assert.False(t, ok)
}

func TestNewNamespace_OrderAndLookup(t *testing.T) {
	t.Parallel()

	ns := model.NewNamespace("converters",
		model.Descriptor{Name: "Upper", Type: reflect.TypeOf(upperConverter{})},
		model.Descriptor{Name: "lower", Type: reflect.TypeOf(lowerConverter{})},
	)

	assert.Equal(t, "converters", ns.Name())
	assert.Equal(t, 2, ns.Len())
	assert.Equal(t, []string{"upper", "lower"}, ns.Names())

	// Case-insensitive lookup.
	d, ok := ns.Get("UPPER")
	require.True(t, ok)
	assert.Equal(t, "Upper", d.Name)
	assert.Equal(t, reflect.TypeOf(upperConverter{}), d.Type)

	descs := ns.Descriptors()
	require.Len(t, descs, 2)
	assert.Equal(t, "Upper", descs[0].Name)
	assert.Equal(t, "lower", descs[1].Name)
}

func TestNewNamespace_AliasesResolve(t *testing.T) {
	t.Parallel()

	ns := model.NewNamespace("converters",
		model.Descriptor{
			Name:    "upper",
			Type:    reflect.TypeOf(upperConverter{}),
			Aliases: []string{"uppercase", "UC"},
		},
	)

	for _, name := range []string{"upper", "uppercase", "uc"} {
		d, ok := ns.Get(name)
		require.True(t, ok, "lookup %q", name)
		assert.Equal(t, "upper", d.Name)
	}

	// Aliases never count as canonical entries.
	assert.Equal(t, 1, ns.Len())
}

func TestNewNamespace_FirstRegistrationWins(t *testing.T) {
	t.Parallel()

	ns := model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(upperConverter{})},
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(lowerConverter{})},
	)

	assert.Equal(t, 1, ns.Len())
	d, ok := ns.Get("upper")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(upperConverter{}), d.Type)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(upperConverter{})},
	)
	b := model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(upperConverter{})},
	)
	c := model.NewNamespace("converters",
		model.Descriptor{Name: "upper", Type: reflect.TypeOf(lowerConverter{})},
	)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(model.NewNamespace("other")))
	assert.True(t, model.Namespace{}.Equal(model.Namespace{}))
}
