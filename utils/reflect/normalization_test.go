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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uref "dirpx.dev/injx/utils/reflect"
)

type plugin struct{}

func TestBase_NamedStruct(t *testing.T) {
	t.Parallel()

	got, err := uref.Base(reflect.TypeOf(plugin{}), 8)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(plugin{}), got)
}

func TestBase_UnwrapsPointers(t *testing.T) {
	t.Parallel()

	var pp **plugin
	got, err := uref.Base(reflect.TypeOf(pp), 8)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(plugin{}), got)
}

func TestBase_MaxUnwrapLimit(t *testing.T) {
	t.Parallel()

	var pp **plugin
	// One unwrap is not enough for **plugin.
	_, err := uref.Base(reflect.TypeOf(pp), 1)
	require.ErrorIs(t, err, uref.ErrReflectNotConstructible)

	// Non-positive limits fall back to the default, which is enough.
	got, err := uref.Base(reflect.TypeOf(pp), 0)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(plugin{}), got)
}

func TestBase_Rejections(t *testing.T) {
	t.Parallel()

	_, err := uref.Base(nil, 8)
	require.ErrorIs(t, err, uref.ErrReflectNilType)

	cases := []reflect.Type{
		reflect.TypeOf([]plugin{}),
		reflect.TypeOf(map[string]plugin{}),
		reflect.TypeOf(func() {}),
		reflect.TypeOf(struct{ X int }{}),
		reflect.TypeOf((*error)(nil)).Elem(),
	}
	for _, tt := range cases {
		_, err := uref.Base(tt, 8)
		assert.ErrorIs(t, err, uref.ErrReflectNotConstructible, "type %v", tt)
	}
}
