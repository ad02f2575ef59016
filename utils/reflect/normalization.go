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

// Package reflect provides type normalization helpers for reflective
// plugin construction.
package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("injx(reflect): nil reflect.Type provided")
	// ErrReflectNotConstructible indicates that the provided type (after
	// unwrapping pointers) is not a named struct and cannot be
	// zero-constructed.
	ErrReflectNotConstructible = errors.New("injx(reflect): type is not a constructible named struct")
)

// fallbackMaxUnwrap bounds pointer unwrapping when the caller passes a
// non-positive limit.
const fallbackMaxUnwrap = 8

// Base unwraps pointers up to maxUnwrap levels and returns the nearest
// named struct type, or an error if none is found within the limit.
//
// Unwrapping policy:
//   - ptr -> Elem()
//   - named struct -> return it
//   - anything else (interface, func, slice, map, anonymous struct) ->
//     ErrReflectNotConstructible.
//
// If maxUnwrap <= 0, a small default limit is used.
func Base(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = fallbackMaxUnwrap
	}

	for i := 0; t != nil && i <= maxUnwrap; i++ {
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
			continue
		}
		if t.Kind() == reflect.Struct && t.Name() != "" {
			return t, nil
		}
		return nil, ErrReflectNotConstructible
	}
	return nil, ErrReflectNotConstructible
}
