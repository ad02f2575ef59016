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

package factory

import (
	"errors"
	"strconv"
	"strings"

	"dirpx.dev/injx/key"
)

var (
	// ErrUnsupportedKey is the sentinel wrapped by UnsupportedKeyError.
	ErrUnsupportedKey = errors.New("injx(factory): no resolver supports key")
	// ErrCycle is the sentinel wrapped by CycleError.
	ErrCycle = errors.New("injx(factory): resolution cycle detected")
	// ErrDepthExceeded is the sentinel wrapped by DepthError.
	ErrDepthExceeded = errors.New("injx(factory): resolution depth exceeded")
	// ErrDuplicateBinding is the sentinel wrapped by DuplicateBindingError.
	ErrDuplicateBinding = errors.New("injx(factory): conflicting binding registration")
	// ErrNilBinding is returned when Bind is called with a nil provider.
	ErrNilBinding = errors.New("injx(factory): nil binding provider")
	// ErrNilProvider is the sentinel wrapped by NilProviderError.
	ErrNilProvider = errors.New("injx(factory): resolver returned nil provider")
)

// UnsupportedKeyError reports that no resolver in the chain claims a key.
// It indicates a configuration or programming error and is never retried.
type UnsupportedKeyError struct{ Key key.Key }

// Error implements the error interface.
func (e *UnsupportedKeyError) Error() string {
	// Example: injx(factory): no resolver supports key: Key{type=model.Namespace}
	return ErrUnsupportedKey.Error() + ": " + e.Key.String()
}

// Unwrap supports errors.Is(err, ErrUnsupportedKey).
func (e *UnsupportedKeyError) Unwrap() error { return ErrUnsupportedKey }

// CycleError reports that a key was re-entered on its own in-progress
// resolution path. Path holds the full chain, outermost first, with the
// offending key repeated last.
type CycleError struct{ Path []key.Key }

// Error implements the error interface.
func (e *CycleError) Error() string {
	var b strings.Builder
	b.WriteString(ErrCycle.Error())
	b.WriteString(": ")
	writeChain(&b, e.Path)
	return b.String()
}

// Unwrap supports errors.Is(err, ErrCycle).
func (e *CycleError) Unwrap() error { return ErrCycle }

// DepthError reports that a resolution path exceeded the configured depth
// guard without a direct key repetition.
type DepthError struct {
	Path  []key.Key
	Limit int
}

// Error implements the error interface.
func (e *DepthError) Error() string {
	var b strings.Builder
	b.WriteString(ErrDepthExceeded.Error())
	b.WriteString(" (limit ")
	b.WriteString(strconv.Itoa(e.Limit))
	b.WriteString("): ")
	writeChain(&b, e.Path)
	return b.String()
}

// Unwrap supports errors.Is(err, ErrDepthExceeded).
func (e *DepthError) Unwrap() error { return ErrDepthExceeded }

// DuplicateBindingError reports a second Bind call for the same key identity.
type DuplicateBindingError struct{ Key key.Key }

// Error implements the error interface.
func (e *DuplicateBindingError) Error() string {
	return ErrDuplicateBinding.Error() + ": " + e.Key.String()
}

// Unwrap supports errors.Is(err, ErrDuplicateBinding).
func (e *DuplicateBindingError) Unwrap() error { return ErrDuplicateBinding }

// NilProviderError reports a resolver that claimed support but produced a
// nil provider without an error.
type NilProviderError struct{ Key key.Key }

// Error implements the error interface.
func (e *NilProviderError) Error() string {
	return ErrNilProvider.Error() + ": " + e.Key.String()
}

// Unwrap supports errors.Is(err, ErrNilProvider).
func (e *NilProviderError) Unwrap() error { return ErrNilProvider }

// writeChain renders "K1 -> K2 -> K3".
func writeChain(b *strings.Builder, path []key.Key) {
	for i, k := range path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(k.String())
	}
}
