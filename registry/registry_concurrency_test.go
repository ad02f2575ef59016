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
	"runtime"
	"strconv"
	"sync"
	"testing"

	"dirpx.dev/injx/model"
	"dirpx.dev/injx/registry"
)

// A few named plugin types to avoid anonymous/unnamed pitfalls.
type P0 struct{}
type P1 struct{}
type P2 struct{}
type P3 struct{}
type P4 struct{}

// TestConcurrentRegisterAndLookup verifies that Register/Namespace/Names/
// Count are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New()

	types := []reflect.Type{
		reflect.TypeOf(P0{}), reflect.TypeOf(P1{}), reflect.TypeOf(P2{}),
		reflect.TypeOf(P3{}), reflect.TypeOf(P4{}),
	}
	namespaces := make([]model.Namespace, len(types))
	for i, tt := range types {
		namespaces[i] = model.NewNamespace("ns"+strconv.Itoa(i),
			model.Descriptor{Name: "plugin", Type: tt},
		)
	}

	// Register once (sequential) to establish baseline.
	for _, ns := range namespaces {
		if err := reg.Register(ns); err != nil {
			t.Fatalf("register %s: %v", ns.Name(), err)
		}
	}

	// Hammer with concurrent lookups and idempotent re-registrations.
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				ns := reg.Namespace(namespaces[i%len(namespaces)].Name())
				if ns.IsEmpty() {
					t.Errorf("lookup failed for %s", ns.Name())
					return
				}
				_ = reg.Count()
				_ = reg.Names()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(namespaces)
				_ = reg.Register(namespaces[j]) // must be safe & idempotent
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(namespaces) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(namespaces))
	}
	if got := len(reg.Names()); got != len(namespaces) {
		t.Fatalf("names mismatch: got %d want %d", got, len(namespaces))
	}
}
