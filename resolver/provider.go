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

package resolver

import (
	"reflect"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/key"
)

// errorType is the reflect token for the error interface.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// NewProviderResolver creates the resolver for provider-of keys: keys whose
// declared type is a nullary function returning the element type, with an
// optional trailing error result. The consumer receives a function value
// that defers the element lookup until it is called.
func NewProviderResolver() apis.FactoryResolver {
	return providerResolver{}
}

// providerResolver wraps element keys in lazily invoked function values.
type providerResolver struct{}

// Ensure providerResolver implements apis.FactoryResolver.
var _ apis.FactoryResolver = providerResolver{}

// Supports claims keys typed func() T or func() (T, error).
func (providerResolver) Supports(k key.Key) bool {
	t := k.Type()
	if t == nil || t.Kind() != reflect.Func || t.IsVariadic() || t.NumIn() != 0 {
		return false
	}
	switch t.NumOut() {
	case 1:
		return t.Out(0) != errorType
	case 2:
		return t.Out(0) != errorType && t.Out(1) == errorType
	default:
		return false
	}
}

// Resolve returns a provider producing the function value. The element key
// shares the requested key's namespace, qualifier and scope, so a
// singleton element is constructed at most once no matter how often the
// returned function is called.
func (r providerResolver) Resolve(rk key.Resolvable, _ apis.InstanceFactory) (apis.Provider, error) {
	if !r.Supports(rk.Key()) {
		return nil, ErrUnsupportedResolve
	}
	k := rk.Key()
	fnType := k.Type()
	withErr := fnType.NumOut() == 2
	elemKey := key.MustNew(fnType.Out(0),
		key.InNamespace(k.Namespace()),
		key.Qualified(k.Qualifier()),
		key.WithScope(k.Scope()))

	return func(factory apis.InstanceFactory) (any, error) {
		fn := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
			inst, err := factory.Instance(elemKey)

			out := reflect.New(fnType.Out(0)).Elem()
			if err == nil && inst != nil {
				out.Set(reflect.ValueOf(inst))
			}
			if !withErr {
				if err != nil {
					// Without an error result there is no channel to
					// surface the failure; fail loudly.
					panic(err)
				}
				return []reflect.Value{out}
			}

			errOut := reflect.New(errorType).Elem()
			if err != nil {
				errOut.Set(reflect.ValueOf(err))
			}
			return []reflect.Value{out, errOut}
		})
		return fn.Interface(), nil
	}, nil
}
