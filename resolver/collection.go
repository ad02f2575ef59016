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
	"dirpx.dev/injx/model"
)

// NewCollectionResolver creates the resolver for collection-of keys:
// slice-typed keys scoped to a namespace. It resolves one instance per
// descriptor whose plugin type is assignable to the slice element type,
// in descriptor registration order.
func NewCollectionResolver() apis.FactoryResolver {
	return collectionResolver{}
}

// collectionResolver materializes plugin namespaces into typed slices.
type collectionResolver struct{}

// Ensure collectionResolver implements apis.FactoryResolver.
var _ apis.FactoryResolver = collectionResolver{}

// Supports claims slice-typed keys with a non-empty namespace.
func (collectionResolver) Supports(k key.Key) bool {
	return k.Type() != nil && k.Type().Kind() == reflect.Slice && k.Namespace() != ""
}

// Resolve returns a provider that looks the namespace up (through the
// factory, so the namespace resolver and registry binding apply) and
// resolves every assignable descriptor via nested lookups.
func (r collectionResolver) Resolve(rk key.Resolvable, _ apis.InstanceFactory) (apis.Provider, error) {
	if !r.Supports(rk.Key()) {
		return nil, ErrUnsupportedResolve
	}
	k := rk.Key()
	namespace := k.Namespace()
	sliceType := k.Type()
	elemType := sliceType.Elem()

	return func(factory apis.InstanceFactory) (any, error) {
		nsKey := key.MustNew(namespaceType, key.InNamespace(namespace))
		v, err := factory.Instance(nsKey)
		if err != nil {
			return nil, err
		}
		ns := v.(model.Namespace)

		out := reflect.MakeSlice(sliceType, 0, ns.Len())
		for _, d := range ns.Descriptors() {
			if d.Type == nil || !d.Type.AssignableTo(elemType) {
				continue
			}
			elemKey := key.MustNew(d.Type,
				key.InNamespace(namespace),
				key.Qualified(d.Name),
				key.WithScope(k.Scope()))
			inst, err := factory.Instance(elemKey)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, reflect.ValueOf(inst))
		}
		return out.Interface(), nil
	}, nil
}
