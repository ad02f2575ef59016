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

// Package key defines the identity model of the injx resolution runtime.
//
// A Key names a requested instance by (declared type, namespace, qualifier).
// Keys are immutable value types: once constructed they are never mutated and
// may be held as map keys for the lifetime of the process. Identity is
// structural over exactly those three fields; the Scope policy a Key carries
// influences caching but never identity.
package key

import (
	"errors"
	"path"
	"reflect"
	"strings"
)

var (
	// ErrNilType is returned when a Key is constructed without a type.
	ErrNilType = errors.New("injx(key): nil reflect.Type provided")
)

// Scope selects the caching policy applied to instances resolved for a Key.
type Scope uint8

const (
	// Singleton caches the first resolved instance for the process lifetime.
	Singleton Scope = iota
	// Prototype re-invokes the cached provider on every lookup.
	Prototype
)

// String returns the lower-case scope name.
func (s Scope) String() string {
	switch s {
	case Prototype:
		return "prototype"
	default:
		return "singleton"
	}
}

// ID is the comparable identity of a Key: the three fields that participate
// in equality and hashing. Use it as a map key; never compare Keys with ==
// directly, since Scope would leak into the comparison.
type ID struct {
	// Type is the declared type of the requested instance.
	Type reflect.Type
	// Namespace scopes the request to a plugin namespace ("" = unscoped).
	Namespace string
	// Qualifier discriminates between same-typed requests ("" = unqualified).
	Qualifier string
}

// String renders the identity for error messages and diagnostics.
func (id ID) String() string {
	var b strings.Builder
	b.WriteString("Key{type=")
	b.WriteString(TypeName(id.Type))
	if id.Namespace != "" {
		b.WriteString(", namespace=")
		b.WriteString(id.Namespace)
	}
	if id.Qualifier != "" {
		b.WriteString(", qualifier=")
		b.WriteString(id.Qualifier)
	}
	b.WriteByte('}')
	return b.String()
}

// Key is the immutable identity of a requested instance.
//
// The zero Key is invalid (nil type); construct Keys via New, MustNew or Of.
type Key struct {
	typ       reflect.Type
	namespace string
	qualifier string
	scope     Scope
}

// Option mutates a Key during construction.
type Option func(*Key)

// InNamespace scopes the Key to the named plugin namespace.
func InNamespace(namespace string) Option {
	return func(k *Key) { k.namespace = namespace }
}

// Qualified sets the Key's qualifier (e.g., a plugin name).
func Qualified(qualifier string) Option {
	return func(k *Key) { k.qualifier = qualifier }
}

// WithScope sets the Key's caching policy.
func WithScope(s Scope) Option {
	return func(k *Key) { k.scope = s }
}

// New constructs a Key for the declared type t.
// The namespace and qualifier default to empty; the scope defaults to
// Singleton. A nil type is rejected with ErrNilType.
func New(t reflect.Type, opts ...Option) (Key, error) {
	if t == nil {
		return Key{}, ErrNilType
	}
	k := Key{typ: t}
	for _, opt := range opts {
		opt(&k)
	}
	return k, nil
}

// MustNew is New but panics on a nil type. Intended for package-level keys.
func MustNew(t reflect.Type, opts ...Option) Key {
	k, err := New(t, opts...)
	if err != nil {
		panic(err)
	}
	return k
}

// Of constructs a Key whose declared type is T. It works for interface
// types as well as concrete ones.
func Of[T any](opts ...Option) Key {
	return MustNew(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// Type returns the declared type of the requested instance.
func (k Key) Type() reflect.Type { return k.typ }

// Namespace returns the namespace the Key is scoped to ("" = unscoped).
func (k Key) Namespace() string { return k.namespace }

// Qualifier returns the Key's qualifier ("" = unqualified).
func (k Key) Qualifier() string { return k.qualifier }

// Scope returns the caching policy the Key carries.
func (k Key) Scope() Scope { return k.scope }

// ID returns the comparable identity triple of the Key.
func (k Key) ID() ID {
	return ID{Type: k.typ, Namespace: k.namespace, Qualifier: k.qualifier}
}

// Equal reports structural equality over (type, namespace, qualifier).
// Scope does not participate.
func (k Key) Equal(other Key) bool { return k.ID() == other.ID() }

// IsValid reports whether the Key carries a declared type.
func (k Key) IsValid() bool { return k.typ != nil }

// String renders the Key for error messages and diagnostics.
func (k Key) String() string {
	if k.typ == nil {
		return "Key{type=<nil>}"
	}
	s := k.ID().String()
	if k.scope != Singleton {
		s = s[:len(s)-1] + ", scope=" + k.scope.String() + "}"
	}
	return s
}

// TypeName renders a short, human-oriented name for t: "pkg.Type" for named
// types, the reflect rendering otherwise. Generic instantiation parameters
// are stripped.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	name := stripTypeParams(t.Name())
	if name == "" {
		return t.String()
	}
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
