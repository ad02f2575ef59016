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

// Package scan is the startup collaborator that populates a namespace
// registry from a statically assembled descriptor table.
//
// There is no runtime annotation scanning: plugin types are registered
// explicitly against the Scanner under stable names, and a YAML table maps
// namespaces to (plugin name, type name) entries. Populating is idempotent,
// so re-running a scan with the same table is harmless.
package scan

import (
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/injx/apis"
	"dirpx.dev/injx/key"
	"dirpx.dev/injx/model"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided to Provide.
	ErrNilType = errors.New("injx(scan): nil reflect.Type provided")
	// ErrEmptyTypeName is returned when a type is provided under an empty name.
	ErrEmptyTypeName = errors.New("injx(scan): empty type name provided")
	// ErrConflictingType indicates an attempt to re-provide a type name
	// with a different type.
	ErrConflictingType = errors.New("injx(scan): conflicting type registration")
	// ErrUnknownType is the sentinel wrapped by UnknownTypeError.
	ErrUnknownType = errors.New("injx(scan): descriptor references unknown type")
	// ErrEmptyPluginName is returned for table entries without a name.
	ErrEmptyPluginName = errors.New("injx(scan): empty plugin name in table")
)

// UnknownTypeError reports a table entry whose type name has no provided
// Go type.
type UnknownTypeError struct {
	Namespace string
	Plugin    string
	TypeName  string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return ErrUnknownType.Error() + ": " + strconv.Quote(e.TypeName) +
		" (namespace " + strconv.Quote(e.Namespace) +
		", plugin " + strconv.Quote(e.Plugin) + ")"
}

// Unwrap supports errors.Is(err, ErrUnknownType).
func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// Table is the YAML shape of a descriptor table.
type Table struct {
	Namespaces []NamespaceTable `yaml:"namespaces"`
}

// NamespaceTable groups the plugin entries of one namespace.
type NamespaceTable struct {
	Name    string       `yaml:"name"`
	Plugins []TableEntry `yaml:"plugins"`
}

// TableEntry is one plugin row: a stable name, the provided type name it
// refers to, and optional lookup aliases.
type TableEntry struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// Scanner maps type names to Go types and turns descriptor tables into
// registered namespaces. Provide all plugin types before loading tables;
// the Scanner itself is not safe for concurrent mutation.
type Scanner struct {
	types map[string]reflect.Type
}

// New constructs an empty Scanner.
func New() *Scanner {
	return &Scanner{types: make(map[string]reflect.Type)}
}

// Provide registers t under name for table lookups. Re-providing the same
// (name, type) pair is idempotent; a different type is a conflict.
func (s *Scanner) Provide(name string, t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	name = strings.ToLower(name)
	if name == "" {
		return ErrEmptyTypeName
	}
	if old, ok := s.types[name]; ok {
		if old == t {
			return nil
		}
		return ErrConflictingType
	}
	s.types[name] = t
	return nil
}

// ProvideOf registers T under its short type name ("pkg.Type").
func ProvideOf[T any](s *Scanner) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return s.Provide(key.TypeName(t), t)
}

// Load decodes a YAML descriptor table and materializes its namespaces.
// Every entry's type name must have been provided beforehand.
func (s *Scanner) Load(r io.Reader) ([]model.Namespace, error) {
	var table Table
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		return nil, err
	}

	out := make([]model.Namespace, 0, len(table.Namespaces))
	for _, nt := range table.Namespaces {
		descs := make([]model.Descriptor, 0, len(nt.Plugins))
		for _, entry := range nt.Plugins {
			if entry.Name == "" {
				return nil, ErrEmptyPluginName
			}
			t, ok := s.types[strings.ToLower(entry.Type)]
			if !ok {
				return nil, &UnknownTypeError{
					Namespace: nt.Name,
					Plugin:    entry.Name,
					TypeName:  entry.Type,
				}
			}
			descs = append(descs, model.Descriptor{
				Name:    entry.Name,
				Type:    t,
				Aliases: entry.Aliases,
			})
		}
		out = append(out, model.NewNamespace(nt.Name, descs...))
	}
	return out, nil
}

// Populate loads a table and registers every namespace with reg. The
// registry's idempotent registration makes repeated runs with the same
// table safe; conflicting tables surface the registry's conflict error.
func (s *Scanner) Populate(r io.Reader, reg apis.NamespaceRegistry) error {
	namespaces, err := s.Load(r)
	if err != nil {
		return err
	}
	for _, ns := range namespaces {
		if err := reg.Register(ns); err != nil {
			return err
		}
	}
	return nil
}
