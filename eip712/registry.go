/*
 * Copyright 2023 ICON Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package eip712

import (
	"fmt"
	"sort"
	"strings"
)

type RegistryBuilder struct {
	structs map[string][]FieldDefinition
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		structs: make(map[string][]FieldDefinition),
	}
}

// Define adds a struct definition, replacing a previous definition of the
// same name. Referenced custom types are not checked until the registry is
// used.
func (b *RegistryBuilder) Define(name string, fields ...FieldDefinition) *RegistryBuilder {
	copied := make([]FieldDefinition, len(fields))
	copy(copied, fields)
	b.structs[name] = copied
	return b
}

// Build seals the collected definitions into a read-only registry and resets
// the builder.
func (b *RegistryBuilder) Build() *TypeRegistry {
	names := make([]string, 0, len(b.structs))
	for name, fields := range b.structs {
		names = append(names, name)
		specLogger.Tracef("TypeRegistry build name:%s fields:%d\n", name, len(fields))
	}
	sort.Strings(names)
	r := &TypeRegistry{
		structs: b.structs,
		names:   names,
	}
	b.structs = make(map[string][]FieldDefinition)
	return r
}

// TypeRegistry is an immutable name to struct definition table.
type TypeRegistry struct {
	structs map[string][]FieldDefinition
	names   []string
}

// StructNames returns the defined names in lexicographic order.
func (r *TypeRegistry) StructNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

func (r *TypeRegistry) FieldDefinitions(name string) ([]FieldDefinition, error) {
	fields, ok := r.structs[name]
	if !ok {
		return nil, NewNotFoundTypeError(name)
	}
	return fields, nil
}

// OwnTypeString returns the signature of name alone,
// Name(type1 field1,type2 field2,...).
func (r *TypeRegistry) OwnTypeString(name string) (string, error) {
	fields, err := r.FieldDefinitions(name)
	if err != nil {
		return "", err
	}
	members := make([]string, len(fields))
	for i, f := range fields {
		members[i] = f.TypeString() + " " + f.Name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(members, ",")), nil
}

// SubCustomTypes returns every custom type reachable from name, sorted
// lexicographically without duplicates. Cyclic definitions are the caller's
// responsibility.
func (r *TypeRegistry) SubCustomTypes(name string) ([]string, error) {
	subs, err := r.collectSubCustomTypes(nil, name)
	if err != nil {
		return nil, err
	}
	sort.Strings(subs)
	n := 0
	for i := 0; i < len(subs); i++ {
		if n == 0 || subs[n-1] != subs[i] {
			subs[n] = subs[i]
			n++
		}
	}
	return subs[:n], nil
}

func (r *TypeRegistry) collectSubCustomTypes(subs []string, name string) ([]string, error) {
	fields, err := r.FieldDefinitions(name)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if !f.IsStruct() {
			continue
		}
		sub := f.Type.Name
		if subs, err = r.collectSubCustomTypes(subs, sub); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// FullTypeString returns the signature of name followed by the signatures of
// its sub custom types, the canonical encodeType input of EIP-712.
func (r *TypeRegistry) FullTypeString(name string) (string, error) {
	full, err := r.OwnTypeString(name)
	if err != nil {
		return "", err
	}
	subs, err := r.SubCustomTypes(name)
	if err != nil {
		return "", err
	}
	for _, sub := range subs {
		own, err := r.OwnTypeString(sub)
		if err != nil {
			return "", err
		}
		full += own
	}
	return full, nil
}

func (r *TypeRegistry) FullTypeStringMap() (map[string]string, error) {
	res := make(map[string]string, len(r.names))
	for _, name := range r.names {
		ts, err := r.FullTypeString(name)
		if err != nil {
			return nil, err
		}
		res[name] = ts
	}
	return res, nil
}
