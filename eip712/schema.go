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

type SchemaKind int

const (
	SchemaPrimitive SchemaKind = iota
	SchemaArray
	SchemaStruct
)

var (
	schemaKindNames = []string{"Primitive", "Array", "Struct"}
)

func (k SchemaKind) String() string {
	return schemaKindNames[k]
}

// TypeSchema is a resolved type tree free of custom name references.
// Primitive uses Name with Size, negative when the type has none.
// Array uses Item, one node per array level. Struct uses Name with Fields in
// definition order.
type TypeSchema struct {
	Kind   SchemaKind
	Name   string
	Size   int
	Item   *TypeSchema
	Fields []SchemaField
}

type SchemaField struct {
	Name   string
	Schema *TypeSchema
}

// BuildSchema resolves name against the registry into a fresh schema tree.
// Unresolved custom references fail here.
func (r *TypeRegistry) BuildSchema(name string) (*TypeSchema, error) {
	fields, err := r.FieldDefinitions(name)
	if err != nil {
		return nil, err
	}
	schemaFields := make([]SchemaField, len(fields))
	for i, fd := range fields {
		var ts *TypeSchema
		if fd.IsStruct() {
			if ts, err = r.BuildSchema(fd.Type.Name); err != nil {
				return nil, err
			}
		} else {
			n, size := fd.Type.BaseNameAndSize()
			ts = &TypeSchema{Kind: SchemaPrimitive, Name: n, Size: size}
		}
		for range fd.ArrayLevels {
			ts = &TypeSchema{Kind: SchemaArray, Size: -1, Item: ts}
		}
		specLogger.Tracef("BuildSchema struct:%s field:%s type:%s\n", name, fd.Name, fd.TypeString())
		schemaFields[i] = SchemaField{Name: fd.Name, Schema: ts}
	}
	return &TypeSchema{Kind: SchemaStruct, Name: name, Size: -1, Fields: schemaFields}, nil
}
