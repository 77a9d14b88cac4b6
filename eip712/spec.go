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
	"math/big"
	"strconv"
	"strings"

	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/intconv"
	"github.com/icon-project/btp2/common/log"
)

type FieldKind int

const (
	TCustom FieldKind = iota
	TInt
	TUint
	TAddress
	TBool
	TString
	TFixedBytes
	TBytes
)

var (
	specLogger = log.New()
)

func init() {
	specLogger.SetLevel(log.DebugLevel)
}

func (k FieldKind) String() string {
	return fieldKindNames[k]
}

func (k FieldKind) hasSize() bool {
	switch k {
	case TInt, TUint, TFixedBytes:
		return true
	default:
		return false
	}
}

var (
	fieldKindNames = []string{"Custom", "Int", "Uint", "Address", "Bool", "String", "FixedBytes", "Bytes"}
)

// FieldType is the type part of a field definition. Size is the value byte
// size of TInt, TUint and TFixedBytes, Name is the referenced struct name of
// TCustom. Both are ignored for the other kinds.
type FieldType struct {
	Kind FieldKind
	Size uint8
	Name string
}

func NewCustomType(name string) FieldType {
	return FieldType{Kind: TCustom, Name: name}
}

func NewIntType(size uint8) FieldType {
	return FieldType{Kind: TInt, Size: size}
}

func NewUintType(size uint8) FieldType {
	return FieldType{Kind: TUint, Size: size}
}

func NewAddressType() FieldType {
	return FieldType{Kind: TAddress}
}

func NewBoolType() FieldType {
	return FieldType{Kind: TBool}
}

func NewStringType() FieldType {
	return FieldType{Kind: TString}
}

func NewFixedBytesType(size uint8) FieldType {
	return FieldType{Kind: TFixedBytes, Size: size}
}

func NewBytesType() FieldType {
	return FieldType{Kind: TBytes}
}

// TypeString returns the solidity type name used in signatures,
// int and uint sizes are in bits, fixed bytes sizes in bytes.
func (t FieldType) TypeString() string {
	switch t.Kind {
	case TCustom:
		return t.Name
	case TInt:
		return "int" + strconv.Itoa(int(t.Size)*8)
	case TUint:
		return "uint" + strconv.Itoa(int(t.Size)*8)
	case TAddress:
		return "address"
	case TBool:
		return "bool"
	case TString:
		return "string"
	case TFixedBytes:
		return "bytes" + strconv.Itoa(int(t.Size))
	default:
		return "bytes"
	}
}

// BaseNameAndSize returns the schema primitive name with the value byte size,
// size is negative if the kind has none.
func (t FieldType) BaseNameAndSize() (string, int) {
	switch t.Kind {
	case TCustom:
		return t.Name, -1
	case TInt:
		return "int", int(t.Size)
	case TUint:
		return "uint", int(t.Size)
	case TAddress:
		return "address", -1
	case TBool:
		return "bool", -1
	case TString:
		return "string", -1
	case TFixedBytes:
		return "bytes", int(t.Size)
	default:
		return "bytes", -1
	}
}

type ArrayKind int

const (
	ArrayDynamic ArrayKind = iota
	ArrayFixed
)

// ArrayLevel is one level of an array suffix, Size applies to ArrayFixed only.
type ArrayLevel struct {
	Kind ArrayKind
	Size uint8
}

func DynamicLevel() ArrayLevel {
	return ArrayLevel{Kind: ArrayDynamic}
}

func FixedLevel(size uint8) ArrayLevel {
	return ArrayLevel{Kind: ArrayFixed, Size: size}
}

func (l ArrayLevel) TypeString() string {
	if l.Kind == ArrayFixed {
		return "[" + strconv.Itoa(int(l.Size)) + "]"
	}
	return "[]"
}

// FieldDefinition is a single field of a struct definition. ArrayLevels are
// in declaration order, the last level is the outermost suffix.
type FieldDefinition struct {
	Type        FieldType
	Name        string
	ArrayLevels []ArrayLevel
}

func NewFieldDefinition(t FieldType, name string, levels ...ArrayLevel) FieldDefinition {
	return FieldDefinition{
		Type:        t,
		Name:        name,
		ArrayLevels: levels,
	}
}

// IsStruct reports whether the field references a custom struct type,
// regardless of array levels.
func (d FieldDefinition) IsStruct() bool {
	return d.Type.Kind == TCustom
}

func (d FieldDefinition) IsArray() bool {
	return len(d.ArrayLevels) > 0
}

func (d FieldDefinition) IsPrimitive() bool {
	return !d.IsArray() && !d.IsStruct()
}

func (d FieldDefinition) TypeString() string {
	s := d.Type.TypeString()
	for _, l := range d.ArrayLevels {
		s += l.TypeString()
	}
	return s
}

type Integer string

func (i Integer) normalize() string {
	s := string(i)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if strings.HasPrefix(s, "0x") {
		s = s[2:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

func (i Integer) AsUint64() (uint64, error) {
	return strconv.ParseUint(i.normalize(), 16, 64)
}

func (i Integer) AsInt64() (int64, error) {
	return strconv.ParseInt(i.normalize(), 16, 64)
}

func (i Integer) AsBigInt() (*big.Int, error) {
	r, ok := new(big.Int), false
	if r, ok = r.SetString(i.normalize(), 16); !ok {
		return nil, errors.New("fail to convert big.Int")
	}
	return r, nil
}

func FromUint64(i uint64) Integer {
	return Integer("0x" + strconv.FormatUint(i, 16))
}

func FromInt64(i int64) Integer {
	return Integer(intconv.FormatBigInt(big.NewInt(i)))
}

func FromBigInt(i *big.Int) Integer {
	return Integer(intconv.FormatBigInt(i))
}

type Boolean bool
type String string
type Bytes []byte
type Address string

type Params map[string]interface{}

type KeyValue struct {
	Key   string
	Value interface{}
}

// Struct keeps decoded fields in definition order.
type Struct struct {
	Name   string
	Fields []KeyValue
}

func (s Struct) Params() Params {
	params := make(Params)
	for _, f := range s.Fields {
		params[f.Key] = f.Value
	}
	return params
}
