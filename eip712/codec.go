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
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
)

const (
	abiWordSize = 32
	addressSize = common.AddressLength
)

var (
	codecLogger = log.New()
)

func init() {
	codecLogger.SetLevel(log.DebugLevel)
}

// EncodeData consumes values from vs against schema and returns the encoded
// data of one struct level, one 32 byte word per field. Struct typed fields
// and array elements are folded to their hashStruct, array fields to the
// keccak256 of their element words, so the caller still has to apply
// hashStruct to the result of the outermost struct.
func EncodeData(schema *TypeSchema, typeStrings map[string]string, vs ValueStream) ([]byte, error) {
	switch schema.Kind {
	case SchemaStruct:
		return encodeStruct(schema, typeStrings, vs)
	case SchemaArray:
		return encodeArray(schema, typeStrings, vs)
	default:
		return encodePrimitive(schema, vs)
	}
}

func encodeStruct(schema *TypeSchema, typeStrings map[string]string, vs ValueStream) ([]byte, error) {
	codecLogger.Traceln("encodeStruct name:", schema.Name, "fields:", len(schema.Fields))
	var encoded []byte
	for _, f := range schema.Fields {
		fd, err := EncodeData(f.Schema, typeStrings, vs)
		if err != nil {
			return nil, err
		}
		if f.Schema.Kind == SchemaStruct {
			if fd, err = hashStructByName(typeStrings, f.Schema.Name, fd); err != nil {
				return nil, err
			}
		}
		encoded = append(encoded, fd...)
	}
	return encoded, nil
}

func encodeArray(schema *TypeSchema, typeStrings map[string]string, vs ValueStream) ([]byte, error) {
	count, err := nextArrayCount(vs)
	if err != nil {
		return nil, err
	}
	codecLogger.Traceln("encodeArray count:", count)
	var arr []byte
	for i := 0; i < count; i++ {
		ed, err := EncodeData(schema.Item, typeStrings, vs)
		if err != nil {
			return nil, err
		}
		if schema.Item.Kind == SchemaStruct {
			if ed, err = hashStructByName(typeStrings, schema.Item.Name, ed); err != nil {
				return nil, err
			}
		}
		arr = append(arr, ed...)
	}
	return crypto.Keccak256(arr), nil
}

func encodePrimitive(schema *TypeSchema, vs ValueStream) ([]byte, error) {
	raw, err := nextValue(vs)
	if err != nil {
		return nil, err
	}
	codecLogger.Traceln("encodePrimitive type:", schema.Name, "size:", schema.Size, "len:", len(raw))
	switch schema.Name {
	case "bool":
		b, err := parseBool(raw)
		if err != nil {
			return nil, err
		}
		if b {
			return common.LeftPadBytes([]byte{1}, abiWordSize), nil
		}
		return make([]byte, abiWordSize), nil
	case "int":
		if schema.Size < 0 {
			return nil, ErrorCodeMissingSize.New("fail encodePrimitive int, lack of size")
		}
		v, err := parseSigned(raw, schema.Size)
		if err != nil {
			return nil, err
		}
		return math.U256Bytes(v), nil
	case "uint":
		if schema.Size < 0 {
			return nil, ErrorCodeMissingSize.New("fail encodePrimitive uint, lack of size")
		}
		v, err := parseUnsigned(raw, schema.Size)
		if err != nil {
			return nil, err
		}
		return math.PaddedBigBytes(v, abiWordSize), nil
	case "address":
		if len(raw) != addressSize {
			return nil, ErrorCodeLengthMismatch.Errorf("invalid address len:%d", len(raw))
		}
		return common.LeftPadBytes(raw, abiWordSize), nil
	case "bytes":
		if schema.Size >= 0 {
			if err = validateValueSize(schema.Name, schema.Size); err != nil {
				return nil, err
			}
			if len(raw) != schema.Size {
				return nil, ErrorCodeLengthMismatch.Errorf("invalid fixed bytes len:%d expected:%d",
					len(raw), schema.Size)
			}
			return common.RightPadBytes(raw, abiWordSize), nil
		}
		return crypto.Keccak256(raw), nil
	case "string":
		return crypto.Keccak256(raw), nil
	default:
		return nil, errors.Errorf("fail encodePrimitive, not supported %s", schema.Name)
	}
}

func hashStructByName(typeStrings map[string]string, name string, encoded []byte) ([]byte, error) {
	ts, ok := typeStrings[name]
	if !ok {
		return nil, NewNotFoundTypeError(name)
	}
	return HashStruct(ts, encoded).Bytes(), nil
}

// DecodeValue consumes values from vs against schema and rebuilds the typed
// value tree, Struct for structs, []interface{} for arrays and the package
// value types for primitives.
func DecodeValue(schema *TypeSchema, vs ValueStream) (interface{}, error) {
	switch schema.Kind {
	case SchemaStruct:
		return decodeStruct(schema, vs)
	case SchemaArray:
		return decodeArray(schema, vs)
	default:
		return decodePrimitive(schema, vs)
	}
}

func decodeStruct(schema *TypeSchema, vs ValueStream) (interface{}, error) {
	codecLogger.Traceln("decodeStruct name:", schema.Name, "fields:", len(schema.Fields))
	fields := make([]KeyValue, len(schema.Fields))
	for i, f := range schema.Fields {
		fv, err := DecodeValue(f.Schema, vs)
		if err != nil {
			return nil, err
		}
		fields[i] = KeyValue{Key: f.Name, Value: fv}
	}
	return Struct{
		Name:   schema.Name,
		Fields: fields,
	}, nil
}

func decodeArray(schema *TypeSchema, vs ValueStream) (interface{}, error) {
	count, err := nextArrayCount(vs)
	if err != nil {
		return nil, err
	}
	elements := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		e, err := DecodeValue(schema.Item, vs)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}

func decodePrimitive(schema *TypeSchema, vs ValueStream) (interface{}, error) {
	raw, err := nextValue(vs)
	if err != nil {
		return nil, err
	}
	codecLogger.Traceln("decodePrimitive type:", schema.Name, "size:", schema.Size, "len:", len(raw))
	switch schema.Name {
	case "bool":
		b, err := parseBool(raw)
		if err != nil {
			return nil, err
		}
		return Boolean(b), nil
	case "int":
		if schema.Size < 0 {
			return nil, ErrorCodeMissingSize.New("fail decodePrimitive int, lack of size")
		}
		v, err := parseSigned(raw, schema.Size)
		if err != nil {
			return nil, err
		}
		return FromBigInt(v), nil
	case "uint":
		v, err := parseUnsigned(raw, schema.Size)
		if err != nil {
			return nil, err
		}
		return FromBigInt(v), nil
	case "address":
		if len(raw) != addressSize {
			return nil, ErrorCodeLengthMismatch.Errorf("invalid address len:%d", len(raw))
		}
		return Address(hexutil.Encode(raw)), nil
	case "bytes":
		if schema.Size >= 0 {
			if err = validateValueSize(schema.Name, schema.Size); err != nil {
				return nil, err
			}
			if len(raw) != schema.Size {
				return nil, ErrorCodeLengthMismatch.Errorf("invalid fixed bytes len:%d expected:%d",
					len(raw), schema.Size)
			}
		}
		return Bytes(raw), nil
	case "string":
		s, err := parseString(raw)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	default:
		return nil, errors.Errorf("fail decodePrimitive, not supported %s", schema.Name)
	}
}

// DisplayField is one line of review output, a dotted path free field name
// with the rendered value. Array elements repeat the field name.
type DisplayField struct {
	Name  string
	Value string
}

// DecodeDisplayFields consumes values from vs against schema and flattens
// them into display fields in stream order.
func DecodeDisplayFields(schema *TypeSchema, vs ValueStream) ([]DisplayField, error) {
	return decodeDisplay(schema, vs, "")
}

func decodeDisplay(schema *TypeSchema, vs ValueStream, name string) ([]DisplayField, error) {
	switch schema.Kind {
	case SchemaStruct:
		var fields []DisplayField
		for _, f := range schema.Fields {
			dfs, err := decodeDisplay(f.Schema, vs, f.Name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, dfs...)
		}
		return fields, nil
	case SchemaArray:
		count, err := nextArrayCount(vs)
		if err != nil {
			return nil, err
		}
		var fields []DisplayField
		for i := 0; i < count; i++ {
			dfs, err := decodeDisplay(schema.Item, vs, name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, dfs...)
		}
		return fields, nil
	default:
		value, err := displayPrimitive(schema, vs)
		if err != nil {
			return nil, err
		}
		return []DisplayField{{Name: name, Value: value}}, nil
	}
}

func displayPrimitive(schema *TypeSchema, vs ValueStream) (string, error) {
	raw, err := nextValue(vs)
	if err != nil {
		return "", err
	}
	switch schema.Name {
	case "bool":
		b, err := parseBool(raw)
		if err != nil {
			return "", err
		}
		if b {
			return "true", nil
		}
		return "false", nil
	case "int":
		if schema.Size < 0 {
			return "", ErrorCodeMissingSize.New("fail displayPrimitive int, lack of size")
		}
		v, err := parseSigned(raw, schema.Size)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	case "uint":
		v, err := parseUnsigned(raw, schema.Size)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	case "address":
		if len(raw) != addressSize {
			return "", ErrorCodeLengthMismatch.Errorf("invalid address len:%d", len(raw))
		}
		return hexutil.Encode(raw), nil
	case "bytes":
		if schema.Size >= 0 {
			if err = validateValueSize(schema.Name, schema.Size); err != nil {
				return "", err
			}
			if len(raw) != schema.Size {
				return "", ErrorCodeLengthMismatch.Errorf("invalid fixed bytes len:%d expected:%d",
					len(raw), schema.Size)
			}
		}
		return hexutil.Encode(raw), nil
	case "string":
		return parseString(raw)
	default:
		return "", errors.Errorf("fail displayPrimitive, not supported %s", schema.Name)
	}
}

func nextValue(vs ValueStream) ([]byte, error) {
	raw, ok := vs.Next()
	if !ok {
		return nil, ErrorCodeStreamExhausted.New("exhausted value stream")
	}
	return raw, nil
}

func nextArrayCount(vs ValueStream) (int, error) {
	raw, err := nextValue(vs)
	if err != nil {
		return 0, err
	}
	if len(raw) != 1 {
		return 0, ErrorCodeLengthMismatch.Errorf("invalid array count len:%d", len(raw))
	}
	return int(raw[0]), nil
}

func parseBool(raw []byte) (bool, error) {
	if len(raw) < 1 {
		return false, ErrorCodeLengthMismatch.New("invalid bool len:0")
	}
	return raw[0] == 1, nil
}

func parseString(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrorCodeEncoding.New("invalid utf-8 string")
	}
	return string(raw), nil
}

func validateValueSize(name string, size int) error {
	if size < 1 || size > abiWordSize {
		return ErrorCodeLengthMismatch.Errorf("invalid %s size:%d", name, size)
	}
	return nil
}

// parseSigned reads raw as a big-endian two's complement value of the
// declared byte size. Shorter raws are zero extended before the sign bit is
// taken, so they are always non-negative.
func parseSigned(raw []byte, size int) (*big.Int, error) {
	if err := validateValueSize("int", size); err != nil {
		return nil, err
	}
	if len(raw) > size {
		return nil, ErrorCodeLengthMismatch.Errorf("invalid int len:%d expected:%d", len(raw), size)
	}
	padded := make([]byte, size)
	copy(padded[size-len(raw):], raw)
	v := new(big.Int).SetBytes(padded)
	if padded[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(common.Big1, uint(size)*8))
	}
	return v, nil
}

// parseUnsigned reads raw as a big-endian unsigned value. A negative size
// skips the declared size check, the word size still caps the length.
func parseUnsigned(raw []byte, size int) (*big.Int, error) {
	if size >= 0 {
		if err := validateValueSize("uint", size); err != nil {
			return nil, err
		}
		if len(raw) > size {
			return nil, ErrorCodeLengthMismatch.Errorf("invalid uint len:%d expected:%d", len(raw), size)
		}
	} else if len(raw) > abiWordSize {
		return nil, ErrorCodeLengthMismatch.Errorf("invalid uint len:%d", len(raw))
	}
	return new(big.Int).SetBytes(raw), nil
}
