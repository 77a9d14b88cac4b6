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

import "unicode/utf8"

// field definition wire layout, all lengths are single bytes:
//   typeDescriptor  bit7 array levels follow, bit6 value size follows,
//                   bit0-3 FieldKind
//   customNameLen customName   TCustom only
//   valueSize                  TInt, TUint, TFixedBytes only
//   levelCount {levelKind [levelSize]}...  when bit7 is set
//   fieldNameLen fieldName
const (
	wireFlagArray = 0x80
	wireFlagSize  = 0x40
	wireKindMask  = 0x0F

	wireLevelDynamic = 0x00
	wireLevelFixed   = 0x01

	wireMaxLen = 0xFF
)

type wireCursor struct {
	data   []byte
	offset int
}

func (c *wireCursor) readByte(segment string) (byte, error) {
	if c.offset >= len(c.data) {
		return 0, ErrorCodeMalformedWire.Errorf("unexpected end of input reading %s", segment)
	}
	b := c.data[c.offset]
	c.offset++
	return b, nil
}

func (c *wireCursor) readName(segment string) (string, error) {
	n, err := c.readByte(segment + " length")
	if err != nil {
		return "", err
	}
	if c.offset+int(n) > len(c.data) {
		return "", ErrorCodeMalformedWire.Errorf("unexpected end of input reading %s", segment)
	}
	b := c.data[c.offset : c.offset+int(n)]
	c.offset += int(n)
	if !utf8.Valid(b) {
		return "", ErrorCodeEncoding.Errorf("invalid utf-8 in %s", segment)
	}
	return string(b), nil
}

// DecodeFieldDefinition reads one field definition from the front of data
// and returns it with the number of bytes consumed.
func DecodeFieldDefinition(data []byte) (FieldDefinition, int, error) {
	var fd FieldDefinition
	c := &wireCursor{data: data}
	desc, err := c.readByte("type descriptor")
	if err != nil {
		return fd, 0, err
	}
	isArray := desc&wireFlagArray == wireFlagArray
	hasSize := desc&wireFlagSize == wireFlagSize
	kind := FieldKind(desc & wireKindMask)

	switch kind {
	case TCustom:
		name, err := c.readName("custom type name")
		if err != nil {
			return fd, 0, err
		}
		fd.Type = NewCustomType(name)
	case TInt, TUint, TFixedBytes:
		if !hasSize {
			return fd, 0, ErrorCodeMissingSize.Errorf("%s type must specify size", kind.String())
		}
		size, err := c.readByte("value size")
		if err != nil {
			return fd, 0, err
		}
		fd.Type = FieldType{Kind: kind, Size: size}
	case TAddress, TBool, TString, TBytes:
		fd.Type = FieldType{Kind: kind}
	default:
		return fd, 0, ErrorCodeMalformedWire.Errorf("unknown field type:%d", int(kind))
	}

	if isArray {
		count, err := c.readByte("array level count")
		if err != nil {
			return fd, 0, err
		}
		fd.ArrayLevels = make([]ArrayLevel, 0, count)
		for i := 0; i < int(count); i++ {
			lk, err := c.readByte("array level kind")
			if err != nil {
				return fd, 0, err
			}
			switch lk {
			case wireLevelDynamic:
				fd.ArrayLevels = append(fd.ArrayLevels, DynamicLevel())
			case wireLevelFixed:
				size, err := c.readByte("array level size")
				if err != nil {
					return fd, 0, err
				}
				fd.ArrayLevels = append(fd.ArrayLevels, FixedLevel(size))
			default:
				return fd, 0, ErrorCodeMalformedWire.Errorf("unknown array level kind:%d", int(lk))
			}
		}
	}

	if fd.Name, err = c.readName("field name"); err != nil {
		return fd, 0, err
	}
	codecLogger.Traceln("DecodeFieldDefinition type:", fd.TypeString(), "name:", fd.Name, "consumed:", c.offset)
	return fd, c.offset, nil
}

// DecodeFieldDefinitions reads consecutive field definitions until data is
// exhausted.
func DecodeFieldDefinitions(data []byte) ([]FieldDefinition, error) {
	var fields []FieldDefinition
	for offset := 0; offset < len(data); {
		fd, n, err := DecodeFieldDefinition(data[offset:])
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
		offset += n
	}
	return fields, nil
}

// EncodeFieldDefinition is the inverse of DecodeFieldDefinition. It emits
// the canonical form, bit4 and bit5 of the descriptor are never set and
// bit6 only for the size carrying kinds.
func EncodeFieldDefinition(fd FieldDefinition) ([]byte, error) {
	if fd.Type.Kind < TCustom || fd.Type.Kind > TBytes {
		return nil, ErrorCodeMalformedWire.Errorf("unknown field type:%d", int(fd.Type.Kind))
	}
	desc := byte(fd.Type.Kind)
	if fd.Type.Kind.hasSize() {
		desc |= wireFlagSize
	}
	if fd.IsArray() {
		desc |= wireFlagArray
	}
	buf := []byte{desc}
	if fd.Type.Kind == TCustom {
		var err error
		if buf, err = appendName(buf, fd.Type.Name, "custom type name"); err != nil {
			return nil, err
		}
	}
	if fd.Type.Kind.hasSize() {
		buf = append(buf, fd.Type.Size)
	}
	if fd.IsArray() {
		if len(fd.ArrayLevels) > wireMaxLen {
			return nil, ErrorCodeMalformedWire.Errorf("too many array levels len:%d", len(fd.ArrayLevels))
		}
		buf = append(buf, byte(len(fd.ArrayLevels)))
		for _, l := range fd.ArrayLevels {
			switch l.Kind {
			case ArrayDynamic:
				buf = append(buf, wireLevelDynamic)
			case ArrayFixed:
				buf = append(buf, wireLevelFixed, l.Size)
			default:
				return nil, ErrorCodeMalformedWire.Errorf("unknown array level kind:%d", int(l.Kind))
			}
		}
	}
	return appendName(buf, fd.Name, "field name")
}

// EncodeFieldDefinitions encodes fields back to back, the layout
// DecodeFieldDefinitions reads.
func EncodeFieldDefinitions(fields []FieldDefinition) ([]byte, error) {
	var buf []byte
	for _, fd := range fields {
		b, err := EncodeFieldDefinition(fd)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return buf, nil
}

func appendName(buf []byte, name string, segment string) ([]byte, error) {
	if len(name) > wireMaxLen {
		return nil, ErrorCodeMalformedWire.Errorf("too long %s len:%d", segment, len(name))
	}
	if !utf8.ValidString(name) {
		return nil, ErrorCodeEncoding.Errorf("invalid utf-8 in %s", segment)
	}
	buf = append(buf, byte(len(name)))
	return append(buf, name...), nil
}
