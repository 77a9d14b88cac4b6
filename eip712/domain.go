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

	"github.com/ethereum/go-ethereum/common"
	"github.com/icon-project/btp2/common/errors"
)

const DomainTypeName = "EIP712Domain"

// Domain is the EIP712Domain member set. Zero members are left out of the
// derived type, populated ones keep the canonical member order.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract string
	Salt              []byte
}

// FieldDefinitions returns the definitions of the populated members.
func (d *Domain) FieldDefinitions() []FieldDefinition {
	var fields []FieldDefinition
	if len(d.Name) > 0 {
		fields = append(fields, NewFieldDefinition(NewStringType(), "name"))
	}
	if len(d.Version) > 0 {
		fields = append(fields, NewFieldDefinition(NewStringType(), "version"))
	}
	if d.ChainID != nil {
		fields = append(fields, NewFieldDefinition(NewUintType(32), "chainId"))
	}
	if len(d.VerifyingContract) > 0 {
		fields = append(fields, NewFieldDefinition(NewAddressType(), "verifyingContract"))
	}
	if len(d.Salt) > 0 {
		fields = append(fields, NewFieldDefinition(NewFixedBytesType(32), "salt"))
	}
	return fields
}

// Separator returns hashStruct of the domain itself.
func (d *Domain) Separator() (common.Hash, error) {
	var buffers [][]byte
	if len(d.Name) > 0 {
		buffers = append(buffers, StringValue(d.Name))
	}
	if len(d.Version) > 0 {
		buffers = append(buffers, StringValue(d.Version))
	}
	if d.ChainID != nil {
		v, err := UintValue(d.ChainID)
		if err != nil {
			return common.Hash{}, errors.Wrapf(err, "fail to encode chainId err:%s", err.Error())
		}
		buffers = append(buffers, v)
	}
	if len(d.VerifyingContract) > 0 {
		v, err := AddressValue(d.VerifyingContract)
		if err != nil {
			return common.Hash{}, errors.Wrapf(err, "fail to encode verifyingContract err:%s", err.Error())
		}
		buffers = append(buffers, v)
	}
	if len(d.Salt) > 0 {
		if len(d.Salt) != abiWordSize {
			return common.Hash{}, ErrorCodeLengthMismatch.Errorf("invalid salt len:%d", len(d.Salt))
		}
		buffers = append(buffers, d.Salt)
	}
	r := NewRegistryBuilder().Define(DomainTypeName, d.FieldDefinitions()...).Build()
	typeStrings, err := r.FullTypeStringMap()
	if err != nil {
		return common.Hash{}, err
	}
	schema, err := r.BuildSchema(DomainTypeName)
	if err != nil {
		return common.Hash{}, err
	}
	return EncodeStructHash(schema, typeStrings, NewBufferStream(buffers))
}
