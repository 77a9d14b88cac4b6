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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/icon-project/btp2/common/errors"
)

// HashStruct implements hashStruct of EIP-712,
// keccak256(keccak256(typeString) || encodedData).
func HashStruct(typeString string, encodedData []byte) common.Hash {
	typeHash := crypto.Keccak256([]byte(typeString))
	return crypto.Keccak256Hash(typeHash, encodedData)
}

// SigningDigest implements the EIP-191 version 0x01 envelope,
// keccak256(0x19 || 0x01 || domainSeparator || structHash).
func SigningDigest(domainSeparator, structHash common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domainSeparator.Bytes(), structHash.Bytes())
}

// EncodeStructHash encodes one struct from vs and returns its hashStruct.
// The schema root must be a struct and typeStrings must cover it, use
// FullTypeStringMap of the registry the schema came from.
func EncodeStructHash(schema *TypeSchema, typeStrings map[string]string, vs ValueStream) (common.Hash, error) {
	if schema.Kind != SchemaStruct {
		return common.Hash{}, errors.Errorf("fail EncodeStructHash, not a struct schema %s", schema.Kind.String())
	}
	ts, ok := typeStrings[schema.Name]
	if !ok {
		return common.Hash{}, NewNotFoundTypeError(schema.Name)
	}
	encoded, err := EncodeData(schema, typeStrings, vs)
	if err != nil {
		return common.Hash{}, err
	}
	return HashStruct(ts, encoded), nil
}

// SigningHash derives the final EIP-712 digest of primaryType with the
// values of vs under domain.
func (r *TypeRegistry) SigningHash(primaryType string, domain *Domain, vs ValueStream) (common.Hash, error) {
	separator, err := domain.Separator()
	if err != nil {
		return common.Hash{}, err
	}
	typeStrings, err := r.FullTypeStringMap()
	if err != nil {
		return common.Hash{}, err
	}
	schema, err := r.BuildSchema(primaryType)
	if err != nil {
		return common.Hash{}, err
	}
	structHash, err := EncodeStructHash(schema, typeStrings, vs)
	if err != nil {
		return common.Hash{}, err
	}
	return SigningDigest(separator, structHash), nil
}
