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
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/icon-project/btp2/common/log"
)

const (
	mailDomainName       = "Simple Mail"
	signedIntsDomainName = "Signed Ints test"
	testDomainVersion    = "1"
	testContract         = "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"

	cowWallet1 = "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"
	cowWallet2 = "0xDeaDbeefdEAdbeefdEadbEEFdeadbeEFdEaDbeeF"
	bobWallet1 = "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"
	bobWallet2 = "0xB0BdaBea57B0BDABeA57b0bdABEA57b0BDabEa57"
	bobWallet3 = "0xB0B0b0b0b0b0B000000000000000000000000000"

	mailFullTypeString = "Mail(Person from,Person to,string contents," +
		"uint64 timestamp,uint256 amount,uint256 payback)" +
		"Person(string name,address[] wallets)"
	signedIntsFullTypeString = "Test(int256 neg256,int256 pos256," +
		"int128 neg128,int128 pos128,int64 neg64,int64 pos64," +
		"int32 neg32,int32 pos32,int16 neg16,int16 pos16,int8 neg8,int8 pos8)"
)

var (
	mailTimestamp = uint64(1633072800)
	mailAmount    = uint64(1000000)
	mailPayback   = MustBigInt(Integer("0x1000000000000000000"))

	mailRegistry       = prepareMailRegistry()
	signedIntsRegistry = prepareSignedIntsRegistry()
	mailTypedData      = prepareMailTypedData()
	signedIntsTyped    = prepareSignedIntsTypedData()
)

func MustBigInt(i Integer) *big.Int {
	v, err := i.AsBigInt()
	if err != nil {
		log.Panicf("fail to AsBigInt err:%+v", err)
	}
	return v
}

func hexBuffers(hexes ...string) [][]byte {
	buffers := make([][]byte, len(hexes))
	for i, h := range hexes {
		buffers[i] = common.Hex2Bytes(h)
	}
	return buffers
}

func domainFieldDefs() []FieldDefinition {
	return []FieldDefinition{
		NewFieldDefinition(NewStringType(), "name"),
		NewFieldDefinition(NewStringType(), "version"),
		NewFieldDefinition(NewUintType(32), "chainId"),
		NewFieldDefinition(NewAddressType(), "verifyingContract"),
	}
}

func prepareMailRegistry() *TypeRegistry {
	return NewRegistryBuilder().
		Define(DomainTypeName, domainFieldDefs()...).
		Define("Mail",
			NewFieldDefinition(NewCustomType("Person"), "from"),
			NewFieldDefinition(NewCustomType("Person"), "to"),
			NewFieldDefinition(NewStringType(), "contents"),
			NewFieldDefinition(NewUintType(8), "timestamp"),
			NewFieldDefinition(NewUintType(32), "amount"),
			NewFieldDefinition(NewUintType(32), "payback"),
		).
		Define("Person",
			NewFieldDefinition(NewStringType(), "name"),
			NewFieldDefinition(NewAddressType(), "wallets", DynamicLevel()),
		).
		Build()
}

func mailDomain() *Domain {
	return &Domain{
		Name:              mailDomainName,
		Version:           testDomainVersion,
		ChainID:           big.NewInt(1),
		VerifyingContract: testContract,
	}
}

// mailBuffers is the value stream of the Mail message, one buffer per
// primitive leaf and one per array length in schema pre-order.
func mailBuffers() [][]byte {
	return [][]byte{
		StringValue("Cow"),
		{2},
		MustAddressValue(cowWallet1),
		MustAddressValue(cowWallet2),
		StringValue("Bob"),
		{3},
		MustAddressValue(bobWallet1),
		MustAddressValue(bobWallet2),
		MustAddressValue(bobWallet3),
		StringValue("Hello, Bob!"),
		Uint64Value(mailTimestamp),
		Uint64Value(mailAmount),
		MustUintValue(mailPayback),
	}
}

func mailStream() *BufferStream {
	return NewBufferStream(mailBuffers())
}

func prepareMailTypedData() apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Mail": {
				{Name: "from", Type: "Person"},
				{Name: "to", Type: "Person"},
				{Name: "contents", Type: "string"},
				{Name: "timestamp", Type: "uint64"},
				{Name: "amount", Type: "uint256"},
				{Name: "payback", Type: "uint256"},
			},
			"Person": {
				{Name: "name", Type: "string"},
				{Name: "wallets", Type: "address[]"},
			},
		},
		PrimaryType: "Mail",
		Domain: apitypes.TypedDataDomain{
			Name:              mailDomainName,
			Version:           testDomainVersion,
			ChainId:           math.NewHexOrDecimal256(1),
			VerifyingContract: testContract,
		},
		Message: apitypes.TypedDataMessage{
			"from": map[string]interface{}{
				"name":    "Cow",
				"wallets": []interface{}{cowWallet1, cowWallet2},
			},
			"to": map[string]interface{}{
				"name":    "Bob",
				"wallets": []interface{}{bobWallet1, bobWallet2, bobWallet3},
			},
			"contents":  "Hello, Bob!",
			"timestamp": "1633072800",
			"amount":    "1000000",
			"payback":   "0x1000000000000000000",
		},
	}
}

func prepareSignedIntsRegistry() *TypeRegistry {
	return NewRegistryBuilder().
		Define(DomainTypeName, domainFieldDefs()...).
		Define("Test",
			NewFieldDefinition(NewIntType(32), "neg256"),
			NewFieldDefinition(NewIntType(32), "pos256"),
			NewFieldDefinition(NewIntType(16), "neg128"),
			NewFieldDefinition(NewIntType(16), "pos128"),
			NewFieldDefinition(NewIntType(8), "neg64"),
			NewFieldDefinition(NewIntType(8), "pos64"),
			NewFieldDefinition(NewIntType(4), "neg32"),
			NewFieldDefinition(NewIntType(4), "pos32"),
			NewFieldDefinition(NewIntType(2), "neg16"),
			NewFieldDefinition(NewIntType(2), "pos16"),
			NewFieldDefinition(NewIntType(1), "neg8"),
			NewFieldDefinition(NewIntType(1), "pos8"),
		).
		Build()
}

func signedIntsDomain() *Domain {
	return &Domain{
		Name:              signedIntsDomainName,
		Version:           testDomainVersion,
		ChainID:           big.NewInt(1),
		VerifyingContract: testContract,
	}
}

// signedIntsBuffers delivers negatives at full declared width, positives in
// the shortest form, both of which the zero extending parsers accept.
func signedIntsBuffers() [][]byte {
	return hexBuffers(
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff00",
		"0100",
		"ffffffffffffffffffffffffffffff80",
		"80",
		"ffffffffffffffc0",
		"40",
		"ffffffe0",
		"20",
		"fff0",
		"10",
		"f8",
		"08",
	)
}

func signedIntsStream() *BufferStream {
	return NewBufferStream(signedIntsBuffers())
}

func prepareSignedIntsTypedData() apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Test": {
				{Name: "neg256", Type: "int256"},
				{Name: "pos256", Type: "int256"},
				{Name: "neg128", Type: "int128"},
				{Name: "pos128", Type: "int128"},
				{Name: "neg64", Type: "int64"},
				{Name: "pos64", Type: "int64"},
				{Name: "neg32", Type: "int32"},
				{Name: "pos32", Type: "int32"},
				{Name: "neg16", Type: "int16"},
				{Name: "pos16", Type: "int16"},
				{Name: "neg8", Type: "int8"},
				{Name: "pos8", Type: "int8"},
			},
		},
		PrimaryType: "Test",
		Domain: apitypes.TypedDataDomain{
			Name:              signedIntsDomainName,
			Version:           testDomainVersion,
			ChainId:           math.NewHexOrDecimal256(1),
			VerifyingContract: testContract,
		},
		Message: apitypes.TypedDataMessage{
			"neg256": "-256",
			"pos256": "256",
			"neg128": "-128",
			"pos128": "128",
			"neg64":  "-64",
			"pos64":  "64",
			"neg32":  "-32",
			"pos32":  "32",
			"neg16":  "-16",
			"pos16":  "16",
			"neg8":   "-8",
			"pos8":   "8",
		},
	}
}
