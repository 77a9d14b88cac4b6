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
	"github.com/icon-project/btp2/common/intconv"
	"github.com/icon-project/btp2/common/log"
)

// Value constructors build stream buffers from go values. Integers use the
// shortest big-endian form, signed ones in two's complement. The codec zero
// extends short buffers to the declared size before the sign bit is read, so
// a negative value has to fill its declared size, IntValueOfSize does that.

func StringValue(s string) []byte {
	return []byte(s)
}

func BytesValue(b []byte) []byte {
	return b
}

func BoolValue(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func Uint64Value(v uint64) []byte {
	return intconv.Uint64ToBytes(v)
}

func Int64Value(v int64) []byte {
	return intconv.Int64ToBytes(v)
}

func IntValue(v *big.Int) []byte {
	return intconv.BigIntToBytes(v)
}

// IntValueOfSize returns v sign extended to the declared byte size, the form
// the signed parsers read back unchanged.
func IntValueOfSize(v *big.Int, size int) ([]byte, error) {
	if err := validateValueSize("int", size); err != nil {
		return nil, err
	}
	b := intconv.BigIntToBytes(v)
	if len(b) > size {
		return nil, ErrorCodeLengthMismatch.Errorf("invalid int len:%d expected:%d", len(b), size)
	}
	buf := make([]byte, size)
	if v.Sign() < 0 {
		for i := 0; i < size-len(b); i++ {
			buf[i] = 0xff
		}
	}
	copy(buf[size-len(b):], b)
	return buf, nil
}

func MustIntValueOfSize(v *big.Int, size int) []byte {
	ret, err := IntValueOfSize(v, size)
	if err != nil {
		log.Panicf("fail to IntValueOfSize err:%v", err)
	}
	return ret
}

func UintValue(v *big.Int) ([]byte, error) {
	if v.Sign() < 0 {
		return nil, errors.Errorf("invalid sign %s", v.String())
	}
	return v.Bytes(), nil
}

func MustUintValue(v *big.Int) []byte {
	ret, err := UintValue(v)
	if err != nil {
		log.Panicf("fail to UintValue err:%v", err)
	}
	return ret
}

func AddressValue(address string) ([]byte, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.Errorf("invalid address %s, required hex", address)
	}
	return common.HexToAddress(address).Bytes(), nil
}

func MustAddressValue(address string) []byte {
	ret, err := AddressValue(address)
	if err != nil {
		log.Panicf("fail to AddressValue err:%v", err)
	}
	return ret
}
