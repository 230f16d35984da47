// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

// ABI 编码规则：
// 所有数据按 32 字节字对齐。静态值原地编码；动态值在头部写入相对当前头部起点的偏移量，
// 实际内容追加在尾部。bytes/string 带长度前缀并右填充，T[] 带元素个数前缀。

// Encode packs the values into the canonical head/tail layout.
//
// Encode 将若干值按头部/尾部布局编码。
func Encode(values ...Value) ([]byte, error) {
	return packValues(values)
}

// packValues encodes a sequence as one head followed by its tail. Offsets of
// dynamic members are relative to the start of this head.
func packValues(values []Value) ([]byte, error) {
	headSize := 0
	for _, v := range values {
		headSize += getTypeSize(v.typ)
	}
	var (
		head = make([]byte, 0, headSize)
		tail []byte
	)
	for i, v := range values {
		enc, err := v.pack()
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		if isDynamicType(v.typ) {
			head = append(head, packNum(big.NewInt(int64(headSize+len(tail))))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

// pack encodes a single value as it appears in its enclosing tail, or in
// place for static values.
func (v Value) pack() ([]byte, error) {
	if v.topic != nil {
		return nil, &TypeConversionError{From: "topic hash", To: v.typ.String(), Reason: "only the hash of the value is known"}
	}
	switch v.typ.T {
	case SliceTy:
		enc, err := packValues(v.elems)
		if err != nil {
			return nil, err
		}
		return append(packNum(big.NewInt(int64(len(v.elems)))), enc...), nil
	case ArrayTy, TupleTy:
		return packValues(v.elems)
	}
	return packElement(v)
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
// packBytesSlice 将给定的字节数据打包为 [L, V] 的规范表示形式。
func packBytesSlice(bytes []byte, l int) []byte {
	len := packNum(big.NewInt(int64(l)))
	return append(len, common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// packElement packs a non-composite value according to its type.
// packElement 根据类型打包一个非复合值。
func packElement(v Value) ([]byte, error) {
	switch v.typ.T {
	case IntTy, UintTy:
		if v.num == nil {
			return nil, typeErr("nil", v.typ)
		}
		return packNum(v.num), nil
	case StringTy:
		return packBytesSlice([]byte(v.str), len(v.str)), nil
	case AddressTy:
		return common.LeftPadBytes(v.addr.Bytes(), 32), nil
	case BoolTy:
		if v.flag {
			return packNum(common.Big1), nil
		}
		return packNum(common.Big0), nil
	case BytesTy:
		return packBytesSlice(v.raw, len(v.raw)), nil
	case FixedBytesTy, FunctionTy:
		return common.RightPadBytes(v.raw, 32), nil
	default:
		return nil, fmt.Errorf("abi: could not pack element, unknown type: %v", v.typ.T)
	}
}

// packNum packs the number as a 32 byte two's complement word.
// packNum 将数字打包为 32 字节的补码字。
func packNum(n *big.Int) []byte {
	// SetFromBig writes negative numbers in two's complement.
	word, _ := uint256.FromBig(n)
	out := word.Bytes32()
	return out[:]
}
