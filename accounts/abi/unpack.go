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
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

// Decode unpacks data laid out as the head/tail encoding of the given types.
//
// Decode 按给定类型序列解码头部/尾部布局的数据。
func Decode(data []byte, types ...Type) ([]Value, error) {
	return decodeTypes(types, data)
}

// decodeTypes reads one value per type, advancing through the head by the
// in-place size of each type. Static arrays and tuples occupy more than one
// word.
func decodeTypes(types []Type, output []byte) ([]Value, error) {
	values := make([]Value, 0, len(types))
	index := 0
	for _, t := range types {
		v, err := toValue(index, t, output)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		index += getTypeSize(t)
	}
	return values, nil
}

// readInteger reads the integer word of type typ. The word must be a valid
// sign- or zero-extension of a number within the type's range.
// readInteger 读取整数字，并校验其是否为该类型范围内数值的合法扩展。
func readInteger(typ Type, word []byte) (Value, error) {
	u := new(uint256.Int).SetBytes32(word)
	var ret *big.Int
	if typ.T == IntTy && word[0]&0x80 != 0 {
		// negative on a 256 bit two's complement machine
		ret = new(uint256.Int).Neg(u).ToBig()
		ret.Neg(ret)
	} else {
		ret = u.ToBig()
	}
	if !CheckIntegerRange(typ.T == IntTy, typ.Size, ret) {
		return Value{}, fmt.Errorf("%w: %s does not fit %s", ErrInvalidEncoding, ret, typ)
	}
	return Value{typ: typ, num: ret}, nil
}

// readBool reads a bool.
// readBool 读取布尔值。
func readBool(word []byte) (bool, error) {
	for _, b := range word[:31] {
		if b != 0 {
			return false, fmt.Errorf("%w: improperly encoded boolean value", ErrInvalidEncoding)
		}
	}
	switch word[31] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: improperly encoded boolean value", ErrInvalidEncoding)
	}
}

// A function type is simply the address with the function selection signature at the end.
//
// readFunctionType enforces that standard by always presenting it as a 24-array (address + sig = 24 bytes)
// 函数类型仅仅是地址后面跟有函数选择签名。
func readFunctionType(word []byte) ([]byte, error) {
	if garbage := binary.BigEndian.Uint64(word[24:32]); garbage != 0 {
		return nil, fmt.Errorf("%w: improperly encoded function type, got %x", ErrInvalidEncoding, word)
	}
	return common.CopyBytes(word[:24]), nil
}

// forEachUnpack iteratively unpacks size elements of an array or slice whose
// element head starts at output[start].
// forEachUnpack 迭代解包数组或切片的元素。
func forEachUnpack(t Type, output []byte, start, size int) (Value, error) {
	// Arrays have packed elements, resulting in longer unpack steps.
	// Slices have just 32 bytes per element (pointing to the contents).
	// 数组具有打包的元素，导致解包步骤更长。
	elemSize := getTypeSize(*t.Elem)
	if size < 0 || start > len(output) {
		return Value{}, &TruncatedDataError{Type: t.String(), Offset: start, Need: start, Have: len(output)}
	}
	// bound the element count by the buffer before allocating
	avail := len(output) - start
	if limit := avail / max(elemSize, 1); size > limit {
		return Value{}, &TruncatedDataError{Type: t.String(), Offset: start, Need: start + max(elemSize, 1)*size, Have: len(output)}
	}
	elems := make([]Value, 0, size)
	for i, j := start, 0; j < size; i, j = i+elemSize, j+1 {
		elem, err := toValue(i, *t.Elem, output)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}
	return Value{typ: t, elems: elems}, nil
}

func forTupleUnpack(t Type, output []byte) (Value, error) {
	types := make([]Type, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		types[i] = *elem
	}
	elems, err := decodeTypes(types, output)
	if err != nil {
		return Value{}, err
	}
	return Value{typ: t, elems: elems}, nil
}

// toValue parses the output bytes at index and recursively builds the Value
// of type t.
// toValue 解析 index 处的输出字节，并递归构造类型为 t 的值。
func toValue(index int, t Type, output []byte) (Value, error) {
	if index+32 > len(output) {
		return Value{}, &TruncatedDataError{Type: t.String(), Offset: index, Need: index + 32, Have: len(output)}
	}
	word := output[index : index+32]

	switch t.T {
	case TupleTy:
		if isDynamicType(t) {
			begin, err := tuplePointsTo(t, index, output)
			if err != nil {
				return Value{}, err
			}
			return forTupleUnpack(t, output[begin:])
		}
		return forTupleUnpack(t, output[index:])
	case SliceTy:
		begin, length, err := lengthPrefixPointsTo(t, index, output)
		if err != nil {
			return Value{}, err
		}
		return forEachUnpack(t, output[begin:], 0, length)
	case ArrayTy:
		if isDynamicType(*t.Elem) {
			begin, err := tuplePointsTo(t, index, output)
			if err != nil {
				return Value{}, err
			}
			return forEachUnpack(t, output[begin:], 0, t.Size)
		}
		return forEachUnpack(t, output[index:], 0, t.Size)
	case StringTy:
		begin, length, err := lengthPrefixPointsTo(t, index, output)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, str: string(output[begin : begin+length])}, nil
	case BytesTy:
		begin, length, err := lengthPrefixPointsTo(t, index, output)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, raw: common.CopyBytes(output[begin : begin+length])}, nil
	case IntTy, UintTy:
		return readInteger(t, word)
	case BoolTy:
		b, err := readBool(word)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, flag: b}, nil
	case AddressTy:
		return Value{typ: t, addr: common.BytesToAddress(word[12:])}, nil
	case FixedBytesTy:
		return Value{typ: t, raw: common.CopyBytes(word[:t.Size])}, nil
	case FunctionTy:
		f, err := readFunctionType(word)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, raw: f}, nil
	default:
		return Value{}, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

// lengthPrefixPointsTo interprets the word at index as an offset to a length
// prefix and returns where the content starts and its length: a byte count
// for bytes and string, an element count for slices.
// lengthPrefixPointsTo 将 index 处的字解释为指向长度前缀的偏移量。
func lengthPrefixPointsTo(t Type, index int, output []byte) (start int, length int, err error) {
	offset := new(big.Int).SetBytes(output[index : index+32])
	outputLength := big.NewInt(int64(len(output)))

	offsetEnd := new(big.Int).Add(offset, common.Big32)
	if offsetEnd.Cmp(outputLength) > 0 {
		return 0, 0, &OffsetOutOfRangeError{Type: t.String(), Offset: offset.String(), Length: len(output)}
	}
	start = int(offsetEnd.Int64())
	lengthBig := new(big.Int).SetBytes(output[start-32 : start])
	if lengthBig.Cmp(outputLength) > 0 {
		return 0, 0, &OffsetOutOfRangeError{Type: t.String(), Offset: lengthBig.String(), Length: len(output) - start}
	}

	// the content a slice occupies in the buffer is count * element head size
	size := lengthBig
	if t.T == SliceTy {
		size = new(big.Int).Mul(lengthBig, big.NewInt(int64(getTypeSize(*t.Elem))))
	}
	totalSize := new(big.Int).Add(offsetEnd, size)
	if totalSize.Cmp(outputLength) > 0 {
		return 0, 0, &OffsetOutOfRangeError{Type: t.String(), Offset: lengthBig.String(), Length: len(output) - start}
	}
	return start, int(lengthBig.Int64()), nil
}

// tuplePointsTo resolves the location reference for dynamic tuples and
// fixed arrays of dynamic elements.
// tuplePointsTo 解析动态元组（及动态元素定长数组）的位置引用。
func tuplePointsTo(t Type, index int, output []byte) (start int, err error) {
	offset := new(big.Int).SetBytes(output[index : index+32])
	if offset.Cmp(big.NewInt(int64(len(output)))) > 0 {
		return 0, &OffsetOutOfRangeError{Type: t.String(), Offset: offset.String(), Length: len(output)}
	}
	return int(offset.Int64()), nil
}
