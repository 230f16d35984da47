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

	"github.com/sunyihoo/bcos-go-sdk/common"
)

// ConvertTo converts a decoded Value into the Go type T. Integers convert to
// *big.Int or to any machine integer wide enough to hold them, addresses to
// common.Address or their hex string, bytes32 to common.Hash, composites to
// []Value or to a typed slice of convertible members. Anything else yields a
// *TypeConversionError.
//
// ConvertTo 将解码得到的 Value 转为 Go 类型 T，类型不匹配时返回 *TypeConversionError。
func ConvertTo[T any](v Value) (T, error) {
	var out T
	res, err := convert(v, any(&out))
	if err != nil {
		return out, err
	}
	if res != nil {
		return res.(T), nil
	}
	return out, nil
}

// convert fills dst, a pointer to the requested type. A non-nil result is
// used instead of dst for interface targets.
func convert(v Value, dst interface{}) (interface{}, error) {
	want := fmt.Sprintf("%T", dst)[1:]
	if v.topic != nil {
		switch d := dst.(type) {
		case *common.Hash:
			*d = *v.topic
			return nil, nil
		case *[32]byte:
			*d = *v.topic
			return nil, nil
		case *Value:
			*d = v
			return nil, nil
		case *interface{}:
			return v, nil
		}
		return nil, &TypeConversionError{From: "topic hash of " + v.typ.String(), To: want}
	}
	switch d := dst.(type) {
	case *Value:
		*d = v
	case *interface{}:
		return v, nil
	case **big.Int:
		if v.num == nil {
			return nil, typeErr(v.typ, want)
		}
		*d = new(big.Int).Set(v.num)
	case *int8:
		n, err := machineInt(v, true, 8, want)
		*d = int8(n.Int64())
		return nil, err
	case *int16:
		n, err := machineInt(v, true, 16, want)
		*d = int16(n.Int64())
		return nil, err
	case *int32:
		n, err := machineInt(v, true, 32, want)
		*d = int32(n.Int64())
		return nil, err
	case *int64:
		n, err := machineInt(v, true, 64, want)
		*d = n.Int64()
		return nil, err
	case *int:
		n, err := machineInt(v, true, 64, want)
		*d = int(n.Int64())
		return nil, err
	case *uint8:
		n, err := machineInt(v, false, 8, want)
		*d = uint8(n.Uint64())
		return nil, err
	case *uint16:
		n, err := machineInt(v, false, 16, want)
		*d = uint16(n.Uint64())
		return nil, err
	case *uint32:
		n, err := machineInt(v, false, 32, want)
		*d = uint32(n.Uint64())
		return nil, err
	case *uint64:
		n, err := machineInt(v, false, 64, want)
		*d = n.Uint64()
		return nil, err
	case *uint:
		n, err := machineInt(v, false, 64, want)
		*d = uint(n.Uint64())
		return nil, err
	case *bool:
		if v.typ.T != BoolTy {
			return nil, typeErr(v.typ, want)
		}
		*d = v.flag
	case *string:
		switch v.typ.T {
		case StringTy:
			*d = v.str
		case AddressTy:
			*d = v.addr.Hex()
		default:
			return nil, typeErr(v.typ, want)
		}
	case *common.Address:
		if v.typ.T != AddressTy {
			return nil, typeErr(v.typ, want)
		}
		*d = v.addr
	case *[]byte:
		switch v.typ.T {
		case BytesTy, FixedBytesTy, FunctionTy:
			*d = common.CopyBytes(v.raw)
		default:
			return nil, typeErr(v.typ, want)
		}
	case *common.Hash:
		if v.typ.T != FixedBytesTy || v.typ.Size != 32 {
			return nil, typeErr(v.typ, want)
		}
		*d = common.BytesToHash(v.raw)
	case *[32]byte:
		if v.typ.T != FixedBytesTy || v.typ.Size != 32 {
			return nil, typeErr(v.typ, want)
		}
		copy(d[:], v.raw)
	case *[24]byte:
		if v.typ.T != FunctionTy {
			return nil, typeErr(v.typ, want)
		}
		copy(d[:], v.raw)
	case *[]Value:
		if !isComposite(v) {
			return nil, typeErr(v.typ, want)
		}
		*d = v.Elems()
	case *[]*big.Int:
		return nil, convertElems(v, d, want)
	case *[]string:
		return nil, convertElems(v, d, want)
	case *[]common.Address:
		return nil, convertElems(v, d, want)
	case *[]bool:
		return nil, convertElems(v, d, want)
	case *[][]byte:
		return nil, convertElems(v, d, want)
	case *[]common.Hash:
		return nil, convertElems(v, d, want)
	case *[]uint64:
		return nil, convertElems(v, d, want)
	case *[]int64:
		return nil, convertElems(v, d, want)
	default:
		return nil, &TypeConversionError{From: v.typ.String(), To: want, Reason: "unsupported target type"}
	}
	return nil, nil
}

func machineInt(v Value, signed bool, bits int, want string) (*big.Int, error) {
	if v.num == nil {
		return new(big.Int), typeErr(v.typ, want)
	}
	if !CheckIntegerRange(signed, bits, v.num) {
		return new(big.Int), &TypeConversionError{From: v.typ.String(), To: want, Reason: fmt.Sprintf("value %s overflows", v.num)}
	}
	return v.num, nil
}

func isComposite(v Value) bool {
	return v.typ.T == SliceTy || v.typ.T == ArrayTy || v.typ.T == TupleTy
}

func convertElems[E any](v Value, dst *[]E, want string) error {
	if !isComposite(v) {
		return typeErr(v.typ, want)
	}
	out := make([]E, len(v.elems))
	for i, e := range v.elems {
		conv, err := ConvertTo[E](e)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = conv
	}
	*dst = out
	return nil
}
