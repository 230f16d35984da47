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
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
)

// Value is a typed ABI value: the closed variant over every kind a Type can
// describe. Values are immutable; accessors hand out copies of mutable data.
//
// Value 是带类型的 ABI 值，构造后不可变，访问器返回可变数据的副本。
type Value struct {
	typ   Type
	num   *big.Int       // IntTy, UintTy
	flag  bool           // BoolTy
	addr  common.Address // AddressTy
	raw   []byte         // BytesTy, FixedBytesTy, FunctionTy
	str   string         // StringTy
	elems []Value        // SliceTy, ArrayTy, TupleTy
	topic *common.Hash   // indexed dynamic event parameter
}

// IntegerRange returns the inclusive bounds of an integer type with the
// given signedness and width.
func IntegerRange(signed bool, bits int) (min, max *big.Int) {
	if !signed {
		return new(big.Int), new(big.Int).Sub(new(big.Int).Lsh(common.Big1, uint(bits)), common.Big1)
	}
	half := new(big.Int).Lsh(common.Big1, uint(bits-1))
	return new(big.Int).Neg(half), half.Sub(half, common.Big1)
}

// CheckIntegerRange reports whether v fits an integer of the given signedness
// and width. Signed ranges are [-2^(bits-1), 2^(bits-1)-1], unsigned ones
// [0, 2^bits-1].
func CheckIntegerRange(signed bool, bits int, v *big.Int) bool {
	if v == nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return false
	}
	if !signed {
		if v.Sign() < 0 {
			return false
		}
		u, overflow := uint256.FromBig(v)
		return !overflow && u.BitLen() <= bits
	}
	if v.Sign() >= 0 {
		return v.BitLen() <= bits-1
	}
	// v >= -2^(bits-1)  <=>  -v-1 < 2^(bits-1)
	neg := new(big.Int).Neg(v)
	return neg.Sub(neg, common.Big1).BitLen() <= bits-1
}

func integerType(signed bool, bits int) (Type, error) {
	name := "uint"
	if signed {
		name = "int"
	}
	return NewType(name+strconv.Itoa(bits), nil)
}

// NewInteger creates an integer value of the given int/uint type after
// checking that v is in range.
func NewInteger(typ Type, v *big.Int) (Value, error) {
	if typ.T != IntTy && typ.T != UintTy {
		return Value{}, &TypeConversionError{From: "integer", To: typ.String()}
	}
	if v == nil {
		return Value{}, &TypeConversionError{From: "nil", To: typ.String()}
	}
	if !CheckIntegerRange(typ.T == IntTy, typ.Size, v) {
		min, max := IntegerRange(typ.T == IntTy, typ.Size)
		return Value{}, &TypeConversionError{
			From:   v.String(),
			To:     typ.String(),
			Reason: fmt.Sprintf("out of range [%s, %s]", min, max),
		}
	}
	return Value{typ: typ, num: new(big.Int).Set(v)}, nil
}

// NewInt creates an intN value.
func NewInt(bits int, v *big.Int) (Value, error) {
	typ, err := integerType(true, bits)
	if err != nil {
		return Value{}, err
	}
	return NewInteger(typ, v)
}

// NewUint creates a uintN value.
func NewUint(bits int, v *big.Int) (Value, error) {
	typ, err := integerType(false, bits)
	if err != nil {
		return Value{}, err
	}
	return NewInteger(typ, v)
}

// NewInt64 is a shorthand for NewInt with a machine integer.
func NewInt64(bits int, v int64) (Value, error) {
	return NewInt(bits, big.NewInt(v))
}

// NewUint64 is a shorthand for NewUint with a machine integer.
func NewUint64(bits int, v uint64) (Value, error) {
	return NewUint(bits, new(big.Int).SetUint64(v))
}

// NewBool creates a bool value.
func NewBool(b bool) Value {
	return Value{typ: Type{T: BoolTy, stringKind: "bool"}, flag: b}
}

// NewAddress creates an address value.
func NewAddress(a common.Address) Value {
	return Value{typ: Type{T: AddressTy, Size: 20, stringKind: "address"}, addr: a}
}

// NewString creates a string value.
func NewString(s string) Value {
	return Value{typ: Type{T: StringTy, stringKind: "string"}, str: s}
}

// NewBytes creates a dynamic bytes value.
func NewBytes(b []byte) Value {
	return Value{typ: Type{T: BytesTy, stringKind: "bytes"}, raw: common.CopyBytes(nonNil(b))}
}

// NewFixedBytes creates a bytesN value where N is len(b).
func NewFixedBytes(b []byte) (Value, error) {
	if len(b) < 1 || len(b) > 32 {
		return Value{}, &TypeConversionError{From: fmt.Sprintf("%d bytes", len(b)), To: "bytesN", Reason: "length must be between 1 and 32"}
	}
	typ := Type{T: FixedBytesTy, Size: len(b), stringKind: "bytes" + strconv.Itoa(len(b))}
	return Value{typ: typ, raw: common.CopyBytes(b)}, nil
}

// NewFixedBytesOf creates a value of a bytesN type; b must hold exactly N bytes.
func NewFixedBytesOf(typ Type, b []byte) (Value, error) {
	if typ.T != FixedBytesTy {
		return Value{}, &TypeConversionError{From: "bytes", To: typ.String()}
	}
	if len(b) != typ.Size {
		return Value{}, &TypeConversionError{From: fmt.Sprintf("%d bytes", len(b)), To: typ.String()}
	}
	return Value{typ: typ, raw: common.CopyBytes(b)}, nil
}

// NewFunction creates a function value: an address followed by a selector.
func NewFunction(f [24]byte) Value {
	return Value{typ: Type{T: FunctionTy, Size: 24, stringKind: "function"}, raw: common.CopyBytes(f[:])}
}

// NewSlice creates a dynamic array T[] of the given element type.
func NewSlice(elem Type, elems ...Value) (Value, error) {
	return NewComposite(SliceOf(elem), elems...)
}

// NewArray creates a fixed array T[k] with k = len(elems).
func NewArray(elem Type, elems ...Value) (Value, error) {
	return NewComposite(ArrayOf(elem, len(elems)), elems...)
}

// NewTuple creates an anonymous tuple typed after its members.
func NewTuple(elems ...Value) Value {
	types := make([]Type, len(elems))
	for i, e := range elems {
		types[i] = e.typ
	}
	return Value{typ: TupleType(types...), elems: copyValues(elems)}
}

// NewComposite creates an array, slice or tuple value of the declared type,
// checking the element count and every element type.
func NewComposite(typ Type, elems ...Value) (Value, error) {
	switch typ.T {
	case SliceTy:
	case ArrayTy:
		if len(elems) != typ.Size {
			return Value{}, &TypeConversionError{From: fmt.Sprintf("%d elements", len(elems)), To: typ.String()}
		}
	case TupleTy:
		if len(elems) != len(typ.TupleElems) {
			return Value{}, &TypeConversionError{From: fmt.Sprintf("%d elements", len(elems)), To: typ.String()}
		}
	default:
		return Value{}, &TypeConversionError{From: "composite", To: typ.String()}
	}
	for i, e := range elems {
		want := typ.Elem
		if typ.T == TupleTy {
			want = typ.TupleElems[i]
		}
		if e.topic != nil || !e.typ.Equal(*want) {
			return Value{}, &TypeConversionError{From: e.typ.String(), To: want.String(), Reason: fmt.Sprintf("element %d of %s", i, typ)}
		}
	}
	return Value{typ: typ, elems: copyValues(elems)}, nil
}

func newTopicValue(typ Type, h common.Hash) Value {
	return Value{typ: typ, topic: &h}
}

func copyValues(vs []Value) []Value {
	out := make([]Value, len(vs))
	copy(out, vs)
	return out
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Type returns the declared type of the value.
func (v Value) Type() Type { return v.typ }

// Kind returns the type enumerator, or TopicHashTy for a value recovered
// from the hash of an indexed dynamic parameter.
func (v Value) Kind() byte {
	if v.topic != nil {
		return TopicHashTy
	}
	return v.typ.T
}

// IsTopicHash reports whether only the topic hash of the value is known.
func (v Value) IsTopicHash() bool { return v.topic != nil }

// Hash returns the topic hash of an indexed dynamic parameter.
func (v Value) Hash() (common.Hash, bool) {
	if v.topic == nil {
		return common.Hash{}, false
	}
	return *v.topic, true
}

// BigInt returns a copy of the integer, or nil for non-integers.
func (v Value) BigInt() *big.Int {
	if v.num == nil || v.topic != nil {
		return nil
	}
	return new(big.Int).Set(v.num)
}

// Bool returns the boolean content.
func (v Value) Bool() bool { return v.flag }

// Address returns the address content.
func (v Value) Address() common.Address { return v.addr }

// Bytes returns a copy of the content of bytes, bytesN and function values.
func (v Value) Bytes() []byte { return common.CopyBytes(v.raw) }

// Text returns the content of a string value.
func (v Value) Text() string { return v.str }

// Elems returns a copy of the members of an array, slice or tuple.
func (v Value) Elems() []Value {
	if v.elems == nil {
		return nil
	}
	return copyValues(v.elems)
}

// Len returns the number of members of a composite value.
func (v Value) Len() int { return len(v.elems) }

// Index returns the i'th member of a composite value.
func (v Value) Index(i int) Value { return v.elems[i] }

// Equal reports whether two values have the same type and content.
func (v Value) Equal(o Value) bool {
	if !v.typ.Equal(o.typ) || (v.topic == nil) != (o.topic == nil) {
		return false
	}
	if v.topic != nil {
		return *v.topic == *o.topic
	}
	switch v.typ.T {
	case IntTy, UintTy:
		return v.num.Cmp(o.num) == 0
	case BoolTy:
		return v.flag == o.flag
	case AddressTy:
		return v.addr == o.addr
	case StringTy:
		return v.str == o.str
	case BytesTy, FixedBytesTy, FunctionTy:
		return bytes.Equal(v.raw, o.raw)
	case SliceTy, ArrayTy, TupleTy:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for humans: integers in decimal, byte strings in
// hex, strings quoted, arrays in brackets and tuples in parentheses.
func (v Value) String() string {
	if v.topic != nil {
		return "topic:" + v.topic.Hex()
	}
	switch v.typ.T {
	case IntTy, UintTy:
		if v.num == nil {
			return "<nil>"
		}
		return v.num.String()
	case BoolTy:
		return strconv.FormatBool(v.flag)
	case AddressTy:
		return v.addr.Hex()
	case StringTy:
		return strconv.Quote(v.str)
	case BytesTy, FixedBytesTy, FunctionTy:
		return hexutil.Encode(v.raw)
	case SliceTy, ArrayTy, TupleTy:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		if v.typ.T == TupleTy {
			return "(" + strings.Join(parts, ", ") + ")"
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<invalid>"
}
