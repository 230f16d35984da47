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
	"regexp"
	"strconv"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
	FunctionTy

	// TopicHashTy is never produced by NewType. It marks a Value recovered from
	// an indexed event topic whose declared type is dynamic, so only the hash
	// of its encoding is known.
	TopicHashTy
)

// Type is the reflection of the supported argument type.
// Type 描述一个 ABI 类型：整数、地址、布尔、定长/变长字节、字符串、数组与元组。
type Type struct {
	Elem *Type
	Size int
	T    byte // Our own type checking

	stringKind string // holds the unparsed string for deriving signatures

	// Tuple relative fields
	TupleRawName  string   // Raw struct name defined in source code, may be empty.
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields
}

var (
	// typeRegex parses the abi sub types
	typeRegex = regexp.MustCompile(`^([a-z]+)([0-9]*)(x[0-9]+)?$`)

	// sliceSizeRegex grab the slice size
	sliceSizeRegex = regexp.MustCompile(`^\[([0-9]*)\]$`)
)

// NewType creates a new reflection type of abi type given in t. Tuples are
// given either as "tuple" with components, or inline as "(uint256,string)".
//
// NewType 解析类型名；元组可以写作 "tuple" 加 components，或直接写作 "(uint256,string)"。
func NewType(t string, components []ArgumentMarshaling) (Type, error) {
	return newType(t, "", components)
}

// MustNewType is like NewType but panics on error. Meant for package-level
// variables holding well-known types.
func MustNewType(t string) Type {
	typ, err := NewType(t, nil)
	if err != nil {
		panic(err)
	}
	return typ
}

func newType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return Type{}, resolveErr(t, "empty type name")
	}
	// check that array brackets are equal if they exist
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, resolveErr(t, "unbalanced array brackets")
	}
	// inline tuple, e.g. (uint256,bool)[2]
	if t[0] == '(' && strings.HasSuffix(strings.TrimRight(t, "[]0123456789"), ")") {
		return newInlineTupleType(t)
	}
	typ.stringKind = t

	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	if strings.HasSuffix(t, "]") {
		subInternal := internalType
		if i := strings.LastIndex(internalType, "["); i != -1 {
			subInternal = subInternal[:i]
		}
		i := strings.LastIndex(t, "[")
		embeddedType, err := newType(t[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		sliced := t[i:]
		match := sliceSizeRegex.FindStringSubmatch(sliced)
		if match == nil {
			return Type{}, resolveErr(t, "invalid formatting of array type")
		}
		typ.Elem = &embeddedType
		typ.stringKind = embeddedType.stringKind + sliced
		if match[1] == "" {
			typ.T = SliceTy
			return typ, nil
		}
		typ.T = ArrayTy
		typ.Size, err = strconv.Atoi(match[1])
		if err != nil || typ.Size <= 0 {
			return Type{}, resolveErr(t, "array length must be a positive integer")
		}
		if typ.Size > maxHeadSize/getTypeSize(embeddedType) {
			return Type{}, resolveErr(t, "array too large")
		}
		return typ, nil
	}
	if strings.ContainsAny(t, "[]") {
		return Type{}, resolveErr(t, "invalid formatting of array type")
	}

	// parse the type and size of the abi-type.
	parsedType := typeRegex.FindStringSubmatch(t)
	if parsedType == nil {
		if strings.HasPrefix(internalType, "contract ") || strings.HasPrefix(internalType, "address") {
			return Type{T: AddressTy, Size: 20, stringKind: "address"}, nil
		}
		return Type{}, resolveErr(t, "unsupported type name")
	}
	if parsedType[3] != "" {
		return Type{}, resolveErr(t, "fixed point types are not supported")
	}
	var varSize int
	if parsedType[2] != "" {
		varSize, err = strconv.Atoi(parsedType[2])
		if err != nil {
			return Type{}, resolveErr(t, "invalid size")
		}
	}
	switch varType := parsedType[1]; varType {
	case "int", "uint":
		if parsedType[2] == "" {
			// int and uint alias their 256 bit forms
			varSize = 256
		}
		if varSize < 8 || varSize > 256 || varSize%8 != 0 {
			return Type{}, resolveErr(t, "integer size must be a multiple of 8 between 8 and 256")
		}
		typ.Size = varSize
		typ.T = IntTy
		if varType == "uint" {
			typ.T = UintTy
		}
		typ.stringKind = varType + strconv.Itoa(varSize)
	case "bool":
		typ.T = BoolTy
	case "address":
		typ.Size = 20
		typ.T = AddressTy
	case "string":
		typ.T = StringTy
	case "byte":
		if parsedType[2] != "" {
			return Type{}, resolveErr(t, "unsupported type name")
		}
		typ.T = FixedBytesTy
		typ.Size = 1
		typ.stringKind = "bytes1"
	case "bytes":
		if parsedType[2] == "" {
			typ.T = BytesTy
			break
		}
		if varSize < 1 || varSize > 32 {
			return Type{}, resolveErr(t, "fixed bytes size must be between 1 and 32")
		}
		typ.T = FixedBytesTy
		typ.Size = varSize
	case "tuple":
		if parsedType[2] != "" {
			return Type{}, resolveErr(t, "unsupported type name")
		}
		return newTupleType(internalType, components)
	case "function":
		typ.T = FunctionTy
		typ.Size = 24
	default:
		if strings.HasPrefix(internalType, "contract ") {
			return Type{T: AddressTy, Size: 20, stringKind: "address"}, nil
		}
		return Type{}, resolveErr(t, "unsupported type name")
	}
	if parsedType[2] != "" && typ.T != IntTy && typ.T != UintTy && typ.T != FixedBytesTy {
		return Type{}, resolveErr(t, "unsupported type name")
	}
	return typ, nil
}

func newTupleType(internalType string, components []ArgumentMarshaling) (Type, error) {
	if len(components) == 0 {
		return Type{}, resolveErr("tuple", "tuple must have at least one component")
	}
	var (
		typ   = Type{T: TupleTy}
		elems = make([]*Type, 0, len(components))
		names = make([]string, 0, len(components))
		kinds = make([]string, 0, len(components))
		head  int
	)
	for _, c := range components {
		cType, err := newType(c.Type, c.InternalType, c.Components)
		if err != nil {
			return Type{}, err
		}
		size := getTypeSize(cType)
		if head > maxHeadSize-size {
			return Type{}, resolveErr("tuple", "tuple too large")
		}
		head += size
		elems = append(elems, &cType)
		names = append(names, c.Name)
		kinds = append(kinds, cType.stringKind)
	}
	typ.TupleElems = elems
	typ.TupleRawNames = names
	typ.stringKind = "(" + strings.Join(kinds, ",") + ")"

	const structPrefix = "struct "
	// After solidity 0.5.10, a new field of abi "internalType"
	// is introduced. From that we can obtain the struct name
	// user defined in the source code.
	if internalType != "" && strings.HasPrefix(internalType, structPrefix) {
		// Foo.Bar type definition is not allowed in golang,
		// convert the format to FooBar
		typ.TupleRawName = strings.ReplaceAll(internalType[len(structPrefix):], ".", "")
	}
	return typ, nil
}

func newInlineTupleType(t string) (Type, error) {
	parsed, rest, err := parseType(t)
	if err != nil {
		return Type{}, resolveErr(t, err.Error())
	}
	if rest != "" {
		return Type{}, resolveErr(t, fmt.Sprintf("unexpected trailing %q", rest))
	}
	args, err := assembleArgs([]interface{}{parsed})
	if err != nil {
		return Type{}, resolveErr(t, err.Error())
	}
	return newType(args[0].Type, "", args[0].Components)
}

// TupleType builds an anonymous tuple type from its member types.
func TupleType(elems ...Type) Type {
	typ := Type{T: TupleTy}
	kinds := make([]string, len(elems))
	for i := range elems {
		elem := elems[i]
		typ.TupleElems = append(typ.TupleElems, &elem)
		typ.TupleRawNames = append(typ.TupleRawNames, "")
		kinds[i] = elem.stringKind
	}
	typ.stringKind = "(" + strings.Join(kinds, ",") + ")"
	return typ
}

// SliceOf returns the dynamic array type T[].
func SliceOf(elem Type) Type {
	return Type{T: SliceTy, Elem: &elem, stringKind: elem.stringKind + "[]"}
}

// ArrayOf returns the fixed array type T[size].
func ArrayOf(elem Type, size int) Type {
	return Type{T: ArrayTy, Elem: &elem, Size: size, stringKind: fmt.Sprintf("%s[%d]", elem.stringKind, size)}
}

// String implements Stringer. It returns the canonical name used in signatures.
func (t Type) String() (out string) {
	return t.stringKind
}

// Equal reports whether two types have the same canonical form. Tuple
// component names do not take part in the comparison.
func (t Type) Equal(other Type) bool {
	return t.stringKind == other.stringKind
}

// IsDynamic reports whether the type is encoded in the tail of its
// enclosing head, behind an offset word.
func (t Type) IsDynamic() bool {
	return isDynamicType(t)
}

// HeadSize returns the number of bytes the type occupies in a head.
func (t Type) HeadSize() int {
	return getTypeSize(t)
}

// requireLengthPrefix returns whether the type requires any sort of length
// prefixing.
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// isDynamicType returns true if the type is dynamic.
// The following types are called “dynamic”:
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
func isDynamicType(t Type) bool {
	if t.T == TupleTy {
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	}
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && isDynamicType(*t.Elem))
}

// getTypeSize returns the size that this type needs to occupy.
// We distinguish static and dynamic types. Static types are encoded in-place
// and dynamic types are encoded at a separately allocated location after the
// current block.
// So for a static variable, the size returned represents the size that the
// variable actually occupies.
// For a dynamic variable, the returned size is fixed 32 bytes, which is used
// to store the location reference for actual value storage.
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !isDynamicType(*t.Elem) {
		// Recursively calculate type size if it is a nested array
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			return t.Size * getTypeSize(*t.Elem)
		}
		return t.Size * 32
	} else if t.T == TupleTy && !isDynamicType(t) {
		total := 0
		for _, elem := range t.TupleElems {
			total += getTypeSize(*elem)
		}
		return total
	}
	return 32
}

// maxHeadSize bounds the head of any resolved type, so head arithmetic on
// array and tuple sizes cannot overflow.
const maxHeadSize = 1 << 30

func resolveErr(t, reason string) error {
	return &TypeResolutionError{Type: t, Reason: reason}
}
