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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewType(t *testing.T) {
	tests := []struct {
		input     string
		canonical string
		kind      byte
		dynamic   bool
		headSize  int
	}{
		{"uint8", "uint8", UintTy, false, 32},
		{"uint", "uint256", UintTy, false, 32},
		{"int", "int256", IntTy, false, 32},
		{"int64", "int64", IntTy, false, 32},
		{"bool", "bool", BoolTy, false, 32},
		{"address", "address", AddressTy, false, 32},
		{"byte", "bytes1", FixedBytesTy, false, 32},
		{"bytes32", "bytes32", FixedBytesTy, false, 32},
		{"bytes", "bytes", BytesTy, true, 32},
		{"string", "string", StringTy, true, 32},
		{"function", "function", FunctionTy, false, 32},
		{"uint256[]", "uint256[]", SliceTy, true, 32},
		{"uint256[3]", "uint256[3]", ArrayTy, false, 96},
		{"uint8[2][3]", "uint8[2][3]", ArrayTy, false, 192},
		{"string[2]", "string[2]", ArrayTy, true, 32},
		{"(uint256,bool)", "(uint256,bool)", TupleTy, false, 64},
		{"(uint256,string)", "(uint256,string)", TupleTy, true, 32},
		{"(uint256,(bool,address))[2]", "(uint256,(bool,address))[2]", ArrayTy, false, 192},
		{"( uint , bytes )[]", "(uint256,bytes)[]", SliceTy, true, 32},
	}
	for _, tt := range tests {
		typ, err := NewType(tt.input, nil)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.canonical, typ.String(), tt.input)
		assert.Equal(t, tt.kind, typ.T, tt.input)
		assert.Equal(t, tt.dynamic, typ.IsDynamic(), tt.input)
		assert.Equal(t, tt.headSize, typ.HeadSize(), tt.input)
	}
}

func TestNewTypeComponents(t *testing.T) {
	typ, err := NewType("tuple[]", []ArgumentMarshaling{
		{Name: "owner", Type: "address"},
		{Name: "tags", Type: "string[]"},
	})
	require.NoError(t, err)
	assert.Equal(t, "(address,string[])[]", typ.String())
	assert.Equal(t, []string{"owner", "tags"}, typ.Elem.TupleRawNames)
	assert.True(t, typ.IsDynamic())
}

func TestNewTypeErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"uint7",
		"uint0",
		"uint264",
		"int9",
		"bytes0",
		"bytes33",
		"fixed128x18",
		"ufixed",
		"uint256[",
		"uint256]",
		"uint256[0]",
		"uint256[a]",
		"bool8",
		"string1",
		"foo",
		"(uint256,bool",
		"(uint256,uint7)",
		"()",
		"()[]",
		"tuple",
		"uint256[1073741824]",
		"uint8[4294967296][4294967296]",
		"(uint256[33554432],uint256[33554432])",
	} {
		_, err := NewType(input, nil)
		require.Error(t, err, input)
		var terr *TypeResolutionError
		assert.True(t, errors.As(err, &terr), "%q: %v", input, err)
		assert.ErrorIs(t, err, ErrTypeResolution, input)
	}
}

func TestTypeEqualIgnoresComponentNames(t *testing.T) {
	named, err := NewType("tuple", []ArgumentMarshaling{{Name: "a", Type: "uint256"}, {Name: "b", Type: "bool"}})
	require.NoError(t, err)
	assert.True(t, named.Equal(MustNewType("(uint256,bool)")))
	assert.False(t, named.Equal(MustNewType("(uint256,bool)[]")))
}

func TestContractInternalType(t *testing.T) {
	typ, err := newType("contract Token", "contract Token", nil)
	require.NoError(t, err)
	assert.Equal(t, AddressTy, typ.T)
	assert.Equal(t, "address", typ.String())
}

func TestBuildSignature(t *testing.T) {
	sig := BuildSignature("transfer", MustNewType("address"), MustNewType("uint256"))
	assert.Equal(t, "transfer(address,uint256)", sig)

	sig = BuildSignature("batch", MustNewType("uint[]"), MustNewType("bytes32[2]"), MustNewType("(address,string)[]"))
	assert.Equal(t, "batch(uint256[],bytes32[2],(address,string)[])", sig)

	assert.Equal(t, "f()", BuildSignature("f"))
}
