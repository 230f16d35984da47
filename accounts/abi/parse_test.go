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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

func TestParseValueScalars(t *testing.T) {
	tests := []struct {
		typ  string
		text string
		want string
	}{
		{"uint256", "1000", "1000"},
		{"uint256", "0x3e8", "1000"},
		{"int8", "-128", "-128"},
		{"bool", "true", "true"},
		{"address", "0x970e8128ab834e8eac17ab8e3812f010678cf791", common.HexToAddress("0x970e8128ab834e8eac17ab8e3812f010678cf791").Hex()},
		{"string", " spaced ", `" spaced "`},
		{"bytes", "0xbeef", "0xbeef"},
		{"bytes", "beef", "0xbeef"},
		{"bytes2", "0xbeef", "0xbeef"},
	}
	for _, tt := range tests {
		v, err := ParseValue(MustNewType(tt.typ), tt.text)
		require.NoError(t, err, "%s %q", tt.typ, tt.text)
		assert.Equal(t, tt.want, v.String(), "%s %q", tt.typ, tt.text)
		assert.Equal(t, MustNewType(tt.typ).String(), v.Type().String())
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		typ  string
		text string
	}{
		{"uint8", "256"},
		{"int8", "200"},
		{"uint256", "ten"},
		{"bool", "maybe"},
		{"address", "0x1234"},
		{"bytes", "0xzz"},
		{"bytes4", "0xbeef"},
		{"uint256[]", "[1, \"x\"]"},
		{"uint256[2]", "[1]"},
		{"(uint256,bool)", "{\"a\": 1}"},
		{"uint256[]", "not json"},
		{"uint256[]", "[null]"},
	}
	for _, tt := range tests {
		_, err := ParseValue(MustNewType(tt.typ), tt.text)
		assert.ErrorIs(t, err, ErrTypeConversion, "%s %q", tt.typ, tt.text)
	}
}

func TestParseValueComposite(t *testing.T) {
	v, err := ParseValue(MustNewType("(uint256,string[],bool)[]"), `[[1, ["a", "b"], true], ["0x02", [], false]]`)
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())
	assert.Equal(t, big.NewInt(2), v.Index(1).Index(0).BigInt())
	assert.Equal(t, `[(1, ["a", "b"], true), (2, [], false)]`, v.String())

	named, err := NewType("tuple", []ArgumentMarshaling{{Name: "who", Type: "address"}, {Name: "amount", Type: "uint64"}})
	require.NoError(t, err)
	v, err = ParseValue(named, `{"who": "0x0000000000000000000000000000000000000001", "amount": 7}`)
	require.NoError(t, err)
	assert.Equal(t, common.BytesToAddress([]byte{1}), v.Index(0).Address())
	assert.Equal(t, int64(7), v.Index(1).BigInt().Int64())
}

func TestParseValues(t *testing.T) {
	types, err := ParseTypeList("address, uint256")
	require.NoError(t, err)
	vals, err := ParseValues(types, []string{"0x0000000000000000000000000000000000000001", "5"})
	require.NoError(t, err)
	assert.Len(t, vals, 2)

	_, err = ParseValues(types, []string{"5"})
	assert.Error(t, err)
}
