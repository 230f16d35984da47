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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode(make([]byte, 16), MustNewType("uint256"))
	require.Error(t, err)

	var terr *TruncatedDataError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "uint256", terr.Type)
	assert.Equal(t, 0, terr.Offset)
	assert.Equal(t, 32, terr.Need)
	assert.Equal(t, 16, terr.Have)
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestDecodeSecondWordTruncated(t *testing.T) {
	_, err := Decode(words("01"), MustNewType("uint256"), MustNewType("bool"))
	var terr *TruncatedDataError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 32, terr.Offset)
}

func TestDecodeOffsetOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		data []byte
	}{
		{"string offset past end", "string", words("0100")},
		{"string length past end", "string", words("20", "ff")},
		{"bytes length huge", "bytes", words("20", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")},
		{"slice count past end", "uint256[]", words("20", "05", "01")},
		{"tuple offset past end", "(string,uint256)", words("80")},
		{"array offset past end", "string[2]", words("ffff")},
	}
	for _, tt := range tests {
		_, err := Decode(tt.data, MustNewType(tt.typ))
		require.Error(t, err, tt.name)
		var oerr *OffsetOutOfRangeError
		assert.True(t, errors.As(err, &oerr), "%s: %v", tt.name, err)
		assert.ErrorIs(t, err, ErrOffsetOutOfRange, tt.name)
	}
}

func TestDecodeHugeCounts(t *testing.T) {
	huge := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	tests := []struct {
		name string
		typ  Type
		data []byte
	}{
		{"empty tuple slice", SliceOf(TupleType()), words("20", huge)},
		{"empty tuple slice, fitting count", SliceOf(TupleType()), words("20", "40")},
		{"large static array", ArrayOf(MustNewType("uint256"), 1<<40), words("01")},
		{"large dynamic array", ArrayOf(MustNewType("string"), 1<<40), words("20", "01")},
	}
	for _, tt := range tests {
		assert.NotPanics(t, func() {
			_, err := Decode(tt.data, tt.typ)
			assert.Error(t, err, tt.name)
		}, tt.name)
	}
	// the largest accepted fixed array still resolves
	_, err := NewType("uint256[33554432]", nil)
	assert.NoError(t, err)
}

func TestDecodeInvalidEncoding(t *testing.T) {
	_, err := Decode(words("02"), MustNewType("bool"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = Decode(words("0100"), MustNewType("uint8"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	// 0x80 is not a sign-extended int8
	_, err = Decode(words("80"), MustNewType("int8"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	fn := append(make([]byte, 24), 0, 0, 0, 0, 0, 0, 0, 1)
	_, err = Decode(fn, MustNewType("function"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecodeSignedIntegers(t *testing.T) {
	minusOne := common.FromHex("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	vals, err := Decode(minusOne, MustNewType("int8"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-1), vals[0].BigInt())

	vals, err = Decode(minusOne, MustNewType("int256"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-1), vals[0].BigInt())

	vals, err = Decode(minusOne, MustNewType("uint256"))
	require.NoError(t, err)
	assert.Equal(t, common.MaxUint256, vals[0].BigInt())
}

func TestDecodeDynamicOffset(t *testing.T) {
	data := append(words("01", "40", "03"), rightWord("abc")...)
	vals, err := Decode(data, MustNewType("uint256"), MustNewType("string"))
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, big.NewInt(1), vals[0].BigInt())
	assert.Equal(t, "abc", vals[1].Text())
}

func TestEmptyReturn(t *testing.T) {
	args := NewArguments(MustNewType("uint256"))
	_, err := args.Unpack(nil)
	var eerr *EmptyReturnError
	require.True(t, errors.As(err, &eerr))
	assert.ErrorIs(t, err, ErrEmptyReturn)

	vals, err := Arguments{}.Unpack(nil)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestUnpackIntoMap(t *testing.T) {
	args := Arguments{
		{Name: "owner", Type: MustNewType("address"), Indexed: true},
		{Name: "amount", Type: MustNewType("uint256")},
		{Name: "memo", Type: MustNewType("string")},
	}
	data := append(words("2a", "40", "02"), rightWord("hi")...)

	out := make(map[string]Value)
	require.NoError(t, args.UnpackIntoMap(out, data))
	assert.Len(t, out, 2)
	assert.Equal(t, big.NewInt(42), out["amount"].BigInt())
	assert.Equal(t, "hi", out["memo"].Text())

	require.Error(t, args.UnpackIntoMap(nil, data))
}

func roundTrip(t *testing.T, values ...Value) {
	t.Helper()
	enc, err := Encode(values...)
	require.NoError(t, err)

	types := make([]Type, len(values))
	for i, v := range values {
		types[i] = v.Type()
	}
	dec, err := Decode(enc, types...)
	require.NoError(t, err)
	require.Len(t, dec, len(values))
	for i := range values {
		assert.True(t, values[i].Equal(dec[i]), "value %d: have %v, want %v", i, dec[i], values[i])
	}
}

func TestRoundTripScalars(t *testing.T) {
	i256, err := NewInt(256, common.MinInt256)
	require.NoError(t, err)
	u256, err := NewUint(256, common.MaxUint256)
	require.NoError(t, err)
	i24, err := NewInt64(24, -8388608)
	require.NoError(t, err)
	b32, err := NewFixedBytes(common.Hash{0xde, 0xad}.Bytes())
	require.NoError(t, err)
	var fn [24]byte
	fn[0], fn[23] = 0x11, 0x22

	roundTrip(t,
		i256, u256, i24, b32,
		NewBool(true),
		NewAddress(common.HexToAddress("0x970e8128ab834e8eac17ab8e3812f010678cf791")),
		NewString(""),
		NewString("a string that is longer than one single word of thirty two bytes"),
		NewBytes(nil),
		NewBytes(make([]byte, 65)),
		NewFunction(fn),
	)
}

func TestRoundTripNested(t *testing.T) {
	u := MustNewType("uint256")
	s := MustNewType("string")

	inner1, err := NewSlice(u, mustUint(t, 256, 1), mustUint(t, 256, 2))
	require.NoError(t, err)
	inner2, err := NewSlice(u)
	require.NoError(t, err)
	nested, err := NewSlice(SliceOf(u), inner1, inner2)
	require.NoError(t, err)

	strs, err := NewArray(s, NewString("x"), NewString("yy"))
	require.NoError(t, err)

	rec1 := NewTuple(NewString("alice"), mustUint(t, 256, 10), NewBool(true))
	rec2 := NewTuple(NewString("bob"), mustUint(t, 256, 20), NewBool(false))
	records, err := NewSlice(rec1.Type(), rec1, rec2)
	require.NoError(t, err)

	fixed, err := NewArray(MustNewType("uint8"), mustUint(t, 8, 3), mustUint(t, 8, 4))
	require.NoError(t, err)
	grid, err := NewArray(fixed.Type(), fixed, fixed)
	require.NoError(t, err)

	deep := NewTuple(NewBytes([]byte{1, 2, 3}), NewTuple(NewString("in"), grid))

	roundTrip(t, nested, strs, records, grid, deep, mustUint(t, 64, 99))
}

func TestRoundTripArguments(t *testing.T) {
	args := NewArguments(MustNewType("(address,string[])[]"), MustNewType("bytes32[2]"), MustNewType("int16"))

	tags, err := NewSlice(MustNewType("string"), NewString("a"), NewString("b"))
	require.NoError(t, err)
	entry := NewTuple(NewAddress(common.Address{0xaa}), tags)
	list, err := NewSlice(entry.Type(), entry)
	require.NoError(t, err)

	h1, _ := NewFixedBytes(common.Hash{1}.Bytes())
	h2, _ := NewFixedBytes(common.Hash{2}.Bytes())
	hashes, err := NewArray(MustNewType("bytes32"), h1, h2)
	require.NoError(t, err)
	small, err := NewInt64(16, -300)
	require.NoError(t, err)

	enc, err := args.Pack(list, hashes, small)
	require.NoError(t, err)
	dec, err := args.Unpack(enc)
	require.NoError(t, err)
	require.Len(t, dec, 3)
	assert.True(t, list.Equal(dec[0]))
	assert.True(t, hashes.Equal(dec[1]))
	assert.Equal(t, int64(-300), dec[2].BigInt().Int64())
}
