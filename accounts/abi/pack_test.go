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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

// words joins 32 byte words given as hex strings, left padding short ones.
func words(ws ...string) []byte {
	var out []byte
	for _, w := range ws {
		out = append(out, common.LeftPadBytes(common.FromHex(w), 32)...)
	}
	return out
}

func rightWord(s string) []byte {
	return common.RightPadBytes([]byte(s), 32)
}

func mustUint(t *testing.T, bits int, v int64) Value {
	t.Helper()
	val, err := NewUint(bits, big.NewInt(v))
	require.NoError(t, err)
	return val
}

func TestEncodeStaticWords(t *testing.T) {
	enc, err := Encode(mustUint(t, 8, 5))
	require.NoError(t, err)
	assert.Equal(t, words("05"), enc)

	enc, err = Encode(NewBool(true))
	require.NoError(t, err)
	assert.Equal(t, words("01"), enc)

	enc, err = Encode(NewBool(false))
	require.NoError(t, err)
	assert.Equal(t, words("00"), enc)

	addr := common.HexToAddress("0x970e8128ab834e8eac17ab8e3812f010678cf791")
	enc, err = Encode(NewAddress(addr))
	require.NoError(t, err)
	assert.Equal(t, words("970e8128ab834e8eac17ab8e3812f010678cf791"), enc)

	fixed, err := NewFixedBytes([]byte{0xab, 0xcd})
	require.NoError(t, err)
	enc, err = Encode(fixed)
	require.NoError(t, err)
	assert.Equal(t, common.RightPadBytes([]byte{0xab, 0xcd}, 32), enc)
}

func TestEncodeNegative(t *testing.T) {
	v, err := NewInt64(256, -1)
	require.NoError(t, err)
	enc, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ff", 32), common.Bytes2Hex(enc))

	v, err = NewInt64(8, -128)
	require.NoError(t, err)
	enc, err = Encode(v)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ff", 31)+"80", common.Bytes2Hex(enc))
}

func TestEncodeDynamicOffset(t *testing.T) {
	enc, err := Encode(mustUint(t, 256, 1), NewString("abc"))
	require.NoError(t, err)

	want := append(words("01", "40", "03"), rightWord("abc")...)
	assert.Equal(t, want, enc)
	assert.Equal(t, big.NewInt(64), new(big.Int).SetBytes(enc[32:64]))
}

func TestEncodeSlice(t *testing.T) {
	u := MustNewType("uint256")
	slice, err := NewSlice(u, mustUint(t, 256, 1), mustUint(t, 256, 2))
	require.NoError(t, err)

	enc, err := Encode(slice)
	require.NoError(t, err)
	assert.Equal(t, words("20", "02", "01", "02"), enc)
}

func TestEncodeStringSlice(t *testing.T) {
	slice, err := NewSlice(MustNewType("string"), NewString("a"), NewString("bc"))
	require.NoError(t, err)

	enc, err := Encode(slice)
	require.NoError(t, err)
	want := words("20", "02", "40", "80", "01")
	want = append(want, rightWord("a")...)
	want = append(want, words("02")...)
	want = append(want, rightWord("bc")...)
	assert.Equal(t, want, enc)
}

func TestEncodeStaticTupleInline(t *testing.T) {
	tuple := NewTuple(mustUint(t, 256, 7), NewBool(true))
	enc, err := Encode(tuple, mustUint(t, 8, 1))
	require.NoError(t, err)
	assert.Equal(t, words("07", "01", "01"), enc)
}

func TestEncodeDynamicTuple(t *testing.T) {
	tuple := NewTuple(mustUint(t, 256, 7), NewString("x"))
	enc, err := Encode(mustUint(t, 8, 1), tuple)
	require.NoError(t, err)

	want := words("01", "40", "07", "40", "01")
	want = append(want, rightWord("x")...)
	assert.Equal(t, want, enc)
}

func TestArgumentsPackChecksTypes(t *testing.T) {
	args := NewArguments(MustNewType("address"), MustNewType("uint256"))

	_, err := args.Pack(NewAddress(common.Address{}))
	require.Error(t, err)

	_, err = args.Pack(NewAddress(common.Address{}), mustUint(t, 128, 1))
	require.ErrorIs(t, err, ErrTypeConversion)

	enc, err := args.Pack(NewAddress(common.Address{1}), mustUint(t, 256, 1))
	require.NoError(t, err)
	assert.Len(t, enc, 64)
}

func TestEncodeRejectsTopicHash(t *testing.T) {
	v, err := DecodeIndexed(common.Hash{1}, MustNewType("string"))
	require.NoError(t, err)
	_, err = Encode(v)
	require.ErrorIs(t, err, ErrTypeConversion)
}
