// Copyright 2016 The go-ethereum Authors
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

package hexutil

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"
)

func checkError(t *testing.T, input string, got, want error) bool {
	if got == nil {
		if want != nil {
			t.Errorf("input %s: got no error, want %q", input, want)
			return false
		}
		return true
	}
	if want == nil {
		t.Errorf("input %s: unexpected error %q", input, got)
	} else if got.Error() != want.Error() {
		t.Errorf("input %s: got error %q, want %q", input, got, want)
	}
	return false
}

func referenceBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid")
	}
	return b
}

var unmarshalBytesTests = []struct {
	input   string
	want    []byte
	wantErr error
}{
	{input: `"0x"`, want: []byte{}},
	{input: `""`, want: []byte{}},
	{input: `"0x02"`, want: []byte{0x02}},
	{input: `"02"`, want: []byte{0x02}},
	{input: `"0xffffffffff"`, want: []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
	{input: `"0x0"`, wantErr: ErrOddLength},
	{input: `"0xzz"`, wantErr: ErrSyntax},
}

func TestUnmarshalBytes(t *testing.T) {
	for _, test := range unmarshalBytesTests {
		var v Bytes
		err := json.Unmarshal([]byte(test.input), &v)
		if test.wantErr != nil {
			if err == nil {
				t.Errorf("input %s: got no error, want %q", test.input, test.wantErr)
			}
			continue
		}
		if !checkError(t, test.input, err, nil) {
			continue
		}
		if !bytes.Equal(test.want, v) {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, v, test.want)
		}
	}
}

func TestMarshalBytes(t *testing.T) {
	out, err := json.Marshal(Bytes{0x01, 0xab})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"0x01ab"` {
		t.Errorf("got %s, want %s", out, `"0x01ab"`)
	}
}

var unmarshalBigTests = []struct {
	input   string
	want    *big.Int
	wantErr error
}{
	{input: `"0x0"`, want: big.NewInt(0)},
	{input: `"0x2"`, want: big.NewInt(0x2)},
	{input: `"0x12345678abc"`, want: big.NewInt(0x12345678abc)},
	{
		input: `"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"`,
		want:  referenceBig("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
	},
	{input: `"0x"`, wantErr: ErrEmptyNumber},
	{input: `"0x01"`, wantErr: ErrLeadingZero},
	{input: `"10"`, wantErr: ErrMissingPrefix},
}

func TestUnmarshalBig(t *testing.T) {
	for _, test := range unmarshalBigTests {
		var v Big
		err := json.Unmarshal([]byte(test.input), &v)
		if test.wantErr != nil {
			if err == nil {
				t.Errorf("input %s: got no error, want %q", test.input, test.wantErr)
			}
			continue
		}
		if !checkError(t, test.input, err, nil) {
			continue
		}
		if v.ToInt().Cmp(test.want) != 0 {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, v.ToInt(), test.want)
		}
	}
}

func TestUnmarshalUint64(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{`"0x0"`, 0},
		{`"0x1f"`, 0x1f},
		{`16`, 16},
	}
	for _, test := range tests {
		var v Uint64
		err := json.Unmarshal([]byte(test.input), &v)
		if !checkError(t, test.input, err, nil) {
			continue
		}
		if uint64(v) != test.want {
			t.Errorf("input %s: value mismatch: got %d, want %d", test.input, v, test.want)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}
	enc := Encode(in)
	if enc != "0xdeadbeef" {
		t.Fatalf("encode mismatch: %s", enc)
	}
	dec, err := Decode(enc)
	checkError(t, enc, err, nil)
	if !bytes.Equal(dec, in) {
		t.Errorf("decode mismatch: %x", dec)
	}
	_, err = Decode("deadbeef")
	checkError(t, "deadbeef", err, ErrMissingPrefix)
}
