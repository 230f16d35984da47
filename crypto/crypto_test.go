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

package crypto

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

var (
	testAddrHex = "970e8128ab834e8eac17ab8e3812f010678cf791"
	testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
)

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	assert.Equal(t, exp, Keccak256(msg))
	assert.Equal(t, common.BytesToHash(exp), Keccak256Hash(msg))
}

func TestSHA3256(t *testing.T) {
	exp, _ := hex.DecodeString("3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532")
	assert.Equal(t, exp, SHA3256([]byte("abc")))
}

func TestHasherByName(t *testing.T) {
	tests := []struct {
		name string
		want Hasher
	}{
		{"", Keccak256Hasher},
		{"keccak256", Keccak256Hasher},
		{"KECCAK256", Keccak256Hasher},
		{"sha3-256", SHA3Hasher},
	}
	for _, tt := range tests {
		h, err := HasherByName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want.Name(), h.Name())
		assert.Equal(t, 32, h.Size())
	}
	_, err := HasherByName("sm3")
	require.Error(t, err)

	// Suites must disagree, otherwise selecting one is meaningless.
	assert.NotEqual(t, Keccak256Hasher.Hash([]byte("x")), SHA3Hasher.Hash([]byte("x")))
	assert.Equal(t, Keccak256Hasher.Hash([]byte("ab"), []byte("c")), Keccak256([]byte("abc")))
}

func TestKeyPairAddress(t *testing.T) {
	kp, err := HexToKeyPair(testPrivHex)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddrHex), kp.Address())
	assert.NotContains(t, kp.String(), testPrivHex)

	_, err = HexToKeyPair("0x01")
	require.Error(t, err)
	_, err = ToKeyPair(make([]byte, 32))
	require.Error(t, err)
}

func TestKeyPairSignVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	digest := Keccak256([]byte("foo"))
	sig, err := kp.Sign(digest)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)
	assert.True(t, VerifySignature(kp.PublicKey(), digest, sig))

	other := Keccak256([]byte("bar"))
	assert.False(t, VerifySignature(kp.PublicKey(), other, sig))

	_, err = kp.Sign([]byte("short"))
	require.Error(t, err)
}

func TestLoadKeyPair(t *testing.T) {
	kp, err := HexToKeyPair(testPrivHex)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "key")
	require.NoError(t, SaveKeyPair(file, kp))

	loaded, err := LoadKeyPair(file)
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), loaded.Address())

	require.NoError(t, os.WriteFile(file, []byte(testPrivHex+"\n"), 0600))
	_, err = LoadKeyPair(file)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(file, []byte("abcd"), 0600))
	_, err = LoadKeyPair(file)
	require.Error(t, err)
}
