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
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

// SignatureLength indicates the byte length required to carry a signature with recovery id.
const SignatureLength = 64 + 1 // 64 bytes ECDSA signature + 1 byte recovery id

var errInvalidKey = errors.New("invalid secp256k1 private key")

// KeyPair is a secp256k1 account key. It satisfies the signer interface of the
// contract binding, which only ever asks for the account address.
// KeyPair 是 secp256k1 账户密钥；合约绑定层只会向它索取地址，私钥不会离开本包。
type KeyPair struct {
	priv    *secp256k1.PrivateKey
	address common.Address
}

// GenerateKeyPair creates a fresh random key.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return newKeyPair(priv), nil
}

// ToKeyPair creates a key pair from a 32 byte private scalar.
func ToKeyPair(d []byte) (*KeyPair, error) {
	if len(d) != 32 {
		return nil, fmt.Errorf("%w: want 32 bytes, have %d", errInvalidKey, len(d))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(d); overflow || scalar.IsZero() {
		return nil, errInvalidKey
	}
	return newKeyPair(secp256k1.NewPrivateKey(&scalar)), nil
}

// HexToKeyPair parses a hex encoded private key. The 0x prefix is optional.
func HexToKeyPair(hexkey string) (*KeyPair, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(hexkey, "0x"), "0X"))
	if byteErr, ok := err.(hex.InvalidByteError); ok {
		return nil, fmt.Errorf("invalid hex character %q in private key", byte(byteErr))
	} else if err != nil {
		return nil, errors.New("invalid hex data for private key")
	}
	return ToKeyPair(b)
}

// LoadKeyPair loads a secp256k1 private key from the given file.
// The file holds the key as 64 hex characters, optionally followed by a newline.
func LoadKeyPair(file string) (*KeyPair, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	r := bufio.NewReader(fd)
	buf := make([]byte, 64)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("key file too short: %w", err)
	}
	if rest, _ := r.ReadString('\n'); strings.TrimSpace(rest) != "" {
		return nil, errors.New("key file too long, want 64 hex characters")
	}
	defer zeroBytes(buf)
	return HexToKeyPair(string(buf))
}

// SaveKeyPair saves a private key to the given file with restrictive permissions.
func SaveKeyPair(file string, kp *KeyPair) error {
	k := hex.EncodeToString(kp.priv.Serialize())
	return os.WriteFile(file, []byte(k), 0600)
}

func newKeyPair(priv *secp256k1.PrivateKey) *KeyPair {
	return &KeyPair{priv: priv, address: PubkeyToAddress(priv.PubKey())}
}

// Address returns the account address derived from the public key.
func (k *KeyPair) Address() common.Address { return k.address }

// PublicKey returns the uncompressed 65 byte public key.
func (k *KeyPair) PublicKey() []byte { return k.priv.PubKey().SerializeUncompressed() }

// Sign calculates an ECDSA signature over a 32 byte digest.
// The produced signature is in the [R || S || V] format where V is 0 or 1.
func (k *KeyPair) Sign(digest []byte) ([]byte, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly %d bytes (%d)", DigestLength, len(digest))
	}
	sig := decred_ecdsa.SignCompact(k.priv, digest, false)
	// Convert to [R || S || V] format.
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[64] = v
	return sig, nil
}

// String hides the key material.
func (k *KeyPair) String() string {
	return "KeyPair(" + k.address.Hex() + ")"
}

// PubkeyToAddress derives the account address: the last 20 bytes of the hash of
// the uncompressed public key without its 0x04 prefix.
func PubkeyToAddress(p *secp256k1.PublicKey) common.Address {
	return common.BytesToAddress(Keccak256(p.SerializeUncompressed()[1:])[12:])
}

// VerifySignature checks an [R || S || V] signature against the public key.
func VerifySignature(pubkey, digest, signature []byte) bool {
	if len(signature) < 64 {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) || s.SetByteSlice(signature[32:64]) {
		return false
	}
	key, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	// Reject malleable signatures. libsecp256k1 does this check but decred doesn't.
	if s.IsOverHalfOrder() {
		return false
	}
	return decred_ecdsa.NewSignature(&r, &s).Verify(digest, key)
}
