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
	"fmt"
	"strings"
)

// Hasher is the pluggable digest used for function selectors and event topics.
// A hasher is bound once when a client is configured and never changes afterwards.
// Hasher 是可插拔的摘要算法，用于函数选择器与事件 topic。
type Hasher interface {
	// Hash returns the digest of the concatenated inputs.
	Hash(data ...[]byte) []byte
	// Size returns the digest length in bytes.
	Size() int
	// Name returns the suite name used in configuration.
	Name() string
}

// Suite names accepted by HasherByName.
const (
	Keccak256Name = "keccak256"
	SHA3256Name   = "sha3-256"
)

type keccak256Hasher struct{}

func (keccak256Hasher) Hash(data ...[]byte) []byte { return Keccak256(data...) }
func (keccak256Hasher) Size() int                  { return DigestLength }
func (keccak256Hasher) Name() string               { return Keccak256Name }

type sha3Hasher struct{}

func (sha3Hasher) Hash(data ...[]byte) []byte { return SHA3256(data...) }
func (sha3Hasher) Size() int                  { return DigestLength }
func (sha3Hasher) Name() string               { return SHA3256Name }

var (
	// Keccak256Hasher is the default suite used with ECDSA accounts.
	Keccak256Hasher Hasher = keccak256Hasher{}
	// SHA3Hasher hashes with FIPS-202 SHA3-256.
	SHA3Hasher Hasher = sha3Hasher{}
)

// HasherByName resolves a suite name. An empty name selects keccak256.
func HasherByName(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Keccak256Name, "keccak-256", "ecdsa":
		return Keccak256Hasher, nil
	case SHA3256Name, "sha3":
		return SHA3Hasher, nil
	default:
		return nil, fmt.Errorf("unknown hash suite %q", name)
	}
}
