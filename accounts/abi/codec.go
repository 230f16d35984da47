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

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/lru"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
)

// digestCacheBytes bounds the memory held by memoised signature digests.
const digestCacheBytes = 256 * 1024

// Codec binds the ABI codec to one hash suite. Selectors, event topics and
// error identifiers are all derived from signature digests of that suite.
// A Codec is built once per client configuration and shared; it is safe for
// concurrent use.
//
// Codec 将编解码器绑定到一种哈希算法，按客户端配置创建一次并共享，可并发使用。
type Codec struct {
	hasher crypto.Hasher
	cache  *lru.SizeConstrainedCache[string, []byte] // signature -> digest
}

// NewCodec creates a codec for the hash suite. A nil hasher selects keccak256.
func NewCodec(hasher crypto.Hasher) *Codec {
	if hasher == nil {
		hasher = crypto.Keccak256Hasher
	}
	return &Codec{
		hasher: hasher,
		cache:  lru.NewSizeConstrainedCache[string, []byte](digestCacheBytes),
	}
}

// Hasher returns the bound hash suite.
func (c *Codec) Hasher() crypto.Hasher {
	return c.hasher
}

// Hash returns the digest of a canonical signature.
func (c *Codec) Hash(sig string) []byte {
	if digest, ok := c.cache.Get(sig); ok {
		return common.CopyBytes(digest)
	}
	digest := c.hasher.Hash([]byte(sig))
	c.cache.Add(sig, common.CopyBytes(digest))
	return digest
}

// Selector returns the first four bytes of the signature digest.
// Selector 返回签名摘要的前 4 字节。
func (c *Codec) Selector(sig string) [4]byte {
	var sel [4]byte
	copy(sel[:], c.Hash(sig))
	return sel
}

// MethodID returns the 4 byte selector of a function.
func (c *Codec) MethodID(m Method) []byte {
	sel := c.Selector(m.Sig)
	return sel[:]
}

// EventTopic returns the topic0 identifying an event in a log.
func (c *Codec) EventTopic(e Event) common.Hash {
	return common.BytesToHash(c.Hash(e.Sig))
}

// ErrorID returns the 4 byte identifier of a custom error.
func (c *Codec) ErrorID(e Error) [4]byte {
	return c.Selector(e.Sig)
}

// EncodeCall encodes a function call: selector followed by the packed
// arguments.
// EncodeCall 编码函数调用：选择器 ‖ 参数编码。
func (c *Codec) EncodeCall(method Method, args ...Value) ([]byte, error) {
	if method.Type != Function {
		return nil, fmt.Errorf("abi: %s is not a callable function", method)
	}
	arguments, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("abi: packing %s: %w", method.Sig, err)
	}
	return append(c.MethodID(method), arguments...), nil
}

// EncodeConstructor encodes a deployment payload: bytecode followed by the
// packed constructor arguments.
func (c *Codec) EncodeConstructor(ctor Method, bytecode []byte, args ...Value) ([]byte, error) {
	arguments, err := ctor.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("abi: packing constructor: %w", err)
	}
	return append(common.CopyBytes(bytecode), arguments...), nil
}

// DecodeCall splits call data into its method and decoded arguments.
func (c *Codec) DecodeCall(abi *ABI, data []byte) (*Method, []Value, error) {
	method, err := abi.MethodById(c, data)
	if err != nil {
		return nil, nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return method, args, nil
}

// UnpackError decodes revert data produced by the custom error e.
func (c *Codec) UnpackError(e Error, data []byte) ([]Value, error) {
	if len(data) < 4 {
		return nil, &TruncatedDataError{Type: e.Sig, Offset: 0, Need: 4, Have: len(data)}
	}
	if id := c.ErrorID(e); string(data[:4]) != string(id[:]) {
		return nil, fmt.Errorf("abi: invalid identifier, have %#x want %#x", data[:4], id)
	}
	return e.Inputs.Unpack(data[4:])
}
