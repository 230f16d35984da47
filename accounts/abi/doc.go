// Copyright 2015 The go-ethereum Authors
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

// Package abi implements the contract ABI (Application Binary Interface)
// used by FISCO BCOS and other EVM-compatible chains.
//
// The ABI is strongly typed. Types are resolved from their canonical names
// into Type, and every value passed to or returned from a contract is a
// Value: a closed variant carrying its declared type. Values are encoded with
// the head/tail layout, where static values sit in place and dynamic values
// are referenced by offset words relative to the enclosing head.
//
// Selectors, event topics and error identifiers are digests of canonical
// signatures. The digest algorithm depends on the chain's crypto suite, so it
// is bound into a Codec once per client configuration instead of being fixed
// at package level.
//
// abi 包实现合约 ABI：类型解析、头部/尾部编码与解码、签名与选择器计算。
// 哈希算法随链的密码套件变化，因此绑定在 Codec 中而非包级全局。
package abi
