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

package bind

import (
	"errors"

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
	"github.com/sunyihoo/bcos-go-sdk/log"
)

// ErrNotAuthorized is returned when a signer is asked to sign for an account
// it does not hold.
// ErrNotAuthorized 在签名器被要求为不属于它的账户签名时返回。
var ErrNotAuthorized = errors.New("not authorized to sign this account")

// TransactionSigner is a Signer that can also produce a signature over a
// transaction digest. Transports that sign locally type-assert to it.
// TransactionSigner 在 Signer 基础上提供对交易摘要签名的能力。
type TransactionSigner interface {
	Signer
	Sign(digest []byte) ([]byte, error)
}

// SignerFn is a signer hook backed by an arbitrary signing function, e.g. a
// remote key service.
type SignerFn struct {
	From common.Address
	Fn   func(account common.Address, digest []byte) ([]byte, error)
}

// Address implements Signer.
func (s *SignerFn) Address() common.Address { return s.From }

// Sign implements TransactionSigner.
func (s *SignerFn) Sign(digest []byte) ([]byte, error) {
	if s.Fn == nil {
		return nil, ErrNotAuthorized
	}
	return s.Fn(s.From, digest)
}

// NewKeyedSigner is a utility method to easily create a transaction signer
// from a single hex encoded private key.
// NewKeyedSigner 从十六进制私钥创建交易签名器。
func NewKeyedSigner(hexkey string) (TransactionSigner, error) {
	kp, err := crypto.HexToKeyPair(hexkey)
	if err != nil {
		return nil, err
	}
	return kp, nil
}

// NewKeyFileSigner loads the private key stored in file. A missing file is an
// error; use crypto.GenerateKeyPair to create a fresh account.
// NewKeyFileSigner 从密钥文件加载签名器。
func NewKeyFileSigner(file string) (TransactionSigner, error) {
	kp, err := crypto.LoadKeyPair(file)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded account key", "file", file, "address", kp.Address())
	return kp, nil
}

// AsTransactionSigner reports whether s can sign digests itself.
func AsTransactionSigner(s Signer) (TransactionSigner, error) {
	if ts, ok := s.(TransactionSigner); ok {
		return ts, nil
	}
	return nil, ErrNotAuthorized
}
