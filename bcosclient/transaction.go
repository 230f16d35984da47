// Copyright 2014 The go-ethereum Authors
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

package bcosclient

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi/bind"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
)

var errUnsigned = errors.New("transaction is not signed")

// Transaction is a contract call or deployment ready to be submitted. The
// envelope is serialised with the contract ABI encoding, so the same codec
// that builds the call data also builds the transaction. This is a reference
// format only: FISCO BCOS nodes accept TARS encoded transactions and will not
// decode it.
// Transaction 表示待提交的合约调用或部署交易，外层同样使用 ABI 编码。
type Transaction struct {
	ChainID    string
	GroupID    string
	BlockLimit uint64
	Nonce      string          // random, guards against replay
	To         *common.Address // nil for contract creation
	Input      []byte

	Sender    common.Address
	Signature []byte // [R || S || V] over Hash
}

var (
	uint64T  = abi.MustNewType("uint64")
	txFields = []abi.Type{
		abi.MustNewType("string"),  // chain id
		abi.MustNewType("string"),  // group id
		uint64T,                    // block limit
		abi.MustNewType("string"),  // nonce
		abi.MustNewType("address"), // to
		abi.MustNewType("bytes"),   // input
	}
	rawFields = append(append([]abi.Type{}, txFields...),
		abi.MustNewType("address"), // sender
		abi.MustNewType("bytes"),   // signature
	)
)

// NewTransaction creates an unsigned transaction with a fresh random nonce.
func NewTransaction(chainID, groupID string, blockLimit uint64, to *common.Address, input []byte) *Transaction {
	var dst *common.Address
	if to != nil {
		cpy := *to
		dst = &cpy
	}
	return &Transaction{
		ChainID:    chainID,
		GroupID:    groupID,
		BlockLimit: blockLimit,
		Nonce:      uuid.NewString(),
		To:         dst,
		Input:      common.CopyBytes(input),
	}
}

func (tx *Transaction) fields() ([]abi.Value, error) {
	limit, err := abi.NewUint64(64, tx.BlockLimit)
	if err != nil {
		return nil, err
	}
	var to common.Address
	if tx.To != nil {
		to = *tx.To
	}
	return []abi.Value{
		abi.NewString(tx.ChainID),
		abi.NewString(tx.GroupID),
		limit,
		abi.NewString(tx.Nonce),
		abi.NewAddress(to),
		abi.NewBytes(tx.Input),
	}, nil
}

// Hash returns the digest the sender signs.
// Hash 返回发送方需要签名的摘要。
func (tx *Transaction) Hash(h crypto.Hasher) (common.Hash, error) {
	fields, err := tx.fields()
	if err != nil {
		return common.Hash{}, err
	}
	enc, err := abi.Encode(fields...)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(h.Hash(enc)), nil
}

// Sign fills in the sender and signature using signer.
// Sign 使用签名器填充发送方与签名。
func (tx *Transaction) Sign(h crypto.Hasher, signer bind.TransactionSigner) (common.Hash, error) {
	hash, err := tx.Hash(h)
	if err != nil {
		return common.Hash{}, err
	}
	sig, err := signer.Sign(hash.Bytes())
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing transaction: %w", err)
	}
	tx.Sender = signer.Address()
	tx.Signature = sig
	return hash, nil
}

// MarshalBinary returns the wire encoding of a signed transaction.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	if len(tx.Signature) == 0 {
		return nil, errUnsigned
	}
	fields, err := tx.fields()
	if err != nil {
		return nil, err
	}
	fields = append(fields, abi.NewAddress(tx.Sender), abi.NewBytes(tx.Signature))
	return abi.Encode(fields...)
}

// UnmarshalBinary decodes the wire encoding produced by MarshalBinary.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	vals, err := abi.Decode(b, rawFields...)
	if err != nil {
		return err
	}
	tx.ChainID = vals[0].Text()
	tx.GroupID = vals[1].Text()
	tx.BlockLimit = vals[2].BigInt().Uint64()
	tx.Nonce = vals[3].Text()
	tx.To = nil
	if to := vals[4].Address(); to != (common.Address{}) {
		tx.To = &to
	}
	tx.Input = vals[5].Bytes()
	tx.Sender = vals[6].Address()
	tx.Signature = vals[7].Bytes()
	return nil
}
