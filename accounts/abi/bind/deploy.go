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

package bind

import (
	"context"
	"fmt"

	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/log"
)

// DeploymentError is returned when a deployment receipt carries no contract
// address. Code and Message come from the receipt status table.
// DeploymentError 表示部署收据中没有合约地址。
type DeploymentError struct {
	Receipt *types.Receipt
	Code    uint64
	Message string
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deploy contract failed, status %d: %s", e.Code, e.Message)
}

func newDeploymentError(receipt *types.Receipt) *DeploymentError {
	ret := ParseReceiptStatus(receipt.Status)
	msg := ret.Message
	if receipt.Message != "" {
		msg = receipt.Message
	} else if receipt.Status == types.ReceiptStatusSuccessful {
		msg = "no contract address in receipt"
	}
	return &DeploymentError{Receipt: receipt, Code: receipt.Status, Message: msg}
}

// DeployContract deploys a contract onto the chain and binds the returned
// address. The payload is the bytecode followed by the encoded constructor
// arguments.
// DeployContract 部署合约并返回绑定到新地址的合约对象。
func DeployContract(ctx context.Context, contractABI abi.ABI, codec *abi.Codec, bytecode []byte, transport Transport, signer Signer, params ...abi.Value) (*BoundContract, *types.Receipt, error) {
	input, err := codec.EncodeConstructor(contractABI.Constructor, bytecode, params...)
	if err != nil {
		return nil, nil, err
	}
	receipt, err := transport.SendTransaction(ctx, nil, input, signer)
	if err != nil {
		return nil, nil, fmt.Errorf("deploy: %w", err)
	}
	if receipt == nil {
		return nil, nil, fmt.Errorf("deploy: %w", ErrReceiptNotFound)
	}
	if receipt.ContractAddress == nil {
		return nil, receipt, newDeploymentError(receipt)
	}
	log.Debug("Contract deployed", "address", *receipt.ContractAddress, "hash", receipt.TransactionHash)

	c := NewBoundContract(*receipt.ContractAddress, contractABI, codec, transport, signer)
	c.deployReceipt = receipt
	return c, receipt, nil
}
