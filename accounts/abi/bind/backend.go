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
	"context"
	"errors"

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
)

var (
	// ErrNoCode is returned by call and transact operations for which the requested
	// recipient contract to operate on does not exist or does not have any code
	// associated with it.
	// ErrNoCode 在目标合约不存在或没有关联代码时返回。
	ErrNoCode = errors.New("no contract code at given address")

	// ErrNoCodeAfterDeploy is returned by WaitDeployed if contract creation leaves
	// an empty contract behind.
	// ErrNoCodeAfterDeploy 在合约创建后留下空合约时由 WaitDeployed 返回。
	ErrNoCodeAfterDeploy = errors.New("no contract code after deployment")

	// ErrTransportTimeout is returned, wrapped, when the transport gave up waiting
	// for the node. Callers distinguish it with errors.Is.
	// ErrTransportTimeout 表示传输层等待节点超时，可通过 errors.Is 识别。
	ErrTransportTimeout = errors.New("transport timeout")

	// ErrNoAddress is returned when a call or transaction targets a bound
	// contract that has no address yet.
	ErrNoAddress = errors.New("contract has no address")

	// ErrReceiptNotFound is returned by a DeployBackend while the transaction
	// has not been committed yet.
	ErrReceiptNotFound = errors.New("transaction receipt not found")
)

// Signer is the account a transaction is sent from. The binding only asks
// for the address; how the transport produces the signature is up to the
// concrete signer handed to it.
// Signer 是交易发送方账户，绑定层只读取地址，签名由传输层与具体实现完成。
type Signer interface {
	Address() common.Address
}

// Transport defines the methods needed to talk to a node on behalf of a
// bound contract.
// Transport 定义绑定合约与节点交互所需的方法。
type Transport interface {
	// Call executes a read-only call with the given input against the latest
	// state of the contract at to.
	// Call 以给定输入对合约执行只读调用。
	Call(ctx context.Context, to common.Address, data []byte) (*types.CallResult, error)

	// SendTransaction signs and submits a transaction and blocks until its
	// receipt is available. A nil to deploys data as contract bytecode.
	// SendTransaction 签名并提交交易，阻塞直到拿到收据；to 为 nil 表示部署合约。
	SendTransaction(ctx context.Context, to *common.Address, data []byte, signer Signer) (*types.Receipt, error)

	// SendTransactionAsync submits a transaction and returns immediately. The
	// callback is invoked exactly once, with either the receipt or an error.
	// SendTransactionAsync 提交交易后立即返回，回调恰好被调用一次。
	SendTransactionAsync(ctx context.Context, to *common.Address, data []byte, signer Signer, cb func(*types.Receipt, error))
}

// DeployBackend wraps the operations needed by WaitMined and WaitDeployed.
// DeployBackend 包装了 WaitMined 和 WaitDeployed 所需的操作。
type DeployBackend interface {
	// TransactionReceipt returns the receipt of a committed transaction, or an
	// error wrapping ErrReceiptNotFound while it is still pending.
	// TransactionReceipt 返回已上链交易的收据。
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// CodeAt returns the code of the given account. This is needed to differentiate
	// between contract internal errors and a deployment that left no code.
	// CodeAt 返回给定账户的代码。
	CodeAt(ctx context.Context, account common.Address) ([]byte, error)
}
