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
	"errors"
	"fmt"

	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/log"
)

// CallExecutionError is returned when the node reports a non-success status
// for a read call or a transaction.
// CallExecutionError 表示节点对调用或交易返回了非成功状态。
type CallExecutionError struct {
	Method string
	Status uint64
	Output []byte
	Reason string // decoded revert reason, if any
}

func (e *CallExecutionError) Error() string {
	msg := fmt.Sprintf("execution of %s failed with status %s", e.Method, ParseReceiptStatus(e.Status))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// BoundContract is the base wrapper object that reflects a contract on the
// chain. It contains a collection of methods used by higher level contract
// bindings to operate.
// BoundContract 是链上合约的基础包装对象，供上层绑定使用。
type BoundContract struct {
	address   common.Address
	abi       abi.ABI
	codec     *abi.Codec
	transport Transport
	signer    Signer

	// receipt of the deployment, when the contract was created through DeployContract
	deployReceipt *types.Receipt
	logger        log.Logger
}

// NewBoundContract creates a low level contract interface through which calls
// and transactions may be made through.
// NewBoundContract 创建底层合约接口，用于发起调用与交易。
func NewBoundContract(address common.Address, abi abi.ABI, codec *abi.Codec, transport Transport, signer Signer) *BoundContract {
	return &BoundContract{
		address:   address,
		abi:       abi,
		codec:     codec,
		transport: transport,
		signer:    signer,
		logger:    log.New("contract", address),
	}
}

// Address returns the address of the contract.
func (c *BoundContract) Address() common.Address { return c.address }

// ABI returns the contract interface.
func (c *BoundContract) ABI() abi.ABI { return c.abi }

// Codec returns the codec the contract encodes with.
func (c *BoundContract) Codec() *abi.Codec { return c.codec }

// From returns the address of the account transactions are sent from, or the
// zero address for a read-only binding.
// From 返回当前外部账户地址。
func (c *BoundContract) From() common.Address {
	if c.signer == nil {
		return common.Address{}
	}
	return c.signer.Address()
}

// DeployReceipt returns the receipt of the deployment transaction, or nil if
// the contract was bound to an existing address.
func (c *BoundContract) DeployReceipt() *types.Receipt { return c.deployReceipt }

func (c *BoundContract) method(name string) (abi.Method, error) {
	m, ok := c.abi.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("method '%s' not found", name)
	}
	return m, nil
}

// Call invokes the (constant) contract method with params as input values and
// returns the decoded outputs.
// Call 以只读方式调用合约方法并返回解码后的结果。
func (c *BoundContract) Call(ctx context.Context, method string, params ...abi.Value) ([]abi.Value, error) {
	if c.address == (common.Address{}) {
		return nil, ErrNoAddress
	}
	m, err := c.method(method)
	if err != nil {
		return nil, err
	}
	input, err := c.codec.EncodeCall(m, params...)
	if err != nil {
		return nil, err
	}
	res, err := c.transport.Call(ctx, c.address, input)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", m.Sig, err)
	}
	if res.Status != types.ReceiptStatusSuccessful {
		c.logger.Debug("Call reverted", "method", m.Sig, "status", res.Status)
		return nil, c.executionError(m.Sig, res.Status, res.Output)
	}
	out, err := m.Outputs.Unpack(res.Output)
	if err != nil {
		var empty *abi.EmptyReturnError
		if errors.As(err, &empty) {
			empty.Method = m.Sig
		}
		return nil, err
	}
	return out, nil
}

// CallSingle invokes method and returns its first output.
// CallSingle 调用方法并返回第一个返回值。
func (c *BoundContract) CallSingle(ctx context.Context, method string, params ...abi.Value) (abi.Value, error) {
	out, err := c.Call(ctx, method, params...)
	if err != nil {
		return abi.Value{}, err
	}
	if len(out) == 0 {
		return abi.Value{}, &abi.EmptyReturnError{Method: method}
	}
	return out[0], nil
}

// CallAs invokes method and converts its first output to T.
// CallAs 调用方法并将第一个返回值转换为 T。
func CallAs[T any](ctx context.Context, c *BoundContract, method string, params ...abi.Value) (T, error) {
	v, err := c.CallSingle(ctx, method, params...)
	if err != nil {
		var zero T
		return zero, err
	}
	return abi.ConvertTo[T](v)
}

// Transact invokes the (paid) contract method with params as input values and
// blocks until the receipt is available. A receipt with a failure status is
// returned together with a CallExecutionError.
// Transact 发送交易并阻塞等待收据。
func (c *BoundContract) Transact(ctx context.Context, method string, params ...abi.Value) (*types.Receipt, error) {
	m, input, err := c.prepare(method, params)
	if err != nil {
		return nil, err
	}
	receipt, err := c.transport.SendTransaction(ctx, &c.address, input, c.signer)
	if err != nil {
		return nil, fmt.Errorf("transact %s: %w", m.Sig, err)
	}
	return receipt, c.checkReceipt(m.Sig, receipt)
}

// TransactAsync submits the transaction and returns immediately. The callback
// is invoked exactly once, with the receipt or an error, and never on the
// caller's goroutine. Encoding errors are delivered through the callback as
// well.
// TransactAsync 异步发送交易，回调恰好被调用一次，且不在调用方协程中执行。
func (c *BoundContract) TransactAsync(ctx context.Context, cb func(*types.Receipt, error), method string, params ...abi.Value) {
	m, input, err := c.prepare(method, params)
	if err != nil {
		go cb(nil, err)
		return
	}
	c.transport.SendTransactionAsync(ctx, &c.address, input, c.signer, func(receipt *types.Receipt, err error) {
		if err != nil {
			cb(nil, fmt.Errorf("transact %s: %w", m.Sig, err))
			return
		}
		cb(receipt, c.checkReceipt(m.Sig, receipt))
	})
}

// TransactFuture is TransactAsync returning a Future instead of taking a
// callback.
func (c *BoundContract) TransactFuture(ctx context.Context, method string, params ...abi.Value) *Future {
	f := newFuture()
	c.TransactAsync(ctx, f.complete, method, params...)
	return f
}

func (c *BoundContract) prepare(method string, params []abi.Value) (abi.Method, []byte, error) {
	if c.address == (common.Address{}) {
		return abi.Method{}, nil, ErrNoAddress
	}
	m, err := c.method(method)
	if err != nil {
		return abi.Method{}, nil, err
	}
	input, err := c.codec.EncodeCall(m, params...)
	if err != nil {
		return abi.Method{}, nil, err
	}
	return m, input, nil
}

func (c *BoundContract) checkReceipt(method string, receipt *types.Receipt) error {
	if receipt == nil {
		return fmt.Errorf("transact %s: %w", method, ErrReceiptNotFound)
	}
	if receipt.Succeeded() {
		return nil
	}
	c.logger.Debug("Transaction failed", "method", method, "status", receipt.Status, "hash", receipt.TransactionHash)
	return c.executionError(method, receipt.Status, receipt.Output)
}

// executionError builds a CallExecutionError, decoding the revert reason from
// output when it is a standard revert or a custom error of the contract.
func (c *BoundContract) executionError(method string, status uint64, output []byte) error {
	err := &CallExecutionError{Method: method, Status: status, Output: common.CopyBytes(output)}
	if reason, rerr := c.codec.UnpackRevert(output); rerr == nil {
		err.Reason = reason
	} else if len(output) >= 4 {
		var id [4]byte
		copy(id[:], output[:4])
		if e, lerr := c.abi.ErrorByID(c.codec, id); lerr == nil {
			if vals, uerr := c.codec.UnpackError(*e, output); uerr == nil {
				err.Reason = e.Name + formatValues(vals)
			}
		}
	}
	return err
}

func formatValues(vals []abi.Value) string {
	s := "("
	for i, v := range vals {
		if i > 0 {
			s += ","
		}
		s += v.String()
	}
	return s + ")"
}

// UnpackLog unpacks a retrieved log into the provided map.
// UnpackLog 将日志解码到给定的 map 中。
func (c *BoundContract) UnpackLog(out map[string]abi.Value, event string, log types.Log) error {
	ev, ok := c.abi.Events[event]
	if !ok {
		return fmt.Errorf("event '%s' not found", event)
	}
	// Anonymous events are not supported.
	if len(log.Topics) == 0 {
		return errNoEventSignature
	}
	if log.Topics[0] != c.codec.EventTopic(ev) {
		return errEventSignatureMismatch
	}
	if len(log.Data) > 0 {
		if err := ev.Inputs.UnpackIntoMap(out, log.Data); err != nil {
			return err
		}
	}
	return abi.ParseTopicsIntoMap(out, ev.Inputs.Indexed(), log.Topics[1:])
}

var (
	errNoEventSignature       = errors.New("no event signature")
	errEventSignatureMismatch = errors.New("event signature mismatch")
)
