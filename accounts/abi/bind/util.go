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
	"time"

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/log"
)

// DefaultPollInterval is the receipt query period used by WaitMined.
var DefaultPollInterval = time.Second

// WaitMined waits for the transaction with the provided hash to be committed.
// It stops waiting when the context is canceled.
// WaitMined 等待指定哈希的交易上链，上下文取消时停止等待。
func WaitMined(ctx context.Context, b DeployBackend, hash common.Hash) (*types.Receipt, error) {
	return waitMined(ctx, b, hash, DefaultPollInterval)
}

// WaitMinedInterval is like WaitMined but polls with the given period.
func WaitMinedInterval(ctx context.Context, b DeployBackend, hash common.Hash, interval time.Duration) (*types.Receipt, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return waitMined(ctx, b, hash, interval)
}

func waitMined(ctx context.Context, b DeployBackend, hash common.Hash, interval time.Duration) (*types.Receipt, error) {
	queryTicker := time.NewTicker(interval)
	defer queryTicker.Stop()

	logger := log.New("hash", hash)
	for {
		receipt, err := b.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err == nil || errors.Is(err, ErrReceiptNotFound) {
			logger.Trace("Transaction not yet committed")
		} else {
			logger.Trace("Receipt retrieval failed", "err", err)
		}

		// Wait for the next round.
		// 等待下一轮查询。
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, errors.Join(ErrTransportTimeout, ctx.Err())
			}
			return nil, ctx.Err()
		case <-queryTicker.C:
		}
	}
}

// WaitDeployed waits for a contract deployment transaction with the provided
// hash and returns the on-chain contract address when it is committed.
// WaitDeployed 等待部署交易上链并返回合约地址。
func WaitDeployed(ctx context.Context, b DeployBackend, hash common.Hash) (common.Address, error) {
	receipt, err := WaitMined(ctx, b, hash)
	if err != nil {
		return common.Address{}, err
	}
	if receipt.ContractAddress == nil {
		return common.Address{}, newDeploymentError(receipt)
	}
	// Check that code has indeed been deployed at the address.
	// 检查合约地址上是否确实部署了代码。
	code, err := b.CodeAt(ctx, *receipt.ContractAddress)
	if err == nil && len(code) == 0 {
		err = ErrNoCodeAfterDeploy
	}
	return *receipt.ContractAddress, err
}
