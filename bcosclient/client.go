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

// Package bcosclient provides a client for the FISCO BCOS node RPC API.
//
// Transactions are submitted in a reference envelope built with the contract
// ABI encoding (see Transaction). Production FISCO BCOS nodes expect a TARS
// encoded transaction and reject this format; plug a different bind.Transport
// in front of such nodes. The read methods work against any node.
package bcosclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi/bind"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
	"github.com/sunyihoo/bcos-go-sdk/common/lru"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
	"github.com/sunyihoo/bcos-go-sdk/log"
	"github.com/sunyihoo/bcos-go-sdk/rpc"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultGroupID          = "group0"
	DefaultChainID          = "chain0"
	DefaultBlockLimitOffset = 500
	DefaultMaxAsync         = 64

	receiptCacheSize = 1024
)

// Config holds the chain parameters every request is scoped to.
// Config 保存所有请求共享的链参数。
type Config struct {
	GroupID  string
	ChainID  string
	NodeName string // empty selects any node of the group

	Hasher           crypto.Hasher // defaults to keccak256
	BlockLimitOffset uint64        // blocks a transaction stays valid for
	PollInterval     time.Duration // receipt polling period
	MaxAsync         int64         // concurrent async transactions
}

// DefaultConfig contains reasonable default settings.
var DefaultConfig = Config{
	GroupID:          DefaultGroupID,
	ChainID:          DefaultChainID,
	Hasher:           crypto.Keccak256Hasher,
	BlockLimitOffset: DefaultBlockLimitOffset,
	PollInterval:     bind.DefaultPollInterval,
	MaxAsync:         DefaultMaxAsync,
}

func (cfg Config) sanitize() Config {
	if cfg.GroupID == "" {
		cfg.GroupID = DefaultGroupID
	}
	if cfg.ChainID == "" {
		cfg.ChainID = DefaultChainID
	}
	if cfg.Hasher == nil {
		cfg.Hasher = crypto.Keccak256Hasher
	}
	if cfg.BlockLimitOffset == 0 {
		cfg.BlockLimitOffset = DefaultBlockLimitOffset
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = bind.DefaultPollInterval
	}
	if cfg.MaxAsync <= 0 {
		cfg.MaxAsync = DefaultMaxAsync
	}
	return cfg
}

// Client defines typed wrappers for the node RPC API. It implements
// bind.Transport and bind.DeployBackend.
// Client 对节点 RPC API 进行类型化包装，实现 bind.Transport 与 bind.DeployBackend。
type Client struct {
	c   *rpc.Client
	cfg Config

	sem      *semaphore.Weighted
	receipts *lru.Cache[common.Hash, *types.Receipt]

	mu     sync.Mutex // guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

var (
	_ bind.Transport     = (*Client)(nil)
	_ bind.DeployBackend = (*Client)(nil)
)

// Dial connects a client to the given URL using DefaultConfig.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl, DefaultConfig)
}

// DialContext connects a client to the given URL with context.
func DialContext(ctx context.Context, rawurl string, cfg Config, opts ...rpc.ClientOption) (*Client, error) {
	c, err := rpc.DialOptions(ctx, rawurl, opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(c, cfg), nil
}

// NewClient creates a client that uses the given RPC client.
func NewClient(c *rpc.Client, cfg Config) *Client {
	cfg = cfg.sanitize()
	return &Client{
		c:        c,
		cfg:      cfg,
		sem:      semaphore.NewWeighted(cfg.MaxAsync),
		receipts: lru.NewCache[common.Hash, *types.Receipt](receiptCacheSize),
	}
}

// Close waits for pending async transactions and closes the RPC connection.
// Close 等待异步交易结束后关闭 RPC 连接。
func (bc *Client) Close() {
	bc.once.Do(func() {
		bc.mu.Lock()
		bc.closed = true
		bc.mu.Unlock()
		bc.wg.Wait()
		bc.c.Close()
	})
}

// Client gets the underlying RPC client.
func (bc *Client) Client() *rpc.Client {
	return bc.c
}

// Config returns the effective client configuration.
func (bc *Client) Config() Config {
	return bc.cfg
}

// BlockNumber returns the most recent block number.
// BlockNumber 返回最新区块号。
func (bc *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := bc.c.CallContext(ctx, &result, "getBlockNumber", bc.cfg.GroupID, bc.cfg.NodeName)
	return uint64(result), transportErr(err)
}

// Call executes a read-only call against the latest state of the contract at to.
// Call 对合约执行只读调用。
func (bc *Client) Call(ctx context.Context, to common.Address, data []byte) (*types.CallResult, error) {
	var r *types.CallResult
	err := bc.c.CallContext(ctx, &r, "call", bc.cfg.GroupID, bc.cfg.NodeName, to.Hex(), hexutil.Encode(data))
	if err != nil {
		return nil, transportErr(err)
	}
	if r == nil {
		return nil, fmt.Errorf("call %s: %w", to.Hex(), rpc.ErrNoResult)
	}
	return r, nil
}

// CodeAt returns the contract code of the given account.
// CodeAt 返回给定账户的合约代码。
func (bc *Client) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	var result hexutil.Bytes
	err := bc.c.CallContext(ctx, &result, "getCode", bc.cfg.GroupID, bc.cfg.NodeName, account.Hex())
	return result, transportErr(err)
}

// TransactionReceipt returns the receipt of a committed transaction. It
// returns an error wrapping bind.ErrReceiptNotFound while the transaction is
// still pending.
// TransactionReceipt 返回交易收据，交易尚未上链时返回 bind.ErrReceiptNotFound。
func (bc *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if r, ok := bc.receipts.Get(txHash); ok {
		return r, nil
	}
	var r *types.Receipt
	err := bc.c.CallContext(ctx, &r, "getTransactionReceipt", bc.cfg.GroupID, bc.cfg.NodeName, txHash.Hex(), false)
	if err != nil {
		return nil, transportErr(err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s", bind.ErrReceiptNotFound, txHash.Hex())
	}
	bc.receipts.Add(txHash, r)
	return r, nil
}

// SignTransaction builds and signs a transaction valid for the configured
// number of blocks past the current head.
// SignTransaction 构造并签名交易，有效期为当前区块之后的若干个区块。
func (bc *Client) SignTransaction(ctx context.Context, to *common.Address, data []byte, signer bind.Signer) (*Transaction, common.Hash, error) {
	txSigner, err := bind.AsTransactionSigner(signer)
	if err != nil {
		return nil, common.Hash{}, err
	}
	head, err := bc.BlockNumber(ctx)
	if err != nil {
		return nil, common.Hash{}, err
	}
	tx := NewTransaction(bc.cfg.ChainID, bc.cfg.GroupID, head+bc.cfg.BlockLimitOffset, to, data)
	hash, err := tx.Sign(bc.cfg.Hasher, txSigner)
	if err != nil {
		return nil, common.Hash{}, err
	}
	return tx, hash, nil
}

// SendTransaction signs and submits a transaction and waits for its receipt.
// SendTransaction 签名并提交交易，等待收据返回。
func (bc *Client) SendTransaction(ctx context.Context, to *common.Address, data []byte, signer bind.Signer) (*types.Receipt, error) {
	tx, hash, err := bc.SignTransaction(ctx, to, data, signer)
	if err != nil {
		return nil, err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	logger := log.New("hash", hash, "nonce", tx.Nonce)
	logger.Debug("Submitting transaction", "to", tx.To, "limit", tx.BlockLimit)

	var result json.RawMessage
	err = bc.c.CallContext(ctx, &result, "sendTransaction", bc.cfg.GroupID, bc.cfg.NodeName, hexutil.Encode(raw), false)
	if err != nil {
		return nil, transportErr(err)
	}
	receipt, err := bc.submitResult(ctx, hash, result)
	if err != nil {
		return nil, err
	}
	logger.Debug("Transaction committed", "status", receipt.Status, "block", receipt.BlockNumber)
	return receipt, nil
}

// submitResult interprets the sendTransaction result. Nodes answer with the
// receipt once committed, or with the transaction hash, in which case the
// receipt is polled for.
func (bc *Client) submitResult(ctx context.Context, hash common.Hash, result json.RawMessage) (*types.Receipt, error) {
	trimmed := bytes.TrimSpace(result)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		receipt := new(types.Receipt)
		if err := json.Unmarshal(trimmed, receipt); err != nil {
			return nil, fmt.Errorf("invalid transaction receipt: %w", err)
		}
		bc.receipts.Add(hash, receipt)
		return receipt, nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var submitted common.Hash
		if err := json.Unmarshal(trimmed, &submitted); err != nil {
			return nil, fmt.Errorf("invalid transaction hash: %w", err)
		}
		if submitted != hash {
			log.Warn("Node reported different transaction hash", "local", hash, "remote", submitted)
			hash = submitted
		}
	}
	return bind.WaitMinedInterval(ctx, bc, hash, bc.cfg.PollInterval)
}

// SendTransactionAsync submits a transaction on the client worker pool and
// returns immediately. cb is invoked exactly once.
// SendTransactionAsync 在工作池中提交交易并立即返回，回调恰好调用一次。
func (bc *Client) SendTransactionAsync(ctx context.Context, to *common.Address, data []byte, signer bind.Signer, cb func(*types.Receipt, error)) {
	var once sync.Once
	deliver := func(r *types.Receipt, err error) {
		once.Do(func() { cb(r, err) })
	}
	bc.mu.Lock()
	if bc.closed {
		bc.mu.Unlock()
		go deliver(nil, rpc.ErrClientQuit)
		return
	}
	bc.wg.Add(1)
	bc.mu.Unlock()

	id := uuid.New()
	input := common.CopyBytes(data)
	go func() {
		defer bc.wg.Done()
		logger := log.New("task", id)
		if err := bc.sem.Acquire(ctx, 1); err != nil {
			logger.Debug("Async transaction dropped", "err", err)
			deliver(nil, transportErr(err))
			return
		}
		defer bc.sem.Release(1)

		start := time.Now()
		receipt, err := bc.SendTransaction(ctx, to, input, signer)
		logger.Trace("Async transaction done", "elapsed", time.Since(start), "err", err)
		deliver(receipt, err)
	}()
}

// transportErr marks timeouts so that callers can detect them with
// errors.Is(err, bind.ErrTransportTimeout).
func transportErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bind.ErrTransportTimeout) {
		return err
	}
	if errors.Is(err, rpc.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", bind.ErrTransportTimeout, err)
	}
	return err
}
