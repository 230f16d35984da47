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

package bcosclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi/bind"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
	"github.com/sunyihoo/bcos-go-sdk/rpc"
)

var contractAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")

// fakeNode is a minimal node answering the RPC methods used by Client.
type fakeNode struct {
	t *testing.T

	// respondWithHash makes sendTransaction return the hash instead of the receipt
	respondWithHash atomic.Bool
	pendingPolls    atomic.Int32 // null receipts returned before the real one
	delay           atomic.Int64

	mu       sync.Mutex
	sent     []*Transaction
	receipts map[common.Hash]*types.Receipt
	params   map[string][]json.RawMessage
}

type nodeRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d := time.Duration(n.delay.Load()); d > 0 {
		time.Sleep(d)
	}
	n.mu.Lock()
	n.params[req.Method] = req.Params
	n.mu.Unlock()

	result, rpcErr := n.handle(req)
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("content-type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) handle(req nodeRequest) (interface{}, map[string]interface{}) {
	switch req.Method {
	case "getBlockNumber":
		return "0x20", nil
	case "getCode":
		var addr string
		json.Unmarshal(req.Params[2], &addr)
		if common.HexToAddress(addr) == contractAddr {
			return "0x6080", nil
		}
		return "0x", nil
	case "call":
		word := make([]byte, 32)
		word[31] = 42
		return map[string]interface{}{"status": 0, "output": hexutil.Encode(word), "blockNumber": 32}, nil
	case "sendTransaction":
		var rawHex string
		json.Unmarshal(req.Params[2], &rawHex)
		raw, err := hexutil.Decode(rawHex)
		if err != nil {
			return nil, map[string]interface{}{"code": -32602, "message": err.Error()}
		}
		tx := new(Transaction)
		if err := tx.UnmarshalBinary(raw); err != nil {
			return nil, map[string]interface{}{"code": -32602, "message": err.Error()}
		}
		hash, _ := tx.Hash(crypto.Keccak256Hasher)
		receipt := &types.Receipt{
			Status:          types.ReceiptStatusSuccessful,
			TransactionHash: hash,
			BlockNumber:     33,
			From:            tx.Sender,
			Output:          []byte{},
		}
		if tx.To == nil {
			receipt.ContractAddress = &contractAddr
		} else {
			receipt.To = *tx.To
		}
		n.mu.Lock()
		n.sent = append(n.sent, tx)
		n.receipts[hash] = receipt
		n.mu.Unlock()
		if n.respondWithHash.Load() {
			return hash.Hex(), nil
		}
		return receipt, nil
	case "getTransactionReceipt":
		var hash common.Hash
		json.Unmarshal(req.Params[2], &hash)
		if n.pendingPolls.Add(-1) >= 0 {
			return nil, nil
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		if r, ok := n.receipts[hash]; ok {
			return r, nil
		}
		return nil, nil
	}
	return nil, map[string]interface{}{"code": -32601, "message": "method not found"}
}

func newTestClient(t *testing.T, cfg Config) (*Client, *fakeNode) {
	t.Helper()
	node := &fakeNode{
		t:        t,
		receipts: make(map[common.Hash]*types.Receipt),
		params:   make(map[string][]json.RawMessage),
	}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	c, err := DialContext(context.Background(), srv.URL, cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, node
}

func testKeyPair(t *testing.T) *crypto.KeyPair {
	kp, err := crypto.HexToKeyPair(testKey)
	require.NoError(t, err)
	return kp
}

func TestClientReadMethods(t *testing.T) {
	c, node := newTestClient(t, Config{GroupID: "group1", NodeName: "node0"})
	ctx := context.Background()

	n, err := c.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x20), n)
	assert.Equal(t, `"group1"`, string(node.params["getBlockNumber"][0]))
	assert.Equal(t, `"node0"`, string(node.params["getBlockNumber"][1]))

	code, err := c.CodeAt(ctx, contractAddr)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, code)

	res, err := c.Call(ctx, contractAddr, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, res.Status)
	assert.Len(t, res.Output, 32)
	assert.Equal(t, `"0x01020304"`, string(node.params["call"][3]))
}

func TestClientReceiptNotFound(t *testing.T) {
	c, _ := newTestClient(t, DefaultConfig)
	_, err := c.TransactionReceipt(context.Background(), common.Hash{1})
	assert.ErrorIs(t, err, bind.ErrReceiptNotFound)
}

func TestClientSendTransactionReceipt(t *testing.T) {
	c, node := newTestClient(t, DefaultConfig)
	kp := testKeyPair(t)

	receipt, err := c.SendTransaction(context.Background(), &contractAddr, []byte{0xaa}, kp)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, kp.Address(), receipt.From)

	require.Len(t, node.sent, 1)
	tx := node.sent[0]
	assert.Equal(t, uint64(0x20+DefaultBlockLimitOffset), tx.BlockLimit)
	assert.Equal(t, DefaultChainID, tx.ChainID)
	assert.Equal(t, []byte{0xaa}, tx.Input)
	hash, err := tx.Hash(crypto.Keccak256Hasher)
	require.NoError(t, err)
	assert.True(t, crypto.VerifySignature(kp.PublicKey(), hash.Bytes(), tx.Signature))

	// the receipt is cached
	cached, err := c.TransactionReceipt(context.Background(), hash)
	require.NoError(t, err)
	assert.Same(t, receipt, cached)
}

func TestClientSendTransactionPolls(t *testing.T) {
	c, node := newTestClient(t, Config{PollInterval: 5 * time.Millisecond})
	node.respondWithHash.Store(true)
	node.pendingPolls.Store(2)

	receipt, err := c.SendTransaction(context.Background(), &contractAddr, nil, testKeyPair(t))
	require.NoError(t, err)
	assert.Equal(t, uint64(33), receipt.BlockNumber)
	assert.Less(t, node.pendingPolls.Load(), int32(0))
}

func TestClientSendTransactionUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, DefaultConfig)
	_, err := c.SendTransaction(context.Background(), &contractAddr, nil, addressOnly(common.Address{1}))
	assert.ErrorIs(t, err, bind.ErrNotAuthorized)
}

type addressOnly common.Address

func (a addressOnly) Address() common.Address { return common.Address(a) }

func TestClientTimeout(t *testing.T) {
	c, node := newTestClient(t, DefaultConfig)
	node.delay.Store(int64(100 * time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.BlockNumber(ctx)
	assert.ErrorIs(t, err, bind.ErrTransportTimeout)
}

func TestClientSendTransactionAsync(t *testing.T) {
	c, node := newTestClient(t, Config{MaxAsync: 2})
	kp := testKeyPair(t)

	const n = 8
	var (
		wg    sync.WaitGroup
		calls atomic.Int32
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		c.SendTransactionAsync(context.Background(), &contractAddr, []byte{byte(i)}, kp, func(r *types.Receipt, err error) {
			defer wg.Done()
			calls.Add(1)
			assert.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
	wg.Wait()
	assert.Equal(t, int32(n), calls.Load())
	assert.Len(t, node.sent, n)
}

func TestClientSendTransactionAsyncAfterClose(t *testing.T) {
	c, _ := newTestClient(t, DefaultConfig)
	c.Close()

	done := make(chan error, 2)
	c.SendTransactionAsync(context.Background(), &contractAddr, nil, testKeyPair(t), func(r *types.Receipt, err error) {
		done <- err
	})
	require.Error(t, <-done)
	assert.Len(t, done, 0)
}

func TestClientCloseWhileSubmitting(t *testing.T) {
	c, _ := newTestClient(t, Config{MaxAsync: 4})
	kp := testKeyPair(t)

	const submitters = 50
	var (
		start   = make(chan struct{})
		wg      sync.WaitGroup
		calls   atomic.Int32
		results sync.WaitGroup
	)
	wg.Add(submitters)
	results.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			c.SendTransactionAsync(context.Background(), &contractAddr, []byte{byte(i)}, kp, func(r *types.Receipt, err error) {
				calls.Add(1)
				results.Done()
			})
		}(i)
	}
	close(start)
	c.Close()
	wg.Wait()
	results.Wait()
	assert.Equal(t, int32(submitters), calls.Load())

	// submissions after Close fail immediately
	done := make(chan error, 1)
	c.SendTransactionAsync(context.Background(), &contractAddr, nil, kp, func(r *types.Receipt, err error) {
		done <- err
	})
	assert.ErrorIs(t, <-done, rpc.ErrClientQuit)
}

const counterABI = `[
	{"type":"constructor","inputs":[{"name":"start","type":"uint256"}]},
	{"type":"function","name":"get","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"set","inputs":[{"name":"v","type":"uint256"}],"outputs":[]}
]`

func TestClientWithBoundContract(t *testing.T) {
	c, node := newTestClient(t, DefaultConfig)
	kp := testKeyPair(t)
	ctx := context.Background()

	parsed, err := abi.JSON(strings.NewReader(counterABI))
	require.NoError(t, err)
	codec := abi.NewCodec(nil)

	start, err := abi.NewUint64(256, 7)
	require.NoError(t, err)
	contract, receipt, err := bind.DeployContract(ctx, parsed, codec, []byte{0x60, 0x80}, c, kp, start)
	require.NoError(t, err)
	assert.Equal(t, contractAddr, contract.Address())
	assert.Equal(t, contractAddr, *receipt.ContractAddress)
	require.Len(t, node.sent, 1)
	assert.Nil(t, node.sent[0].To)

	v, err := bind.CallAs[uint64](ctx, contract, "get")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	addr, err := bind.WaitDeployed(ctx, c, receipt.TransactionHash)
	require.NoError(t, err)
	assert.Equal(t, contractAddr, addr)

	arg, err := abi.NewUint64(256, 9)
	require.NoError(t, err)
	fut := contract.TransactFuture(ctx, "set", arg)
	r, err := fut.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, r.Succeeded())
}
