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

/*
Package rpc implements a JSON-RPC 2.0 client for talking to blockchain nodes.

Two transports are supported, selected by the URL scheme given to Dial:
"http"/"https" post every request as its own HTTP request, "ws"/"wss" keep a
single WebSocket connection open and match responses to requests by id.

	client, err := rpc.Dial("http://127.0.0.1:20200")
	if err != nil {
		...
	}
	var blockNumber hexutil.Uint64
	err = client.CallContext(ctx, &blockNumber, "getBlockNumber", "group0", "")

Requests can be throttled with WithRateLimit. Requests that run out of time
fail with an error matching ErrTimeout.

rpc 包实现面向区块链节点的 JSON-RPC 2.0 客户端，支持 HTTP 与 WebSocket 两种传输。
*/
package rpc
