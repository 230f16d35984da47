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

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testService answers the handful of methods used by the tests.
func testService(req *jsonrpcMessage) *jsonrpcMessage {
	resp := &jsonrpcMessage{Version: vsn, ID: req.ID}
	switch req.Method {
	case "echo":
		var params []json.RawMessage
		json.Unmarshal(req.Params, &params)
		if len(params) > 0 {
			resp.Result = params[0]
		} else {
			resp.Result = null
		}
	case "getBlockNumber":
		resp.Result = json.RawMessage(`"0x1f"`)
	case "fail":
		resp.Error = &jsonError{Code: -32000, Message: "execution failed", Data: "0x08c379a0"}
	case "sleep":
		time.Sleep(200 * time.Millisecond)
		resp.Result = null
	default:
		resp.Error = &jsonError{Code: -32601, Message: "the method " + req.Method + " does not exist/is not available"}
	}
	return resp
}

func serveMessages(raw []byte) interface{} {
	msgs, batch, err := unmarshalMessages(raw)
	if err != nil {
		return &jsonrpcMessage{Version: vsn, ID: null, Error: &jsonError{Code: -32700, Message: err.Error()}}
	}
	resps := make([]*jsonrpcMessage, len(msgs))
	for i, msg := range msgs {
		resps[i] = testService(msg)
	}
	if batch {
		return resps
	}
	return resps[0]
}

func newTestHTTPServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.Header.Get("authorization") == "Bearer bad" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("content-type", contentType)
		json.NewEncoder(w).Encode(serveMessages(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestWSServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var writeMu sync.Mutex
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			// answer concurrently so that responses may arrive out of order
			go func(raw []byte) {
				out, _ := json.Marshal(serveMessages(raw))
				writeMu.Lock()
				defer writeMu.Unlock()
				conn.WriteMessage(websocket.TextMessage, out)
			}(raw)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialBoth(t *testing.T) map[string]*Client {
	t.Helper()
	httpSrv := newTestHTTPServer(t, nil)
	wsSrv := newTestWSServer(t)

	hc, err := Dial(httpSrv.URL)
	require.NoError(t, err)
	wc, err := DialContext(context.Background(), "ws"+strings.TrimPrefix(wsSrv.URL, "http"))
	require.NoError(t, err)
	t.Cleanup(hc.Close)
	t.Cleanup(wc.Close)
	return map[string]*Client{"http": hc, "ws": wc}
}

func TestClientCall(t *testing.T) {
	for name, c := range dialBoth(t) {
		t.Run(name, func(t *testing.T) {
			var out string
			require.NoError(t, c.CallContext(context.Background(), &out, "echo", "hello"))
			assert.Equal(t, "hello", out)

			var n hexNumber
			require.NoError(t, c.Call(&n, "getBlockNumber", "group0", ""))
			assert.Equal(t, hexNumber(`"0x1f"`), n)

			// nil result discards the payload
			require.NoError(t, c.Call(nil, "echo", 1))
		})
	}
}

type hexNumber json.RawMessage

func (h *hexNumber) UnmarshalJSON(b []byte) error {
	*h = append((*h)[:0], b...)
	return nil
}

func TestClientErrors(t *testing.T) {
	for name, c := range dialBoth(t) {
		t.Run(name, func(t *testing.T) {
			err := c.Call(nil, "fail")
			var rpcErr Error
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, -32000, rpcErr.ErrorCode())
			var dataErr DataError
			require.ErrorAs(t, err, &dataErr)
			assert.Equal(t, "0x08c379a0", dataErr.ErrorData())

			err = c.Call(nil, "nope")
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, -32601, rpcErr.ErrorCode())

			var notPtr string
			assert.Error(t, c.Call(notPtr, "echo", "x"))
		})
	}
}

func TestClientTimeout(t *testing.T) {
	for name, c := range dialBoth(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			err := c.CallContext(ctx, nil, "sleep")
			require.ErrorIs(t, err, ErrTimeout)
		})
	}
}

func TestClientRequestTimeoutOption(t *testing.T) {
	srv := newTestHTTPServer(t, nil)
	c, err := DialOptions(context.Background(), srv.URL, WithRequestTimeout(20*time.Millisecond))
	require.NoError(t, err)
	defer c.Close()
	require.ErrorIs(t, c.Call(nil, "sleep"), ErrTimeout)
}

func TestClientBatch(t *testing.T) {
	for name, c := range dialBoth(t) {
		t.Run(name, func(t *testing.T) {
			var a, b string
			batch := []BatchElem{
				{Method: "echo", Args: []interface{}{"a"}, Result: &a},
				{Method: "fail"},
				{Method: "echo", Args: []interface{}{"b"}, Result: &b},
			}
			require.NoError(t, c.BatchCallContext(context.Background(), batch))
			assert.Equal(t, "a", a)
			assert.Equal(t, "b", b)
			assert.NoError(t, batch[0].Error)
			assert.Error(t, batch[1].Error)
			assert.NoError(t, batch[2].Error)
		})
	}
}

func TestClientHTTPError(t *testing.T) {
	srv := newTestHTTPServer(t, nil)
	c, err := DialOptions(context.Background(), srv.URL, WithHTTPAuth(func(h http.Header) error {
		h.Set("authorization", "Bearer bad")
		return nil
	}))
	require.NoError(t, err)
	defer c.Close()

	err = c.Call(nil, "echo", 1)
	var httpErr HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
}

func TestClientRateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := newTestHTTPServer(t, &hits)
	c, err := DialOptions(context.Background(), srv.URL, WithRateLimit(1, 1))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Call(nil, "echo", 1))
	// the bucket is empty now; the next token is a second away
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = c.CallContext(ctx, nil, "echo", 2)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClientClose(t *testing.T) {
	for name, c := range dialBoth(t) {
		t.Run(name, func(t *testing.T) {
			c.Close()
			err := c.Call(nil, "echo", 1)
			assert.True(t, errors.Is(err, ErrClientQuit))
		})
	}
}

func TestDialUnknownScheme(t *testing.T) {
	_, err := Dial("ftp://localhost")
	assert.Error(t, err)
}

func TestClientResponseTooLarge(t *testing.T) {
	defer func(limit int) { defaultBodyLimit = limit }(defaultBodyLimit)
	defaultBodyLimit = 64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonrpcMessage
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("content-type", contentType)
		io.WriteString(w, `{"jsonrpc":"2.0","id":`+string(req.ID)+`,"result":"`+strings.Repeat("a", 1024)+`"}`)
	}))
	defer srv.Close()

	c, err := DialOptions(context.Background(), srv.URL)
	require.NoError(t, err)
	defer c.Close()

	var result string
	err = c.Call(&result, "echo")
	assert.ErrorContains(t, err, "response too large")
	assert.Empty(t, result)
}
