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
	"fmt"
	"net/url"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sunyihoo/bcos-go-sdk/log"
	"golang.org/x/time/rate"
)

// conn is a transport able to exchange JSON-RPC messages with one server.
type conn interface {
	send(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error)
	sendBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error)
	close()
}

// Client represents a connection to an RPC server.
// Client 表示到 RPC 服务器的连接。
type Client struct {
	conn   conn
	isHTTP bool

	idCounter atomic.Uint32

	limiter        *rate.Limiter
	requestTimeout time.Duration

	closeOnce sync.Once
	closing   chan struct{}
}

// Dial creates a new client for the given URL.
//
// The currently supported URL schemes are "http", "https", "ws" and "wss".
// Dial 为给定 URL 创建客户端，支持 http、https、ws、wss。
func Dial(rawurl string) (*Client, error) {
	return DialOptions(context.Background(), rawurl)
}

// DialContext creates a new RPC client, just like Dial.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	return DialOptions(ctx, rawurl)
}

// DialOptions creates a new RPC client for the given URL. You can supply any of the
// pre-defined client options to configure the underlying transport.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
func DialOptions(ctx context.Context, rawurl string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	cfg := new(clientConfig)
	for _, opt := range options {
		opt.applyOption(cfg)
	}

	c := &Client{
		limiter:        cfg.limiter,
		requestTimeout: cfg.requestTimeout,
		closing:        make(chan struct{}),
	}
	switch u.Scheme {
	case "http", "https":
		c.conn = newHTTPConn(rawurl, cfg)
		c.isHTTP = true
	case "ws", "wss":
		wc, err := dialWebsocket(ctx, rawurl, cfg)
		if err != nil {
			return nil, err
		}
		c.conn = wc
	default:
		return nil, fmt.Errorf("no known transport for URL scheme %q", u.Scheme)
	}
	log.Debug("RPC client created", "url", redactURL(u), "http", c.isHTTP)
	return c, nil
}

// Close closes the client, aborting any in-flight requests.
// Close 关闭客户端并中止所有进行中的请求。
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closing)
		c.conn.close()
	})
}

func (c *Client) nextID() uint32 {
	return c.idCounter.Add(1)
}

// prepare applies the client request timeout and rate limit to ctx.
func (c *Client) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	select {
	case <-c.closing:
		return nil, nil, ErrClientQuit
	default:
	}
	cancel := context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok && c.requestTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// rate.Limiter reports a deadline it cannot meet without waiting it out.
			if ctx.Err() == nil {
				err = errors.Join(context.DeadlineExceeded, err)
			}
			cancel()
			return nil, nil, wrapTimeout(err)
		}
	}
	return ctx, cancel, nil
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	ctx := context.Background()
	return c.CallContext(ctx, result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
//
// CallContext 执行 JSON-RPC 调用，上下文取消时立即返回。
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}
	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	msg, err := newRequestMessage(c.nextID(), method, args...)
	if err != nil {
		return err
	}
	start := time.Now()
	resp, err := c.conn.send(ctx, msg)
	if err != nil {
		log.Trace("RPC request failed", "method", method, "id", string(msg.ID), "err", err)
		return wrapTimeout(err)
	}
	log.Trace("Served RPC request", "method", method, "id", string(msg.ID), "duration", time.Since(start))
	return resp.decodeResult(result)
}

// BatchCall sends all given requests as a single batch and waits for the server
// to return a response for all of them.
//
// In contrast to Call, BatchCall only returns I/O errors. Any error specific to
// a request is reported through the Error field of the corresponding BatchElem.
//
// Note that batch calls may not be executed atomically on the server side.
func (c *Client) BatchCall(b []BatchElem) error {
	ctx := context.Background()
	return c.BatchCallContext(ctx, b)
}

// BatchCallContext sends all given requests as a single batch and waits for the server
// to return a response for all of them. The wait duration is bounded by the
// context's deadline.
//
// In contrast to CallContext, BatchCallContext only returns errors that have occurred
// while sending the request. Any error specific to a request is reported through the
// Error field of the corresponding BatchElem.
func (c *Client) BatchCallContext(ctx context.Context, b []BatchElem) error {
	if len(b) == 0 {
		return nil
	}
	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	var (
		msgs = make([]*jsonrpcMessage, len(b))
		byID = make(map[string]int, len(b))
	)
	for i, elem := range b {
		msg, err := newRequestMessage(c.nextID(), elem.Method, elem.Args...)
		if err != nil {
			return err
		}
		msgs[i] = msg
		byID[string(msg.ID)] = i
	}
	resps, err := c.conn.sendBatch(ctx, msgs)
	if err != nil {
		return wrapTimeout(err)
	}
	seen := make([]bool, len(b))
	for _, resp := range resps {
		i, ok := byID[string(resp.ID)]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		elem := &b[i]
		elem.Error = resp.decodeResult(elem.Result)
	}
	for i := range b {
		if !seen[i] {
			b[i].Error = errMissingBatchResponse
		}
	}
	return nil
}

var errMissingBatchResponse = errors.New("response batch did not contain a response to this call")

// redactURL hides credentials embedded in the endpoint URL.
func redactURL(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	cp := *u
	cp.User = url.User("xxxxx")
	return cp.String()
}

func unmarshalMessages(raw []byte) ([]*jsonrpcMessage, bool, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var msgs []*jsonrpcMessage
		err := json.Unmarshal(raw, &msgs)
		return msgs, true, err
	}
	msg := new(jsonrpcMessage)
	err := json.Unmarshal(raw, msg)
	return []*jsonrpcMessage{msg}, false, err
}
