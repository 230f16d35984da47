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

package rpc

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sunyihoo/bcos-go-sdk/log"
)

const (
	wsReadBuffer       = 1024
	wsWriteBuffer      = 1024
	wsPingInterval     = 30 * time.Second
	wsPingWriteTimeout = 5 * time.Second
	wsPongTimeout      = 30 * time.Second
	wsDefaultReadLimit = 32 * 1024 * 1024

	defaultWriteTimeout = 10 * time.Second // used if context has no deadline
)

var wsBufferPool = new(sync.Pool)

// wsConn multiplexes requests over one websocket connection. Responses are
// routed to their callers by id.
// wsConn 在单个 WebSocket 连接上复用请求，并按 id 分发响应。
type wsConn struct {
	conn *websocket.Conn

	writeMu sync.Mutex // serialises writes, including pings

	mu      sync.Mutex
	pending map[string]chan *jsonrpcMessage
	err     error // set once the read loop exits

	pingReset    chan struct{}
	pongReceived chan struct{}
	closeOnce    sync.Once
	closing      chan struct{}
	wg           sync.WaitGroup
}

func dialWebsocket(ctx context.Context, endpoint string, cfg *clientConfig) (*wsConn, error) {
	dialer := cfg.wsDialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			ReadBufferSize:  wsReadBuffer,
			WriteBufferSize: wsWriteBuffer,
			WriteBufferPool: wsBufferPool,
			Proxy:           http.ProxyFromEnvironment,
		}
	}
	dialURL, header, err := wsClientHeaders(endpoint, "")
	if err != nil {
		return nil, err
	}
	for key, values := range cfg.httpHeaders {
		header[key] = values
	}
	if cfg.httpAuth != nil {
		if err := cfg.httpAuth(header); err != nil {
			return nil, err
		}
	}
	conn, resp, err := dialer.DialContext(ctx, dialURL, header)
	if err != nil {
		hErr := wsHandshakeError{err: err}
		if resp != nil {
			hErr.status = resp.Status
		}
		return nil, hErr
	}
	limit := int64(wsDefaultReadLimit)
	if cfg.wsMessageSizeLimit != nil && *cfg.wsMessageSizeLimit >= 0 {
		limit = *cfg.wsMessageSizeLimit
	}
	conn.SetReadLimit(limit)
	return newWSConn(conn), nil
}

func newWSConn(conn *websocket.Conn) *wsConn {
	wc := &wsConn{
		conn:         conn,
		pending:      make(map[string]chan *jsonrpcMessage),
		pingReset:    make(chan struct{}, 1),
		pongReceived: make(chan struct{}),
		closing:      make(chan struct{}),
	}
	conn.SetPongHandler(func(appData string) error {
		select {
		case wc.pongReceived <- struct{}{}:
		case <-wc.closing:
		}
		return nil
	})
	wc.wg.Add(2)
	go wc.readLoop()
	go wc.pingLoop()
	return wc
}

// wsClientHeaders moves credentials embedded in the endpoint URL into a basic
// authorization header.
func wsClientHeaders(endpoint, origin string) (string, http.Header, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, nil, err
	}
	header := make(http.Header)
	if origin != "" {
		header.Add("origin", origin)
	}
	if endpointURL.User != nil {
		b64auth := base64.StdEncoding.EncodeToString([]byte(endpointURL.User.String()))
		header.Add("authorization", "Basic "+b64auth)
		endpointURL.User = nil
	}
	return endpointURL.String(), header, nil
}

func (wc *wsConn) close() {
	wc.closeOnce.Do(func() {
		close(wc.closing)
		wc.conn.Close()
	})
	wc.wg.Wait()
}

func (wc *wsConn) send(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	resps, err := wc.roundTrip(ctx, msg, []*jsonrpcMessage{msg})
	if err != nil {
		return nil, err
	}
	return resps[0], nil
}

func (wc *wsConn) sendBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	return wc.roundTrip(ctx, msgs, msgs)
}

// roundTrip registers the ids of reqs, writes payload and waits for one
// response per id.
func (wc *wsConn) roundTrip(ctx context.Context, payload interface{}, reqs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	chans := make([]chan *jsonrpcMessage, len(reqs))
	wc.mu.Lock()
	if wc.err != nil {
		err := wc.err
		wc.mu.Unlock()
		return nil, err
	}
	for i, req := range reqs {
		chans[i] = make(chan *jsonrpcMessage, 1)
		wc.pending[string(req.ID)] = chans[i]
	}
	wc.mu.Unlock()
	defer func() {
		wc.mu.Lock()
		for _, req := range reqs {
			delete(wc.pending, string(req.ID))
		}
		wc.mu.Unlock()
	}()

	if err := wc.write(ctx, payload); err != nil {
		return nil, err
	}
	out := make([]*jsonrpcMessage, len(reqs))
	for i, ch := range chans {
		select {
		case resp, ok := <-ch:
			if !ok {
				return nil, wc.readErr()
			}
			out[i] = resp
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wc.closing:
			return nil, ErrClientQuit
		}
	}
	return out, nil
}

func (wc *wsConn) write(ctx context.Context, v interface{}) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteTimeout)
	}
	wc.writeMu.Lock()
	defer wc.writeMu.Unlock()
	wc.conn.SetWriteDeadline(deadline)
	err := wc.conn.WriteJSON(v)
	if err == nil {
		// Notify pingLoop to delay the next idle ping.
		select {
		case wc.pingReset <- struct{}{}:
		default:
		}
	}
	return err
}

func (wc *wsConn) readErr() error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.err == nil {
		return ErrClientQuit
	}
	return wc.err
}

// readLoop dispatches incoming responses until the connection fails.
func (wc *wsConn) readLoop() {
	defer wc.wg.Done()
	for {
		_, raw, err := wc.conn.ReadMessage()
		if err != nil {
			wc.fail(err)
			return
		}
		msgs, _, err := unmarshalMessages(raw)
		if err != nil {
			log.Debug("Dropping invalid websocket message", "err", err)
			continue
		}
		for _, msg := range msgs {
			if msg.isNotification() {
				log.Trace("Ignoring websocket notification", "method", msg.Method)
				continue
			}
			if !msg.isResponse() {
				continue
			}
			wc.mu.Lock()
			ch := wc.pending[string(msg.ID)]
			delete(wc.pending, string(msg.ID))
			wc.mu.Unlock()
			if ch != nil {
				ch <- msg
			}
		}
	}
}

// fail records the terminal read error and wakes up all waiters.
func (wc *wsConn) fail(err error) {
	select {
	case <-wc.closing:
		err = ErrClientQuit
	default:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			err = errors.New("websocket connection closed by server")
		}
	}
	wc.mu.Lock()
	wc.err = err
	for id, ch := range wc.pending {
		close(ch)
		delete(wc.pending, id)
	}
	wc.mu.Unlock()
	wc.closeOnce.Do(func() {
		close(wc.closing)
		wc.conn.Close()
	})
}

// pingLoop sends periodic ping frames when the connection is idle.
// pingLoop 在连接空闲时发送周期性的 ping 帧。
func (wc *wsConn) pingLoop() {
	var pingTimer = time.NewTimer(wsPingInterval)
	defer wc.wg.Done()
	defer pingTimer.Stop()

	for {
		select {
		case <-wc.closing:
			return

		case <-wc.pingReset:
			if !pingTimer.Stop() {
				<-pingTimer.C
			}
			pingTimer.Reset(wsPingInterval)

		case <-pingTimer.C:
			wc.writeMu.Lock()
			wc.conn.SetWriteDeadline(time.Now().Add(wsPingWriteTimeout))
			wc.conn.WriteMessage(websocket.PingMessage, nil)
			wc.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
			wc.writeMu.Unlock()
			pingTimer.Reset(wsPingInterval)

		case <-wc.pongReceived:
			wc.conn.SetReadDeadline(time.Time{})
		}
	}
}
