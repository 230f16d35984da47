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
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"
)

const contentType = "application/json"

// defaultBodyLimit bounds the size of a response body.
var defaultBodyLimit = 5 * 1024 * 1024

// httpConn posts every JSON-RPC message as its own HTTP request.
// httpConn 将每条 JSON-RPC 消息作为独立的 HTTP 请求发送。
type httpConn struct {
	client *resty.Client
	url    string
	auth   HTTPAuth

	mu      sync.Mutex // protects headers
	headers http.Header
}

func newHTTPConn(endpoint string, cfg *clientConfig) *httpConn {
	headers := make(http.Header, 2+len(cfg.httpHeaders))
	headers.Set("accept", contentType)
	headers.Set("content-type", contentType)
	for key, values := range cfg.httpHeaders {
		headers[key] = values
	}

	client := cfg.httpClient
	if client == nil {
		client = new(http.Client)
	}
	return &httpConn{
		client:  resty.NewWithClient(client),
		url:     endpoint,
		auth:    cfg.httpAuth,
		headers: headers,
	}
}

func (hc *httpConn) close() {}

func (hc *httpConn) send(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	body, err := hc.doRequest(ctx, msg)
	if err != nil {
		return nil, err
	}
	msgs, batch, err := unmarshalMessages(body)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC response: %w", err)
	}
	if batch || len(msgs) != 1 {
		return nil, errors.New("unexpected batch response to single request")
	}
	return msgs[0], nil
}

func (hc *httpConn) sendBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	body, err := hc.doRequest(ctx, msgs)
	if err != nil {
		return nil, err
	}
	resps, _, err := unmarshalMessages(body)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC batch response: %w", err)
	}
	return resps, nil
}

// doRequest posts msg and returns the response body of a 2xx response.
func (hc *httpConn) doRequest(ctx context.Context, msg interface{}) ([]byte, error) {
	hc.mu.Lock()
	header := hc.headers.Clone()
	hc.mu.Unlock()
	if hc.auth != nil {
		if err := hc.auth(header); err != nil {
			return nil, err
		}
	}

	req := hc.client.R().SetContext(ctx).SetBody(msg).SetDoNotParseResponse(true)
	req.Header = header
	resp, err := req.Post(hc.url)
	if err != nil {
		return nil, err
	}
	raw := resp.RawBody()
	defer raw.Close()

	// Read one byte past the limit to detect oversized responses.
	body, err := io.ReadAll(io.LimitReader(raw, int64(defaultBodyLimit)+1))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, HTTPError{
			Status:     resp.Status(),
			StatusCode: resp.StatusCode(),
			Body:       body,
		}
	}
	if len(body) > defaultBodyLimit {
		return nil, fmt.Errorf("response too large: more than %d bytes", defaultBodyLimit)
	}
	return body, nil
}
