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
	"sync"

	"github.com/sunyihoo/bcos-go-sdk/core/types"
)

// Future is the pending outcome of an asynchronous transaction. It is
// completed exactly once; later completions are ignored.
// Future 表示异步交易的待定结果，只会被完成一次。
type Future struct {
	once    sync.Once
	done    chan struct{}
	receipt *types.Receipt
	err     error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) complete(receipt *types.Receipt, err error) {
	f.once.Do(func() {
		f.receipt, f.err = receipt, err
		close(f.done)
	})
}

// Done returns a channel that is closed once the outcome is known.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the transaction outcome is known or ctx is canceled.
// Canceling ctx does not cancel the transaction itself.
// Wait 阻塞直到结果可用或上下文取消。
func (f *Future) Wait(ctx context.Context) (*types.Receipt, error) {
	select {
	case <-f.done:
		return f.receipt, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
