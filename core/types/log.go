// Copyright 2024 The go-ethereum Authors
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

package types

import (
	"encoding/json"
	"fmt"

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
)

// Log represents a contract log event emitted during transaction execution.
// Topic 0 is the event signature digest unless the event is anonymous.
// Log 表示交易执行期间合约发出的日志事件；topic0 为事件签名摘要（匿名事件除外）。
type Log struct {
	// address of the contract that generated the event
	Address common.Address `json:"address"`
	// list of topics provided by the contract.
	Topics []common.Hash `json:"topics"`
	// supplied by the contract, usually ABI-encoded
	Data []byte `json:"data"`

	// Derived fields, filled in from the enclosing receipt.
	BlockNumber uint64      `json:"blockNumber"`
	TxHash      common.Hash `json:"transactionHash"`
	Index       uint        `json:"logIndex"`
}

type logMarshaling struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber quantity       `json:"blockNumber,omitempty"`
	TxHash      *common.Hash   `json:"transactionHash,omitempty"`
	Index       quantity       `json:"logIndex,omitempty"`
}

// MarshalJSON encodes the log with hex data.
func (l Log) MarshalJSON() ([]byte, error) {
	enc := logMarshaling{
		Address:     l.Address,
		Topics:      l.Topics,
		Data:        l.Data,
		BlockNumber: quantity(l.BlockNumber),
		Index:       quantity(l.Index),
	}
	if l.TxHash != (common.Hash{}) {
		enc.TxHash = &l.TxHash
	}
	if enc.Topics == nil {
		enc.Topics = []common.Hash{}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON decodes a log as reported by the node.
func (l *Log) UnmarshalJSON(input []byte) error {
	var dec struct {
		Address *common.Address `json:"address"`
		Topics  []common.Hash   `json:"topics"`
		Data    *hexutil.Bytes  `json:"data"`

		BlockNumber quantity     `json:"blockNumber"`
		TxHash      *common.Hash `json:"transactionHash"`
		Index       quantity     `json:"logIndex"`
	}
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Address == nil {
		return fmt.Errorf("%w 'address' for Log", errMissingField)
	}
	l.Address = *dec.Address
	l.Topics = dec.Topics
	if dec.Data != nil {
		l.Data = *dec.Data
	}
	l.BlockNumber = uint64(dec.BlockNumber)
	if dec.TxHash != nil {
		l.TxHash = *dec.TxHash
	}
	l.Index = uint(dec.Index)
	return nil
}
