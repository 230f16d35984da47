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
	"strings"

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
)

const (
	// ReceiptStatusSuccessful is the status code of a transaction or call whose
	// execution succeeded. Any other value is a node return code.
	// ReceiptStatusSuccessful 表示执行成功的状态码；其他值均为节点返回码。
	ReceiptStatusSuccessful = uint64(0)
)

// Receipt represents the results of a transaction.
// Receipt 表示交易的执行结果。
type Receipt struct {
	Status uint64 `json:"status"`
	// ContractAddress is set only when the transaction created a contract.
	ContractAddress *common.Address `json:"contractAddress"`
	Output          []byte          `json:"output"`
	Logs            []*Log          `json:"logs"`
	Message         string          `json:"message,omitempty"`

	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     uint64         `json:"blockNumber"`
	From            common.Address `json:"from"`
	To              common.Address `json:"to"`
	GasUsed         uint64         `json:"gasUsed"`
}

// Succeeded reports whether the receipt status is the success code.
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

type receiptMarshaling struct {
	Status          hexutil.Uint64  `json:"status"`
	ContractAddress *common.Address `json:"contractAddress"`
	Output          hexutil.Bytes   `json:"output"`
	Logs            []*Log          `json:"logs"`
	Message         string          `json:"message,omitempty"`
	TransactionHash common.Hash     `json:"transactionHash"`
	BlockNumber     hexutil.Uint64  `json:"blockNumber"`
	From            common.Address  `json:"from"`
	To              common.Address  `json:"to"`
	GasUsed         hexutil.Uint64  `json:"gasUsed"`
}

// MarshalJSON marshals as JSON.
func (r Receipt) MarshalJSON() ([]byte, error) {
	enc := receiptMarshaling{
		Status:          hexutil.Uint64(r.Status),
		ContractAddress: r.ContractAddress,
		Output:          r.Output,
		Logs:            r.Logs,
		Message:         r.Message,
		TransactionHash: r.TransactionHash,
		BlockNumber:     hexutil.Uint64(r.BlockNumber),
		From:            r.From,
		To:              r.To,
		GasUsed:         hexutil.Uint64(r.GasUsed),
	}
	if enc.Logs == nil {
		enc.Logs = []*Log{}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON decodes a receipt. Node versions differ in the shape of the
// numeric fields and in naming the log list "logs" or "logEntries"; both are
// accepted. An empty or all-zero contract address decodes as nil.
func (r *Receipt) UnmarshalJSON(input []byte) error {
	var dec struct {
		Status          *quantity     `json:"status"`
		ContractAddress string        `json:"contractAddress"`
		Output          hexutil.Bytes `json:"output"`
		Logs            []*Log        `json:"logs"`
		LogEntries      []*Log        `json:"logEntries"`
		Message         string        `json:"message"`
		TransactionHash *common.Hash  `json:"transactionHash"`
		BlockNumber     quantity      `json:"blockNumber"`
		From            string        `json:"from"`
		To              string        `json:"to"`
		GasUsed         quantity      `json:"gasUsed"`
	}
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Status == nil {
		return fmt.Errorf("%w 'status' for Receipt", errMissingField)
	}
	r.Status = uint64(*dec.Status)
	r.ContractAddress = nil
	contract, err := parseAddress("contractAddress", dec.ContractAddress)
	if err != nil {
		return err
	}
	if contract != (common.Address{}) {
		r.ContractAddress = &contract
	}
	if r.From, err = parseAddress("from", dec.From); err != nil {
		return err
	}
	if r.To, err = parseAddress("to", dec.To); err != nil {
		return err
	}
	r.Output = dec.Output
	r.Logs = dec.Logs
	if len(r.Logs) == 0 {
		r.Logs = dec.LogEntries
	}
	r.Message = dec.Message
	if dec.TransactionHash != nil {
		r.TransactionHash = *dec.TransactionHash
	}
	r.BlockNumber = uint64(dec.BlockNumber)
	r.GasUsed = uint64(dec.GasUsed)

	for i, l := range r.Logs {
		if l == nil {
			continue
		}
		if l.BlockNumber == 0 {
			l.BlockNumber = r.BlockNumber
		}
		if l.TxHash == (common.Hash{}) {
			l.TxHash = r.TransactionHash
		}
		if l.Index == 0 {
			l.Index = uint(i)
		}
	}
	return nil
}

// parseAddress accepts an empty string as the zero address. Deploy receipts
// carry an empty "to".
func parseAddress(field, s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s %q", field, s)
	}
	return common.HexToAddress(s), nil
}

// CallResult is the outcome of a read-only call.
// CallResult 是只读调用的结果。
type CallResult struct {
	Status      uint64 `json:"status"`
	Output      []byte `json:"output"`
	BlockNumber uint64 `json:"blockNumber"`
}

// UnmarshalJSON decodes a call result.
func (c *CallResult) UnmarshalJSON(input []byte) error {
	var dec struct {
		Status      *quantity     `json:"status"`
		Output      hexutil.Bytes `json:"output"`
		BlockNumber quantity      `json:"blockNumber"`
	}
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Status == nil {
		return fmt.Errorf("%w 'status' for CallResult", errMissingField)
	}
	c.Status = uint64(*dec.Status)
	c.Output = dec.Output
	c.BlockNumber = uint64(dec.BlockNumber)
	return nil
}

// MarshalJSON marshals as JSON.
func (c CallResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status      hexutil.Uint64 `json:"status"`
		Output      hexutil.Bytes  `json:"output"`
		BlockNumber hexutil.Uint64 `json:"blockNumber"`
	}{hexutil.Uint64(c.Status), c.Output, hexutil.Uint64(c.BlockNumber)})
}
