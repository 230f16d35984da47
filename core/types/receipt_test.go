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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/common"
)

const v3Receipt = `{
	"version": 0,
	"contractAddress": "",
	"gasUsed": "19413",
	"status": 0,
	"blockNumber": 2,
	"output": "0x0000000000000000000000000000000000000000000000000000000000000001",
	"transactionHash": "0x7ad9d6fd8d5f2d7ac0c5a8ad8a8d6d5e1f3e4c9b0a7b6c5d4e3f2a1b0c9d8e7f",
	"from": "0x3d20a4e26f41b57c2061e520c825fbfa5f321f22",
	"to": "0x6849f21d1e455e9f0712b1e99fa4fcd23758e8f1",
	"message": "",
	"logEntries": [{
		"address": "0x6849f21d1e455e9f0712b1e99fa4fcd23758e8f1",
		"topics": ["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"],
		"data": "0x0000000000000000000000000000000000000000000000000000000000000064"
	}]
}`

const v2Receipt = `{
	"contractAddress": "0x0000000000000000000000000000000000000000",
	"gasUsed": "0x5fd0",
	"status": "0x16",
	"blockNumber": "0x1f",
	"output": "0x",
	"transactionHash": "0x7ad9d6fd8d5f2d7ac0c5a8ad8a8d6d5e1f3e4c9b0a7b6c5d4e3f2a1b0c9d8e7f",
	"logs": []
}`

const deployReceipt = `{
	"contractAddress": "0x6849f21d1e455e9f0712b1e99fa4fcd23758e8f1",
	"status": 0,
	"output": "0x",
	"blockNumber": 3,
	"logEntries": []
}`

func TestReceiptUnmarshalV3(t *testing.T) {
	var r Receipt
	require.NoError(t, json.Unmarshal([]byte(v3Receipt), &r))

	assert.True(t, r.Succeeded())
	assert.Nil(t, r.ContractAddress)
	assert.Equal(t, uint64(19413), r.GasUsed)
	assert.Equal(t, uint64(2), r.BlockNumber)
	require.Len(t, r.Logs, 1)
	assert.Equal(t, common.HexToAddress("0x6849f21d1e455e9f0712b1e99fa4fcd23758e8f1"), r.Logs[0].Address)
	assert.Len(t, r.Logs[0].Data, 32)
	assert.Equal(t, r.TransactionHash, r.Logs[0].TxHash)
	assert.Equal(t, uint64(2), r.Logs[0].BlockNumber)
}

func TestReceiptUnmarshalV2(t *testing.T) {
	var r Receipt
	require.NoError(t, json.Unmarshal([]byte(v2Receipt), &r))

	assert.False(t, r.Succeeded())
	assert.Equal(t, uint64(0x16), r.Status)
	assert.Equal(t, uint64(0x5fd0), r.GasUsed)
	assert.Equal(t, uint64(0x1f), r.BlockNumber)
	assert.Nil(t, r.ContractAddress, "zero address means no contract")
	assert.Empty(t, r.Output)
}

func TestReceiptDeployAddress(t *testing.T) {
	var r Receipt
	require.NoError(t, json.Unmarshal([]byte(deployReceipt), &r))
	require.NotNil(t, r.ContractAddress)
	assert.Equal(t, common.HexToAddress("0x6849f21d1e455e9f0712b1e99fa4fcd23758e8f1"), *r.ContractAddress)
}

func TestReceiptMissingStatus(t *testing.T) {
	var r Receipt
	require.Error(t, json.Unmarshal([]byte(`{"output":"0x"}`), &r))
}

func TestReceiptRoundTrip(t *testing.T) {
	addr := common.HexToAddress("0x01")
	in := Receipt{
		Status:          16,
		ContractAddress: &addr,
		Output:          []byte{1, 2, 3},
		Logs: []*Log{{
			Address: addr,
			Topics:  []common.Hash{common.HexToHash("0xaa")},
			Data:    []byte{0xff},
		}},
		BlockNumber: 9,
		GasUsed:     100,
	}
	enc, err := json.Marshal(in)
	require.NoError(t, err)

	var out Receipt
	require.NoError(t, json.Unmarshal(enc, &out))
	assert.Equal(t, in.Status, out.Status)
	assert.Equal(t, *in.ContractAddress, *out.ContractAddress)
	assert.Equal(t, in.Output, out.Output)
	require.Len(t, out.Logs, 1)
	assert.Equal(t, in.Logs[0].Topics, out.Logs[0].Topics)
	assert.Equal(t, in.Logs[0].Data, out.Logs[0].Data)
}

func TestCallResultUnmarshal(t *testing.T) {
	var c CallResult
	require.NoError(t, json.Unmarshal([]byte(`{"blockNumber":5,"output":"0x01","status":0}`), &c))
	assert.Equal(t, uint64(0), c.Status)
	assert.Equal(t, []byte{1}, c.Output)
	assert.Equal(t, uint64(5), c.BlockNumber)

	require.NoError(t, json.Unmarshal([]byte(`{"output":"0x","status":"0x10"}`), &c))
	assert.Equal(t, uint64(16), c.Status)
}
