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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
)

func TestExtractEventsSkipsForeignLogs(t *testing.T) {
	c := newTestContract(t, &fakeTransport{})
	codec := c.Codec()
	transfer := c.ABI().Events["Transfer"]
	memo := c.ABI().Events["Memo"]

	receipt := &types.Receipt{Logs: []*types.Log{
		{Address: contractAddr, Topics: []common.Hash{codec.EventTopic(memo), common.Hash{0x01}}, Data: encode(t, uintValue(t, 8, 1))},
		{Address: contractAddr, Topics: []common.Hash{codec.EventTopic(transfer), common.BytesToHash(alice.Bytes()), common.BytesToHash(bob.Bytes())}, Data: encode(t, uintValue(t, 256, 3))},
		{Address: contractAddr, Topics: nil, Data: nil},
	}}

	events, err := ExtractEvents(codec, transfer, receipt)
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0]
	require.Len(t, ev.Indexed, 2)
	require.Len(t, ev.NonIndexed, 1)
	assert.Equal(t, alice, ev.Indexed[0].Address())
	assert.Equal(t, bob, ev.Indexed[1].Address())
	assert.Equal(t, big.NewInt(3), ev.NonIndexed[0].BigInt())

	values := ev.Values()
	require.Len(t, values, 3)
	assert.Equal(t, big.NewInt(3), values[2].BigInt())
	assert.Equal(t, alice, ev.Map()["from"].Address())

	withLog, err := ExtractEventsWithLog(codec, transfer, receipt)
	require.NoError(t, err)
	require.Len(t, withLog, 1)
	assert.Same(t, receipt.Logs[1], withLog[0].Log)
}

func TestExtractEventsIndexedString(t *testing.T) {
	c := newTestContract(t, &fakeTransport{})
	codec := c.Codec()
	memo := c.ABI().Events["Memo"]
	textHash := common.BytesToHash(crypto.Keccak256([]byte("hello")))

	logs := []*types.Log{{
		Topics: []common.Hash{codec.EventTopic(memo), textHash},
		Data:   encode(t, uintValue(t, 8, 9)),
	}}
	events, err := ExtractEventsFromLogs(codec, memo, logs)
	require.NoError(t, err)
	require.Len(t, events, 1)

	text := events[0].Indexed[0]
	assert.True(t, text.IsTopicHash())
	assert.Equal(t, abi.StringTy, text.Type().T)
	h, ok := text.Hash()
	require.True(t, ok)
	assert.Equal(t, textHash, h)
	assert.Equal(t, uint64(9), events[0].NonIndexed[0].BigInt().Uint64())
}

func TestExtractEventsMalformed(t *testing.T) {
	c := newTestContract(t, &fakeTransport{})
	codec := c.Codec()
	transfer := c.ABI().Events["Transfer"]

	// matching topic but the data is one byte short of a word
	receipt := &types.Receipt{Logs: []*types.Log{{
		Topics: []common.Hash{codec.EventTopic(transfer), {}, {}},
		Data:   make([]byte, 31),
	}}}
	_, err := ExtractEvents(codec, transfer, receipt)
	require.ErrorIs(t, err, abi.ErrTruncatedData)

	// missing indexed topic
	receipt.Logs[0].Topics = receipt.Logs[0].Topics[:2]
	receipt.Logs[0].Data = make([]byte, 32)
	_, err = ExtractEvents(codec, transfer, receipt)
	assert.Error(t, err)

	events, err := ExtractEvents(codec, transfer, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestExtractAllEvents(t *testing.T) {
	c := newTestContract(t, &fakeTransport{})
	codec := c.Codec()
	transfer := c.ABI().Events["Transfer"]
	memo := c.ABI().Events["Memo"]

	receipt := &types.Receipt{Logs: []*types.Log{
		{Topics: []common.Hash{codec.EventTopic(memo), {}}, Data: encode(t, uintValue(t, 8, 1))},
		{Topics: []common.Hash{{0xff}}},
		{Topics: []common.Hash{codec.EventTopic(transfer), {}, {}}, Data: encode(t, uintValue(t, 256, 2))},
	}}
	all, err := ExtractAllEvents(codec, c.ABI(), receipt)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Memo", all[0].Event.Name)
	assert.Equal(t, "Transfer", all[1].Event.Name)
}
