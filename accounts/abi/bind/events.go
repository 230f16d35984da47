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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
)

// EventValues holds the decoded arguments of one event occurrence.
// EventValues 保存一次事件触发解码后的参数。
type EventValues struct {
	Event      *abi.Event
	Indexed    []abi.Value // indexed arguments in declared order
	NonIndexed []abi.Value // data arguments in declared order
}

// Values returns all arguments merged back into declaration order.
// Values 按声明顺序返回全部参数。
func (ev EventValues) Values() []abi.Value {
	out := make([]abi.Value, 0, len(ev.Indexed)+len(ev.NonIndexed))
	var i, n int
	for _, arg := range ev.Event.Inputs {
		if arg.Indexed {
			out = append(out, ev.Indexed[i])
			i++
		} else {
			out = append(out, ev.NonIndexed[n])
			n++
		}
	}
	return out
}

// Map returns the arguments keyed by name.
func (ev EventValues) Map() map[string]abi.Value {
	out := make(map[string]abi.Value, len(ev.Event.Inputs))
	for i, v := range ev.Values() {
		out[ev.Event.Inputs[i].Name] = v
	}
	return out
}

// EventValuesWithLog pairs decoded values with the log they came from.
type EventValuesWithLog struct {
	EventValues
	Log *types.Log
}

// ExtractEvents decodes all logs of the receipt emitted by event. Logs whose
// first topic is not the event signature are skipped.
// ExtractEvents 从收据中提取指定事件，topic0 不匹配的日志被跳过。
func ExtractEvents(codec *abi.Codec, event abi.Event, receipt *types.Receipt) ([]EventValues, error) {
	withLog, err := ExtractEventsWithLog(codec, event, receipt)
	if err != nil {
		return nil, err
	}
	out := make([]EventValues, len(withLog))
	for i := range withLog {
		out[i] = withLog[i].EventValues
	}
	return out, nil
}

// ExtractEventsWithLog is ExtractEvents keeping the originating logs.
func ExtractEventsWithLog(codec *abi.Codec, event abi.Event, receipt *types.Receipt) ([]EventValuesWithLog, error) {
	if receipt == nil {
		return nil, nil
	}
	return ExtractEventsFromLogs(codec, event, receipt.Logs)
}

// ExtractEventsFromLogs decodes the logs matching event.
func ExtractEventsFromLogs(codec *abi.Codec, event abi.Event, logs []*types.Log) ([]EventValuesWithLog, error) {
	topic := codec.EventTopic(event)
	var out []EventValuesWithLog
	for _, l := range logs {
		if l == nil || len(l.Topics) == 0 || l.Topics[0] != topic {
			continue
		}
		ev, err := decodeEvent(&event, l)
		if err != nil {
			return nil, err
		}
		out = append(out, EventValuesWithLog{EventValues: ev, Log: l})
	}
	return out, nil
}

// ExtractAllEvents decodes every log of the receipt that belongs to an event
// declared in the contract ABI. Anonymous events and foreign logs are skipped.
// ExtractAllEvents 解码收据中所有属于该 ABI 声明事件的日志。
func ExtractAllEvents(codec *abi.Codec, contractABI abi.ABI, receipt *types.Receipt) ([]EventValuesWithLog, error) {
	if receipt == nil {
		return nil, nil
	}
	known := mapset.NewThreadUnsafeSet[common.Hash]()
	for _, ev := range contractABI.Events {
		if !ev.Anonymous {
			known.Add(codec.EventTopic(ev))
		}
	}
	var out []EventValuesWithLog
	for _, l := range receipt.Logs {
		if l == nil || len(l.Topics) == 0 || !known.Contains(l.Topics[0]) {
			continue
		}
		event, err := contractABI.EventByID(codec, l.Topics[0])
		if err != nil {
			return nil, err
		}
		ev, err := decodeEvent(event, l)
		if err != nil {
			return nil, err
		}
		out = append(out, EventValuesWithLog{EventValues: ev, Log: l})
	}
	return out, nil
}

func decodeEvent(event *abi.Event, l *types.Log) (EventValues, error) {
	indexed := event.Inputs.Indexed()
	if len(l.Topics)-1 != len(indexed) {
		return EventValues{}, fmt.Errorf("event %s: have %d topics, want %d", event.Name, len(l.Topics)-1, len(indexed))
	}
	topics, err := abi.ParseTopics(indexed, l.Topics[1:])
	if err != nil {
		return EventValues{}, fmt.Errorf("event %s: %w", event.Name, err)
	}
	data, err := event.Inputs.Unpack(l.Data)
	if err != nil {
		return EventValues{}, fmt.Errorf("event %s: %w", event.Name, err)
	}
	return EventValues{Event: event, Indexed: topics, NonIndexed: data}, nil
}
