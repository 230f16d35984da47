// Copyright 2018 The go-ethereum Authors
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

package abi

import (
	"errors"
	"fmt"

	"github.com/sunyihoo/bcos-go-sdk/common"
)

// DecodeIndexed decodes a single indexed event parameter from its topic.
// Static types are read from the 32 bytes of the topic. For reference types
// (string, bytes, arrays and tuples) the log only carries the hash of the
// encoded value, so the result is an opaque Value whose IsTopicHash reports
// true and whose Type still reports the declared type.
//
// DecodeIndexed 从 topic 中解码一个 indexed 参数；引用类型只能得到其哈希。
func DecodeIndexed(topic common.Hash, typ Type) (Value, error) {
	switch typ.T {
	case StringTy, BytesTy, SliceTy, ArrayTy, TupleTy:
		return newTopicValue(typ, topic), nil
	default:
		return toValue(0, typ, topic[:])
	}
}

// ParseTopics decodes the indexed fields from their topics, in order.
// The topics must not include the event signature hash.
// ParseTopics 按顺序解码 indexed 参数，topics 不应包含事件签名哈希。
func ParseTopics(fields Arguments, topics []common.Hash) ([]Value, error) {
	out := make([]Value, 0, len(fields))
	err := parseTopicWithSetter(fields, topics,
		func(arg Argument, reconstr Value) {
			out = append(out, reconstr)
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseTopicsIntoMap fills a map with the indexed fields keyed by name.
func ParseTopicsIntoMap(out map[string]Value, fields Arguments, topics []common.Hash) error {
	return parseTopicWithSetter(fields, topics,
		func(arg Argument, reconstr Value) {
			out[arg.Name] = reconstr
		})
}

// parseTopicWithSetter decodes each topic with the matching indexed field and
// hands the result to setter.
func parseTopicWithSetter(fields Arguments, topics []common.Hash, setter func(Argument, Value)) error {
	if len(fields) != len(topics) {
		return fmt.Errorf("topic/field count mismatch: %d topics for %d fields", len(topics), len(fields))
	}
	for i, arg := range fields {
		if !arg.Indexed {
			return errors.New("non-indexed field in topic reconstruction")
		}
		reconstr, err := DecodeIndexed(topics[i], arg.Type)
		if err != nil {
			return fmt.Errorf("topic %d (%s): %w", i, arg.Name, err)
		}
		setter(arg, reconstr)
	}
	return nil
}

// MakeTopics converts filter query values into topics. Static values are
// encoded as their 32 byte word, strings and bytes as the hash of their
// content, arrays and tuples as the hash of their element encoding. A value
// that already is a topic hash is used as is.
//
// MakeTopics 将过滤条件转换为 topic；引用类型使用 Codec 的哈希算法取哈希。
func (c *Codec) MakeTopics(query ...[]Value) ([][]common.Hash, error) {
	topics := make([][]common.Hash, len(query))
	for i, filter := range query {
		for _, rule := range filter {
			topic, err := c.topicOf(rule)
			if err != nil {
				return nil, err
			}
			topics[i] = append(topics[i], topic)
		}
	}
	return topics, nil
}

func (c *Codec) topicOf(v Value) (common.Hash, error) {
	if h, ok := v.Hash(); ok {
		return h, nil
	}
	switch v.typ.T {
	case StringTy:
		return common.BytesToHash(c.hasher.Hash([]byte(v.str))), nil
	case BytesTy:
		return common.BytesToHash(c.hasher.Hash(v.raw)), nil
	case SliceTy, ArrayTy, TupleTy:
		enc, err := packValues(v.elems)
		if err != nil {
			return common.Hash{}, err
		}
		return common.BytesToHash(c.hasher.Hash(enc)), nil
	}
	word, err := packElement(v)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(word), nil
}
