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

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
)

// ParseValue builds a Value of type typ from its textual form. Integers are
// decimal or 0x-prefixed hex, byte strings are hex, addresses are hex with or
// without checksum. Arrays and tuples are written as JSON arrays, e.g.
// `[1, "0x01", ["a", "b"]]`; tuples may also be JSON objects keyed by
// component name.
//
// ParseValue 将命令行或配置中的文本解析为类型为 typ 的值，复合类型使用 JSON 数组表示。
func ParseValue(typ Type, text string) (Value, error) {
	switch typ.T {
	case SliceTy, ArrayTy, TupleTy:
		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return Value{}, &TypeConversionError{From: strconv.Quote(text), To: typ.String(), Reason: err.Error()}
		}
		return parseJSONValue(typ, raw)
	}
	return parseScalar(typ, text)
}

// ParseValues parses one text per type.
func ParseValues(types []Type, texts []string) ([]Value, error) {
	if len(types) != len(texts) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(texts), len(types))
	}
	values := make([]Value, len(types))
	for i := range types {
		v, err := ParseValue(types[i], texts[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseScalar(typ Type, text string) (Value, error) {
	fail := func(reason string) error {
		return &TypeConversionError{From: strconv.Quote(text), To: typ.String(), Reason: reason}
	}
	if typ.T == StringTy {
		return NewString(text), nil
	}
	text = strings.TrimSpace(text)
	switch typ.T {
	case IntTy, UintTy:
		n, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return Value{}, fail("invalid integer")
		}
		return NewInteger(typ, n)
	case BoolTy:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fail("invalid boolean")
		}
		return NewBool(b), nil
	case AddressTy:
		if !common.IsHexAddress(text) {
			return Value{}, fail("invalid address")
		}
		return NewAddress(common.HexToAddress(text)), nil
	case BytesTy, FixedBytesTy, FunctionTy:
		if !common.Has0xPrefix(text) {
			text = "0x" + text
		}
		b, err := hexutil.Decode(text)
		if err != nil {
			return Value{}, fail(err.Error())
		}
		switch typ.T {
		case BytesTy:
			return NewBytes(b), nil
		case FunctionTy:
			if len(b) != 24 {
				return Value{}, fail("function values are 24 bytes")
			}
			return Value{typ: typ, raw: b}, nil
		}
		return NewFixedBytesOf(typ, b)
	}
	return Value{}, fail("unsupported type")
}

func parseJSONValue(typ Type, raw interface{}) (Value, error) {
	switch typ.T {
	case SliceTy, ArrayTy, TupleTy:
		var items []interface{}
		switch raw := raw.(type) {
		case []interface{}:
			items = raw
		case map[string]interface{}:
			if typ.T != TupleTy {
				return Value{}, &TypeConversionError{From: "object", To: typ.String()}
			}
			items = make([]interface{}, len(typ.TupleRawNames))
			for i, name := range typ.TupleRawNames {
				item, ok := raw[name]
				if !ok {
					return Value{}, &TypeConversionError{From: "object", To: typ.String(), Reason: fmt.Sprintf("missing field %q", name)}
				}
				items[i] = item
			}
		default:
			return Value{}, &TypeConversionError{From: fmt.Sprintf("%v", raw), To: typ.String(), Reason: "expected a JSON array"}
		}
		elems := make([]Value, len(items))
		for i, item := range items {
			elemType := typ.Elem
			if typ.T == TupleTy {
				if i >= len(typ.TupleElems) {
					return Value{}, &TypeConversionError{From: fmt.Sprintf("%d elements", len(items)), To: typ.String()}
				}
				elemType = typ.TupleElems[i]
			}
			v, err := parseJSONValue(*elemType, item)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return NewComposite(typ, elems...)
	}
	switch raw := raw.(type) {
	case string:
		return parseScalar(typ, raw)
	case json.Number:
		return parseScalar(typ, raw.String())
	case bool:
		return parseScalar(typ, strconv.FormatBool(raw))
	case nil:
		return Value{}, &TypeConversionError{From: "null", To: typ.String()}
	}
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(raw)
	return Value{}, &TypeConversionError{From: strings.TrimSpace(buf.String()), To: typ.String()}
}
