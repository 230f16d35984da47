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

package abi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
// Argument 保存参数名及其类型，Indexed 仅用于事件。
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events
}

type Arguments []Argument

type ArgumentMarshaling struct {
	Name         string               `json:"name"`
	Type         string               `json:"type"`
	InternalType string               `json:"internalType,omitempty"`
	Components   []ArgumentMarshaling `json:"components,omitempty"`
	Indexed      bool                 `json:"indexed,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}

	argument.Type, err = newType(arg.Type, arg.InternalType, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	argument.Indexed = arg.Indexed

	return nil
}

func argumentsFromMarshaling(args []ArgumentMarshaling) (Arguments, error) {
	out := make(Arguments, 0, len(args))
	for _, arg := range args {
		typ, err := newType(arg.Type, arg.InternalType, arg.Components)
		if err != nil {
			return nil, err
		}
		out = append(out, Argument{Name: arg.Name, Type: typ, Indexed: arg.Indexed})
	}
	return out, nil
}

// NewArguments builds unnamed, non-indexed arguments from types.
func NewArguments(types ...Type) Arguments {
	out := make(Arguments, len(types))
	for i, t := range types {
		out[i] = Argument{Type: t}
	}
	return out
}

// NonIndexed returns the arguments with indexed arguments filtered out.
// NonIndexed 返回过滤掉 indexed 参数后的参数列表。
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Indexed returns only the indexed arguments.
func (arguments Arguments) Indexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Types returns the declared types in order.
func (arguments Arguments) Types() []Type {
	types := make([]Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// TypeList renders the canonical comma separated type list.
func (arguments Arguments) TypeList() string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return strings.Join(types, ",")
}

// Unpack performs the operation hexdata -> Go format. Only non-indexed
// arguments are decoded.
// Unpack 将返回数据解码为 Value 列表，仅处理非 indexed 参数。
func (arguments Arguments) Unpack(data []byte) ([]Value, error) {
	if len(data) == 0 {
		if len(arguments.NonIndexed()) != 0 {
			return nil, &EmptyReturnError{}
		}
		return make([]Value, 0), nil
	}
	return arguments.UnpackValues(data)
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to
// argument value.
func (arguments Arguments) UnpackIntoMap(v map[string]Value, data []byte) error {
	if v == nil {
		return errors.New("abi: cannot unpack into a nil map")
	}
	if len(data) == 0 {
		if len(arguments.NonIndexed()) != 0 {
			return &EmptyReturnError{}
		}
		return nil // Nothing to unmarshal, return
	}
	marshalledValues, err := arguments.UnpackValues(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		v[arg.Name] = marshalledValues[i]
	}
	return nil
}

// UnpackValues can be used to unpack ABI-encoded hexdata according to the ABI-specification,
// without supplying a struct to unpack into. Instead, this method returns a list containing the
// values. An atomic argument will be a list with one element.
func (arguments Arguments) UnpackValues(data []byte) ([]Value, error) {
	return decodeTypes(arguments.NonIndexed().Types(), data)
}

// PackValues performs the operation Go format -> Hexdata.
// It is the semantic opposite of UnpackValues.
func (arguments Arguments) PackValues(args []Value) ([]byte, error) {
	return arguments.Pack(args...)
}

// Pack performs the operation Go format -> Hexdata. The number of values
// and the type of each must match the declared arguments.
// Pack 将值编码为 ABI 数据，个数与类型必须与声明一致。
func (arguments Arguments) Pack(args ...Value) ([]byte, error) {
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(args), len(arguments))
	}
	for i, a := range args {
		want := arguments[i].Type
		if a.topic != nil || !a.typ.Equal(want) {
			return nil, &TypeConversionError{
				From:   a.typ.String(),
				To:     want.String(),
				Reason: fmt.Sprintf("argument %d (%s)", i, arguments[i].Name),
			}
		}
	}
	return packValues(args)
}
