// Copyright 2016 The go-ethereum Authors
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
	"fmt"
	"strings"
)

// Error represents a custom error defined in the ABI. Its identifier is the
// first four bytes of the signature hash, computed by a Codec.
// Error 表示 ABI 中定义的自定义错误，其标识为签名哈希的前 4 字节。
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig contains the string signature according to the ABI spec.
	// e.g. error foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string
}

// NewError creates a new Error instance with the given name and inputs.
// It sanitizes the inputs and precomputes the string and signature
// representations.
// NewError 使用给定的名称和输入参数创建一个新的 Error 实例。
func NewError(name string, inputs Arguments) Error {
	// sanitize inputs to remove inputs without names
	// and precompute string and sig representation.
	names := make([]string, len(inputs))
	types := make([]Type, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			inputs[i] = Argument{
				Name:    fmt.Sprintf("arg%d", i),
				Indexed: input.Indexed,
				Type:    input.Type,
			}
		} else {
			inputs[i] = input
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, inputs[i].Name)
		types[i] = input.Type
	}

	return Error{
		Name:   name,
		Inputs: inputs,
		str:    fmt.Sprintf("error %v(%v)", name, strings.Join(names, ", ")),
		Sig:    BuildSignature(name, types...),
	}
}

// String returns the string representation of the error.
// String 返回错误的字符串表示形式。
func (e Error) String() string {
	return e.str
}
