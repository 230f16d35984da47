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
	"strings"
)

// BuildSignature returns the canonical signature name(t1,t2,...) used for
// selectors, event topics and error identifiers. Arrays render as T[] and
// T[N], tuples as (T1,...,Tn).
//
// BuildSignature 生成规范签名 name(t1,t2,...)，用于计算选择器、事件主题与错误标识。
func BuildSignature(name string, types ...Type) string {
	kinds := make([]string, len(types))
	for i, t := range types {
		kinds[i] = t.String()
	}
	return name + "(" + strings.Join(kinds, ",") + ")"
}
