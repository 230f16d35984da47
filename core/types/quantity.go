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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
)

// quantity decodes the numeric fields nodes report in several shapes: a JSON
// number, a 0x-prefixed hex string or a decimal string.
type quantity uint64

func (q *quantity) UnmarshalJSON(input []byte) error {
	if len(input) == 0 || string(input) == "null" {
		*q = 0
		return nil
	}
	if input[0] != '"' {
		var n uint64
		if err := json.Unmarshal(input, &n); err != nil {
			return fmt.Errorf("invalid quantity %s: %w", input, err)
		}
		*q = quantity(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	return q.parse(s)
}

func (q *quantity) parse(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		*q = 0
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		if len(s) == 2 {
			*q = 0
			return nil
		}
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return fmt.Errorf("invalid hex quantity %q: %w", s, err)
		}
		*q = quantity(n)
	default:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", s, err)
		}
		*q = quantity(n)
	}
	return nil
}

func (q quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.Uint64(q))
}

var errMissingField = errors.New("missing required field")
