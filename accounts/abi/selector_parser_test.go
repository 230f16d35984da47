// Copyright 2022 The go-ethereum Authors
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		input string
		sig   string
	}{
		{"noargs()", "noargs()"},
		{"simple(uint256,uint256,uint256)", "simple(uint256,uint256,uint256)"},
		{"other(uint256,address)", "other(uint256,address)"},
		{"withArray(uint256[],address[2],uint8[4][])", "withArray(uint256[],address[2],uint8[4][])"},
		{"singleNest(bytes32,uint8,(uint256,uint256),address)", "singleNest(bytes32,uint8,(uint256,uint256),address)"},
		{"multiNest(address,(uint256[],uint256),((address,bytes32),uint256))", "multiNest(address,(uint256[],uint256),((address,bytes32),uint256))"},
		{"arrayNest((uint256,bool)[],(string)[2][])", "arrayNest((uint256,bool)[],(string)[2][])"},
		{"spaced(uint, bool)", "spaced(uint256,bool)"},
	}
	for _, tt := range tests {
		method, err := NewMethodFromSelector(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.sig, method.Sig, tt.input)
	}
}

func TestParseSelectorErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"noparens",
		"1abc()",
		"f(uint256",
		"f(uint256))",
		"f(uint256)[]",
		"f(uint256[)",
		"f(uint7)",
	} {
		_, err := NewMethodFromSelector(input)
		assert.Error(t, err, input)
	}
}

func TestEventFromSelector(t *testing.T) {
	event, err := NewEventFromSelector("Transfer(address,address,uint256)")
	require.NoError(t, err)
	assert.Equal(t, "Transfer", event.RawName)
	assert.Len(t, event.Inputs, 3)
	assert.Equal(t, "Transfer(address,address,uint256)", event.Sig)
}

func TestSelectorArgumentNames(t *testing.T) {
	m, err := NewMethodFromSelector("transfer(address to, uint256 amount)")
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", m.Sig)
	assert.Equal(t, "to", m.Inputs[0].Name)
	assert.Equal(t, "amount", m.Inputs[1].Name)

	ev, err := NewEventFromSelector("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	assert.Equal(t, "Transfer(address,address,uint256)", ev.Sig)
	assert.Len(t, ev.Inputs.Indexed(), 2)
	assert.Equal(t, "value", ev.Inputs[2].Name)

	_, err = NewMethodFromSelector("f(uint256 a b)")
	assert.Error(t, err)
}
