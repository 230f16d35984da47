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
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. Every typed error below reports the
// corresponding sentinel from its Is method.
var (
	ErrTypeResolution   = errors.New("abi: type resolution failed")
	ErrTruncatedData    = errors.New("abi: truncated data")
	ErrOffsetOutOfRange = errors.New("abi: offset out of range")
	ErrEmptyReturn      = errors.New("abi: empty return")
	ErrTypeConversion   = errors.New("abi: type conversion failed")

	// ErrInvalidEncoding reports a word whose content is not a valid encoding
	// of its declared type, such as a boolean word holding 2.
	ErrInvalidEncoding = errors.New("abi: invalid encoding")
)

// TypeResolutionError is returned for malformed or unsupported type names.
// TypeResolutionError 表示类型名格式错误或不受支持。
type TypeResolutionError struct {
	Type   string
	Reason string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("abi: cannot resolve type %q: %s", e.Type, e.Reason)
}

func (e *TypeResolutionError) Is(target error) bool { return target == ErrTypeResolution }

// TruncatedDataError is returned when the input ends before a word the
// decoder needs. Need is the end offset the decoder tried to reach.
// TruncatedDataError 表示输入在解码所需的字之前就结束了。
type TruncatedDataError struct {
	Type   string
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("abi: truncated data decoding %s at offset %d: need %d bytes, have %d", e.Type, e.Offset, e.Need, e.Have)
}

func (e *TruncatedDataError) Is(target error) bool { return target == ErrTruncatedData }

// OffsetOutOfRangeError is returned when an offset or length word points
// outside the buffer.
type OffsetOutOfRangeError struct {
	Type   string
	Offset string // decimal, the word may exceed 64 bits
	Length int
}

func (e *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("abi: offset %s for %s out of range (len=%d)", e.Offset, e.Type, e.Length)
}

func (e *OffsetOutOfRangeError) Is(target error) bool { return target == ErrOffsetOutOfRange }

// EmptyReturnError is returned when a value is requested from a call that
// returned nothing.
type EmptyReturnError struct {
	Method string
}

func (e *EmptyReturnError) Error() string {
	if e.Method == "" {
		return "abi: empty value (0x) returned from contract"
	}
	return fmt.Sprintf("abi: empty value (0x) returned from contract method %s", e.Method)
}

func (e *EmptyReturnError) Is(target error) bool { return target == ErrEmptyReturn }

// TypeConversionError is returned when a value does not match the declared
// type, or cannot be converted to the requested Go type.
// TypeConversionError 表示值与声明类型不匹配，或无法转换为目标 Go 类型。
type TypeConversionError struct {
	From   string
	To     string
	Reason string
}

func (e *TypeConversionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("abi: cannot use %s as %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("abi: cannot use %s as %s", e.From, e.To)
}

func (e *TypeConversionError) Is(target error) bool { return target == ErrTypeConversion }

func typeErr(from, to interface{}) error {
	return &TypeConversionError{From: fmt.Sprint(from), To: fmt.Sprint(to)}
}
