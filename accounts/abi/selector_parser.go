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
	"errors"
	"fmt"
	"strings"
)

// SelectorMarshaling is the JSON-serializable form of a method selector.
type SelectorMarshaling struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Inputs []ArgumentMarshaling `json:"inputs"`
}

// compositeType is a parsed "(T1,...,Tn)" group with any array suffix that
// followed the closing parenthesis, e.g. "[]" or "[2][]". Element names and
// indexed markers are optional and kept parallel to elems.
type compositeType struct {
	elems   []interface{}
	names   []string
	indexed []bool
	suffix  string
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func parseToken(unescapedSelector string, isIdent bool) (string, string, error) {
	if len(unescapedSelector) == 0 {
		return "", "", errors.New("empty token")
	}
	firstChar := unescapedSelector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", fmt.Errorf("invalid token start: %c", firstChar)
	}
	for position < len(unescapedSelector) {
		char := unescapedSelector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return unescapedSelector[:position], unescapedSelector[position:], nil
}

func parseIdentifier(unescapedSelector string) (string, string, error) {
	return parseToken(unescapedSelector, true)
}

// parseArraySuffix consumes any number of "[]" or "[N]" groups.
func parseArraySuffix(rest string) (string, string, error) {
	var suffix strings.Builder
	for len(rest) > 0 && rest[0] == '[' {
		suffix.WriteByte('[')
		rest = rest[1:]
		for len(rest) > 0 && isDigit(rest[0]) {
			suffix.WriteByte(rest[0])
			rest = rest[1:]
		}
		if len(rest) == 0 || rest[0] != ']' {
			return "", "", errors.New("failed to parse array: expected ']'")
		}
		suffix.WriteByte(']')
		rest = rest[1:]
	}
	return suffix.String(), rest, nil
}

func parseElementaryType(unescapedSelector string) (string, string, error) {
	parsedType, rest, err := parseToken(unescapedSelector, false)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse elementary type: %v", err)
	}
	suffix, rest, err := parseArraySuffix(rest)
	if err != nil {
		return "", "", err
	}
	return parsedType + suffix, rest, nil
}

func parseCompositeType(unescapedSelector string) (compositeType, string, error) {
	if len(unescapedSelector) == 0 || unescapedSelector[0] != '(' {
		return compositeType{}, "", fmt.Errorf("expected '(', got %q", unescapedSelector)
	}
	var (
		result compositeType
		rest   = unescapedSelector[1:]
	)
	if len(rest) > 0 && rest[0] == ')' {
		rest = rest[1:]
	} else {
		for {
			parsedType, r, err := parseType(strings.TrimLeft(rest, " "))
			if err != nil {
				return compositeType{}, "", fmt.Errorf("failed to parse type: %v", err)
			}
			name, indexed, r, err := parseArgName(strings.TrimLeft(r, " "))
			if err != nil {
				return compositeType{}, "", err
			}
			result.elems = append(result.elems, parsedType)
			result.names = append(result.names, name)
			result.indexed = append(result.indexed, indexed)
			rest = strings.TrimLeft(r, " ")
			if len(rest) > 0 && rest[0] == ',' {
				rest = rest[1:]
				continue
			}
			break
		}
		if len(rest) == 0 || rest[0] != ')' {
			return compositeType{}, "", fmt.Errorf("expected ')', got '%s'", rest)
		}
		rest = rest[1:]
	}
	suffix, rest, err := parseArraySuffix(rest)
	if err != nil {
		return compositeType{}, "", err
	}
	result.suffix = suffix
	return result, rest, nil
}

// parseArgName consumes the optional "indexed" keyword and argument name
// following a type, as in "address indexed from".
func parseArgName(rest string) (string, bool, string, error) {
	var indexed bool
	for len(rest) > 0 && (isAlpha(rest[0]) || isIdentifierSymbol(rest[0])) {
		ident, r, err := parseIdentifier(rest)
		if err != nil {
			return "", false, "", err
		}
		rest = strings.TrimLeft(r, " ")
		if ident == "indexed" && !indexed {
			indexed = true
			continue
		}
		return ident, indexed, rest, nil
	}
	return "", indexed, rest, nil
}

// parseType determines whether the type is elementary or composite and
// delegates parsing accordingly.
func parseType(unescapedSelector string) (interface{}, string, error) {
	if len(unescapedSelector) == 0 {
		return nil, "", errors.New("empty type")
	}
	if unescapedSelector[0] == '(' {
		return parseCompositeType(unescapedSelector)
	}
	return parseElementaryType(unescapedSelector)
}

func assembleArgs(args []interface{}) ([]ArgumentMarshaling, error) {
	arguments := make([]ArgumentMarshaling, 0)
	for i, arg := range args {
		name := fmt.Sprintf("name%d", i)
		switch arg := arg.(type) {
		case string:
			arguments = append(arguments, ArgumentMarshaling{Name: name, Type: arg, InternalType: arg})
		case compositeType:
			subArgs, err := assembleComposite(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to assemble components: %v", err)
			}
			tupleType := "tuple" + arg.suffix
			arguments = append(arguments, ArgumentMarshaling{Name: name, Type: tupleType, InternalType: tupleType, Components: subArgs})
		default:
			return nil, fmt.Errorf("failed to assemble args: unexpected type %T", arg)
		}
	}
	return arguments, nil
}

// assembleComposite is assembleArgs applying the names and indexed markers
// found in the selector.
func assembleComposite(ct compositeType) ([]ArgumentMarshaling, error) {
	args, err := assembleArgs(ct.elems)
	if err != nil {
		return nil, err
	}
	for i := range args {
		if i < len(ct.names) && ct.names[i] != "" {
			args[i].Name = ct.names[i]
		}
		if i < len(ct.indexed) {
			args[i].Indexed = ct.indexed[i]
		}
	}
	return args, nil
}

// ParseSelector converts a method selector into a struct that can be JSON encoded
// and consumed by other functions in this package.
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
//
// ParseSelector 将 "transfer(address,uint256)" 形式的选择器解析为可 JSON 编码的结构。
func ParseSelector(unescapedSelector string) (SelectorMarshaling, error) {
	name, rest, err := parseIdentifier(strings.TrimSpace(unescapedSelector))
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': %v", unescapedSelector, err)
	}
	composite, rest, err := parseCompositeType(rest)
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': %v", unescapedSelector, err)
	}
	if composite.suffix != "" {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': unexpected array suffix", unescapedSelector)
	}
	if len(rest) > 0 {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': unexpected string '%s'", unescapedSelector, rest)
	}
	fakeArgs, err := assembleComposite(composite)
	if err != nil {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector: %v", err)
	}
	return SelectorMarshaling{name, "function", fakeArgs}, nil
}

// NewMethodFromSelector builds a function descriptor without outputs from a
// human readable selector.
func NewMethodFromSelector(selector string) (Method, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return Method{}, err
	}
	inputs, err := argumentsFromMarshaling(sel.Inputs)
	if err != nil {
		return Method{}, err
	}
	return NewMethod(sel.Name, sel.Name, Function, "nonpayable", false, false, inputs, nil), nil
}

// NewEventFromSelector builds an event descriptor from a human readable
// signature such as "Transfer(address indexed from,address indexed to,uint256)".
func NewEventFromSelector(selector string) (Event, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return Event{}, err
	}
	inputs, err := argumentsFromMarshaling(sel.Inputs)
	if err != nil {
		return Event{}, err
	}
	return NewEvent(sel.Name, sel.Name, false, inputs), nil
}

// ParseTypeList resolves a comma separated list of types such as
// "uint256,(address,string)[]".
func ParseTypeList(list string) ([]Type, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}
	composite, rest, err := parseCompositeType("(" + list + ")")
	if err != nil {
		return nil, &TypeResolutionError{Type: list, Reason: err.Error()}
	}
	if rest != "" || composite.suffix != "" {
		return nil, &TypeResolutionError{Type: list, Reason: "unexpected trailing input"}
	}
	args, err := assembleArgs(composite.elems)
	if err != nil {
		return nil, &TypeResolutionError{Type: list, Reason: err.Error()}
	}
	types := make([]Type, len(args))
	for i, arg := range args {
		if types[i], err = newType(arg.Type, "", arg.Components); err != nil {
			return nil, err
		}
	}
	return types, nil
}
