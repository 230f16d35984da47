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

package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/cmd/utils"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	signatureCommand = &cli.Command{
		Name:      "signature",
		Usage:     "Print canonical signatures",
		ArgsUsage: "[<signature>]",
		Flags:     []cli.Flag{utils.ABIFileFlag},
		Action:    signature,
		Description: `
Normalises a human readable signature such as "transfer(address to, uint amount)"
to its canonical form, or lists every function, event and error of --abi.`,
	}
	selectorCommand = &cli.Command{
		Name:      "selector",
		Usage:     "Print the 4 byte function selector of a signature",
		ArgsUsage: "<signature>",
		Action:    selector,
	}
	topicCommand = &cli.Command{
		Name:      "topic",
		Usage:     "Print the event topic of a signature",
		ArgsUsage: "<signature>",
		Action:    topic,
	}
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "Encode values into call data",
		ArgsUsage: "[<method>] <value>...",
		Flags:     []cli.Flag{utils.ABIFileFlag, utils.SigFlag, utils.TypesFlag},
		Action:    encode,
		Description: `
With --sig or --abi the output is a function call: selector followed by the
encoded arguments. With --types only the argument encoding is printed.
Arrays and tuples are written as JSON arrays.`,
	}
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "Decode call data or return data",
		ArgsUsage: "[<method>] <hex>",
		Flags:     []cli.Flag{utils.ABIFileFlag, utils.SigFlag, utils.TypesFlag},
		Action:    decode,
		Description: `
--types decodes a plain argument encoding. --sig decodes the call data of the
given function. --abi decodes call data by its selector, or the return data of
<method> when one is given.`,
	}
)

func makeCodec(ctx *cli.Context) (*abi.Codec, error) {
	cfg, err := utils.MakeConfig(ctx)
	if err != nil {
		return nil, err
	}
	return utils.MakeCodec(cfg)
}

func signature(ctx *cli.Context) error {
	w := ctx.App.Writer
	if ctx.NArg() == 1 {
		m, err := abi.NewMethodFromSelector(ctx.Args().First())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, m.Sig)
		return nil
	}
	parsed, err := utils.LoadABI(ctx)
	if err != nil {
		return err
	}
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	for _, name := range sortedKeys(parsed.Methods) {
		m := parsed.Methods[name]
		fmt.Fprintf(w, "function %s %s\n", hexutil.Encode(codec.MethodID(m)), m.Sig)
	}
	for _, name := range sortedKeys(parsed.Events) {
		e := parsed.Events[name]
		fmt.Fprintf(w, "event    %s %s\n", codec.EventTopic(e).Hex(), e.Sig)
	}
	for _, name := range sortedKeys(parsed.Errors) {
		e := parsed.Errors[name]
		id := codec.ErrorID(e)
		fmt.Fprintf(w, "error    %s %s\n", hexutil.Encode(id[:]), e.String())
	}
	return nil
}

func selector(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one signature")
	}
	m, err := abi.NewMethodFromSelector(ctx.Args().First())
	if err != nil {
		return err
	}
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(codec.MethodID(m)))
	return nil
}

func topic(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one signature")
	}
	e, err := abi.NewEventFromSelector(ctx.Args().First())
	if err != nil {
		return err
	}
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, codec.EventTopic(e).Hex())
	return nil
}

// resolveMethod picks the function named by --sig, or by the first argument
// when --abi is given. The remaining arguments are returned.
func resolveMethod(ctx *cli.Context) (*abi.Method, []string, error) {
	args := ctx.Args().Slice()
	if sig := ctx.String(utils.SigFlag.Name); sig != "" {
		m, err := abi.NewMethodFromSelector(sig)
		if err != nil {
			return nil, nil, err
		}
		return &m, args, nil
	}
	if flags.Path(ctx, utils.ABIFileFlag) == "" {
		return nil, args, nil
	}
	if len(args) == 0 {
		return nil, nil, errors.New("missing method name")
	}
	parsed, err := utils.LoadABI(ctx)
	if err != nil {
		return nil, nil, err
	}
	m, ok := parsed.Methods[args[0]]
	if !ok {
		return nil, nil, fmt.Errorf("method %q not found in ABI", args[0])
	}
	return &m, args[1:], nil
}

func encode(ctx *cli.Context) error {
	if err := flags.CheckExclusive(ctx, utils.ABIFileFlag, utils.SigFlag, utils.TypesFlag); err != nil {
		return err
	}
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	m, args, err := resolveMethod(ctx)
	if err != nil {
		return err
	}
	var out []byte
	if m != nil {
		vals, err := abi.ParseValues(m.Inputs.Types(), args)
		if err != nil {
			return err
		}
		if out, err = codec.EncodeCall(*m, vals...); err != nil {
			return err
		}
	} else {
		types, err := abi.ParseTypeList(ctx.String(utils.TypesFlag.Name))
		if err != nil {
			return err
		}
		vals, err := abi.ParseValues(types, args)
		if err != nil {
			return err
		}
		if out, err = abi.Encode(vals...); err != nil {
			return err
		}
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(out))
	return nil
}

func decode(ctx *cli.Context) error {
	if err := flags.CheckExclusive(ctx, utils.ABIFileFlag, utils.SigFlag, utils.TypesFlag); err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return errors.New("missing hex data")
	}
	data, err := hexutil.Decode(ctx.Args().Get(ctx.NArg() - 1))
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer

	switch {
	case ctx.IsSet(utils.TypesFlag.Name):
		types, err := abi.ParseTypeList(ctx.String(utils.TypesFlag.Name))
		if err != nil {
			return err
		}
		vals, err := abi.Decode(data, types...)
		if err != nil {
			return err
		}
		utils.PrintValues(ctx, w, abi.NewArguments(types...), vals)

	case ctx.IsSet(utils.SigFlag.Name):
		m, err := abi.NewMethodFromSelector(ctx.String(utils.SigFlag.Name))
		if err != nil {
			return err
		}
		id := codec.MethodID(m)
		if len(data) < len(id) || string(data[:len(id)]) != string(id) {
			return fmt.Errorf("call data does not start with selector %s", hexutil.Encode(id))
		}
		vals, err := m.Inputs.Unpack(data[len(id):])
		if err != nil {
			return err
		}
		utils.PrintValues(ctx, w, m.Inputs, vals)

	default:
		parsed, err := utils.LoadABI(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() == 2 {
			name := ctx.Args().First()
			m, ok := parsed.Methods[name]
			if !ok {
				return fmt.Errorf("method %q not found in ABI", name)
			}
			vals, err := m.Outputs.Unpack(data)
			if err != nil {
				return err
			}
			utils.PrintValues(ctx, w, m.Outputs, vals)
			return nil
		}
		m, vals, err := codec.DecodeCall(&parsed, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, m.Sig)
		utils.PrintValues(ctx, w, m.Inputs, vals)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
