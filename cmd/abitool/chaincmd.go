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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi/bind"
	"github.com/sunyihoo/bcos-go-sdk/bcosclient"
	"github.com/sunyihoo/bcos-go-sdk/cmd/utils"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/config"
	"github.com/sunyihoo/bcos-go-sdk/core/types"
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/sunyihoo/bcos-go-sdk/log"
	"github.com/urfave/cli/v2"
)

var (
	callCommand = &cli.Command{
		Name:      "call",
		Usage:     "Execute a read-only contract call",
		ArgsUsage: "<method> <value>...",
		Flags:     flags.Merge(utils.NodeFlags, []cli.Flag{utils.ABIFileFlag, utils.ContractFlag}),
		Action:    call,
	}
	sendCommand = &cli.Command{
		Name:      "send",
		Usage:     "Send a contract transaction and wait for its receipt",
		ArgsUsage: "<method> <value>...",
		Flags:     flags.Merge(utils.NodeFlags, []cli.Flag{utils.ABIFileFlag, utils.ContractFlag, utils.KeyFileFlag, utils.AsyncFlag}),
		Action:    send,
	}
	deployCommand = &cli.Command{
		Name:      "deploy",
		Usage:     "Deploy a contract",
		ArgsUsage: "<constructor value>...",
		Flags:     flags.Merge(utils.NodeFlags, []cli.Flag{utils.ABIFileFlag, utils.BinFileFlag, utils.KeyFileFlag}),
		Action:    deploy,
	}
	eventsCommand = &cli.Command{
		Name:      "events",
		Usage:     "Decode the events emitted by a transaction",
		ArgsUsage: "<transaction hash>",
		Flags:     flags.Merge(utils.NodeFlags, []cli.Flag{utils.ABIFileFlag}),
		Action:    events,
	}
)

// session bundles what every chain command needs.
type session struct {
	cfg    config.Config
	abi    abi.ABI
	codec  *abi.Codec
	client *bcosclient.Client

	ctx    context.Context
	cancel context.CancelFunc
}

func newSession(ctx *cli.Context) (*session, error) {
	cfg, err := utils.MakeConfig(ctx)
	if err != nil {
		return nil, err
	}
	parsed, err := utils.LoadABI(ctx)
	if err != nil {
		return nil, err
	}
	codec, err := utils.MakeCodec(cfg)
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx.Context, cfg.Node.RequestTimeout)
	client, err := utils.MakeClient(c, cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	return &session{cfg: cfg, abi: parsed, codec: codec, client: client, ctx: c, cancel: cancel}, nil
}

func (s *session) close() {
	s.client.Close()
	s.cancel()
}

// contract binds --contract and parses the method arguments.
func (s *session) contract(ctx *cli.Context, signer bind.Signer) (*bind.BoundContract, abi.Method, []abi.Value, error) {
	addr, err := utils.ContractAddress(ctx)
	if err != nil {
		return nil, abi.Method{}, nil, err
	}
	if ctx.NArg() == 0 {
		return nil, abi.Method{}, nil, errors.New("missing method name")
	}
	name := ctx.Args().First()
	m, ok := s.abi.Methods[name]
	if !ok {
		return nil, abi.Method{}, nil, fmt.Errorf("method %q not found in ABI", name)
	}
	vals, err := abi.ParseValues(m.Inputs.Types(), ctx.Args().Tail())
	if err != nil {
		return nil, abi.Method{}, nil, err
	}
	return bind.NewBoundContract(addr, s.abi, s.codec, s.client, signer), m, vals, nil
}

func call(ctx *cli.Context) error {
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	contract, m, vals, err := s.contract(ctx, nil)
	if err != nil {
		return err
	}
	out, err := contract.Call(s.ctx, m.Name, vals...)
	if err != nil {
		return err
	}
	utils.PrintValues(ctx, ctx.App.Writer, m.Outputs, out)
	return nil
}

func send(ctx *cli.Context) error {
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	signer, err := s.cfg.Signer()
	if err != nil {
		return err
	}
	contract, m, vals, err := s.contract(ctx, signer)
	if err != nil {
		return err
	}
	log.Debug("Sending transaction", "contract", contract.Address(), "method", m.Sig, "from", signer.Address())

	var receipt *types.Receipt
	if ctx.Bool(utils.AsyncFlag.Name) {
		receipt, err = contract.TransactFuture(s.ctx, m.Name, vals...).Wait(s.ctx)
	} else {
		receipt, err = contract.Transact(s.ctx, m.Name, vals...)
	}
	if receipt != nil {
		printReceipt(ctx.App.Writer, receipt)
	}
	if err != nil {
		return err
	}
	if len(m.Outputs) > 0 && len(receipt.Output) > 0 {
		out, err := m.Outputs.Unpack(receipt.Output)
		if err != nil {
			return err
		}
		utils.PrintValues(ctx, ctx.App.Writer, m.Outputs, out)
	}
	return printEvents(ctx, s, receipt)
}

func deploy(ctx *cli.Context) error {
	binFile := flags.Path(ctx, utils.BinFileFlag)
	if binFile == "" {
		return fmt.Errorf("missing --%s", utils.BinFileFlag.Name)
	}
	bytecode, err := utils.LoadBytecode(binFile)
	if err != nil {
		return err
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	signer, err := s.cfg.Signer()
	if err != nil {
		return err
	}
	vals, err := abi.ParseValues(s.abi.Constructor.Inputs.Types(), ctx.Args().Slice())
	if err != nil {
		return err
	}
	contract, receipt, err := bind.DeployContract(s.ctx, s.abi, s.codec, bytecode, s.client, signer, vals...)
	if receipt != nil {
		printReceipt(ctx.App.Writer, receipt)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "contract:", contract.Address().Hex())
	return nil
}

func events(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one transaction hash")
	}
	arg := ctx.Args().First()
	if len(common.FromHex(arg)) != common.HashLength {
		return fmt.Errorf("invalid transaction hash %q", arg)
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	receipt, err := s.client.TransactionReceipt(s.ctx, common.HexToHash(arg))
	if err != nil {
		return err
	}
	printReceipt(ctx.App.Writer, receipt)
	return printEvents(ctx, s, receipt)
}

func printEvents(ctx *cli.Context, s *session, receipt *types.Receipt) error {
	evs, err := bind.ExtractAllEvents(s.codec, s.abi, receipt)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for _, ev := range evs {
		fmt.Fprintf(w, "event %s (log %d)\n", ev.Event.Sig, ev.Log.Index)
		utils.PrintValues(ctx, w, ev.Event.Inputs, ev.Values())
	}
	return nil
}

func printReceipt(w io.Writer, r *types.Receipt) {
	status := bind.ParseReceiptStatus(r.Status)
	fmt.Fprintln(w, "transaction:", r.TransactionHash.Hex())
	fmt.Fprintf(w, "status: %d (%s)\n", status.Code, status.Message)
	fmt.Fprintln(w, "block:", r.BlockNumber)
	if r.Message != "" {
		fmt.Fprintln(w, "message:", r.Message)
	}
}
