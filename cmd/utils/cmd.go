// Copyright 2014 The go-ethereum Authors
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

package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi"
	"github.com/sunyihoo/bcos-go-sdk/bcosclient"
	"github.com/sunyihoo/bcos-go-sdk/common"
	"github.com/sunyihoo/bcos-go-sdk/common/hexutil"
	"github.com/sunyihoo/bcos-go-sdk/config"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/sunyihoo/bcos-go-sdk/log"
	"github.com/urfave/cli/v2"
)

// MakeConfig loads the configuration file, if any, and applies the command
// line flags on top of it.
// MakeConfig 加载配置文件并用命令行标志覆盖。
func MakeConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Defaults
	if file := flags.Path(ctx, ConfigFileFlag); file != "" {
		if err := config.LoadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(NodeURLFlag.Name) {
		cfg.Node.URL = ctx.String(NodeURLFlag.Name)
	}
	if ctx.IsSet(GroupIDFlag.Name) {
		cfg.Node.GroupID = ctx.String(GroupIDFlag.Name)
	}
	if ctx.IsSet(ChainIDFlag.Name) {
		cfg.Node.ChainID = ctx.String(ChainIDFlag.Name)
	}
	if ctx.IsSet(NodeNameFlag.Name) {
		cfg.Node.NodeName = ctx.String(NodeNameFlag.Name)
	}
	if ctx.IsSet(TimeoutFlag.Name) {
		cfg.Node.RequestTimeout = ctx.Duration(TimeoutFlag.Name)
	}
	if ctx.IsSet(HashFlag.Name) {
		cfg.Crypto.Hash = ctx.String(HashFlag.Name)
	}
	if ctx.IsSet(LegacyKeyFileFlag.Name) {
		log.Warn("The flag '--keyfile' is deprecated, please use '--key' instead")
		cfg.Crypto.KeyFile = flags.Path(ctx, LegacyKeyFileFlag)
	}
	if ctx.IsSet(KeyFileFlag.Name) {
		cfg.Crypto.KeyFile = flags.Path(ctx, KeyFileFlag)
	}
	if ctx.IsSet(LegacySMCryptoFlag.Name) {
		log.Warn("The flag '--smcrypto' is deprecated and has no effect, please use '--hash'")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MakeCodec returns the codec for the configured hash suite.
func MakeCodec(cfg config.Config) (*abi.Codec, error) {
	hasher, err := crypto.HasherByName(cfg.Crypto.Hash)
	if err != nil {
		return nil, err
	}
	return abi.NewCodec(hasher), nil
}

// MakeClient dials the configured node.
// MakeClient 连接配置中的节点。
func MakeClient(ctx context.Context, cfg config.Config) (*bcosclient.Client, error) {
	cc, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	client, err := bcosclient.DialContext(ctx, cfg.Node.URL, cc, cfg.RPCOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Node.URL, err)
	}
	return client, nil
}

// LoadABI reads the contract ABI named by --abi.
func LoadABI(ctx *cli.Context) (abi.ABI, error) {
	file := flags.Path(ctx, ABIFileFlag)
	if file == "" {
		return abi.ABI{}, fmt.Errorf("missing --%s", ABIFileFlag.Name)
	}
	f, err := os.Open(file)
	if err != nil {
		return abi.ABI{}, err
	}
	defer f.Close()
	parsed, err := abi.JSON(f)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("%s: %w", file, err)
	}
	return parsed, nil
}

// LoadBytecode reads hex encoded bytecode, with or without 0x prefix.
func LoadBytecode(file string) ([]byte, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(raw))
	if !common.Has0xPrefix(text) {
		text = "0x" + text
	}
	code, err := hexutil.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid bytecode: %w", file, err)
	}
	return code, nil
}

// ContractAddress returns the --contract address.
func ContractAddress(ctx *cli.Context) (common.Address, error) {
	s := ctx.String(ContractFlag.Name)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid --%s address %q", ContractFlag.Name, s)
	}
	return common.HexToAddress(s), nil
}

// PrintValues writes decoded values one per line, or as a spew dump when
// --dump is set.
// PrintValues 按行输出解码值，设置 --dump 时输出结构化转储。
func PrintValues(ctx *cli.Context, w io.Writer, args abi.Arguments, vals []abi.Value) {
	if ctx.Bool(DumpFlag.Name) {
		spew.Fdump(w, vals)
		return
	}
	for i, v := range vals {
		name := fmt.Sprintf("[%d]", i)
		if i < len(args) && args[i].Name != "" {
			name = args[i].Name
		}
		fmt.Fprintf(w, "%s %s: %s\n", name, v.Type().String(), v.String())
	}
}
