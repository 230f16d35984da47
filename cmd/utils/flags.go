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

// Package utils contains internal helper functions for the SDK commands.
package utils

import (
	"github.com/sunyihoo/bcos-go-sdk/config"
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	ConfigFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	DumpFlag = &cli.BoolFlag{
		Name:     "dump",
		Usage:    "Print decoded values as a structural dump",
		Category: flags.MiscCategory,
	}

	// Node settings
	NodeURLFlag = &cli.StringFlag{
		Name:     "url",
		Usage:    "Node JSON-RPC endpoint (http, https, ws or wss)",
		Value:    config.Defaults.Node.URL,
		EnvVars:  []string{"BCOS_NODE_URL"},
		Category: flags.NodeCategory,
	}
	GroupIDFlag = &cli.StringFlag{
		Name:     "group",
		Usage:    "Group id requests are scoped to",
		Value:    config.Defaults.Node.GroupID,
		Category: flags.NodeCategory,
	}
	ChainIDFlag = &cli.StringFlag{
		Name:     "chain",
		Usage:    "Chain id written into transactions",
		Value:    config.Defaults.Node.ChainID,
		Category: flags.NodeCategory,
	}
	NodeNameFlag = &cli.StringFlag{
		Name:     "node",
		Usage:    "Name of the node serving the request (default: any)",
		Category: flags.NodeCategory,
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:     "timeout",
		Usage:    "Maximum time to wait for the node, receipt polling included",
		Value:    config.Defaults.Node.RequestTimeout,
		Category: flags.NodeCategory,
	}

	// Account settings
	KeyFileFlag = &flags.PathFlag{
		Name:     "key",
		Usage:    "File holding the hex encoded account private key",
		EnvVars:  []string{"BCOS_KEY_FILE"},
		Category: flags.AccountCategory,
	}
	HashFlag = &cli.StringFlag{
		Name:     "hash",
		Usage:    "Hash suite used for selectors, topics and signatures (keccak256|sha3-256)",
		Value:    config.Defaults.Crypto.Hash,
		Category: flags.AccountCategory,
	}

	// Contract settings
	ABIFileFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "Contract ABI JSON file",
		Category: flags.ContractCategory,
	}
	BinFileFlag = &flags.PathFlag{
		Name:     "bin",
		Usage:    "Contract bytecode file (hex)",
		Category: flags.ContractCategory,
	}
	ContractFlag = &cli.StringFlag{
		Name:     "contract",
		Usage:    "Address of the deployed contract",
		Category: flags.ContractCategory,
	}
	SigFlag = &cli.StringFlag{
		Name:     "sig",
		Usage:    "Human readable signature, e.g. \"transfer(address,uint256)\"",
		Category: flags.ContractCategory,
	}
	TypesFlag = &cli.StringFlag{
		Name:     "types",
		Usage:    "Comma separated type list, e.g. \"uint256,string\"",
		Category: flags.ContractCategory,
	}
	AsyncFlag = &cli.BoolFlag{
		Name:     "async",
		Usage:    "Submit through the asynchronous worker pool",
		Category: flags.ContractCategory,
	}
)

// NodeFlags are the flags needed to reach a node. The config file and hash
// suite flags are global.
var NodeFlags = []cli.Flag{
	NodeURLFlag,
	GroupIDFlag,
	ChainIDFlag,
	NodeNameFlag,
	TimeoutFlag,
}
