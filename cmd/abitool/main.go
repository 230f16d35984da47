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

// abitool encodes and decodes contract ABI data and talks to contracts
// deployed on a FISCO BCOS node.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/bcos-go-sdk/cmd/utils"
	"github.com/sunyihoo/bcos-go-sdk/config"
	"github.com/sunyihoo/bcos-go-sdk/internal/debug"
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("contract ABI codec and call tool")

func init() {
	app.Flags = flags.Merge(
		[]cli.Flag{utils.ConfigFileFlag, utils.HashFlag, utils.DumpFlag},
		debug.Flags,
		utils.DeprecatedFlags,
	)
	app.Commands = []*cli.Command{
		// see codeccmd.go
		signatureCommand,
		selectorCommand,
		topicCommand,
		encodeCommand,
		decodeCommand,
		// see chaincmd.go
		callCommand,
		sendCommand,
		deployCommand,
		eventsCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg := config.Defaults
		if file := flags.Path(ctx, utils.ConfigFileFlag); file != "" {
			if err := config.LoadConfig(file, &cfg); err != nil {
				return err
			}
		}
		return debug.Setup(ctx, cfg.Log)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
