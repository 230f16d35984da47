// Copyright 2020 The go-ethereum Authors
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
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/urfave/cli/v2"
)

// DeprecatedFlags is the list of all deprecated flags.
var DeprecatedFlags = []cli.Flag{
	LegacyKeyFileFlag,
	LegacySMCryptoFlag,
}

var (
	// Deprecated: replaced by --key
	LegacyKeyFileFlag = &flags.PathFlag{
		Name:     "keyfile",
		Usage:    "Account key file (deprecated, use --key)",
		Category: flags.DeprecatedCategory,
	}
	// Deprecated: replaced by --hash
	LegacySMCryptoFlag = &cli.BoolFlag{
		Name:     "smcrypto",
		Usage:    "Use the national cryptography suite (deprecated, use --hash)",
		Category: flags.DeprecatedCategory,
	}
)
