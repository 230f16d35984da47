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

package flags

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestPathExpansion(t *testing.T) {
	home := HomeDir()
	var tests map[string]string

	if runtime.GOOS == "windows" {
		tests = map[string]string{
			`/home/someuser/tmp`: `\home\someuser\tmp`,
			`~/tmp`:              home + `\tmp`,
			`~thisOtherUser/b/`:  `~thisOtherUser\b`,
			`$DDDXXX/a/b`:        `\tmp\a\b`,
			`/a/b/`:              `\a\b`,
		}
	} else {
		tests = map[string]string{
			`/home/someuser/tmp`: `/home/someuser/tmp`,
			`~/tmp`:              home + `/tmp`,
			`~thisOtherUser/b/`:  `~thisOtherUser/b`,
			`$DDDXXX/a/b`:        `/tmp/a/b`,
			`/a/b/`:              `/a/b`,
			``:                   ``,
		}
	}
	os.Setenv(`DDDXXX`, `/tmp`)
	for test, expected := range tests {
		got := expandPath(test)
		assert.Equal(t, expected, got, "test %s", test)
	}
}

func TestPathFlag(t *testing.T) {
	keyFlag := &PathFlag{Name: "key", Value: "default.key", Category: AccountCategory}
	run := func(args ...string) string {
		var got string
		app := &cli.App{
			Flags: []cli.Flag{keyFlag},
			Action: func(ctx *cli.Context) error {
				got = Path(ctx, keyFlag)
				return nil
			},
		}
		require.NoError(t, app.Run(append([]string{"app"}, args...)))
		return got
	}
	assert.Equal(t, "/b/key", run("--key", "/a/../b/key"))
	assert.Equal(t, AccountCategory, keyFlag.GetCategory())

	// a previous run does not leak into the default
	assert.Equal(t, "default.key", run())
	assert.Equal(t, PathString("default.key"), keyFlag.Value)
}

func TestMerge(t *testing.T) {
	a := []cli.Flag{&cli.StringFlag{Name: "a"}}
	b := []cli.Flag{&cli.StringFlag{Name: "b"}, &cli.StringFlag{Name: "c"}}
	assert.Len(t, Merge(a, b), 3)
}
