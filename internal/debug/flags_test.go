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

package debug

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/bcos-go-sdk/config"
	"github.com/sunyihoo/bcos-go-sdk/log"
	"github.com/urfave/cli/v2"
)

func TestNewHandlerFile(t *testing.T) {
	cfg := config.Defaults.Log
	cfg.Format = "json"
	cfg.Verbosity = 4
	cfg.File = filepath.Join(t.TempDir(), "logs", "abitool.log")

	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	defer stderr.Close()

	h, file, err := NewHandler(cfg, stderr)
	require.NoError(t, err)
	require.NotNil(t, file)

	logger := log.NewLogger(h)
	logger.Debug("hello", "k", 1)
	logger.Trace("hidden")
	require.NoError(t, file.Close())

	out, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"msg":"hello"`)
	assert.NotContains(t, string(out), "hidden")
	assert.True(t, h.Enabled(context.Background(), log.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), log.LevelTrace))
}

func TestNewHandlerRotate(t *testing.T) {
	cfg := config.Defaults.Log
	cfg.Rotate = true
	cfg.Format = "logfmt"
	cfg.File = filepath.Join(t.TempDir(), "rotate.log")

	h, file, err := NewHandler(cfg, os.Stderr)
	require.NoError(t, err)
	log.NewLogger(h).Warn("rotated")
	require.NoError(t, file.Close())

	out, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(out), "msg=rotated")
}

func TestNewHandlerUnknownFormat(t *testing.T) {
	cfg := config.Defaults.Log
	cfg.Format = "xml"
	_, _, err := NewHandler(cfg, os.Stderr)
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Defaults.Log
	app := &cli.App{
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			ApplyFlags(ctx, &cfg)
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"app", "--verbosity", "5", "--log.format", "json"}))
	assert.Equal(t, 5, cfg.Verbosity)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, config.Defaults.Log.MaxSize, cfg.MaxSize)
}
