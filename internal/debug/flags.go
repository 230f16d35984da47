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

// Package debug wires the logging flags of the command line tools.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/bcos-go-sdk/config"
	"github.com/sunyihoo/bcos-go-sdk/internal/flags"
	"github.com/sunyihoo/bcos-go-sdk/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		// 日志详细级别：0=静默，1=错误，2=警告，3=信息，4=调试，5=详细。
		Value:    config.Defaults.Log.Verbosity,
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (json|logfmt|terminal)",
		Category: flags.LoggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file",
		Category: flags.LoggingCategory,
	}
	logRotateFlag = &cli.BoolFlag{
		Name:     "log.rotate",
		Usage:    "Enables log file rotation",
		Category: flags.LoggingCategory,
	}
	logMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in MBs of a single log file",
		Value:    config.Defaults.Log.MaxSize,
		Category: flags.LoggingCategory,
	}
	logMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Maximum number of log files to retain",
		Value:    config.Defaults.Log.MaxBackups,
		Category: flags.LoggingCategory,
	}
	logMaxAgeFlag = &cli.IntFlag{
		Name:     "log.maxage",
		Usage:    "Maximum number of days to retain a log file",
		Value:    config.Defaults.Log.MaxAge,
		Category: flags.LoggingCategory,
	}
	logCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Compress the log files",
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for logging.
// Flags 包含所有日志相关的命令行标志。
var Flags = []cli.Flag{
	verbosityFlag,
	logFormatFlag,
	logFileFlag,
	logRotateFlag,
	logMaxSizeMBsFlag,
	logMaxBackupsFlag,
	logMaxAgeFlag,
	logCompressFlag,
}

var logOutputFile io.WriteCloser

// ApplyFlags overrides the values of cfg with the logging flags set on the
// command line.
func ApplyFlags(ctx *cli.Context, cfg *config.LogConfig) {
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Format = ctx.String(logFormatFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.File = ctx.String(logFileFlag.Name)
	}
	if ctx.IsSet(logRotateFlag.Name) {
		cfg.Rotate = ctx.Bool(logRotateFlag.Name)
	}
	if ctx.IsSet(logMaxSizeMBsFlag.Name) {
		cfg.MaxSize = ctx.Int(logMaxSizeMBsFlag.Name)
	}
	if ctx.IsSet(logMaxBackupsFlag.Name) {
		cfg.MaxBackups = ctx.Int(logMaxBackupsFlag.Name)
	}
	if ctx.IsSet(logMaxAgeFlag.Name) {
		cfg.MaxAge = ctx.Int(logMaxAgeFlag.Name)
	}
	if ctx.IsSet(logCompressFlag.Name) {
		cfg.Compress = ctx.Bool(logCompressFlag.Name)
	}
}

// Setup initializes logging based on cfg and the CLI flags. It should be
// called as early as possible in the program.
// Setup 根据配置与 CLI 标志初始化日志，应尽早调用。
func Setup(ctx *cli.Context, cfg config.LogConfig) error {
	ApplyFlags(ctx, &cfg)
	handler, out, err := NewHandler(cfg, os.Stderr)
	if err != nil {
		return err
	}
	logOutputFile = out
	log.SetDefault(log.NewLogger(handler))

	if cfg.File != "" || cfg.Rotate {
		log.Info("Logging configured", "format", cfg.Format, "rotate", cfg.Rotate, "location", cfg.File)
	}
	return nil
}

// NewHandler builds the log handler described by cfg. Terminal output goes to
// stderr; a file writer is returned when the configuration asks for one.
func NewHandler(cfg config.LogConfig, stderr *os.File) (slog.Handler, io.WriteCloser, error) {
	var (
		terminalOutput = io.Writer(stderr)
		output         io.Writer
		file           io.WriteCloser
	)
	if cfg.File != "" {
		if err := validateLogLocation(filepath.Dir(cfg.File)); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize file logger: %v", err)
		}
	}
	switch {
	case cfg.Rotate:
		// Lumberjack uses <processname>-lumberjack.log in os.TempDir() if empty.
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		output = io.MultiWriter(terminalOutput, file)
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		output = io.MultiWriter(file, terminalOutput)
	default:
		output = terminalOutput
	}

	level := log.FromLegacyLevel(cfg.Verbosity)
	switch cfg.Format {
	case "json":
		return log.JSONHandlerWithLevel(output, level), file, nil
	case "logfmt":
		return log.LogfmtHandlerWithLevel(output, level), file, nil
	case "", "terminal":
		useColor := (isatty.IsTerminal(stderr.Fd()) || isatty.IsCygwinTerminal(stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if useColor {
			terminalOutput = colorable.NewColorable(stderr)
			if file != nil {
				output = io.MultiWriter(file, terminalOutput)
			} else {
				output = terminalOutput
			}
		}
		return log.NewTerminalHandlerWithLevel(output, level, useColor), file, nil
	default:
		if file != nil {
			file.Close()
		}
		return nil, nil, fmt.Errorf("unknown log format: %v", cfg.Format)
	}
}

// Exit flushes and closes the log file, if any.
// Exit 刷新并关闭日志文件。
func Exit() {
	if logOutputFile != nil {
		logOutputFile.Close()
	}
}

// validateLogLocation checks if the log directory is valid and writable.
func validateLogLocation(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	// Check if the path is writable by trying to create a temporary file
	tmp := filepath.Join(path, "tmp")
	if f, err := os.Create(tmp); err != nil {
		return err
	} else {
		f.Close()
	}
	return os.Remove(tmp)
}
