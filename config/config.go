// Copyright 2017 The go-ethereum Authors
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

// Package config implements the TOML client configuration file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"time"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/bcos-go-sdk/accounts/abi/bind"
	"github.com/sunyihoo/bcos-go-sdk/bcosclient"
	"github.com/sunyihoo/bcos-go-sdk/crypto"
	"github.com/sunyihoo/bcos-go-sdk/log"
	"github.com/sunyihoo/bcos-go-sdk/rpc"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
// 这些设置确保 TOML 键与 Go 结构体字段同名。
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

var deprecatedConfigFields = map[string]bool{
	"config.NodeConfig.SMCrypto": true,
}

// Config is the complete client configuration.
// Config 是完整的客户端配置。
type Config struct {
	Node   NodeConfig
	Crypto CryptoConfig
	Log    LogConfig
}

// NodeConfig selects the node endpoint and the chain every request is scoped to.
type NodeConfig struct {
	URL      string // http(s):// or ws(s):// JSON-RPC endpoint
	GroupID  string
	ChainID  string
	NodeName string `toml:",omitempty"`

	Headers        map[string]string `toml:",omitempty"`
	RequestTimeout time.Duration
	RateLimit      float64 `toml:",omitempty"` // requests per second, 0 disables
	RateBurst      int     `toml:",omitempty"`

	BlockLimitOffset uint64
	PollInterval     time.Duration
	MaxAsync         int64
}

// CryptoConfig selects the hash suite and the account key.
type CryptoConfig struct {
	Hash    string // keccak256 or sha3-256
	KeyFile string `toml:",omitempty"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Verbosity  int    // 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail
	Format     string // terminal, json or logfmt
	File       string `toml:",omitempty"`
	Rotate     bool
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Defaults contains reasonable default settings.
// Defaults 包含合理的默认配置。
var Defaults = Config{
	Node: NodeConfig{
		URL:              "http://127.0.0.1:20200",
		GroupID:          bcosclient.DefaultGroupID,
		ChainID:          bcosclient.DefaultChainID,
		RequestTimeout:   30 * time.Second,
		BlockLimitOffset: bcosclient.DefaultBlockLimitOffset,
		PollInterval:     bind.DefaultPollInterval,
		MaxAsync:         bcosclient.DefaultMaxAsync,
	},
	Crypto: CryptoConfig{
		Hash: crypto.Keccak256Name,
	},
	Log: LogConfig{
		Verbosity:  3,
		Format:     "terminal",
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
	},
}

// LoadConfig decodes the TOML file into cfg. Fields missing from the file
// keep their current value.
// LoadConfig 将 TOML 文件解码到 cfg 中，文件中缺失的字段保持原值。
func LoadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// Dump renders cfg as TOML.
func Dump(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// Validate checks the configuration for values no client can work with.
// Validate 检查配置中无法使用的取值。
func (c *Config) Validate() error {
	u, err := url.Parse(c.Node.URL)
	if err != nil {
		return fmt.Errorf("invalid node URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported node URL scheme %q", u.Scheme)
	}
	if c.Node.GroupID == "" {
		return errors.New("group id is required")
	}
	if c.Node.ChainID == "" {
		return errors.New("chain id is required")
	}
	if c.Node.RateLimit < 0 || c.Node.RateBurst < 0 {
		return errors.New("rate limit must not be negative")
	}
	if c.Node.MaxAsync < 0 {
		return errors.New("async limit must not be negative")
	}
	if _, err := crypto.HasherByName(c.Crypto.Hash); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "terminal", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format: %v", c.Log.Format)
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		return fmt.Errorf("verbosity %d out of range [0, 5]", c.Log.Verbosity)
	}
	return nil
}

// ClientConfig converts the node and crypto sections into a bcosclient.Config.
func (c *Config) ClientConfig() (bcosclient.Config, error) {
	hasher, err := crypto.HasherByName(c.Crypto.Hash)
	if err != nil {
		return bcosclient.Config{}, err
	}
	return bcosclient.Config{
		GroupID:          c.Node.GroupID,
		ChainID:          c.Node.ChainID,
		NodeName:         c.Node.NodeName,
		Hasher:           hasher,
		BlockLimitOffset: c.Node.BlockLimitOffset,
		PollInterval:     c.Node.PollInterval,
		MaxAsync:         c.Node.MaxAsync,
	}, nil
}

// RPCOptions returns the transport options of the node section.
func (c *Config) RPCOptions() []rpc.ClientOption {
	var opts []rpc.ClientOption
	if len(c.Node.Headers) > 0 {
		for k, v := range c.Node.Headers {
			opts = append(opts, rpc.WithHeader(k, v))
		}
	}
	if c.Node.RequestTimeout > 0 {
		opts = append(opts, rpc.WithRequestTimeout(c.Node.RequestTimeout))
	}
	if c.Node.RateLimit > 0 {
		burst := c.Node.RateBurst
		if burst == 0 {
			burst = 1
		}
		opts = append(opts, rpc.WithRateLimit(c.Node.RateLimit, burst))
	}
	return opts
}

// Signer loads the account key configured in the crypto section.
func (c *Config) Signer() (bind.TransactionSigner, error) {
	if c.Crypto.KeyFile == "" {
		return nil, errors.New("no key file configured")
	}
	return bind.NewKeyFileSigner(c.Crypto.KeyFile)
}
