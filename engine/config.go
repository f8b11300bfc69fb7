// Copyright 2025 The nodecrypto-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/kdf"
	"github.com/nodecrypto/nodecrypto-go/primes"
	"gopkg.in/yaml.v3"
)

// Config holds the engine knobs. The zero Config is valid and selects the
// defaults.
type Config struct {
	// Workers bounds the number of async operations running at once.
	// Zero selects runtime.GOMAXPROCS(0).
	Workers int `yaml:"workers"`

	// PrimalityRounds is the Miller-Rabin round count used when a caller
	// passes zero. Zero selects primes.DefaultRounds.
	PrimalityRounds int `yaml:"primality_rounds"`

	// ScryptMaxMemory caps the scrypt working set when a caller passes
	// zero. Zero selects kdf.DefaultScryptMaxMemory.
	ScryptMaxMemory uint64 `yaml:"scrypt_max_memory"`

	// Logger receives the engine's diagnostics. Nil binds to
	// slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.PrimalityRounds <= 0 {
		c.PrimalityRounds = primes.DefaultRounds
	}
	if c.ScryptMaxMemory == 0 {
		c.ScryptMaxMemory = kdf.DefaultScryptMaxMemory
	}
	return c
}

func (c Config) validate() error {
	if c.Workers < 0 {
		return cryptoerr.Parameterf("engine: negative worker count %d", c.Workers)
	}
	if c.PrimalityRounds < 0 {
		return cryptoerr.Parameterf("engine: negative primality round count %d", c.PrimalityRounds)
	}
	return nil
}

// LoadConfig reads a YAML config file. Keys that are absent keep their
// zero value, so New applies the defaults for them.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
