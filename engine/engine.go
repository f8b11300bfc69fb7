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

// Package engine exposes the crypto primitives as flat operations over
// already decoded arguments.
//
// Streaming state (hashes, ciphers, deciphers) lives in a handle table and is
// addressed by [handle.Handle]. Constructors report failure as handle 0,
// and mutators report it as false. Operations that consume a handle, and all
// one-shot operations, return an error wrapping one of the [cryptoerr]
// sentinels.
//
// Expensive operations have an Async variant that copies its inputs, runs
// on a bounded worker pool and returns an [offload.Future].
package engine

import (
	"bytes"
	"context"

	"github.com/nodecrypto/nodecrypto-go/cipheriv"
	"github.com/nodecrypto/nodecrypto-go/handle"
	"github.com/nodecrypto/nodecrypto-go/internal/logging"
	"github.com/nodecrypto/nodecrypto-go/offload"
)

// Engine owns the handle table and worker pool behind the operations. It
// is safe for concurrent use.
type Engine struct {
	cfg    Config
	table  *handle.Table
	pool   *offload.Pool
	logger logging.Logger
}

// New returns an engine configured by cfg. Call Close to release its
// workers.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	logger := logging.New(cfg.Logger).With("component", "engine")
	e := &Engine{
		cfg:    cfg,
		table:  handle.NewTable(),
		pool:   offload.NewPool(cfg.Workers, logger),
		logger: logger,
	}
	logger.Info(context.Background(), "engine started",
		"workers", e.pool.Workers(),
		"primality_rounds", cfg.PrimalityRounds,
		"aes_hw", cipheriv.HardwareAES())
	return e, nil
}

// Close waits for outstanding async operations and rejects new ones. Live
// handles stay usable.
func (e *Engine) Close() {
	e.pool.Close()
}

// Live returns the number of live handles.
func (e *Engine) Live() int { return e.table.Len() }

// Release drops a handle without finishing it, for callers that abandon a
// stream.
func (e *Engine) Release(h handle.Handle) error {
	return e.table.Remove(h)
}

func (e *Engine) failed(op string, err error, args ...any) {
	e.logger.Debug(context.Background(), "operation failed", append([]any{"op", op, "error", err}, args...)...)
}

// add stores state, logging exhaustion of the table.
func (e *Engine) add(op string, state any) handle.Handle {
	h := e.table.Add(state)
	if h == 0 {
		e.logger.Warn(context.Background(), "handle table full", "op", op, "live", e.table.Len())
	}
	return h
}

func submit[T any](e *Engine, name string, fn func() (T, error)) *offload.Future[T] {
	return offload.Submit(e.pool, name, fn)
}

// clone copies b so that an async task does not share caller memory.
func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}
