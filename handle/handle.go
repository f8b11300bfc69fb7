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

// Package handle implements the table mapping opaque integer handles to
// engine-owned mutable state.
//
// The table is a generation-checked arena. A [Handle] packs a slot index and
// the generation of that slot; freeing a slot bumps its generation, so a
// stale handle never resolves to whatever state later reuses the slot. Freed
// slots are reused oldest first, and a slot whose generation is exhausted is
// retired for good, so no handle value is ever issued twice.
package handle

import (
	"fmt"
	"sync"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
)

// Handle identifies one live state object. The zero Handle never refers to
// state and signals a failed allocation.
type Handle uint32

const (
	indexBits      = 20
	indexMask      = 1<<indexBits - 1
	generationMask = 1<<(32-indexBits) - 1

	// MaxLive is the maximum number of simultaneously live handles.
	MaxLive = indexMask

	// maxGeneration is the last generation a slot is issued under.
	maxGeneration = generationMask
)

func pack(index int, generation uint32) Handle {
	return Handle((generation&generationMask)<<indexBits | uint32(index+1))
}

func (h Handle) unpack() (index int, generation uint32) {
	return int(uint32(h)&indexMask) - 1, uint32(h) >> indexBits
}

type slot struct {
	generation uint32
	state      any
	live       bool
	borrows    int
}

// Table owns state objects and hands out handles for them. It is safe for
// concurrent use, but state reached through [Get] is not locked: two
// callers must not mutate the same state at once.
type Table struct {
	mu    sync.Mutex
	slots []slot
	free  []int
	live  int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add stores state and returns a fresh handle for it. It returns 0 once
// every slot is live or retired.
func (t *Table) Add(state any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	var index int
	if len(t.free) > 0 {
		index = t.free[0]
		t.free = t.free[1:]
	} else {
		if len(t.slots) >= MaxLive {
			return 0
		}
		t.slots = append(t.slots, slot{})
		index = len(t.slots) - 1
	}
	s := &t.slots[index]
	s.state = state
	s.live = true
	s.borrows = 0
	t.live++
	return pack(index, s.generation)
}

// lookup returns the live slot for h. t.mu must be held.
func (t *Table) lookup(h Handle) (*slot, error) {
	index, generation := h.unpack()
	if h == 0 || index < 0 || index >= len(t.slots) {
		return nil, fmt.Errorf("handle %d: %w", h, cryptoerr.ErrResource)
	}
	s := &t.slots[index]
	if !s.live || s.generation&generationMask != generation {
		return nil, fmt.Errorf("handle %d: %w", h, cryptoerr.ErrResource)
	}
	return s, nil
}

// release tombstones the slot at index. t.mu must be held.
func (t *Table) release(index int) {
	s := &t.slots[index]
	s.state = nil
	s.live = false
	s.borrows = 0
	t.live--
	if s.generation == maxGeneration {
		// Another generation would wrap and revive old handles.
		return
	}
	s.generation++
	t.free = append(t.free, index)
}

// Remove drops the state behind h without returning it.
func (t *Table) Remove(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(h)
	if err != nil {
		return err
	}
	if s.borrows > 0 {
		return fmt.Errorf("handle %d: %w", h, cryptoerr.ErrInUse)
	}
	index, _ := h.unpack()
	t.release(index)
	return nil
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

func (t *Table) borrow(h Handle) (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	s.borrows++
	return s.state, nil
}

func (t *Table) unborrow(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, err := t.lookup(h); err == nil && s.borrows > 0 {
		s.borrows--
	}
}

// Get borrows the state behind h for the duration of fn.
//
// It fails with [cryptoerr.ErrResource] if h is unknown, already taken, or
// refers to state that is not a T. While fn runs, [Take] on h fails with
// [cryptoerr.ErrInUse].
func Get[T any](t *Table, h Handle, fn func(T) error) error {
	state, err := t.borrow(h)
	if err != nil {
		return err
	}
	defer t.unborrow(h)
	v, ok := state.(T)
	if !ok {
		return fmt.Errorf("handle %d holds %T: %w", h, state, cryptoerr.ErrResource)
	}
	return fn(v)
}

// Take removes the state behind h from the table and returns it.
//
// A state of the wrong type is left in place and reported as
// [cryptoerr.ErrResource].
func Take[T any](t *Table, h Handle) (T, error) {
	var zero T
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(h)
	if err != nil {
		return zero, err
	}
	v, ok := s.state.(T)
	if !ok {
		return zero, fmt.Errorf("handle %d holds %T: %w", h, s.state, cryptoerr.ErrResource)
	}
	if s.borrows > 0 {
		return zero, fmt.Errorf("handle %d: %w", h, cryptoerr.ErrInUse)
	}
	index, _ := h.unpack()
	t.release(index)
	return v, nil
}
