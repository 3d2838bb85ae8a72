// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"sync"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/config"
)

// OpenFn constructs an api.Device for a device index. Production
// callers pass a function backed by transport/libusbtransport; tests
// and cmd/adcsim pass one backed by transport/simtransport. The
// Registry does not read the config's Testing flag. It is a func rather than an interface so a
// Registry can be built without importing either concrete transport
// package.
type OpenFn func(index int) (api.Device, error)

// Entry is a registry's view of one open device: its transport handle
// and the configuration it was opened with.
type Entry struct {
	Index     int
	Transport api.Device
	Config    *config.StreamConfig
}

// Registry is a small in-memory table of open devices, keyed by index.
// It is safe for concurrent use.
type Registry struct {
	open OpenFn

	mu      sync.Mutex
	entries map[int]*Entry
}

// New creates a Registry that uses open to construct a transport for a
// device index the first time it is requested.
func New(open OpenFn) *Registry {
	return &Registry{
		open:    open,
		entries: make(map[int]*Entry),
	}
}

// Open returns the Entry for index, opening its transport via the
// Registry's OpenFn if it is not already open. The returned Entry is
// owned by the Registry; callers must not retain it past a matching
// Release.
func (r *Registry) Open(index int, cfg *config.StreamConfig) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[index]; ok {
		return e, nil
	}

	dev, err := r.open(index)
	if err != nil {
		return nil, fmt.Errorf("registry: opening device %d: %w", index, err)
	}
	e := &Entry{Index: index, Transport: dev, Config: cfg}
	r.entries[index] = e
	return e, nil
}

// Release closes the transport for index and removes it from the
// table. It is idempotent: releasing an index that is not open is not
// an error.
func (r *Registry) Release(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[index]
	if !ok {
		return nil
	}
	delete(r.entries, index)
	return e.Transport.Close()
}

// Lookup returns the Entry for index without opening it, and reports
// whether one is currently open.
func (r *Registry) Lookup(index int) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[index]
	return e, ok
}
