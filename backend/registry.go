// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/sindri"
)

type registration struct {
	factory  InstanceFactory
	priority int
}

var (
	registryMu sync.RWMutex
	backends   = make(map[string]registration)

	// open is true while an instance returned by Open is alive.
	open bool
)

// Register registers a backend factory. Higher priority backends are
// preferred by Open(""). This is typically called from init() functions
// in backend packages. Registering an existing name replaces it.
func Register(name string, priority int, factory InstanceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = registration{factory: factory, priority: priority}
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns registered backend names, highest priority first.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames()
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// sortedNames orders names by descending priority, then by name.
// Callers hold registryMu.
func sortedNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if pa, pb := backends[a].priority, backends[b].priority; pa != pb {
			return pb - pa
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return names
}

// Open creates the process backend instance. An empty name selects the
// highest priority registered backend.
//
// The returned instance is the single entry point for all surface,
// adapter and device work and should be passed explicitly to
// sindri.NewContext. Only one instance may be open at a time: Open fails
// with ErrAlreadyOpen until the previous one is destroyed.
func Open(name string) (sindri.Instance, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if open {
		return nil, ErrAlreadyOpen
	}
	if name == "" {
		names := sortedNames()
		if len(names) == 0 {
			return nil, ErrBackendNotAvailable
		}
		name = names[0]
	}
	reg, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, sortedNames())
	}

	inst, err := reg.factory()
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	open = true
	sindri.Logger().Info("backend: instance created", "backend", name)
	return &instance{Instance: inst, name: name}, nil
}

// instance releases the single-instance slot when destroyed.
type instance struct {
	sindri.Instance
	name string
	once sync.Once
}

func (i *instance) Destroy() {
	i.once.Do(func() {
		i.Instance.Destroy()
		registryMu.Lock()
		open = false
		registryMu.Unlock()
		sindri.Logger().Debug("backend: instance destroyed", "backend", i.name)
	})
}

// Name returns the registry name the instance was opened with.
func (i *instance) Name() string { return i.name }
