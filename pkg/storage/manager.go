package storage

import (
	"fmt"
	"sync"
)

// Manager holds named disks and hands out the configured default.
type Manager struct {
	mu      sync.RWMutex
	disks   map[string]Disk
	defName string
}

// NewManager builds an empty manager with def as the default disk name.
func NewManager(def string) *Manager {
	if def == "" {
		def = "local"
	}
	return &Manager{disks: make(map[string]Disk), defName: def}
}

// Register adds a disk under name, replacing any previous registration.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disks[name] = d
}

// Use returns the disk registered under name.
func (m *Manager) Use(name string) (Disk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not registered", name)
	}
	return d, nil
}

// Default returns the disk named by the manager's default.
func (m *Manager) Default() (Disk, error) {
	return m.Use(m.defName)
}
