// Package store implements a simple key-value store.
package store

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrKeyExists      = errors.New("store: key already exists")
	ErrKeyDoesntExist = errors.New("store: key does not exist")
)

type Store[V any] interface {
	Set(key string, value V) error
	Get(key string) (V, error)
	Delete(key string) error
	Update(key string, newValue V) error
	Keys() []string
}

type MemStore[V any] struct {
	lock  sync.RWMutex
	store map[string]V
}

func NewMemStore[V any]() *MemStore[V] {
	return &MemStore[V]{
		store: make(map[string]V),
	}
}

// Set is used to set a value to a key.
func (m *MemStore[V]) Set(key string, value V) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.store[key]; ok {
		return ErrKeyExists
	}
	m.store[key] = value
	return nil
}

// Get is used to get a value from a key.
func (m *MemStore[V]) Get(key string) (V, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	v, ok := m.store[key]
	if !ok {
		return v, ErrKeyDoesntExist
	}
	return v, nil
}

// Delete removes the specified key and value.
func (m *MemStore[V]) Delete(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.store[key]; !ok {
		return ErrKeyDoesntExist
	}
	delete(m.store, key)
	return nil
}

// Update can be used to change the value for a given key.
func (m *MemStore[V]) Update(key string, value V) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.store[key]; !ok {
		return ErrKeyDoesntExist
	}
	m.store[key] = value
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemStore[V]) Keys() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
