// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/govstake/thor"
)

var (
	ErrKeyExists   = errors.New("mapping: key already exists")
	ErrKeyNotFound = errors.New("mapping: key not found")
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded. An empty slot is an absent key.
type Mapping[K Key, V any] struct {
	context *Context
	basePos thor.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos thor.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) slot(key K) thor.Bytes32 {
	return thor.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Lookup returns the value stored for key and whether one exists.
func (m *Mapping[K, V]) Lookup(key K) (value V, exists bool, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.slot(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		exists = true
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Get returns the value stored for key, or the zero value.
func (m *Mapping[K, V]) Get(key K) (V, error) {
	value, _, err := m.Lookup(key)
	return value, err
}

// Upsert writes value regardless of what is stored.
func (m *Mapping[K, V]) Upsert(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.slot(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Insert writes value only if key is absent.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	if _, exists, err := m.Lookup(key); err != nil {
		return err
	} else if exists {
		return ErrKeyExists
	}
	return m.Upsert(key, value)
}

// Update overwrites the value of a present key.
func (m *Mapping[K, V]) Update(key K, value V) error {
	if _, exists, err := m.Lookup(key); err != nil {
		return err
	} else if !exists {
		return ErrKeyNotFound
	}
	return m.Upsert(key, value)
}

// Remove clears the slot of key. Removing an absent key is a no-op.
func (m *Mapping[K, V]) Remove(key K) {
	m.context.state.SetRawStorage(m.context.address, m.slot(key), nil)
}
