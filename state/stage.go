// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/vechain/govstake/kv"
	"github.com/vechain/govstake/thor"
)

// Stage abstracts changes on contract storage.
type Stage struct {
	changes map[storageKey][]byte
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into putter. Cleared slots are deleted.
func (s *Stage) Commit(putter kv.Putter) error {
	for key, value := range s.changes {
		if len(value) == 0 {
			if err := putter.Delete(key.dbKey()); err != nil {
				return err
			}
			continue
		}
		if err := putter.Put(key.dbKey(), value); err != nil {
			return err
		}
	}
	return nil
}

// Hash returns a digest of the changes, independent of write order.
func (s *Stage) Hash() thor.Bytes32 {
	keys := make([][]byte, 0, len(s.changes))
	values := make(map[string][]byte, len(s.changes))
	for key, value := range s.changes {
		k := key.dbKey()
		keys = append(keys, k)
		values[string(k)] = value
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })

	return thor.Blake2bFn(func(w io.Writer) {
		for _, k := range keys {
			v := values[string(k)]
			w.Write(k)
			w.Write(binary.BigEndian.AppendUint32(nil, uint32(len(v))))
			w.Write(v)
		}
	})
}
