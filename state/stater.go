// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/vechain/govstake/kv"
)

// storageBucket prefixes storage slots in the underlying store.
const storageBucket = kv.Bucket("s")

// Stater is the state creator. It owns the committed store and a cache of committed slots.
type Stater struct {
	db    kv.Getter
	cache *lru.Cache
}

// NewStater create a new stater. Storage slots live in their own bucket of db.
func NewStater(db kv.Getter, cacheSize int) (*Stater, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new slot cache")
	}
	return &Stater{db: storageBucket.NewGetter(db), cache: cache}, nil
}

// NewState create a new state object on top of the committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}

// Commit writes the stage, plus any extra writes, into a single batch of store.
// The slot cache is refreshed only after the batch is written.
func (s *Stater) Commit(store kv.Store, stage *Stage, extras ...func(kv.Putter) error) error {
	batch := store.NewBatch()
	if err := stage.Commit(storageBucket.NewPutter(batch)); err != nil {
		return errors.Wrap(err, "stage storage")
	}
	for _, extra := range extras {
		if err := extra(batch); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write batch")
	}
	if s.cache != nil {
		for key, value := range stage.changes {
			s.cache.Add(key, value)
		}
	}
	return nil
}

func (s *Stater) load(key storageKey) ([]byte, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			metricStorageAccess().AddWithLabel(1, map[string]string{"type": "read-cache"})
			return v.([]byte), nil
		}
	}
	if s.db == nil {
		return nil, nil
	}
	metricStorageAccess().AddWithLabel(1, map[string]string{"type": "read-db"})
	raw, err := s.db.Get(key.dbKey())
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, err
		}
		raw = nil
	}
	if s.cache != nil {
		s.cache.Add(key, raw)
	}
	return raw, nil
}
