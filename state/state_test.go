// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/lvldb"
	"github.com/vechain/govstake/thor"
)

func newDB(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStorage(t *testing.T) {
	st := New(nil)
	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	st.SetStorage(addr, key, thor.BytesToBytes32([]byte("value")))
	v, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte("value")), v)

	st.SetStorage(addr, key, thor.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := New(nil)
	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("key"))

	type record struct {
		A uint64
		B string
	}
	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&record{A: 1, B: "x"})
	}))

	var got record
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	}))
	assert.Equal(t, record{A: 1, B: "x"}, got)
}

func TestCheckpointRevert(t *testing.T) {
	st := New(nil)
	addr := thor.BytesToAddress([]byte("account1"))
	key := thor.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{1}))
	chk := st.NewCheckpoint()
	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{2}))
	st.SetStorage(addr, thor.BytesToBytes32([]byte("other")), thor.BytesToBytes32([]byte{3}))
	st.RevertTo(chk)

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte{1}), v)

	assert.Equal(t, 1, st.Stage().Len())
}

func TestStaterCommit(t *testing.T) {
	db := newDB(t)
	stater, err := NewStater(db, 16)
	require.NoError(t, err)

	addr := thor.BytesToAddress([]byte("account1"))
	key1 := thor.BytesToBytes32([]byte("key1"))
	key2 := thor.BytesToBytes32([]byte("key2"))

	st := stater.NewState()
	st.SetStorage(addr, key1, thor.BytesToBytes32([]byte{1}))
	st.SetStorage(addr, key2, thor.BytesToBytes32([]byte{2}))
	require.NoError(t, stater.Commit(db, st.Stage()))

	// a second state sees committed values, also through a fresh stater without cache content
	for _, s := range []*State{stater.NewState(), New(db)} {
		v, err := s.GetStorage(addr, key2)
		require.NoError(t, err)
		assert.Equal(t, thor.BytesToBytes32([]byte{2}), v)
	}

	// clearing a slot deletes it from the store
	st = stater.NewState()
	st.SetStorage(addr, key1, thor.Bytes32{})
	require.NoError(t, stater.Commit(db, st.Stage()))

	v, err := New(db).GetStorage(addr, key1)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
	v, err = stater.NewState().GetStorage(addr, key1)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestStageHash(t *testing.T) {
	addr := thor.BytesToAddress([]byte("account1"))
	k1 := thor.BytesToBytes32([]byte("k1"))
	k2 := thor.BytesToBytes32([]byte("k2"))

	a := New(nil)
	a.SetStorage(addr, k1, thor.BytesToBytes32([]byte{1}))
	a.SetStorage(addr, k2, thor.BytesToBytes32([]byte{2}))

	b := New(nil)
	b.SetStorage(addr, k2, thor.BytesToBytes32([]byte{2}))
	b.SetStorage(addr, k1, thor.BytesToBytes32([]byte{1}))

	assert.Equal(t, a.Stage().Hash(), b.Stage().Hash())

	b.SetStorage(addr, k1, thor.BytesToBytes32([]byte{3}))
	assert.NotEqual(t, a.Stage().Hash(), b.Stage().Hash())
}
