// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

func newSvc() (*Service, thor.Address, *state.State) {
	st := state.New(nil)
	addr := thor.BytesToAddress([]byte("acc"))
	return New(solidity.NewContext(addr, st)), addr, st
}

func TestService_Uninitialized(t *testing.T) {
	svc, _, _ := newSvc()
	_, err := svc.Get()
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
	_, err = svc.Advance(1)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
}

func TestService_Initialize(t *testing.T) {
	svc, _, _ := newSvc()
	require.NoError(t, svc.Initialize(u128.From64(100), 5))

	pool, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "100", pool.RewardRate.String())
	assert.Equal(t, uint64(5), pool.LastUpdate)
	assert.True(t, pool.TotalStaked.IsZero())

	err = svc.Initialize(u128.From64(1), 0)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
}

func TestService_Persists(t *testing.T) {
	svc, addr, st := newSvc()
	require.NoError(t, svc.Initialize(u128.From64(100), 0))

	_, err := svc.Advance(10)
	require.NoError(t, err)
	_, err = svc.AddStake(10, u128.From64(1000))
	require.NoError(t, err)
	_, err = svc.Advance(20)
	require.NoError(t, err)
	_, err = svc.SubStake(20, u128.From64(400))
	require.NoError(t, err)

	// a second service over the same storage sees the same pool
	other := New(solidity.NewContext(addr, st))
	pool, err := other.Get()
	require.NoError(t, err)
	assert.Equal(t, "600", pool.TotalStaked.String())
	assert.Equal(t, "2000", pool.RewardAccumulator.String())
	assert.Equal(t, "10000", pool.StakeWeightAccumulator.String())
	assert.Equal(t, uint64(20), pool.LastUpdate)
}

func TestService_FailedUpdateNotStored(t *testing.T) {
	svc, _, _ := newSvc()
	require.NoError(t, svc.Initialize(u128.From64(100), 10))

	_, err := svc.Advance(9)
	assert.Error(t, err)
	_, err = svc.SubStake(10, u128.From64(1))
	assert.Error(t, err)

	pool, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pool.LastUpdate)
	assert.True(t, pool.TotalStaked.IsZero())
}

func TestService_CorruptStorage(t *testing.T) {
	svc, addr, st := newSvc()
	st.SetRawStorage(addr, slotPool, rlp.RawValue{0xFF})
	_, err := svc.Get()
	assert.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
}
