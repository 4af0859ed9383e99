// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/u128"
)

func TestPool_Advance(t *testing.T) {
	p := &Pool{RewardRate: u128.From64(100)}

	require.NoError(t, p.Advance(10))
	assert.Equal(t, "1000", p.RewardAccumulator.String())
	assert.True(t, p.StakeWeightAccumulator.IsZero())

	require.NoError(t, p.AddStake(10, u128.From64(1000)))
	require.NoError(t, p.Advance(20))
	assert.Equal(t, "2000", p.RewardAccumulator.String())
	assert.Equal(t, "10000", p.StakeWeightAccumulator.String())

	require.NoError(t, p.AddStake(20, u128.From64(500)))
	require.NoError(t, p.Advance(30))
	assert.Equal(t, "3000", p.RewardAccumulator.String())
	assert.Equal(t, "25000", p.StakeWeightAccumulator.String())
	assert.Equal(t, uint64(30), p.LastUpdate)

	// equal timestamps are a no-op
	require.NoError(t, p.Advance(30))
	assert.Equal(t, "3000", p.RewardAccumulator.String())
	assert.Equal(t, "25000", p.StakeWeightAccumulator.String())
}

func TestPool_AdvanceBackwards(t *testing.T) {
	p := &Pool{RewardRate: u128.From64(100), LastUpdate: 30}
	err := p.Advance(29)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
	assert.Equal(t, uint64(30), p.LastUpdate)
	assert.True(t, p.RewardAccumulator.IsZero())
}

func TestPool_AdvanceOverflow(t *testing.T) {
	p := &Pool{RewardRate: u128.Max(), RewardAccumulator: u128.From64(1)}
	err := p.Advance(1)
	assert.ErrorIs(t, err, u128.ErrOverflow)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
	assert.Equal(t, uint64(0), p.LastUpdate)
	assert.Equal(t, "1", p.RewardAccumulator.String())

	p = &Pool{RewardRate: u128.From64(1), TotalStaked: u128.Max()}
	err = p.Advance(2)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
	assert.True(t, p.RewardAccumulator.IsZero(), "partial advance must not be applied")
}

func TestPool_ShareOf(t *testing.T) {
	p := &Pool{
		RewardRate:             u128.From64(100),
		RewardAccumulator:      u128.From64(3000),
		StakeWeightAccumulator: u128.From64(25000),
		TotalStaked:            u128.From64(1500),
		LastUpdate:             30,
	}

	share, err := p.ShareOf(30, 10, u128.From64(1000))
	require.NoError(t, err)
	assert.Equal(t, "2400", share.String())

	share, err = p.ShareOf(30, 20, u128.From64(500))
	require.NoError(t, err)
	assert.Equal(t, "600", share.String())

	// zero elapsed yields zero
	share, err = p.ShareOf(30, 30, u128.From64(1000))
	require.NoError(t, err)
	assert.True(t, share.IsZero())

	_, err = p.ShareOf(30, 31, u128.From64(1000))
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
}

func TestPool_ShareOfZeroDenominator(t *testing.T) {
	p := &Pool{RewardAccumulator: u128.From64(1000), LastUpdate: 10}
	share, err := p.ShareOf(10, 0, u128.From64(1000))
	require.NoError(t, err)
	assert.True(t, share.IsZero())
}

func TestPool_ShareOfTruncates(t *testing.T) {
	p := &Pool{RewardAccumulator: u128.From64(10), StakeWeightAccumulator: u128.From64(3)}
	share, err := p.ShareOf(1, 0, u128.From64(1))
	require.NoError(t, err)
	assert.Equal(t, "3", share.String())
}

func TestPool_StakeRequiresAdvance(t *testing.T) {
	p := &Pool{RewardRate: u128.From64(1), LastUpdate: 10}

	err := p.AddStake(11, u128.From64(1))
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
	err = p.SubStake(11, u128.From64(1))
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))

	require.NoError(t, p.Advance(11))
	require.NoError(t, p.AddStake(11, u128.From64(5)))
	require.NoError(t, p.SubStake(11, u128.From64(2)))
	assert.Equal(t, "3", p.TotalStaked.String())
}

func TestPool_SubStakeUnderflow(t *testing.T) {
	p := &Pool{TotalStaked: u128.From64(1500)}
	err := p.SubStake(0, u128.From64(3400))
	assert.ErrorIs(t, err, u128.ErrUnderflow)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
	assert.Equal(t, "1500", p.TotalStaked.String())
}
