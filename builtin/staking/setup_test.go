// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/builtin/token"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var (
	stakingAddr = thor.BytesToAddress([]byte("staking"))
	tokenAddr   = thor.BytesToAddress([]byte("token"))
	nftAddr     = thor.BytesToAddress([]byte("nft"))

	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
	carol = thor.BytesToAddress([]byte("carol"))
)

const (
	rewardRate     = 100
	initialBalance = 1_000_000
	rewardReserve  = 1_000_000
)

type StakingTest struct {
	*Staking
	t     *testing.T
	st    *state.State
	token *token.Token
	reg   *position.Registry
}

// newTest deploys token, registry and staking at t=0 paying 100 per time unit.
// alice, bob and carol hold tokens and approved the staking contract.
func newTest(t *testing.T) *StakingTest {
	return newTestWith(t, func(tok *token.Token) Token { return tok })
}

func newTestWith(t *testing.T, wrap func(tok *token.Token) Token) *StakingTest {
	st := state.New(nil)
	tok := token.New(tokenAddr, st)
	reg := position.New(nftAddr, st)
	require.NoError(t, reg.Initialize(stakingAddr))

	require.NoError(t, tok.Mint(stakingAddr, u128.From64(rewardReserve)))
	for _, holder := range []thor.Address{alice, bob, carol} {
		require.NoError(t, tok.Mint(holder, u128.From64(initialBalance)))
		require.NoError(t, tok.Approve(xenv.New(st, holder, tokenAddr, 0), stakingAddr, u128.Max()))
	}

	s := New(stakingAddr, st, wrap(tok), reg)
	require.NoError(t, s.Initialize(xenv.New(st, alice, stakingAddr, 0), tokenAddr, nftAddr, u128.From64(rewardRate)))

	return &StakingTest{Staking: s, t: t, st: st, token: tok, reg: reg}
}

func (ts *StakingTest) env(caller thor.Address, now uint64) *xenv.Environment {
	return xenv.New(ts.st, caller, stakingAddr, now)
}

func (ts *StakingTest) Deposit(caller thor.Address, amount, now uint64) position.ID {
	id, err := ts.Staking.Deposit(ts.env(caller, now), u128.From64(amount), nil)
	require.NoError(ts.t, err, "deposit failed")
	return id
}

func (ts *StakingTest) Claim(caller thor.Address, id position.ID, now uint64) uint64 {
	reward, err := ts.Staking.Claim(ts.env(caller, now), id)
	require.NoError(ts.t, err, "claim failed")
	return reward.Uint64()
}

func (ts *StakingTest) RequestUnlock(caller thor.Address, id position.ID, now uint64) *StakingTest {
	require.NoError(ts.t, ts.Staking.RequestUnlock(ts.env(caller, now), id), "request unlock failed")
	return ts
}

func (ts *StakingTest) AssertPool(totalStaked, rewardAcc, stakeWeightAcc, lastUpdate uint64) *StakingTest {
	pool, err := ts.Pool()
	require.NoError(ts.t, err)
	assert.Equal(ts.t, u128.From64(totalStaked), pool.TotalStaked, "total staked mismatch")
	assert.Equal(ts.t, u128.From64(rewardAcc), pool.RewardAccumulator, "reward accumulator mismatch")
	assert.Equal(ts.t, u128.From64(stakeWeightAcc), pool.StakeWeightAccumulator, "stake weight accumulator mismatch")
	assert.Equal(ts.t, lastUpdate, pool.LastUpdate, "last update mismatch")
	return ts
}

func (ts *StakingTest) AssertTotalStaked(expected uint64) *StakingTest {
	pool, err := ts.Pool()
	require.NoError(ts.t, err)
	assert.Equal(ts.t, u128.From64(expected), pool.TotalStaked, "total staked mismatch")
	return ts
}

func (ts *StakingTest) AssertWeight(id position.ID, expected uint64) *StakingTest {
	data, err := ts.reg.Get(id)
	require.NoError(ts.t, err)
	assert.Equal(ts.t, u128.From64(expected), data.Weight, "weight of %d mismatch", id)
	return ts
}

func (ts *StakingTest) AssertBurned(id position.ID) *StakingTest {
	_, err := ts.reg.Get(id)
	assert.ErrorIs(ts.t, err, position.ErrTokenNotExists)
	return ts
}

func (ts *StakingTest) AssertBalance(addr thor.Address, expected uint64) *StakingTest {
	bal, err := ts.token.BalanceOf(addr)
	require.NoError(ts.t, err)
	assert.Equal(ts.t, u128.From64(expected), bal, "balance of %s mismatch", addr)
	return ts
}

func (ts *StakingTest) AssertUnlock(id position.ID, owner thor.Address, time, amount uint64) *StakingTest {
	req, err := ts.UnlockRequest(id)
	require.NoError(ts.t, err)
	require.NotNil(ts.t, req, "no unlock request for %d", id)
	assert.Equal(ts.t, owner, req.Owner)
	assert.Equal(ts.t, time, req.Time)
	assert.Equal(ts.t, u128.From64(amount), req.Amount)
	return ts
}

func assertKind(t *testing.T, kind reverts.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, reverts.KindOf(err), err.Error())
}

// snapshot captures everything an operation may write.
type snapshot struct {
	pool     any
	balances map[thor.Address]string
	weights  map[position.ID]string
}

func (ts *StakingTest) snapshot(ids ...position.ID) snapshot {
	pool, err := ts.Pool()
	require.NoError(ts.t, err)
	snap := snapshot{pool: *pool, balances: map[thor.Address]string{}, weights: map[position.ID]string{}}
	for _, addr := range []thor.Address{alice, bob, carol, stakingAddr} {
		bal, err := ts.token.BalanceOf(addr)
		require.NoError(ts.t, err)
		snap.balances[addr] = bal.String()
	}
	for _, id := range ids {
		if data, err := ts.reg.Get(id); err == nil {
			snap.weights[id] = data.Owner.String() + "/" + data.Weight.String()
		}
	}
	return snap
}
