// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/staking"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var (
	deployer = thor.BytesToAddress([]byte("deployer"))
	alice    = thor.BytesToAddress([]byte("alice"))
)

func deploy(t *testing.T) *state.State {
	st := state.New(nil)
	nft := Staking.PositionAddress(deployer)

	reg := position.New(nft, st)
	require.NoError(t, reg.Initialize(Staking.Address))
	require.NoError(t, Token.Native(st).Mint(alice, u128.From64(10_000)))

	s := staking.New(Staking.Address, st, Token.Native(st), reg)
	require.NoError(t, s.Initialize(xenv.New(st, deployer, Staking.Address, 0), Token.Address, nft, u128.From64(100)))
	return st
}

func call(t *testing.T, st *state.State, caller, contract thor.Address, now uint64, name string, args string) (any, error) {
	m, err := FindMethod(st, contract, name)
	require.NoError(t, err)
	return m.Call(xenv.New(st, caller, contract, now), json.RawMessage(args))
}

func TestPositionAddress(t *testing.T) {
	a := Staking.PositionAddress(deployer)
	assert.Equal(t, a, Staking.PositionAddress(deployer))
	assert.NotEqual(t, a, Staking.PositionAddress(alice))
	assert.NotEqual(t, Staking.Address, a)
}

func TestNative(t *testing.T) {
	st := state.New(nil)
	_, err := Staking.Native(st)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))

	st = deploy(t)
	s, err := Staking.Native(st)
	require.NoError(t, err)
	assert.Equal(t, Staking.PositionAddress(deployer), s.GovernanceNFT())

	reg, err := Staking.Positions(st)
	require.NoError(t, err)
	assert.Equal(t, s.GovernanceNFT(), reg.Address())
}

func TestFindMethod(t *testing.T) {
	st := deploy(t)

	m, err := FindMethod(st, Staking.Address, "pool")
	require.NoError(t, err)
	assert.True(t, m.ReadOnly)

	m, err = FindMethod(st, Staking.Address, "deposit")
	require.NoError(t, err)
	assert.False(t, m.ReadOnly)

	_, err = FindMethod(st, Staking.Address, "mint")
	assert.ErrorIs(t, err, ErrUnknownMethod)
	_, err = FindMethod(st, alice, "transfer")
	assert.ErrorIs(t, err, ErrUnknownContract)

	_, err = FindMethod(st, Staking.PositionAddress(deployer), "ownerOf")
	require.NoError(t, err)

	names, err := MethodNames(st, Token.Address)
	require.NoError(t, err)
	assert.Equal(t, []string{"allowance", "approve", "balanceOf", "totalSupply", "transfer", "transferFrom"}, names)
}

func TestCalls(t *testing.T) {
	st := deploy(t)
	nft := Staking.PositionAddress(deployer)

	_, err := call(t, st, alice, Token.Address, 1, "approve", `{"spender":"`+Staking.Address.String()+`","amount":"1000"}`)
	require.NoError(t, err)

	out, err := call(t, st, alice, Staking.Address, 10, "deposit", `{"amount":"1000"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": position.ID(1)}, out)

	out, err = call(t, st, alice, nft, 10, "ownerOf", `{"id":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"owner": alice}, out)

	out, err = call(t, st, alice, Staking.Address, 20, "pendingReward", `{"id":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"reward": u128.From64(2000)}, out)

	out, err = call(t, st, alice, Token.Address, 20, "balanceOf", `{"owner":"`+alice.String()+`"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"balance": u128.From64(9000)}, out)

	_, err = call(t, st, alice, Staking.Address, 20, "claim", `{"id":1,"extra":true}`)
	assert.ErrorIs(t, err, ErrInvalidArgs)

	_, err = call(t, st, alice, Staking.Address, 20, "withdraw", `{"id":1}`)
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))
}
