// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var (
	tokenAddr = thor.BytesToAddress([]byte("token"))
	alice     = thor.BytesToAddress([]byte("alice"))
	bob       = thor.BytesToAddress([]byte("bob"))
	spender   = thor.BytesToAddress([]byte("spender"))
)

func newToken(t *testing.T) (*Token, *state.State) {
	st := state.New(nil)
	tok := New(tokenAddr, st)
	require.NoError(t, tok.Mint(alice, u128.From64(1000)))
	return tok, st
}

func balance(t *testing.T, tok *Token, addr thor.Address) string {
	bal, err := tok.BalanceOf(addr)
	require.NoError(t, err)
	return bal.String()
}

func TestMint(t *testing.T) {
	tok, _ := newToken(t)
	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, "1000", supply.String())
	assert.Equal(t, "1000", balance(t, tok, alice))

	assert.ErrorIs(t, tok.Mint(thor.Address{}, u128.From64(1)), ErrZeroRecipient)
	assert.ErrorIs(t, tok.Mint(bob, u128.Max()), u128.ErrOverflow)
}

func TestTransfer(t *testing.T) {
	tok, st := newToken(t)
	env := xenv.New(st, alice, tokenAddr, 0)

	require.NoError(t, tok.Transfer(env, bob, u128.From64(300)))
	assert.Equal(t, "700", balance(t, tok, alice))
	assert.Equal(t, "300", balance(t, tok, bob))

	assert.ErrorIs(t, tok.Transfer(env, bob, u128.From64(701)), ErrInsufficientBalance)
	assert.ErrorIs(t, tok.Transfer(env, thor.Address{}, u128.From64(1)), ErrZeroRecipient)
	assert.Equal(t, "700", balance(t, tok, alice))
}

func TestTransferFrom(t *testing.T) {
	tok, st := newToken(t)

	err := tok.TransferFrom(xenv.New(st, spender, tokenAddr, 0), alice, spender, u128.From64(1))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, tok.Approve(xenv.New(st, alice, tokenAddr, 0), spender, u128.From64(600)))
	allowance, err := tok.Allowance(alice, spender)
	require.NoError(t, err)
	assert.Equal(t, "600", allowance.String())

	env := xenv.New(st, spender, tokenAddr, 0)
	require.NoError(t, tok.TransferFrom(env, alice, spender, u128.From64(500)))
	assert.Equal(t, "500", balance(t, tok, alice))
	assert.Equal(t, "500", balance(t, tok, spender))

	allowance, err = tok.Allowance(alice, spender)
	require.NoError(t, err)
	assert.Equal(t, "100", allowance.String())

	assert.ErrorIs(t, tok.TransferFrom(env, alice, spender, u128.From64(101)), ErrInsufficientAllowance)

	// allowance is not spent when the balance is short
	require.NoError(t, tok.Approve(xenv.New(st, alice, tokenAddr, 0), spender, u128.From64(10_000)))
	assert.ErrorIs(t, tok.TransferFrom(env, alice, spender, u128.From64(501)), ErrInsufficientBalance)
	allowance, err = tok.Allowance(alice, spender)
	require.NoError(t, err)
	assert.Equal(t, "10000", allowance.String())
}

func TestApproveZeroClears(t *testing.T) {
	tok, st := newToken(t)
	env := xenv.New(st, alice, tokenAddr, 0)
	require.NoError(t, tok.Approve(env, spender, u128.From64(5)))
	require.NoError(t, tok.Approve(env, spender, u128.Zero()))
	allowance, err := tok.Allowance(alice, spender)
	require.NoError(t, err)
	assert.True(t, allowance.IsZero())
}
