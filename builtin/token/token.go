// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"errors"

	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var (
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrZeroRecipient         = errors.New("token: transfer to zero address")
)

var (
	slotSupply     = thor.BytesToBytes32([]byte("total-supply"))
	slotBalances   = thor.BytesToBytes32([]byte("balances"))
	slotAllowances = thor.BytesToBytes32([]byte("allowances"))
)

func allowanceKey(owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), spender.Bytes())
}

// Token is the fungible governance token ledger.
type Token struct {
	addr       thor.Address
	supply     *solidity.Raw[u128.Int]
	balances   *solidity.Mapping[thor.Address, u128.Int]
	allowances *solidity.Mapping[thor.Bytes32, u128.Int]
}

func New(addr thor.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		addr:       addr,
		supply:     solidity.NewRaw[u128.Int](sctx, slotSupply),
		balances:   solidity.NewMapping[thor.Address, u128.Int](sctx, slotBalances),
		allowances: solidity.NewMapping[thor.Bytes32, u128.Int](sctx, slotAllowances),
	}
}

func (t *Token) Address() thor.Address {
	return t.addr
}

func (t *Token) TotalSupply() (u128.Int, error) {
	supply, _, err := t.supply.Get()
	return supply, err
}

func (t *Token) BalanceOf(owner thor.Address) (u128.Int, error) {
	return t.balances.Get(owner)
}

func (t *Token) Allowance(owner, spender thor.Address) (u128.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// Mint credits amount to to and grows the supply. Used at genesis.
func (t *Token) Mint(to thor.Address, amount u128.Int) error {
	if to.IsZero() {
		return ErrZeroRecipient
	}
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	if supply, err = u128.Add(supply, amount); err != nil {
		return err
	}
	if err := t.supply.Set(supply); err != nil {
		return err
	}
	return t.credit(to, amount)
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(env *xenv.Environment, to thor.Address, amount u128.Int) error {
	return t.move(env.Caller(), to, amount)
}

// Approve lets spender move up to amount of the caller's balance.
func (t *Token) Approve(env *xenv.Environment, spender thor.Address, amount u128.Int) error {
	key := allowanceKey(env.Caller(), spender)
	if amount.IsZero() {
		t.allowances.Remove(key)
		return nil
	}
	return t.allowances.Upsert(key, amount)
}

// TransferFrom moves amount from owner to to, spending the caller's allowance.
func (t *Token) TransferFrom(env *xenv.Environment, owner, to thor.Address, amount u128.Int) error {
	key := allowanceKey(owner, env.Caller())
	allowance, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	left, err := u128.Sub(allowance, amount)
	if err != nil {
		return ErrInsufficientAllowance
	}
	if err := t.move(owner, to, amount); err != nil {
		return err
	}
	if left.IsZero() {
		t.allowances.Remove(key)
		return nil
	}
	return t.allowances.Upsert(key, left)
}

func (t *Token) move(from, to thor.Address, amount u128.Int) error {
	if to.IsZero() {
		return ErrZeroRecipient
	}
	bal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	bal, err = u128.Sub(bal, amount)
	if err != nil {
		return ErrInsufficientBalance
	}
	if err := t.setBalance(from, bal); err != nil {
		return err
	}
	return t.credit(to, amount)
}

func (t *Token) credit(to thor.Address, amount u128.Int) error {
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if bal, err = u128.Add(bal, amount); err != nil {
		return err
	}
	return t.setBalance(to, bal)
}

func (t *Token) setBalance(owner thor.Address, bal u128.Int) error {
	if bal.IsZero() {
		t.balances.Remove(owner)
		return nil
	}
	return t.balances.Upsert(owner, bal)
}
