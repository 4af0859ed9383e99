// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

// Token is the fungible ledger staked into the contract. Calls receive an
// env whose caller is the staking contract.
type Token interface {
	Address() thor.Address
	TransferFrom(env *xenv.Environment, owner, to thor.Address, amount u128.Int) error
	Transfer(env *xenv.Environment, to thor.Address, amount u128.Int) error
}

// Positions is the registry holding one weighted record per stake.
type Positions interface {
	Address() thor.Address
	Get(id position.ID) (*position.Data, error)
	Mint(env *xenv.Environment, owner thor.Address, weight u128.Int) (position.ID, error)
	Burn(env *xenv.Environment, owner thor.Address, id position.ID) error
	IncrementWeight(env *xenv.Environment, id position.ID, amount u128.Int) error
	DecrementWeight(env *xenv.Environment, owner thor.Address, id position.ID, amount u128.Int) error
}
