// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

type phase uint8

const (
	phasePull phase = iota
	phaseBookkeeping
	phaseEffects
)

func (p phase) String() string {
	switch p {
	case phasePull:
		return "pull"
	case phaseBookkeeping:
		return "bookkeeping"
	default:
		return "effects"
	}
}

// invocation orders a single operation as pull, then bookkeeping, then
// effects. Funds can only be pulled before any bookkeeping, and contract
// storage is final once the first effect is issued.
type invocation struct {
	s     *Staking
	env   *xenv.Environment
	phase phase
}

func (inv *invocation) now() uint64 { return inv.env.Timestamp() }

func (inv *invocation) caller() thor.Address { return inv.env.Caller() }

func (inv *invocation) enter(p phase) error {
	if p < inv.phase {
		return reverts.NewInvalidState(p.String() + " after " + inv.phase.String())
	}
	inv.phase = p
	return nil
}

// pull transfers amount from the caller into the contract.
func (inv *invocation) pull(amount u128.Int) error {
	if err := inv.enter(phasePull); err != nil {
		return err
	}
	token := inv.s.token
	if err := token.TransferFrom(inv.env.Call(token.Address()), inv.caller(), inv.env.To(), amount); err != nil {
		return reverts.Token(err)
	}
	return nil
}

// book runs a storage update of the contract.
func (inv *invocation) book(fn func() error) error {
	if err := inv.enter(phaseBookkeeping); err != nil {
		return err
	}
	return fn()
}

// push transfers amount out of the contract.
func (inv *invocation) push(to thor.Address, amount u128.Int) error {
	if err := inv.enter(phaseEffects); err != nil {
		return err
	}
	token := inv.s.token
	if err := token.Transfer(inv.env.Call(token.Address()), to, amount); err != nil {
		return reverts.Token(err)
	}
	return nil
}

// positions calls the registry with the contract as caller.
func (inv *invocation) positions(fn func(env *xenv.Environment, reg Positions) error) error {
	if err := inv.enter(phaseEffects); err != nil {
		return err
	}
	reg := inv.s.positions
	if err := fn(inv.env.Call(reg.Address()), reg); err != nil {
		return reverts.Position(err)
	}
	return nil
}

// position reads a position record. Reads are allowed in any phase.
func (inv *invocation) position(id position.ID) (*position.Data, error) {
	data, err := inv.s.positions.Get(id)
	if err != nil {
		return nil, reverts.Position(err)
	}
	return data, nil
}
