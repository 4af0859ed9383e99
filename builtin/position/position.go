// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"

	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var (
	slotMinter    = thor.BytesToBytes32([]byte("minter"))
	slotNextID    = thor.BytesToBytes32([]byte("next-id"))
	slotPositions = thor.BytesToBytes32([]byte("positions"))
	slotBalances  = thor.BytesToBytes32([]byte("balances"))
)

// Registry is the non-fungible governance position contract. Only its
// minter may create, burn or reweight positions.
type Registry struct {
	addr      thor.Address
	minter    *solidity.Raw[thor.Address]
	nextID    *solidity.Raw[uint64]
	positions *solidity.Mapping[ID, Data]
	balances  *solidity.Mapping[thor.Address, uint64]
}

func New(addr thor.Address, state *state.State) *Registry {
	sctx := solidity.NewContext(addr, state)
	return &Registry{
		addr:      addr,
		minter:    solidity.NewRaw[thor.Address](sctx, slotMinter),
		nextID:    solidity.NewRaw[uint64](sctx, slotNextID),
		positions: solidity.NewMapping[ID, Data](sctx, slotPositions),
		balances:  solidity.NewMapping[thor.Address, uint64](sctx, slotBalances),
	}
}

func (r *Registry) Address() thor.Address {
	return r.addr
}

// Initialize sets the minter. It can be done only once.
func (r *Registry) Initialize(minter thor.Address) error {
	if _, exists, err := r.minter.Get(); err != nil {
		return err
	} else if exists {
		return Custom("already initialized")
	}
	return r.minter.Set(minter)
}

func (r *Registry) Minter() (thor.Address, error) {
	minter, _, err := r.minter.Get()
	return minter, err
}

func (r *Registry) requireMinter(env *xenv.Environment) error {
	minter, exists, err := r.minter.Get()
	if err != nil {
		return err
	}
	if !exists || env.Caller() != minter {
		return errors.WithMessage(ErrNotApproved, "caller is not minter")
	}
	return nil
}

// Get returns the position record of id.
func (r *Registry) Get(id ID) (*Data, error) {
	data, exists, err := r.positions.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenNotExists
	}
	return &data, nil
}

func (r *Registry) OwnerOf(id ID) (thor.Address, error) {
	data, err := r.Get(id)
	if err != nil {
		return thor.Address{}, err
	}
	return data.Owner, nil
}

// BalanceOf returns the number of positions held by owner.
func (r *Registry) BalanceOf(owner thor.Address) (uint64, error) {
	return r.balances.Get(owner)
}

// NextID returns the id the next mint will assign.
func (r *Registry) NextID() (ID, error) {
	last, _, err := r.nextID.Get()
	if err != nil {
		return 0, err
	}
	return ID(last + 1), nil
}

// Mint creates a position of weight for owner, created at the call time.
func (r *Registry) Mint(env *xenv.Environment, owner thor.Address, weight u128.Int) (ID, error) {
	if err := r.requireMinter(env); err != nil {
		return 0, err
	}
	if owner.IsZero() {
		return 0, Custom("mint to zero address")
	}
	id, err := r.NextID()
	if err != nil {
		return 0, err
	}
	if err := r.positions.Insert(id, Data{Owner: owner, Weight: weight, CreatedAt: env.Timestamp()}); err != nil {
		return 0, err
	}
	if err := r.nextID.Set(uint64(id)); err != nil {
		return 0, err
	}
	return id, r.addBalance(owner, 1)
}

// Burn deletes a position held by owner.
func (r *Registry) Burn(env *xenv.Environment, owner thor.Address, id ID) error {
	if err := r.requireMinter(env); err != nil {
		return err
	}
	data, err := r.Get(id)
	if err != nil {
		return err
	}
	if data.Owner != owner {
		return errors.WithMessage(ErrNotApproved, "burn by non owner")
	}
	r.positions.Remove(id)
	return r.subBalance(owner, 1)
}

func (r *Registry) IncrementWeight(env *xenv.Environment, id ID, amount u128.Int) error {
	if err := r.requireMinter(env); err != nil {
		return err
	}
	data, err := r.Get(id)
	if err != nil {
		return err
	}
	weight, err := u128.Add(data.Weight, amount)
	if err != nil {
		return Custom("weight overflow")
	}
	data.Weight = weight
	return r.positions.Update(id, *data)
}

// DecrementWeight lowers the weight of a position held by owner.
func (r *Registry) DecrementWeight(env *xenv.Environment, owner thor.Address, id ID, amount u128.Int) error {
	if err := r.requireMinter(env); err != nil {
		return err
	}
	data, err := r.Get(id)
	if err != nil {
		return err
	}
	if data.Owner != owner {
		return errors.WithMessage(ErrNotApproved, "decrement by non owner")
	}
	weight, err := u128.Sub(data.Weight, amount)
	if err != nil {
		return Custom("insufficient weight")
	}
	data.Weight = weight
	return r.positions.Update(id, *data)
}

// Transfer moves a position from the caller to to.
func (r *Registry) Transfer(env *xenv.Environment, to thor.Address, id ID) error {
	data, err := r.Get(id)
	if err != nil {
		return err
	}
	if data.Owner != env.Caller() {
		return errors.WithMessage(ErrNotApproved, "transfer by non owner")
	}
	if to.IsZero() {
		return Custom("transfer to zero address")
	}
	if to == data.Owner {
		return nil
	}
	if err := r.subBalance(data.Owner, 1); err != nil {
		return err
	}
	if err := r.addBalance(to, 1); err != nil {
		return err
	}
	data.Owner = to
	return r.positions.Update(id, *data)
}

func (r *Registry) addBalance(owner thor.Address, n uint64) error {
	bal, err := r.balances.Get(owner)
	if err != nil {
		return err
	}
	return r.balances.Upsert(owner, bal+n)
}

func (r *Registry) subBalance(owner thor.Address, n uint64) error {
	bal, err := r.balances.Get(owner)
	if err != nil {
		return err
	}
	if bal < n {
		return Custom("balance underflow")
	}
	if bal == n {
		r.balances.Remove(owner)
		return nil
	}
	return r.balances.Upsert(owner, bal-n)
}
