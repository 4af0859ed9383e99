// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/staking"
	"github.com/vechain/govstake/builtin/token"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
)

// Builtin contracts binding.
var (
	Token   = &tokenContract{thor.BytesToAddress([]byte("GovToken"))}
	Staking = &stakingContract{thor.BytesToAddress([]byte("GovStaking"))}

	// PositionCodeHash identifies the position registry code the staking
	// contract instantiates.
	PositionCodeHash = thor.Blake2b([]byte("GovernanceNFT"))
)

type (
	tokenContract   struct{ Address thor.Address }
	stakingContract struct{ Address thor.Address }
)

func (t *tokenContract) Native(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

// PositionAddress returns the address of the registry instantiated by the
// staking contract for deployer.
func (s *stakingContract) PositionAddress(deployer thor.Address) thor.Address {
	return thor.CreateContractAddress(s.Address, PositionCodeHash, deployer.Bytes())
}

// Settings returns the settings stored at initialization.
func (s *stakingContract) Settings(state *state.State) (*staking.Settings, error) {
	return staking.ReadSettings(s.Address, state)
}

// Native binds the staking contract to the collaborators named in its settings.
func (s *stakingContract) Native(state *state.State) (*staking.Staking, error) {
	settings, err := s.Settings(state)
	if err != nil {
		return nil, err
	}
	return staking.New(
		s.Address,
		state,
		token.New(settings.Token, state),
		position.New(settings.NFT, state),
	), nil
}

// Positions returns the registry the staking contract mints into.
func (s *stakingContract) Positions(state *state.State) (*position.Registry, error) {
	settings, err := s.Settings(state)
	if err != nil {
		return nil, err
	}
	return position.New(settings.NFT, state), nil
}
