// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
)

// Environment an env to execute native method.
type Environment struct {
	state     *state.State
	caller    thor.Address
	to        thor.Address
	timestamp uint64
}

// New create a new env.
func New(state *state.State, caller, to thor.Address, timestamp uint64) *Environment {
	return &Environment{
		state:     state,
		caller:    caller,
		to:        to,
		timestamp: timestamp,
	}
}

func (env *Environment) State() *state.State  { return env.state }
func (env *Environment) Caller() thor.Address { return env.caller }
func (env *Environment) To() thor.Address     { return env.to }
func (env *Environment) Timestamp() uint64    { return env.timestamp }

// Call returns the env of a sub call from the executing contract into to.
// State and timestamp are shared with the parent call.
func (env *Environment) Call(to thor.Address) *Environment {
	return &Environment{
		state:     env.state,
		caller:    env.to,
		to:        to,
		timestamp: env.timestamp,
	}
}
