// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
)

// Genesis to build genesis state.
type Genesis struct {
	builder *Builder
	id      thor.Bytes32
	name    string
}

// Build writes the genesis contract storage into state.
func (g *Genesis) Build(state *state.State) error {
	return g.builder.Build(state)
}

// ID returns genesis id.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the time the staking contract starts emitting rewards.
func (g *Genesis) LaunchTime() uint64 {
	return g.builder.timestamp
}

// ChainTag is the last byte of the genesis id. Signed calls carry it so they
// are only valid on the network they were signed for.
func (g *Genesis) ChainTag() byte {
	return g.id[len(g.id)-1]
}
