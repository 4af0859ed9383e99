// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp  uint64
	stateProcs []func(state *state.State) error
}

// Timestamp set launch time.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs the state processes in order.
func (b *Builder) Build(state *state.State) error {
	for _, proc := range b.stateProcs {
		if err := proc(state); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	return nil
}

// ComputeID builds into scratch state and hashes the result with the launch time.
func (b *Builder) ComputeID() (thor.Bytes32, error) {
	st := state.New(nil)
	if err := b.Build(st); err != nil {
		return thor.Bytes32{}, err
	}
	hash := st.Stage().Hash()

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	return thor.Blake2b(ts[:], hash.Bytes()), nil
}
