// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unlock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

func TestRequestWindow(t *testing.T) {
	req := &Request{Time: 100}
	delay := thor.WithdrawDelay

	assert.Equal(t, 100+delay, req.UnlocksAt(delay))
	assert.False(t, req.Ready(100, delay))
	assert.False(t, req.Ready(100+delay-1, delay))
	assert.True(t, req.Ready(100+delay, delay))

	late := &Request{Time: math.MaxUint64 - 1}
	assert.Equal(t, uint64(math.MaxUint64), late.UnlocksAt(delay))
}

func TestService(t *testing.T) {
	svc := New(solidity.NewContext(thor.BytesToAddress([]byte("staking")), state.New(nil)))
	owner := thor.BytesToAddress([]byte("owner"))

	req, err := svc.Get(1)
	require.NoError(t, err)
	assert.Nil(t, req)

	want := Request{Time: 30, Amount: u128.From64(3400), Owner: owner}
	require.NoError(t, svc.Insert(1, want))

	err = svc.Insert(1, Request{Time: 40})
	assert.Equal(t, reverts.InvalidState, reverts.KindOf(err))

	req, err = svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, want, *req)

	svc.Remove(1)
	req, err = svc.Get(1)
	require.NoError(t, err)
	assert.Nil(t, req)
}
