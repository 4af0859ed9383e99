// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
)

func TestClaims(t *testing.T) {
	svc := New(solidity.NewContext(thor.BytesToAddress([]byte("staking")), state.New(nil)))

	ts, err := svc.LastClaim(1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), ts)

	require.NoError(t, svc.Record(1, 30))
	ts, err = svc.LastClaim(1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), ts)

	// other ids are unaffected
	ts, err = svc.LastClaim(2, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), ts)

	svc.Remove(1)
	_, exists, err := svc.Lookup(1)
	require.NoError(t, err)
	assert.False(t, exists)
	ts, err = svc.LastClaim(1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), ts)
}
