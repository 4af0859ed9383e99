// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"

	"github.com/vechain/govstake/metrics"
	"github.com/vechain/govstake/u128"
)

var (
	metricOperations  = metrics.LazyLoadCounterVec("staking_operations_count", []string{"op", "result"})
	metricTotalStaked = metrics.LazyLoadGauge("staking_total_staked")
)

func observeTotalStaked(total u128.Int) {
	if total.IsUint64() && total.Uint64() <= math.MaxInt64 {
		metricTotalStaked().Set(int64(total.Uint64()))
	}
}
