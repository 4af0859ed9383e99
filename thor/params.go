// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Host time is expressed in milliseconds since the unix epoch.
const (
	Second uint64 = 1000
	Day    uint64 = 86400 * Second

	// WithdrawDelay is the cooling-off period between an unlock request and the withdrawal.
	WithdrawDelay uint64 = 14 * Day
)
