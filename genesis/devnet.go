// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

// DevAccount account for development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the accounts funded in dev mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{thor.Address(crypto.PubkeyToAddress(pk.PublicKey)), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// Dev amounts are in micro tokens (6 decimals). The share computation
// multiplies the reward accumulator by stake and holding time in checked
// 128-bit math, so 18 decimal amounts overflow within days.
const (
	devLaunchTime = 1767225600 * thor.Second // 'Thu Jan 01 2026 00:00:00 GMT+0000'
	devToken      = 1_000_000
)

// DevConfig returns the config used in dev mode.
func DevConfig() *Config {
	cfg := &Config{
		Name:          "devnet",
		LaunchTime:    devLaunchTime,
		Deployer:      DevAccounts()[0].Address,
		RewardRate:    u128.From64(1),                      // micro token per ms, 86.4 tokens a day
		RewardReserve: u128.From64(100_000_000 * devToken), // covers about 3000 years of emission
		API:           APIConfig{Addr: "localhost:8669"},
	}
	for _, acc := range DevAccounts() {
		cfg.Accounts = append(cfg.Accounts, Account{Address: acc.Address, Balance: u128.From64(1_000_000 * devToken)})
	}
	return cfg
}

// NewDevnet create genesis for dev mode.
func NewDevnet() *Genesis {
	gene, err := NewCustomNet(DevConfig())
	if err != nil {
		panic(err)
	}
	return gene
}
