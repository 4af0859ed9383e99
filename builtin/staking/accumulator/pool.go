// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"fmt"

	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/u128"
)

// Pool is the contract-wide reward state. Both accumulators are cumulative
// since launch and are never reduced.
type Pool struct {
	TotalStaked            u128.Int `json:"totalStaked"`
	RewardRate             u128.Int `json:"rewardRate"` // reward units per host time unit
	RewardAccumulator      u128.Int `json:"rewardAccumulator"`
	StakeWeightAccumulator u128.Int `json:"stakeWeightAccumulator"`
	LastUpdate             uint64   `json:"lastUpdate"`
}

// Advance moves the pool to now. The stake-weight accumulator grows by the
// stake held before this call.
func (p *Pool) Advance(now uint64) error {
	if now < p.LastUpdate {
		return reverts.NewInvalidState(fmt.Sprintf("time %d is before last accumulator update %d", now, p.LastUpdate))
	}
	elapsed := u128.From64(now - p.LastUpdate)

	reward, err := u128.Mul(p.RewardRate, elapsed)
	if err != nil {
		return reverts.Overflow(err, "reward accrual")
	}
	rewardAcc, err := u128.Add(p.RewardAccumulator, reward)
	if err != nil {
		return reverts.Overflow(err, "reward accumulator")
	}
	weight, err := u128.Mul(p.TotalStaked, elapsed)
	if err != nil {
		return reverts.Overflow(err, "stake weight accrual")
	}
	weightAcc, err := u128.Add(p.StakeWeightAccumulator, weight)
	if err != nil {
		return reverts.Overflow(err, "stake weight accumulator")
	}

	p.RewardAccumulator = rewardAcc
	p.StakeWeightAccumulator = weightAcc
	p.LastUpdate = now
	return nil
}

// ShareOf returns the reward of stake held since lastClaim, as its part of
// the all-time stake weight applied to all-time rewards.
func (p *Pool) ShareOf(now, lastClaim uint64, stake u128.Int) (u128.Int, error) {
	if now < lastClaim {
		return u128.Zero(), reverts.NewInvalidState(fmt.Sprintf("time %d is before last claim %d", now, lastClaim))
	}
	if p.StakeWeightAccumulator.IsZero() {
		return u128.Zero(), nil
	}
	userWeight, err := u128.Mul(stake, u128.From64(now-lastClaim))
	if err != nil {
		return u128.Zero(), reverts.Overflow(err, "position weight")
	}
	numerator, err := u128.Mul(p.RewardAccumulator, userWeight)
	if err != nil {
		return u128.Zero(), reverts.Overflow(err, "reward share")
	}
	share, err := u128.Div(numerator, p.StakeWeightAccumulator)
	if err != nil {
		return u128.Zero(), reverts.Overflow(err, "reward share")
	}
	return share, nil
}

// AddStake raises the total. The pool must already be advanced to now.
func (p *Pool) AddStake(now uint64, amount u128.Int) error {
	if err := p.requireCurrent(now); err != nil {
		return err
	}
	total, err := u128.Add(p.TotalStaked, amount)
	if err != nil {
		return reverts.Overflow(err, "total staked")
	}
	p.TotalStaked = total
	return nil
}

// SubStake lowers the total. The pool must already be advanced to now.
func (p *Pool) SubStake(now uint64, amount u128.Int) error {
	if err := p.requireCurrent(now); err != nil {
		return err
	}
	total, err := u128.Sub(p.TotalStaked, amount)
	if err != nil {
		return reverts.Overflow(err, "total staked")
	}
	p.TotalStaked = total
	return nil
}

func (p *Pool) requireCurrent(now uint64) error {
	if p.LastUpdate != now {
		return reverts.NewInvalidState(fmt.Sprintf("stake change at %d without advancing from %d", now, p.LastUpdate))
	}
	return nil
}
