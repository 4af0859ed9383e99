// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unlock

import (
	"errors"
	"math"

	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

var slotRequests = thor.BytesToBytes32([]byte("unlock-requests"))

// Request is a pending withdrawal of a burned position.
type Request struct {
	Time   uint64       `json:"time"`
	Amount u128.Int     `json:"amount"`
	Owner  thor.Address `json:"owner"`
}

// UnlocksAt returns the earliest time the request can be withdrawn.
func (r *Request) UnlocksAt(delay uint64) uint64 {
	if r.Time > math.MaxUint64-delay {
		return math.MaxUint64
	}
	return r.Time + delay
}

// Ready reports whether the cooling-off period has passed at now.
func (r *Request) Ready(now, delay uint64) bool {
	return now >= r.UnlocksAt(delay)
}

// Service is the queue of unlock requests keyed by position id.
type Service struct {
	requests *solidity.Mapping[position.ID, Request]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		requests: solidity.NewMapping[position.ID, Request](sctx, slotRequests),
	}
}

// Get returns the request of id, or nil.
func (s *Service) Get(id position.ID) (*Request, error) {
	req, exists, err := s.requests.Lookup(id)
	if err != nil || !exists {
		return nil, err
	}
	return &req, nil
}

// Insert adds the single request a position may have.
func (s *Service) Insert(id position.ID, req Request) error {
	if err := s.requests.Insert(id, req); err != nil {
		if errors.Is(err, solidity.ErrKeyExists) {
			return reverts.NewInvalidState("unlock already requested")
		}
		return err
	}
	return nil
}

func (s *Service) Remove(id position.ID) {
	s.requests.Remove(id)
}
