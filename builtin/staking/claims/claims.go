// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claims

import (
	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/solidity"
	"github.com/vechain/govstake/thor"
)

var slotClaims = thor.BytesToBytes32([]byte("last-claims"))

// Service records when each position last claimed rewards.
type Service struct {
	claims *solidity.Mapping[position.ID, uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		claims: solidity.NewMapping[position.ID, uint64](sctx, slotClaims),
	}
}

// LastClaim returns the last claim time of id, or createdAt if it never claimed.
func (s *Service) LastClaim(id position.ID, createdAt uint64) (uint64, error) {
	ts, exists, err := s.claims.Lookup(id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return createdAt, nil
	}
	return ts, nil
}

// Lookup returns the recorded claim time of id, if any.
func (s *Service) Lookup(id position.ID) (uint64, bool, error) {
	return s.claims.Lookup(id)
}

func (s *Service) Record(id position.ID, now uint64) error {
	return s.claims.Upsert(id, now)
}

func (s *Service) Remove(id position.ID) {
	s.claims.Remove(id)
}
